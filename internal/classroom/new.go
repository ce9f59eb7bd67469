package classroom

import (
	"context"
	"time"

	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
)

type Store interface {
	GetLecture(ctx context.Context, userID, id uint) (*models.Lecture, error)
	SaveClassroom(ctx context.Context, s *models.ClassroomSession) error
	GetClassroom(ctx context.Context, token string) (*models.ClassroomSession, error)
	UpdateClassroomStep(ctx context.Context, token string, step int) error
}

type implService struct {
	store      Store
	llm        llm.Client
	sessionTTL time.Duration
	now        func() time.Time
	logger     logger.Logger
}

func New(cfg config.ClassroomConfig, store Store, client llm.Client, log logger.Logger) Service {
	return &implService{
		store:      store,
		llm:        client,
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
		logger:     log,
	}
}
