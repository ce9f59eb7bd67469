package quiz

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
	GetQuiz(ctx context.Context, userID, id uint) (*models.Quiz, error)
	SaveQuizSession(ctx context.Context, s *models.QuizSession) error
	GetQuizSession(ctx context.Context, token string) (*models.QuizSession, error)
	DeleteQuizSession(ctx context.Context, token string) error
	CompleteQuiz(ctx context.Context, token string, q *models.Quiz) error
}

type implService struct {
	store        Store
	llm          llm.Client
	sessionTTL   time.Duration
	contextChars int
	now          func() time.Time
	logger       logger.Logger
}

func New(cfg config.QuizConfig, store Store, client llm.Client, log logger.Logger) Service {
	return &implService{
		store:        store,
		llm:          client,
		sessionTTL:   cfg.SessionTTL,
		contextChars: cfg.ContextChars,
		now:          time.Now,
		logger:       log,
	}
}
