package documents

import (
	"context"

	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/summarizer"
)

type LectureStore interface {
	CreateLecture(ctx context.Context, l *models.Lecture) error
}

type implService struct {
	llm        llm.Client
	summarizer summarizer.Summarizer
	store      LectureStore
	logger     logger.Logger
}

func New(client llm.Client, sum summarizer.Summarizer, store LectureStore, log logger.Logger) Service {
	return &implService{
		llm:        client,
		summarizer: sum,
		store:      store,
		logger:     log,
	}
}
