package pipeline

import (
	"context"

	"github.com/aajetechnology/StudyBot/internal/export"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/normalizer"
	"github.com/aajetechnology/StudyBot/internal/summarizer"
	"github.com/aajetechnology/StudyBot/internal/transcriber"
)

// LectureStore persists finished lectures.
type LectureStore interface {
	CreateLecture(ctx context.Context, l *models.Lecture) error
}

type implOrchestrator struct {
	normalizer    normalizer.Normalizer
	transcriber   transcriber.Worker
	summarizer    summarizer.Summarizer
	store         LectureStore
	exporter      export.Exporter
	progressEvery int
	logger        logger.Logger
}

// New creates an Orchestrator. progressEvery is the number of summary chunks
// between progress lines; zero disables them.
func New(
	norm normalizer.Normalizer,
	worker transcriber.Worker,
	sum summarizer.Summarizer,
	store LectureStore,
	exp export.Exporter,
	progressEvery int,
	log logger.Logger,
) Orchestrator {
	return &implOrchestrator{
		normalizer:    norm,
		transcriber:   worker,
		summarizer:    sum,
		store:         store,
		exporter:      exp,
		progressEvery: progressEvery,
		logger:        log,
	}
}
