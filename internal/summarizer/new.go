package summarizer

import (
	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/logger"
)

type implSummarizer struct {
	llm           llm.Client
	minChars      int
	maxInputChars int
	logger        logger.Logger
}

// New creates a Summarizer backed by a streaming chat model.
func New(cfg config.SummaryConfig, client llm.Client, log logger.Logger) Summarizer {
	return &implSummarizer{
		llm:           client,
		minChars:      cfg.MinChars,
		maxInputChars: cfg.MaxInputChars,
		logger:        log,
	}
}
