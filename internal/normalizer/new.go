package normalizer

import (
	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/pkg/executor"
)

type implNormalizer struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Normalizer that shells out to ffmpeg.
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Normalizer {
	return &implNormalizer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
