package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/aajetechnology/StudyBot/internal/auth"
	"github.com/aajetechnology/StudyBot/internal/classroom"
	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/documents"
	"github.com/aajetechnology/StudyBot/internal/export"
	"github.com/aajetechnology/StudyBot/internal/httpapi"
	"github.com/aajetechnology/StudyBot/internal/library"
	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/normalizer"
	"github.com/aajetechnology/StudyBot/internal/pipeline"
	"github.com/aajetechnology/StudyBot/internal/quiz"
	"github.com/aajetechnology/StudyBot/internal/repository"
	"github.com/aajetechnology/StudyBot/internal/summarizer"
	"github.com/aajetechnology/StudyBot/internal/transcriber"
	"github.com/aajetechnology/StudyBot/pkg/executor"
)

// app holds every wired service for one process.
type app struct {
	cfg      *config.Config
	logger   logger.Logger
	repo     repository.Repository
	pipeline pipeline.Orchestrator
	deps     httpapi.Deps
}

func loadApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "StudyBot")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Configuration loaded from %s", configPath)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	repo, err := repository.Open(cfg.Database.DSN, log)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(); err != nil {
		repo.Close()
		return nil, err
	}

	exec := executor.New()
	if !exec.Available(cfg.FFmpeg.BinaryPath) {
		log.Warn(ctx, "%s not found, uploads will be transcribed without normalization", cfg.FFmpeg.BinaryPath)
	}

	norm := normalizer.New(cfg.FFmpeg, exec, log)
	worker := transcriber.NewWorker(
		transcriber.NewClient(cfg.Transcription, log),
		cfg.Transcription.PollInterval,
		cfg.Transcription.TypingDelay,
		log,
	)
	client := llm.New(cfg.Gemini, log)
	sum := summarizer.New(cfg.Summary, client, log)
	exp := export.New(cfg.Paths.Output, log)
	orch := pipeline.New(norm, worker, sum, repo, exp, cfg.Summary.ProgressEvery, log)

	return &app{
		cfg:      cfg,
		logger:   log,
		repo:     repo,
		pipeline: orch,
		deps: httpapi.Deps{
			Auth:      auth.New(cfg.Auth, repo, log),
			Store:     repo,
			Pipeline:  orch,
			Exporter:  exp,
			Library:   library.New(repo),
			Quiz:      quiz.New(cfg.Quiz, repo, client, log),
			Classroom: classroom.New(cfg.Classroom, repo, client, log),
			Documents: documents.New(client, sum, repo, log),
		},
	}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Output,
	}
	if cfg.Inbox.Enabled {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
