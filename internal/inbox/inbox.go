// Package inbox runs lectures dropped into a watched folder through the
// pipeline on behalf of a configured owner.
package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/pipeline"
)

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Processor struct {
	users      UserStore
	pipeline   pipeline.Orchestrator
	ownerEmail string
	format     string
	uploadsDir string
	logger     logger.Logger
}

func New(cfg *config.Config, users UserStore, orch pipeline.Orchestrator, log logger.Logger) *Processor {
	return &Processor{
		users:      users,
		pipeline:   orch,
		ownerEmail: cfg.Inbox.OwnerEmail,
		format:     cfg.Inbox.Format,
		uploadsDir: cfg.Paths.Uploads,
		logger:     log,
	}
}

// Handle moves path out of the inbox and processes it. It satisfies
// watcher.EventHandler.
func (p *Processor) Handle(ctx context.Context, path string) error {
	owner, err := p.users.GetUserByEmail(ctx, p.ownerEmail)
	if err != nil {
		return fmt.Errorf("resolve inbox owner %s: %w", p.ownerEmail, err)
	}

	original := filepath.Base(path)
	source, err := p.moveToUploads(ctx, path)
	if err != nil {
		return err
	}

	job := &pipeline.Job{
		ID:               uuid.NewString(),
		UserID:           owner.ID,
		SourcePath:       source,
		OriginalFilename: original,
		Title:            strings.TrimSuffix(original, filepath.Ext(original)),
		Format:           p.format,
	}
	for ev := range p.pipeline.Run(ctx, job) {
		p.logEvent(ctx, job.ID, ev)
	}

	if job.Status != pipeline.StatusSuccess {
		if job.Err != nil {
			return fmt.Errorf("job %s: %w", job.ID, job.Err)
		}
		return fmt.Errorf("job %s did not complete", job.ID)
	}
	p.logger.Info(ctx, "Inbox file %s saved as lecture %d (%s)", original, job.LectureID, job.ExportPath)
	return nil
}

// moveToUploads takes the file out of the inbox so it is never picked up twice.
func (p *Processor) moveToUploads(ctx context.Context, path string) (string, error) {
	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	dest := filepath.Join(p.uploadsDir, uuid.NewString()+strings.ToLower(filepath.Ext(path)))

	p.logger.Info(ctx, "Moving inbox file: %s -> %s", path, dest)
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move inbox file: %w", err)
	}
	return dest, nil
}

func (p *Processor) logEvent(ctx context.Context, jobID string, ev pipeline.Event) {
	switch ev.Class {
	case pipeline.ClassChunk, pipeline.ClassMuted:
		p.logger.Debug(ctx, "[%s] %s", jobID, ev.Msg)
	case pipeline.ClassDanger:
		p.logger.Warn(ctx, "[%s] %s", jobID, ev.Msg)
	default:
		if ev.Msg != pipeline.Sentinel {
			p.logger.Info(ctx, "[%s] %s", jobID, ev.Msg)
		}
	}
}
