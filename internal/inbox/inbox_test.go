package inbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/pipeline"
)

type users map[string]*models.User

func (u users) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := u[email]; ok {
		return user, nil
	}
	return nil, apperror.NotFound("user")
}

type fakePipeline struct {
	fail bool
	job  *pipeline.Job
}

func (f *fakePipeline) Run(_ context.Context, job *pipeline.Job) <-chan pipeline.Event {
	f.job = job
	out := make(chan pipeline.Event, 2)
	if f.fail {
		job.Status = pipeline.StatusFailed
		job.Err = errors.New("transcription failed")
		out <- pipeline.Event{Msg: "Transcription failed", Class: pipeline.ClassDanger}
	} else {
		job.Status = pipeline.StatusSuccess
		job.LectureID = 9
		out <- pipeline.Event{Msg: "--- PROCESS COMPLETE ---", Class: pipeline.ClassComplete}
	}
	out <- pipeline.Event{Msg: pipeline.Sentinel}
	close(out)
	return out
}

func setup(t *testing.T, fail bool) (*Processor, *fakePipeline, string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Paths.Uploads = filepath.Join(dir, "uploads")
	cfg.Inbox.OwnerEmail = "prof@example.com"
	cfg.Inbox.Format = "docx"

	inboxFile := filepath.Join(dir, "Week 4.m4a")
	if err := os.WriteFile(inboxFile, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	fp := &fakePipeline{fail: fail}
	p := New(cfg, users{"prof@example.com": {ID: 5}}, fp, logger.NewNop())
	return p, fp, inboxFile, cfg
}

func TestHandle(t *testing.T) {
	p, fp, inboxFile, cfg := setup(t, false)

	if err := p.Handle(context.Background(), inboxFile); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if _, err := os.Stat(inboxFile); !os.IsNotExist(err) {
		t.Error("inbox file was not moved")
	}

	job := fp.job
	if job.UserID != 5 || job.Title != "Week 4" || job.Format != "docx" || job.OriginalFilename != "Week 4.m4a" {
		t.Errorf("job = %+v", job)
	}
	if filepath.Dir(job.SourcePath) != cfg.Paths.Uploads || filepath.Ext(job.SourcePath) != ".m4a" {
		t.Errorf("SourcePath = %q", job.SourcePath)
	}
}

func TestHandleFailure(t *testing.T) {
	p, _, inboxFile, _ := setup(t, true)
	if err := p.Handle(context.Background(), inboxFile); err == nil {
		t.Fatal("Handle() should report a failed job")
	}
}

func TestHandleUnknownOwner(t *testing.T) {
	p, fp, inboxFile, _ := setup(t, false)
	p.ownerEmail = "nobody@example.com"

	if err := p.Handle(context.Background(), inboxFile); err == nil {
		t.Fatal("Handle() should fail without an owner")
	}
	if fp.job != nil {
		t.Error("pipeline ran without an owner")
	}
	if _, err := os.Stat(inboxFile); err != nil {
		t.Error("inbox file should stay in place when the owner is missing")
	}
}
