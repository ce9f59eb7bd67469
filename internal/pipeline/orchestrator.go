package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aajetechnology/StudyBot/internal/export"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/transcriber"
	"github.com/aajetechnology/StudyBot/pkg/textutil"
)

const (
	msgNormalize  = ">>> PRE-PROCESSING AUDIO FOR UNIVERSAL SUPPORT..."
	msgTranscribe = ">>> STARTING TRANSCRIPTION..."
	msgSummarize  = ">>> GENERATING AI SUMMARY..."
	msgPersist    = ">>> SAVING TO DATABASE..."
	msgExport     = ">>> EXPORTING STUDY NOTES..."
	msgComplete   = "--- PROCESS COMPLETE ---"

	maxTitleLen = 100
)

var errNoTranscript = errors.New("transcription ended without a result")

type emitter struct {
	ctx context.Context
	out chan<- Event
}

// emit blocks until the event is read or ctx is done.
func (e emitter) emit(msg, class string) bool {
	select {
	case e.out <- Event{Msg: msg, Class: class}:
		return true
	case <-e.ctx.Done():
		return false
	}
}

func (o *implOrchestrator) Run(ctx context.Context, job *Job) <-chan Event {
	out := make(chan Event)
	go o.run(ctx, job, out)
	return out
}

func (o *implOrchestrator) run(ctx context.Context, job *Job, out chan<- Event) {
	defer close(out)

	startTime := time.Now()
	prepare(job)
	e := emitter{ctx: ctx, out: out}

	o.logger.Info(ctx, "========================================")
	o.logger.Info(ctx, "Starting lecture job %s: %s", job.ID, job.SourcePath)
	o.logger.Info(ctx, "========================================")

	if err := o.process(ctx, job, e); err != nil {
		stage := job.State
		job.fail(err)
		if ctx.Err() != nil {
			o.logger.Warn(ctx, "Lecture job %s abandoned during %s: %v", job.ID, stage, ctx.Err())
			return
		}
		o.logger.Error(ctx, "Lecture job %s failed during %s: %v", job.ID, stage, err)
		e.emit(Sentinel, "")
		return
	}

	job.State = StateDone
	job.Status = StatusSuccess
	o.logger.Info(ctx, "========================================")
	o.logger.Info(ctx, "Lecture job %s completed in %s (lecture %d)", job.ID, time.Since(startTime), job.LectureID)
	o.logger.Info(ctx, "========================================")

	if e.emit(msgComplete, ClassComplete) {
		e.emit(Sentinel, "")
	}
}

func prepare(job *Job) {
	job.State = StateInit
	job.Status = StatusPending
	job.Format = export.NormalizeFormat(job.Format)
	if job.OriginalFilename == "" {
		job.OriginalFilename = filepath.Base(job.SourcePath)
	}
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = strings.TrimSuffix(job.OriginalFilename, filepath.Ext(job.OriginalFilename))
	}
	job.Title = textutil.Prefix(title, maxTitleLen)
}

// process runs the stages in order. A returned error is fatal and has
// already been reported on the stream.
func (o *implOrchestrator) process(ctx context.Context, job *Job, e emitter) error {
	job.State = StateNormalize
	if !e.emit(msgNormalize, ClassWarning) {
		return ctx.Err()
	}
	job.NormalizedPath = o.normalizer.Normalize(ctx, job.SourcePath)

	job.State = StateTranscribe
	if !e.emit(msgTranscribe, ClassInfo) {
		o.normalizer.Cleanup(ctx, job.SourcePath, job.NormalizedPath)
		return ctx.Err()
	}
	err := o.transcribe(ctx, job, e)
	o.normalizer.Cleanup(ctx, job.SourcePath, job.NormalizedPath)
	if err != nil {
		return err
	}

	job.State = StateSummarize
	if !e.emit(msgSummarize, ClassInfo) {
		return ctx.Err()
	}
	if err := o.summarize(ctx, job, e); err != nil {
		return err
	}

	job.State = StatePersist
	if !e.emit(msgPersist, ClassInfo) {
		return ctx.Err()
	}
	if err := o.persist(ctx, job, e); err != nil {
		return err
	}

	job.State = StateExport
	if !e.emit(msgExport, ClassInfo) {
		return ctx.Err()
	}
	o.export(ctx, job, e)
	return ctx.Err()
}

func (o *implOrchestrator) transcribe(ctx context.Context, job *Job, e emitter) error {
	var failure string
	for u := range o.transcriber.Transcribe(ctx, job.NormalizedPath) {
		ok := true
		switch u.Kind {
		case transcriber.KindHeartbeat:
			ok = e.emit(u.Text, ClassMuted)
		case transcriber.KindLine:
			job.Lines = append(job.Lines, u.Text)
			ok = e.emit(u.Text, ClassSuccess)
		case transcriber.KindDone:
			transcript := u.Text
			job.Transcript = &transcript
		case transcriber.KindError:
			failure = u.Text
		}
		if !ok {
			return ctx.Err()
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failure != "" {
		e.emit(failure, ClassDanger)
		return errors.New(failure)
	}
	if job.Transcript == nil {
		e.emit("Transcription failed: "+errNoTranscript.Error(), ClassDanger)
		return errNoTranscript
	}
	return nil
}

func (o *implOrchestrator) summarize(ctx context.Context, job *Job, e emitter) error {
	chunks := 0
	for u := range o.summarizer.Stream(ctx, *job.Transcript) {
		if u.Done {
			summary := u.Final
			job.Summary = &summary
			if u.Failed && !e.emit(u.Final, ClassDanger) {
				return ctx.Err()
			}
			continue
		}

		chunks++
		if !e.emit(u.Chunk, ClassChunk) {
			return ctx.Err()
		}
		if o.progressEvery > 0 && chunks%o.progressEvery == 0 {
			msg := fmt.Sprintf("AI Professor has written %d sections of your notes...", chunks)
			if !e.emit(msg, ClassInfo) {
				return ctx.Err()
			}
		}
	}

	if job.Summary == nil {
		// The summarizer always finishes with a final value unless cancelled.
		return ctx.Err()
	}
	o.logger.Info(ctx, "Summary ready for job %s: %d chunks, %d chars", job.ID, chunks, len(*job.Summary))
	return nil
}

func (o *implOrchestrator) persist(ctx context.Context, job *Job, e emitter) error {
	lecture := &models.Lecture{
		Title:            job.Title,
		Transcript:       *job.Transcript,
		Summary:          *job.Summary,
		OriginalFilename: job.OriginalFilename,
		OutputFormat:     job.Format,
		UserID:           job.UserID,
	}
	if err := o.store.CreateLecture(ctx, lecture); err != nil {
		e.emit("Database error: the lecture could not be saved.", ClassDanger)
		return fmt.Errorf("persist lecture: %w", err)
	}
	job.LectureID = lecture.ID
	e.emit(fmt.Sprintf("Lecture saved to your library (ID %d).", lecture.ID), ClassSuccess)
	return nil
}

// export failures are reported but never undo the saved lecture.
func (o *implOrchestrator) export(ctx context.Context, job *Job, e emitter) {
	path, err := o.exporter.Export(ctx, export.Document{
		LectureID:  job.LectureID,
		Title:      job.Title,
		Format:     job.Format,
		Summary:    *job.Summary,
		Transcript: *job.Transcript,
	})
	if err != nil {
		o.logger.Warn(ctx, "Export failed for lecture %d: %v", job.LectureID, err)
		e.emit("Export failed, your notes are still saved in the library.", ClassDanger)
		return
	}
	job.ExportPath = path
	e.emit("Study notes ready: "+filepath.Base(path), ClassSuccess)
}
