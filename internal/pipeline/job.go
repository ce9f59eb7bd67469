package pipeline

import (
	"path/filepath"
	"strings"
)

type State string

const (
	StateInit       State = "INIT"
	StateNormalize  State = "NORMALIZE"
	StateTranscribe State = "TRANSCRIBE"
	StateSummarize  State = "SUMMARIZE"
	StatePersist    State = "PERSIST"
	StateExport     State = "EXPORT"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Job is one lecture moving through the pipeline. Transcript and Summary stay
// nil until their stage completes.
type Job struct {
	ID               string
	UserID           uint
	SourcePath       string
	NormalizedPath   string
	OriginalFilename string
	Title            string
	Format           string

	Lines      []string
	Transcript *string
	Summary    *string

	Status     Status
	State      State
	LectureID  uint
	ExportPath string
	Err        error
}

func (j *Job) fail(err error) {
	j.State = StateFailed
	j.Status = StatusFailed
	j.Err = err
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".aac": true,
	".ogg": true, ".flac": true, ".webm": true, ".mp4": true,
}

// IsAudio reports whether name has an extension the pipeline accepts.
func IsAudio(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}
