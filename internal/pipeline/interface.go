package pipeline

import "context"

// Sentinel is the final message of every event stream. Browsers close their
// EventSource when they see it.
const Sentinel = "____FINISHED____"

// Event is one line of the progress stream, serialized as an SSE data frame.
type Event struct {
	Msg   string `json:"msg"`
	Class string `json:"class,omitempty"`
}

const (
	ClassWarning  = "text-warning"
	ClassInfo     = "text-info"
	ClassSuccess  = "text-success"
	ClassMuted    = "text-muted"
	ClassDanger   = "text-danger fw-bold"
	ClassComplete = "text-primary fw-bold"
	ClassChunk    = "summary-chunk"
)

// Orchestrator runs lecture jobs.
type Orchestrator interface {
	// Run processes job and streams progress. The channel is closed when the
	// job ends or ctx is cancelled; job is safe to read after that.
	Run(ctx context.Context, job *Job) <-chan Event
}
