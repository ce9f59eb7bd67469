package transcriber

import "context"

// HeartbeatMessage is emitted on every poll interval while the remote call runs.
const HeartbeatMessage = "AI Professor is listening to the lecture..."

// Segment is one timestamped piece of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the outcome of a remote transcription call.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Client is a remote speech-to-text service.
type Client interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

type Kind int

const (
	KindHeartbeat Kind = iota
	KindLine
	KindDone
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindHeartbeat:
		return "heartbeat"
	case KindLine:
		return "line"
	case KindDone:
		return "done"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Update is one item of a transcription stream. KindDone carries the full
// transcript; KindError carries a readable failure message.
type Update struct {
	Kind Kind
	Text string
}

// Worker runs a Client in the background and streams progress.
type Worker interface {
	// Transcribe streams heartbeats while the call runs, then either one
	// KindError update or the rendered lines followed by one KindDone.
	// The channel is closed afterwards.
	Transcribe(ctx context.Context, audioPath string) <-chan Update
}
