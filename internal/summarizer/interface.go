package summarizer

import "context"

const (
	BriefMessage = "The provided content was too brief to generate meaningful study notes."
	EmptyMessage = "The AI was unable to generate a summary for this lecture."
)

// Update is one item of a summary stream. Chunk updates carry partial text;
// the single Done update carries the final, never-empty summary.
type Update struct {
	Chunk  string
	Final  string
	Done   bool
	Failed bool
}

// Summarizer turns a transcript into study notes.
type Summarizer interface {
	// Stream forwards chunks as they arrive and ends with exactly one Done
	// update before the channel is closed.
	Stream(ctx context.Context, transcript string) <-chan Update
	// Summarize drains Stream and returns the final summary.
	Summarize(ctx context.Context, transcript string) (summary string, failed bool)
}
