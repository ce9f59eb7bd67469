package llm

import "context"

// Request is a single prompt to the chat model.
type Request struct {
	System string
	Prompt string
	// JSON asks the model for an application/json response.
	JSON bool
	// Zero values fall back to the client defaults.
	Temperature float32
	MaxTokens   int32
}

// StreamChunk is one incremental piece of a streamed completion.
// A chunk with Err set is always the last one.
type StreamChunk struct {
	Content string
	Err     error
}

// Client is a chat-completion service with single-shot, streaming and
// inline-data (vision/document) modes.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Stream delivers chunks until the completion ends; the channel is then closed.
	Stream(ctx context.Context, req Request) <-chan StreamChunk
	// Extract sends a file (image or PDF) together with an instruction.
	Extract(ctx context.Context, data []byte, mimeType, instruction string) (string, error)
}
