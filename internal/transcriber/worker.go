package transcriber

import (
	"context"
	"strings"
	"time"
)

type outcome struct {
	result *Result
	err    error
}

func (w *implWorker) Transcribe(ctx context.Context, audioPath string) <-chan Update {
	out := make(chan Update)
	go w.run(ctx, audioPath, out)
	return out
}

func (w *implWorker) run(ctx context.Context, audioPath string, out chan<- Update) {
	defer close(out)

	// Single slot: the call goroutine never blocks even if nobody reads.
	resultCh := make(chan outcome, 1)
	go func() {
		res, err := w.client.Transcribe(ctx, audioPath)
		resultCh <- outcome{result: res, err: err}
	}()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var res outcome
wait:
	for {
		select {
		case res = <-resultCh:
			break wait
		case <-ticker.C:
			if !send(ctx, out, Update{Kind: KindHeartbeat, Text: HeartbeatMessage}) {
				return
			}
		case <-ctx.Done():
			w.logger.Warn(ctx, "Transcription abandoned: %v", ctx.Err())
			return
		}
	}

	if res.err != nil {
		w.logger.Error(ctx, "Transcription failed for %s: %v", audioPath, res.err)
		send(ctx, out, Update{Kind: KindError, Text: "Transcription failed: " + res.err.Error()})
		return
	}

	var segments []Segment
	if res.result != nil {
		segments = res.result.Segments
	}
	lines := Render(segments)
	w.logger.Info(ctx, "Transcription finished: %d segments, %d lines", len(segments), len(lines))

	for i, line := range lines {
		if !send(ctx, out, Update{Kind: KindLine, Text: line}) {
			return
		}
		if w.typingDelay > 0 && i < len(lines)-1 {
			select {
			case <-time.After(w.typingDelay):
			case <-ctx.Done():
				return
			}
		}
	}

	send(ctx, out, Update{Kind: KindDone, Text: strings.Join(lines, "\n")})
}

func send(ctx context.Context, out chan<- Update, u Update) bool {
	select {
	case out <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
