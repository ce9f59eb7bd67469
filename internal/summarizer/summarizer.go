package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/pkg/textutil"
)

const systemPrompt = "You are a professional academic tutor. Create highly structured study notes. " +
	"Use Markdown formatting, bold key terms, and include a summary section."

const userPrompt = "Please summarize this lecture transcript:\n\n%s"

// FailureMessage is the stored summary when the model call fails.
func FailureMessage(err error) string {
	return fmt.Sprintf("Notice: The transcript was saved, but the summary failed. (AI Error: %v)", err)
}

func (s *implSummarizer) Stream(ctx context.Context, transcript string) <-chan Update {
	out := make(chan Update)
	go s.run(ctx, transcript, out)
	return out
}

func (s *implSummarizer) run(ctx context.Context, transcript string, out chan<- Update) {
	defer close(out)

	if textutil.NonSpaceLen(transcript) < s.minChars {
		s.logger.Warn(ctx, "Transcript too short for summarization (%d chars)", textutil.NonSpaceLen(transcript))
		if send(ctx, out, Update{Chunk: BriefMessage}) {
			send(ctx, out, Update{Final: BriefMessage, Done: true})
		}
		return
	}

	input := textutil.Prefix(transcript, s.maxInputChars)
	s.logger.Info(ctx, "Starting AI generation for transcript (%d chars)", len(input))

	var buf strings.Builder
	chunks := s.llm.Stream(ctx, llm.Request{
		System: systemPrompt,
		Prompt: fmt.Sprintf(userPrompt, input),
	})
	for chunk := range chunks {
		if chunk.Err != nil {
			s.logger.Error(ctx, "Summary stream failed after %d chars: %v", buf.Len(), chunk.Err)
			send(ctx, out, Update{Final: FailureMessage(chunk.Err), Done: true, Failed: true})
			return
		}
		buf.WriteString(chunk.Content)
		if !send(ctx, out, Update{Chunk: chunk.Content}) {
			return
		}
	}

	if ctx.Err() != nil {
		return
	}

	final := buf.String()
	if strings.TrimSpace(final) == "" {
		s.logger.Warn(ctx, "Model returned an empty summary")
		final = EmptyMessage
	}
	s.logger.Info(ctx, "AI generation successful (%d chars)", len(final))
	send(ctx, out, Update{Final: final, Done: true})
}

func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, bool) {
	summary, failed := "", false
	for u := range s.Stream(ctx, transcript) {
		if u.Done {
			summary, failed = u.Final, u.Failed
		}
	}
	if summary == "" {
		// Only reachable when ctx was cancelled before the final update.
		return FailureMessage(ctx.Err()), true
	}
	return summary, failed
}

func send(ctx context.Context, out chan<- Update, u Update) bool {
	select {
	case out <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
