package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/logger"
)

type scriptedLLM struct {
	chunks []string
	err    error
	calls  int
	prompt string
}

func (s *scriptedLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	return "", errors.New("not used")
}

func (s *scriptedLLM) Stream(ctx context.Context, req llm.Request) <-chan llm.StreamChunk {
	s.calls++
	s.prompt = req.Prompt
	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for _, c := range s.chunks {
			select {
			case out <- llm.StreamChunk{Content: c}:
			case <-ctx.Done():
				return
			}
		}
		if s.err != nil {
			out <- llm.StreamChunk{Err: s.err}
		}
	}()
	return out
}

func (s *scriptedLLM) Extract(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	return "", errors.New("not used")
}

func newTestSummarizer(client llm.Client) Summarizer {
	return New(config.SummaryConfig{MinChars: 50, MaxInputChars: 15000}, client, logger.NewNop())
}

func drain(ch <-chan Update) (chunks []string, finals []Update) {
	for u := range ch {
		if u.Done {
			finals = append(finals, u)
			continue
		}
		chunks = append(chunks, u.Chunk)
	}
	return chunks, finals
}

var longTranscript = strings.Repeat("[00:00] The mitochondria is the powerhouse of the cell. ", 5)

func TestStreamBriefContent(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
	}{
		{"empty", ""},
		{"whitespace only", strings.Repeat(" \n\t", 100)},
		{"49 visible chars", strings.Repeat("a ", 49)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedLLM{}
			chunks, finals := drain(newTestSummarizer(client).Stream(context.Background(), tt.transcript))

			if len(chunks) != 1 || chunks[0] != BriefMessage {
				t.Errorf("chunks = %q, want the brief message once", chunks)
			}
			if len(finals) != 1 || finals[0].Final != BriefMessage {
				t.Errorf("finals = %+v, want the brief message", finals)
			}
			if client.calls != 0 {
				t.Error("no remote call should be made for brief content")
			}
		})
	}
}

func TestStreamForwardsChunks(t *testing.T) {
	client := &scriptedLLM{chunks: []string{"# Notes\n", "**Cell** ", "biology"}}
	chunks, finals := drain(newTestSummarizer(client).Stream(context.Background(), longTranscript))

	if strings.Join(chunks, "|") != "# Notes\n|**Cell** |biology" {
		t.Errorf("chunks = %q", chunks)
	}
	if len(finals) != 1 {
		t.Fatalf("got %d final updates, want 1", len(finals))
	}
	if finals[0].Final != "# Notes\n**Cell** biology" || finals[0].Failed {
		t.Errorf("final = %+v", finals[0])
	}
}

func TestStreamEmptyModelOutput(t *testing.T) {
	client := &scriptedLLM{}
	chunks, finals := drain(newTestSummarizer(client).Stream(context.Background(), longTranscript))

	if len(chunks) != 0 {
		t.Errorf("chunks = %q, want none", chunks)
	}
	if len(finals) != 1 || finals[0].Final != EmptyMessage {
		t.Errorf("finals = %+v, want the empty-summary fallback", finals)
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
	}{
		{"before any chunk", nil},
		{"mid stream", []string{"partial ", "notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedLLM{chunks: tt.chunks, err: errors.New("503 overloaded")}
			chunks, finals := drain(newTestSummarizer(client).Stream(context.Background(), longTranscript))

			if len(chunks) != len(tt.chunks) {
				t.Errorf("got %d chunks, want %d", len(chunks), len(tt.chunks))
			}
			if len(finals) != 1 {
				t.Fatalf("got %d final updates, want 1", len(finals))
			}
			if !finals[0].Failed {
				t.Error("final should be marked failed")
			}
			want := "Notice: The transcript was saved, but the summary failed. (AI Error: 503 overloaded)"
			if finals[0].Final != want {
				t.Errorf("final = %q, want %q", finals[0].Final, want)
			}
		})
	}
}

func TestStreamTruncatesInput(t *testing.T) {
	transcript := strings.Repeat("a", 15000) + "TAIL-MARKER"
	client := &scriptedLLM{chunks: []string{"ok"}}
	drain(newTestSummarizer(client).Stream(context.Background(), transcript))

	if strings.Contains(client.prompt, "TAIL-MARKER") {
		t.Error("input beyond 15000 chars should not be sent")
	}
	if !strings.Contains(client.prompt, strings.Repeat("a", 15000)) {
		t.Error("the first 15000 chars should be sent verbatim")
	}
}

func TestFinalNeverEmpty(t *testing.T) {
	cases := []*scriptedLLM{
		{},
		{chunks: []string{"   ", "\n"}},
		{err: errors.New("boom")},
		{chunks: []string{"x"}, err: errors.New("boom")},
		{chunks: []string{"fine"}},
	}
	for i, client := range cases {
		for _, transcript := range []string{"", "short", longTranscript} {
			summary, _ := newTestSummarizer(client).Summarize(context.Background(), transcript)
			if strings.TrimSpace(summary) == "" {
				t.Errorf("case %d transcript %q: empty summary", i, transcript)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	summary, failed := newTestSummarizer(&scriptedLLM{chunks: []string{"a", "b"}}).Summarize(context.Background(), longTranscript)
	if summary != "ab" || failed {
		t.Errorf("Summarize() = %q, %v", summary, failed)
	}

	summary, failed = newTestSummarizer(&scriptedLLM{err: errors.New("x")}).Summarize(context.Background(), longTranscript)
	if !failed || !strings.HasPrefix(summary, "Notice:") {
		t.Errorf("Summarize() = %q, %v, want failure notice", summary, failed)
	}
}

func TestStreamCancelled(t *testing.T) {
	client := &scriptedLLM{chunks: []string{"a", "b", "c"}}
	ctx, cancel := context.WithCancel(context.Background())
	ch := newTestSummarizer(client).Stream(ctx, longTranscript)

	<-ch
	cancel()
	for range ch {
	}
}
