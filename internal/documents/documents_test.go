package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/summarizer"
)

type fakeLLM struct {
	text  string
	err   error
	mimes []string
}

func (f *fakeLLM) Generate(context.Context, llm.Request) (string, error) { return "", nil }

func (f *fakeLLM) Stream(context.Context, llm.Request) <-chan llm.StreamChunk {
	ch := make(chan llm.StreamChunk)
	close(ch)
	return ch
}

func (f *fakeLLM) Extract(_ context.Context, _ []byte, mimeType, _ string) (string, error) {
	f.mimes = append(f.mimes, mimeType)
	return f.text, f.err
}

type fakeSummarizer struct {
	summary string
	failed  bool
}

func (f fakeSummarizer) Stream(context.Context, string) <-chan summarizer.Update {
	ch := make(chan summarizer.Update, 1)
	ch <- summarizer.Update{Final: f.summary, Done: true, Failed: f.failed}
	close(ch)
	return ch
}

func (f fakeSummarizer) Summarize(context.Context, string) (string, bool) {
	return f.summary, f.failed
}

type fakeStore struct {
	saved []*models.Lecture
	err   error
}

func (f *fakeStore) CreateLecture(_ context.Context, l *models.Lecture) error {
	if f.err != nil {
		return f.err
	}
	l.ID = uint(len(f.saved) + 1)
	f.saved = append(f.saved, l)
	return nil
}

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestDocxText(t *testing.T) {
	data := buildDocx(t, "Photosynthesis happens in leaves.", "Chlorophyll absorbs light.")
	got, err := docxText(data)
	if err != nil {
		t.Fatalf("docxText() error = %v", err)
	}
	want := "Photosynthesis happens in leaves.\nChlorophyll absorbs light.\n"
	if got != want {
		t.Errorf("docxText() = %q, want %q", got, want)
	}

	if _, err := docxText([]byte("not a zip")); err == nil {
		t.Error("docxText() should reject non-zip data")
	}
}

func TestExtract(t *testing.T) {
	client := &fakeLLM{text: "Text read from a scanned page of notes."}
	svc := New(client, fakeSummarizer{}, &fakeStore{}, logger.NewNop())

	got, err := svc.Extract(context.Background(), []File{
		{Name: "intro.TXT", Data: []byte("Cells are the unit of life.")},
		{Name: "week2.docx", Data: buildDocx(t, "Mitosis has four phases.")},
		{Name: "scan.jpg", Data: []byte{0xff, 0xd8}},
		{Name: "slides.pdf", Data: []byte("%PDF-1.4")},
		{Name: "archive.zip", Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for _, part := range []string{"Cells are the unit of life.", "Mitosis has four phases.", "scanned page"} {
		if !strings.Contains(got, part) {
			t.Errorf("Extract() missing %q in %q", part, got)
		}
	}
	if strings.Join(client.mimes, ",") != "image/jpeg,application/pdf" {
		t.Errorf("vision mime types = %v", client.mimes)
	}
}

func TestExtractTooShort(t *testing.T) {
	svc := New(&fakeLLM{err: errors.New("vision down")}, fakeSummarizer{}, &fakeStore{}, logger.NewNop())

	tests := []struct {
		name  string
		files []File
	}{
		{"no files", nil},
		{"tiny text", []File{{Name: "a.txt", Data: []byte("hi")}}},
		{"vision failure", []File{{Name: "a.png", Data: []byte{1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Extract(context.Background(), tt.files)
			if !apperror.Is(err, apperror.CodeInvalidInput) {
				t.Errorf("Extract() error = %v, want invalid input", err)
			}
		})
	}
}

func TestImport(t *testing.T) {
	store := &fakeStore{}
	svc := New(&fakeLLM{}, fakeSummarizer{summary: "# Notes"}, store, logger.NewNop())

	name := strings.Repeat("n", 60) + ".txt"
	lecture, err := svc.Import(context.Background(), 4, []File{{Name: name, Data: []byte("Enough text to pass the minimum length check.")}})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if lecture.ID == 0 || lecture.UserID != 4 || lecture.Summary != "# Notes" {
		t.Errorf("lecture = %+v", lecture)
	}
	if len([]rune(lecture.Title)) != maxTitleChars {
		t.Errorf("Title length = %d, want %d", len([]rune(lecture.Title)), maxTitleChars)
	}
}

func TestSupported(t *testing.T) {
	for name, want := range map[string]bool{
		"a.pdf": true, "b.DOCX": true, "c.txt": true, "d.jpeg": true, "e.mp3": false, "f": false,
	} {
		if got := Supported(name); got != want {
			t.Errorf("Supported(%q) = %v, want %v", name, got, want)
		}
	}
}
