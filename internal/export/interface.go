package export

import "context"

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Document is the content of one exported study guide.
type Document struct {
	LectureID  uint
	Title      string
	Format     string
	Summary    string
	Transcript string
}

// Exporter renders study guides to files at deterministic paths.
type Exporter interface {
	// Export writes doc and returns the written path.
	Export(ctx context.Context, doc Document) (string, error)
	// Path is where Export writes a lecture in the given format.
	Path(lectureID uint, format string) string
}
