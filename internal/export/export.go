package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeFormat maps user input to a supported format, defaulting to pdf.
func NormalizeFormat(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), FormatDOCX) {
		return FormatDOCX
	}
	return FormatPDF
}

func (e *implExporter) Path(lectureID uint, format string) string {
	return filepath.Join(e.outputDir, fmt.Sprintf("output_%d.%s", lectureID, NormalizeFormat(format)))
}

func (e *implExporter) Export(ctx context.Context, doc Document) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := e.Path(doc.LectureID, doc.Format)

	var err error
	switch NormalizeFormat(doc.Format) {
	case FormatDOCX:
		err = writeDocx(doc, path)
	default:
		err = writePDF(doc, path)
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}

	e.logger.Info(ctx, "Study notes written: %s", path)
	return path, nil
}
