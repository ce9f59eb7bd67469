package export

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 18.0
	pdfBodySize   = 11.0
	pdfLineHeight = 5.5
)

// writePDF renders the summary, a rule, then the transcript.
// Core fonts only cover cp1252; other runes are translated best-effort.
func writePDF(doc Document, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(doc.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	heading(pdf, tr, "Summary", 18)
	if doc.Title != "" {
		pdf.SetFont("Helvetica", "I", pdfBodySize)
		pdf.MultiCell(0, pdfLineHeight, tr(doc.Title), "", "L", false)
		pdf.Ln(3)
	}

	for _, line := range strings.Split(doc.Summary, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || trimmed == "---":
			pdf.Ln(2)
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			heading(pdf, tr, cleanMarkdownInline(m[2]), float64(headingSize(len(m[1]))))
		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			body(pdf, tr, "- "+cleanMarkdownInline(m[1]))
		default:
			body(pdf, tr, cleanMarkdownInline(trimmed))
		}
	}

	pdf.Ln(4)
	width, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.Line(pdfMargin, y, width-pdfMargin, y)
	pdf.Ln(4)

	heading(pdf, tr, "Transcript", 18)
	for _, line := range strings.Split(doc.Transcript, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			body(pdf, tr, line)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func heading(pdf *fpdf.Fpdf, tr func(string) string, text string, size float64) {
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.5, tr(text), "", "L", false)
	pdf.Ln(2)
}

func body(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "", pdfBodySize)
	pdf.MultiCell(0, pdfLineHeight, tr(text), "", "L", false)
}
