package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDF renders prompts with fpdf on A4 pages: a centered title, one line per
// metadata entry, then the prompt body as literal monospaced lines.
type PDF struct{}

// NewPDF returns the fpdf-backed exporter.
func NewPDF() *PDF {
	return &PDF{}
}

// Export writes the document to outPath, creating parent directories as
// needed. The body is emitted line by line in a fixed-width font so the
// prompt's own structure (numbered points, block markers) survives verbatim.
func (p *PDF) Export(titulo string, metadata []MetaEntry, prompt, outPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	// Core fonts are cp1252; the translator maps the UTF-8 Spanish text.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr(titulo), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 10)
	for _, entry := range metadata {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(28, 6, tr(entry.Key+":"), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 6, tr(entry.Value), "", "L", false)
	}
	doc.Ln(6)

	doc.SetFont("Courier", "", 9)
	for _, line := range strings.Split(prompt, "\n") {
		if line == "" {
			doc.Ln(4)
			continue
		}
		doc.MultiCell(0, 4, tr(line), "", "L", false)
	}

	if err := doc.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("escribir PDF %s: %w", outPath, err)
	}
	return outPath, nil
}
