package attachment

import (
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"prom9/internal/fault"
)

// extractPDFText pulls the plain text out of a PDF page by page. Pages with
// no extractable text contribute an empty line so page boundaries stay
// visible in the joined output.
func extractPDFText(path string) (string, error) {
	name := filepath.Base(path)

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fault.Extraction(name, err)
	}
	defer f.Close()

	var parts []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			parts = append(parts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fault.Extraction(name, err)
		}
		parts = append(parts, text)
	}

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}
