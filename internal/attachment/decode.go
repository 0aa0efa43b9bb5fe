package attachment

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"prom9/internal/fault"
)

// readFileText extracts text from the file at path. PDFs go through the
// page-by-page extractor; everything else is decoded as UTF-8 with a
// Latin-1 fallback.
func readFileText(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		return extractPDFText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fault.NotFound(path)
	}
	return decodeText(data, filepath.Base(path))
}

// decodeText decodes raw bytes as UTF-8, falling back to Latin-1. Content
// carrying NUL bytes is rejected as binary: Latin-1 assigns a character to
// every byte value, so without this check no file could ever fail.
func decodeText(data []byte, name string) (string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return "", fault.BinaryOrUnsupported(name)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	// Latin-1: each byte is the code point with the same value.
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
