// Package attachment reads supported files and formats their content as a
// prompt section, splitting oversized content into bounded blocks.
package attachment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prom9/internal/fault"
)

// DefaultMaxChars is the default per-block character limit.
const DefaultMaxChars = 15000

// sectionHeader opens the attachment section of a prompt.
const sectionHeader = "## Archivos adjuntos para análisis"

// supportedExtensions is the fixed allow-list: source text, JSON, plain
// text, markdown and PDF.
var supportedExtensions = map[string]bool{
	".go":   true,
	".py":   true,
	".json": true,
	".txt":  true,
	".md":   true,
	".pdf":  true,
}

// ValidateType reports whether the file's extension is supported.
func ValidateType(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// SplitBlocks divides text into blocks of at most maxChars characters.
// Slicing is by rune offset, never inside a UTF-8 sequence, and the
// concatenation of the returned blocks reconstructs the input exactly.
func SplitBlocks(text string, maxChars int) ([]string, error) {
	if maxChars <= 0 {
		return nil, fault.InvalidArgument("max_chars must be greater than zero, got %d", maxChars)
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return []string{text}, nil
	}

	var blocks []string
	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		blocks = append(blocks, string(runes[start:end]))
	}
	return blocks, nil
}

// Read loads every attachment and returns a single formatted section ready
// to append to a prompt. Content longer than maxChars per file is emitted as
// labeled blocks preceded by a notice. An empty path list yields an empty
// string; the caller omits the section in that case.
func Read(paths []string, maxChars int) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}
	if maxChars <= 0 {
		return "", fault.InvalidArgument("max_chars must be greater than zero, got %d", maxChars)
	}

	sections := []string{sectionHeader}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return "", fault.NotFound(path)
		}
		if !ValidateType(path) {
			return "", fault.UnsupportedType(filepath.Base(path))
		}

		content, err := readFileText(path)
		if err != nil {
			return "", err
		}

		blocks, err := SplitBlocks(content, maxChars)
		if err != nil {
			return "", err
		}

		name := filepath.Base(path)
		if len(blocks) == 1 {
			sections = append(sections, fmt.Sprintf("\n--- %s ---\n%s", name, blocks[0]))
			continue
		}

		sections = append(sections, fmt.Sprintf(
			"\n--- %s ---\n[AVISO] Archivo extenso dividido en %d bloques de hasta %d caracteres.",
			name, len(blocks), maxChars))
		for i, block := range blocks {
			sections = append(sections, fmt.Sprintf("\n[Bloque %d/%d]\n%s", i+1, len(blocks), block))
		}
	}

	return strings.TrimSpace(strings.Join(sections, "\n")), nil
}
