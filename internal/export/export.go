// Package export renders a generated prompt into a paginated PDF document.
// Whether export is available is decided once at startup: callers receive
// either the fpdf-backed exporter or the Unavailable stub and never check
// capability themselves.
package export

import (
	"prom9/internal/fault"
	"prom9/internal/task"
)

// MetaEntry is one metadata line under the document title. Entries are a
// slice, not a map, so the rendered order is stable.
type MetaEntry struct {
	Key   string
	Value string
}

// Exporter writes a titled document with metadata lines and a preformatted
// prompt body, returning the path actually written.
type Exporter interface {
	Export(titulo string, metadata []MetaEntry, prompt, outPath string) (string, error)
}

// RecordMetadata builds the standard metadata lines for a task record.
func RecordMetadata(rec task.Record) []MetaEntry {
	return []MetaEntry{
		{Key: "ID", Value: rec.ID},
		{Key: "Usuario", Value: rec.Usuario},
		{Key: "Contexto", Value: rec.Contexto},
		{Key: "Área", Value: rec.Area},
		{Key: "Fecha", Value: rec.CreatedAt},
	}
}

// Unavailable is the stub used when PDF export is disabled or unusable.
type Unavailable struct{}

// Export always fails with DependencyUnavailable.
func (Unavailable) Export(string, []MetaEntry, string, string) (string, error) {
	return "", fault.DependencyUnavailable("exportación PDF")
}
