// Package task defines the persisted record of one prompt-generation
// request. Field names in JSON keep the Spanish keys of the on-disk history
// format, so histories written by earlier versions of the tool load as-is.
package task

import "time"

// Record is one entry in the task history. The labels usuario/contexto/area
// are copied from the selected profile and context at generation time; they
// do not reference the live collections, so renaming a profile later leaves
// existing records untouched.
//
// PromptGenerado is the only field meant to change after construction (the
// user may edit the prompt before saving). CreatedAt is set once.
type Record struct {
	ID            string `json:"id"`
	Usuario       string `json:"usuario"`
	Contexto      string `json:"contexto"`
	Area          string `json:"area"`
	Objetivo      string `json:"objetivo"`
	Entradas      string `json:"entradas"`
	Restricciones string `json:"restricciones"`
	FormatoSalida string `json:"formato_salida"`
	Prioridad     string `json:"prioridad"`

	PromptGenerado string `json:"prompt_generado"`
	CreatedAt      string `json:"created_at"`
}

// idFormat produces ids that sort lexicographically in chronological order,
// so the history's newest-first listing is a plain descending sort on id.
// Two records created within the same second share an id; the store's upsert
// makes that last-write-wins.
const idFormat = "20060102150405"

// NewID returns a sortable timestamp-derived id for a record created now.
func NewID() string {
	return time.Now().UTC().Format(idFormat)
}

// Timestamp returns the current time in ISO-8601 UTC, the format used for
// the created_at field.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// New builds a record with a fresh id and creation timestamp.
func New(usuario, contexto, area string) Record {
	return Record{
		ID:        NewID(),
		Usuario:   usuario,
		Contexto:  contexto,
		Area:      area,
		CreatedAt: Timestamp(),
	}
}

// Clone returns a copy of r with a fresh id and creation timestamp. The
// regenerated prompt, if any, is the caller's responsibility to set.
func (r Record) Clone() Record {
	clone := r
	clone.ID = NewID()
	clone.CreatedAt = Timestamp()
	return clone
}
