package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	require.Len(t, id, 14)
	parsed, err := time.Parse("20060102150405", id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestNew(t *testing.T) {
	rec := New("Ana", "Proyecto X", "it")
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Ana", rec.Usuario)
	assert.Equal(t, "Proyecto X", rec.Contexto)
	assert.Equal(t, "it", rec.Area)

	created, err := time.Parse(time.RFC3339, rec.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), created, time.Minute)
}

func TestClone(t *testing.T) {
	original := Record{
		ID:             "20240101000000",
		Usuario:        "Ana",
		Contexto:       "Proyecto X",
		Area:           "ventas",
		Objetivo:       "objetivo",
		PromptGenerado: "prompt original",
		CreatedAt:      "2024-01-01T00:00:00Z",
	}

	clone := original.Clone()
	assert.NotEqual(t, original.ID, clone.ID)
	assert.NotEqual(t, original.CreatedAt, clone.CreatedAt)
	assert.Equal(t, original.Usuario, clone.Usuario)
	assert.Equal(t, original.Objetivo, clone.Objetivo)
	assert.Equal(t, original.PromptGenerado, clone.PromptGenerado)
}

func TestJSONKeysAreSpanish(t *testing.T) {
	data, err := json.Marshal(Record{ID: "x", FormatoSalida: "lista"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"formato_salida"`)
	assert.Contains(t, string(data), `"prompt_generado"`)
	assert.Contains(t, string(data), `"created_at"`)
}
