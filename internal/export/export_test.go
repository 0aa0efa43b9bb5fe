package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prom9/internal/fault"
	"prom9/internal/task"
)

func TestRecordMetadata(t *testing.T) {
	rec := task.Record{
		ID:        "20240101000000",
		Usuario:   "Ana",
		Contexto:  "Proyecto X",
		Area:      "it",
		CreatedAt: "2024-01-01T00:00:00Z",
	}

	meta := RecordMetadata(rec)
	require.Len(t, meta, 5)
	assert.Equal(t, MetaEntry{Key: "ID", Value: "20240101000000"}, meta[0])
	assert.Equal(t, "Área", meta[3].Key)
	assert.Equal(t, "it", meta[3].Value)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Export("t", nil, "p", "out.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrDependencyUnavailable))
}

func TestPDFExport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sub", "prompt.pdf")

	rec := task.Record{ID: "20240101000000", Usuario: "Ana", Area: "gestión"}
	written, err := NewPDF().Export(
		"Prompt PROM-9",
		RecordMetadata(rec),
		"PROM-9™ | Base\n1) Perfil: Ana (CTO)\n\n[Extensión Gestión]",
		out,
	)
	require.NoError(t, err)
	assert.Equal(t, out, written)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[0:4]))
}
