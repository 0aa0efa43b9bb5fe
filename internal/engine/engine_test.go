package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prom9/internal/fault"
)

func baseTask(area string) map[string]string {
	return map[string]string{
		"area":           area,
		"objetivo":       "Revisar API",
		"entradas":       "Código en Go",
		"restricciones":  "Sin dependencias nuevas",
		"formato_salida": "Informe",
	}
}

func TestGenerateFullITPrompt(t *testing.T) {
	eng := New(0)
	perfil := map[string]any{"nombre": "Ana", "rol": "CTO"}
	contexto := map[string]any{"nombre": "Proyecto X", "rol_contextual": "Asesor"}

	task := baseTask("it")
	task["stack"] = "Go"

	out, err := eng.Generate(task, perfil, contexto, nil)
	require.NoError(t, err)

	for _, want := range []string{"Ana", "CTO", "Proyecto X", "Asesor", "Revisar API", "Go"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "[Extensión IT]")
	assert.True(t, strings.HasSuffix(out, "- No incluir elogios ni frases motivacionales."),
		"IT prompts must end with the technical guidelines block")
}

func TestGenerateDefaults(t *testing.T) {
	eng := New(0)

	t.Run("profile and context fall back", func(t *testing.T) {
		out, err := eng.Generate(baseTask("gestion"), nil, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, out, "1) Perfil: Usuario (Profesional)")
		assert.Contains(t, out, "2) Contexto: General - Rol contextual: Asistente")
	})

	t.Run("prioridad defaults on blank", func(t *testing.T) {
		task := baseTask("gestion")
		task["prioridad"] = "   "
		out, err := eng.Generate(task, nil, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, out, "7) Prioridad: Media")
	})

	t.Run("area fields default only when absent", func(t *testing.T) {
		task := baseTask("it")
		out, err := eng.Generate(task, nil, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, out, "- Stack/entorno: Python 3.9+")

		task["stack"] = ""
		out, err = eng.Generate(task, nil, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, out, "- Stack/entorno: \n")
	})
}

func TestGenerateAreaRouting(t *testing.T) {
	eng := New(0)
	cases := []struct {
		area   string
		marker string
	}{
		{"it", "[Extensión IT]"},
		{"IT", "[Extensión IT]"},
		{" it ", "[Extensión IT]"},
		{"ventas", "[Extensión Ventas]"},
		{"contabilidad", "[Extensión Contabilidad]"},
		{"unknown", "[Extensión Gestión]"},
		{"", "[Extensión Gestión]"},
	}
	for _, tc := range cases {
		t.Run("area_"+tc.area, func(t *testing.T) {
			out, err := eng.Generate(baseTask(tc.area), nil, nil, nil)
			require.NoError(t, err)
			assert.Contains(t, out, tc.marker)
		})
	}
}

func TestGenerateGuidelinesOnlyForIT(t *testing.T) {
	eng := New(0)
	out, err := eng.Generate(baseTask("ventas"), nil, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "Directrices obligatorias de análisis técnico")
}

func TestGenerateSpecializationFromProfile(t *testing.T) {
	eng := New(0)
	perfil := map[string]any{
		"nombre":                   "Marta",
		"rol":                      "Gerente",
		"especializacion_agricola": []string{"olivar", "viñedo"},
	}
	out, err := eng.Generate(baseTask("gestion"), perfil, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "10) Este perfil está especializado en los siguientes cultivos agrícolas: olivar, viñedo.")
	assert.Contains(t, out, "la gestión de olivar, viñedo.")
}

func TestGenerateWithAttachments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nota.txt")
	require.NoError(t, os.WriteFile(path, []byte("detalle adjunto"), 0o644))

	eng := New(0)
	out, err := eng.Generate(baseTask("gestion"), nil, nil, []string{path})
	require.NoError(t, err)
	assert.Contains(t, out, "## Archivos adjuntos para análisis")
	assert.Contains(t, out, "--- nota.txt ---\ndetalle adjunto")
}

func TestGenerateAttachmentErrorsPropagate(t *testing.T) {
	eng := New(0)

	t.Run("missing file", func(t *testing.T) {
		_, err := eng.Generate(baseTask("gestion"), nil, nil, []string{"/no/existe.txt"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, fault.ErrNotFound))
	})

	t.Run("unsupported type", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bin.exe")
		require.NoError(t, os.WriteFile(path, []byte("MZ"), 0o644))
		_, err := eng.Generate(baseTask("gestion"), nil, nil, []string{path})
		assert.True(t, errors.Is(err, fault.ErrUnsupportedType))
	})
}

func TestGenerateAttachmentsBeforeGuidelines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nota.txt")
	require.NoError(t, os.WriteFile(path, []byte("detalle"), 0o644))

	eng := New(0)
	out, err := eng.Generate(baseTask("it"), nil, nil, []string{path})
	require.NoError(t, err)
	assert.Less(t,
		strings.Index(out, "## Archivos adjuntos"),
		strings.Index(out, "Directrices obligatorias"))
}
