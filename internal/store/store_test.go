package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prom9/internal/fault"
	"prom9/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(Paths{
		Profiles: filepath.Join(dir, "perfiles.json"),
		Contexts: filepath.Join(dir, "contextos.json"),
		History:  filepath.Join(dir, "historial", "tareas.json"),
	}, nil)
}

func record(id string) task.Record {
	return task.Record{
		ID:        id,
		Usuario:   "Ana",
		Contexto:  "Proyecto X",
		Area:      "it",
		Objetivo:  "objetivo",
		CreatedAt: "2024-01-01T00:00:00Z",
	}
}

func TestListTasksEmptyOnMissingFile(t *testing.T) {
	st := newTestStore(t)
	assert.Empty(t, st.ListTasks())
}

func TestListTasksEmptyOnMalformedFile(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(st.paths.History), 0o755))
	require.NoError(t, os.WriteFile(st.paths.History, []byte("{not json"), 0o644))
	assert.Empty(t, st.ListTasks())
}

func TestSaveTaskUpsert(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.SaveTask(record("20240101000000")))
	require.NoError(t, st.SaveTask(record("20240102000000")))
	require.Len(t, st.ListTasks(), 2)

	// Same id replaces in place; the collection does not grow.
	updated := record("20240101000000")
	updated.PromptGenerado = "prompt nuevo"
	require.NoError(t, st.SaveTask(updated))

	records := st.ListTasks()
	require.Len(t, records, 2)
	found, err := st.FindTask("20240101000000")
	require.NoError(t, err)
	assert.Equal(t, "prompt nuevo", found.PromptGenerado)
}

func TestListTasksNewestFirst(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SaveTask(record("20240101000000")))
	require.NoError(t, st.SaveTask(record("20240103000000")))
	require.NoError(t, st.SaveTask(record("20240102000000")))

	records := st.ListTasks()
	require.Len(t, records, 3)
	assert.Equal(t, "20240103000000", records[0].ID)
	assert.Equal(t, "20240102000000", records[1].ID)
	assert.Equal(t, "20240101000000", records[2].ID)
}

func TestDeleteTask(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SaveTask(record("20240101000000")))

	t.Run("existing", func(t *testing.T) {
		require.NoError(t, st.DeleteTask("20240101000000"))
		assert.Empty(t, st.ListTasks())
	})

	t.Run("nonexistent leaves collection unchanged", func(t *testing.T) {
		require.NoError(t, st.SaveTask(record("20240105000000")))
		err := st.DeleteTask("20990101000000")
		require.Error(t, err)
		assert.True(t, errors.Is(err, fault.ErrNotFound))
		assert.Contains(t, err.Error(), "20990101000000")
		assert.Len(t, st.ListTasks(), 1)
	})
}

func TestFindTask(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SaveTask(record("20240101000000")))

	rec, err := st.FindTask("20240101000000")
	require.NoError(t, err)
	assert.Equal(t, "Ana", rec.Usuario)

	_, err = st.FindTask("nope")
	assert.True(t, errors.Is(err, fault.ErrNotFound))
}

func TestWriteKeepsUTF8Literal(t *testing.T) {
	st := newTestStore(t)
	rec := record("20240101000000")
	rec.Objetivo = "análisis & diseño <técnico>"
	require.NoError(t, st.SaveTask(rec))

	data, err := os.ReadFile(st.paths.History)
	require.NoError(t, err)
	assert.Contains(t, string(data), "análisis & diseño <técnico>")
	assert.NotContains(t, string(data), `\u`)

	// Indented output, one valid JSON array.
	assert.True(t, strings.Contains(string(data), "\n  "))
	var out []task.Record
	require.NoError(t, json.Unmarshal(data, &out))
}

func TestLoadProfiles(t *testing.T) {
	st := newTestStore(t)

	t.Run("missing file yields empty", func(t *testing.T) {
		assert.Empty(t, st.LoadProfiles())
	})

	t.Run("entries without nombre are dropped", func(t *testing.T) {
		require.NoError(t, st.SaveProfiles([]map[string]any{
			{"nombre": "Ana", "rol": "CTO"},
			{"rol": "sin nombre"},
			{"nombre": ""},
		}))
		perfiles := st.LoadProfiles()
		require.Len(t, perfiles, 1)
		assert.Equal(t, "Ana", perfiles[0]["nombre"])
	})

	t.Run("list fields normalize from strings and arrays", func(t *testing.T) {
		require.NoError(t, st.SaveProfiles([]map[string]any{{
			"nombre":                   "Marta",
			"herramientas":             "Excel, SAP\nPower BI",
			"especializacion_agricola": []any{"olivar", " viñedo ", ""},
		}}))
		perfiles := st.LoadProfiles()
		require.Len(t, perfiles, 1)
		assert.Equal(t, []string{"Excel", "SAP", "Power BI"}, perfiles[0]["herramientas"])
		assert.Equal(t, []string{"olivar", "viñedo"}, perfiles[0]["especializacion_agricola"])
	})
}

func TestLoadContexts(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SaveContexts([]map[string]any{{
		"nombre":  "Proyecto X",
		"enfoque": "calidad, plazos",
	}}))
	contextos := st.LoadContexts()
	require.Len(t, contextos, 1)
	assert.Equal(t, []string{"calidad", "plazos"}, contextos[0]["enfoque"])
}

func TestUpsertProfile(t *testing.T) {
	st := newTestStore(t)

	t.Run("missing nombre is rejected", func(t *testing.T) {
		err := st.UpsertProfile(map[string]any{"rol": "CTO"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
	})

	t.Run("insert then replace without growing", func(t *testing.T) {
		require.NoError(t, st.UpsertProfile(map[string]any{"nombre": "Ana", "rol": "CTO"}))
		require.NoError(t, st.UpsertProfile(map[string]any{"nombre": "Marta", "rol": "Gerente"}))
		require.Len(t, st.LoadProfiles(), 2)

		require.NoError(t, st.UpsertProfile(map[string]any{"nombre": "Ana", "rol": "CISO"}))
		perfiles := st.LoadProfiles()
		require.Len(t, perfiles, 2)
		assert.Equal(t, "CISO", FindByName(perfiles, "Ana")["rol"])
	})

	t.Run("list fields normalize on write", func(t *testing.T) {
		require.NoError(t, st.UpsertProfile(map[string]any{
			"nombre":                   "Pedro",
			"herramientas":             "Excel, SAP\nPower BI",
			"especializacion_agricola": "olivar, viñedo",
		}))
		perfil := FindByName(st.LoadProfiles(), "Pedro")
		require.NotNil(t, perfil)
		assert.Equal(t, []string{"Excel", "SAP", "Power BI"}, perfil["herramientas"])
		assert.Equal(t, []string{"olivar", "viñedo"}, perfil["especializacion_agricola"])
	})
}

func TestDeleteProfile(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.UpsertProfile(map[string]any{"nombre": "Ana"}))
	require.NoError(t, st.UpsertProfile(map[string]any{"nombre": "Marta"}))

	t.Run("existing", func(t *testing.T) {
		require.NoError(t, st.DeleteProfile("Ana"))
		assert.Nil(t, FindByName(st.LoadProfiles(), "Ana"))
		assert.Len(t, st.LoadProfiles(), 1)
	})

	t.Run("nonexistent leaves collection unchanged", func(t *testing.T) {
		err := st.DeleteProfile("Pedro")
		require.Error(t, err)
		assert.True(t, errors.Is(err, fault.ErrNotFound))
		assert.Contains(t, err.Error(), "Pedro")
		assert.Len(t, st.LoadProfiles(), 1)
	})
}

func TestUpsertAndDeleteContext(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.UpsertContext(map[string]any{
		"nombre":         "Proyecto X",
		"rol_contextual": "Asesor",
		"enfoque":        "calidad, plazos",
	}))
	contexto := FindByName(st.LoadContexts(), "Proyecto X")
	require.NotNil(t, contexto)
	assert.Equal(t, []string{"calidad", "plazos"}, contexto["enfoque"])

	require.NoError(t, st.UpsertContext(map[string]any{
		"nombre":         "Proyecto X",
		"rol_contextual": "Auditor",
	}))
	contextos := st.LoadContexts()
	require.Len(t, contextos, 1)
	assert.Equal(t, "Auditor", contextos[0]["rol_contextual"])

	require.NoError(t, st.DeleteContext("Proyecto X"))
	assert.Empty(t, st.LoadContexts())
	assert.True(t, errors.Is(st.DeleteContext("Proyecto X"), fault.ErrNotFound))
}

func TestFindByName(t *testing.T) {
	items := []map[string]any{
		{"nombre": "Ana"},
		{"nombre": "Marta"},
	}
	assert.NotNil(t, FindByName(items, "Marta"))
	assert.Nil(t, FindByName(items, "Pedro"))
	assert.Nil(t, FindByName(nil, "Ana"))
}
