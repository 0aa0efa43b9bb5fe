package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "perfiles.json", cfg.Storage.ProfilesFile)
	assert.Equal(t, filepath.Join("historial", "tareas.json"), cfg.Storage.HistoryFile)
	assert.Equal(t, 15000, cfg.Attachments.MaxChars)
	assert.True(t, cfg.Export.Enabled)
	assert.False(t, cfg.Voice.Enabled)
	assert.Equal(t, 16000, cfg.Voice.SampleRate)
	assert.Equal(t, 120, cfg.Voice.MaxRecordSeconds)
}

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default().Storage, cfg.Storage)
	})

	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 15000, cfg.Attachments.MaxChars)
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prom9.yaml")
		require.NoError(t, os.WriteFile(path, []byte("data_dir: [broken"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("partial file keeps defaults for the rest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prom9.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"data_dir: /datos\nattachments:\n  max_chars: 500\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/datos", cfg.DataDir)
		assert.Equal(t, 500, cfg.Attachments.MaxChars)
		assert.Equal(t, "perfiles.json", cfg.Storage.ProfilesFile)
		assert.Equal(t, "https://api.openai.com", cfg.Voice.BaseURL)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("PROM9_DATA_DIR", "/desde-env")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "/desde-env", cfg.DataDir)
		assert.Equal(t, "sk-test", cfg.Voice.APIKey)
	})

	t.Run("file api key wins over env", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")
		path := filepath.Join(t.TempDir(), "prom9.yaml")
		require.NoError(t, os.WriteFile(path, []byte("voice:\n  api_key: sk-file\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sk-file", cfg.Voice.APIKey)
	})
}

func TestPathResolution(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/datos"

	paths := cfg.StorePaths()
	assert.Equal(t, "/datos/perfiles.json", paths.Profiles)
	assert.Equal(t, "/datos/contextos.json", paths.Contexts)
	assert.Equal(t, filepath.Join("/datos", "historial", "tareas.json"), paths.History)
	assert.Equal(t, "/datos/exportaciones", cfg.ExportDir())

	cfg.Export.OutDir = "/absoluto/pdf"
	assert.Equal(t, "/absoluto/pdf", cfg.ExportDir())
}
