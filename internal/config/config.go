// Package config holds all prom9 configuration. The config is loaded once
// at startup from an optional YAML file plus environment overrides and
// passed explicitly to the components that need it.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"prom9/internal/store"
)

// Config is the root configuration.
type Config struct {
	// DataDir is the base directory for the persisted collections and
	// exports. Relative paths inside the config resolve against it.
	DataDir string `yaml:"data_dir"`

	Storage     StorageConfig     `yaml:"storage"`
	Attachments AttachmentsConfig `yaml:"attachments"`
	Export      ExportConfig      `yaml:"export"`
	Voice       VoiceConfig       `yaml:"voice"`
}

// StorageConfig names the three collection files.
type StorageConfig struct {
	ProfilesFile string `yaml:"profiles_file"`
	ContextsFile string `yaml:"contexts_file"`
	HistoryFile  string `yaml:"history_file"`
}

// AttachmentsConfig bounds attachment handling.
type AttachmentsConfig struct {
	// MaxChars is the per-block character limit for attachment content.
	MaxChars int `yaml:"max_chars"`
}

// ExportConfig configures PDF export.
type ExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	OutDir  string `yaml:"out_dir"`
}

// VoiceConfig configures dictation capture and transcription.
type VoiceConfig struct {
	Enabled          bool   `yaml:"enabled"`
	SampleRate       int    `yaml:"sample_rate"`
	Channels         int    `yaml:"channels"`
	MaxRecordSeconds int    `yaml:"max_record_seconds"`
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url"`
	Model            string `yaml:"model"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir: ".",
		Storage: StorageConfig{
			ProfilesFile: "perfiles.json",
			ContextsFile: "contextos.json",
			HistoryFile:  filepath.Join("historial", "tareas.json"),
		},
		Attachments: AttachmentsConfig{MaxChars: 15000},
		Export: ExportConfig{
			Enabled: true,
			OutDir:  "exportaciones",
		},
		Voice: VoiceConfig{
			Enabled:          false,
			SampleRate:       16000,
			Channels:         1,
			MaxRecordSeconds: 120,
			BaseURL:          "https://api.openai.com",
			Model:            "gpt-4o-mini-transcribe",
		},
	}
}

// Load reads the YAML config at path over the defaults, then applies
// environment overrides. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil && os.IsNotExist(err):
			// defaults apply
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnv()
	cfg.applyFallbacks()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PROM9_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.Voice.APIKey == "" {
		c.Voice.APIKey = v
	}
}

// applyFallbacks restores defaults for fields a partial YAML file zeroed.
func (c *Config) applyFallbacks() {
	def := Default()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Storage.ProfilesFile == "" {
		c.Storage.ProfilesFile = def.Storage.ProfilesFile
	}
	if c.Storage.ContextsFile == "" {
		c.Storage.ContextsFile = def.Storage.ContextsFile
	}
	if c.Storage.HistoryFile == "" {
		c.Storage.HistoryFile = def.Storage.HistoryFile
	}
	if c.Attachments.MaxChars <= 0 {
		c.Attachments.MaxChars = def.Attachments.MaxChars
	}
	if c.Export.OutDir == "" {
		c.Export.OutDir = def.Export.OutDir
	}
	if c.Voice.SampleRate <= 0 {
		c.Voice.SampleRate = def.Voice.SampleRate
	}
	if c.Voice.Channels <= 0 {
		c.Voice.Channels = def.Voice.Channels
	}
	if c.Voice.MaxRecordSeconds <= 0 {
		c.Voice.MaxRecordSeconds = def.Voice.MaxRecordSeconds
	}
	if c.Voice.BaseURL == "" {
		c.Voice.BaseURL = def.Voice.BaseURL
	}
	if c.Voice.Model == "" {
		c.Voice.Model = def.Voice.Model
	}
}

// StorePaths resolves the collection files against DataDir.
func (c *Config) StorePaths() store.Paths {
	return store.Paths{
		Profiles: c.resolve(c.Storage.ProfilesFile),
		Contexts: c.resolve(c.Storage.ContextsFile),
		History:  c.resolve(c.Storage.HistoryFile),
	}
}

// ExportDir resolves the PDF output directory against DataDir.
func (c *Config) ExportDir() string {
	return c.resolve(c.Export.OutDir)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}
