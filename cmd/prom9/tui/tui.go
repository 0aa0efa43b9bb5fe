// Package tui provides the interactive interface for prom9: a task form, a
// prompt preview with in-place editing, and a history browser. The
// functionality is split across files the usual way:
//   - model.go: types, construction, Init
//   - update.go: Update loop and key handling
//   - view.go: rendering
//   - commands.go: async tea.Cmd producers (generate, save, export, watch)
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prom9/internal/config"
	"prom9/internal/engine"
	"prom9/internal/export"
	"prom9/internal/jobs"
	"prom9/internal/store"
	"prom9/internal/voice"
)

// Deps is everything the interface needs, wired once by the caller.
// Recorder and Transcriber may be nil; dictation then reports itself as
// unavailable when invoked instead of being checked up front.
type Deps struct {
	Config      *config.Config
	Logger      *zap.Logger
	Store       *store.Store
	Engine      *engine.Engine
	Exporter    export.Exporter
	Runner      *jobs.Runner
	Recorder    *voice.Recorder
	Transcriber voice.Transcriber
}

// Run starts the interactive interface and blocks until the user quits.
func Run(deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Recorder == nil {
		deps.Recorder = voice.NewRecorder(voice.UnavailableSource{}, 0)
	}
	if deps.Transcriber == nil {
		deps.Transcriber = voice.UnavailableTranscriber{}
	}

	m := newModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()

	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	return err
}
