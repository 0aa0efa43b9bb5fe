package tui

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"prom9/internal/engine"
	"prom9/internal/export"
	"prom9/internal/jobs"
	"prom9/internal/store"
	"prom9/internal/task"
	"prom9/internal/voice"
)

type promptGeneratedMsg struct {
	prompt string
	rec    task.Record
}

type generateFailedMsg struct{ err error }

type jobDoneMsg struct {
	name string
	err  error
	path string // set for exports
}

type collectionChangedMsg struct{ coll store.Collection }

type dictationMsg struct {
	text string
	err  error
}

// generatePrompt runs the engine off the update loop; attachment reads can
// take a moment.
func generatePrompt(eng *engine.Engine, data map[string]string, perfil, contexto map[string]any, adjuntos []string, rec task.Record) tea.Cmd {
	return func() tea.Msg {
		prompt, err := eng.Generate(data, perfil, contexto, adjuntos)
		if err != nil {
			return generateFailedMsg{err: err}
		}
		rec.PromptGenerado = prompt
		return promptGeneratedMsg{prompt: prompt, rec: rec}
	}
}

// saveTask submits the write to the background runner and waits on its
// handle. The bounded runner keeps at most two persistence/export jobs in
// flight; the returned command blocks only this tea.Cmd goroutine.
func saveTask(runner *jobs.Runner, st *store.Store, rec task.Record) tea.Cmd {
	return func() tea.Msg {
		handle := runner.Submit(context.Background(), "save-task", func() error {
			return st.SaveTask(rec)
		})
		return jobDoneMsg{name: "guardar", err: handle.Err()}
	}
}

// exportTask submits the PDF export to the background runner.
func exportTask(runner *jobs.Runner, exporter export.Exporter, rec task.Record, outDir string) tea.Cmd {
	return func() tea.Msg {
		out := filepath.Join(outDir, rec.ID+".pdf")
		var written string
		handle := runner.Submit(context.Background(), "export-pdf", func() error {
			var err error
			written, err = exporter.Export("Prompt PROM-9", export.RecordMetadata(rec), rec.PromptGenerado, out)
			return err
		})
		return jobDoneMsg{name: "exportar", err: handle.Err(), path: written}
	}
}

// cloneTask regenerates the prompt for a copy of rec under a fresh id and
// saves it. Renamed or deleted profiles fall back to synthetic maps so the
// clone still regenerates.
func cloneTask(deps Deps, rec task.Record) tea.Cmd {
	return func() tea.Msg {
		perfil := store.FindByName(deps.Store.LoadProfiles(), rec.Usuario)
		if perfil == nil {
			perfil = map[string]any{"nombre": rec.Usuario, "rol": "Profesional"}
		}
		contexto := store.FindByName(deps.Store.LoadContexts(), rec.Contexto)
		if contexto == nil {
			contexto = map[string]any{"nombre": rec.Contexto, "rol_contextual": "Asistente"}
		}

		data := map[string]string{
			"area":           rec.Area,
			"objetivo":       rec.Objetivo,
			"entradas":       rec.Entradas,
			"restricciones":  rec.Restricciones,
			"formato_salida": rec.FormatoSalida,
			"prioridad":      rec.Prioridad,
		}
		prompt, err := deps.Engine.Generate(data, perfil, contexto, nil)
		if err != nil {
			return jobDoneMsg{name: "clonar", err: err}
		}

		clon := rec.Clone()
		clon.PromptGenerado = prompt
		handle := deps.Runner.Submit(context.Background(), "save-clone", func() error {
			return deps.Store.SaveTask(clon)
		})
		return jobDoneMsg{name: "clonar", err: handle.Err()}
	}
}

// deleteTask removes a record; deletion is quick enough to run inline in
// the command goroutine.
func deleteTask(st *store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return jobDoneMsg{name: "eliminar", err: st.DeleteTask(id)}
	}
}

// waitForChange delivers the next external collection edit.
func waitForChange(w *store.Watcher) tea.Cmd {
	return func() tea.Msg {
		coll, ok := <-w.Events
		if !ok {
			return nil
		}
		return collectionChangedMsg{coll: coll}
	}
}

// stopDictation stops the recorder and transcribes whatever was captured.
func stopDictation(rec *voice.Recorder, tr voice.Transcriber, sampleRate, channels int) tea.Cmd {
	return func() tea.Msg {
		samples, err := rec.Stop()
		if err != nil {
			return dictationMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		text, err := tr.Transcribe(ctx, voice.EncodeWAV(samples, sampleRate, channels))
		return dictationMsg{text: text, err: err}
	}
}
