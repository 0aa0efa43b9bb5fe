package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prom9/internal/store"
	"prom9/internal/task"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.promptArea.SetWidth(msg.Width - 4)
		m.promptArea.SetHeight(msg.Height - 8)
		m.historyTable.SetHeight(msg.Height - 8)
		return m, nil

	case spinner.TickMsg:
		if !m.busy && !m.recording {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case promptGeneratedMsg:
		rec := msg.rec
		m.current = &rec
		m.promptArea.SetValue(msg.prompt)
		m.promptArea.Focus()
		m.refreshRender()
		m.mode = previewView
		m.setStatus("Prompt generado. Edítalo si hace falta y guarda con ctrl+s.", false)
		return m, nil

	case generateFailedMsg:
		m.setStatus(msg.err.Error(), true)
		return m, nil

	case jobDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus("No se pudo "+msg.name+": "+msg.err.Error(), true)
			return m, nil
		}
		switch msg.name {
		case "guardar":
			m.setStatus("Tarea guardada correctamente.", false)
		case "exportar":
			m.setStatus("PDF exportado en: "+msg.path, false)
		case "eliminar":
			m.setStatus("Tarea eliminada.", false)
		case "clonar":
			m.setStatus("Tarea clonada con un nuevo ID.", false)
		}
		if m.mode == historyView {
			m.reloadHistory()
		}
		return m, nil

	case collectionChangedMsg:
		switch msg.coll {
		case store.CollectionProfiles:
			m.perfiles = m.deps.Store.LoadProfiles()
			m.setStatus("Perfiles recargados (editados fuera de la aplicación).", false)
		case store.CollectionContexts:
			m.contextos = m.deps.Store.LoadContexts()
			m.setStatus("Contextos recargados (editados fuera de la aplicación).", false)
		case store.CollectionHistory:
			if m.mode == historyView {
				m.reloadHistory()
			}
		}
		return m, waitForChange(m.watcher)

	case dictationMsg:
		m.recording = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		if f := m.focusedInput(); f != nil && msg.text != "" {
			existing := f.input.Value()
			if existing != "" {
				f.input.SetValue(strings.TrimSpace(existing) + " " + msg.text)
			} else {
				f.input.SetValue(msg.text)
			}
			f.input.CursorEnd()
		}
		m.setStatus("Dictado transcrito.", false)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case formView:
			return m.updateForm(msg)
		case previewView:
			return m.updatePreview(msg)
		case historyView:
			return m.updateHistory(msg)
		}
	}

	return m, nil
}

func (m *model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "down":
		m.focusField(m.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.focusField(m.focus - 1)
		return m, nil

	case "left", "right":
		if m.focus < pickerCount {
			m.cyclePicker(msg.String() == "right")
			return m, nil
		}

	case "ctrl+l":
		m.reloadHistory()
		m.mode = historyView
		return m, nil

	case "ctrl+r":
		return m.toggleDictation()

	case "ctrl+g":
		return m.startGeneration()
	}

	if f := m.focusedInput(); f != nil {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.showRender {
			m.showRender = false
			return m, nil
		}
		m.mode = formView
		return m, nil

	case "ctrl+p":
		m.refreshRender()
		m.showRender = !m.showRender
		return m, nil

	case "ctrl+s":
		if m.current == nil {
			return m, nil
		}
		m.current.PromptGenerado = m.promptArea.Value()
		if strings.TrimSpace(m.current.PromptGenerado) == "" {
			m.setStatus("Genera o escribe un prompt antes de guardar.", true)
			return m, nil
		}
		m.busy = true
		m.setStatus("Guardando…", false)
		return m, tea.Batch(m.spin.Tick, saveTask(m.deps.Runner, m.deps.Store, *m.current))

	case "ctrl+e":
		if m.current == nil {
			return m, nil
		}
		m.current.PromptGenerado = m.promptArea.Value()
		m.busy = true
		m.setStatus("Exportando PDF…", false)
		return m, tea.Batch(m.spin.Tick, exportTask(m.deps.Runner, m.deps.Exporter, *m.current, m.deps.Config.ExportDir()))
	}

	if m.showRender {
		return m, nil
	}
	var cmd tea.Cmd
	m.promptArea, cmd = m.promptArea.Update(msg)
	return m, cmd
}

func (m *model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = formView
		return m, nil

	case "enter":
		if rec := m.selectedRecord(); rec != nil {
			m.current = rec
			m.promptArea.SetValue(rec.PromptGenerado)
			m.promptArea.Focus()
			m.refreshRender()
			m.mode = previewView
		}
		return m, nil

	case "c":
		if rec := m.selectedRecord(); rec != nil {
			m.busy = true
			m.setStatus("Clonando tarea "+rec.ID+"…", false)
			return m, tea.Batch(m.spin.Tick, cloneTask(m.deps, *rec))
		}
		return m, nil

	case "d":
		if rec := m.selectedRecord(); rec != nil {
			m.busy = true
			return m, tea.Batch(m.spin.Tick, deleteTask(m.deps.Store, rec.ID))
		}
		return m, nil

	case "e":
		if rec := m.selectedRecord(); rec != nil {
			m.busy = true
			m.setStatus("Exportando PDF…", false)
			return m, tea.Batch(m.spin.Tick, exportTask(m.deps.Runner, m.deps.Exporter, *rec, m.deps.Config.ExportDir()))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

// cyclePicker advances the focused picker. Indexes wrap.
func (m *model) cyclePicker(forward bool) {
	step := 1
	if !forward {
		step = -1
	}
	switch m.focus {
	case 0:
		if n := len(m.perfiles); n > 0 {
			m.perfilIdx = ((m.perfilIdx+step)%n + n) % n
		}
	case 1:
		if n := len(m.contextos); n > 0 {
			m.contextoIdx = ((m.contextoIdx+step)%n + n) % n
		}
	case 2:
		n := len(areaOptions)
		prev := m.area()
		m.areaIdx = ((m.areaIdx+step)%n + n) % n
		if prev != m.area() {
			// Field visibility changed; keep focus on the area picker.
			m.focusField(2)
		}
	}
}

// startGeneration validates the form and kicks off prompt generation. The
// required base fields are checked here: the engine trusts its callers on
// that contract.
func (m *model) startGeneration() (tea.Model, tea.Cmd) {
	perfil := m.selectedPerfil()
	contexto := m.selectedContexto()
	if perfil == nil || contexto == nil {
		m.setStatus("Configura al menos un perfil y un contexto antes de generar (prom9 profiles add / contexts add).", true)
		return m, nil
	}

	data := m.taskData()
	var missing []string
	for _, key := range []string{"objetivo", "entradas", "restricciones", "formato_salida"} {
		if strings.TrimSpace(data[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		m.setStatus("Completa los campos obligatorios: "+strings.Join(missing, ", "), true)
		return m, nil
	}
	if strings.TrimSpace(data["prioridad"]) == "" {
		data["prioridad"] = "Media"
	}

	rec := task.New(
		nameOf(perfil, "Usuario"),
		nameOf(contexto, "General"),
		m.area().String(),
	)
	rec.Objetivo = data["objetivo"]
	rec.Entradas = data["entradas"]
	rec.Restricciones = data["restricciones"]
	rec.FormatoSalida = data["formato_salida"]
	rec.Prioridad = data["prioridad"]

	m.setStatus("Generando prompt…", false)
	return m, generatePrompt(m.deps.Engine, data, perfil, contexto, m.attachmentPaths(), rec)
}

// toggleDictation starts or stops voice capture for the focused field.
func (m *model) toggleDictation() (tea.Model, tea.Cmd) {
	if m.recording {
		m.setStatus("Transcribiendo dictado…", false)
		cfg := m.deps.Config.Voice
		return m, stopDictation(m.deps.Recorder, m.deps.Transcriber, cfg.SampleRate, cfg.Channels)
	}

	if m.focusedInput() == nil {
		m.setStatus("Enfoca un campo de texto para dictar.", true)
		return m, nil
	}
	if err := m.deps.Recorder.Start(); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.recording = true
	m.setStatus("Grabando… pulsa ctrl+r para detener (máx. 120 s).", false)
	return m, m.spin.Tick
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	if isErr {
		m.deps.Logger.Debug("ui error", zap.String("status", text))
	}
}

func (m *model) refreshRender() {
	if m.renderer == nil {
		m.rendered = m.promptArea.Value()
		return
	}
	out, err := m.renderer.Render(m.promptArea.Value())
	if err != nil {
		m.rendered = m.promptArea.Value()
		return
	}
	m.rendered = out
}

func nameOf(item map[string]any, fallback string) string {
	if s, ok := item["nombre"].(string); ok && s != "" {
		return s
	}
	return fallback
}
