package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"prom9/internal/store"
	"prom9/internal/task"
	"prom9/internal/template"
)

// viewMode determines which screen is active.
type viewMode int

const (
	formView viewMode = iota
	previewView
	historyView
)

// areaOptions is the picker order. Gestión last: it is the fallback area.
var areaOptions = []template.Area{
	template.AreaIT,
	template.AreaVentas,
	template.AreaContabilidad,
	template.AreaGestion,
}

// pickerCount is the number of non-textinput focusables at the top of the
// form: perfil, contexto, area.
const pickerCount = 3

// formField is one text input of the task form. A nil areas slice means the
// field applies to every area.
type formField struct {
	key   string
	label string
	areas []template.Area
	input textinput.Model
}

func (f *formField) visibleFor(a template.Area) bool {
	if f.areas == nil {
		return true
	}
	for _, area := range f.areas {
		if area == a {
			return true
		}
	}
	return false
}

type model struct {
	deps Deps

	mode          viewMode
	width, height int

	// Form state
	perfiles    []map[string]any
	contextos   []map[string]any
	perfilIdx   int
	contextoIdx int
	areaIdx     int
	fields      []*formField
	focus       int

	// Preview state
	promptArea textarea.Model
	rendered   string
	showRender bool
	renderer   *glamour.TermRenderer

	// History state
	historyTable table.Model
	records      []task.Record

	// The working copy of the record being edited. Saving re-persists it;
	// abandoning the preview discards it.
	current *task.Record

	spin      spinner.Model
	busy      bool
	status    string
	statusErr bool
	recording bool

	watcher *store.Watcher
}

func newField(key, label, placeholder string, areas []template.Area) *formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 0
	in.Width = 60
	return &formField{key: key, label: label, areas: areas, input: in}
}

func newModel(deps Deps) *model {
	itOnly := []template.Area{template.AreaIT}
	ventasOnly := []template.Area{template.AreaVentas}
	contaOnly := []template.Area{template.AreaContabilidad}
	gestionOnly := []template.Area{template.AreaGestion}

	fields := []*formField{
		newField("objetivo", "Objetivo", "objetivo de la tarea", nil),
		newField("entradas", "Entradas clave", "datos o insumos disponibles", nil),
		newField("restricciones", "Restricciones", "límites a respetar", nil),
		newField("formato_salida", "Formato de salida", "p. ej. lista, informe", nil),
		newField("prioridad", "Prioridad", "Alta/Media/Baja (default Media)", nil),
		newField("stack", "Stack/entorno", "p. ej. Go 1.24, Postgres", itOnly),
		newField("nivel_tecnico", "Nivel técnico", "default Senior", itOnly),
		newField("segmento", "Segmento objetivo", "default B2B", ventasOnly),
		newField("propuesta_valor", "Propuesta de valor", "", ventasOnly),
		newField("normativa", "Normativa", "default PGC", contaOnly),
		newField("periodo", "Periodo", "p. ej. 2025-T4", contaOnly),
		newField("area_operativa", "Área operativa", "default Operaciones", gestionOnly),
		newField("horizonte", "Horizonte", "default Trimestral", gestionOnly),
		newField("adjuntos", "Adjuntos", "rutas separadas por comas", nil),
	}

	area := textarea.New()
	area.Placeholder = "El prompt generado aparecerá aquí"
	area.CharLimit = 0

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	cols := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Usuario", Width: 14},
		{Title: "Área", Width: 12},
		{Title: "Fecha", Width: 22},
		{Title: "Objetivo", Width: 30},
	}
	historyTable := table.New(table.WithColumns(cols), table.WithFocused(true))

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	m := &model{
		deps:         deps,
		mode:         formView,
		perfiles:     deps.Store.LoadProfiles(),
		contextos:    deps.Store.LoadContexts(),
		fields:       fields,
		promptArea:   area,
		historyTable: historyTable,
		renderer:     renderer,
		spin:         spin,
	}

	if w, err := deps.Store.Watch(); err == nil {
		m.watcher = w
	} else {
		deps.Logger.Debug("collection watcher unavailable")
	}

	m.focusField(0)
	return m
}

// Init starts the spinner and the collection watch loop.
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// area returns the currently selected area.
func (m *model) area() template.Area {
	return areaOptions[m.areaIdx]
}

// visibleFields returns the form fields applicable to the selected area, in
// display order.
func (m *model) visibleFields() []*formField {
	var out []*formField
	for _, f := range m.fields {
		if f.visibleFor(m.area()) {
			out = append(out, f)
		}
	}
	return out
}

// focusField moves form focus to index i over pickers + visible fields,
// wrapping at both ends.
func (m *model) focusField(i int) {
	visible := m.visibleFields()
	total := pickerCount + len(visible)
	m.focus = ((i % total) + total) % total

	for _, f := range m.fields {
		f.input.Blur()
	}
	if m.focus >= pickerCount {
		visible[m.focus-pickerCount].input.Focus()
	}
}

// focusedInput returns the focused text input, or nil when a picker has
// focus.
func (m *model) focusedInput() *formField {
	if m.focus < pickerCount {
		return nil
	}
	return m.visibleFields()[m.focus-pickerCount]
}

// selectedPerfil returns the chosen profile, or nil when none exist.
func (m *model) selectedPerfil() map[string]any {
	if len(m.perfiles) == 0 {
		return nil
	}
	return m.perfiles[m.perfilIdx%len(m.perfiles)]
}

func (m *model) selectedContexto() map[string]any {
	if len(m.contextos) == 0 {
		return nil
	}
	return m.contextos[m.contextoIdx%len(m.contextos)]
}

// taskData collects the form into the engine's task map.
func (m *model) taskData() map[string]string {
	data := map[string]string{"area": m.area().String()}
	for _, f := range m.visibleFields() {
		if f.key == "adjuntos" {
			continue
		}
		data[f.key] = f.input.Value()
	}
	return data
}

// attachmentPaths parses the adjuntos field into a path list.
func (m *model) attachmentPaths() []string {
	for _, f := range m.fields {
		if f.key == "adjuntos" {
			return template.SplitItems(f.input.Value())
		}
	}
	return nil
}

// reloadHistory refreshes the records and the table rows.
func (m *model) reloadHistory() {
	m.records = m.deps.Store.ListTasks()
	rows := make([]table.Row, len(m.records))
	for i, rec := range m.records {
		rows[i] = table.Row{rec.ID, rec.Usuario, rec.Area, rec.CreatedAt, rec.Objetivo}
	}
	m.historyTable.SetRows(rows)
}

// selectedRecord returns the record under the history cursor.
func (m *model) selectedRecord() *task.Record {
	idx := m.historyTable.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return nil
	}
	rec := m.records[idx]
	return &rec
}
