package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	focusedLabelStyle = labelStyle.Foreground(lipgloss.Color("205")).Bold(true)

	pickerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusedPickerStyle = pickerStyle.Foreground(lipgloss.Color("205")).Bold(true)

	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m *model) View() string {
	var body string
	switch m.mode {
	case formView:
		body = m.viewForm()
	case previewView:
		body = m.viewPreview()
	case historyView:
		body = m.viewHistory()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("PROM-9 · Generador de prompts"))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m *model) viewForm() string {
	var b strings.Builder

	pickers := []struct {
		label string
		value string
	}{
		{"Perfil", nameOf(m.selectedPerfil(), "(sin perfiles)")},
		{"Contexto", nameOf(m.selectedContexto(), "(sin contextos)")},
		{"Área", m.area().String()},
	}
	for i, p := range pickers {
		label, value := labelStyle, pickerStyle
		text := p.value
		if m.focus == i {
			label, value = focusedLabelStyle, focusedPickerStyle
			text = "◀ " + text + " ▶"
		}
		b.WriteString(label.Render(p.label))
		b.WriteString(value.Render(text))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, f := range m.visibleFields() {
		label := labelStyle
		if m.focus == pickerCount+i {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(f.label))
		b.WriteString(f.input.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(
		"tab/↓ siguiente · ←/→ cambiar selección · ctrl+g generar · " +
			"ctrl+r dictar · ctrl+l historial · esc salir"))
	return b.String()
}

func (m *model) viewPreview() string {
	var b strings.Builder
	if m.showRender {
		b.WriteString(paneStyle.Render(m.rendered))
		b.WriteString(helpStyle.Render("ctrl+p editar · esc volver"))
		return b.String()
	}

	b.WriteString(paneStyle.Render(m.promptArea.View()))
	b.WriteString(helpStyle.Render(
		"ctrl+s guardar · ctrl+e exportar PDF · ctrl+p vista formateada · esc volver"))
	return b.String()
}

func (m *model) viewHistory() string {
	var b strings.Builder
	if len(m.records) == 0 {
		b.WriteString("No hay tareas en el historial.\n")
	} else {
		b.WriteString(paneStyle.Render(m.historyTable.View()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(
		"enter ver · c clonar · d eliminar · e exportar PDF · esc volver"))
	return b.String()
}

func (m *model) viewStatus() string {
	prefix := ""
	if m.busy || m.recording {
		prefix = m.spin.View() + " "
	}
	if m.status == "" {
		return prefix
	}
	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}
	return fmt.Sprintf("%s%s", prefix, style.Render(m.status))
}
