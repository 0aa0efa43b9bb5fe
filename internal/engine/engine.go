// Package engine normalizes task data into a render payload, routes it to
// the matching area template, and assembles the final prompt string.
package engine

import (
	"strings"

	"prom9/internal/attachment"
	"prom9/internal/template"
)

// itGuidelines is the fixed technical-analysis block appended to every IT
// prompt. Not configurable.
const itGuidelines = `### Directrices obligatorias de análisis técnico

- No asumir comportamiento de código no mostrado.
- Señalar debilidades técnicas detectadas.
- Indicar riesgos y problemas potenciales.
- Si faltan archivos o funciones para análisis completo,
  solicitarlos explícitamente antes de proponer solución final.
- No validar decisiones por cortesía.
- Mantener tono profesional, crítico y técnico.
- No incluir elogios ni frases motivacionales.`

// Engine builds prompts. It has no mutable state; the struct exists so the
// attachment block size is injected once at startup instead of threaded
// through every call.
type Engine struct {
	maxAttachmentChars int
}

// New returns an engine using the given per-block attachment limit, or the
// attachment default when limit is zero or negative.
func New(maxAttachmentChars int) *Engine {
	if maxAttachmentChars <= 0 {
		maxAttachmentChars = attachment.DefaultMaxChars
	}
	return &Engine{maxAttachmentChars: maxAttachmentChars}
}

// Generate renders the final prompt for a task. The base fields objetivo,
// entradas, restricciones and formato_salida are trusted to be present in
// task (the UI validates them before calling); prioridad falls back to
// "Media" when blank. Attachment reader errors propagate unchanged. The
// only side effect is reading the attachment files.
func (e *Engine) Generate(task map[string]string, perfil, contexto map[string]any, adjuntos []string) (string, error) {
	area := template.ParseArea(task["area"])

	payload := template.Payload{
		"perfil_nombre":   stringField(perfil, "nombre", "Usuario"),
		"perfil_rol":      stringField(perfil, "rol", "Profesional"),
		"contexto_nombre": stringField(contexto, "nombre", "General"),
		"contexto_rol":    stringField(contexto, "rol_contextual", "Asistente"),
		"objetivo":        task["objetivo"],
		"entradas":        task["entradas"],
		"restricciones":   task["restricciones"],
		"formato_salida":  task["formato_salida"],
		"prioridad":       defaultIfBlank(task["prioridad"], "Media"),
	}

	// The specialization list lives on the profile; the base template and
	// the ventas/gestión extensions pick it up from the payload.
	if esp, ok := perfil["especializacion_agricola"]; ok {
		payload["especializacion_agricola"] = esp
	}

	switch area {
	case template.AreaIT:
		payload["stack"] = taskField(task, "stack", "Python 3.9+")
		payload["nivel_tecnico"] = taskField(task, "nivel_tecnico", "Senior")
	case template.AreaVentas:
		payload["segmento"] = taskField(task, "segmento", "B2B")
		payload["propuesta_valor"] = taskField(task, "propuesta_valor", "")
	case template.AreaContabilidad:
		payload["normativa"] = taskField(task, "normativa", "PGC")
		payload["periodo"] = taskField(task, "periodo", "")
	default:
		payload["area_operativa"] = taskField(task, "area_operativa", "Operaciones")
		payload["horizonte"] = taskField(task, "horizonte", "Trimestral")
	}

	prompt, err := template.Render(area, payload)
	if err != nil {
		return "", err
	}

	sections := []string{prompt}

	if len(adjuntos) > 0 {
		section, err := attachment.Read(adjuntos, e.maxAttachmentChars)
		if err != nil {
			return "", err
		}
		if section != "" {
			sections = append(sections, section)
		}
	}

	if area == template.AreaIT {
		sections = append(sections, itGuidelines)
	}

	var nonEmpty []string
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.TrimSpace(strings.Join(nonEmpty, "\n\n")), nil
}

// stringField reads a string key from a profile/context map, defaulting when
// the key is absent or empty.
func stringField(m map[string]any, key, fallback string) string {
	if m != nil {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

// taskField reads a task field, defaulting only when the key is absent. An
// explicitly entered empty value stays empty; prioridad is the one field
// that also defaults on blank.
func taskField(task map[string]string, key, fallback string) string {
	if v, ok := task[key]; ok {
		return v
	}
	return fallback
}

func defaultIfBlank(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
