// Package template renders PROM-9 prompt text from a normalized payload.
// Renderers are pure: no I/O, no side effects, deterministic output for a
// given payload.
package template

import "strings"

// Area is the functional category of a task. It selects which extension
// renderer is appended to the base structure.
type Area int

const (
	// AreaGestion is the generic management/operations extension. It is
	// also the documented fallback: any area string that does not match a
	// known area routes here rather than failing.
	AreaGestion Area = iota
	AreaIT
	AreaVentas
	AreaContabilidad
)

// ParseArea maps an area label to its Area. Matching is case-insensitive
// and ignores surrounding whitespace. Unrecognized or empty labels map to
// AreaGestion.
func ParseArea(s string) Area {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "it":
		return AreaIT
	case "ventas":
		return AreaVentas
	case "contabilidad":
		return AreaContabilidad
	default:
		return AreaGestion
	}
}

func (a Area) String() string {
	switch a {
	case AreaIT:
		return "it"
	case AreaVentas:
		return "ventas"
	case AreaContabilidad:
		return "contabilidad"
	default:
		return "gestion"
	}
}

// Render applies the extension renderer for the given area on top of the
// base structure. The switch is exhaustive over the closed Area set.
func Render(a Area, p Payload) (string, error) {
	switch a {
	case AreaIT:
		return RenderIT(p)
	case AreaVentas:
		return RenderVentas(p)
	case AreaContabilidad:
		return RenderContabilidad(p)
	default:
		return RenderGestion(p)
	}
}
