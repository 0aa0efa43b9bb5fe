package template

import (
	"fmt"
	"strings"
)

// RenderIT extends the base with technical guidance fields.
func RenderIT(p Payload) (string, error) {
	base, err := RenderBase(p)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n[Extensión IT]\n")
	fmt.Fprintf(&b, "- Stack/entorno: %s\n", p.get("stack", "No especificado"))
	fmt.Fprintf(&b, "- Nivel técnico esperado: %s\n", p.get("nivel_tecnico", "Senior"))
	b.WriteString("- Consideraciones: seguridad, escalabilidad, mantenibilidad y pruebas.\n")
	b.WriteString("- Solicitud adicional: propone pasos de implementación y riesgos técnicos.\n")
	return b.String(), nil
}

// RenderVentas extends the base with a commercial/conversion focus. When the
// payload carries agricultural specialization items, an extra context line
// adapts the sales arguments to that market.
func RenderVentas(p Payload) (string, error) {
	base, err := RenderBase(p)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n[Extensión Ventas]\n")
	fmt.Fprintf(&b, "- Segmento objetivo: %s\n", p.get("segmento", "General"))
	fmt.Fprintf(&b, "- Propuesta de valor: %s\n", p.get("propuesta_valor", "No especificada"))
	if items := p.items("especializacion_agricola"); len(items) > 0 {
		fmt.Fprintf(&b, "- Contexto agrícola aplicado: adapta los argumentos comerciales, ejemplos de oferta y objeciones al mercado de %s.\n",
			strings.Join(items, ", "))
	}
	b.WriteString("- KPIs sugeridos: ratio de conversión, ticket medio, tiempo de cierre.\n")
	b.WriteString("- Solicitud adicional: redacta argumentos y objeciones con cierre persuasivo.\n")
	return b.String(), nil
}

// RenderContabilidad extends the base with accounting and regulatory fields.
func RenderContabilidad(p Payload) (string, error) {
	base, err := RenderBase(p)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n[Extensión Contabilidad]\n")
	fmt.Fprintf(&b, "- Marco normativo: %s\n", p.get("normativa", "PGC/NIIF según aplique"))
	fmt.Fprintf(&b, "- Periodo de análisis: %s\n", p.get("periodo", "No especificado"))
	b.WriteString("- Consideraciones: trazabilidad, conciliación y cumplimiento fiscal.\n")
	b.WriteString("- Solicitud adicional: incluye asientos sugeridos y validaciones clave.\n")
	return b.String(), nil
}

// RenderGestion extends the base with an operations/governance focus. It is
// the renderer unrecognized areas fall back to.
func RenderGestion(p Payload) (string, error) {
	base, err := RenderBase(p)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n[Extensión Gestión]\n")
	fmt.Fprintf(&b, "- Área operativa: %s\n", p.get("area_operativa", "No especificada"))
	fmt.Fprintf(&b, "- Horizonte temporal: %s\n", p.get("horizonte", "Corto/medio plazo"))
	if items := p.items("especializacion_agricola"); len(items) > 0 {
		fmt.Fprintf(&b, "- Contexto de negocio agrícola: prioriza recomendaciones operativas y ejemplos alineados con la gestión de %s.\n",
			strings.Join(items, ", "))
	}
	b.WriteString("- Consideraciones: eficiencia, coordinación interáreas y control de riesgos.\n")
	b.WriteString("- Solicitud adicional: plantea plan de acción, hitos y responsables.\n")
	return b.String(), nil
}
