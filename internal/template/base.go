package template

import (
	"fmt"
	"strings"
)

// baseFields are the nine keys every render requires, validated in order so
// the first missing one is the one reported.
var baseFields = []string{
	"perfil_nombre",
	"perfil_rol",
	"contexto_nombre",
	"contexto_rol",
	"objetivo",
	"entradas",
	"restricciones",
	"formato_salida",
	"prioridad",
}

// RenderBase builds the fixed 9-point PROM-9 structure with the payload
// values embedded verbatim, plus an optional 10th point when the payload
// carries agricultural specialization items.
func RenderBase(p Payload) (string, error) {
	values := make(map[string]string, len(baseFields))
	for _, key := range baseFields {
		v, err := p.required(key)
		if err != nil {
			return "", err
		}
		values[key] = v
	}

	var b strings.Builder
	b.WriteString("PROM-9™ | Base\n")
	fmt.Fprintf(&b, "1) Perfil: %s (%s)\n", values["perfil_nombre"], values["perfil_rol"])
	fmt.Fprintf(&b, "2) Contexto: %s - Rol contextual: %s\n", values["contexto_nombre"], values["contexto_rol"])
	fmt.Fprintf(&b, "3) Objetivo: %s\n", values["objetivo"])
	fmt.Fprintf(&b, "4) Entradas clave: %s\n", values["entradas"])
	fmt.Fprintf(&b, "5) Restricciones: %s\n", values["restricciones"])
	fmt.Fprintf(&b, "6) Formato de salida: %s\n", values["formato_salida"])
	fmt.Fprintf(&b, "7) Prioridad: %s\n", values["prioridad"])
	b.WriteString("8) Criterios de calidad: Claridad, precisión y accionabilidad.\n")
	b.WriteString("9) Instrucción final: Entrega una respuesta profesional y estructurada en español.\n")

	if items := p.items("especializacion_agricola"); len(items) > 0 {
		fmt.Fprintf(&b, "10) Este perfil está especializado en los siguientes cultivos agrícolas: %s.\n",
			strings.Join(items, ", "))
	}

	return b.String(), nil
}
