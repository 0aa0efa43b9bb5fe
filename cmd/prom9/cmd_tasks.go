package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prom9/internal/store"
	"prom9/internal/task"
	"prom9/internal/template"
)

var (
	newPerfil   string
	newContexto string
	newArea     string
	newFields   = map[string]*string{}
	newAdjuntos []string
	newNoSave   bool
)

// taskFlagNames maps flag names to task payload keys. Base fields first,
// then the optional area-specific ones; unused extras are simply ignored by
// the engine for other areas.
var taskFlagNames = []struct {
	flag, key, usage string
}{
	{"objetivo", "objetivo", "task objective (required)"},
	{"entradas", "entradas", "key inputs (required)"},
	{"restricciones", "restricciones", "constraints (required)"},
	{"formato-salida", "formato_salida", "expected output format (required)"},
	{"prioridad", "prioridad", "priority (Alta/Media/Baja)"},
	{"stack", "stack", "IT: technology stack"},
	{"nivel-tecnico", "nivel_tecnico", "IT: expected technical level"},
	{"segmento", "segmento", "ventas: target segment"},
	{"propuesta-valor", "propuesta_valor", "ventas: value proposition"},
	{"normativa", "normativa", "contabilidad: applicable regulation"},
	{"periodo", "periodo", "contabilidad: analysis period"},
	{"area-operativa", "area_operativa", "gestión: operational area"},
	{"horizonte", "horizonte", "gestión: time horizon"},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a task, generate its prompt and save it to the history",
	RunE: func(cmd *cobra.Command, args []string) error {
		perfiles := app.store.LoadProfiles()
		contextos := app.store.LoadContexts()

		perfil := store.FindByName(perfiles, newPerfil)
		if perfil == nil {
			return fmt.Errorf("perfil %q no encontrado", newPerfil)
		}
		contexto := store.FindByName(contextos, newContexto)
		if contexto == nil {
			return fmt.Errorf("contexto %q no encontrado", newContexto)
		}

		data := map[string]string{"area": newArea}
		for _, spec := range taskFlagNames {
			if cmd.Flags().Changed(spec.flag) {
				data[spec.key] = *newFields[spec.flag]
			}
		}
		for _, required := range []string{"objetivo", "entradas", "restricciones", "formato_salida"} {
			if strings.TrimSpace(data[required]) == "" {
				return fmt.Errorf("falta el campo obligatorio --%s", strings.ReplaceAll(required, "_", "-"))
			}
		}
		if data["prioridad"] == "" {
			data["prioridad"] = "Media"
		}

		prompt, err := app.engine.Generate(data, perfil, contexto, newAdjuntos)
		if err != nil {
			return err
		}

		rec := task.New(
			stringOr(perfil["nombre"], "Usuario"),
			stringOr(contexto["nombre"], "General"),
			template.ParseArea(newArea).String(),
		)
		rec.Objetivo = data["objetivo"]
		rec.Entradas = data["entradas"]
		rec.Restricciones = data["restricciones"]
		rec.FormatoSalida = data["formato_salida"]
		rec.Prioridad = data["prioridad"]
		rec.PromptGenerado = prompt

		if !newNoSave {
			handle := app.runner.Submit(cmd.Context(), "save-task", func() error {
				return app.store.SaveTask(rec)
			})
			if err := handle.Err(); err != nil {
				return err
			}
			logger.Info("tarea guardada", zap.String("id", rec.ID))
			fmt.Printf("Tarea creada correctamente\nID: %s\n\n", rec.ID)
		}

		fmt.Println(prompt)
		return nil
	},
}

var historyUsuario string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the task history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		records := app.store.ListTasks()
		if len(records) == 0 {
			fmt.Println("No hay tareas en el historial.")
			return nil
		}
		filtro := strings.ToLower(strings.TrimSpace(historyUsuario))
		for _, rec := range records {
			if filtro != "" && strings.ToLower(rec.Usuario) != filtro {
				continue
			}
			fmt.Printf("- ID: %s | Usuario: %s | Área: %s | Fecha: %s\n",
				rec.ID, rec.Usuario, rec.Area, rec.CreatedAt)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a task's generated prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := app.store.FindTask(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ID: %s\nUsuario: %s\nContexto: %s\nÁrea: %s\nFecha: %s\n\n%s\n",
			rec.ID, rec.Usuario, rec.Contexto, rec.Area, rec.CreatedAt, rec.PromptGenerado)
		return nil
	},
}

var cloneCmd = &cobra.Command{
	Use:   "clone <id>",
	Short: "Clone a task with a fresh id and a regenerated prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		original, err := app.store.FindTask(args[0])
		if err != nil {
			return err
		}

		// The record holds name labels only; the profile or context may
		// have been renamed or deleted since. Fall back to synthetic maps
		// so the clone still regenerates.
		perfil := store.FindByName(app.store.LoadProfiles(), original.Usuario)
		if perfil == nil {
			perfil = map[string]any{"nombre": original.Usuario, "rol": "Profesional"}
		}
		contexto := store.FindByName(app.store.LoadContexts(), original.Contexto)
		if contexto == nil {
			contexto = map[string]any{"nombre": original.Contexto, "rol_contextual": "Asistente"}
		}

		data := map[string]string{
			"area":           original.Area,
			"objetivo":       original.Objetivo,
			"entradas":       original.Entradas,
			"restricciones":  original.Restricciones,
			"formato_salida": original.FormatoSalida,
			"prioridad":      original.Prioridad,
		}
		prompt, err := app.engine.Generate(data, perfil, contexto, nil)
		if err != nil {
			return err
		}

		clon := original.Clone()
		clon.PromptGenerado = prompt

		handle := app.runner.Submit(cmd.Context(), "save-clone", func() error {
			return app.store.SaveTask(clon)
		})
		if err := handle.Err(); err != nil {
			return err
		}
		fmt.Printf("Tarea clonada correctamente. Nuevo ID: %s\n", clon.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.store.DeleteTask(args[0]); err != nil {
			return err
		}
		fmt.Printf("Tarea %s eliminada.\n", args[0])
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newPerfil, "perfil", "", "profile name (required)")
	newCmd.Flags().StringVar(&newContexto, "contexto", "", "context name (required)")
	newCmd.Flags().StringVar(&newArea, "area", "gestion", "task area: it, ventas, contabilidad or gestion")
	for _, spec := range taskFlagNames {
		newFields[spec.flag] = newCmd.Flags().String(spec.flag, "", spec.usage)
	}
	newCmd.Flags().StringArrayVar(&newAdjuntos, "adjunto", nil, "attachment path (repeatable)")
	newCmd.Flags().BoolVar(&newNoSave, "no-guardar", false, "print the prompt without saving")
	_ = newCmd.MarkFlagRequired("perfil")
	_ = newCmd.MarkFlagRequired("contexto")

	historyCmd.Flags().StringVar(&historyUsuario, "usuario", "", "filter by user name")
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
