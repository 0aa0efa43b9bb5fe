package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prom9/internal/store"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List and manage the configured profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		perfiles := app.store.LoadProfiles()
		if len(perfiles) == 0 {
			fmt.Println("No hay perfiles configurados. Crea uno con: prom9 profiles add --nombre <nombre>")
			return nil
		}
		for _, p := range perfiles {
			line := fmt.Sprintf("- %s", p["nombre"])
			if rol, ok := p["rol"].(string); ok && rol != "" {
				line += fmt.Sprintf(" (%s)", rol)
			}
			if esp, ok := p["especializacion_agricola"].([]string); ok && len(esp) > 0 {
				line += " | cultivos: " + strings.Join(esp, ", ")
			}
			fmt.Println(line)
		}
		return nil
	},
}

// profileFlagNames maps flag names to profile keys. List-valued fields
// accept comma/newline-delimited input; the store normalizes on write.
var profileFlagNames = []struct {
	flag, key, usage string
}{
	{"rol", "rol", "professional role"},
	{"herramientas", "herramientas", "tools, comma separated"},
	{"prioridades", "prioridades", "priorities, comma separated"},
	{"especializacion", "especializacion_agricola", "agricultural crops, comma separated"},
}

var (
	profileAddNombre string
	profileAddFields = map[string]*string{}
	profileEdtFields = map[string]*string{}
	profileEdtNombre string
)

var profilesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.FindByName(app.store.LoadProfiles(), profileAddNombre) != nil {
			return fmt.Errorf("el perfil %q ya existe; usa profiles edit", profileAddNombre)
		}
		perfil := map[string]any{"nombre": profileAddNombre}
		for _, spec := range profileFlagNames {
			if cmd.Flags().Changed(spec.flag) {
				perfil[spec.key] = *profileAddFields[spec.flag]
			}
		}
		if err := app.store.UpsertProfile(perfil); err != nil {
			return err
		}
		fmt.Printf("Perfil %s creado.\n", profileAddNombre)
		return nil
	},
}

var profilesEditCmd = &cobra.Command{
	Use:   "edit <nombre>",
	Short: "Edit a profile's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		perfil := store.FindByName(app.store.LoadProfiles(), args[0])
		if perfil == nil {
			return fmt.Errorf("perfil %q no encontrado", args[0])
		}
		for _, spec := range profileFlagNames {
			if cmd.Flags().Changed(spec.flag) {
				perfil[spec.key] = *profileEdtFields[spec.flag]
			}
		}
		if cmd.Flags().Changed("nombre") && profileEdtNombre != args[0] {
			// Rename: drop the old entry, rewrite under the new name.
			if err := app.store.DeleteProfile(args[0]); err != nil {
				return err
			}
			perfil["nombre"] = profileEdtNombre
		}
		if err := app.store.UpsertProfile(perfil); err != nil {
			return err
		}
		fmt.Printf("Perfil %s actualizado.\n", perfil["nombre"])
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <nombre>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.store.DeleteProfile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Perfil %s eliminado.\n", args[0])
		return nil
	},
}

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "List and manage the configured contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		contextos := app.store.LoadContexts()
		if len(contextos) == 0 {
			fmt.Println("No hay contextos configurados. Crea uno con: prom9 contexts add --nombre <nombre>")
			return nil
		}
		for _, c := range contextos {
			line := fmt.Sprintf("- %s", c["nombre"])
			if rol, ok := c["rol_contextual"].(string); ok && rol != "" {
				line += fmt.Sprintf(" | rol contextual: %s", rol)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var contextFlagNames = []struct {
	flag, key, usage string
}{
	{"rol-contextual", "rol_contextual", "role the assistant takes in this context"},
	{"enfoque", "enfoque", "focus points, comma separated"},
	{"no-hacer", "no_hacer", "things to avoid, comma separated"},
}

var (
	contextAddNombre string
	contextAddFields = map[string]*string{}
	contextEdtFields = map[string]*string{}
	contextEdtNombre string
)

var contextsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a context",
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.FindByName(app.store.LoadContexts(), contextAddNombre) != nil {
			return fmt.Errorf("el contexto %q ya existe; usa contexts edit", contextAddNombre)
		}
		contexto := map[string]any{"nombre": contextAddNombre}
		for _, spec := range contextFlagNames {
			if cmd.Flags().Changed(spec.flag) {
				contexto[spec.key] = *contextAddFields[spec.flag]
			}
		}
		if err := app.store.UpsertContext(contexto); err != nil {
			return err
		}
		fmt.Printf("Contexto %s creado.\n", contextAddNombre)
		return nil
	},
}

var contextsEditCmd = &cobra.Command{
	Use:   "edit <nombre>",
	Short: "Edit a context's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contexto := store.FindByName(app.store.LoadContexts(), args[0])
		if contexto == nil {
			return fmt.Errorf("contexto %q no encontrado", args[0])
		}
		for _, spec := range contextFlagNames {
			if cmd.Flags().Changed(spec.flag) {
				contexto[spec.key] = *contextEdtFields[spec.flag]
			}
		}
		if cmd.Flags().Changed("nombre") && contextEdtNombre != args[0] {
			if err := app.store.DeleteContext(args[0]); err != nil {
				return err
			}
			contexto["nombre"] = contextEdtNombre
		}
		if err := app.store.UpsertContext(contexto); err != nil {
			return err
		}
		fmt.Printf("Contexto %s actualizado.\n", contexto["nombre"])
		return nil
	},
}

var contextsDeleteCmd = &cobra.Command{
	Use:   "delete <nombre>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.store.DeleteContext(args[0]); err != nil {
			return err
		}
		fmt.Printf("Contexto %s eliminado.\n", args[0])
		return nil
	},
}

func init() {
	profilesAddCmd.Flags().StringVar(&profileAddNombre, "nombre", "", "profile name (required)")
	_ = profilesAddCmd.MarkFlagRequired("nombre")
	profilesEditCmd.Flags().StringVar(&profileEdtNombre, "nombre", "", "rename the profile")
	for _, spec := range profileFlagNames {
		profileAddFields[spec.flag] = profilesAddCmd.Flags().String(spec.flag, "", spec.usage)
		profileEdtFields[spec.flag] = profilesEditCmd.Flags().String(spec.flag, "", spec.usage)
	}
	profilesCmd.AddCommand(profilesAddCmd, profilesEditCmd, profilesDeleteCmd)

	contextsAddCmd.Flags().StringVar(&contextAddNombre, "nombre", "", "context name (required)")
	_ = contextsAddCmd.MarkFlagRequired("nombre")
	contextsEditCmd.Flags().StringVar(&contextEdtNombre, "nombre", "", "rename the context")
	for _, spec := range contextFlagNames {
		contextAddFields[spec.flag] = contextsAddCmd.Flags().String(spec.flag, "", spec.usage)
		contextEdtFields[spec.flag] = contextsEditCmd.Flags().String(spec.flag, "", spec.usage)
	}
	contextsCmd.AddCommand(contextsAddCmd, contextsEditCmd, contextsDeleteCmd)
}
