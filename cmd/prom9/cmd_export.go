package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"prom9/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a task's prompt to PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := app.store.FindTask(args[0])
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = filepath.Join(app.cfg.ExportDir(), rec.ID+".pdf")
		}

		var written string
		handle := app.runner.Submit(cmd.Context(), "export-pdf", func() error {
			var err error
			written, err = app.exporter.Export("Prompt PROM-9", export.RecordMetadata(rec), rec.PromptGenerado, out)
			return err
		})
		if err := handle.Err(); err != nil {
			return fmt.Errorf("no se pudo exportar: %w", err)
		}

		fmt.Printf("PDF generado en: %s\n", written)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: <export dir>/<id>.pdf)")
}
