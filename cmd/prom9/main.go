package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"prom9/cmd/prom9/tui"
	"prom9/internal/config"
	"prom9/internal/engine"
	"prom9/internal/export"
	"prom9/internal/jobs"
	"prom9/internal/store"
	"prom9/internal/voice"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string

	// Logger
	logger *zap.Logger

	// app is the wired application, built in PersistentPreRunE.
	app *application
)

// application bundles the components every command needs. Built once at
// startup from the loaded config; optional capabilities are decided here
// and never re-checked downstream.
type application struct {
	cfg      *config.Config
	store    *store.Store
	engine   *engine.Engine
	exporter export.Exporter
	runner   *jobs.Runner
}

var rootCmd = &cobra.Command{
	Use:   "prom9",
	Short: "PROM-9 prompt engine",
	Long: `prom9 collects structured task data, renders it into a PROM-9 prompt
using area-specific templates (IT, ventas, contabilidad, gestión), and keeps
a persisted history of generated prompts with optional PDF export.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		app = &application{
			cfg:    cfg,
			store:  store.New(cfg.StorePaths(), logger),
			engine: engine.New(cfg.Attachments.MaxChars),
			runner: jobs.NewRunner(jobs.DefaultCapacity, logger),
		}
		if cfg.Export.Enabled {
			app.exporter = export.NewPDF()
		} else {
			app.exporter = export.Unavailable{}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.runner.Wait()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		deps := tui.Deps{
			Config:   app.cfg,
			Logger:   logger,
			Store:    app.store,
			Engine:   app.engine,
			Exporter: app.exporter,
			Runner:   app.runner,
		}
		if app.cfg.Voice.Enabled {
			tr, err := voice.NewOpenAITranscriber(
				app.cfg.Voice.APIKey, app.cfg.Voice.BaseURL, app.cfg.Voice.Model)
			if err != nil {
				logger.Warn("dictation disabled", zap.Error(err))
			} else {
				deps.Transcriber = tr
				// No capture backend is compiled in yet; the recorder wraps
				// the stub source so dictation reports itself unavailable at
				// the keystroke instead of crashing.
				deps.Recorder = voice.NewRecorder(voice.UnavailableSource{},
					time.Duration(app.cfg.Voice.MaxRecordSeconds)*time.Second)
			}
		}
		return tui.Run(deps)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "prom9.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "override the data directory")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(contextsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
