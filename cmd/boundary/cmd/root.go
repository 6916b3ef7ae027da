package cmd

import (
	"fmt"
	"io"

	"github.com/msto63/boundary/internal/app"
	"github.com/msto63/boundary/pkg/core/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "boundary",
	Short: "boundary - Fehlergrenzen fuer Terminal-Oberflaechen",
	Long: `boundary zeigt Fehlergrenzen (Error Boundaries) in einer
Terminal-Oberflaeche und deren Anbindung an ein Fehler-Monitoring.

Eine Fehlergrenze faengt Panics beim Rendern ab, zeigt stattdessen
eine Ersatzansicht mit "Try again?" und meldet den Fehler an die
konfigurierten Reporter (Log, Journal, Bayes-Fehlersenke).

Befehle:
  tui      - Interaktive Episodenliste mit Fehlerinjektor
  render   - Einzelner Render-Durchlauf ohne TUI
  faults   - Aufgezeichnete Fehler aus dem Journal anzeigen
  version  - Version anzeigen`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// loadConfig loads --config or falls back to the environment lookup
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	return cfg, nil
}

// newApp loads the config and wires the app, logging to logOutput
func newApp(logOutput io.Writer, opts app.Options) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	opts.LogOutput = logOutput
	return app.New(cfg, opts)
}

func printError(w io.Writer, msg string, err error) {
	fmt.Fprintf(w, "Fehler: %s: %v\n", msg, err)
}
