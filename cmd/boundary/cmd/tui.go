package cmd

import (
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/msto63/boundary/internal/app"
	"github.com/msto63/boundary/internal/tui"
	"github.com/msto63/boundary/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	tuiInject      bool
	tuiMetricsAddr string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Startet die interaktive TUI",
	Long: `Startet die Episodenliste mit Fehlergrenzen.

Navigation:
  ↑/↓ j/k     Episode waehlen
  f           Fehlerinjektor ein-/ausblenden
  r / Enter   Try again? (nur bei Fehler)
  q / Ctrl+C  Beenden

Logs werden in general.log_file geschrieben, damit die
Oberflaeche nicht zerrissen wird.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiInject, "inject", false, "Fehlerinjektor beim Start einblenden")
	tuiCmd.Flags().StringVar(&tuiMetricsAddr, "metrics-addr", "", "Adresse fuer /metrics und /healthz (z.B. :9121)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError(cmd.ErrOrStderr(), "Konfiguration", err)
		return err
	}

	logPath := cfg.General.LogFile
	if logPath == "" {
		logPath = filepath.Join(cfg.General.DataDir, "boundary.log")
	}
	logFile, err := logging.OpenLogFile(logPath)
	if err != nil {
		printError(cmd.ErrOrStderr(), "Log-Datei", err)
		return err
	}
	defer logFile.Close()

	a, err := app.New(cfg, app.Options{LogOutput: io.Writer(logFile)})
	if err != nil {
		printError(cmd.ErrOrStderr(), "Initialisierung", err)
		return err
	}
	defer a.Close()

	addr := tuiMetricsAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	if err := a.StartMetrics(addr); err != nil {
		printError(cmd.ErrOrStderr(), "Metriken", err)
		return err
	}

	page := tui.NewPage(tui.PageConfig{
		Fallback:     a.Fallback(),
		Inject:       tuiInject,
		GuardOptions: a.GuardOptions(),
	})

	p := tea.NewProgram(page, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		printError(cmd.ErrOrStderr(), "TUI", err)
		return err
	}
	return nil
}
