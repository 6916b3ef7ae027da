package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/msto63/boundary/internal/report"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const messageWidth = 48

var (
	faultsLimit    int
	faultsBoundary string
	faultsStats    bool
)

var faultsCmd = &cobra.Command{
	Use:     "faults",
	Aliases: []string{"journal"},
	Short:   "Zeigt aufgezeichnete Fehler an",
	Long: `Listet die im lokalen Journal aufgezeichneten Render-Fehler,
neueste zuerst. Das Journal wird mit [journal] enabled = true befuellt.`,
	RunE: runFaults,
}

func init() {
	rootCmd.AddCommand(faultsCmd)

	faultsCmd.Flags().IntVar(&faultsLimit, "limit", 20, "Maximale Anzahl Eintraege")
	faultsCmd.Flags().StringVar(&faultsBoundary, "boundary", "", "Nur Fehler dieser Fehlergrenze")
	faultsCmd.Flags().BoolVar(&faultsStats, "stats", false, "Anzahl je Fehlergrenze statt Liste")
}

func runFaults(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError(cmd.ErrOrStderr(), "Konfiguration", err)
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(cfg.Journal.Path); os.IsNotExist(err) {
		fmt.Fprintf(out, "Kein Journal unter %s\n", cfg.Journal.Path)
		return nil
	}

	j, err := report.OpenJournal(report.JournalConfig{
		Path:    cfg.Journal.Path,
		Service: cfg.Reporter.ServiceName,
	})
	if err != nil {
		printError(cmd.ErrOrStderr(), "Journal", err)
		return err
	}
	defer j.Close()

	ctx := context.Background()

	if faultsStats {
		stats, err := j.Stats(ctx)
		if err != nil {
			printError(cmd.ErrOrStderr(), "Journal", err)
			return err
		}
		table := tablewriter.NewWriter(out)
		table.Header("Boundary", "Fehler")
		for _, row := range statsRows(stats.ByBoundary) {
			table.Append(row[0], row[1])
		}
		table.Footer("Gesamt", strconv.FormatInt(stats.Total, 10))
		table.Render()
		return nil
	}

	entries, err := j.List(ctx, report.JournalFilter{
		Boundary: faultsBoundary,
		Limit:    faultsLimit,
	})
	if err != nil {
		printError(cmd.ErrOrStderr(), "Journal", err)
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Keine Fehler aufgezeichnet")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Zeit", "Boundary", "Versuch", "Meldung")
	for _, e := range entries {
		table.Append(
			shortID(e.ID),
			e.OccurredAt.Local().Format("2006-01-02 15:04:05"),
			e.Boundary,
			strconv.Itoa(e.Attempt),
			truncate(e.Message, messageWidth),
		)
	}
	table.Render()
	return nil
}

// statsRows returns one row per boundary, sorted by name
func statsRows(byBoundary map[string]int64) [][]string {
	names := make([]string, 0, len(byBoundary))
	for name := range byBoundary {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.FormatInt(byBoundary[name], 10)})
	}
	return rows
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
