package cmd

import (
	"fmt"

	"github.com/msto63/boundary/internal/app"
	"github.com/msto63/boundary/internal/faultinject"
	"github.com/msto63/boundary/internal/guard"
	"github.com/spf13/cobra"
)

var (
	renderInject  bool
	renderText    string
	renderRetries int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fuehrt einen Render-Durchlauf ohne TUI aus",
	Long: `Rendert den Inhalt einmal durch eine Fehlergrenze und gibt das
Ergebnis aus. Mit --inject wird der Fehlerinjektor gerendert, mit --text
ein statischer Text. --retry N fuehrt danach N Wiederholungen aus.

Der Exit-Code ist auch dann 0, wenn die Ersatzansicht erscheint.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVar(&renderInject, "inject", false, "Fehlerinjektor rendern")
	renderCmd.Flags().StringVar(&renderText, "text", "Hello", "Statischer Text")
	renderCmd.Flags().IntVar(&renderRetries, "retry", 0, "Anzahl Wiederholungen nach dem ersten Durchlauf")
	renderCmd.MarkFlagsMutuallyExclusive("inject", "text")
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), app.Options{})
	if err != nil {
		printError(cmd.ErrOrStderr(), "Konfiguration", err)
		return err
	}
	defer a.Close()

	var content guard.Viewer = faultinject.NewStatic(renderText)
	name := "static"
	if renderInject {
		content = faultinject.New()
		name = "injector"
	}

	opts := append(a.GuardOptions(),
		guard.WithName(name),
		guard.WithFallback(a.Fallback()),
	)
	g := guard.New(content, opts...)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, g.View())
	for i := 0; i < renderRetries; i++ {
		g.Retry()
		fmt.Fprintln(out, g.View())
	}
	return nil
}
