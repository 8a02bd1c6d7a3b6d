package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/schedfootball/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Show a report written by run --report",
	Long: `Show a report written by run --report.

Exits with the status the original run would have: 1 when a game let the
ball move and 2 when the harness could not finish a game.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	r, err := report.Read(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if r.Meta.Version != "" {
		fmt.Fprintf(out, "# %s on %s, %d CPUs, policy %s, generated %s\n",
			r.Meta.Version, r.Meta.Host, r.Meta.CPUs, r.Meta.Policy,
			r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintln(out, report.Render(r))
	return outcome(r.Totals)
}
