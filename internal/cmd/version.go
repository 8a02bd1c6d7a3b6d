package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=v1.2.3".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "schedfootball %s (%s %s/%s, %d CPUs available)\n",
			Version, runtime.Version(), runtime.GOOS, runtime.GOARCH, sched.AvailableCPUs())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
