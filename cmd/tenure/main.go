package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tenure/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tenure",
	Short: "Reappointment analysis over appointment records",
	Long:  `Tenure resolves appointee identities across years of appointment records and reports reappointment rates per organization`,
}

// main registers subcommands and persistent flags, then executes the root
// command. A command error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
