package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version, GitCommit and BuildDate are set via -ldflags at release time.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wfl",
	Short: "wfl runs and inspects WebFirst Language programs",
	Long: `wfl is the command-line driver for the WFL execution engine:
parse, type-check, and run WFL source, or inspect its lexer/parser
output for debugging.`,
	SilenceUsage: true,
}

// Execute runs the root command, returning the first error encountered.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic logging")
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("wfl {{.Version}}\ncommit: %s\nbuilt: %s\n", GitCommit, BuildDate),
	)
	rootCmd.Version = Version
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
}
