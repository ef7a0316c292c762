package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wfl-lang/wfl/pkg/wfl"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a WFL program and print its statement tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse an inline WFL expression instead of reading a file")
}

func parseScript(c *cobra.Command, args []string) error {
	source, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	engine, err := wfl.New(wfl.WithTypeCheck(false))
	if err != nil {
		return fmt.Errorf("initializing engine: %w", err)
	}

	prog, err := engine.Parse(source)
	if err != nil {
		return err
	}
	for i, stmt := range prog.Statements {
		fmt.Fprintf(c.OutOrStdout(), "%d: %s\n", i, stmt.String())
	}
	return nil
}
