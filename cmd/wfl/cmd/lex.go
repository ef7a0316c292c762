package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wfl-lang/wfl/lexer"
)

var (
	lexEval     string
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a WFL program and print its token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  lexScript,
}

func init() {
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize an inline WFL expression instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", true, "print each token's source position")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", true, "print each token's type")
}

func lexScript(c *cobra.Command, args []string) error {
	source, err := readSource(lexEval, args)
	if err != nil {
		return err
	}
	for _, tok := range lexer.Lex(source) {
		var line string
		if lexShowType {
			line = fmt.Sprintf("[%-14s]", tok.Type)
		}
		line += fmt.Sprintf(" %q", tok.Literal)
		if lexShowPos {
			line += fmt.Sprintf(" @%s", tok.Pos)
		}
		fmt.Fprintln(c.OutOrStdout(), line)
	}
	return nil
}
