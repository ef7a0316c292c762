// Command wfl is the WFL language CLI: run, lex, and parse WFL
// programs from the terminal, built entirely on pkg/wfl's public API.
package main

import (
	"fmt"
	"os"

	"github.com/wfl-lang/wfl/cmd/wfl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
