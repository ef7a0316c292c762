package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wfl-lang/wfl/config"
	"github.com/wfl-lang/wfl/pkg/wfl"
)

var (
	runEval        string
	runNoTypeCheck bool
	runSeed        uint64
	runConfigPath  string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a WFL program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate an inline WFL expression instead of reading a file")
	runCmd.Flags().BoolVar(&runNoTypeCheck, "no-type-check", false, "skip semantic analysis and type checking")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "seed the stdlib random module for a reproducible run")
	runCmd.Flags().StringVar(&runConfigPath, "config", "wfl.toml", "path to an optional wfl.toml settings file")
}

func runScript(c *cobra.Command, args []string) error {
	source, err := readSource(runEval, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}

	log := nopLogger
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		log = l.Sugar()
	}

	seed := runSeed
	if !c.Flags().Changed("seed") && cfg.Stdlib.RandomSeed != 0 {
		seed = cfg.Stdlib.RandomSeed
	}

	engine, err := wfl.New(
		wfl.WithTypeCheck(!runNoTypeCheck),
		wfl.WithStdout(os.Stdout),
		wfl.WithRandomSeed(seed),
		wfl.WithPatternStepBudget(cfg.Interp.PatternStepBudget),
		wfl.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("initializing engine: %w", err)
	}

	if err := engine.Eval(source); err != nil {
		return err
	}
	return nil
}

var nopLogger = zap.NewNop().Sugar()

// readSource resolves input from either the --eval flag or the first
// positional file argument, matching the teacher's run command's
// file-or-inline-expression precedence.
func readSource(eval string, args []string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("run requires a file argument or --eval")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
