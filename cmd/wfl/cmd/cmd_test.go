package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs rootCmd with args, capturing stdout/stderr through
// cobra's own SetOut/SetErr rather than spawning a subprocess.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	// cobra keeps flag values in their package variables between Execute
	// calls, so clear the -e values an earlier test may have set.
	runEval, lexEval, parseEval = "", "", ""
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommand_EvalsInlineExpression(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "run", "-e", `display 1 plus 2`, "--config", filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
}

func TestRunCommand_RunsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.wfl")
	require.NoError(t, os.WriteFile(path, []byte("display 10"), 0o644))

	_, err := execute(t, "run", path, "--config", filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
}

func TestRunCommand_RequiresFileOrEval(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "run", "--config", filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestLexCommand_PrintsTokens(t *testing.T) {
	out, err := execute(t, "lex", "-e", `store x as 1`)
	require.NoError(t, err)
	require.Contains(t, out, `"store"`)
}

func TestParseCommand_PrintsStatementTree(t *testing.T) {
	out, err := execute(t, "parse", "-e", `store x as 1`)
	require.NoError(t, err)
	require.Contains(t, out, "store")
}
