package types

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfl-lang/wfl/diagnostics"
	"github.com/wfl-lang/wfl/lexer"
	"github.com/wfl-lang/wfl/parser"
)

func check(t *testing.T, src string) *diagnostics.Reporter {
	t.Helper()
	reg := diagnostics.NewRegistry()
	fileID := reg.Register("test.wfl", src)
	reporter := diagnostics.NewReporter(reg, nil)
	toks := lexer.Lex(src)
	prog := parser.Parse(toks, fileID, reporter)
	require.False(t, reporter.HasErrors(), "parse errors: %v", reporter.Reports())
	chk := NewChecker(fileID, reporter)
	chk.Check(prog)
	return reporter
}

func TestNumberArithmeticTypeChecks(t *testing.T) {
	rep := check(t, `store x as 1 plus 2`)
	require.False(t, rep.HasErrors())
}

func TestArithmeticOnTextReported(t *testing.T) {
	rep := check(t, `store x as "a" plus 2`)
	require.True(t, rep.HasErrors())
}

func TestPlainStoreInfersValueType(t *testing.T) {
	rep := check(t, `store x as 10
store y as x plus 5`)
	require.False(t, rep.HasErrors())
}

func TestActionReturnTypeMismatch(t *testing.T) {
	src := `define action one gives back Text:
    return 10
end action`
	rep := check(t, src)
	require.True(t, rep.HasErrors())
}

func TestActionArgumentCountMismatch(t *testing.T) {
	src := `define action combine needs a, b gives back Number:
    return a plus b
end action

store total as call combine with 1`
	rep := check(t, src)
	require.True(t, rep.HasErrors())
}

func TestContainerPropertyTypeMismatch(t *testing.T) {
	src := `define container Point:
    property x as Number
end container

store p as new Point with x as "not a number"`
	rep := check(t, src)
	require.True(t, rep.HasErrors())
}

func TestInterfaceConformanceMissingMethod(t *testing.T) {
	src := `define interface Printable:
    method describe gives back Text
end interface

define container Point implements Printable:
    property x as Number
end container`
	rep := check(t, src)
	require.True(t, rep.HasErrors())
}
