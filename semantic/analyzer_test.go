package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfl-lang/wfl/diagnostics"
	"github.com/wfl-lang/wfl/lexer"
	"github.com/wfl-lang/wfl/parser"
)

func analyze(t *testing.T, src string) *diagnostics.Reporter {
	t.Helper()
	reg := diagnostics.NewRegistry()
	fileID := reg.Register("test.wfl", src)
	reporter := diagnostics.NewReporter(reg, nil)
	toks := lexer.Lex(src)
	prog := parser.Parse(toks, fileID, reporter)
	require.False(t, reporter.HasErrors(), "parse errors: %v", reporter.Reports())
	an := New(fileID, reporter)
	an.Analyze(prog)
	return reporter
}

func TestForwardActionCall(t *testing.T) {
	src := `define action first:
    call second
end action

define action second:
    display 1
end action`
	rep := analyze(t, src)
	require.False(t, rep.HasErrors())
}

func TestUndefinedNameReported(t *testing.T) {
	rep := analyze(t, `display missing`)
	require.True(t, rep.HasErrors())
}

func TestRedeclarationInSameScopeReported(t *testing.T) {
	src := `store x as 1
store x as 2`
	rep := analyze(t, src)
	require.True(t, rep.HasErrors())
}

func TestIfBranchPromotesDeclarations(t *testing.T) {
	src := `check if true:
    store x as 1
otherwise:
    store x as 2
end check
display x`
	rep := analyze(t, src)
	require.False(t, rep.HasErrors())
}

func TestIfBranchPromotesDeclarationWithNoElse(t *testing.T) {
	src := `check if true:
    store x as 1
end check
display x`
	rep := analyze(t, src)
	require.False(t, rep.HasErrors())
}

func TestIfBranchDoesNotPromoteNameDeclaredInOnlyOneArm(t *testing.T) {
	src := `check if true:
    store x as 1
otherwise:
    store y as 2
end check
display x`
	rep := analyze(t, src)
	require.True(t, rep.HasErrors())
}

func TestBreakOutsideLoopReported(t *testing.T) {
	rep := analyze(t, `break`)
	require.True(t, rep.HasErrors())
}

func TestContainerForwardReferenceToContainer(t *testing.T) {
	src := `define container Child extends Parent:
    method greet:
        display 1
    end method
end container

define container Parent:
    property name as Text
end container`
	rep := analyze(t, src)
	require.False(t, rep.HasErrors())
}

func TestPushLoweringResolvesNatively(t *testing.T) {
	src := `store items as []
push 1 into items`
	rep := analyze(t, src)
	require.False(t, rep.HasErrors())
}
