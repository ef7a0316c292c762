package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/diagnostics"
	"github.com/wfl-lang/wfl/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *diagnostics.Reporter) {
	t.Helper()
	reg := diagnostics.NewRegistry()
	fileID := reg.Register("test.wfl", src)
	reporter := diagnostics.NewReporter(reg, nil)
	toks := lexer.Lex(src)
	prog := Parse(toks, fileID, reporter)
	return prog, reporter
}

func TestParseVarDecl(t *testing.T) {
	prog, rep := parse(t, `store x as 10`)
	require.False(t, rep.HasErrors())
	require.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*ast.VarDeclStatement)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	require.False(t, decl.IsConstant)
	num, ok := decl.Value.(*ast.NumberLiteral)
	require.True(t, ok)
	require.Equal(t, 10.0, num.Value)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog, rep := parse(t, `store x as 1 plus 2 times 3`)
	require.False(t, rep.HasErrors())
	decl := prog.Statements[0].(*ast.VarDeclStatement)
	bin := decl.Value.(*ast.BinaryExpression)
	require.Equal(t, "(1 plus (2 times 3))", bin.String())
}

func TestParsePowerBindsTighterThanUnaryMinus(t *testing.T) {
	prog, rep := parse(t, `store x as -2 ^ 2`)
	require.False(t, rep.HasErrors())
	decl := prog.Statements[0].(*ast.VarDeclStatement)
	unary := decl.Value.(*ast.UnaryExpression)
	require.Equal(t, "(2 ^ 2)", unary.Operand.(*ast.BinaryExpression).String())
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	prog, rep := parse(t, `store x as 2 ^ 3 ^ 2`)
	require.False(t, rep.HasErrors())
	decl := prog.Statements[0].(*ast.VarDeclStatement)
	bin := decl.Value.(*ast.BinaryExpression)
	require.Equal(t, "(2 ^ (3 ^ 2))", bin.String())
}

func TestParseIfStatement(t *testing.T) {
	src := `check if x is greater than 5:
    display x
otherwise:
    display 0
end check`
	prog, rep := parse(t, src)
	require.False(t, rep.HasErrors())
	ifStmt := prog.Statements[0].(*ast.IfStatement)
	require.Len(t, ifStmt.Then, 1)
	require.Len(t, ifStmt.Else, 1)
}

func TestParseCountLoop(t *testing.T) {
	src := `count from 1 to 10:
    display count
end count`
	prog, rep := parse(t, src)
	require.False(t, rep.HasErrors())
	c := prog.Statements[0].(*ast.CountStatement)
	require.Len(t, c.Body, 1)
}

func TestParseActionDef(t *testing.T) {
	src := `define action combine needs a, b gives back Number:
    return a plus b
end action`
	prog, rep := parse(t, src)
	require.False(t, rep.HasErrors())
	def := prog.Statements[0].(*ast.ActionDefStatement)
	require.Equal(t, "combine", def.Name)
	require.Len(t, def.Params, 2)
	require.Equal(t, "Number", def.ReturnType)
}

func TestParseContainerDef(t *testing.T) {
	src := `define container Point extends Shape implements Printable:
    property x as Number
    method area gives back Number:
        return x
    end method
end container`
	prog, rep := parse(t, src)
	require.False(t, rep.HasErrors())
	def := prog.Statements[0].(*ast.ContainerDefStatement)
	require.Equal(t, "Shape", def.Extends)
	require.Equal(t, []string{"Printable"}, def.Implements)
	require.Len(t, def.Properties, 1)
	require.Len(t, def.Methods, 1)
}

func TestParsePushLowersToCall(t *testing.T) {
	prog, rep := parse(t, `push 1 into items`)
	require.False(t, rep.HasErrors())
	exprStmt := prog.Statements[0].(*ast.ExpressionStatement)
	call := exprStmt.Expr.(*ast.CallExpression)
	require.Equal(t, "push", call.Callee.(*ast.Identifier).Value)
	require.Len(t, call.Args, 2)
}

func TestParseTryWhenOtherwise(t *testing.T) {
	src := `try:
    call risky
when general as e:
    display e
otherwise:
    display "ok"
end try`
	prog, rep := parse(t, src)
	require.False(t, rep.HasErrors())
	tryStmt := prog.Statements[0].(*ast.TryStatement)
	require.Len(t, tryStmt.WhenClauses, 1)
	require.Equal(t, "general", tryStmt.WhenClauses[0].Kind)
	require.NotNil(t, tryStmt.Otherwise)
}

func TestParseErrorRecoverySkipsBadStatement(t *testing.T) {
	src := `store x as 10
@@@
display x`
	prog, rep := parse(t, src)
	require.True(t, rep.HasErrors())
	require.GreaterOrEqual(t, len(prog.Statements), 2)
}
