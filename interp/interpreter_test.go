package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/token"
	"github.com/wfl-lang/wfl/value"
)

const (
	tokenPlus      = token.PLUS
	tokenTimes     = token.TIMES
	tokenGreater   = token.GREATER
	tokenDividedBy = token.DIVIDED_BY
	tokenPower     = token.POWER
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Value: name} }

func num(n float64) *ast.NumberLiteral { return &ast.NumberLiteral{Value: n} }

func str(s string) *ast.StringLiteral { return &ast.StringLiteral{Value: s} }

func newTestInterp(t *testing.T) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	in := New(Options{Stdout: &out})
	t.Cleanup(func() { in.Loop.Cancel(); _ = in.Loop.Drain() })
	return in, &out
}

func TestVarDeclAndDisplay(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, out := newTestInterp(t)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDeclStatement{Name: "greeting", Value: str("hello")},
		&ast.DisplayStatement{Value: ident("greeting")},
	}}
	require.NoError(t, in.Run(prog))
	require.Equal(t, "hello\n", out.String())
}

func TestArithmeticBinaryExpression(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, out := newTestInterp(t)
	expr := &ast.BinaryExpression{Left: num(2), Operator: tokenTimes, Right: num(3)}
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.DisplayStatement{Value: &ast.BinaryExpression{Left: expr, Operator: tokenPlus, Right: num(1)}},
	}}
	require.NoError(t, in.Run(prog))
	require.Equal(t, "7\n", out.String())
}

func TestPowerExpression(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, out := newTestInterp(t)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.DisplayStatement{Value: &ast.BinaryExpression{Left: num(2), Operator: tokenPower, Right: num(10)}},
	}}
	require.NoError(t, in.Run(prog))
	require.Equal(t, "1024\n", out.String())
}

func TestIfDoesNotPromoteNameDeclaredInOnlyOneArm(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.IfStatement{
			Condition: &ast.BooleanLiteral{Value: true},
			Then:      []ast.Statement{&ast.VarDeclStatement{Name: "onlyThen", Value: str("yes")}},
			Else:      []ast.Statement{&ast.VarDeclStatement{Name: "onlyElse", Value: str("no")}},
		},
	}}
	sig := in.execBlock(prog.Statements, in.Global)
	require.Nil(t, sig.err)
	_, ok := in.Global.Get("onlyThen")
	require.False(t, ok)
}

func TestIfPromotesDefinitionsAfterBlock(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, out := newTestInterp(t)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.IfStatement{
			Condition: &ast.BooleanLiteral{Value: true},
			Then:      []ast.Statement{&ast.VarDeclStatement{Name: "result", Value: str("yes")}},
			Else:      []ast.Statement{&ast.VarDeclStatement{Name: "result", Value: str("no")}},
		},
	}}
	sig := in.execBlock(prog.Statements, in.Global)
	require.Nil(t, sig.err)
	v, ok := in.Global.Get("result")
	require.True(t, ok)
	require.Equal(t, value.Text("yes"), v)
	_ = out
}

func TestForeachAccumulates(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	in.Global.Define("total", value.Number(0))
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.ForeachStatement{
			ItemName:   "n",
			Collection: &ast.ListLiteral{Elements: []ast.Expression{num(1), num(2), num(3)}},
			Body: []ast.Statement{
				&ast.AssignmentStatement{
					Target: ident("total"),
					Value:  &ast.BinaryExpression{Left: ident("total"), Operator: tokenPlus, Right: ident("n")},
				},
			},
		},
	}}
	require.NoError(t, in.Run(prog))
	v, ok := in.Global.Get("total")
	require.True(t, ok)
	require.Equal(t, value.Number(6), v)
}

func TestBreakExitsLoopEarly(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	in.Global.Define("seen", value.Number(0))
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.ForeachStatement{
			ItemName:   "n",
			Collection: &ast.ListLiteral{Elements: []ast.Expression{num(1), num(2), num(3)}},
			Body: []ast.Statement{
				&ast.IfStatement{
					Condition: &ast.BinaryExpression{Left: ident("n"), Operator: tokenGreater, Right: num(1)},
					Then:      []ast.Statement{&ast.BreakStatement{}},
				},
				&ast.AssignmentStatement{Target: ident("seen"), Value: ident("n")},
			},
		},
	}}
	require.NoError(t, in.Run(prog))
	v, _ := in.Global.Get("seen")
	require.Equal(t, value.Number(1), v)
}

func TestTryWhenCatchesRuntimeError(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	// The when body runs in its own scope, so it assigns to a global
	// declared beforehand rather than declaring a new name.
	in.Global.Define("caught", value.NothingValue)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.TryStatement{
			Body: []ast.Statement{
				&ast.ExpressionStatement{Expr: &ast.BinaryExpression{Left: num(1), Operator: tokenDividedBy, Right: num(0)}},
			},
			WhenClauses: []ast.WhenClause{
				{Kind: "division", Name: "err", Body: []ast.Statement{
					&ast.AssignmentStatement{Target: ident("caught"), Value: ident("err")},
				}},
			},
		},
	}}
	require.NoError(t, in.Run(prog))
	v, ok := in.Global.Get("caught")
	require.True(t, ok)
	require.Contains(t, v.String(), "division")
}

func TestContainerMethodSeesReceiverProperties(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	in.registerContainer(&ast.ContainerDefStatement{
		Name: "Counter",
		Properties: []ast.PropertyDecl{
			{Name: "count", Default: num(0)},
		},
		Methods: []ast.MethodDecl{
			{Name: "bump", Body: []ast.Statement{
				&ast.AssignmentStatement{
					Target: ident("count"),
					Value:  &ast.BinaryExpression{Left: ident("count"), Operator: tokenPlus, Right: num(1)},
				},
			}},
		},
	}, in.Global)

	inst := value.NewContainerInstance(in.Containers["Counter"])
	fn, _, ok := inst.Definition.ResolveMethod("bump")
	require.True(t, ok)

	_, rerr := in.callFunction(fn, nil, inst)
	require.Nil(t, rerr)
	require.Equal(t, value.Number(1), inst.Properties["count"])
}

func TestEventTriggerRunsHandlersInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	in.Events["ping"] = value.NewContainerEvent("ping", nil)
	in.Global.Define("log", value.NewList())

	register := func(tag string) {
		body := []ast.Statement{
			&ast.ExpressionStatement{Expr: &ast.CallExpression{
				Callee: ident("record"),
				Args:   []ast.Expression{str(tag)},
			}},
		}
		in.execHandlerDecl(&ast.HandlerStatement{Event: "ping", ParamName: "p", Body: body}, in.Global)
	}
	in.RegisterNative("record", func(args []value.Value) (value.Value, error) {
		list, _ := in.Global.Get("log")
		l := list.(*value.List)
		l.Elements = append(l.Elements, args[0])
		return value.NothingValue, nil
	})
	register("first")
	register("second")

	sig := in.execTrigger(&ast.TriggerStatement{Name: "ping"}, in.Global)
	require.Nil(t, sig.err)
	logV, _ := in.Global.Get("log")
	l := logV.(*value.List)
	require.Len(t, l.Elements, 2)
	require.Equal(t, value.Text("first"), l.Elements[0])
	require.Equal(t, value.Text("second"), l.Elements[1])
}

func TestPatternMatchExpressionEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDeclStatement{Name: "p", Value: &ast.PatternLiteral{Source: "one or more digit"}},
		&ast.VarDeclStatement{Name: "ok", Value: &ast.PatternMatchExpression{Text: str("abc123"), Pattern: ident("p")}},
	}}
	require.NoError(t, in.Run(prog))
	v, _ := in.Global.Get("ok")
	require.Equal(t, value.Boolean(true), v)
}

func TestWaitForDurationCompletesQuickly(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.WaitForDurationStatement{Amount: num(1), Unit: "ms"},
		&ast.VarDeclStatement{Name: "done", Value: &ast.BooleanLiteral{Value: true}},
	}}
	require.NoError(t, in.Run(prog))
	v, ok := in.Global.Get("done")
	require.True(t, ok)
	require.Equal(t, value.Boolean(true), v)
}

func TestUndefinedIdentifierIsRuntimeError(t *testing.T) {
	defer goleak.VerifyNone(t)
	in, _ := newTestInterp(t)
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.DisplayStatement{Value: ident("nope")},
	}}
	err := in.Run(prog)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "undefined"))
}
