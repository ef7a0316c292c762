package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wfl-lang/wfl/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Token{Type: token.IDENT, Literal: name}, Value: name}
}

func TestProgramString(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&VarDeclStatement{
				Token: token.Token{Type: token.STORE, Literal: "store"},
				Name:  "x",
				Value: &NumberLiteral{Token: token.Token{Literal: "10"}, Value: 10},
			},
			&DisplayStatement{
				Token: token.Token{Type: token.DISPLAY, Literal: "display"},
				Value: ident("x"),
			},
		},
	}
	require.Equal(t, "store", prog.TokenLiteral())
	require.Contains(t, prog.String(), "store x as 10")
	require.Contains(t, prog.String(), "display x")
}

func TestIfStatementString(t *testing.T) {
	stmt := &IfStatement{
		Token:     token.Token{Type: token.CHECK_IF, Literal: "check if"},
		Condition: &BooleanLiteral{Token: token.Token{Literal: "true"}, Value: true},
		Then:      []Statement{&BreakStatement{Token: token.Token{Literal: "break"}}},
	}
	require.Contains(t, stmt.String(), "check if true:")
	require.Contains(t, stmt.String(), "break")
}

func TestTypeEqual(t *testing.T) {
	require.True(t, ListOf(Number()).Equal(ListOf(Number())))
	require.False(t, ListOf(Number()).Equal(ListOf(Text())))
	require.True(t, Instance("Point").Equal(Instance("Point")))
	require.False(t, Instance("Point").Equal(Instance("Line")))
}

func TestBinaryExpressionString(t *testing.T) {
	expr := &BinaryExpression{
		Token:    token.Token{Literal: "plus"},
		Left:     &NumberLiteral{Token: token.Token{Literal: "1"}, Value: 1},
		Operator: token.PLUS,
		Right:    &NumberLiteral{Token: token.Token{Literal: "2"}, Value: 2},
	}
	require.Equal(t, "(1 plus 2)", expr.String())
}

func TestContainerDefStatementFields(t *testing.T) {
	def := &ContainerDefStatement{
		Token:      token.Token{Literal: "define container"},
		Name:       "Point",
		Extends:    "Shape",
		Implements: []string{"Printable"},
		Properties: []PropertyDecl{{Name: "x", TypeName: "Number"}},
		Methods:    []MethodDecl{{Name: "area", ReturnType: "Number"}},
	}
	require.Equal(t, "Point", def.Name)
	require.Len(t, def.Properties, 1)
	require.Len(t, def.Methods, 1)
}
