// Package ast defines the WFL abstract syntax tree: Program, the
// Statement and Expression sum types, and the Type sum type (spec.md §3).
package ast

import (
	"bytes"
	"strings"

	"github.com/wfl-lang/wfl/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Statement is implemented by every statement variant.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression variant.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier is a bare name reference, used both as an expression and
// wherever a statement needs a plain name (declaration targets, params).
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()         {}
func (i *Identifier) TokenLiteral() string    { return i.Token.Literal }
func (i *Identifier) Pos() token.Position     { return i.Token.Pos }
func (i *Identifier) String() string          { return i.Value }

// joinNodes renders a slice of Nodes separated by sep, for String().
func joinNodes[T Node](nodes []T, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}
