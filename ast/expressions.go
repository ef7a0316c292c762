package ast

import (
	"fmt"
	"strings"

	"github.com/wfl-lang/wfl/token"
)

// NumberLiteral is a numeric literal (spec.md's Value model has a single
// f64-backed Number).
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return fmt.Sprintf("%q", s.Value) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

// NothingLiteral is `nothing` / `missing` / `undefined`.
type NothingLiteral struct {
	Token token.Token
}

func (n *NothingLiteral) expressionNode()      {}
func (n *NothingLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NothingLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NothingLiteral) String() string       { return "nothing" }

// PatternLiteral holds the raw pattern DSL source text; the interpreter
// compiles it when it evaluates the literal.
type PatternLiteral struct {
	Token  token.Token
	Source string
}

func (p *PatternLiteral) expressionNode()      {}
func (p *PatternLiteral) TokenLiteral() string { return p.Token.Literal }
func (p *PatternLiteral) Pos() token.Position  { return p.Token.Pos }
func (p *PatternLiteral) String() string       { return fmt.Sprintf("pattern %q", p.Source) }

// ListLiteral is a bracketed list of element expressions.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (l *ListLiteral) expressionNode()      {}
func (l *ListLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ListLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *ListLiteral) String() string {
	return "[" + joinNodes(l.Elements, ", ") + "]"
}

// MapEntry is one key/value pair of a MapLiteral.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapLiteral is a literal key/value collection.
type MapLiteral struct {
	Token   token.Token
	Entries []MapEntry
}

func (m *MapLiteral) expressionNode()      {}
func (m *MapLiteral) TokenLiteral() string { return m.Token.Literal }
func (m *MapLiteral) Pos() token.Position  { return m.Token.Pos }
func (m *MapLiteral) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// BinaryExpression is any two-operand operator expression (arithmetic,
// comparison, logical, contains).
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Token.Literal, b.Right)
}

// ConcatExpression is the `with` concatenation operator; always
// stringifies both operands (spec.md §4.7).
type ConcatExpression struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (c *ConcatExpression) expressionNode()      {}
func (c *ConcatExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ConcatExpression) Pos() token.Position  { return c.Token.Pos }
func (c *ConcatExpression) String() string       { return fmt.Sprintf("(%s with %s)", c.Left, c.Right) }

// UnaryExpression is `not <expr>` or `- <expr>`.
type UnaryExpression struct {
	Token    token.Token
	Operator token.Type
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string       { return fmt.Sprintf("(%s%s)", u.Token.Literal, u.Operand) }

// CallExpression invokes a named function or action by value.
type CallExpression struct {
	Token    token.Token
	Callee   Expression // usually *Identifier
	Args     []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	return fmt.Sprintf("%s(%s)", c.Callee, joinNodes(c.Args, ", "))
}

// MemberExpression is `<object> . <property>` dotted access, or `of`
// reversed access (`<property> of <object>`).
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property string
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string       { return fmt.Sprintf("%s.%s", m.Object, m.Property) }

// StaticMemberExpression is `<ContainerName>.<member>` static access.
type StaticMemberExpression struct {
	Token     token.Token
	Container string
	Member    string
}

func (s *StaticMemberExpression) expressionNode()      {}
func (s *StaticMemberExpression) TokenLiteral() string { return s.Token.Literal }
func (s *StaticMemberExpression) Pos() token.Position  { return s.Token.Pos }
func (s *StaticMemberExpression) String() string {
	return fmt.Sprintf("%s.%s", s.Container, s.Member)
}

// IndexExpression is `<object>[<index>]`.
type IndexExpression struct {
	Token  token.Token
	Object Expression
	Index  Expression
}

func (i *IndexExpression) expressionNode()      {}
func (i *IndexExpression) TokenLiteral() string { return i.Token.Literal }
func (i *IndexExpression) Pos() token.Position  { return i.Token.Pos }
func (i *IndexExpression) String() string       { return fmt.Sprintf("%s[%s]", i.Object, i.Index) }

// MethodCallExpression invokes a method on a container instance.
type MethodCallExpression struct {
	Token    token.Token
	Receiver Expression
	Method   string
	Args     []Expression
}

func (m *MethodCallExpression) expressionNode()      {}
func (m *MethodCallExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MethodCallExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MethodCallExpression) String() string {
	return fmt.Sprintf("%s.%s(%s)", m.Receiver, m.Method, joinNodes(m.Args, ", "))
}

// NewExpression instantiates a container, with named property
// initializers (`new Point with x as 1, y as 2`).
type NewExpression struct {
	Token     token.Token
	Container string
	Inits     []NewInit
}

// NewInit is one `<name> as <value>` initializer of a NewExpression.
type NewInit struct {
	Name  string
	Value Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	parts := make([]string, len(n.Inits))
	for i, in := range n.Inits {
		parts[i] = fmt.Sprintf("%s as %s", in.Name, in.Value)
	}
	return fmt.Sprintf("new %s with %s", n.Container, strings.Join(parts, ", "))
}

// PatternMatchExpression tests text against a pattern (boolean result).
type PatternMatchExpression struct {
	Token   token.Token
	Text    Expression
	Pattern Expression
}

func (p *PatternMatchExpression) expressionNode()      {}
func (p *PatternMatchExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PatternMatchExpression) Pos() token.Position  { return p.Token.Pos }
func (p *PatternMatchExpression) String() string {
	return fmt.Sprintf("%s matches %s", p.Text, p.Pattern)
}

// PatternFindExpression returns the first match object, or Nothing.
type PatternFindExpression struct {
	Token   token.Token
	Text    Expression
	Pattern Expression
	All     bool // find-all vs find-first
}

func (p *PatternFindExpression) expressionNode()      {}
func (p *PatternFindExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PatternFindExpression) Pos() token.Position  { return p.Token.Pos }
func (p *PatternFindExpression) String() string {
	if p.All {
		return fmt.Sprintf("find all %s in %s", p.Pattern, p.Text)
	}
	return fmt.Sprintf("find %s in %s", p.Pattern, p.Text)
}

// PatternReplaceExpression substitutes matches of Pattern in Text with
// Replacement.
type PatternReplaceExpression struct {
	Token       token.Token
	Text        Expression
	Pattern     Expression
	Replacement Expression
}

func (p *PatternReplaceExpression) expressionNode()      {}
func (p *PatternReplaceExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PatternReplaceExpression) Pos() token.Position  { return p.Token.Pos }
func (p *PatternReplaceExpression) String() string {
	return fmt.Sprintf("replace %s in %s with %s", p.Pattern, p.Text, p.Replacement)
}

// PatternSplitExpression splits Text on Pattern matches, returning
// List(Text).
type PatternSplitExpression struct {
	Token   token.Token
	Text    Expression
	Pattern Expression
}

func (p *PatternSplitExpression) expressionNode()      {}
func (p *PatternSplitExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PatternSplitExpression) Pos() token.Position  { return p.Token.Pos }
func (p *PatternSplitExpression) String() string {
	return fmt.Sprintf("split %s by pattern %s", p.Text, p.Pattern)
}

// StringSplitExpression splits Text on a literal Delimiter (distinct from
// pattern-based splitting).
type StringSplitExpression struct {
	Token     token.Token
	Text      Expression
	Delimiter Expression
}

func (s *StringSplitExpression) expressionNode()      {}
func (s *StringSplitExpression) TokenLiteral() string { return s.Token.Literal }
func (s *StringSplitExpression) Pos() token.Position  { return s.Token.Pos }
func (s *StringSplitExpression) String() string {
	return fmt.Sprintf("split %s by %s", s.Text, s.Delimiter)
}

// AwaitExpression suspends until Value's Future resolves.
type AwaitExpression struct {
	Token token.Token
	Value Expression
}

func (a *AwaitExpression) expressionNode()      {}
func (a *AwaitExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AwaitExpression) Pos() token.Position  { return a.Token.Pos }
func (a *AwaitExpression) String() string       { return fmt.Sprintf("await %s", a.Value) }

// HeaderAccessExpression reads a named header off an in-flight HTTP
// request/response value.
type HeaderAccessExpression struct {
	Token   token.Token
	Request Expression
	Name    string
}

func (h *HeaderAccessExpression) expressionNode()      {}
func (h *HeaderAccessExpression) TokenLiteral() string { return h.Token.Literal }
func (h *HeaderAccessExpression) Pos() token.Position  { return h.Token.Pos }
func (h *HeaderAccessExpression) String() string {
	return fmt.Sprintf("header %q of %s", h.Name, h.Request)
}

// CurrentTimeExpression is `current time` (ms) or `current time
// formatted` (a formatted local-time string).
type CurrentTimeExpression struct {
	Token     token.Token
	Formatted bool
}

func (c *CurrentTimeExpression) expressionNode()      {}
func (c *CurrentTimeExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CurrentTimeExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CurrentTimeExpression) String() string {
	if c.Formatted {
		return "current time formatted"
	}
	return "current time"
}
