// Package pattern implements WFL's embedded pattern-matching engine: a
// natural-language pattern DSL (`pattern "one or more digit"`) compiled
// to a small backtracking bytecode VM, kept wholly separate from the main
// WFL lexer/parser/ast packages (spec.md §7 "Pattern Matching").
//
// The PatternExpression AST and compiler here mirror the structure of
// the original WFL implementation's pattern compiler: a dispatch over
// Literal/CharacterClass/Sequence/Alternative/Quantified/Capture/
// Backreference/Anchor/Lookahead/Lookbehind nodes, emitting Split/Jump
// patched-branch bytecode for alternation and quantifiers.
package pattern

// Expr is implemented by every pattern-expression variant.
type Expr interface {
	exprNode()
}

// Literal matches an exact run of text.
type Literal struct {
	Text string
}

func (Literal) exprNode() {}

// ClassName enumerates the built-in character classes the DSL
// recognizes as bare words.
type ClassName int

const (
	ClassDigit ClassName = iota
	ClassLetter
	ClassWhitespace
	ClassWord // letters, digits, underscore
	ClassAny  // any single character (DSL: "any character")
)

// CharClass matches a single character belonging to (or, if Negated,
// excluded from) Name.
type CharClass struct {
	Name    ClassName
	Negated bool
}

func (CharClass) exprNode() {}

// Sequence matches Items in order, back to back.
type Sequence struct {
	Items []Expr
}

func (Sequence) exprNode() {}

// Alternative matches the first of Options that succeeds (`X or Y`).
type Alternative struct {
	Options []Expr
}

func (Alternative) exprNode() {}

// QuantKind enumerates the repetition shapes the DSL supports.
type QuantKind int

const (
	QuantOptional   QuantKind = iota // "optional X" — 0 or 1
	QuantZeroOrMore                  // "zero or more X"
	QuantOneOrMore                   // "one or more X"
	QuantExactly                     // "exactly N X"
	QuantBetween                     // "between N and M X"
)

// Quantified repeats Inner according to Kind (and Min/Max for
// Exactly/Between).
type Quantified struct {
	Inner Expr
	Kind  QuantKind
	Min   int
	Max   int
}

func (Quantified) exprNode() {}

// Capture names a submatch (`capture <inner> as <name>`), retrievable
// from a MatchResult by Name.
type Capture struct {
	Name  string
	Inner Expr
}

func (Capture) exprNode() {}

// Backreference matches exactly the text an earlier Capture of the same
// Name matched (`same as <name>`).
type Backreference struct {
	Name string
}

func (Backreference) exprNode() {}

// AnchorKind enumerates the zero-width position assertions.
type AnchorKind int

const (
	AnchorStartOfText AnchorKind = iota
	AnchorEndOfText
	AnchorWordBoundary
)

// Anchor is a zero-width assertion about the current position.
type Anchor struct {
	Kind AnchorKind
}

func (Anchor) exprNode() {}

// Lookahead asserts Inner matches (or, if Negative, does not match)
// starting at the current position, without consuming input.
type Lookahead struct {
	Inner    Expr
	Negative bool
}

func (Lookahead) exprNode() {}

// Lookbehind asserts Inner matches (or, if Negative, does not match)
// ending at the current position, without consuming input. Inner must
// have a statically known fixed length (spec.md §7's lookbehind
// restriction) — the compiler rejects variable-length lookbehinds.
type Lookbehind struct {
	Inner    Expr
	Negative bool
}

func (Lookbehind) exprNode() {}
