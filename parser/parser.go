// Package parser turns a token stream into an *ast.Program via recursive
// descent with Pratt-style precedence climbing for expressions (spec.md
// §4 "Parsing"). Errors are collected rather than raised; the parser
// recovers at statement boundaries and keeps going so a single source
// file can report more than one diagnostic per pass.
package parser

import (
	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/diagnostics"
	"github.com/wfl-lang/wfl/token"
)

type precedence int

const (
	lowest precedence = iota
	precOr
	precAnd
	precEquality
	precRelational
	precConcat
	precAdditive
	precMultiplicative
	precUnary
	precPower
	precPostfix
)

var precedences = map[token.Type]precedence{
	token.OR:         precOr,
	token.AND:        precAnd,
	token.IS:         precEquality,
	token.IS_NOT:     precEquality,
	token.CONTAINS:   precEquality,
	token.MATCHES:    precEquality,
	token.GREATER:    precRelational,
	token.GREATER_EQ: precRelational,
	token.LESS:       precRelational,
	token.LESS_EQ:    precRelational,
	token.WITH:       precConcat,
	token.PLUS:       precAdditive,
	token.MINUS:      precAdditive,
	token.TIMES:      precMultiplicative,
	token.DIVIDED_BY: precMultiplicative,
	token.MODULO:     precMultiplicative,
	token.POWER:      precPower,
	token.DOT:        precPostfix,
	token.LBRACKET:   precPostfix,
}

// syncTokens are the token types a parse error recovers to: the start of
// the next statement or a closing keyword, so one bad statement doesn't
// swallow the rest of the block.
var syncTokens = map[token.Type]bool{
	token.STORE: true, token.CREATE: true, token.CREATE_CONSTANT: true,
	token.CHANGE: true, token.CHECK_IF: true, token.COUNT_FROM: true,
	token.FOR_EACH: true, token.WHILE: true, token.REPEAT_WHILE: true,
	token.REPEAT_UNTIL: true, token.FOREVER: true, token.DEFINE_ACTION: true,
	token.DEFINE_CONTAINER: true, token.DEFINE_INTERFACE: true,
	token.DEFINE_EVENT: true, token.DEFINE_PATTERN: true,
	token.RETURN: true, token.BREAK: true, token.CONTINUE: true, token.EXIT: true,
	token.DISPLAY: true, token.TRY: true, token.WAIT_FOR: true,
	token.END_ACTION: true, token.END_CHECK: true, token.END_COUNT: true,
	token.END_FOR: true, token.END_WHILE: true, token.END_REPEAT: true,
	token.END_FOREVER: true, token.END_CONTAINER: true, token.END_INTERFACE: true,
	token.END_EVENT: true, token.END_TRY: true, token.OTHERWISE: true,
	token.WHEN: true, token.EOF: true,
}

// Parser consumes a flat token slice with one token of lookahead.
type Parser struct {
	tokens   []token.Token
	pos      int
	fileID   diagnostics.FileID
	reporter *diagnostics.Reporter

	prefixFns map[token.Type]func() ast.Expression
	infixFns  map[token.Type]func(ast.Expression) ast.Expression
}

// New builds a Parser over tokens, reporting diagnostics for fileID
// through reporter.
func New(tokens []token.Token, fileID diagnostics.FileID, reporter *diagnostics.Reporter) *Parser {
	p := &Parser{tokens: tokens, fileID: fileID, reporter: reporter}

	p.prefixFns = map[token.Type]func() ast.Expression{
		token.IDENT:        p.parseIdentifier,
		token.NUMBER:       p.parseNumberLiteral,
		token.STRING:       p.parseStringLiteral,
		token.BOOLEAN:      p.parseBooleanLiteral,
		token.NOTHING:      p.parseNothingLiteral,
		token.PATTERN:      p.parsePatternLiteral,
		token.LBRACKET:     p.parseListLiteral,
		token.LPAREN:       p.parseGroupedExpression,
		token.NOT:          p.parseUnaryExpression,
		token.MINUS:        p.parseUnaryExpression,
		token.NEW:          p.parseNewExpression,
		token.AWAIT:        p.parseAwaitExpression,
		token.CURRENT_TIME: p.parseCurrentTimeExpression,
		token.FIND:         p.parseFindExpression,
		token.REPLACE:      p.parseReplaceExpression,
		token.SPLIT:        p.parseSplitExpression,
		token.HEADER:       p.parseHeaderExpression,
		token.CALL:         p.parseCallKeywordExpression,
	}

	p.infixFns = map[token.Type]func(ast.Expression) ast.Expression{
		token.PLUS:       p.parseBinaryExpression,
		token.MINUS:      p.parseBinaryExpression,
		token.TIMES:      p.parseBinaryExpression,
		token.DIVIDED_BY: p.parseBinaryExpression,
		token.MODULO:     p.parseBinaryExpression,
		token.IS:         p.parseBinaryExpression,
		token.IS_NOT:     p.parseBinaryExpression,
		token.GREATER:    p.parseBinaryExpression,
		token.GREATER_EQ: p.parseBinaryExpression,
		token.LESS:       p.parseBinaryExpression,
		token.LESS_EQ:    p.parseBinaryExpression,
		token.AND:        p.parseBinaryExpression,
		token.OR:         p.parseBinaryExpression,
		token.CONTAINS:   p.parseBinaryExpression,
		token.POWER:      p.parsePowerExpression,
		token.MATCHES:    p.parseMatchesExpression,
		token.WITH:       p.parseConcatExpression,
		token.DOT:        p.parseDotExpression,
		token.LBRACKET:   p.parseIndexExpression,
	}

	return p
}

// Parse parses an already-lexed token slice into a complete *ast.Program, recovering from
// statement-level errors so the whole file is scanned in one pass.
func Parse(tokens []token.Token, fileID diagnostics.FileID, reporter *diagnostics.Reporter) *ast.Program {
	p := New(tokens, fileID, reporter)
	return p.ParseProgram()
}

// ParseProgram parses the full token stream as a sequence of top-level
// statements.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) expect(t token.Type) token.Token {
	if p.curIs(t) {
		return p.advance()
	}
	p.errorf("expected %s, got %s (%q)", t, p.cur().Type, p.cur().Literal)
	return p.cur()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	tok := p.cur()
	if p.reporter != nil {
		p.reporter.Errorf(p.fileID, "P000", diagnostics.Position{Line: tok.Pos.Line, Column: tok.Pos.Column}, format, args...)
	}
}

// synchronize discards tokens until a statement boundary, so one bad
// statement doesn't cascade into spurious errors for the rest of the
// block.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) && !syncTokens[p.cur().Type] {
		p.advance()
	}
}

func (p *Parser) curPrecedence() precedence {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return lowest
}

// parseExpression implements Pratt-style precedence climbing.
func (p *Parser) parseExpression(prec precedence) ast.Expression {
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.errorf("unexpected token %s (%q) in expression", p.cur().Type, p.cur().Literal)
		p.advance()
		return nil
	}
	left := prefix()

	for !p.curIs(token.EOF) && prec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.curIs(end) {
		return list
	}
	list = append(list, p.parseExpression(lowest))
	for p.curIs(token.COMMA) {
		p.advance()
		list = append(list, p.parseExpression(lowest))
	}
	return list
}

func (p *Parser) parseBlockUntil(terminators ...token.Type) []ast.Statement {
	var stmts []ast.Statement
	for !p.curIs(token.EOF) {
		for _, t := range terminators {
			if p.curIs(t) {
				return stmts
			}
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func ident(t token.Token) *ast.Identifier {
	return &ast.Identifier{Token: t, Value: t.Literal}
}
