package parser

import (
	"strconv"

	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.advance()
	return ident(tok)
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.advance()
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf("invalid number literal %q", tok.Literal)
	}
	return &ast.NumberLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.advance()
	return &ast.BooleanLiteral{Token: tok, Value: tok.Literal == "true"}
}

func (p *Parser) parseNothingLiteral() ast.Expression {
	tok := p.advance()
	return &ast.NothingLiteral{Token: tok}
}

func (p *Parser) parsePatternLiteral() ast.Expression {
	tok := p.advance()
	strTok := p.expect(token.STRING)
	return &ast.PatternLiteral{Token: tok, Source: strTok.Literal}
}

func (p *Parser) parseListLiteral() ast.Expression {
	tok := p.advance() // [
	elems := p.parseExpressionList(token.RBRACKET)
	p.expect(token.RBRACKET)
	return &ast.ListLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // (
	expr := p.parseExpression(lowest)
	p.expect(token.RPAREN)
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.advance()
	operand := p.parseExpression(precUnary)
	return &ast.UnaryExpression{Token: tok, Operator: tok.Type, Operand: operand}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := p.curPrecedenceFor(tok.Type)
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Type, Right: right}
}

// parsePowerExpression parses `^` right-associatively: unlike
// parseBinaryExpression, the right operand is parsed one precedence
// level below power's own, so a chained `2 ^ 3 ^ 2` recurses as
// `2 ^ (3 ^ 2)` instead of grouping left.
func (p *Parser) parsePowerExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	right := p.parseExpression(precPower - 1)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Type, Right: right}
}

func (p *Parser) curPrecedenceFor(t token.Type) precedence {
	if pr, ok := precedences[t]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) parseConcatExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // with
	right := p.parseExpression(precConcat)
	return &ast.ConcatExpression{Token: tok, Left: left, Right: right}
}

func (p *Parser) parseMatchesExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // matches
	pattern := p.parseExpression(precEquality)
	return &ast.PatternMatchExpression{Token: tok, Text: left, Pattern: pattern}
}

// parseDotExpression handles `.` member access and method calls:
// `obj.prop`, `obj.method(args)`.
func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // .
	nameTok := p.expect(token.IDENT)
	if p.curIs(token.LPAREN) {
		p.advance()
		args := p.parseExpressionList(token.RPAREN)
		p.expect(token.RPAREN)
		return &ast.MethodCallExpression{Token: tok, Receiver: left, Method: nameTok.Literal, Args: args}
	}
	return &ast.MemberExpression{Token: tok, Object: left, Property: nameTok.Literal}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // [
	index := p.parseExpression(lowest)
	p.expect(token.RBRACKET)
	return &ast.IndexExpression{Token: tok, Object: left, Index: index}
}

// parseNewExpression parses `new <Container> [with <name> as <value>, ...]`.
func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.advance() // new
	nameTok := p.expect(token.IDENT)
	n := &ast.NewExpression{Token: tok, Container: nameTok.Literal}
	if p.curIs(token.WITH) {
		p.advance()
		for {
			fieldTok := p.expect(token.IDENT)
			p.expect(token.AS)
			val := p.parseExpression(lowest)
			n.Inits = append(n.Inits, ast.NewInit{Name: fieldTok.Literal, Value: val})
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	return n
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	tok := p.advance() // await
	val := p.parseExpression(precUnary)
	return &ast.AwaitExpression{Token: tok, Value: val}
}

func (p *Parser) parseCurrentTimeExpression() ast.Expression {
	tok := p.advance() // current time
	c := &ast.CurrentTimeExpression{Token: tok}
	if p.curIs(token.IDENT) && p.cur().Literal == "formatted" {
		p.advance()
		c.Formatted = true
	}
	return c
}

// parseFindExpression parses `find [all] <pattern> in <text>`.
func (p *Parser) parseFindExpression() ast.Expression {
	tok := p.advance() // find
	all := false
	if p.curIs(token.IDENT) && p.cur().Literal == "all" {
		p.advance()
		all = true
	}
	pattern := p.parseExpression(precEquality)
	p.expect(token.IN)
	text := p.parseExpression(precEquality)
	return &ast.PatternFindExpression{Token: tok, Text: text, Pattern: pattern, All: all}
}

// parseReplaceExpression parses `replace <pattern> in <text> with <repl>`.
func (p *Parser) parseReplaceExpression() ast.Expression {
	tok := p.advance() // replace
	pattern := p.parseExpression(precEquality)
	p.expect(token.IN)
	text := p.parseExpression(precEquality)
	p.expect(token.WITH)
	repl := p.parseExpression(precEquality)
	return &ast.PatternReplaceExpression{Token: tok, Text: text, Pattern: pattern, Replacement: repl}
}

// parseSplitExpression parses `split <text> by pattern <pattern>` or
// `split <text> by <delimiter>`.
func (p *Parser) parseSplitExpression() ast.Expression {
	tok := p.advance() // split
	text := p.parseExpression(precEquality)
	p.expect(token.BY)
	if p.curIs(token.PATTERN) {
		p.advance()
		pattern := p.parseExpression(precEquality)
		return &ast.PatternSplitExpression{Token: tok, Text: text, Pattern: pattern}
	}
	delim := p.parseExpression(precEquality)
	return &ast.StringSplitExpression{Token: tok, Text: text, Delimiter: delim}
}

// parseHeaderExpression parses `header "<name>" of <request>`.
func (p *Parser) parseHeaderExpression() ast.Expression {
	tok := p.advance() // header
	nameTok := p.expect(token.STRING)
	p.expect(token.OF)
	req := p.parseExpression(precEquality)
	return &ast.HeaderAccessExpression{Token: tok, Request: req, Name: nameTok.Literal}
}

// parseCallKeywordExpression parses `call <action> [with <args>]` as an
// expression (used where a call's result feeds another expression).
func (p *Parser) parseCallKeywordExpression() ast.Expression {
	tok := p.advance() // call
	calleeTok := p.expect(token.IDENT)
	callee := ident(calleeTok)
	var args []ast.Expression
	if p.curIs(token.WITH) {
		p.advance()
		args = p.parseExpressionList(token.EOF)
	}
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}
