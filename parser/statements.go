package parser

import (
	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/token"
)

// parseStatement dispatches on the current token's keyword, recovering to
// the next statement boundary on error.
func (p *Parser) parseStatement() ast.Statement {
	var stmt ast.Statement
	switch p.cur().Type {
	case token.STORE:
		stmt = p.parseVarDecl(false)
	case token.CREATE_CONSTANT:
		stmt = p.parseVarDecl(true)
	case token.CHANGE:
		stmt = p.parseAssignment()
	case token.CHECK_IF:
		stmt = p.parseIfStatement()
	case token.COUNT_FROM:
		stmt = p.parseCountStatement()
	case token.FOR_EACH:
		stmt = p.parseForeachStatement()
	case token.WHILE:
		stmt = p.parseWhileStatement()
	case token.REPEAT_WHILE:
		stmt = p.parseRepeatWhileStatement()
	case token.REPEAT_UNTIL:
		stmt = p.parseRepeatUntilStatement()
	case token.FOREVER:
		stmt = p.parseForeverStatement()
	case token.DEFINE_ACTION:
		stmt = p.parseActionDef()
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.BREAK:
		stmt = &ast.BreakStatement{Token: p.advance()}
	case token.CONTINUE:
		stmt = &ast.ContinueStatement{Token: p.advance()}
	case token.EXIT:
		stmt = &ast.ExitStatement{Token: p.advance()}
	case token.DISPLAY:
		stmt = p.parseDisplayStatement()
	case token.OPEN:
		stmt = p.parseOpenFileStatement()
	case token.READ:
		stmt = p.parseReadFileStatement()
	case token.WRITE:
		stmt = p.parseWriteFileStatement()
	case token.CLOSE:
		stmt = &ast.CloseStatement{Token: p.advance(), Handle: p.parseExpression(lowest)}
	case token.CREATE_DIRECTORY:
		stmt = &ast.CreateDirectoryStatement{Token: p.advance(), Path: p.parseExpression(lowest)}
	case token.DELETE:
		stmt = &ast.DeleteStatement{Token: p.advance(), Path: p.parseExpression(lowest)}
	case token.GET:
		stmt = p.parseHTTPGetStatement()
	case token.POST:
		stmt = p.parseHTTPPostStatement()
	case token.LISTEN:
		stmt = p.parseListenStatement()
	case token.RESPOND:
		stmt = p.parseRespondStatement()
	case token.WAIT_FOR:
		stmt = p.parseWaitForStatement()
	case token.TRY:
		stmt = p.parseTryStatement()
	case token.DEFINE_CONTAINER:
		stmt = p.parseContainerDef()
	case token.DEFINE_INTERFACE:
		stmt = p.parseInterfaceDef()
	case token.DEFINE_EVENT:
		stmt = p.parseEventDef()
	case token.TRIGGER:
		stmt = p.parseTriggerStatement()
	case token.ON:
		stmt = p.parseHandlerStatement()
	case token.DEFINE_PATTERN:
		stmt = p.parsePatternDef()
	case token.ADD:
		stmt = p.parseAddStatement()
	case token.REMOVE:
		stmt = p.parseRemoveStatement()
	case token.CLEAR:
		stmt = &ast.ClearStatement{Token: p.advance(), List: p.parseExpression(lowest)}
	case token.PUSH:
		stmt = p.parsePushStatement()
	case token.CALL:
		stmt = p.parseCallStatement()
	default:
		stmt = p.parseExpressionStatement()
	}

	if stmt == nil {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseVarDecl(isConstant bool) ast.Statement {
	tok := p.advance() // store / create constant
	nameTok := p.expect(token.IDENT)
	p.expect(token.AS)
	val := p.parseExpression(lowest)
	return &ast.VarDeclStatement{Token: tok, Name: nameTok.Literal, Value: val, IsConstant: isConstant}
}

func (p *Parser) parseAssignment() ast.Statement {
	tok := p.advance() // change
	target := p.parseExpression(precPostfix + 1)
	p.expect(token.TO)
	val := p.parseExpression(lowest)
	return &ast.AssignmentStatement{Token: tok, Target: target, Value: val}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.advance() // check if
	cond := p.parseExpression(lowest)
	p.expect(token.COLON)
	then := p.parseBlockUntil(token.OTHERWISE, token.END_CHECK)
	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}
	if p.curIs(token.OTHERWISE) {
		p.advance()
		p.expect(token.COLON)
		stmt.Else = p.parseBlockUntil(token.END_CHECK)
	}
	p.expect(token.END_CHECK)
	return stmt
}

func (p *Parser) parseCountStatement() ast.Statement {
	tok := p.advance() // count from
	start := p.parseExpression(precConcat + 1)
	p.expect(token.TO)
	end := p.parseExpression(precConcat + 1)
	var step ast.Expression
	if p.curIs(token.BY) {
		p.advance()
		step = p.parseExpression(precConcat + 1)
	}
	p.expect(token.COLON)
	body := p.parseBlockUntil(token.END_COUNT)
	p.expect(token.END_COUNT)
	return &ast.CountStatement{Token: tok, CounterName: "count", Start: start, End: end, Step: step, Body: body}
}

func (p *Parser) parseForeachStatement() ast.Statement {
	tok := p.advance() // for each
	itemTok := p.expect(token.IDENT)
	p.expect(token.IN)
	coll := p.parseExpression(lowest)
	p.expect(token.COLON)
	body := p.parseBlockUntil(token.END_FOR)
	p.expect(token.END_FOR)
	return &ast.ForeachStatement{Token: tok, ItemName: itemTok.Literal, Collection: coll, Body: body}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.advance() // while
	cond := p.parseExpression(lowest)
	p.expect(token.COLON)
	body := p.parseBlockUntil(token.END_WHILE)
	p.expect(token.END_WHILE)
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseRepeatWhileStatement() ast.Statement {
	tok := p.advance() // repeat while
	cond := p.parseExpression(lowest)
	p.expect(token.COLON)
	body := p.parseBlockUntil(token.END_REPEAT)
	p.expect(token.END_REPEAT)
	return &ast.RepeatWhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseRepeatUntilStatement() ast.Statement {
	tok := p.advance() // repeat until
	cond := p.parseExpression(lowest)
	p.expect(token.COLON)
	body := p.parseBlockUntil(token.END_REPEAT)
	p.expect(token.END_REPEAT)
	return &ast.RepeatUntilStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForeverStatement() ast.Statement {
	tok := p.advance() // forever
	p.expect(token.COLON)
	body := p.parseBlockUntil(token.END_FOREVER)
	p.expect(token.END_FOREVER)
	return &ast.ForeverStatement{Token: tok, Body: body}
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	for {
		nameTok := p.expect(token.IDENT)
		param := ast.Param{Name: nameTok.Literal}
		if p.curIs(token.AS) {
			p.advance()
			typeTok := p.expect(token.IDENT)
			param.TypeName = typeTok.Literal
		}
		params = append(params, param)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return params
}

func (p *Parser) parseActionDef() ast.Statement {
	tok := p.advance() // define action
	nameTok := p.expect(token.IDENT)
	def := &ast.ActionDefStatement{Token: tok, Name: nameTok.Literal}
	if p.curIs(token.NEEDS) {
		p.advance()
		def.Params = p.parseParamList()
	}
	if p.curIs(token.GIVES_BACK) {
		p.advance()
		retTok := p.expect(token.IDENT)
		def.ReturnType = retTok.Literal
	}
	p.expect(token.COLON)
	def.Body = p.parseBlockUntil(token.END_ACTION)
	p.expect(token.END_ACTION)
	return def
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.advance() // return
	if isStatementBoundary(p.cur().Type) {
		return &ast.ReturnStatement{Token: tok}
	}
	return &ast.ReturnStatement{Token: tok, Value: p.parseExpression(lowest)}
}

func isStatementBoundary(t token.Type) bool {
	return syncTokens[t]
}

func (p *Parser) parseDisplayStatement() ast.Statement {
	tok := p.advance() // display
	return &ast.DisplayStatement{Token: tok, Value: p.parseExpression(lowest)}
}

// parseOpenFileStatement parses `open file "<path>" as <mode> into
// <handle>`.
func (p *Parser) parseOpenFileStatement() ast.Statement {
	tok := p.advance() // open
	if p.curIs(token.FILE) {
		p.advance()
	}
	path := p.parseExpression(precConcat + 1)
	mode := "read"
	if p.curIs(token.AS) {
		p.advance()
		// read and write lex as keywords; any other mode is an identifier.
		if p.curIs(token.READ) || p.curIs(token.WRITE) {
			mode = p.advance().Literal
		} else {
			modeTok := p.expect(token.IDENT)
			mode = modeTok.Literal
		}
	}
	p.expect(token.INTO)
	handleTok := p.expect(token.IDENT)
	return &ast.OpenFileStatement{Token: tok, Path: path, Mode: mode, HandleName: handleTok.Literal}
}

func (p *Parser) parseReadFileStatement() ast.Statement {
	tok := p.advance() // read
	handle := p.parseExpression(precConcat + 1)
	p.expect(token.INTO)
	intoTok := p.expect(token.IDENT)
	return &ast.ReadFileStatement{Token: tok, Handle: handle, Into: intoTok.Literal}
}

func (p *Parser) parseWriteFileStatement() ast.Statement {
	tok := p.advance() // write
	content := p.parseExpression(precConcat + 1)
	p.expect(token.TO)
	handle := p.parseExpression(lowest)
	return &ast.WriteFileStatement{Token: tok, Handle: handle, Content: content}
}

func (p *Parser) parseHTTPGetStatement() ast.Statement {
	tok := p.advance() // get
	url := p.parseExpression(precConcat + 1)
	p.expect(token.INTO)
	intoTok := p.expect(token.IDENT)
	return &ast.HTTPGetStatement{Token: tok, URL: url, Into: intoTok.Literal}
}

func (p *Parser) parseHTTPPostStatement() ast.Statement {
	tok := p.advance() // post
	body := p.parseExpression(precConcat + 1)
	p.expect(token.TO)
	url := p.parseExpression(precConcat + 1)
	p.expect(token.INTO)
	intoTok := p.expect(token.IDENT)
	return &ast.HTTPPostStatement{Token: tok, URL: url, Body: body, Into: intoTok.Literal}
}

func (p *Parser) parseListenStatement() ast.Statement {
	tok := p.advance() // listen
	if p.curIs(token.ON) {
		p.advance()
	}
	port := p.parseExpression(precConcat + 1)
	p.expect(token.INTO)
	handleTok := p.expect(token.IDENT)
	return &ast.ListenStatement{Token: tok, Port: port, HandleName: handleTok.Literal}
}

// parseWaitForRequestStatement parses `wait for request on <listener>
// into <name>`; dispatched from parseWaitForStatement.
func (p *Parser) parseWaitForRequestStatement(tok token.Token) ast.Statement {
	p.expect(token.REQUEST)
	p.expect(token.ON)
	listener := p.parseExpression(precConcat + 1)
	p.expect(token.INTO)
	intoTok := p.expect(token.IDENT)
	return &ast.WaitForRequestStatement{Token: tok, Listener: listener, Into: intoTok.Literal}
}

func (p *Parser) parseRespondStatement() ast.Statement {
	tok := p.advance() // respond
	p.expect(token.TO)
	req := p.parseExpression(precConcat + 1)
	p.expect(token.WITH)
	body := p.parseExpression(lowest)
	return &ast.RespondStatement{Token: tok, Request: req, Body: body}
}

// parseWaitForStatement handles `wait for duration <n> <unit>`, `wait for
// request on ... into ...`, and the generic `wait for: <single I/O
// statement>` async-scope form (spec.md §4.7).
func (p *Parser) parseWaitForStatement() ast.Statement {
	tok := p.advance() // wait for
	if p.curIs(token.DURATION) {
		p.advance()
		amount := p.parseExpression(precConcat + 1)
		unitTok := p.expect(token.IDENT)
		return &ast.WaitForDurationStatement{Token: tok, Amount: amount, Unit: unitTok.Literal}
	}
	if p.curIs(token.REQUEST) {
		return p.parseWaitForRequestStatement(tok)
	}
	p.expect(token.COLON)
	inner := p.parseStatement()
	return &ast.WaitForStatement{Token: tok, Inner: inner}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.advance() // try
	p.expect(token.COLON)
	body := p.parseBlockUntil(token.WHEN, token.OTHERWISE, token.END_TRY)
	stmt := &ast.TryStatement{Token: tok, Body: body}
	for p.curIs(token.WHEN) {
		p.advance()
		kindTok := p.expect(token.IDENT)
		name := "err"
		if p.curIs(token.AS) {
			p.advance()
			nameTok := p.expect(token.IDENT)
			name = nameTok.Literal
		}
		p.expect(token.COLON)
		whenBody := p.parseBlockUntil(token.WHEN, token.OTHERWISE, token.END_TRY)
		stmt.WhenClauses = append(stmt.WhenClauses, ast.WhenClause{Kind: kindTok.Literal, Name: name, Body: whenBody})
	}
	if p.curIs(token.OTHERWISE) {
		p.advance()
		p.expect(token.COLON)
		stmt.Otherwise = p.parseBlockUntil(token.END_TRY)
	}
	p.expect(token.END_TRY)
	return stmt
}

func (p *Parser) parseContainerDef() ast.Statement {
	tok := p.advance() // define container
	nameTok := p.expect(token.IDENT)
	def := &ast.ContainerDefStatement{Token: tok, Name: nameTok.Literal}
	if p.curIs(token.EXTENDS) {
		p.advance()
		parentTok := p.expect(token.IDENT)
		def.Extends = parentTok.Literal
	}
	if p.curIs(token.IMPLEMENTS) {
		p.advance()
		for {
			ifaceTok := p.expect(token.IDENT)
			def.Implements = append(def.Implements, ifaceTok.Literal)
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.COLON)
	for !p.curIs(token.END_CONTAINER) && !p.curIs(token.EOF) {
		static := false
		if p.curIs(token.STATIC) {
			p.advance()
			static = true
		}
		switch p.cur().Type {
		case token.PROPERTY:
			p.advance()
			nameTok := p.expect(token.IDENT)
			prop := ast.PropertyDecl{Name: nameTok.Literal, Static: static}
			if p.curIs(token.AS) {
				p.advance()
				typeTok := p.expect(token.IDENT)
				prop.TypeName = typeTok.Literal
			}
			if p.curIs(token.WITH) {
				p.advance()
				prop.Default = p.parseExpression(lowest)
			}
			def.Properties = append(def.Properties, prop)
		case token.METHOD:
			p.advance()
			nameTok := p.expect(token.IDENT)
			method := ast.MethodDecl{Name: nameTok.Literal, Static: static}
			if p.curIs(token.NEEDS) {
				p.advance()
				method.Params = p.parseParamList()
			}
			if p.curIs(token.GIVES_BACK) {
				p.advance()
				retTok := p.expect(token.IDENT)
				method.ReturnType = retTok.Literal
			}
			p.expect(token.COLON)
			method.Body = p.parseBlockUntil(token.END_METHOD)
			p.expect(token.END_METHOD)
			def.Methods = append(def.Methods, method)
		default:
			p.errorf("expected property or method in container %s, got %s", def.Name, p.cur().Type)
			p.synchronize()
		}
	}
	p.expect(token.END_CONTAINER)
	return def
}

func (p *Parser) parseInterfaceDef() ast.Statement {
	tok := p.advance() // define interface
	nameTok := p.expect(token.IDENT)
	def := &ast.InterfaceDefStatement{Token: tok, Name: nameTok.Literal}
	p.expect(token.COLON)
	for !p.curIs(token.END_INTERFACE) && !p.curIs(token.EOF) {
		p.expect(token.METHOD)
		methodTok := p.expect(token.IDENT)
		sig := ast.MethodSignature{Name: methodTok.Literal}
		if p.curIs(token.NEEDS) {
			p.advance()
			sig.Params = p.parseParamList()
		}
		if p.curIs(token.GIVES_BACK) {
			p.advance()
			retTok := p.expect(token.IDENT)
			sig.ReturnType = retTok.Literal
		}
		def.Methods = append(def.Methods, sig)
	}
	p.expect(token.END_INTERFACE)
	return def
}

func (p *Parser) parseEventDef() ast.Statement {
	tok := p.advance() // define event
	nameTok := p.expect(token.IDENT)
	def := &ast.EventDefStatement{Token: tok, Name: nameTok.Literal}
	if p.curIs(token.NEEDS) {
		p.advance()
		def.Params = p.parseParamList()
	}
	return def
}

func (p *Parser) parseTriggerStatement() ast.Statement {
	tok := p.advance() // trigger
	nameTok := p.expect(token.IDENT)
	stmt := &ast.TriggerStatement{Token: tok, Name: nameTok.Literal}
	if p.curIs(token.WITH) {
		p.advance()
		stmt.Args = p.parseExpressionList(token.EOF)
	}
	return stmt
}

func (p *Parser) parseHandlerStatement() ast.Statement {
	tok := p.advance() // on
	eventTok := p.expect(token.IDENT)
	stmt := &ast.HandlerStatement{Token: tok, Event: eventTok.Literal}
	if p.curIs(token.AS) {
		p.advance()
		paramTok := p.expect(token.IDENT)
		stmt.ParamName = paramTok.Literal
	}
	p.expect(token.COLON)
	stmt.Body = p.parseBlockUntil(token.END_EVENT)
	p.expect(token.END_EVENT)
	return stmt
}

func (p *Parser) parsePatternDef() ast.Statement {
	tok := p.advance() // define pattern
	nameTok := p.expect(token.IDENT)
	p.expect(token.AS)
	srcTok := p.expect(token.STRING)
	return &ast.PatternDefStatement{Token: tok, Name: nameTok.Literal, Source: srcTok.Literal}
}

func (p *Parser) parseAddStatement() ast.Statement {
	tok := p.advance() // add
	val := p.parseExpression(precConcat + 1)
	p.expect(token.TO)
	into := p.parseExpression(lowest)
	return &ast.AddStatement{Token: tok, Value: val, Into: into}
}

func (p *Parser) parseRemoveStatement() ast.Statement {
	tok := p.advance() // remove
	val := p.parseExpression(precConcat + 1)
	p.expect(token.FROM)
	from := p.parseExpression(lowest)
	return &ast.RemoveStatement{Token: tok, Value: val, From: from}
}

// parsePushStatement lowers `push <value> into <list>` to a call of the
// native `push` function, rather than a dedicated statement node (see
// DESIGN.md's Open Question decisions).
func (p *Parser) parsePushStatement() ast.Statement {
	tok := p.advance() // push
	val := p.parseExpression(precConcat + 1)
	p.expect(token.INTO)
	list := p.parseExpression(lowest)
	call := &ast.CallExpression{
		Token:  tok,
		Callee: &ast.Identifier{Token: tok, Value: "push"},
		Args:   []ast.Expression{list, val},
	}
	return &ast.ExpressionStatement{Token: tok, Expr: call}
}

// parseCallStatement parses `call <action> [with <args>]` used as a
// statement for its side effects, discarding the return value.
func (p *Parser) parseCallStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseCallKeywordExpression()
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(lowest)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}
