package semantic

import (
	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/diagnostics"
)

// Analyzer walks a Program in two passes. Pass one (registerSignatures)
// only looks at top-level statements, so an action, container, interface,
// or event may be called/instantiated/triggered before its own
// declaration appears in the source. Pass two (walkProgram) descends into
// every body, building nested Scopes and reporting unresolved names,
// redeclarations, and misplaced control-flow statements.
type Analyzer struct {
	fileID   diagnostics.FileID
	reporter *diagnostics.Reporter

	global     *Scope
	Actions    map[string]*ActionSignature
	Containers map[string]*ContainerInfo
	Interfaces map[string]*InterfaceInfo
	Events     map[string]*EventInfo
	Patterns   map[string]*ast.PatternDefStatement

	loopDepth   int
	actionDepth int
}

// New creates an Analyzer that reports diagnostics for fileID through
// reporter.
func New(fileID diagnostics.FileID, reporter *diagnostics.Reporter) *Analyzer {
	return &Analyzer{
		fileID:     fileID,
		reporter:   reporter,
		global:     NewScope(nil),
		Actions:    make(map[string]*ActionSignature),
		Containers: make(map[string]*ContainerInfo),
		Interfaces: make(map[string]*InterfaceInfo),
		Events:     make(map[string]*EventInfo),
		Patterns:   make(map[string]*ast.PatternDefStatement),
	}
}

// Analyze runs both passes over prog and returns the root Scope, for
// callers (e.g. the type checker) that need the resolved symbol tree.
func (a *Analyzer) Analyze(prog *ast.Program) *Scope {
	a.registerSignatures(prog.Statements)
	for _, stmt := range prog.Statements {
		a.analyzeStatement(stmt, a.global)
	}
	return a.global
}

func (a *Analyzer) errorf(n ast.Node, format string, args ...interface{}) {
	if a.reporter == nil {
		return
	}
	pos := n.Pos()
	a.reporter.Errorf(a.fileID, "S000", diagnostics.Position{Line: pos.Line, Column: pos.Column}, format, args...)
}

// registerSignatures is pass one: it scans only the top level, so later
// code doesn't need declaration-before-use ordering for actions,
// containers, interfaces, events, or named patterns.
func (a *Analyzer) registerSignatures(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ActionDefStatement:
			sig := &ActionSignature{Name: s.Name, Params: s.Params, ReturnType: s.ReturnType, Node: s}
			a.Actions[s.Name] = sig
			if !a.global.Define(&Symbol{Name: s.Name, Kind: SymAction, Pos: s}) {
				a.errorf(s, "action %q is already declared", s.Name)
			}
		case *ast.ContainerDefStatement:
			info := &ContainerInfo{
				Name:       s.Name,
				Extends:    s.Extends,
				Implements: s.Implements,
				Properties: make(map[string]ast.PropertyDecl),
				Methods:    make(map[string]ast.MethodDecl),
				Node:       s,
			}
			for _, prop := range s.Properties {
				info.Properties[prop.Name] = prop
			}
			for _, m := range s.Methods {
				info.Methods[m.Name] = m
			}
			a.Containers[s.Name] = info
			if !a.global.Define(&Symbol{Name: s.Name, Kind: SymContainer, Pos: s}) {
				a.errorf(s, "container %q is already declared", s.Name)
			}
		case *ast.InterfaceDefStatement:
			info := &InterfaceInfo{Name: s.Name, Methods: make(map[string]ast.MethodSignature), Node: s}
			for _, m := range s.Methods {
				info.Methods[m.Name] = m
			}
			a.Interfaces[s.Name] = info
			if !a.global.Define(&Symbol{Name: s.Name, Kind: SymInterface, Pos: s}) {
				a.errorf(s, "interface %q is already declared", s.Name)
			}
		case *ast.EventDefStatement:
			a.Events[s.Name] = &EventInfo{Name: s.Name, Params: s.Params, Node: s}
			if !a.global.Define(&Symbol{Name: s.Name, Kind: SymEvent, Pos: s}) {
				a.errorf(s, "event %q is already declared", s.Name)
			}
		case *ast.PatternDefStatement:
			a.Patterns[s.Name] = s
			if !a.global.Define(&Symbol{Name: s.Name, Kind: SymPattern, Pos: s}) {
				a.errorf(s, "pattern %q is already declared", s.Name)
			}
		}
	}

	// Validate extends/implements edges now that every container and
	// interface name is known, regardless of declaration order.
	for _, info := range a.Containers {
		if info.Extends != "" {
			if _, ok := a.Containers[info.Extends]; !ok {
				a.errorf(info.Node, "container %q extends unknown container %q", info.Name, info.Extends)
			}
		}
		for _, iface := range info.Implements {
			if _, ok := a.Interfaces[iface]; !ok {
				a.errorf(info.Node, "container %q implements unknown interface %q", info.Name, iface)
			}
		}
	}
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		a.analyzeExpression(s.Value, scope)
		kind := SymVariable
		if s.IsConstant {
			kind = SymConstant
		}
		if !scope.Define(&Symbol{Name: s.Name, Kind: kind, Pos: s}) {
			a.errorf(s, "%q is already declared in this scope", s.Name)
		}
	case *ast.AssignmentStatement:
		a.analyzeExpression(s.Target, scope)
		a.analyzeExpression(s.Value, scope)
		if id, ok := s.Target.(*ast.Identifier); ok {
			if sym, found := scope.Resolve(id.Value); found && sym.Kind == SymConstant {
				a.errorf(s, "cannot change constant %q", id.Value)
			}
		}
	case *ast.IfStatement:
		a.analyzeExpression(s.Condition, scope)
		// Promoted-definitions rule: Then and Else each get their own
		// scope (so the same name can be declared independently in
		// both arms without a spurious redeclaration error), and a name
		// is promoted into the enclosing scope only when it is declared
		// in Then alone (no Else) or in both Then and Else, matching
		// spec.md §3's "variables introduced inside both branches of an
		// if/else survive into the enclosing scope".
		thenScope := NewScope(scope)
		for _, st := range s.Then {
			a.analyzeStatement(st, thenScope)
		}
		if len(s.Else) == 0 {
			for _, sym := range thenScope.LocalSymbols() {
				scope.Define(sym)
			}
			break
		}
		elseScope := NewScope(scope)
		for _, st := range s.Else {
			a.analyzeStatement(st, elseScope)
		}
		for name, sym := range thenScope.LocalSymbols() {
			if _, ok := elseScope.ResolveLocal(name); ok {
				scope.Define(sym)
			}
		}
	case *ast.ForeachStatement:
		a.analyzeExpression(s.Collection, scope)
		inner := NewScope(scope)
		inner.Define(&Symbol{Name: s.ItemName, Kind: SymVariable, Pos: s})
		a.loopDepth++
		for _, st := range s.Body {
			a.analyzeStatement(st, inner)
		}
		a.loopDepth--
	case *ast.CountStatement:
		a.analyzeExpression(s.Start, scope)
		a.analyzeExpression(s.End, scope)
		if s.Step != nil {
			a.analyzeExpression(s.Step, scope)
		}
		inner := NewScope(scope)
		inner.Define(&Symbol{Name: s.CounterName, Kind: SymVariable, Pos: s})
		a.loopDepth++
		for _, st := range s.Body {
			a.analyzeStatement(st, inner)
		}
		a.loopDepth--
	case *ast.WhileStatement:
		a.analyzeExpression(s.Condition, scope)
		a.analyzeLoopBody(s.Body, scope)
	case *ast.RepeatWhileStatement:
		a.analyzeLoopBody(s.Body, scope)
		a.analyzeExpression(s.Condition, scope)
	case *ast.RepeatUntilStatement:
		a.analyzeLoopBody(s.Body, scope)
		a.analyzeExpression(s.Condition, scope)
	case *ast.ForeverStatement:
		a.analyzeLoopBody(s.Body, scope)
	case *ast.ActionDefStatement:
		a.analyzeActionBody(s.Params, s.Body, scope)
	case *ast.ReturnStatement:
		if s.Value != nil {
			a.analyzeExpression(s.Value, scope)
		}
		if a.actionDepth == 0 {
			a.errorf(s, "return outside of an action or method")
		}
	case *ast.BreakStatement, *ast.ContinueStatement:
		if a.loopDepth == 0 {
			a.errorf(stmt, "%s outside of a loop", stmt.TokenLiteral())
		}
	case *ast.ExitStatement:
		// always valid
	case *ast.DisplayStatement:
		a.analyzeExpression(s.Value, scope)
	case *ast.ExpressionStatement:
		a.analyzeExpression(s.Expr, scope)
	case *ast.OpenFileStatement:
		a.analyzeExpression(s.Path, scope)
		scope.Define(&Symbol{Name: s.HandleName, Kind: SymVariable, Pos: s})
	case *ast.ReadFileStatement:
		a.analyzeExpression(s.Handle, scope)
		scope.Define(&Symbol{Name: s.Into, Kind: SymVariable, Pos: s})
	case *ast.WriteFileStatement:
		a.analyzeExpression(s.Handle, scope)
		a.analyzeExpression(s.Content, scope)
	case *ast.CloseStatement:
		a.analyzeExpression(s.Handle, scope)
	case *ast.CreateDirectoryStatement:
		a.analyzeExpression(s.Path, scope)
	case *ast.DeleteStatement:
		a.analyzeExpression(s.Path, scope)
	case *ast.HTTPGetStatement:
		a.analyzeExpression(s.URL, scope)
		scope.Define(&Symbol{Name: s.Into, Kind: SymVariable, Pos: s})
	case *ast.HTTPPostStatement:
		a.analyzeExpression(s.URL, scope)
		a.analyzeExpression(s.Body, scope)
		scope.Define(&Symbol{Name: s.Into, Kind: SymVariable, Pos: s})
	case *ast.ListenStatement:
		a.analyzeExpression(s.Port, scope)
		scope.Define(&Symbol{Name: s.HandleName, Kind: SymVariable, Pos: s})
	case *ast.WaitForRequestStatement:
		a.analyzeExpression(s.Listener, scope)
		scope.Define(&Symbol{Name: s.Into, Kind: SymVariable, Pos: s})
	case *ast.RespondStatement:
		a.analyzeExpression(s.Request, scope)
		a.analyzeExpression(s.Status, scope)
		a.analyzeExpression(s.Body, scope)
	case *ast.WaitForStatement:
		a.analyzeStatement(s.Inner, scope)
	case *ast.WaitForDurationStatement:
		a.analyzeExpression(s.Amount, scope)
	case *ast.TryStatement:
		a.analyzeBlockInNewScope(s.Body, scope)
		for _, w := range s.WhenClauses {
			inner := NewScope(scope)
			inner.Define(&Symbol{Name: w.Name, Kind: SymVariable, Pos: s})
			for _, st := range w.Body {
				a.analyzeStatement(st, inner)
			}
		}
		if s.Otherwise != nil {
			a.analyzeBlockInNewScope(s.Otherwise, scope)
		}
	case *ast.ContainerDefStatement:
		a.analyzeContainerBody(s, scope)
	case *ast.InterfaceDefStatement:
		// no bodies to walk; method signatures were captured in pass one
	case *ast.EventDefStatement:
		// signature only, captured in pass one
	case *ast.TriggerStatement:
		if _, ok := a.Events[s.Name]; !ok {
			a.errorf(s, "trigger of undeclared event %q", s.Name)
		}
		for _, arg := range s.Args {
			a.analyzeExpression(arg, scope)
		}
	case *ast.HandlerStatement:
		if _, ok := a.Events[s.Event]; !ok {
			a.errorf(s, "handler for undeclared event %q", s.Event)
		}
		inner := NewScope(scope)
		if s.ParamName != "" {
			inner.Define(&Symbol{Name: s.ParamName, Kind: SymParam, Pos: s})
		}
		for _, st := range s.Body {
			a.analyzeStatement(st, inner)
		}
	case *ast.PatternDefStatement:
		// captured in pass one
	case *ast.AddStatement:
		a.analyzeExpression(s.Value, scope)
		a.analyzeExpression(s.Into, scope)
	case *ast.RemoveStatement:
		a.analyzeExpression(s.Value, scope)
		a.analyzeExpression(s.From, scope)
	case *ast.ClearStatement:
		a.analyzeExpression(s.List, scope)
	default:
		a.errorf(stmt, "semantic analysis: unhandled statement type %T", stmt)
	}
}

func (a *Analyzer) analyzeLoopBody(body []ast.Statement, scope *Scope) {
	inner := NewScope(scope)
	a.loopDepth++
	for _, st := range body {
		a.analyzeStatement(st, inner)
	}
	a.loopDepth--
}

func (a *Analyzer) analyzeBlockInNewScope(body []ast.Statement, scope *Scope) {
	inner := NewScope(scope)
	for _, st := range body {
		a.analyzeStatement(st, inner)
	}
}

func (a *Analyzer) analyzeActionBody(params []ast.Param, body []ast.Statement, scope *Scope) {
	inner := NewScope(scope)
	for _, p := range params {
		inner.Define(&Symbol{Name: p.Name, Kind: SymParam, Pos: nil})
	}
	a.actionDepth++
	for _, st := range body {
		a.analyzeStatement(st, inner)
	}
	a.actionDepth--
}

// analyzeContainerBody analyzes every method body in its own scope,
// seeded with the method's parameters and every property name of the
// container (and, transitively, its ancestors), so methods can reference
// sibling properties without an explicit receiver keyword.
func (a *Analyzer) analyzeContainerBody(def *ast.ContainerDefStatement, scope *Scope) {
	containerScope := NewScope(scope)
	for name := range a.collectProperties(def.Name) {
		containerScope.Define(&Symbol{Name: name, Kind: SymVariable, Pos: def})
	}
	for _, m := range def.Methods {
		a.analyzeActionBody(m.Params, m.Body, containerScope)
	}
}

// collectProperties walks the extends chain, closest ancestor last so a
// child's own property of the same name is what gets defined.
func (a *Analyzer) collectProperties(containerName string) map[string]bool {
	names := make(map[string]bool)
	var chain []*ContainerInfo
	for name := containerName; name != ""; {
		info, ok := a.Containers[name]
		if !ok {
			break
		}
		chain = append([]*ContainerInfo{info}, chain...)
		name = info.Extends
	}
	for _, info := range chain {
		for propName := range info.Properties {
			names[propName] = true
		}
	}
	return names
}
