package semantic

import "github.com/wfl-lang/wfl/ast"

// analyzeExpression walks expr, resolving every identifier reference
// against scope and reporting unresolved names. It never creates new
// bindings — only VarDeclStatement, parameters, and loop/handler
// variables do that (see analyzer.go).
func (a *Analyzer) analyzeExpression(expr ast.Expression, scope *Scope) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		if _, ok := scope.Resolve(e.Value); !ok {
			a.errorf(e, "undefined name %q", e.Value)
		}
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NothingLiteral, *ast.PatternLiteral:
		// literals never reference names
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			a.analyzeExpression(el, scope)
		}
	case *ast.MapLiteral:
		for _, entry := range e.Entries {
			a.analyzeExpression(entry.Key, scope)
			a.analyzeExpression(entry.Value, scope)
		}
	case *ast.BinaryExpression:
		a.analyzeExpression(e.Left, scope)
		a.analyzeExpression(e.Right, scope)
	case *ast.ConcatExpression:
		a.analyzeExpression(e.Left, scope)
		a.analyzeExpression(e.Right, scope)
	case *ast.UnaryExpression:
		a.analyzeExpression(e.Operand, scope)
	case *ast.CallExpression:
		a.analyzeCallee(e.Callee, scope)
		for _, arg := range e.Args {
			a.analyzeExpression(arg, scope)
		}
	case *ast.MemberExpression:
		a.analyzeExpression(e.Object, scope)
	case *ast.StaticMemberExpression:
		if _, ok := a.Containers[e.Container]; !ok {
			a.errorf(e, "static access on unknown container %q", e.Container)
		}
	case *ast.IndexExpression:
		a.analyzeExpression(e.Object, scope)
		a.analyzeExpression(e.Index, scope)
	case *ast.MethodCallExpression:
		a.analyzeExpression(e.Receiver, scope)
		for _, arg := range e.Args {
			a.analyzeExpression(arg, scope)
		}
	case *ast.NewExpression:
		if _, ok := a.Containers[e.Container]; !ok {
			a.errorf(e, "new: unknown container %q", e.Container)
		}
		for _, init := range e.Inits {
			a.analyzeExpression(init.Value, scope)
		}
	case *ast.PatternMatchExpression:
		a.analyzeExpression(e.Text, scope)
		a.analyzeExpression(e.Pattern, scope)
	case *ast.PatternFindExpression:
		a.analyzeExpression(e.Text, scope)
		a.analyzeExpression(e.Pattern, scope)
	case *ast.PatternReplaceExpression:
		a.analyzeExpression(e.Text, scope)
		a.analyzeExpression(e.Pattern, scope)
		a.analyzeExpression(e.Replacement, scope)
	case *ast.PatternSplitExpression:
		a.analyzeExpression(e.Text, scope)
		a.analyzeExpression(e.Pattern, scope)
	case *ast.StringSplitExpression:
		a.analyzeExpression(e.Text, scope)
		a.analyzeExpression(e.Delimiter, scope)
	case *ast.AwaitExpression:
		a.analyzeExpression(e.Value, scope)
	case *ast.HeaderAccessExpression:
		a.analyzeExpression(e.Request, scope)
	case *ast.CurrentTimeExpression:
		// no names to resolve
	default:
		a.errorf(expr, "semantic analysis: unhandled expression type %T", expr)
	}
}

// analyzeCallee resolves a call's callee specially: a bare identifier
// naming a known action is fine even though actions live in their own
// symbol kind, and the native `push` name (from the push-statement
// lowering) always resolves without a declaration.
func (a *Analyzer) analyzeCallee(callee ast.Expression, scope *Scope) {
	id, ok := callee.(*ast.Identifier)
	if !ok {
		a.analyzeExpression(callee, scope)
		return
	}
	if id.Value == "push" {
		return
	}
	if _, ok := a.Actions[id.Value]; ok {
		return
	}
	if _, ok := scope.Resolve(id.Value); ok {
		return
	}
	a.errorf(id, "call to undefined action %q", id.Value)
}
