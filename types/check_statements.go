package types

import "github.com/wfl-lang/wfl/ast"

func (c *Checker) checkStatement(stmt ast.Statement, scope *TypeScope) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		valType := c.infer(s.Value, scope)
		declared := valType
		if s.TypeName != "" {
			declared = c.registry.ResolveTypeName(s.TypeName)
			if !Compatible(declared, valType, c.registry) {
				c.errorf(s.Value, "cannot store %s value in %q declared as %s", valType, s.Name, declared)
			}
		}
		scope.define(s.Name, declared)
	case *ast.AssignmentStatement:
		valType := c.infer(s.Value, scope)
		targetType := c.infer(s.Target, scope)
		if !Compatible(targetType, valType, c.registry) {
			c.errorf(s.Value, "cannot change %s to a %s value", targetType, valType)
		}
	case *ast.IfStatement:
		c.infer(s.Condition, scope)
		inner := newTypeScope(scope)
		c.checkBlock(s.Then, inner)
		c.checkBlock(s.Else, inner)
	case *ast.ForeachStatement:
		collType := c.infer(s.Collection, scope)
		inner := newTypeScope(scope)
		if collType.Kind == ast.TList {
			inner.define(s.ItemName, collType.Elem)
		} else {
			inner.define(s.ItemName, ast.Any())
		}
		c.checkBlock(s.Body, inner)
	case *ast.CountStatement:
		c.infer(s.Start, scope)
		c.infer(s.End, scope)
		if s.Step != nil {
			c.infer(s.Step, scope)
		}
		inner := newTypeScope(scope)
		inner.define(s.CounterName, ast.Number())
		c.checkBlock(s.Body, inner)
	case *ast.WhileStatement:
		c.infer(s.Condition, scope)
		c.checkBlock(s.Body, newTypeScope(scope))
	case *ast.RepeatWhileStatement:
		c.checkBlock(s.Body, newTypeScope(scope))
		c.infer(s.Condition, scope)
	case *ast.RepeatUntilStatement:
		c.checkBlock(s.Body, newTypeScope(scope))
		c.infer(s.Condition, scope)
	case *ast.ForeverStatement:
		c.checkBlock(s.Body, newTypeScope(scope))
	case *ast.ActionDefStatement:
		c.checkAction(s, scope)
	case *ast.ReturnStatement:
		var valType *ast.Type
		if s.Value != nil {
			valType = c.infer(s.Value, scope)
		} else {
			valType = ast.Nothing()
		}
		if c.currentReturn != nil && !Compatible(c.currentReturn, valType, c.registry) {
			c.errorf(s, "return value has type %s, action declares gives back %s", valType, c.currentReturn)
		}
	case *ast.DisplayStatement:
		c.infer(s.Value, scope)
	case *ast.ExpressionStatement:
		c.infer(s.Expr, scope)
	case *ast.WriteFileStatement:
		c.infer(s.Content, scope)
	case *ast.HTTPGetStatement:
		c.infer(s.URL, scope)
		scope.define(s.Into, ast.Text())
	case *ast.HTTPPostStatement:
		c.infer(s.URL, scope)
		c.infer(s.Body, scope)
		scope.define(s.Into, ast.Text())
	case *ast.OpenFileStatement:
		c.infer(s.Path, scope)
		scope.define(s.HandleName, ast.Custom("FileHandle"))
	case *ast.ReadFileStatement:
		c.infer(s.Handle, scope)
		scope.define(s.Into, ast.Text())
	case *ast.ListenStatement:
		c.infer(s.Port, scope)
		scope.define(s.HandleName, ast.Custom("Listener"))
	case *ast.WaitForRequestStatement:
		c.infer(s.Listener, scope)
		scope.define(s.Into, ast.Custom("Request"))
	case *ast.RespondStatement:
		c.infer(s.Request, scope)
		c.infer(s.Body, scope)
	case *ast.WaitForStatement:
		c.checkStatement(s.Inner, scope)
	case *ast.WaitForDurationStatement:
		c.infer(s.Amount, scope)
	case *ast.TryStatement:
		c.checkBlock(s.Body, newTypeScope(scope))
		for _, w := range s.WhenClauses {
			inner := newTypeScope(scope)
			inner.define(w.Name, ast.Text())
			c.checkBlock(w.Body, inner)
		}
		c.checkBlock(s.Otherwise, newTypeScope(scope))
	case *ast.ContainerDefStatement:
		c.checkContainer(s, scope)
	case *ast.TriggerStatement:
		for _, arg := range s.Args {
			c.infer(arg, scope)
		}
	case *ast.HandlerStatement:
		inner := newTypeScope(scope)
		if s.ParamName != "" {
			inner.define(s.ParamName, ast.Any())
		}
		c.checkBlock(s.Body, inner)
	case *ast.AddStatement:
		valType := c.infer(s.Value, scope)
		listType := c.infer(s.Into, scope)
		if listType.Kind == ast.TList && !Compatible(listType.Elem, valType, c.registry) {
			c.errorf(s.Value, "cannot add %s to a list of %s", valType, listType.Elem)
		}
	case *ast.RemoveStatement:
		c.infer(s.Value, scope)
		c.infer(s.From, scope)
	case *ast.ClearStatement:
		c.infer(s.List, scope)
	case *ast.CloseStatement:
		c.infer(s.Handle, scope)
	case *ast.CreateDirectoryStatement:
		c.infer(s.Path, scope)
	case *ast.DeleteStatement:
		c.infer(s.Path, scope)
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.ExitStatement,
		*ast.InterfaceDefStatement, *ast.EventDefStatement, *ast.PatternDefStatement:
		// no type obligations
	}
}

func (c *Checker) checkBlock(body []ast.Statement, scope *TypeScope) {
	for _, st := range body {
		c.checkStatement(st, scope)
	}
}

func (c *Checker) checkAction(def *ast.ActionDefStatement, scope *TypeScope) {
	sig := c.actions[def.Name]
	inner := newTypeScope(scope)
	for i, p := range def.Params {
		t := ast.Any()
		if sig != nil && i < len(sig.params) {
			t = sig.params[i]
		}
		inner.define(p.Name, t)
	}
	prevReturn := c.currentReturn
	if sig != nil {
		c.currentReturn = sig.ret
	} else {
		c.currentReturn = c.registry.ResolveTypeName(def.ReturnType)
	}
	c.checkBlock(def.Body, inner)
	c.currentReturn = prevReturn
}

func (c *Checker) checkContainer(def *ast.ContainerDefStatement, scope *TypeScope) {
	cdef := c.registry.Containers[def.Name]
	containerScope := newTypeScope(scope)
	for d := cdef; d != nil; {
		for name, t := range d.Properties {
			if _, exists := containerScope.vars[name]; !exists {
				containerScope.define(name, t)
			}
		}
		if d.Extends == "" {
			break
		}
		d = c.registry.Containers[d.Extends]
	}
	for _, m := range def.Methods {
		methodScope := newTypeScope(containerScope)
		fnType := cdef.Methods[m.Name]
		for i, p := range m.Params {
			t := ast.Any()
			if fnType != nil && i < len(fnType.Params) {
				t = fnType.Params[i]
			}
			methodScope.define(p.Name, t)
		}
		prevReturn := c.currentReturn
		if fnType != nil {
			c.currentReturn = fnType.Return
		}
		c.checkBlock(m.Body, methodScope)
		c.currentReturn = prevReturn
	}
}
