package interp

import (
	"math"
	"strings"
	"time"

	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/pattern"
	"github.com/wfl-lang/wfl/token"
	"github.com/wfl-lang/wfl/value"
)

// evaluate computes expr's value in env. Errors are WFL RuntimeErrors,
// never Go panics, per the package doc's "ordinary result values"
// strategy.
func (in *Interpreter) evaluate(expr ast.Expression, env *value.Environment) (value.Value, *RuntimeError) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return in.evalIdentifier(e, env)
	case *ast.NumberLiteral:
		return value.Number(e.Value), nil
	case *ast.StringLiteral:
		return value.Text(e.Value), nil
	case *ast.BooleanLiteral:
		return value.Boolean(e.Value), nil
	case *ast.NothingLiteral:
		return value.NothingValue, nil
	case *ast.PatternLiteral:
		return in.compilePattern(e.Source)
	case *ast.ListLiteral:
		elems := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := in.evaluate(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems...), nil
	case *ast.MapLiteral:
		m := value.NewMap()
		for _, entry := range e.Entries {
			k, err := in.evaluate(entry.Key, env)
			if err != nil {
				return nil, err
			}
			v, err := in.evaluate(entry.Value, env)
			if err != nil {
				return nil, err
			}
			m.Set(k.String(), v)
		}
		return m, nil
	case *ast.BinaryExpression:
		return in.evalBinary(e, env)
	case *ast.ConcatExpression:
		left, err := in.evaluate(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := in.evaluate(e.Right, env)
		if err != nil {
			return nil, err
		}
		return value.Text(left.String() + right.String()), nil
	case *ast.UnaryExpression:
		return in.evalUnary(e, env)
	case *ast.CallExpression:
		return in.evalCall(e, env)
	case *ast.MemberExpression:
		return in.evalMember(e, env)
	case *ast.StaticMemberExpression:
		return in.evalStaticMember(e)
	case *ast.IndexExpression:
		return in.evalIndex(e, env)
	case *ast.MethodCallExpression:
		return in.evalMethodCall(e, env)
	case *ast.NewExpression:
		return in.evalNew(e, env)
	case *ast.PatternMatchExpression:
		return in.evalPatternMatch(e, env)
	case *ast.PatternFindExpression:
		return in.evalPatternFind(e, env)
	case *ast.PatternReplaceExpression:
		return in.evalPatternReplace(e, env)
	case *ast.PatternSplitExpression:
		return in.evalPatternSplit(e, env)
	case *ast.StringSplitExpression:
		return in.evalStringSplit(e, env)
	case *ast.AwaitExpression:
		return in.evalAwait(e, env)
	case *ast.HeaderAccessExpression:
		return in.evalHeaderAccess(e, env)
	case *ast.CurrentTimeExpression:
		return in.evalCurrentTime(e)
	default:
		return nil, runtimeErrorf("internal", "unevaluable expression %T", expr)
	}
}

func (in *Interpreter) evalIdentifier(e *ast.Identifier, env *value.Environment) (value.Value, *RuntimeError) {
	if v, ok := env.Get(e.Value); ok {
		return v, nil
	}
	if f := in.currentFrame(); f != nil && f.Receiver != nil {
		if v, ok := f.Receiver.Properties[e.Value]; ok {
			return v, nil
		}
	}
	if def, ok := in.Containers[e.Value]; ok {
		return def, nil
	}
	if iface, ok := in.Interfaces[e.Value]; ok {
		return iface, nil
	}
	if evt, ok := in.Events[e.Value]; ok {
		return evt, nil
	}
	return nil, runtimeErrorf("undefined", "%q is not defined", e.Value)
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpression, env *value.Environment) (value.Value, *RuntimeError) {
	operand, err := in.evaluate(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case token.NOT:
		return value.Boolean(!truthy(operand)), nil
	case token.MINUS:
		n, ok := operand.(value.Number)
		if !ok {
			return nil, runtimeErrorf("type", "cannot negate a %v", operand.Kind())
		}
		return -n, nil
	default:
		return nil, runtimeErrorf("internal", "unknown unary operator %v", e.Operator)
	}
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpression, env *value.Environment) (value.Value, *RuntimeError) {
	// short-circuit and/or before evaluating the right operand
	if e.Operator == token.AND || e.Operator == token.OR {
		left, err := in.evaluate(e.Left, env)
		if err != nil {
			return nil, err
		}
		lb := truthy(left)
		if e.Operator == token.AND && !lb {
			return value.Boolean(false), nil
		}
		if e.Operator == token.OR && lb {
			return value.Boolean(true), nil
		}
		right, err := in.evaluate(e.Right, env)
		if err != nil {
			return nil, err
		}
		return value.Boolean(truthy(right)), nil
	}

	left, err := in.evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case token.IS:
		return value.Boolean(value.Equal(left, right, nil)), nil
	case token.IS_NOT:
		return value.Boolean(!value.Equal(left, right, nil)), nil
	case token.CONTAINS:
		return evalContains(left, right)
	}

	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	switch e.Operator {
	case token.PLUS:
		if lt, ok := left.(value.Text); ok {
			return value.Text(string(lt) + right.String()), nil
		}
		if !lok || !rok {
			return nil, runtimeErrorf("type", "plus requires two numbers (or text)")
		}
		return ln + rn, nil
	case token.MINUS:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "minus requires two numbers")
		}
		return ln - rn, nil
	case token.TIMES:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "times requires two numbers")
		}
		return ln * rn, nil
	case token.DIVIDED_BY:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "divided by requires two numbers")
		}
		if rn == 0 {
			return nil, runtimeErrorf("division", "division by zero")
		}
		return ln / rn, nil
	case token.MODULO:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "modulo requires two numbers")
		}
		if rn == 0 {
			return nil, runtimeErrorf("division", "modulo by zero")
		}
		return value.Number(int64(ln) % int64(rn)), nil
	case token.POWER:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "raised to the power of requires two numbers")
		}
		return value.Number(math.Pow(float64(ln), float64(rn))), nil
	case token.GREATER:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "comparison requires two numbers")
		}
		return value.Boolean(ln > rn), nil
	case token.GREATER_EQ:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "comparison requires two numbers")
		}
		return value.Boolean(ln >= rn), nil
	case token.LESS:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "comparison requires two numbers")
		}
		return value.Boolean(ln < rn), nil
	case token.LESS_EQ:
		if !lok || !rok {
			return nil, runtimeErrorf("type", "comparison requires two numbers")
		}
		return value.Boolean(ln <= rn), nil
	default:
		return nil, runtimeErrorf("internal", "unknown binary operator %v", e.Operator)
	}
}

func evalContains(container, item value.Value) (value.Value, *RuntimeError) {
	switch c := container.(type) {
	case *value.List:
		for _, el := range c.Elements {
			if value.Equal(el, item, nil) {
				return value.Boolean(true), nil
			}
		}
		return value.Boolean(false), nil
	case value.Text:
		it, ok := item.(value.Text)
		if !ok {
			return nil, runtimeErrorf("type", "contains on text requires a text operand")
		}
		return value.Boolean(strings.Contains(string(c), string(it))), nil
	case *value.Map:
		_, ok := c.Get(item.String())
		return value.Boolean(ok), nil
	default:
		return nil, runtimeErrorf("type", "contains is not defined for %v", container.Kind())
	}
}

func truthy(v value.Value) bool {
	switch vv := v.(type) {
	case value.Boolean:
		return bool(vv)
	case value.Nothing:
		return false
	default:
		return true
	}
}

func (in *Interpreter) evalCall(e *ast.CallExpression, env *value.Environment) (value.Value, *RuntimeError) {
	callee, err := in.evaluate(e.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return in.invoke(callee, args)
}

// invoke calls any callable Value: a NativeFunction, a user-defined
// Function (closing over its defining Environment via WeakRef), or a
// bound ContainerMethod.
func (in *Interpreter) invoke(callee value.Value, args []value.Value) (value.Value, *RuntimeError) {
	switch fn := callee.(type) {
	case *value.NativeFunction:
		v, err := fn.Fn(args)
		if err != nil {
			if re, ok := err.(*RuntimeError); ok {
				return nil, re
			}
			return nil, runtimeErrorf("native", "%v", err)
		}
		return v, nil
	case *value.Function:
		return in.callFunction(fn, args, nil)
	case *value.ContainerMethod:
		return in.callFunction(fn.Fn, args, fn.Receiver)
	default:
		return nil, runtimeErrorf("type", "%v is not callable", callee.Kind())
	}
}

func (in *Interpreter) callFunction(fn *value.Function, args []value.Value, receiver *value.ContainerInstance) (value.Value, *RuntimeError) {
	parent := in.Global
	if env, ok := fn.Env.Resolve(); ok {
		parent = env
	}
	callEnv := value.NewEnvironment(parent)
	for i, p := range fn.Params {
		var v value.Value = value.NothingValue
		if i < len(args) {
			v = args[i]
		}
		callEnv.Define(p.Name, v)
	}
	if receiver != nil {
		in.pushFrame(frame{Receiver: receiver})
		defer in.popFrame()
	}
	sig := in.execBlock(fn.Body, callEnv)
	if sig.err != nil {
		return nil, sig.err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return value.NothingValue, nil
}

func (in *Interpreter) evalMember(e *ast.MemberExpression, env *value.Environment) (value.Value, *RuntimeError) {
	obj, err := in.evaluate(e.Object, env)
	if err != nil {
		return nil, err
	}
	return in.memberOf(obj, e.Property)
}

func (in *Interpreter) memberOf(obj value.Value, name string) (value.Value, *RuntimeError) {
	switch o := obj.(type) {
	case *value.ContainerInstance:
		if v, ok := o.Properties[name]; ok {
			return v, nil
		}
		if fn, _, ok := o.Definition.ResolveMethod(name); ok {
			return &value.ContainerMethod{Receiver: o, Fn: fn}, nil
		}
		return nil, runtimeErrorf("member", "%s has no member %q", o.Definition.Name, name)
	case *value.Response:
		switch name {
		case "status":
			return value.Number(o.Status), nil
		case "body":
			return value.Text(o.Body), nil
		}
		return nil, runtimeErrorf("member", "response has no member %q", name)
	case *value.Request:
		switch name {
		case "method":
			return value.Text(o.Method), nil
		case "path":
			return value.Text(o.Path), nil
		case "body":
			return value.Text(o.Body), nil
		}
		return nil, runtimeErrorf("member", "request has no member %q", name)
	default:
		return nil, runtimeErrorf("type", "%v has no members", obj.Kind())
	}
}

func (in *Interpreter) evalStaticMember(e *ast.StaticMemberExpression) (value.Value, *RuntimeError) {
	def, ok := in.Containers[e.Container]
	if !ok {
		return nil, runtimeErrorf("undefined", "container %q is not defined", e.Container)
	}
	if fn, _, ok := def.ResolveMethod(e.Member); ok {
		return fn, nil
	}
	if v, ok := def.Defaults[e.Member]; ok {
		return v, nil
	}
	return nil, runtimeErrorf("member", "%s has no static member %q", e.Container, e.Member)
}

func (in *Interpreter) evalIndex(e *ast.IndexExpression, env *value.Environment) (value.Value, *RuntimeError) {
	obj, err := in.evaluate(e.Object, env)
	if err != nil {
		return nil, err
	}
	idx, err := in.evaluate(e.Index, env)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *value.List:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, runtimeErrorf("type", "list index must be a number")
		}
		i := int(n)
		if i < 0 || i >= len(o.Elements) {
			return nil, runtimeErrorf("bounds", "index %d out of range (length %d)", i, len(o.Elements))
		}
		return o.Elements[i], nil
	case *value.Map:
		v, ok := o.Get(idx.String())
		if !ok {
			return value.NothingValue, nil
		}
		return v, nil
	default:
		return nil, runtimeErrorf("type", "%v is not indexable", obj.Kind())
	}
}

func (in *Interpreter) evalMethodCall(e *ast.MethodCallExpression, env *value.Environment) (value.Value, *RuntimeError) {
	recv, err := in.evaluate(e.Receiver, env)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	inst, ok := recv.(*value.ContainerInstance)
	if !ok {
		return nil, runtimeErrorf("type", "%v has no methods", recv.Kind())
	}
	fn, _, ok := inst.Definition.ResolveMethod(e.Method)
	if !ok {
		return nil, runtimeErrorf("member", "%s has no method %q", inst.Definition.Name, e.Method)
	}
	return in.callFunction(fn, args, inst)
}

func (in *Interpreter) evalNew(e *ast.NewExpression, env *value.Environment) (value.Value, *RuntimeError) {
	def, ok := in.Containers[e.Container]
	if !ok {
		return nil, runtimeErrorf("undefined", "container %q is not defined", e.Container)
	}
	inst := value.NewContainerInstance(def)
	for _, init := range e.Inits {
		v, err := in.evaluate(init.Value, env)
		if err != nil {
			return nil, err
		}
		inst.Properties[init.Name] = v
	}
	return inst, nil
}

func (in *Interpreter) compilePattern(source string) (value.Value, *RuntimeError) {
	if prog, ok := in.Patterns[source]; ok {
		return &value.Pattern{Source: source, Compiled: prog}, nil
	}
	prog, err := pattern.CompileCached(source)
	if err != nil {
		return nil, runtimeErrorf("pattern", "%v", err)
	}
	in.Patterns[source] = prog
	return &value.Pattern{Source: source, Compiled: prog}, nil
}

func asPatternProgram(v value.Value) (*pattern.Program, *RuntimeError) {
	p, ok := v.(*value.Pattern)
	if !ok {
		return nil, runtimeErrorf("type", "expected a pattern, got %v", v.Kind())
	}
	prog, ok := p.Compiled.(*pattern.Program)
	if !ok {
		return nil, runtimeErrorf("internal", "pattern %q was never compiled", p.Source)
	}
	return prog, nil
}

func (in *Interpreter) evalPatternMatch(e *ast.PatternMatchExpression, env *value.Environment) (value.Value, *RuntimeError) {
	text, err := in.evaluate(e.Text, env)
	if err != nil {
		return nil, err
	}
	patV, err := in.evaluate(e.Pattern, env)
	if err != nil {
		return nil, err
	}
	prog, perr := asPatternProgram(patV)
	if perr != nil {
		return nil, perr
	}
	ok, ierr := pattern.IsMatch(prog, text.String())
	if ierr != nil {
		return nil, runtimeErrorf("pattern", "%v", ierr)
	}
	return value.Boolean(ok), nil
}

func matchResultToMap(m pattern.MatchResult) *value.Map {
	out := value.NewMap()
	out.Set("text", value.Text(m.Text))
	out.Set("start", value.Number(m.Start))
	out.Set("end", value.Number(m.End))
	captures := value.NewMap()
	for k, v := range m.Captures {
		captures.Set(k, value.Text(v))
	}
	out.Set("captures", captures)
	return out
}

func (in *Interpreter) evalPatternFind(e *ast.PatternFindExpression, env *value.Environment) (value.Value, *RuntimeError) {
	text, err := in.evaluate(e.Text, env)
	if err != nil {
		return nil, err
	}
	patV, err := in.evaluate(e.Pattern, env)
	if err != nil {
		return nil, err
	}
	prog, perr := asPatternProgram(patV)
	if perr != nil {
		return nil, perr
	}
	if e.All {
		matches, ierr := pattern.FindAll(prog, text.String())
		if ierr != nil {
			return nil, runtimeErrorf("pattern", "%v", ierr)
		}
		elems := make([]value.Value, len(matches))
		for i, m := range matches {
			elems[i] = matchResultToMap(m)
		}
		return value.NewList(elems...), nil
	}
	m, ierr := pattern.Find(prog, text.String())
	if ierr != nil {
		return nil, runtimeErrorf("pattern", "%v", ierr)
	}
	if m == nil {
		return value.NothingValue, nil
	}
	return matchResultToMap(*m), nil
}

func (in *Interpreter) evalPatternReplace(e *ast.PatternReplaceExpression, env *value.Environment) (value.Value, *RuntimeError) {
	text, err := in.evaluate(e.Text, env)
	if err != nil {
		return nil, err
	}
	patV, err := in.evaluate(e.Pattern, env)
	if err != nil {
		return nil, err
	}
	repl, err := in.evaluate(e.Replacement, env)
	if err != nil {
		return nil, err
	}
	prog, perr := asPatternProgram(patV)
	if perr != nil {
		return nil, perr
	}
	out, ierr := pattern.Replace(prog, text.String(), repl.String())
	if ierr != nil {
		return nil, runtimeErrorf("pattern", "%v", ierr)
	}
	return value.Text(out), nil
}

func (in *Interpreter) evalPatternSplit(e *ast.PatternSplitExpression, env *value.Environment) (value.Value, *RuntimeError) {
	text, err := in.evaluate(e.Text, env)
	if err != nil {
		return nil, err
	}
	patV, err := in.evaluate(e.Pattern, env)
	if err != nil {
		return nil, err
	}
	prog, perr := asPatternProgram(patV)
	if perr != nil {
		return nil, perr
	}
	parts, ierr := pattern.Split(prog, text.String())
	if ierr != nil {
		return nil, runtimeErrorf("pattern", "%v", ierr)
	}
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.Text(p)
	}
	return value.NewList(elems...), nil
}

func (in *Interpreter) evalStringSplit(e *ast.StringSplitExpression, env *value.Environment) (value.Value, *RuntimeError) {
	text, err := in.evaluate(e.Text, env)
	if err != nil {
		return nil, err
	}
	delim, err := in.evaluate(e.Delimiter, env)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(text.String(), delim.String())
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.Text(p)
	}
	return value.NewList(elems...), nil
}

func (in *Interpreter) evalAwait(e *ast.AwaitExpression, env *value.Environment) (value.Value, *RuntimeError) {
	v, err := in.evaluate(e.Value, env)
	if err != nil {
		return nil, err
	}
	fut, ok := v.(*value.Future)
	if !ok {
		return v, nil // awaiting a non-future just yields its value
	}
	switch fut.State {
	case value.FutureResolved:
		return fut.Result, nil
	case value.FutureRejected:
		return nil, runtimeErrorf("await", "%v", fut.Err)
	default:
		return nil, runtimeErrorf("await", "awaited a future that never resolved")
	}
}

func (in *Interpreter) evalHeaderAccess(e *ast.HeaderAccessExpression, env *value.Environment) (value.Value, *RuntimeError) {
	v, err := in.evaluate(e.Request, env)
	if err != nil {
		return nil, err
	}
	var headers map[string]string
	switch o := v.(type) {
	case *value.Request:
		headers = o.Headers
	case *value.Response:
		headers = o.Headers
	default:
		return nil, runtimeErrorf("type", "%v has no headers", v.Kind())
	}
	if val, ok := headers[e.Name]; ok {
		return value.Text(val), nil
	}
	return value.NothingValue, nil
}

func (in *Interpreter) evalCurrentTime(e *ast.CurrentTimeExpression) (value.Value, *RuntimeError) {
	now := time.Now()
	if e.Formatted {
		return value.Text(now.Format(time.RFC3339)), nil
	}
	return value.Number(now.UnixMilli()), nil
}

// assignTo writes v into target (an identifier, member, or index
// expression), the helper `change <target> to <value>` uses. Loop
// variables are not bound through it: each iteration Defines them in its
// own environment.
func (in *Interpreter) assignTo(target ast.Expression, v value.Value, env *value.Environment) *RuntimeError {
	switch t := target.(type) {
	case *ast.Identifier:
		if env.Set(t.Value, v) {
			return nil
		}
		if f := in.currentFrame(); f != nil && f.Receiver != nil {
			if _, ok := f.Receiver.Properties[t.Value]; ok {
				f.Receiver.Properties[t.Value] = v
				return nil
			}
		}
		return runtimeErrorf("undefined", "%q is not defined", t.Value)
	case *ast.MemberExpression:
		obj, err := in.evaluate(t.Object, env)
		if err != nil {
			return err
		}
		inst, ok := obj.(*value.ContainerInstance)
		if !ok {
			return runtimeErrorf("type", "%v has no assignable members", obj.Kind())
		}
		inst.Properties[t.Property] = v
		return nil
	case *ast.IndexExpression:
		obj, err := in.evaluate(t.Object, env)
		if err != nil {
			return err
		}
		idx, err := in.evaluate(t.Index, env)
		if err != nil {
			return err
		}
		switch o := obj.(type) {
		case *value.List:
			n, ok := idx.(value.Number)
			if !ok {
				return runtimeErrorf("type", "list index must be a number")
			}
			i := int(n)
			if i < 0 || i >= len(o.Elements) {
				return runtimeErrorf("bounds", "index %d out of range (length %d)", i, len(o.Elements))
			}
			o.Elements[i] = v
			return nil
		case *value.Map:
			o.Set(idx.String(), v)
			return nil
		default:
			return runtimeErrorf("type", "%v is not indexable", obj.Kind())
		}
	default:
		return runtimeErrorf("internal", "invalid assignment target %T", target)
	}
}

