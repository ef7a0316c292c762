package types

import "github.com/wfl-lang/wfl/ast"

// infer computes expr's type, reporting incompatibilities it discovers
// along the way (operand mismatches, unknown members, wrong argument
// counts). It never returns nil; ast.ErrorType() stands in once an error
// has already been reported for expr, so callers don't cascade.
func (c *Checker) infer(expr ast.Expression, scope *TypeScope) *ast.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		if t, ok := scope.resolve(e.Value); ok {
			return t
		}
		return ast.Unknown() // already reported by the semantic pass
	case *ast.NumberLiteral:
		return ast.Number()
	case *ast.StringLiteral:
		return ast.Text()
	case *ast.BooleanLiteral:
		return ast.Boolean()
	case *ast.NothingLiteral:
		return ast.Nothing()
	case *ast.PatternLiteral:
		return ast.Pattern()
	case *ast.ListLiteral:
		if len(e.Elements) == 0 {
			return ast.ListOf(ast.Any())
		}
		elem := c.infer(e.Elements[0], scope)
		for _, el := range e.Elements[1:] {
			t := c.infer(el, scope)
			if !Compatible(elem, t, c.registry) && !Compatible(t, elem, c.registry) {
				c.errorf(el, "list element has type %s, expected %s", t, elem)
			}
		}
		return ast.ListOf(elem)
	case *ast.MapLiteral:
		if len(e.Entries) == 0 {
			return ast.MapOf(ast.Any(), ast.Any())
		}
		key := c.infer(e.Entries[0].Key, scope)
		val := c.infer(e.Entries[0].Value, scope)
		return ast.MapOf(key, val)
	case *ast.BinaryExpression:
		return c.inferBinary(e, scope)
	case *ast.ConcatExpression:
		c.infer(e.Left, scope)
		c.infer(e.Right, scope)
		return ast.Text()
	case *ast.UnaryExpression:
		t := c.infer(e.Operand, scope)
		return t
	case *ast.CallExpression:
		return c.inferCall(e, scope)
	case *ast.MemberExpression:
		return c.inferMember(e, scope)
	case *ast.StaticMemberExpression:
		def, ok := c.registry.Containers[e.Container]
		if !ok {
			return ast.Unknown()
		}
		if t, ok := def.Properties[e.Member]; ok {
			return t
		}
		if t, ok := def.Methods[e.Member]; ok {
			return t
		}
		c.errorf(e, "container %q has no static member %q", e.Container, e.Member)
		return ast.ErrorType()
	case *ast.IndexExpression:
		obj := c.infer(e.Object, scope)
		c.infer(e.Index, scope)
		if obj.Kind == ast.TList {
			return obj.Elem
		}
		if obj.Kind == ast.TMap {
			return obj.Value
		}
		if obj.Kind != ast.TAny && obj.Kind != ast.TUnknown {
			c.errorf(e, "cannot index into %s", obj)
		}
		return ast.Any()
	case *ast.MethodCallExpression:
		return c.inferMethodCall(e, scope)
	case *ast.NewExpression:
		def, ok := c.registry.Containers[e.Container]
		if !ok {
			return ast.Unknown()
		}
		for _, init := range e.Inits {
			valType := c.infer(init.Value, scope)
			if propType, ok := def.Properties[init.Name]; ok {
				if !Compatible(propType, valType, c.registry) {
					c.errorf(init.Value, "property %q expects %s, got %s", init.Name, propType, valType)
				}
			} else {
				c.errorf(e, "container %q has no property %q", e.Container, init.Name)
			}
		}
		return ast.Instance(e.Container)
	case *ast.PatternMatchExpression:
		c.infer(e.Text, scope)
		c.infer(e.Pattern, scope)
		return ast.Boolean()
	case *ast.PatternFindExpression:
		c.infer(e.Text, scope)
		c.infer(e.Pattern, scope)
		if e.All {
			return ast.ListOf(ast.Any())
		}
		return ast.Any()
	case *ast.PatternReplaceExpression, *ast.PatternSplitExpression:
		return c.inferPatternOp(e, scope)
	case *ast.StringSplitExpression:
		c.infer(e.Text, scope)
		c.infer(e.Delimiter, scope)
		return ast.ListOf(ast.Text())
	case *ast.AwaitExpression:
		inner := c.infer(e.Value, scope)
		if inner.Kind == ast.TAsync {
			return inner.Value
		}
		return inner
	case *ast.HeaderAccessExpression:
		c.infer(e.Request, scope)
		return ast.Text()
	case *ast.CurrentTimeExpression:
		if e.Formatted {
			return ast.Text()
		}
		return ast.Number()
	default:
		return ast.Unknown()
	}
}

func (c *Checker) inferPatternOp(expr ast.Expression, scope *TypeScope) *ast.Type {
	switch e := expr.(type) {
	case *ast.PatternReplaceExpression:
		c.infer(e.Text, scope)
		c.infer(e.Pattern, scope)
		c.infer(e.Replacement, scope)
		return ast.Text()
	case *ast.PatternSplitExpression:
		c.infer(e.Text, scope)
		c.infer(e.Pattern, scope)
		return ast.ListOf(ast.Text())
	}
	return ast.Unknown()
}

func (c *Checker) inferBinary(e *ast.BinaryExpression, scope *TypeScope) *ast.Type {
	left := c.infer(e.Left, scope)
	right := c.infer(e.Right, scope)
	switch opClass(e.Operator) {
	case opArithmetic:
		if !Compatible(ast.Number(), left, c.registry) {
			c.errorf(e.Left, "expected Number, got %s", left)
		}
		if !Compatible(ast.Number(), right, c.registry) {
			c.errorf(e.Right, "expected Number, got %s", right)
		}
		return ast.Number()
	case opComparison:
		if !Compatible(ast.Number(), left, c.registry) {
			c.errorf(e.Left, "expected Number, got %s", left)
		}
		if !Compatible(ast.Number(), right, c.registry) {
			c.errorf(e.Right, "expected Number, got %s", right)
		}
		return ast.Boolean()
	case opEquality, opLogical, opContains:
		return ast.Boolean()
	default:
		return ast.Unknown()
	}
}

type opKind int

const (
	opArithmetic opKind = iota
	opComparison
	opEquality
	opLogical
	opContains
	opUnknown
)

func opClass(t interface{ String() string }) opKind {
	switch t.String() {
	case "PLUS", "MINUS", "TIMES", "DIVIDED_BY", "MODULO", "POWER":
		return opArithmetic
	case "GREATER", "GREATER_EQ", "LESS", "LESS_EQ":
		return opComparison
	case "IS", "IS_NOT":
		return opEquality
	case "AND", "OR":
		return opLogical
	case "CONTAINS":
		return opContains
	default:
		return opUnknown
	}
}

func (c *Checker) inferCall(e *ast.CallExpression, scope *TypeScope) *ast.Type {
	id, ok := e.Callee.(*ast.Identifier)
	if !ok {
		c.infer(e.Callee, scope)
		for _, arg := range e.Args {
			c.infer(arg, scope)
		}
		return ast.Unknown()
	}
	if id.Value == "push" {
		for _, arg := range e.Args {
			c.infer(arg, scope)
		}
		return ast.Nothing()
	}
	sig, ok := c.actions[id.Value]
	if !ok {
		for _, arg := range e.Args {
			c.infer(arg, scope)
		}
		return ast.Unknown() // native stdlib function or unresolved; not tracked here
	}
	if len(e.Args) != len(sig.params) {
		c.errorf(e, "action %q expects %d argument(s), got %d", id.Value, len(sig.params), len(e.Args))
	}
	for i, arg := range e.Args {
		argType := c.infer(arg, scope)
		if i < len(sig.params) && !Compatible(sig.params[i], argType, c.registry) {
			c.errorf(arg, "argument %d of %q expects %s, got %s", i+1, id.Value, sig.params[i], argType)
		}
	}
	return sig.ret
}

func (c *Checker) inferMember(e *ast.MemberExpression, scope *TypeScope) *ast.Type {
	objType := c.infer(e.Object, scope)
	if objType.Kind != ast.TInstance {
		return ast.Any()
	}
	def, ok := c.registry.Containers[objType.Name]
	if !ok {
		return ast.Any()
	}
	if t, ok := c.lookupMember(def, e.Property); ok {
		return t
	}
	c.errorf(e, "container %q has no property %q", objType.Name, e.Property)
	return ast.ErrorType()
}

func (c *Checker) inferMethodCall(e *ast.MethodCallExpression, scope *TypeScope) *ast.Type {
	recvType := c.infer(e.Receiver, scope)
	for _, arg := range e.Args {
		c.infer(arg, scope)
	}
	if recvType.Kind != ast.TInstance {
		return ast.Any()
	}
	def, ok := c.registry.Containers[recvType.Name]
	if !ok {
		return ast.Any()
	}
	fn, ok := c.lookupMember(def, e.Method)
	if !ok {
		c.errorf(e, "container %q has no method %q", recvType.Name, e.Method)
		return ast.ErrorType()
	}
	if fn.Kind != ast.TFunction {
		c.errorf(e, "%q is a property, not a method, on container %q", e.Method, recvType.Name)
		return ast.ErrorType()
	}
	return fn.Return
}

// lookupMember walks the extends chain looking for a property or method
// named name, closest ancestor first so overrides win.
func (c *Checker) lookupMember(def *ContainerDef, name string) (*ast.Type, bool) {
	for d := def; d != nil; {
		if t, ok := d.Properties[name]; ok {
			return t, true
		}
		if t, ok := d.Methods[name]; ok {
			return t, true
		}
		if d.Extends == "" {
			break
		}
		d = c.registry.Containers[d.Extends]
	}
	return nil, false
}
