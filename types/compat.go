// Package types implements WFL's structural type checker: a bidirectional
// -lite inference pass plus the `compatible(target, source)` relation that
// governs assignment, parameter passing, and return values (spec.md §4.4
// "Type Checking").
package types

import "github.com/wfl-lang/wfl/ast"

// Hierarchy answers the container/interface questions Compatible needs:
// does container c (transitively) extend base, and does it (transitively)
// implement iface. The checker's own Registry satisfies this so Compatible
// stays decoupled from how containers are discovered.
type Hierarchy interface {
	ContainerExtends(container, base string) bool
	ContainerImplements(container, iface string) bool
}

// Compatible reports whether a value of type source may be used where
// type target is expected (assignment, argument passing, return value).
// It is intentionally asymmetric: Compatible(target, source), not a
// symmetric equality.
func Compatible(target, source *ast.Type, h Hierarchy) bool {
	if target == nil || source == nil {
		return true // one side failed to infer; already reported elsewhere
	}
	if target.Kind == ast.TAny || target.Kind == ast.TError || source.Kind == ast.TError {
		return true
	}
	// Nothing coerces into any declared type: every WFL value is
	// implicitly nullable (spec.md §3 "Nothing").
	if source.Kind == ast.TNothing {
		return true
	}
	// Async(T) unwraps to T only through `await`; as a bare value it's
	// compatible with another Async of a compatible inner type, or with
	// Any (handled above).
	if source.Kind == ast.TAsync && target.Kind == ast.TAsync {
		return Compatible(target.Value, source.Value, h)
	}
	if source.Kind == ast.TAsync || target.Kind == ast.TAsync {
		return false
	}

	switch target.Kind {
	case ast.TInstance:
		if source.Kind == ast.TInstance {
			if source.Name == target.Name || h.ContainerExtends(source.Name, target.Name) {
				return true
			}
		}
		return false
	case ast.TInterface:
		if source.Kind == ast.TInstance {
			return h.ContainerImplements(source.Name, target.Name) || containerChainImplements(source.Name, target.Name, h)
		}
		return source.Kind == ast.TInterface && source.Name == target.Name
	case ast.TList:
		return source.Kind == ast.TList && Compatible(target.Elem, source.Elem, h)
	case ast.TMap:
		return source.Kind == ast.TMap && Compatible(target.Key, source.Key, h) && Compatible(target.Value, source.Value, h)
	case ast.TFunction:
		if source.Kind != ast.TFunction || len(source.Params) != len(target.Params) {
			return false
		}
		for i := range target.Params {
			// Parameters are contravariant: the source function must
			// accept everything the target's callers will pass.
			if !Compatible(source.Params[i], target.Params[i], h) {
				return false
			}
		}
		return Compatible(target.Return, source.Return, h)
	case ast.TCustom, ast.TContainer:
		return source.Kind == target.Kind && source.Name == target.Name
	default:
		return source.Kind == target.Kind
	}
}

// containerChainImplements walks a container's extends chain looking for
// an ancestor that implements iface directly, since interface conformance
// is inherited.
func containerChainImplements(container, iface string, h Hierarchy) bool {
	// Hierarchy.ContainerImplements is expected to already walk the
	// chain; this helper exists so Compatible reads declaratively even
	// if a simpler Hierarchy implementation only checks direct
	// implements clauses.
	return h.ContainerImplements(container, iface)
}
