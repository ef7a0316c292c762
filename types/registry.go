package types

import "github.com/wfl-lang/wfl/ast"

// ContainerDef is the type-level view of a container declaration: just
// enough to resolve member types and walk the inheritance graph.
type ContainerDef struct {
	Name       string
	Extends    string
	Implements []string
	Properties map[string]*ast.Type
	Methods    map[string]*ast.Type // each a TFunction
}

// InterfaceDef is the type-level view of an interface declaration.
type InterfaceDef struct {
	Name    string
	Methods map[string]*ast.Type
}

// Registry holds every named type the checker knows about and implements
// Hierarchy so Compatible can answer extends/implements questions.
type Registry struct {
	Containers map[string]*ContainerDef
	Interfaces map[string]*InterfaceDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		Containers: make(map[string]*ContainerDef),
		Interfaces: make(map[string]*InterfaceDef),
	}
}

// ContainerExtends reports whether container (transitively) extends base.
func (r *Registry) ContainerExtends(container, base string) bool {
	seen := make(map[string]bool)
	def, ok := r.Containers[container]
	if !ok {
		return false
	}
	for name := def.Extends; name != ""; {
		if seen[name] {
			return false // cyclic extends; already reported elsewhere
		}
		seen[name] = true
		if name == base {
			return true
		}
		next, ok := r.Containers[name]
		if !ok {
			return false
		}
		name = next.Extends
	}
	return false
}

// ContainerImplements reports whether container, or any ancestor in its
// extends chain, implements iface.
func (r *Registry) ContainerImplements(container, iface string) bool {
	seen := make(map[string]bool)
	for name := container; name != ""; {
		if seen[name] {
			return false
		}
		seen[name] = true
		def, ok := r.Containers[name]
		if !ok {
			return false
		}
		for _, impl := range def.Implements {
			if impl == iface {
				return true
			}
		}
		name = def.Extends
	}
	return false
}

// ResolveTypeName turns a source-level type name (as written after `as`
// or `gives back`) into a *ast.Type, recognizing the built-in primitive
// names and falling back to a container/interface/custom lookup.
func (r *Registry) ResolveTypeName(name string) *ast.Type {
	switch name {
	case "", "Any":
		return ast.Any()
	case "Number":
		return ast.Number()
	case "Text":
		return ast.Text()
	case "Boolean":
		return ast.Boolean()
	case "Nothing":
		return ast.Nothing()
	case "Pattern":
		return ast.Pattern()
	}
	if _, ok := r.Containers[name]; ok {
		return ast.Instance(name)
	}
	if _, ok := r.Interfaces[name]; ok {
		return ast.InterfaceType(name)
	}
	return ast.Custom(name)
}
