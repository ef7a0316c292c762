package interp

import (
	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/value"
)

// registerContainer builds a value.ContainerDefinition from s and stores
// it by name. Extends is linked both ways so container declaration order
// never has to follow the extends chain: s links to an already-registered
// parent, and any already-registered child of s gets linked back to it.
func (in *Interpreter) registerContainer(s *ast.ContainerDefStatement, env *value.Environment) {
	def := &value.ContainerDefinition{
		Name:       s.Name,
		Extends:    s.Extends,
		Implements: s.Implements,
		Defaults:   make(map[string]value.Value, len(s.Properties)),
		Methods:    make(map[string]*value.Function, len(s.Methods)),
	}
	for _, p := range s.Properties {
		if p.Default == nil {
			def.Defaults[p.Name] = value.NothingValue
			continue
		}
		v, err := in.evaluate(p.Default, env)
		if err != nil {
			def.Defaults[p.Name] = value.NothingValue
			continue
		}
		def.Defaults[p.Name] = v
	}
	for _, m := range s.Methods {
		def.Methods[m.Name] = &value.Function{
			Name:   m.Name,
			Params: m.Params,
			Body:   m.Body,
			Env:    value.NewWeakRef(env),
		}
	}
	in.Containers[s.Name] = def
	if def.Extends != "" {
		if parent, ok := in.Containers[def.Extends]; ok {
			def.Parent = parent
		}
	}
	// a container defined before its parent gets linked retroactively
	for _, other := range in.Containers {
		if other.Extends == s.Name && other.Parent == nil {
			other.Parent = def
		}
	}
}
