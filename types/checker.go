package types

import (
	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/diagnostics"
)

// TypeScope is a lexical chain of name -> *ast.Type bindings, shaped like
// semantic.Scope but carrying inferred/declared types instead of symbol
// metadata. Unlike the analyzer, the checker gives an if statement's Then
// and Else one shared child scope and promotes nothing out of it.
type TypeScope struct {
	parent *TypeScope
	vars   map[string]*ast.Type
}

func newTypeScope(parent *TypeScope) *TypeScope {
	return &TypeScope{parent: parent, vars: make(map[string]*ast.Type)}
}

func (s *TypeScope) define(name string, t *ast.Type) { s.vars[name] = t }

func (s *TypeScope) resolve(name string) (*ast.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// actionSig is the type-level view of an action: parameter types in
// order plus a return type.
type actionSig struct {
	params []*ast.Type
	ret    *ast.Type
}

// Checker performs structural type checking over an already-parsed
// Program. It does not require semantic.Analyzer to have run first: it
// builds its own signature registry in a first pass, exactly like the
// semantic analyzer does for names.
type Checker struct {
	fileID   diagnostics.FileID
	reporter *diagnostics.Reporter
	registry *Registry
	actions  map[string]*actionSig
	global   *TypeScope

	currentReturn *ast.Type
}

// NewChecker creates a Checker that reports diagnostics for fileID
// through reporter.
func NewChecker(fileID diagnostics.FileID, reporter *diagnostics.Reporter) *Checker {
	return &Checker{
		fileID:   fileID,
		reporter: reporter,
		registry: NewRegistry(),
		actions:  make(map[string]*actionSig),
		global:   newTypeScope(nil),
	}
}

func (c *Checker) errorf(n ast.Node, format string, args ...interface{}) {
	if c.reporter == nil {
		return
	}
	pos := n.Pos()
	c.reporter.Errorf(c.fileID, "T000", diagnostics.Position{Line: pos.Line, Column: pos.Column}, format, args...)
}

// Check runs the registration pass then checks every top-level statement.
func (c *Checker) Check(prog *ast.Program) {
	c.registerSignatures(prog.Statements)
	for _, stmt := range prog.Statements {
		c.checkStatement(stmt, c.global)
	}
}

func (c *Checker) registerSignatures(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ContainerDefStatement:
			def := &ContainerDef{
				Name:       s.Name,
				Extends:    s.Extends,
				Implements: s.Implements,
				Properties: make(map[string]*ast.Type),
				Methods:    make(map[string]*ast.Type),
			}
			c.registry.Containers[s.Name] = def
		case *ast.InterfaceDefStatement:
			def := &InterfaceDef{Name: s.Name, Methods: make(map[string]*ast.Type)}
			c.registry.Interfaces[s.Name] = def
		}
	}
	// Second sub-pass: now every container/interface name is known, so
	// property/method/parameter type names (which may reference sibling
	// containers) resolve correctly.
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ActionDefStatement:
			sig := &actionSig{ret: c.registry.ResolveTypeName(s.ReturnType)}
			for _, p := range s.Params {
				sig.params = append(sig.params, c.registry.ResolveTypeName(p.TypeName))
			}
			c.actions[s.Name] = sig
		case *ast.ContainerDefStatement:
			def := c.registry.Containers[s.Name]
			for _, prop := range s.Properties {
				def.Properties[prop.Name] = c.registry.ResolveTypeName(prop.TypeName)
			}
			for _, m := range s.Methods {
				var params []*ast.Type
				for _, p := range m.Params {
					params = append(params, c.registry.ResolveTypeName(p.TypeName))
				}
				def.Methods[m.Name] = ast.FunctionType(params, c.registry.ResolveTypeName(m.ReturnType))
			}
		case *ast.InterfaceDefStatement:
			def := c.registry.Interfaces[s.Name]
			for _, m := range s.Methods {
				var params []*ast.Type
				for _, p := range m.Params {
					params = append(params, c.registry.ResolveTypeName(p.TypeName))
				}
				def.Methods[m.Name] = ast.FunctionType(params, c.registry.ResolveTypeName(m.ReturnType))
			}
		}
	}

	// Interface conformance: every container claiming `implements X` must
	// provide every method X requires, with a compatible signature.
	for _, def := range c.registry.Containers {
		for _, ifaceName := range def.Implements {
			iface, ok := c.registry.Interfaces[ifaceName]
			if !ok {
				continue // already reported by the semantic pass
			}
			for methodName, want := range iface.Methods {
				got, ok := def.Methods[methodName]
				if !ok {
					c.errorf(c.containerNode(def.Name), "container %q implements %q but is missing method %q", def.Name, ifaceName, methodName)
					continue
				}
				if !Compatible(want, got, c.registry) {
					c.errorf(c.containerNode(def.Name), "container %q method %q has signature %s, interface %q requires %s", def.Name, methodName, got, ifaceName, want)
				}
			}
		}
	}
}

// containerNode is a best-effort anchor node for container-level
// diagnostics raised after the registration pass, where only the name is
// in hand. Falls back to a synthetic zero-position identifier.
func (c *Checker) containerNode(name string) ast.Node {
	return &ast.Identifier{Value: name}
}
