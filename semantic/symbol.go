// Package semantic implements WFL's two-pass semantic analysis: pass one
// registers top-level action/container/interface/event signatures so
// forward references resolve regardless of declaration order, and pass
// two walks every body resolving identifiers against lexical scopes
// (spec.md §4.3 "Semantic Analysis").
package semantic

import "github.com/wfl-lang/wfl/ast"

// SymbolKind classifies what a Symbol names.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymConstant
	SymAction
	SymContainer
	SymInterface
	SymEvent
	SymPattern
	SymParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymConstant:
		return "constant"
	case SymAction:
		return "action"
	case SymContainer:
		return "container"
	case SymInterface:
		return "interface"
	case SymEvent:
		return "event"
	case SymPattern:
		return "pattern"
	case SymParam:
		return "parameter"
	default:
		return "symbol"
	}
}

// Symbol is one name bound in some Scope.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type *ast.Type // declared or inferred type; nil until the type checker fills it in
	Pos  ast.Node  // the declaring node, for "already declared at" diagnostics
}

// ActionSignature is what pass one records for every top-level action, so
// pass two can type-check calls made before the action's own definition.
type ActionSignature struct {
	Name       string
	Params     []ast.Param
	ReturnType string
	Node       *ast.ActionDefStatement
}

// ContainerInfo is what pass one records for every container: its
// property/method shape and inheritance edges, registered before any
// method body is analyzed so methods can reference sibling members and
// inherited members regardless of declaration order.
type ContainerInfo struct {
	Name       string
	Extends    string
	Implements []string
	Properties map[string]ast.PropertyDecl
	Methods    map[string]ast.MethodDecl
	Node       *ast.ContainerDefStatement
}

// InterfaceInfo is what pass one records for every interface.
type InterfaceInfo struct {
	Name    string
	Methods map[string]ast.MethodSignature
	Node    *ast.InterfaceDefStatement
}

// EventInfo is what pass one records for every event declaration.
type EventInfo struct {
	Name   string
	Params []ast.Param
	Node   *ast.EventDefStatement
}
