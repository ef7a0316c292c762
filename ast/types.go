package ast

import "fmt"

// TypeKind enumerates the Type sum type's variants (spec.md §3 "Type").
type TypeKind int

const (
	TText TypeKind = iota
	TNumber
	TBoolean
	TNothing
	TPattern
	TCustom    // a user-defined name not yet resolved to a container/interface
	TList      // List(Elem)
	TMap       // Map(Key, Value)
	TFunction  // Function(Params, Return)
	TAsync     // Async(Inner)
	TContainer // a container (class) type by name
	TInstance  // an instance of a named container
	TInterface // an interface type by name
	TAny
	TUnknown // not yet inferred; transient
	TError   // already reported; suppress cascading diagnostics
)

// Type is the checker's structural type representation.
type Type struct {
	Kind   TypeKind
	Name   string  // Custom/Container/Instance/Interface name
	Elem   *Type   // List element type
	Key    *Type   // Map key type
	Value  *Type   // Map value type / Async inner type
	Params []*Type // Function parameter types
	Return *Type   // Function return type
}

func Text() *Type    { return &Type{Kind: TText} }
func Number() *Type  { return &Type{Kind: TNumber} }
func Boolean() *Type { return &Type{Kind: TBoolean} }
func Nothing() *Type { return &Type{Kind: TNothing} }
func Pattern() *Type { return &Type{Kind: TPattern} }
func Any() *Type     { return &Type{Kind: TAny} }
func Unknown() *Type { return &Type{Kind: TUnknown} }
func ErrorType() *Type { return &Type{Kind: TError} }

func Custom(name string) *Type    { return &Type{Kind: TCustom, Name: name} }
func ListOf(elem *Type) *Type     { return &Type{Kind: TList, Elem: elem} }
func MapOf(k, v *Type) *Type      { return &Type{Kind: TMap, Key: k, Value: v} }
func AsyncOf(inner *Type) *Type   { return &Type{Kind: TAsync, Value: inner} }
func Container(name string) *Type { return &Type{Kind: TContainer, Name: name} }
func Instance(name string) *Type  { return &Type{Kind: TInstance, Name: name} }
func InterfaceType(name string) *Type { return &Type{Kind: TInterface, Name: name} }

func FunctionType(params []*Type, ret *Type) *Type {
	return &Type{Kind: TFunction, Params: params, Return: ret}
}

// String renders a Type for diagnostics.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TText:
		return "Text"
	case TNumber:
		return "Number"
	case TBoolean:
		return "Boolean"
	case TNothing:
		return "Nothing"
	case TPattern:
		return "Pattern"
	case TCustom:
		return t.Name
	case TList:
		return fmt.Sprintf("List of %s", t.Elem)
	case TMap:
		return fmt.Sprintf("Map of %s to %s", t.Key, t.Value)
	case TFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("Function(%v) -> %s", parts, t.Return)
	case TAsync:
		return fmt.Sprintf("Async of %s", t.Value)
	case TContainer:
		return fmt.Sprintf("container %s", t.Name)
	case TInstance:
		return t.Name
	case TInterface:
		return fmt.Sprintf("interface %s", t.Name)
	case TAny:
		return "Any"
	case TUnknown:
		return "Unknown"
	case TError:
		return "<error>"
	default:
		return "?"
	}
}

// Equal reports structural identity (not compatibility) between two types.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TCustom, TContainer, TInstance, TInterface:
		return t.Name == other.Name
	case TList:
		return t.Elem.Equal(other.Elem)
	case TMap:
		return t.Key.Equal(other.Key) && t.Value.Equal(other.Value)
	case TAsync:
		return t.Value.Equal(other.Value)
	case TFunction:
		if len(t.Params) != len(other.Params) || !t.Return.Equal(other.Return) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
