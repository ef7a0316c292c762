package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvironmentGetSetThroughParent(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Number(1))
	child := NewEnvironment(global)

	v, ok := child.Get("x")
	require.True(t, ok)
	require.Equal(t, Number(1), v)

	require.True(t, child.Set("x", Number(2)))
	v, _ = global.Get("x")
	require.Equal(t, Number(2), v)

	require.False(t, child.Set("undeclared", Number(3)))
}

func TestWeakRefResolvesWhileStronglyReferenced(t *testing.T) {
	env := NewEnvironment(nil)
	ref := NewWeakRef(env)
	resolved, ok := ref.Resolve()
	require.True(t, ok)
	require.Same(t, env, resolved)
}

func TestListEquality(t *testing.T) {
	a := NewList(Number(1), Text("x"))
	b := NewList(Number(1), Text("x"))
	require.True(t, Equal(a, b, nil))

	c := NewList(Number(1), Text("y"))
	require.False(t, Equal(a, c, nil))
}

func TestDeepCloneDoesNotAliasLists(t *testing.T) {
	original := NewList(Number(1))
	clone := DeepClone(original).(*List)
	clone.Elements[0] = Number(99)
	require.Equal(t, Number(1), original.Elements[0])
}

func TestContainerInstanceInheritsDefaults(t *testing.T) {
	parent := &ContainerDefinition{Name: "Shape", Defaults: map[string]Value{"name": Text("shape")}}
	child := &ContainerDefinition{Name: "Circle", Parent: parent, Defaults: map[string]Value{"radius": Number(1)}}
	inst := NewContainerInstance(child)
	require.Equal(t, Text("shape"), inst.Properties["name"])
	require.Equal(t, Number(1), inst.Properties["radius"])
}

func TestContainerEventAccumulatesHandlersInOrder(t *testing.T) {
	evt := NewContainerEvent("ready", nil)
	first := &EventHandler{ParamName: "msg"}
	second := &EventHandler{ParamName: "msg"}
	evt.Register(first)
	evt.Register(second)
	require.Equal(t, []*EventHandler{first, second}, evt.Handlers)
}

func TestContainerMethodStringIncludesReceiverAndName(t *testing.T) {
	def := &ContainerDefinition{Name: "Counter"}
	inst := NewContainerInstance(def)
	method := &ContainerMethod{Receiver: inst, Fn: &Function{Name: "increment"}}
	require.Equal(t, "<method Counter.increment>", method.String())
}

func TestResolveMethodWalksExtendsChain(t *testing.T) {
	greet := &Function{Name: "greet"}
	parent := &ContainerDefinition{Name: "Animal", Methods: map[string]*Function{"greet": greet}}
	child := &ContainerDefinition{Name: "Dog", Parent: parent, Methods: map[string]*Function{}}
	fn, owner, ok := child.ResolveMethod("greet")
	require.True(t, ok)
	require.Same(t, greet, fn)
	require.Equal(t, "Animal", owner.Name)
}
