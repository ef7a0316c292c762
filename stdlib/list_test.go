package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestList_Length(t *testing.T) {
	in := newTestInterp()
	registerList(in)

	v, err := call(t, in, "length", value.NewList(value.Number(1), value.Number(2)))
	require.NoError(t, err)
	require.Equal(t, value.Number(2), v)

	v, err = call(t, in, "length", value.Text("hello"))
	require.NoError(t, err)
	require.Equal(t, value.Number(5), v)
}

func TestList_PushAndPop(t *testing.T) {
	in := newTestInterp()
	registerList(in)

	l := value.NewList(value.Number(1))
	v, err := call(t, in, "push", l, value.Number(2))
	require.NoError(t, err)
	require.Equal(t, value.NothingValue, v)
	require.Equal(t, []value.Value{value.Number(1), value.Number(2)}, l.Elements)

	v, err = call(t, in, "pop", l)
	require.NoError(t, err)
	require.Equal(t, value.Number(2), v)
	require.Len(t, l.Elements, 1)
}

func TestList_PopEmptyErrors(t *testing.T) {
	in := newTestInterp()
	registerList(in)

	_, err := call(t, in, "pop", value.NewList())
	require.Error(t, err)
}

func TestList_Contains(t *testing.T) {
	in := newTestInterp()
	registerList(in)

	v, err := call(t, in, "contains", value.NewList(value.Text("a"), value.Text("b")), value.Text("b"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "contains", value.Text("hello world"), value.Text("world"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "contains", value.NewList(value.Text("a")), value.Text("z"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(false), v)
}

func TestList_IndexOfAndAlias(t *testing.T) {
	in := newTestInterp()
	registerList(in)

	l := value.NewList(value.Text("a"), value.Text("b"), value.Text("c"))
	v, err := call(t, in, "indexof", l, value.Text("b"))
	require.NoError(t, err)
	require.Equal(t, value.Number(1), v)

	v, err = call(t, in, "index_of", l, value.Text("z"))
	require.NoError(t, err)
	require.Equal(t, value.Number(-1), v)
}
