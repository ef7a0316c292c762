package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestCore_TypeOf(t *testing.T) {
	in := newTestInterp()
	registerCore(in)

	v, err := call(t, in, "type_of", value.Number(1))
	require.NoError(t, err)
	require.Equal(t, value.Text("number"), v)

	v, err = call(t, in, "type_of", value.Text("hi"))
	require.NoError(t, err)
	require.Equal(t, value.Text("text"), v)

	v, err = call(t, in, "type_of", value.NewList())
	require.NoError(t, err)
	require.Equal(t, value.Text("list"), v)
}

func TestCore_IsNothing(t *testing.T) {
	in := newTestInterp()
	registerCore(in)

	v, err := call(t, in, "is_nothing", value.NothingValue)
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "is_nothing", value.Number(0))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(false), v)
}

func TestCore_ToText(t *testing.T) {
	in := newTestInterp()
	registerCore(in)

	v, err := call(t, in, "to_text", value.Number(42))
	require.NoError(t, err)
	require.Equal(t, value.Text("42"), v)
}

func TestCore_TypeOfWrongArgCount(t *testing.T) {
	in := newTestInterp()
	registerCore(in)

	_, err := call(t, in, "type_of")
	require.Error(t, err)
}
