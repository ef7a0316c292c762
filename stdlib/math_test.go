package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestMath_UnaryFunctions(t *testing.T) {
	in := newTestInterp()
	registerMath(in)

	v, err := call(t, in, "abs", value.Number(-3))
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)

	v, err = call(t, in, "floor", value.Number(1.9))
	require.NoError(t, err)
	require.Equal(t, value.Number(1), v)

	v, err = call(t, in, "ceil", value.Number(1.1))
	require.NoError(t, err)
	require.Equal(t, value.Number(2), v)

	v, err = call(t, in, "round", value.Number(1.5))
	require.NoError(t, err)
	require.Equal(t, value.Number(2), v)

	v, err = call(t, in, "sqrt", value.Number(9))
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)
}

func TestMath_Clamp(t *testing.T) {
	in := newTestInterp()
	registerMath(in)

	v, err := call(t, in, "clamp", value.Number(15), value.Number(0), value.Number(10))
	require.NoError(t, err)
	require.Equal(t, value.Number(10), v)

	v, err = call(t, in, "clamp", value.Number(-5), value.Number(0), value.Number(10))
	require.NoError(t, err)
	require.Equal(t, value.Number(0), v)

	v, err = call(t, in, "clamp", value.Number(5), value.Number(0), value.Number(10))
	require.NoError(t, err)
	require.Equal(t, value.Number(5), v)
}

func TestMath_MinMaxPow(t *testing.T) {
	in := newTestInterp()
	registerMath(in)

	v, err := call(t, in, "min", value.Number(3), value.Number(7))
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)

	v, err = call(t, in, "max", value.Number(3), value.Number(7))
	require.NoError(t, err)
	require.Equal(t, value.Number(7), v)

	v, err = call(t, in, "pow", value.Number(2), value.Number(10))
	require.NoError(t, err)
	require.Equal(t, value.Number(1024), v)
}

func TestMath_AbsRejectsNonNumber(t *testing.T) {
	in := newTestInterp()
	registerMath(in)

	_, err := call(t, in, "abs", value.Text("nope"))
	require.Error(t, err)
}
