package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestRandom_SeededSequenceIsReproducible(t *testing.T) {
	a := newTestInterp()
	registerRandom(a, 7)
	b := newTestInterp()
	registerRandom(b, 7)

	for i := 0; i < 5; i++ {
		va, err := call(t, a, "random_float")
		require.NoError(t, err)
		vb, err := call(t, b, "random_float")
		require.NoError(t, err)
		require.Equal(t, va, vb)
	}
}

func TestRandom_ReseedChangesOutput(t *testing.T) {
	in := newTestInterp()
	registerRandom(in, 1)

	before, err := call(t, in, "random_float")
	require.NoError(t, err)

	_, err = call(t, in, "random_seed", value.Number(2))
	require.NoError(t, err)

	after, err := call(t, in, "random_float")
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestRandom_BetweenAndIntRanges(t *testing.T) {
	in := newTestInterp()
	registerRandom(in, 3)

	for i := 0; i < 20; i++ {
		v, err := call(t, in, "random_between", value.Number(10), value.Number(20))
		require.NoError(t, err)
		n := float64(v.(value.Number))
		require.GreaterOrEqual(t, n, 10.0)
		require.LessOrEqual(t, n, 20.0)

		v, err = call(t, in, "random_int", value.Number(1), value.Number(3))
		require.NoError(t, err)
		n = float64(v.(value.Number))
		require.Contains(t, []float64{1, 2, 3}, n)
	}
}

func TestRandom_BetweenRejectsInvertedRange(t *testing.T) {
	in := newTestInterp()
	registerRandom(in, 3)

	_, err := call(t, in, "random_between", value.Number(10), value.Number(1))
	require.Error(t, err)
}

func TestRandom_FromListAndPick(t *testing.T) {
	in := newTestInterp()
	registerRandom(in, 5)

	list := value.NewList(value.Text("a"), value.Text("b"), value.Text("c"))
	v, err := call(t, in, "random_from_list", list)
	require.NoError(t, err)
	require.Contains(t, []value.Value{value.Text("a"), value.Text("b"), value.Text("c")}, v)
	require.Len(t, list.Elements, 3)

	picked, err := call(t, in, "random_pick", list)
	require.NoError(t, err)
	require.Len(t, list.Elements, 2)
	require.NotContains(t, list.Elements, picked)
}

func TestRandom_FromEmptyListErrors(t *testing.T) {
	in := newTestInterp()
	registerRandom(in, 5)

	_, err := call(t, in, "random_from", value.NewList())
	require.Error(t, err)
}

func TestRandom_GenerateUUIDLooksLikeUUID(t *testing.T) {
	in := newTestInterp()
	registerRandom(in, 5)

	v, err := call(t, in, "generate_uuid")
	require.NoError(t, err)
	require.Len(t, string(v.(value.Text)), 36)
}
