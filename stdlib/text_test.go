package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestText_CaseAndTrim(t *testing.T) {
	in := newTestInterp()
	registerText(in)

	v, err := call(t, in, "to_uppercase", value.Text("shout"))
	require.NoError(t, err)
	require.Equal(t, value.Text("SHOUT"), v)

	v, err = call(t, in, "to_lowercase", value.Text("WHISPER"))
	require.NoError(t, err)
	require.Equal(t, value.Text("whisper"), v)

	v, err = call(t, in, "trim", value.Text("  padded  "))
	require.NoError(t, err)
	require.Equal(t, value.Text("padded"), v)

	v, err = call(t, in, "capitalize", value.Text("hello"))
	require.NoError(t, err)
	require.Equal(t, value.Text("Hello"), v)

	v, err = call(t, in, "reverse", value.Text("abc"))
	require.NoError(t, err)
	require.Equal(t, value.Text("cba"), v)
}

func TestText_SearchAndReplace(t *testing.T) {
	in := newTestInterp()
	registerText(in)

	v, err := call(t, in, "starts_with", value.Text("hello world"), value.Text("hello"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "ends_with", value.Text("hello world"), value.Text("world"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "replace", value.Text("a-b-c"), value.Text("-"), value.Text("+"))
	require.NoError(t, err)
	require.Equal(t, value.Text("a+b+c"), v)

	v, err = call(t, in, "substring", value.Text("hello world"), value.Number(0), value.Number(5))
	require.NoError(t, err)
	require.Equal(t, value.Text("hello"), v)

	v, err = call(t, in, "last_index_of", value.Text("abcabc"), value.Text("a"))
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)
}

func TestText_SplitAndPad(t *testing.T) {
	in := newTestInterp()
	registerText(in)

	v, err := call(t, in, "string_split", value.Text("a,b,c"), value.Text(","))
	require.NoError(t, err)
	list, ok := v.(*value.List)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)
	require.Equal(t, value.Text("b"), list.Elements[1])

	v, err = call(t, in, "padleft", value.Text("7"), value.Number(3), value.Text("0"))
	require.NoError(t, err)
	require.Equal(t, value.Text("007"), v)

	v, err = call(t, in, "padright", value.Text("7"), value.Number(3), value.Text("0"))
	require.NoError(t, err)
	require.Equal(t, value.Text("700"), v)
}

func TestText_NoUnderscoreAliases(t *testing.T) {
	in := newTestInterp()
	registerText(in)

	v, err := call(t, in, "touppercase", value.Text("hi"))
	require.NoError(t, err)
	require.Equal(t, value.Text("HI"), v)

	v, err = call(t, in, "split", value.Text("a.b"), value.Text("."))
	require.NoError(t, err)
	require.Len(t, v.(*value.List).Elements, 2)

	v, err = call(t, in, "startswith", value.Text("abc"), value.Text("a"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "endswith", value.Text("abc"), value.Text("c"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)

	v, err = call(t, in, "lastindexof", value.Text("abcabc"), value.Text("b"))
	require.NoError(t, err)
	require.Equal(t, value.Number(4), v)
}
