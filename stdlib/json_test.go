package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestJSON_ParseScalarsAndContainers(t *testing.T) {
	in := newTestInterp()
	registerJSON(in)

	v, err := call(t, in, "parse_json", value.Text(`{"name":"ada","age":36,"tags":["x","y"]}`))
	require.NoError(t, err)
	m, ok := v.(*value.Map)
	require.True(t, ok)
	name, ok := m.Get("name")
	require.True(t, ok)
	require.Equal(t, value.Text("ada"), name)
	age, ok := m.Get("age")
	require.True(t, ok)
	require.Equal(t, value.Number(36), age)
	tags, ok := m.Get("tags")
	require.True(t, ok)
	require.Len(t, tags.(*value.List).Elements, 2)
}

func TestJSON_ParseInvalidErrors(t *testing.T) {
	in := newTestInterp()
	registerJSON(in)

	_, err := call(t, in, "parse_json", value.Text(`{not json`))
	require.Error(t, err)
}

func TestJSON_Stringify(t *testing.T) {
	in := newTestInterp()
	registerJSON(in)

	m := value.NewMap()
	m.Set("ok", value.Boolean(true))
	v, err := call(t, in, "stringify_json", m)
	require.NoError(t, err)
	require.Equal(t, value.Text(`{"ok":true}`), v)
}

func TestJSON_StringifyPrettyIndents(t *testing.T) {
	in := newTestInterp()
	registerJSON(in)

	m := value.NewMap()
	m.Set("ok", value.Boolean(true))
	v, err := call(t, in, "stringify_json_pretty", m)
	require.NoError(t, err)
	require.Contains(t, string(v.(value.Text)), "\n")
}

func TestJSON_RoundTrip(t *testing.T) {
	in := newTestInterp()
	registerJSON(in)

	original := value.Text(`[1,2,3]`)
	parsed, err := call(t, in, "parse_json", original)
	require.NoError(t, err)
	stringified, err := call(t, in, "stringify_json", parsed)
	require.NoError(t, err)
	require.Equal(t, value.Text("[1,2,3]"), stringified)
}
