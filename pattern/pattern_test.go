package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Compile(src)
	require.NoError(t, err)
	return prog
}

func TestLiteralMatch(t *testing.T) {
	prog := mustCompile(t, `"cat"`)
	m, err := Find(prog, "a cat sat")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "cat", m.Text)
	require.Equal(t, 2, m.Start)
}

func TestCharacterClasses(t *testing.T) {
	prog := mustCompile(t, "one or more digit")
	m, err := Find(prog, "order 4821 shipped")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "4821", m.Text)
}

func TestQuantifiers(t *testing.T) {
	cases := []struct {
		src, input, want string
	}{
		{`optional "a" then "b"`, "b", "b"},
		{`optional "a" then "b"`, "ab", "ab"},
		{`zero or more digit then "x"`, "x", "x"},
		{`zero or more digit then "x"`, "123x", "123x"},
		{`one or more digit`, "55", "55"},
		{`exactly 3 digit`, "98765", "987"},
		{`between 2 and 4 digit`, "98765", "9876"},
	}
	for _, c := range cases {
		prog := mustCompile(t, c.src)
		m, err := Find(prog, c.input)
		require.NoError(t, err, c.src)
		require.NotNil(t, m, c.src)
		require.Equal(t, c.want, m.Text, c.src)
	}
}

func TestAlternation(t *testing.T) {
	prog := mustCompile(t, `"cat" or "dog"`)
	m, err := Find(prog, "I have a dog")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "dog", m.Text)
}

func TestNamedCapture(t *testing.T) {
	prog := mustCompile(t, `capture one or more digit as year`)
	m, err := Find(prog, "born 1999 in spring")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "1999", m.Captures["year"])
}

func TestBackreference(t *testing.T) {
	prog := mustCompile(t, `capture one or more letter as word then " " then same as word`)
	m, err := Find(prog, "see the la la land")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "la la", m.Text)
}

func TestAnchors(t *testing.T) {
	prog := mustCompile(t, `start of text then one or more digit`)
	ok, err := IsMatch(prog, "99 bottles")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = IsMatch(prog, "no 99 bottles")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLookahead(t *testing.T) {
	prog := mustCompile(t, `one or more digit then followed by "px"`)
	m, err := Find(prog, "width: 640px")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "640", m.Text)
}

func TestLookbehind(t *testing.T) {
	prog := mustCompile(t, `preceded by "$" then one or more digit`)
	m, err := Find(prog, "price $42 today")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "42", m.Text)
}

func TestLookbehindRejectsVariableLength(t *testing.T) {
	_, err := Compile(`preceded by one or more digit then "x"`)
	require.Error(t, err)
}

func TestFindAll(t *testing.T) {
	prog := mustCompile(t, "one or more digit")
	matches, err := FindAll(prog, "a1 b22 c333")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	require.Equal(t, "1", matches[0].Text)
	require.Equal(t, "22", matches[1].Text)
	require.Equal(t, "333", matches[2].Text)
}

func TestReplaceAndSplit(t *testing.T) {
	prog := mustCompile(t, "one or more whitespace")
	replaced, err := Replace(prog, "a   b  c", "_")
	require.NoError(t, err)
	require.Equal(t, "a_b_c", replaced)

	parts, err := Split(prog, "a   b  c")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, parts)
}

func TestStepBudgetGuardsCatastrophicBacktracking(t *testing.T) {
	prog := mustCompile(t, `one or more digit then "b"`)
	input := make([]rune, 0, 200)
	for i := 0; i < 200; i++ {
		input = append(input, '9')
	}
	_, err := FindFrom(prog, input, 0, 50)
	require.ErrorIs(t, err, ErrStepBudgetExceeded)
}

func TestCompileCachedMemoizes(t *testing.T) {
	a, err := CompileCached("one or more digit")
	require.NoError(t, err)
	b, err := CompileCached("one or more digit")
	require.NoError(t, err)
	require.Same(t, a, b)
}
