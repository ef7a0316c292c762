package wfl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestEngine_EvalDisplaysOutput(t *testing.T) {
	var out bytes.Buffer
	engine, err := New(WithStdout(&out))
	require.NoError(t, err)

	err = engine.Eval(`store x as 2 plus 3
display x`)
	require.NoError(t, err)
	require.Equal(t, "5\n", out.String())
}

func TestEngine_SetOutputRedirectsAfterConstruction(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	var out bytes.Buffer
	engine.SetOutput(&out)

	require.NoError(t, engine.Eval(`display "hello"`))
	require.Equal(t, "hello\n", out.String())
}

func TestEngine_ParseReturnsASTWithoutRunning(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	prog, err := engine.Parse(`store x as 1`)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
}

func TestEngine_CompileCatchesTypeErrors(t *testing.T) {
	engine, err := New(WithTypeCheck(true))
	require.NoError(t, err)

	_, err = engine.Compile(`store x as 1 plus "two"`)
	require.Error(t, err)
}

func TestEngine_CompileSkipsTypeCheckWhenDisabled(t *testing.T) {
	engine, err := New(WithTypeCheck(false))
	require.NoError(t, err)

	prog, err := engine.Compile(`store x as 1`)
	require.NoError(t, err)
	require.NotNil(t, prog)
}

func TestEngine_RegisterNativeExposesGoFunction(t *testing.T) {
	var out bytes.Buffer
	engine, err := New(WithStdout(&out))
	require.NoError(t, err)

	engine.RegisterNative("shout", func(args []value.Value) (value.Value, error) {
		return value.Text("LOUD"), nil
	})

	err = engine.Eval(`display shout()`)
	require.NoError(t, err)
	require.Equal(t, "LOUD\n", out.String())
}

func TestEngine_RandomSeedIsReproducible(t *testing.T) {
	var outA, outB bytes.Buffer
	a, err := New(WithStdout(&outA), WithRandomSeed(42))
	require.NoError(t, err)
	b, err := New(WithStdout(&outB), WithRandomSeed(42))
	require.NoError(t, err)

	const src = `display random_float()`
	require.NoError(t, a.Eval(src))
	require.NoError(t, b.Eval(src))
	require.Equal(t, outA.String(), outB.String())
}
