package stdlib

import (
	"testing"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// call looks up a registered native function by name and invokes it,
// failing the test immediately if the name was never registered.
func call(t *testing.T, in *interp.Interpreter, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	v, ok := in.Global.Get(name)
	if !ok {
		t.Fatalf("%s is not registered", name)
	}
	fn, ok := v.(*value.NativeFunction)
	if !ok {
		t.Fatalf("%s is not a native function", name)
	}
	return fn.Fn(args)
}

func newTestInterp() *interp.Interpreter {
	return interp.New(interp.Options{})
}
