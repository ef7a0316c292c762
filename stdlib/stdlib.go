// Package stdlib registers WFL's built-in native functions into an
// Interpreter's global environment (spec.md §6 "Built-in registration
// protocol": register_function/register_value), grounded on the
// teacher's `internal/interp/builtins_*.go` registration style and the
// Rust original's `src/stdlib/*.rs` function surface.
package stdlib

import (
	"fmt"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// Register installs every stdlib package's native functions into in's
// global environment. seed initializes the random module's PRNG
// (spec.md §6 "seeded PRNG with 64-bit state").
func Register(in *interp.Interpreter, seed uint64) {
	registerCore(in)
	registerMath(in)
	registerText(in)
	registerList(in)
	registerJSON(in)
	registerEncoding(in)
	registerFilesystem(in)
	registerRandom(in, seed)
	registerDatetime(in)
}

func checkArgCount(name string, args []value.Value, want int) error {
	if len(args) != want {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func argNumber(name string, args []value.Value, i int) (value.Number, error) {
	n, ok := args[i].(value.Number)
	if !ok {
		return 0, fmt.Errorf("%s expects a number at argument %d, got %v", name, i+1, args[i].Kind())
	}
	return n, nil
}

func argText(name string, args []value.Value, i int) (string, error) {
	t, ok := args[i].(value.Text)
	if !ok {
		return "", fmt.Errorf("%s expects text at argument %d, got %v", name, i+1, args[i].Kind())
	}
	return string(t), nil
}

func argList(name string, args []value.Value, i int) (*value.List, error) {
	l, ok := args[i].(*value.List)
	if !ok {
		return nil, fmt.Errorf("%s expects a list at argument %d, got %v", name, i+1, args[i].Kind())
	}
	return l, nil
}
