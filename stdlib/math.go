package stdlib

import (
	"math"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// registerMath wires the Rust original's src/stdlib/math.rs surface
// (abs/round/floor/ceil/clamp) plus the usual min/max/sqrt/pow
// companions, all over math.Float64-compatible value.Number.
func registerMath(in *interp.Interpreter) {
	in.RegisterNative("abs", func(args []value.Value) (value.Value, error) {
		n, err := unaryNumber("abs", args)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Abs(float64(n))), nil
	})
	in.RegisterNative("round", func(args []value.Value) (value.Value, error) {
		n, err := unaryNumber("round", args)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Round(float64(n))), nil
	})
	in.RegisterNative("floor", func(args []value.Value) (value.Value, error) {
		n, err := unaryNumber("floor", args)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Floor(float64(n))), nil
	})
	in.RegisterNative("ceil", func(args []value.Value) (value.Value, error) {
		n, err := unaryNumber("ceil", args)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Ceil(float64(n))), nil
	})
	in.RegisterNative("sqrt", func(args []value.Value) (value.Value, error) {
		n, err := unaryNumber("sqrt", args)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Sqrt(float64(n))), nil
	})
	in.RegisterNative("clamp", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("clamp", args, 3); err != nil {
			return nil, err
		}
		n, err := argNumber("clamp", args, 0)
		if err != nil {
			return nil, err
		}
		lo, err := argNumber("clamp", args, 1)
		if err != nil {
			return nil, err
		}
		hi, err := argNumber("clamp", args, 2)
		if err != nil {
			return nil, err
		}
		if n < lo {
			return lo, nil
		}
		if n > hi {
			return hi, nil
		}
		return n, nil
	})
	in.RegisterNative("min", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("min", args, 2); err != nil {
			return nil, err
		}
		a, err := argNumber("min", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := argNumber("min", args, 1)
		if err != nil {
			return nil, err
		}
		if a < b {
			return a, nil
		}
		return b, nil
	})
	in.RegisterNative("max", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("max", args, 2); err != nil {
			return nil, err
		}
		a, err := argNumber("max", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := argNumber("max", args, 1)
		if err != nil {
			return nil, err
		}
		if a > b {
			return a, nil
		}
		return b, nil
	})
	in.RegisterNative("pow", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("pow", args, 2); err != nil {
			return nil, err
		}
		base, err := argNumber("pow", args, 0)
		if err != nil {
			return nil, err
		}
		exp, err := argNumber("pow", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Number(math.Pow(float64(base), float64(exp))), nil
	})
}

func unaryNumber(name string, args []value.Value) (value.Number, error) {
	if err := checkArgCount(name, args, 1); err != nil {
		return 0, err
	}
	return argNumber(name, args, 0)
}
