package stdlib

import (
	"fmt"
	"strings"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// registerList wires the Rust original's src/stdlib/list.rs query
// surface. Mutating list operations (add/remove/clear) are already
// modeled as statements in interp, so this file covers only the
// function-call-style queries: length, push/pop, contains, indexof.
func registerList(in *interp.Interpreter) {
	in.RegisterNative("length", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("length", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case *value.List:
			return value.Number(len(v.Elements)), nil
		case value.Text:
			return value.Number(len([]rune(string(v)))), nil
		case *value.Map:
			return value.Number(v.Len()), nil
		default:
			return nil, fmt.Errorf("length expects a list or text, got %v", args[0].Kind())
		}
	})
	in.RegisterNative("push", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("push", args, 2); err != nil {
			return nil, err
		}
		l, err := argList("push", args, 0)
		if err != nil {
			return nil, err
		}
		l.Elements = append(l.Elements, args[1])
		return value.NothingValue, nil
	})
	in.RegisterNative("pop", func(args []value.Value) (value.Value, error) {
		l, err := unaryList("pop", args)
		if err != nil {
			return nil, err
		}
		if len(l.Elements) == 0 {
			return nil, fmt.Errorf("cannot pop from an empty list")
		}
		last := l.Elements[len(l.Elements)-1]
		l.Elements = l.Elements[:len(l.Elements)-1]
		return last, nil
	})
	in.RegisterNative("contains", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("contains", args, 2); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case *value.List:
			for _, e := range v.Elements {
				if value.Equal(e, args[1], map[[2]any]bool{}) {
					return value.Boolean(true), nil
				}
			}
			return value.Boolean(false), nil
		case value.Text:
			sub, err := argText("contains", args, 1)
			if err != nil {
				return nil, err
			}
			return value.Boolean(strings.Contains(string(v), sub)), nil
		default:
			return nil, fmt.Errorf("contains expects a list or text, got %v", args[0].Kind())
		}
	})
	indexOf := func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("indexof", args, 2); err != nil {
			return nil, err
		}
		l, err := argList("indexof", args, 0)
		if err != nil {
			return nil, err
		}
		for i, e := range l.Elements {
			if value.Equal(e, args[1], map[[2]any]bool{}) {
				return value.Number(i), nil
			}
		}
		return value.Number(-1), nil
	}
	in.RegisterNative("indexof", indexOf)
	in.RegisterNative("index_of", indexOf)
}

func unaryList(name string, args []value.Value) (*value.List, error) {
	if err := checkArgCount(name, args, 1); err != nil {
		return nil, err
	}
	return argList(name, args, 0)
}
