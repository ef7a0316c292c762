package stdlib

import (
	"encoding/json"
	"fmt"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// registerJSON wires the Rust original's src/stdlib/json.rs surface,
// bridging value.Value to Go's encoding/json via an any-typed middle
// layer (justified standard-library component: no pack dependency
// offers JSON codec beyond encoding/json itself).
func registerJSON(in *interp.Interpreter) {
	in.RegisterNative("parse_json", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("parse_json", args)
		if err != nil {
			return nil, err
		}
		var decoded any
		if jerr := json.Unmarshal([]byte(s), &decoded); jerr != nil {
			return nil, fmt.Errorf("parse_json: %v", jerr)
		}
		return fromJSON(decoded), nil
	})
	in.RegisterNative("stringify_json", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("stringify_json", args, 1); err != nil {
			return nil, err
		}
		out, jerr := json.Marshal(toJSON(args[0]))
		if jerr != nil {
			return nil, fmt.Errorf("stringify_json: %v", jerr)
		}
		return value.Text(string(out)), nil
	})
	in.RegisterNative("stringify_json_pretty", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("stringify_json_pretty", args, 1); err != nil {
			return nil, err
		}
		out, jerr := json.MarshalIndent(toJSON(args[0]), "", "  ")
		if jerr != nil {
			return nil, fmt.Errorf("stringify_json_pretty: %v", jerr)
		}
		return value.Text(string(out)), nil
	})
}

func fromJSON(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.NothingValue
	case bool:
		return value.Boolean(t)
	case float64:
		return value.Number(t)
	case string:
		return value.Text(t)
	case []any:
		items := make([]value.Value, len(t))
		for i, e := range t {
			items[i] = fromJSON(e)
		}
		return value.NewList(items...)
	case map[string]any:
		m := value.NewMap()
		for k, e := range t {
			m.Set(k, fromJSON(e))
		}
		return m
	default:
		return value.NothingValue
	}
}

func toJSON(v value.Value) any {
	switch t := v.(type) {
	case value.Number:
		return float64(t)
	case value.Text:
		return string(t)
	case value.Boolean:
		return bool(t)
	case value.Nothing:
		return nil
	case *value.List:
		items := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			items[i] = toJSON(e)
		}
		return items
	case *value.Map:
		m := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			e, _ := t.Get(k)
			m[k] = toJSON(e)
		}
		return m
	default:
		return t.String()
	}
}
