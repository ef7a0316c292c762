package stdlib

import (
	"strings"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// registerText wires the Rust original's src/stdlib/text.rs surface:
// case conversion, trimming, substring/search, padding and reversal.
func registerText(in *interp.Interpreter) {
	in.RegisterNative("to_uppercase", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("to_uppercase", args)
		if err != nil {
			return nil, err
		}
		return value.Text(strings.ToUpper(s)), nil
	})
	in.RegisterNative("to_lowercase", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("to_lowercase", args)
		if err != nil {
			return nil, err
		}
		return value.Text(strings.ToLower(s)), nil
	})
	in.RegisterNative("trim", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("trim", args)
		if err != nil {
			return nil, err
		}
		return value.Text(strings.TrimSpace(s)), nil
	})
	in.RegisterNative("capitalize", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("capitalize", args)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return value.Text(""), nil
		}
		r := []rune(s)
		return value.Text(strings.ToUpper(string(r[0])) + string(r[1:])), nil
	})
	in.RegisterNative("reverse", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("reverse", args)
		if err != nil {
			return nil, err
		}
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return value.Text(string(r)), nil
	})
	in.RegisterNative("starts_with", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("starts_with", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("starts_with", args, 0)
		if err != nil {
			return nil, err
		}
		prefix, err := argText("starts_with", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasPrefix(s, prefix)), nil
	})
	in.RegisterNative("ends_with", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("ends_with", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("ends_with", args, 0)
		if err != nil {
			return nil, err
		}
		suffix, err := argText("ends_with", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasSuffix(s, suffix)), nil
	})
	in.RegisterNative("replace", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("replace", args, 3); err != nil {
			return nil, err
		}
		s, err := argText("replace", args, 0)
		if err != nil {
			return nil, err
		}
		old, err := argText("replace", args, 1)
		if err != nil {
			return nil, err
		}
		new_, err := argText("replace", args, 2)
		if err != nil {
			return nil, err
		}
		return value.Text(strings.ReplaceAll(s, old, new_)), nil
	})
	in.RegisterNative("substring", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("substring", args, 3); err != nil {
			return nil, err
		}
		s, err := argText("substring", args, 0)
		if err != nil {
			return nil, err
		}
		start, err := argNumber("substring", args, 1)
		if err != nil {
			return nil, err
		}
		end, err := argNumber("substring", args, 2)
		if err != nil {
			return nil, err
		}
		r := []rune(s)
		lo, hi := clampRange(int(start), int(end), len(r))
		return value.Text(string(r[lo:hi])), nil
	})
	in.RegisterNative("last_index_of", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("last_index_of", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("last_index_of", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := argText("last_index_of", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Number(strings.LastIndex(s, sub)), nil
	})
	in.RegisterNative("string_split", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("string_split", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("string_split", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := argText("string_split", args, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		items := make([]value.Value, len(parts))
		for i, p := range parts {
			items[i] = value.Text(p)
		}
		return value.NewList(items...), nil
	})
	in.RegisterNative("padleft", func(args []value.Value) (value.Value, error) {
		return pad(args, "padleft", true)
	})
	in.RegisterNative("padright", func(args []value.Value) (value.Value, error) {
		return pad(args, "padright", false)
	})

	// original's no-underscore spellings, aliasing the same behavior
	toUpper := func(args []value.Value) (value.Value, error) {
		s, err := unaryText("touppercase", args)
		if err != nil {
			return nil, err
		}
		return value.Text(strings.ToUpper(s)), nil
	}
	toLower := func(args []value.Value) (value.Value, error) {
		s, err := unaryText("tolowercase", args)
		if err != nil {
			return nil, err
		}
		return value.Text(strings.ToLower(s)), nil
	}
	split := func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("split", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("split", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := argText("split", args, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		items := make([]value.Value, len(parts))
		for i, p := range parts {
			items[i] = value.Text(p)
		}
		return value.NewList(items...), nil
	}
	startsWith := func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("startswith", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("startswith", args, 0)
		if err != nil {
			return nil, err
		}
		prefix, err := argText("startswith", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasPrefix(s, prefix)), nil
	}
	endsWith := func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("endswith", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("endswith", args, 0)
		if err != nil {
			return nil, err
		}
		suffix, err := argText("endswith", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Boolean(strings.HasSuffix(s, suffix)), nil
	}
	lastIndexOf := func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("lastindexof", args, 2); err != nil {
			return nil, err
		}
		s, err := argText("lastindexof", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := argText("lastindexof", args, 1)
		if err != nil {
			return nil, err
		}
		return value.Number(strings.LastIndex(s, sub)), nil
	}
	in.RegisterNative("touppercase", toUpper)
	in.RegisterNative("tolowercase", toLower)
	in.RegisterNative("split", split)
	in.RegisterNative("startswith", startsWith)
	in.RegisterNative("endswith", endsWith)
	in.RegisterNative("lastindexof", lastIndexOf)
}

func unaryText(name string, args []value.Value) (string, error) {
	if err := checkArgCount(name, args, 1); err != nil {
		return "", err
	}
	return argText(name, args, 0)
}

func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

func pad(args []value.Value, name string, left bool) (value.Value, error) {
	if err := checkArgCount(name, args, 3); err != nil {
		return nil, err
	}
	s, err := argText(name, args, 0)
	if err != nil {
		return nil, err
	}
	width, err := argNumber(name, args, 1)
	if err != nil {
		return nil, err
	}
	padChar, err := argText(name, args, 2)
	if err != nil {
		return nil, err
	}
	if padChar == "" {
		padChar = " "
	}
	need := int(width) - len([]rune(s))
	if need <= 0 {
		return value.Text(s), nil
	}
	fill := strings.Repeat(padChar, need)
	fill = string([]rune(fill)[:need])
	if left {
		return value.Text(fill + s), nil
	}
	return value.Text(s + fill), nil
}
