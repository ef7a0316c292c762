package stdlib

import (
	"os"
	"path/filepath"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// registerFilesystem wires the Rust original's src/stdlib/path.rs
// helpers over path/filepath (a justified standard-library component:
// no pack dependency offers path manipulation), plus the read-only
// filesystem queries that aren't already modeled as statements in
// interp (open/read/write/close/mkdir/delete are statements there).
func registerFilesystem(in *interp.Interpreter) {
	in.RegisterNative("path_join", func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i := range args {
			t, err := argText("path_join", args, i)
			if err != nil {
				return nil, err
			}
			parts[i] = t
		}
		return value.Text(filepath.Join(parts...)), nil
	})
	in.RegisterNative("path_basename", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("path_basename", args)
		if err != nil {
			return nil, err
		}
		return value.Text(filepath.Base(s)), nil
	})
	in.RegisterNative("path_dirname", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("path_dirname", args)
		if err != nil {
			return nil, err
		}
		return value.Text(filepath.Dir(s)), nil
	})
	in.RegisterNative("path_extension", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("path_extension", args)
		if err != nil {
			return nil, err
		}
		return value.Text(filepath.Ext(s)), nil
	})
	in.RegisterNative("path_is_absolute", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("path_is_absolute", args)
		if err != nil {
			return nil, err
		}
		return value.Boolean(filepath.IsAbs(s)), nil
	})
	in.RegisterNative("path_normalize", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("path_normalize", args)
		if err != nil {
			return nil, err
		}
		return value.Text(filepath.Clean(s)), nil
	})
	in.RegisterNative("file_exists", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("file_exists", args)
		if err != nil {
			return nil, err
		}
		_, serr := os.Stat(s)
		return value.Boolean(serr == nil), nil
	})
	in.RegisterNative("list_dir", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("list_dir", args)
		if err != nil {
			return nil, err
		}
		entries, derr := os.ReadDir(s)
		if derr != nil {
			return nil, derr
		}
		items := make([]value.Value, len(entries))
		for i, e := range entries {
			items[i] = value.Text(e.Name())
		}
		return value.NewList(items...), nil
	})
}
