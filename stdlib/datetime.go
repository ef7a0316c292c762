package stdlib

import (
	"fmt"
	"time"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// registerDatetime wires the Rust original's src/stdlib/time.rs surface
// not already covered by the `current time` expression in interp
// (spec.md's evalCurrentTime): date/time construction, formatting,
// parsing, and day arithmetic, all over value.DateTime/time.Time.
func registerDatetime(in *interp.Interpreter) {
	in.RegisterNative("today", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("today", args, 0); err != nil {
			return nil, err
		}
		y, m, d := time.Now().Date()
		return value.DateTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
	})
	in.RegisterNative("now", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("now", args, 0); err != nil {
			return nil, err
		}
		return value.DateTime{Time: time.Now()}, nil
	})
	in.RegisterNative("format_date", func(args []value.Value) (value.Value, error) {
		dt, err := unaryDateTime("format_date", args)
		if err != nil {
			return nil, err
		}
		return value.Text(dt.Time.Format("2006-01-02")), nil
	})
	in.RegisterNative("format_time", func(args []value.Value) (value.Value, error) {
		dt, err := unaryDateTime("format_time", args)
		if err != nil {
			return nil, err
		}
		return value.Text(dt.Time.Format("15:04:05")), nil
	})
	in.RegisterNative("format_datetime", func(args []value.Value) (value.Value, error) {
		dt, err := unaryDateTime("format_datetime", args)
		if err != nil {
			return nil, err
		}
		return value.Text(dt.Time.Format("2006-01-02 15:04:05")), nil
	})
	in.RegisterNative("parse_date", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("parse_date", args)
		if err != nil {
			return nil, err
		}
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, fmt.Errorf("parse_date: %v", perr)
		}
		return value.DateTime{Time: t}, nil
	})
	in.RegisterNative("add_days", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("add_days", args, 2); err != nil {
			return nil, err
		}
		dt, ok := args[0].(value.DateTime)
		if !ok {
			return nil, fmt.Errorf("add_days expects a datetime at argument 1, got %v", args[0].Kind())
		}
		n, err := argNumber("add_days", args, 1)
		if err != nil {
			return nil, err
		}
		return value.DateTime{Time: dt.Time.AddDate(0, 0, int(n))}, nil
	})
	in.RegisterNative("days_between", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("days_between", args, 2); err != nil {
			return nil, err
		}
		a, ok := args[0].(value.DateTime)
		if !ok {
			return nil, fmt.Errorf("days_between expects a datetime at argument 1, got %v", args[0].Kind())
		}
		b, ok := args[1].(value.DateTime)
		if !ok {
			return nil, fmt.Errorf("days_between expects a datetime at argument 2, got %v", args[1].Kind())
		}
		return value.Number(b.Time.Sub(a.Time).Hours() / 24), nil
	})
}

func unaryDateTime(name string, args []value.Value) (value.DateTime, error) {
	if err := checkArgCount(name, args, 1); err != nil {
		return value.DateTime{}, err
	}
	dt, ok := args[0].(value.DateTime)
	if !ok {
		return value.DateTime{}, fmt.Errorf("%s expects a datetime, got %v", name, args[0].Kind())
	}
	return dt, nil
}
