package stdlib

import (
	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

var kindNames = map[value.Kind]string{
	value.KindNumber:              "number",
	value.KindText:                "text",
	value.KindBoolean:             "boolean",
	value.KindNothing:             "nothing",
	value.KindList:                "list",
	value.KindMap:                 "map",
	value.KindFunction:            "action",
	value.KindNativeFunction:      "action",
	value.KindFuture:              "future",
	value.KindPattern:             "pattern",
	value.KindDateTime:            "datetime",
	value.KindBinary:              "binary",
	value.KindContainerDefinition: "container",
	value.KindContainerInstance:   "instance",
	value.KindContainerMethod:     "method",
	value.KindContainerEvent:      "event",
	value.KindInterfaceDefinition: "interface",
	value.KindRequest:             "request",
	value.KindResponse:            "response",
	value.KindHandle:              "handle",
}

func registerCore(in *interp.Interpreter) {
	in.RegisterNative("type_of", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("type_of", args, 1); err != nil {
			return nil, err
		}
		if name, ok := kindNames[args[0].Kind()]; ok {
			return value.Text(name), nil
		}
		return value.Text("unknown"), nil
	})
	in.RegisterNative("is_nothing", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("is_nothing", args, 1); err != nil {
			return nil, err
		}
		_, ok := args[0].(value.Nothing)
		return value.Boolean(ok), nil
	})
	in.RegisterNative("to_text", func(args []value.Value) (value.Value, error) {
		if err := checkArgCount("to_text", args, 1); err != nil {
			return nil, err
		}
		return value.Text(args[0].String()), nil
	})
}
