package interp

import (
	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/value"
)

// execHandlerDecl registers Body as a handler on the named event,
// appended to the event's handler list in declaration order (spec.md's
// "handlers run in registration order").
func (in *Interpreter) execHandlerDecl(s *ast.HandlerStatement, env *value.Environment) signal {
	evt, ok := in.Events[s.Event]
	if !ok {
		return errSignal(runtimeErrorf("undefined", "event %q is not defined", s.Event))
	}
	evt.Register(&value.EventHandler{
		ParamName: s.ParamName,
		Body:      s.Body,
		Env:       value.NewWeakRef(env),
	})
	return noSignal
}

// execTrigger evaluates Args once and runs every registered handler in
// order, each in its own child scope with the payload bound to its
// ParamName.
func (in *Interpreter) execTrigger(s *ast.TriggerStatement, env *value.Environment) signal {
	evt, ok := in.Events[s.Name]
	if !ok {
		return errSignal(runtimeErrorf("undefined", "event %q is not defined", s.Name))
	}
	var payload value.Value = value.NothingValue
	if len(s.Args) > 0 {
		v, err := in.evaluate(s.Args[0], env)
		if err != nil {
			return errSignal(err)
		}
		payload = v
	}
	for _, h := range evt.Handlers {
		parent := env
		if hEnv, ok := h.Env.Resolve(); ok {
			parent = hEnv
		}
		handlerEnv := value.NewEnvironment(parent)
		if h.ParamName != "" {
			handlerEnv.Define(h.ParamName, payload)
		}
		sig := in.execBlock(h.Body, handlerEnv)
		if sig.err != nil {
			return sig
		}
		if sig.kind == sigExit {
			return sig
		}
	}
	return noSignal
}
