package interp

import (
	"fmt"
	"os"
	"time"

	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/value"
)

// execBlock runs stmts in env in order, stopping at the first non-plain
// signal (return/break/continue/exit/error) and propagating it.
func (in *Interpreter) execBlock(stmts []ast.Statement, env *value.Environment) signal {
	for _, s := range stmts {
		sig := in.executeStatement(s, env)
		if sig.kind != sigNone || sig.err != nil {
			return sig
		}
	}
	return noSignal
}

func (in *Interpreter) executeStatement(stmt ast.Statement, env *value.Environment) signal {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		v, err := in.evaluate(s.Value, env)
		if err != nil {
			return errSignal(err)
		}
		env.Define(s.Name, value.DeepClone(v))
		return noSignal
	case *ast.AssignmentStatement:
		v, err := in.evaluate(s.Value, env)
		if err != nil {
			return errSignal(err)
		}
		if err := in.assignTo(s.Target, value.DeepClone(v), env); err != nil {
			return errSignal(err)
		}
		return noSignal
	case *ast.IfStatement:
		return in.execIf(s, env)
	case *ast.ForeachStatement:
		return in.execForeach(s, env)
	case *ast.CountStatement:
		return in.execCount(s, env)
	case *ast.WhileStatement:
		return in.execWhile(s, env)
	case *ast.RepeatWhileStatement:
		return in.execRepeatWhile(s, env)
	case *ast.RepeatUntilStatement:
		return in.execRepeatUntil(s, env)
	case *ast.ForeverStatement:
		return in.execForever(s, env)
	case *ast.ActionDefStatement:
		env.Define(s.Name, &value.Function{Name: s.Name, Params: s.Params, Body: s.Body, Env: value.NewWeakRef(env)})
		return noSignal
	case *ast.ReturnStatement:
		if s.Value == nil {
			return signal{kind: sigReturn, value: value.NothingValue}
		}
		v, err := in.evaluate(s.Value, env)
		if err != nil {
			return errSignal(err)
		}
		return signal{kind: sigReturn, value: v}
	case *ast.BreakStatement:
		return signal{kind: sigBreak}
	case *ast.ContinueStatement:
		return signal{kind: sigContinue}
	case *ast.ExitStatement:
		return signal{kind: sigExit}
	case *ast.DisplayStatement:
		v, err := in.evaluate(s.Value, env)
		if err != nil {
			return errSignal(err)
		}
		fmt.Fprintln(in.out, v.String())
		return noSignal
	case *ast.ExpressionStatement:
		_, err := in.evaluate(s.Expr, env)
		if err != nil {
			return errSignal(err)
		}
		return noSignal
	case *ast.TryStatement:
		return in.execTry(s, env)
	case *ast.ContainerDefStatement:
		in.registerContainer(s, env)
		return noSignal
	case *ast.InterfaceDefStatement:
		names := make([]string, len(s.Methods))
		for i, m := range s.Methods {
			names[i] = m.Name
		}
		in.Interfaces[s.Name] = &value.InterfaceDefinition{Name: s.Name, MethodNames: names}
		return noSignal
	case *ast.EventDefStatement:
		in.Events[s.Name] = value.NewContainerEvent(s.Name, s.Params)
		return noSignal
	case *ast.TriggerStatement:
		return in.execTrigger(s, env)
	case *ast.HandlerStatement:
		return in.execHandlerDecl(s, env)
	case *ast.PatternDefStatement:
		v, err := in.compilePattern(s.Source)
		if err != nil {
			return errSignal(err)
		}
		env.Define(s.Name, v)
		return noSignal
	case *ast.AddStatement:
		return in.execAdd(s, env)
	case *ast.RemoveStatement:
		return in.execRemove(s, env)
	case *ast.ClearStatement:
		return in.execClear(s, env)
	case *ast.OpenFileStatement:
		return in.execOpenFile(s, env)
	case *ast.ReadFileStatement:
		return in.execReadFile(s, env)
	case *ast.WriteFileStatement:
		return in.execWriteFile(s, env)
	case *ast.CloseStatement:
		return in.execClose(s, env)
	case *ast.CreateDirectoryStatement:
		return in.execCreateDirectory(s, env)
	case *ast.DeleteStatement:
		return in.execDelete(s, env)
	case *ast.HTTPGetStatement:
		return in.execHTTPGet(s, env)
	case *ast.HTTPPostStatement:
		return in.execHTTPPost(s, env)
	case *ast.ListenStatement:
		return in.execListen(s, env)
	case *ast.WaitForRequestStatement:
		return in.execWaitForRequest(s, env)
	case *ast.RespondStatement:
		return in.execRespond(s, env)
	case *ast.WaitForStatement:
		return in.execWaitFor(s, env)
	case *ast.WaitForDurationStatement:
		return in.execWaitForDuration(s, env)
	default:
		return errSignal(runtimeErrorf("internal", "unexecutable statement %T", stmt))
	}
}

func (in *Interpreter) execIf(s *ast.IfStatement, env *value.Environment) signal {
	cond, err := in.evaluate(s.Condition, env)
	if err != nil {
		return errSignal(err)
	}
	// Then and Else each run in their own scope, but a name declared in
	// Then alone (no Else) or in both Then and Else is copied back into
	// env once the taken branch finishes, matching the semantic
	// analyzer's promotion rule.
	promoted := ifPromotedNames(s)
	scope := value.NewEnvironment(env)
	var sig signal
	if truthy(cond) {
		sig = in.execBlock(s.Then, scope)
	} else {
		sig = in.execBlock(s.Else, scope)
	}
	for _, name := range promoted {
		if v, ok := scope.GetLocal(name); ok {
			env.Define(name, v)
		}
	}
	return sig
}

// ifPromotedNames returns the top-level `store` names that survive an
// if/otherwise into the enclosing scope: those declared in Then alone
// when there is no Else, or declared in both Then and Else.
func ifPromotedNames(s *ast.IfStatement) []string {
	thenNames := topLevelVarDecls(s.Then)
	if len(s.Else) == 0 {
		names := make([]string, 0, len(thenNames))
		for name := range thenNames {
			names = append(names, name)
		}
		return names
	}
	elseNames := topLevelVarDecls(s.Else)
	names := make([]string, 0, len(thenNames))
	for name := range thenNames {
		if elseNames[name] {
			names = append(names, name)
		}
	}
	return names
}

func topLevelVarDecls(stmts []ast.Statement) map[string]bool {
	decls := make(map[string]bool, len(stmts))
	for _, st := range stmts {
		if vd, ok := st.(*ast.VarDeclStatement); ok {
			decls[vd.Name] = true
		}
	}
	return decls
}

func (in *Interpreter) execForeach(s *ast.ForeachStatement, env *value.Environment) signal {
	coll, err := in.evaluate(s.Collection, env)
	if err != nil {
		return errSignal(err)
	}
	var items []value.Value
	switch c := coll.(type) {
	case *value.List:
		items = c.Elements
	case *value.Map:
		for _, k := range c.Keys() {
			items = append(items, value.Text(k))
		}
	default:
		return errSignal(runtimeErrorf("type", "cannot iterate over %v", coll.Kind()))
	}
	for _, item := range items {
		iterEnv := value.NewEnvironment(env)
		iterEnv.Define(s.ItemName, item)
		sig := in.execBlock(s.Body, iterEnv)
		if sig.err != nil {
			return sig
		}
		if sig.kind == sigBreak {
			break
		}
		if sig.kind == sigReturn || sig.kind == sigExit {
			return sig
		}
	}
	return noSignal
}

func (in *Interpreter) execCount(s *ast.CountStatement, env *value.Environment) signal {
	start, err := in.evaluate(s.Start, env)
	if err != nil {
		return errSignal(err)
	}
	end, err := in.evaluate(s.End, env)
	if err != nil {
		return errSignal(err)
	}
	step := value.Number(1)
	if s.Step != nil {
		sv, err := in.evaluate(s.Step, env)
		if err != nil {
			return errSignal(err)
		}
		n, ok := sv.(value.Number)
		if !ok {
			return errSignal(runtimeErrorf("type", "count step must be a number"))
		}
		step = n
	}
	startN, ok1 := start.(value.Number)
	endN, ok2 := end.(value.Number)
	if !ok1 || !ok2 {
		return errSignal(runtimeErrorf("type", "count bounds must be numbers"))
	}
	name := s.CounterName
	if name == "" {
		name = "count"
	}
	for n := startN; (step > 0 && n <= endN) || (step < 0 && n >= endN); n += step {
		iterEnv := value.NewEnvironment(env)
		iterEnv.Define(name, n)
		sig := in.execBlock(s.Body, iterEnv)
		if sig.err != nil {
			return sig
		}
		if sig.kind == sigBreak {
			break
		}
		if sig.kind == sigReturn || sig.kind == sigExit {
			return sig
		}
	}
	return noSignal
}

func (in *Interpreter) execWhile(s *ast.WhileStatement, env *value.Environment) signal {
	for {
		cond, err := in.evaluate(s.Condition, env)
		if err != nil {
			return errSignal(err)
		}
		if !truthy(cond) {
			return noSignal
		}
		iterEnv := value.NewEnvironment(env)
		sig := in.execBlock(s.Body, iterEnv)
		if sig.err != nil {
			return sig
		}
		if sig.kind == sigBreak {
			return noSignal
		}
		if sig.kind == sigReturn || sig.kind == sigExit {
			return sig
		}
	}
}

func (in *Interpreter) execRepeatWhile(s *ast.RepeatWhileStatement, env *value.Environment) signal {
	for {
		iterEnv := value.NewEnvironment(env)
		sig := in.execBlock(s.Body, iterEnv)
		if sig.err != nil {
			return sig
		}
		if sig.kind == sigBreak {
			return noSignal
		}
		if sig.kind == sigReturn || sig.kind == sigExit {
			return sig
		}
		cond, err := in.evaluate(s.Condition, env)
		if err != nil {
			return errSignal(err)
		}
		if !truthy(cond) {
			return noSignal
		}
	}
}

func (in *Interpreter) execRepeatUntil(s *ast.RepeatUntilStatement, env *value.Environment) signal {
	for {
		iterEnv := value.NewEnvironment(env)
		sig := in.execBlock(s.Body, iterEnv)
		if sig.err != nil {
			return sig
		}
		if sig.kind == sigBreak {
			return noSignal
		}
		if sig.kind == sigReturn || sig.kind == sigExit {
			return sig
		}
		cond, err := in.evaluate(s.Condition, env)
		if err != nil {
			return errSignal(err)
		}
		if truthy(cond) {
			return noSignal
		}
	}
}

func (in *Interpreter) execForever(s *ast.ForeverStatement, env *value.Environment) signal {
	for {
		iterEnv := value.NewEnvironment(env)
		sig := in.execBlock(s.Body, iterEnv)
		if sig.err != nil {
			return sig
		}
		if sig.kind == sigBreak {
			return noSignal
		}
		if sig.kind == sigReturn || sig.kind == sigExit {
			return sig
		}
	}
}

func (in *Interpreter) execTry(s *ast.TryStatement, env *value.Environment) signal {
	scope := value.NewEnvironment(env)
	sig := in.execBlock(s.Body, scope)
	if sig.err == nil {
		return sig
	}
	for _, clause := range s.WhenClauses {
		if !sig.err.Matches(clause.Kind) {
			continue
		}
		whenEnv := value.NewEnvironment(env)
		whenEnv.Define(clause.Name, value.Text(sig.err.Message))
		return in.execBlock(clause.Body, whenEnv)
	}
	if s.Otherwise != nil {
		return in.execBlock(s.Otherwise, value.NewEnvironment(env))
	}
	return sig
}

func (in *Interpreter) execAdd(s *ast.AddStatement, env *value.Environment) signal {
	v, err := in.evaluate(s.Value, env)
	if err != nil {
		return errSignal(err)
	}
	target, err := in.evaluate(s.Into, env)
	if err != nil {
		return errSignal(err)
	}
	list, ok := target.(*value.List)
	if !ok {
		return errSignal(runtimeErrorf("type", "add requires a list target, got %v", target.Kind()))
	}
	list.Elements = append(list.Elements, v)
	return noSignal
}

func (in *Interpreter) execRemove(s *ast.RemoveStatement, env *value.Environment) signal {
	v, err := in.evaluate(s.Value, env)
	if err != nil {
		return errSignal(err)
	}
	target, err := in.evaluate(s.From, env)
	if err != nil {
		return errSignal(err)
	}
	list, ok := target.(*value.List)
	if !ok {
		return errSignal(runtimeErrorf("type", "remove requires a list target, got %v", target.Kind()))
	}
	for i, el := range list.Elements {
		if value.Equal(el, v, nil) {
			list.Elements = append(list.Elements[:i], list.Elements[i+1:]...)
			break
		}
	}
	return noSignal
}

func (in *Interpreter) execClear(s *ast.ClearStatement, env *value.Environment) signal {
	target, err := in.evaluate(s.List, env)
	if err != nil {
		return errSignal(err)
	}
	list, ok := target.(*value.List)
	if !ok {
		return errSignal(runtimeErrorf("type", "clear requires a list target, got %v", target.Kind()))
	}
	list.Elements = nil
	return noSignal
}

func (in *Interpreter) execOpenFile(s *ast.OpenFileStatement, env *value.Environment) signal {
	pathV, err := in.evaluate(s.Path, env)
	if err != nil {
		return errSignal(err)
	}
	var flag int
	switch s.Mode {
	case "read":
		flag = os.O_RDONLY
	case "write":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "append":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return errSignal(runtimeErrorf("argument", "unknown file mode %q", s.Mode))
	}
	f, oerr := os.OpenFile(pathV.String(), flag, 0o644)
	if oerr != nil {
		return errSignal(runtimeErrorf("io", "%v", oerr))
	}
	h := in.Handles.put("file", &resource{file: f})
	env.Define(s.HandleName, h)
	return noSignal
}

func (in *Interpreter) execReadFile(s *ast.ReadFileStatement, env *value.Environment) signal {
	hv, err := in.evaluate(s.Handle, env)
	if err != nil {
		return errSignal(err)
	}
	h, ok := hv.(*value.Handle)
	if !ok {
		return errSignal(runtimeErrorf("type", "read requires a file handle"))
	}
	r, ok := in.Handles.get(h)
	if !ok || r.file == nil {
		return errSignal(runtimeErrorf("io", "handle %s is not an open file", h.ID))
	}
	data, rerr := os.ReadFile(r.file.Name())
	if rerr != nil {
		return errSignal(runtimeErrorf("io", "%v", rerr))
	}
	env.Define(s.Into, value.Text(string(data)))
	return noSignal
}

func (in *Interpreter) execWriteFile(s *ast.WriteFileStatement, env *value.Environment) signal {
	hv, err := in.evaluate(s.Handle, env)
	if err != nil {
		return errSignal(err)
	}
	content, err := in.evaluate(s.Content, env)
	if err != nil {
		return errSignal(err)
	}
	h, ok := hv.(*value.Handle)
	if !ok {
		return errSignal(runtimeErrorf("type", "write requires a file handle"))
	}
	r, ok := in.Handles.get(h)
	if !ok || r.file == nil {
		return errSignal(runtimeErrorf("io", "handle %s is not an open file", h.ID))
	}
	if _, werr := r.file.WriteString(content.String()); werr != nil {
		return errSignal(runtimeErrorf("io", "%v", werr))
	}
	return noSignal
}

func (in *Interpreter) execClose(s *ast.CloseStatement, env *value.Environment) signal {
	hv, err := in.evaluate(s.Handle, env)
	if err != nil {
		return errSignal(err)
	}
	h, ok := hv.(*value.Handle)
	if !ok {
		return errSignal(runtimeErrorf("type", "close requires a handle"))
	}
	if cerr := in.Handles.Close(h); cerr != nil {
		return errSignal(runtimeErrorf("io", "%v", cerr))
	}
	return noSignal
}

func (in *Interpreter) execCreateDirectory(s *ast.CreateDirectoryStatement, env *value.Environment) signal {
	pathV, err := in.evaluate(s.Path, env)
	if err != nil {
		return errSignal(err)
	}
	if merr := os.MkdirAll(pathV.String(), 0o755); merr != nil {
		return errSignal(runtimeErrorf("io", "%v", merr))
	}
	return noSignal
}

func (in *Interpreter) execDelete(s *ast.DeleteStatement, env *value.Environment) signal {
	pathV, err := in.evaluate(s.Path, env)
	if err != nil {
		return errSignal(err)
	}
	if rerr := os.RemoveAll(pathV.String()); rerr != nil {
		return errSignal(runtimeErrorf("io", "%v", rerr))
	}
	return noSignal
}

// execWaitFor lives in async.go alongside the rest of the suspendable
// I/O it shares its event-loop plumbing with.

func (in *Interpreter) execWaitForDuration(s *ast.WaitForDurationStatement, env *value.Environment) signal {
	amount, err := in.evaluate(s.Amount, env)
	if err != nil {
		return errSignal(err)
	}
	n, ok := amount.(value.Number)
	if !ok {
		return errSignal(runtimeErrorf("type", "wait for duration requires a number"))
	}
	var d time.Duration
	switch s.Unit {
	case "ms":
		d = time.Duration(n) * time.Millisecond
	case "seconds":
		d = time.Duration(n) * time.Second
	case "minutes":
		d = time.Duration(n) * time.Minute
	default:
		return errSignal(runtimeErrorf("argument", "unknown duration unit %q", s.Unit))
	}
	if serr := in.Loop.Sleep(d); serr != nil {
		return errSignal(runtimeErrorf("io", "%v", serr))
	}
	return noSignal
}
