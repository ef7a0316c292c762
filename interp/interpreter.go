// Package interp implements WFL's tree-walking interpreter: statement
// execution, expression evaluation, container/event dispatch, and
// cooperative suspension over internal/ioloop (spec.md §5).
//
// Errors never unwind the Go call stack as panics (spec.md §9's
// "structured exceptions as ordinary result values" strategy): every
// execute/evaluate method returns its outcome explicitly, and a
// RuntimeError travels as a value until a `try`/`when` catches it or it
// reaches the program's root and aborts the run.
package interp

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/internal/ioloop"
	"github.com/wfl-lang/wfl/pattern"
	"github.com/wfl-lang/wfl/value"
)

// RuntimeError is a structured WFL exception: a Kind used by `when
// <kind>` clauses to select a handler, plus a human-readable Message.
// "general" matches any kind (spec.md's WhenClause semantics).
type RuntimeError struct {
	Kind    string
	Message string
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// Matches reports whether a `when <kind>` clause catches e.
func (e *RuntimeError) Matches(kind string) bool {
	return kind == "general" || kind == "" || kind == e.Kind
}

// signalKind distinguishes the non-local control-flow outcomes a
// statement (or block of statements) can produce.
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
	sigExit
)

// signal is what executeStatement/executeBlock returns: either plain
// fall-through (sigNone, no error) or a non-local jump/error that every
// enclosing construct must propagate until something handles it.
type signal struct {
	kind  signalKind
	value value.Value // sigReturn's value
	err   *RuntimeError
}

var noSignal = signal{kind: sigNone}

func errSignal(err *RuntimeError) signal { return signal{kind: sigNone, err: err} }

// frame is the interpreter's notion of "current container context"
// (spec.md §"Container handling"): instance methods resolve bare
// property names against Receiver's property bag rather than as scope
// variables, so they never collide with a same-named parameter. Static
// methods get no such container context.
type frame struct {
	Receiver *value.ContainerInstance
}

// Options configures an Interpreter: output sink, pattern VM step budget
// and logger. PatternStepBudget is stored on the Interpreter, but pattern
// matching runs with pattern.DefaultStepBudget; Logger is stored and
// nothing in this package logs through it. wfl.toml's event-loop queue
// depth and stdlib capability toggles have no field here, and no other
// package reads them either.
type Options struct {
	Stdout          io.Writer
	PatternStepBudget int
	Logger          *zap.SugaredLogger
}

// Interpreter owns every piece of mutable runtime state for one running
// WFL program: the global environment, registered container/interface/
// event/pattern definitions, the I/O handle table, and the cooperative
// event loop.
type Interpreter struct {
	Global     *value.Environment
	Containers map[string]*value.ContainerDefinition
	Interfaces map[string]*value.InterfaceDefinition
	Events     map[string]*value.ContainerEvent
	Patterns   map[string]*pattern.Program

	Handles *HandleTable
	Loop    *ioloop.Loop

	out         io.Writer
	stepBudget  int
	log         *zap.SugaredLogger
	frames      []frame
}

// New creates an Interpreter ready to run a Program.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	budget := opts.PatternStepBudget
	if budget <= 0 {
		budget = pattern.DefaultStepBudget
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Interpreter{
		Global:     value.NewEnvironment(nil),
		Containers: make(map[string]*value.ContainerDefinition),
		Interfaces: make(map[string]*value.InterfaceDefinition),
		Events:     make(map[string]*value.ContainerEvent),
		Patterns:   make(map[string]*pattern.Program),
		Handles:    NewHandleTable(),
		Loop:       ioloop.New(context.Background()),
		out:        out,
		stepBudget: budget,
		log:        log,
	}
}

// SetOutput redirects subsequent `display` statements to w.
func (in *Interpreter) SetOutput(w io.Writer) {
	in.out = w
}

// RegisterNative defines a NativeFunction in the global environment,
// the interpreter-side half of the stdlib registration protocol
// (spec.md §6); `stdlib` packages call this during setup.
func (in *Interpreter) RegisterNative(name string, fn func(args []value.Value) (value.Value, error)) {
	in.Global.Define(name, &value.NativeFunction{Name: name, Fn: fn})
}

// Run executes prog's top-level statements in the global environment.
// It returns the first unhandled RuntimeError, if any; a bare `exit`
// statement ends the run without error.
func (in *Interpreter) Run(prog *ast.Program) error {
	sig := in.execBlock(prog.Statements, in.Global)
	defer in.Loop.Cancel()
	if sig.err != nil {
		return sig.err
	}
	return nil
}

func (in *Interpreter) currentFrame() *frame {
	if len(in.frames) == 0 {
		return nil
	}
	return &in.frames[len(in.frames)-1]
}

func (in *Interpreter) pushFrame(f frame) {
	in.frames = append(in.frames, f)
}

func (in *Interpreter) popFrame() {
	in.frames = in.frames[:len(in.frames)-1]
}

func runtimeErrorf(kind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
