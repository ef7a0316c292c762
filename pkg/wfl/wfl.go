// Package wfl is WFL's embeddable public API: parse, type-check, and
// run WFL source against a persistent interpreter instance, following
// the teacher's pkg/dwscript functional-options Engine shape (New,
// WithTypeCheck, Compile/Parse/Run/Eval, RegisterFunction/SetOutput).
package wfl

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/diagnostics"
	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/lexer"
	"github.com/wfl-lang/wfl/parser"
	"github.com/wfl-lang/wfl/semantic"
	"github.com/wfl-lang/wfl/stdlib"
	"github.com/wfl-lang/wfl/types"
	"github.com/wfl-lang/wfl/value"
)

// Engine is a ready-to-use WFL runtime: one global environment, one
// stdlib registration, and the type-check/step-budget/output settings
// an embedder configured it with.
type Engine struct {
	typeCheck bool
	log       *zap.SugaredLogger

	registry *diagnostics.Registry
	interp   *interp.Interpreter
}

// Option configures an Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	typeCheck     bool
	out           io.Writer
	patternBudget int
	seed          uint64
	log           *zap.SugaredLogger
}

// WithTypeCheck toggles semantic analysis and structural type checking
// before Run/Eval execute a program. Defaults to enabled.
func WithTypeCheck(enabled bool) Option {
	return func(c *engineConfig) { c.typeCheck = enabled }
}

// WithStdout sets the interpreter's `display` sink. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *engineConfig) { c.out = w }
}

// WithPatternStepBudget sets the pattern VM step budget stored on the
// interpreter (spec.md §9's "hard step-counter budget"). Pattern matching
// does not read the stored value: it always runs with
// pattern.DefaultStepBudget.
func WithPatternStepBudget(n int) Option {
	return func(c *engineConfig) { c.patternBudget = n }
}

// WithRandomSeed seeds stdlib's random module for reproducible runs.
func WithRandomSeed(seed uint64) Option {
	return func(c *engineConfig) { c.seed = seed }
}

// WithLogger supplies a zap logger; the diagnostics Reporter writes a
// debug-level line through it for each report. The interpreter is given
// the logger but logs nothing through it. Defaults to a no-op logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *engineConfig) { c.log = log }
}

// New builds an Engine and registers the full stdlib into its global
// environment.
func New(opts ...Option) (*Engine, error) {
	cfg := engineConfig{typeCheck: true, out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	in := interp.New(interp.Options{
		Stdout:            cfg.out,
		PatternStepBudget: cfg.patternBudget,
		Logger:            log,
	})
	stdlib.Register(in, cfg.seed)
	return &Engine{
		typeCheck: cfg.typeCheck,
		log:       log,
		registry:  diagnostics.NewRegistry(),
		interp:    in,
	}, nil
}

// SetOutput redirects `display` output for subsequent Run/Eval calls.
func (e *Engine) SetOutput(w io.Writer) {
	e.interp.SetOutput(w)
}

// RegisterNative installs a native function into the engine's global
// environment, the embedder-facing half of spec.md §6's registration
// protocol (the same call stdlib's register* functions make).
func (e *Engine) RegisterNative(name string, fn func(args []value.Value) (value.Value, error)) {
	e.interp.RegisterNative(name, fn)
}

// Parse lexes and parses source into an AST without running semantic
// analysis or type checking. Parser errors are aggregated into a
// single error carrying the reporter's rendered diagnostics.
func (e *Engine) Parse(source string) (*ast.Program, error) {
	prog, reporter, _ := e.parse(source, "<input>")
	if reporter.HasErrors() {
		return nil, diagnosticsError(reporter)
	}
	return prog, nil
}

// Compile parses source and, unless WithTypeCheck(false) was set, runs
// semantic analysis and structural type checking over the result.
// Returns a *ast.Program ready for Run.
func (e *Engine) Compile(source string) (*ast.Program, error) {
	prog, reporter, fileID := e.parse(source, "<input>")
	if reporter.HasErrors() {
		return nil, diagnosticsError(reporter)
	}
	if e.typeCheck {
		analyzer := semantic.New(fileID, reporter)
		analyzer.Analyze(prog)
		if reporter.HasErrors() {
			return nil, diagnosticsError(reporter)
		}
		checker := types.NewChecker(fileID, reporter)
		checker.Check(prog)
		if reporter.HasErrors() {
			return nil, diagnosticsError(reporter)
		}
	}
	return prog, nil
}

func (e *Engine) parse(source, name string) (*ast.Program, *diagnostics.Reporter, diagnostics.FileID) {
	fileID := e.registry.Register(name, source)
	reporter := diagnostics.NewReporter(e.registry, e.log)
	tokens := lexer.Lex(source)
	prog := parser.Parse(tokens, fileID, reporter)
	return prog, reporter, fileID
}

// Run executes an already-Compiled program against the engine's
// persistent global environment and stdlib registration.
func (e *Engine) Run(prog *ast.Program) error {
	return e.interp.Run(prog)
}

// Eval compiles and runs source in one step, the common case for
// one-shot scripts and inline snippets.
func (e *Engine) Eval(source string) error {
	prog, err := e.Compile(source)
	if err != nil {
		return err
	}
	return e.Run(prog)
}

func diagnosticsError(r *diagnostics.Reporter) error {
	return fmt.Errorf("%s", r.RenderAll(false))
}
