package ast

import (
	"fmt"
	"strings"

	"github.com/wfl-lang/wfl/token"
)

// VarDeclStatement declares a variable or constant (`store`/`create
// constant`).
type VarDeclStatement struct {
	Token      token.Token
	Name       string
	TypeName   string // optional declared type; "" means inferred
	Value      Expression
	IsConstant bool
}

func (v *VarDeclStatement) statementNode()      {}
func (v *VarDeclStatement) TokenLiteral() string { return v.Token.Literal }
func (v *VarDeclStatement) Pos() token.Position  { return v.Token.Pos }
func (v *VarDeclStatement) String() string {
	kw := "store"
	if v.IsConstant {
		kw = "create constant"
	}
	return fmt.Sprintf("%s %s as %s", kw, v.Name, v.Value)
}

// AssignmentStatement mutates an existing variable, property, or index
// (`change <target> to <value>`).
type AssignmentStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (a *AssignmentStatement) statementNode()      {}
func (a *AssignmentStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentStatement) Pos() token.Position  { return a.Token.Pos }
func (a *AssignmentStatement) String() string {
	return fmt.Sprintf("change %s to %s", a.Target, a.Value)
}

// IfStatement covers both the single-line `check if ...: ... [otherwise:
// ...]` and block forms ending in `end check`.
type IfStatement struct {
	Token      token.Token
	Condition  Expression
	Then       []Statement
	Else       []Statement
	SingleLine bool
}

func (i *IfStatement) statementNode()      {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "check if %s:\n", i.Condition)
	for _, s := range i.Then {
		sb.WriteString("  " + s.String() + "\n")
	}
	if i.Else != nil {
		sb.WriteString("otherwise:\n")
		for _, s := range i.Else {
			sb.WriteString("  " + s.String() + "\n")
		}
	}
	return sb.String()
}

// ForeachStatement is `for each <item> in <collection>: ... end for`.
type ForeachStatement struct {
	Token      token.Token
	ItemName   string
	Collection Expression
	Body       []Statement
}

func (f *ForeachStatement) statementNode()      {}
func (f *ForeachStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForeachStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForeachStatement) String() string {
	return fmt.Sprintf("for each %s in %s:\n%s", f.ItemName, f.Collection, blockString(f.Body))
}

// CountStatement is `count from <start> to <end> [by <step>]: ... end
// count`. CounterName defaults to "count" when the source omits a name.
type CountStatement struct {
	Token       token.Token
	CounterName string
	Start       Expression
	End         Expression
	Step        Expression // nil means step 1
	Body        []Statement
}

func (c *CountStatement) statementNode()      {}
func (c *CountStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CountStatement) Pos() token.Position  { return c.Token.Pos }
func (c *CountStatement) String() string {
	return fmt.Sprintf("count from %s to %s:\n%s", c.Start, c.End, blockString(c.Body))
}

// WhileStatement is a pre-condition loop: `while <cond>: ... end while`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
}

func (w *WhileStatement) statementNode()      {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return fmt.Sprintf("while %s:\n%s", w.Condition, blockString(w.Body))
}

// RepeatWhileStatement is a post-condition loop: the body runs once, then
// Condition is checked after each iteration and the loop continues while
// it holds true (`repeat while <cond>: ... end repeat`).
type RepeatWhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
}

func (r *RepeatWhileStatement) statementNode()      {}
func (r *RepeatWhileStatement) TokenLiteral() string { return r.Token.Literal }
func (r *RepeatWhileStatement) Pos() token.Position  { return r.Token.Pos }
func (r *RepeatWhileStatement) String() string {
	return fmt.Sprintf("repeat while %s:\n%s", r.Condition, blockString(r.Body))
}

// RepeatUntilStatement is a post-condition loop: the body runs once, then
// Condition is checked after each iteration and the loop continues until
// it holds true (`repeat until <cond>: ... end repeat`).
type RepeatUntilStatement struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
}

func (r *RepeatUntilStatement) statementNode()      {}
func (r *RepeatUntilStatement) TokenLiteral() string { return r.Token.Literal }
func (r *RepeatUntilStatement) Pos() token.Position  { return r.Token.Pos }
func (r *RepeatUntilStatement) String() string {
	return fmt.Sprintf("repeat until %s:\n%s", r.Condition, blockString(r.Body))
}

// ForeverStatement is an unconditional loop, exited only via `break` or
// `exit` (`forever: ... end forever`).
type ForeverStatement struct {
	Token token.Token
	Body  []Statement
}

func (f *ForeverStatement) statementNode()      {}
func (f *ForeverStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForeverStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForeverStatement) String() string {
	return fmt.Sprintf("forever:\n%s", blockString(f.Body))
}

// Param is one action/method parameter.
type Param struct {
	Name     string
	TypeName string
}

// ActionDefStatement declares a named action (first-class function),
// `define action <name> [needs <params>] [gives back <type>]: ... end
// action`.
type ActionDefStatement struct {
	Token      token.Token
	Name       string
	Params     []Param
	ReturnType string // "" means Nothing
	Body       []Statement
}

func (a *ActionDefStatement) statementNode()      {}
func (a *ActionDefStatement) TokenLiteral() string { return a.Token.Literal }
func (a *ActionDefStatement) Pos() token.Position  { return a.Token.Pos }
func (a *ActionDefStatement) String() string {
	names := make([]string, len(a.Params))
	for i, p := range a.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("define action %s needs %s:\n%s", a.Name, strings.Join(names, ", "), blockString(a.Body))
}

// ReturnStatement returns a value from the enclosing action/method.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil means Nothing
}

func (r *ReturnStatement) statementNode()      {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", r.Value)
}

// BreakStatement exits the nearest enclosing loop.
type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) statementNode()      {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string       { return "break" }

// ContinueStatement skips to the next iteration of the nearest enclosing
// loop.
type ContinueStatement struct{ Token token.Token }

func (c *ContinueStatement) statementNode()      {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string       { return "continue" }

// ExitStatement terminates the whole program immediately.
type ExitStatement struct{ Token token.Token }

func (e *ExitStatement) statementNode()      {}
func (e *ExitStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExitStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExitStatement) String() string       { return "exit" }

// DisplayStatement prints a value to stdout.
type DisplayStatement struct {
	Token token.Token
	Value Expression
}

func (d *DisplayStatement) statementNode()      {}
func (d *DisplayStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DisplayStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DisplayStatement) String() string       { return fmt.Sprintf("display %s", d.Value) }

// ExpressionStatement wraps an expression evaluated purely for effect
// (e.g. a bare call expression, or the lowered form of `push`).
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (e *ExpressionStatement) statementNode()      {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string       { return e.Expr.String() }

// --- File I/O ---------------------------------------------------------

// OpenFileStatement opens Path in Mode ("read"/"write"/"append") and
// binds the resulting handle to HandleName.
type OpenFileStatement struct {
	Token      token.Token
	Path       Expression
	Mode       string
	HandleName string
}

func (o *OpenFileStatement) statementNode()      {}
func (o *OpenFileStatement) TokenLiteral() string { return o.Token.Literal }
func (o *OpenFileStatement) Pos() token.Position  { return o.Token.Pos }
func (o *OpenFileStatement) String() string {
	return fmt.Sprintf("open %s as %s into %s", o.Path, o.Mode, o.HandleName)
}

// ReadFileStatement reads from Handle and binds the content into Into.
type ReadFileStatement struct {
	Token  token.Token
	Handle Expression
	Into   string
}

func (r *ReadFileStatement) statementNode()      {}
func (r *ReadFileStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReadFileStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReadFileStatement) String() string {
	return fmt.Sprintf("read %s into %s", r.Handle, r.Into)
}

// WriteFileStatement writes Content to Handle.
type WriteFileStatement struct {
	Token   token.Token
	Handle  Expression
	Content Expression
}

func (w *WriteFileStatement) statementNode()      {}
func (w *WriteFileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WriteFileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WriteFileStatement) String() string {
	return fmt.Sprintf("write %s to %s", w.Content, w.Handle)
}

// CloseStatement releases an open handle (file, listener, connection).
type CloseStatement struct {
	Token  token.Token
	Handle Expression
}

func (c *CloseStatement) statementNode()      {}
func (c *CloseStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CloseStatement) Pos() token.Position  { return c.Token.Pos }
func (c *CloseStatement) String() string       { return fmt.Sprintf("close %s", c.Handle) }

// CreateDirectoryStatement makes a directory at Path.
type CreateDirectoryStatement struct {
	Token token.Token
	Path  Expression
}

func (c *CreateDirectoryStatement) statementNode()      {}
func (c *CreateDirectoryStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CreateDirectoryStatement) Pos() token.Position  { return c.Token.Pos }
func (c *CreateDirectoryStatement) String() string {
	return fmt.Sprintf("create directory %s", c.Path)
}

// DeleteStatement removes a file or directory at Path.
type DeleteStatement struct {
	Token token.Token
	Path  Expression
}

func (d *DeleteStatement) statementNode()      {}
func (d *DeleteStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DeleteStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DeleteStatement) String() string       { return fmt.Sprintf("delete %s", d.Path) }

// --- Network ------------------------------------------------------------

// HTTPGetStatement issues a GET request, binding the response into Into.
type HTTPGetStatement struct {
	Token token.Token
	URL   Expression
	Into  string
}

func (h *HTTPGetStatement) statementNode()      {}
func (h *HTTPGetStatement) TokenLiteral() string { return h.Token.Literal }
func (h *HTTPGetStatement) Pos() token.Position  { return h.Token.Pos }
func (h *HTTPGetStatement) String() string       { return fmt.Sprintf("get %s into %s", h.URL, h.Into) }

// HTTPPostStatement issues a POST request with Body, binding the response
// into Into.
type HTTPPostStatement struct {
	Token token.Token
	URL   Expression
	Body  Expression
	Into  string
}

func (h *HTTPPostStatement) statementNode()      {}
func (h *HTTPPostStatement) TokenLiteral() string { return h.Token.Literal }
func (h *HTTPPostStatement) Pos() token.Position  { return h.Token.Pos }
func (h *HTTPPostStatement) String() string {
	return fmt.Sprintf("post %s to %s into %s", h.Body, h.URL, h.Into)
}

// ListenStatement opens a TCP/HTTP listener on Port.
type ListenStatement struct {
	Token      token.Token
	Port       Expression
	HandleName string
}

func (l *ListenStatement) statementNode()      {}
func (l *ListenStatement) TokenLiteral() string { return l.Token.Literal }
func (l *ListenStatement) Pos() token.Position  { return l.Token.Pos }
func (l *ListenStatement) String() string {
	return fmt.Sprintf("listen on %s into %s", l.Port, l.HandleName)
}

// WaitForRequestStatement suspends until a request arrives on Listener,
// binding it into Into. Valid only as the sole statement of a WaitFor
// scope.
type WaitForRequestStatement struct {
	Token    token.Token
	Listener Expression
	Into     string
}

func (w *WaitForRequestStatement) statementNode()      {}
func (w *WaitForRequestStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WaitForRequestStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WaitForRequestStatement) String() string {
	return fmt.Sprintf("wait for request on %s into %s", w.Listener, w.Into)
}

// RespondStatement writes a response to an in-flight Request.
type RespondStatement struct {
	Token   token.Token
	Request Expression
	Status  Expression
	Body    Expression
}

func (r *RespondStatement) statementNode()      {}
func (r *RespondStatement) TokenLiteral() string { return r.Token.Literal }
func (r *RespondStatement) Pos() token.Position  { return r.Token.Pos }
func (r *RespondStatement) String() string {
	return fmt.Sprintf("respond to %s with %s", r.Request, r.Body)
}

// --- Async --------------------------------------------------------------

// WaitForStatement opens an async scope around a single suspendable I/O
// statement (spec.md §4.7 "wait for").
type WaitForStatement struct {
	Token token.Token
	Inner Statement
}

func (w *WaitForStatement) statementNode()      {}
func (w *WaitForStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WaitForStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WaitForStatement) String() string {
	return fmt.Sprintf("wait for:\n  %s", w.Inner)
}

// WaitForDurationStatement suspends the task for a fixed duration.
type WaitForDurationStatement struct {
	Token    token.Token
	Amount   Expression
	Unit     string // "ms", "seconds", "minutes"
}

func (w *WaitForDurationStatement) statementNode()      {}
func (w *WaitForDurationStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WaitForDurationStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WaitForDurationStatement) String() string {
	return fmt.Sprintf("wait for duration %s %s", w.Amount, w.Unit)
}

// --- Exceptions -----------------------------------------------------

// WhenClause matches errors of Kind ("general" matches any), binding the
// message to Name.
type WhenClause struct {
	Kind string
	Name string
	Body []Statement
}

// TryStatement is `try: ... when <kind> as <name>: ... [otherwise: ...]
// end try`.
type TryStatement struct {
	Token      token.Token
	Body       []Statement
	WhenClauses []WhenClause
	Otherwise  []Statement
}

func (t *TryStatement) statementNode()      {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) Pos() token.Position  { return t.Token.Pos }
func (t *TryStatement) String() string {
	var sb strings.Builder
	sb.WriteString("try:\n")
	sb.WriteString(blockString(t.Body))
	for _, w := range t.WhenClauses {
		fmt.Fprintf(&sb, "when %s as %s:\n%s", w.Kind, w.Name, blockString(w.Body))
	}
	if t.Otherwise != nil {
		sb.WriteString("otherwise:\n")
		sb.WriteString(blockString(t.Otherwise))
	}
	return sb.String()
}

// --- Containers / interfaces -------------------------------------------

// PropertyDecl is one container property declaration.
type PropertyDecl struct {
	Name     string
	TypeName string
	Default  Expression // nil means language default (Nothing)
	Static   bool
}

// MethodDecl is one container method declaration.
type MethodDecl struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       []Statement
	Static     bool
}

// ContainerDefStatement declares a container (class), `define container
// <name> [extends <parent>] [implements <iface>, ...]: ... end
// container`.
type ContainerDefStatement struct {
	Token      token.Token
	Name       string
	Extends    string
	Implements []string
	Properties []PropertyDecl
	Methods    []MethodDecl
}

func (c *ContainerDefStatement) statementNode()      {}
func (c *ContainerDefStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContainerDefStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ContainerDefStatement) String() string {
	return fmt.Sprintf("define container %s extends %s", c.Name, c.Extends)
}

// MethodSignature is one interface method requirement (no body).
type MethodSignature struct {
	Name       string
	Params     []Param
	ReturnType string
}

// InterfaceDefStatement declares an interface, `define interface <name>:
// ... end interface`.
type InterfaceDefStatement struct {
	Token   token.Token
	Name    string
	Methods []MethodSignature
}

func (i *InterfaceDefStatement) statementNode()      {}
func (i *InterfaceDefStatement) TokenLiteral() string { return i.Token.Literal }
func (i *InterfaceDefStatement) Pos() token.Position  { return i.Token.Pos }
func (i *InterfaceDefStatement) String() string {
	return fmt.Sprintf("define interface %s", i.Name)
}

// --- Events --------------------------------------------------------------

// EventDefStatement declares a named event, `define event <name> [needs
// <params>]`.
type EventDefStatement struct {
	Token  token.Token
	Name   string
	Params []Param
}

func (e *EventDefStatement) statementNode()      {}
func (e *EventDefStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EventDefStatement) Pos() token.Position  { return e.Token.Pos }
func (e *EventDefStatement) String() string       { return fmt.Sprintf("define event %s", e.Name) }

// TriggerStatement fires Name with Args.
type TriggerStatement struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (t *TriggerStatement) statementNode()      {}
func (t *TriggerStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TriggerStatement) Pos() token.Position  { return t.Token.Pos }
func (t *TriggerStatement) String() string {
	return fmt.Sprintf("trigger %s with %s", t.Name, joinNodes(t.Args, ", "))
}

// HandlerStatement registers Body to run when Event fires, binding the
// event's payload to ParamName (`on <event> as <paramName>: ... end
// event`).
type HandlerStatement struct {
	Token     token.Token
	Event     string
	ParamName string
	Body      []Statement
}

func (h *HandlerStatement) statementNode()      {}
func (h *HandlerStatement) TokenLiteral() string { return h.Token.Literal }
func (h *HandlerStatement) Pos() token.Position  { return h.Token.Pos }
func (h *HandlerStatement) String() string {
	return fmt.Sprintf("on %s as %s:\n%s", h.Event, h.ParamName, blockString(h.Body))
}

// --- Patterns -------------------------------------------------------

// PatternDefStatement names a compiled pattern, `define pattern <name> as
// "<dsl source>"`.
type PatternDefStatement struct {
	Token  token.Token
	Name   string
	Source string
}

func (p *PatternDefStatement) statementNode()      {}
func (p *PatternDefStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PatternDefStatement) Pos() token.Position  { return p.Token.Pos }
func (p *PatternDefStatement) String() string {
	return fmt.Sprintf("define pattern %s as %q", p.Name, p.Source)
}

// --- List operations --------------------------------------------------

// AddStatement appends Value to the list at Into (`add <value> to
// <list>`). `push <value> into <list>` lowers to a call of the native
// `push` function during parsing instead of this node (Open Question
// decision #2 in DESIGN.md).
type AddStatement struct {
	Token token.Token
	Value Expression
	Into  Expression
}

func (a *AddStatement) statementNode()      {}
func (a *AddStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AddStatement) Pos() token.Position  { return a.Token.Pos }
func (a *AddStatement) String() string       { return fmt.Sprintf("add %s to %s", a.Value, a.Into) }

// RemoveStatement removes the first occurrence of Value from From.
type RemoveStatement struct {
	Token token.Token
	Value Expression
	From  Expression
}

func (r *RemoveStatement) statementNode()      {}
func (r *RemoveStatement) TokenLiteral() string { return r.Token.Literal }
func (r *RemoveStatement) Pos() token.Position  { return r.Token.Pos }
func (r *RemoveStatement) String() string {
	return fmt.Sprintf("remove %s from %s", r.Value, r.From)
}

// ClearStatement empties List.
type ClearStatement struct {
	Token token.Token
	List  Expression
}

func (c *ClearStatement) statementNode()      {}
func (c *ClearStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ClearStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ClearStatement) String() string       { return fmt.Sprintf("clear %s", c.List) }

func blockString(stmts []Statement) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString("  " + s.String() + "\n")
	}
	return sb.String()
}
