package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wfl-lang/wfl/ast"
)

// Kind tags a Value's concrete variant, for fast type switches in the
// interpreter and stdlib without reflection.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindBoolean
	KindNothing
	KindList
	KindMap
	KindFunction
	KindNativeFunction
	KindFuture
	KindPattern
	KindDateTime
	KindBinary
	KindContainerDefinition
	KindContainerInstance
	KindContainerMethod
	KindContainerEvent
	KindInterfaceDefinition
	KindRequest
	KindResponse
	KindHandle
)

// Value is implemented by every WFL runtime value variant.
type Value interface {
	Kind() Kind
	String() string
}

// Number is WFL's single numeric type, backed by float64 (spec.md §3).
type Number float64

func (Number) Kind() Kind      { return KindNumber }
func (n Number) String() string {
	if n == Number(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Text is a WFL string value.
type Text string

func (Text) Kind() Kind        { return KindText }
func (t Text) String() string  { return string(t) }

// Boolean is a WFL true/false value.
type Boolean bool

func (Boolean) Kind() Kind       { return KindBoolean }
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

// Nothing is the single absent-value instance (spec.md §3 "Nothing").
type Nothing struct{}

func (Nothing) Kind() Kind      { return KindNothing }
func (Nothing) String() string  { return "nothing" }

// NothingValue is the shared Nothing instance; every absent value in the
// interpreter is this exact value, so Kind()==KindNothing checks and
// equality checks agree.
var NothingValue = Nothing{}

// List is a mutable, ordered, reference-semantics collection.
type List struct {
	Elements []Value
}

func NewList(elems ...Value) *List { return &List{Elements: elems} }

func (*List) Kind() Kind { return KindList }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map is a mutable, reference-semantics string-keyed collection. Keys
// returns entries in insertion order; String displays them sorted by key.
type Map struct {
	entries map[string]Value
	order   []string
}

func NewMap() *Map { return &Map{entries: make(map[string]Value)} }

func (*Map) Kind() Kind { return KindMap }

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *Map) Set(key string, v Value) {
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = v
}

func (m *Map) Delete(key string) {
	if _, exists := m.entries[key]; !exists {
		return
	}
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Map) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Map) Len() int { return len(m.order) }

func (m *Map) String() string {
	keys := make([]string, len(m.order))
	copy(keys, m.order)
	sort.Strings(keys) // deterministic display order, independent of insertion
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, m.entries[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Function is a user-defined, first-class action or method value. Env is
// a weak back-reference to the scope the function closed over: it never
// keeps that scope alive by itself (see Environment.WeakRef).
type Function struct {
	Name   string
	Params []ast.Param
	Body   []ast.Statement
	Env    WeakRef
}

func (*Function) Kind() Kind { return KindFunction }
func (f *Function) String() string {
	if f.Name != "" {
		return fmt.Sprintf("<action %s>", f.Name)
	}
	return "<anonymous action>"
}

// NativeFunction wraps a Go-implemented stdlib function so it can be
// stored, passed, and invoked exactly like a user-defined Function.
type NativeFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*NativeFunction) Kind() Kind        { return KindNativeFunction }
func (n *NativeFunction) String() string  { return fmt.Sprintf("<native %s>", n.Name) }

// FutureState is a Future's lifecycle stage.
type FutureState int

const (
	FuturePending FutureState = iota
	FutureResolved
	FutureRejected
)

// Future represents the result of a suspendable operation (`wait for`,
// an HTTP request, a timer) that the event loop resolves asynchronously.
type Future struct {
	State  FutureState
	Result Value
	Err    error
}

func (*Future) Kind() Kind { return KindFuture }
func (f *Future) String() string {
	switch f.State {
	case FutureResolved:
		return fmt.Sprintf("<future resolved: %s>", f.Result)
	case FutureRejected:
		return fmt.Sprintf("<future rejected: %v>", f.Err)
	default:
		return "<future pending>"
	}
}

// Pattern wraps a compiled pattern program. Compiled is `any` (rather
// than a concrete *pattern.Program) so this package never imports
// `pattern`, which in turn never needs to import `value` — the pattern
// VM operates on plain strings and returns match results the interp
// package converts into List/Map values itself.
type Pattern struct {
	Source   string
	Compiled any
}

func (*Pattern) Kind() Kind       { return KindPattern }
func (p *Pattern) String() string { return fmt.Sprintf("<pattern %q>", p.Source) }

// DateTime wraps a concrete instant.
type DateTime struct {
	Time time.Time
}

func (DateTime) Kind() Kind      { return KindDateTime }
func (d DateTime) String() string { return d.Time.Format(time.RFC3339) }

// Binary is an opaque byte payload (file contents, a hash digest, a
// decoded base64 blob).
type Binary struct {
	Data []byte
}

func (*Binary) Kind() Kind        { return KindBinary }
func (b *Binary) String() string  { return fmt.Sprintf("<binary %d bytes>", len(b.Data)) }

// Handle is an opaque resource reference (open file, listener,
// in-flight connection) keyed by an ID minted by the interpreter's
// handle table.
type Handle struct {
	ID         string
	ResourceKind string // "file", "listener", "connection" — display/debug only
}

func (*Handle) Kind() Kind       { return KindHandle }
func (h *Handle) String() string { return fmt.Sprintf("<%s %s>", h.ResourceKind, h.ID) }
