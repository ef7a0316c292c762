package value

import (
	"fmt"

	"github.com/wfl-lang/wfl/ast"
)

// ContainerMethod is a bound method reference: a Function paired with the
// receiver it was resolved against, so it can be passed around and
// invoked as a first-class value rather than only as the immediate
// target of a call expression (spec.md §3's `ContainerMethod` variant).
type ContainerMethod struct {
	Receiver *ContainerInstance
	Fn       *Function
}

func (*ContainerMethod) Kind() Kind { return KindContainerMethod }
func (m *ContainerMethod) String() string {
	return fmt.Sprintf("<method %s.%s>", m.Receiver.Definition.Name, m.Fn.Name)
}

// EventHandler is one registered `on <event> as <param>: ...` block,
// closing over the environment it was declared in exactly like Function.
type EventHandler struct {
	ParamName string
	Body      []ast.Statement
	Env       WeakRef
}

// ContainerEvent is the runtime value for a declared event: its formal
// parameters plus every handler registered against it so far. Handlers
// accumulate as `on <event>` statements execute; `trigger` walks the
// list in registration order (spec.md §3 "Event" — "a named message
// emitted by a container; handlers are registered by name").
type ContainerEvent struct {
	Name     string
	Params   []ast.Param
	Handlers []*EventHandler
}

func NewContainerEvent(name string, params []ast.Param) *ContainerEvent {
	return &ContainerEvent{Name: name, Params: params}
}

func (*ContainerEvent) Kind() Kind { return KindContainerEvent }
func (e *ContainerEvent) String() string {
	return fmt.Sprintf("<event %s>", e.Name)
}

// Register appends handler to e's handler list.
func (e *ContainerEvent) Register(handler *EventHandler) {
	e.Handlers = append(e.Handlers, handler)
}
