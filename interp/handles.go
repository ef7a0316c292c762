package interp

import (
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/wfl-lang/wfl/value"
)

// resource is whatever a Handle's opaque ID actually refers to: an open
// file, a TCP listener, or an in-flight HTTP request/response pair —
// the concrete union the interpreter's network/filesystem statements
// stash here and look back up by ID (spec.md §3 "Lifecycles", §5
// "Resource ownership").
type resource struct {
	file     *os.File
	listener net.Listener
	server   *http.Server
	requests chan *value.Request
	done     chan struct{}
}

// HandleTable is the interpreter's process-wide table of open resources,
// keyed by a uuid-minted ID (spec.md §3, §5).
type HandleTable struct {
	mu    sync.Mutex
	table map[string]*resource
}

func NewHandleTable() *HandleTable {
	return &HandleTable{table: make(map[string]*resource)}
}

func (t *HandleTable) put(kind string, r *resource) *value.Handle {
	id := uuid.NewString()
	t.mu.Lock()
	t.table[id] = r
	t.mu.Unlock()
	return &value.Handle{ID: id, ResourceKind: kind}
}

func (t *HandleTable) get(h *value.Handle) (*resource, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.table[h.ID]
	return r, ok
}

func (t *HandleTable) release(h *value.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.table, h.ID)
}

// Close releases whatever resource h refers to: closes the file,
// listener, or server, and is a no-op if the handle is already closed.
func (t *HandleTable) Close(h *value.Handle) error {
	r, ok := t.get(h)
	if !ok {
		return nil
	}
	t.release(h)
	switch {
	case r.file != nil:
		return r.file.Close()
	case r.server != nil:
		return r.server.Close()
	case r.listener != nil:
		return r.listener.Close()
	}
	return nil
}
