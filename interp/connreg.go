package interp

import (
	"net/http"
	"sync"

	"github.com/wfl-lang/wfl/value"
)

// pendingResponse is what respond needs to finish an in-flight chi
// handler: the ResponseWriter it must write through, and a channel that
// unblocks the handler goroutine once the write is done so chi can
// close out the HTTP exchange.
type pendingResponse struct {
	w    http.ResponseWriter
	done chan struct{}
}

// requestWriters maps each in-flight *value.Request to the chi handler
// goroutine waiting to finish it; respond looks a request up here rather
// than value.Request carrying a non-data ResponseWriter field (spec.md
// §3 keeps Request a plain data value).
type requestWriters struct {
	mu  sync.Mutex
	byR map[*value.Request]*pendingResponse
}

var pendingResponses = &requestWriters{byR: make(map[*value.Request]*pendingResponse)}

func (r *requestWriters) store(req *value.Request, p *pendingResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byR[req] = p
}

func (r *requestWriters) load(req *value.Request) (*pendingResponse, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byR[req]
	return p, ok
}

func (r *requestWriters) delete(req *value.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byR, req)
}
