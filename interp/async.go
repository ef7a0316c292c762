package interp

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wfl-lang/wfl/ast"
	"github.com/wfl-lang/wfl/internal/ioloop"
	"github.com/wfl-lang/wfl/value"
)

// execHTTPGet issues a blocking GET through the event loop so the call
// is cancellable the same way `wait for` is (spec.md §5 "network I/O
// suspends the running task").
func (in *Interpreter) execHTTPGet(s *ast.HTTPGetStatement, env *value.Environment) signal {
	urlV, err := in.evaluate(s.URL, env)
	if err != nil {
		return errSignal(err)
	}
	resp, rerr := ioloop.Run(in.Loop, func(ctx context.Context) (*value.Response, error) {
		req, nerr := http.NewRequestWithContext(ctx, http.MethodGet, urlV.String(), nil)
		if nerr != nil {
			return nil, nerr
		}
		return doHTTP(req)
	})
	if rerr != nil {
		return errSignal(runtimeErrorf("network", "%v", rerr))
	}
	env.Define(s.Into, resp)
	return noSignal
}

// execHTTPPost issues a blocking POST through the event loop.
func (in *Interpreter) execHTTPPost(s *ast.HTTPPostStatement, env *value.Environment) signal {
	urlV, err := in.evaluate(s.URL, env)
	if err != nil {
		return errSignal(err)
	}
	bodyV, err := in.evaluate(s.Body, env)
	if err != nil {
		return errSignal(err)
	}
	resp, rerr := ioloop.Run(in.Loop, func(ctx context.Context) (*value.Response, error) {
		req, nerr := http.NewRequestWithContext(ctx, http.MethodPost, urlV.String(), strings.NewReader(bodyV.String()))
		if nerr != nil {
			return nil, nerr
		}
		return doHTTP(req)
	})
	if rerr != nil {
		return errSignal(runtimeErrorf("network", "%v", rerr))
	}
	env.Define(s.Into, resp)
	return noSignal
}

func doHTTP(req *http.Request) (*value.Response, error) {
	httpResp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	headers := make(map[string]string, len(httpResp.Header))
	for k := range httpResp.Header {
		headers[k] = httpResp.Header.Get(k)
	}
	return &value.Response{Status: httpResp.StatusCode, Headers: headers, Body: string(body)}, nil
}

// execListen opens a chi router behind a handle-table-tracked
// *http.Server on Port (spec.md's DOMAIN STACK: "the WFL `listen`
// statement opens a chi router on a handle-table-tracked *http.Server").
// Every inbound request is wrapped as a *value.Request and pushed onto a
// buffered channel; the handling goroutine then blocks on a per-request
// done channel until `respond` delivers a reply, so the HTTP exchange
// stays open across the `wait for request` / `respond` pair.
func (in *Interpreter) execListen(s *ast.ListenStatement, env *value.Environment) signal {
	portV, err := in.evaluate(s.Port, env)
	if err != nil {
		return errSignal(err)
	}
	port, ok := portV.(value.Number)
	if !ok {
		return errSignal(runtimeErrorf("type", "listen requires a numeric port"))
	}
	ln, lerr := net.Listen("tcp", ":"+strconv.Itoa(int(port)))
	if lerr != nil {
		return errSignal(runtimeErrorf("network", "%v", lerr))
	}
	requests := make(chan *value.Request, 16)
	done := make(chan struct{})

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"*"},
	}))
	var h *value.Handle
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		headers := make(map[string]string, len(r.Header))
		for k := range r.Header {
			headers[k] = r.Header.Get(k)
		}
		req := value.NewRequest(r.Method, r.URL.Path, string(body), headers, h)
		waitDone := make(chan struct{})
		pendingResponses.store(req, &pendingResponse{w: w, done: waitDone})
		select {
		case requests <- req:
		case <-done:
			pendingResponses.delete(req)
			return
		}
		select {
		case <-waitDone:
		case <-done:
		}
	})

	server := &http.Server{Handler: router}
	h = in.Handles.put("server", &resource{server: server, requests: requests, done: done})
	go server.Serve(ln)
	env.Define(s.HandleName, h)
	return noSignal
}

// execWaitForRequest blocks (through the event loop) for the next
// request on Listener's channel.
func (in *Interpreter) execWaitForRequest(s *ast.WaitForRequestStatement, env *value.Environment) signal {
	lv, err := in.evaluate(s.Listener, env)
	if err != nil {
		return errSignal(err)
	}
	h, ok := lv.(*value.Handle)
	if !ok {
		return errSignal(runtimeErrorf("type", "wait for request requires a listener handle"))
	}
	r, ok := in.Handles.get(h)
	if !ok || r.requests == nil {
		return errSignal(runtimeErrorf("network", "handle %s is not a listener", h.ID))
	}
	req, rerr := ioloop.Run(in.Loop, func(ctx context.Context) (*value.Request, error) {
		select {
		case req, ok := <-r.requests:
			if !ok {
				return nil, runtimeErrorf("network", "listener closed")
			}
			return req, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	if rerr != nil {
		return errSignal(runtimeErrorf("network", "%v", rerr))
	}
	env.Define(s.Into, req)
	return noSignal
}

// execRespond writes Status/Body through Request's captured
// http.ResponseWriter and releases the chi handler goroutine blocked on
// it.
func (in *Interpreter) execRespond(s *ast.RespondStatement, env *value.Environment) signal {
	rv, err := in.evaluate(s.Request, env)
	if err != nil {
		return errSignal(err)
	}
	req, ok := rv.(*value.Request)
	if !ok {
		return errSignal(runtimeErrorf("type", "respond requires a request"))
	}
	// `respond to <req> with <body>` carries no status; it answers 200.
	status := value.Number(200)
	if s.Status != nil {
		statusV, err := in.evaluate(s.Status, env)
		if err != nil {
			return errSignal(err)
		}
		n, ok := statusV.(value.Number)
		if !ok {
			return errSignal(runtimeErrorf("type", "respond status must be a number"))
		}
		status = n
	}
	bodyV, err := in.evaluate(s.Body, env)
	if err != nil {
		return errSignal(err)
	}
	pending, ok := pendingResponses.load(req)
	if !ok {
		return errSignal(runtimeErrorf("network", "request already responded to"))
	}
	pendingResponses.delete(req)
	pending.w.WriteHeader(int(status))
	_, werr := pending.w.Write([]byte(bodyV.String()))
	close(pending.done)
	if werr != nil {
		return errSignal(runtimeErrorf("network", "%v", werr))
	}
	return noSignal
}

func (in *Interpreter) execWaitFor(s *ast.WaitForStatement, env *value.Environment) signal {
	_, ierr := ioloop.Run(in.Loop, func(ctx context.Context) (struct{}, error) {
		sig := in.executeStatement(s.Inner, env)
		if sig.err != nil {
			return struct{}{}, sig.err
		}
		return struct{}{}, nil
	})
	if ierr != nil {
		if re, ok := ierr.(*RuntimeError); ok {
			return errSignal(re)
		}
		return errSignal(runtimeErrorf("io", "%v", ierr))
	}
	return noSignal
}
