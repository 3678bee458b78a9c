package sandbox

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Fault replaces the next response to a matching request.
type Fault struct {
	Status int
	Detail string
	// Delay holds the response back; the request context still wins.
	Delay time.Duration
	// DropConnection aborts the response without writing anything.
	DropConnection bool
}

// Call is one request as the server received it.
type Call struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
}

type faults struct {
	mu      sync.Mutex
	pending map[string][]Fault
	calls   []Call
}

func newFaults() *faults {
	return &faults{pending: make(map[string][]Fault)}
}

func faultKey(method, path string) string {
	return method + " " + strings.TrimPrefix(path, APIPrefix)
}

// FailNext queues f for the next request to method and path. path is
// relative to the API prefix, e.g. "/projects".
func (s *Server) FailNext(method, path string, f Fault) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	key := faultKey(method, path)
	s.faults.pending[key] = append(s.faults.pending[key], f)
}

// Calls returns every request received so far, oldest first.
func (s *Server) Calls() []Call {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	return append([]Call(nil), s.faults.calls...)
}

// CallsTo returns the recorded requests to method and path.
func (s *Server) CallsTo(method, path string) []Call {
	key := faultKey(method, path)
	var out []Call
	for _, c := range s.Calls() {
		if faultKey(c.Method, c.Path) == key {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) ResetCalls() {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	s.faults.calls = nil
}

func (f *faults) take(r *http.Request) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{
		Method:        r.Method,
		Path:          strings.TrimPrefix(r.URL.Path, APIPrefix),
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
	})

	key := faultKey(r.Method, r.URL.Path)
	queue := f.pending[key]
	if len(queue) == 0 {
		return Fault{}, false
	}
	f.pending[key] = queue[1:]
	return queue[0], true
}

// injectFaults records every call and serves queued faults in place of the
// real handler.
func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fault, ok := s.faults.take(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if fault.Delay > 0 {
			select {
			case <-time.After(fault.Delay):
			case <-r.Context().Done():
				return
			}
		}
		if fault.DropConnection {
			panic(http.ErrAbortHandler)
		}
		if fault.Status == 0 {
			next.ServeHTTP(w, r)
			return
		}
		if fault.Detail == "" {
			w.WriteHeader(fault.Status)
			return
		}
		s.WriteError(w, fault.Status, fault.Detail)
	})
}
