package carenest

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/carenest/carenest-go/internal/credstore"
	"github.com/carenest/carenest-go/internal/syncqueue"
)

// navRec records every route the client navigates to.
type navRec struct {
	mu     sync.Mutex
	routes []Route
}

func (n *navRec) Navigate(r Route) {
	n.mu.Lock()
	n.routes = append(n.routes, r)
	n.mu.Unlock()
}

func (n *navRec) last() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func (n *navRec) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.routes)
}

// stubExec satisfies the executor interface without running anything.
type stubExec struct{ stops int }

func (s *stubExec) Submit(context.Context, string, syncqueue.Job) error { return nil }
func (s *stubExec) Stop()                                               { s.stops++ }

// newTestClient builds a client against srv with a recording navigator and
// an in-memory credential store.
func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) (*Client, *navRec) {
	t.Helper()
	nav := &navRec{}
	opts = append([]Option{
		WithNavigator(nav),
		withExecutor(&stubExec{}),
	}, opts...)
	c := New(srv.URL, opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c, nav
}

func seedCredentials(t *testing.T, c *Client, access string) {
	t.Helper()
	if err := c.creds.Save(credstore.Credentials{AccessToken: access, RefreshToken: "refresh"}); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}
}
