package carenest

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/carenest/carenest-go/internal/api"
	"github.com/carenest/carenest-go/internal/credstore"
	"github.com/carenest/carenest-go/internal/types"
)

// SessionState is the lifecycle position of the client session.
type SessionState int

const (
	// SessionUnknown: before the startup credential check has run.
	SessionUnknown SessionState = iota
	// SessionChecking: a persisted credential is being validated.
	SessionChecking
	// SessionAuthenticated: a valid credential is held and the identity fetched.
	SessionAuthenticated
	// SessionAnonymous: no usable credential.
	SessionAnonymous
)

func (s SessionState) String() string {
	switch s {
	case SessionChecking:
		return "checking"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of session state. Version increases on
// every mutation, so a caller holding a stale snapshot can detect it.
type Session struct {
	State         SessionState
	Identity      *User
	Role          Role
	Authenticated bool
	Version       uint64
}

// sessionState is the single writable session object. All writes go through
// set(), under the mutex; the lock is never held across a network call.
type sessionState struct {
	mu      sync.Mutex
	state   SessionState
	user    *types.User
	role    Role
	version uint64
}

func (s *sessionState) set(state SessionState, user *types.User, role Role) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.role = role
	s.version++
	s.mu.Unlock()
}

func (s *sessionState) snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{
		State:         s.state,
		Identity:      s.user,
		Role:          s.role,
		Authenticated: s.state == SessionAuthenticated,
		Version:       s.version,
	}
}

// Session returns the current session snapshot.
func (c *Client) Session() Session { return c.session.snapshot() }

// CheckAuth runs the startup credential validation: a persisted access
// credential is exchanged for the current identity. On success the session
// becomes authenticated; on any failure the persisted pair is cleared and the
// session becomes anonymous. The resulting snapshot is returned.
func (c *Client) CheckAuth(ctx context.Context) Session {
	creds, err := c.creds.Load()
	if err != nil || creds.Empty() {
		if err != nil {
			log.Warn().Err(err).Msg("credential store unreadable, starting anonymous")
		}
		c.session.set(SessionAnonymous, nil, "")
		return c.session.snapshot()
	}

	c.session.set(SessionChecking, nil, "")
	user, err := api.CurrentUser(ctx, c.http, c.baseURL)
	if err != nil {
		log.Debug().Err(err).Msg("startup credential check failed")
		_ = c.creds.Clear()
		c.session.set(SessionAnonymous, nil, "")
		return c.session.snapshot()
	}

	c.session.set(SessionAuthenticated, user, c.deriveRole(user))
	return c.session.snapshot()
}

// Login exchanges credentials for a session. On success the credential pair
// is persisted, the identity fetched, and the navigator pointed at the
// role's dashboard. On failure the session stays anonymous and the
// server-reported error is returned unmodified.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := api.Login(ctx, c.http, c.baseURL, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		c.session.set(SessionAnonymous, nil, "")
		return err
	}

	if err := c.creds.Save(credstore.Credentials{
		AccessToken:  resp.AccessCredential(),
		RefreshToken: resp.Refresh,
	}); err != nil {
		c.session.set(SessionAnonymous, nil, "")
		return err
	}

	user, err := api.CurrentUser(ctx, c.http, c.baseURL)
	if err != nil {
		_ = c.creds.Clear()
		c.session.set(SessionAnonymous, nil, "")
		return err
	}

	role := c.deriveRole(user)
	c.session.set(SessionAuthenticated, user, role)
	c.nav.Navigate(DashboardRoute(role))
	return nil
}

// Register creates an account and immediately logs in with the same
// credentials. Registration is complete only when the auto-login succeeds;
// a failure at either stage leaves no session behind.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := api.Register(ctx, c.http, c.baseURL, req); err != nil {
		return err
	}
	return c.Login(ctx, req.Email, req.Password1)
}

// Logout performs best-effort server-side invalidation, then unconditionally
// clears local credentials, drops to anonymous, and navigates to the public
// entry point. Server failures are logged, never surfaced.
func (c *Client) Logout(ctx context.Context) {
	if err := api.Logout(ctx, c.http, c.baseURL); err != nil {
		log.Warn().Err(err).Msg("server-side logout failed")
	}
	_ = c.creds.Clear()
	c.session.set(SessionAnonymous, nil, "")
	c.nav.Navigate(RouteHome)
}

// handleUnauthorized is invoked by the transport layer on any 401, before
// the failing response reaches its caller: credentials are gone and the
// session is anonymous by the time the caller sees the error.
func (c *Client) handleUnauthorized() {
	_ = c.creds.Clear()
	c.session.set(SessionAnonymous, nil, "")
	c.nav.Navigate(RouteLogin)
}

// deriveRole maps the identity's declared user type to a role, applying the
// configured fallback when the backend omits it.
func (c *Client) deriveRole(u *types.User) Role {
	if u == nil || u.UserType == "" {
		return c.defaultRole
	}
	return u.UserType
}
