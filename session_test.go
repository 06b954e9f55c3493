package carenest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// authBackend serves the login/user/logout endpoints with a configurable
// identity and failure modes.
type authBackend struct {
	userType    string
	loginStatus int
	loginBody   string
	userStatus  int
	logins      int
	registers   int
	logouts     int
}

func (b *authBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			b.logins++
			if b.loginStatus != 0 {
				w.WriteHeader(b.loginStatus)
				_, _ = w.Write([]byte(b.loginBody))
				return
			}
			_, _ = w.Write([]byte(`{"access":"acc-token","refresh":"ref-token"}`))
		case "/api/auth/registration/":
			b.registers++
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"pk":5}`))
		case "/api/auth/user/":
			if b.userStatus != 0 {
				w.WriteHeader(b.userStatus)
				return
			}
			user := map[string]any{"pk": 5, "email": "a@b.c"}
			if b.userType != "" {
				user["user_type"] = b.userType
			}
			_ = json.NewEncoder(w).Encode(user)
		case "/api/auth/logout/":
			b.logouts++
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestLogin_NavigatesByRole(t *testing.T) {
	t.Parallel()
	cases := []struct {
		userType string
		want     Route
	}{
		{"client", RouteClientDashboard},
		{"caregiver", RouteCaregiverDashboard},
		{"admin", RouteAdminDashboard},
		{"supervisor", RouteDashboard},
		{"", RouteClientDashboard}, // default role fallback
	}
	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("type=%q", tc.userType), func(t *testing.T) {
			t.Parallel()
			backend := &authBackend{userType: tc.userType}
			srv := httptest.NewServer(backend.handler())
			defer srv.Close()

			c, nav := newTestClient(t, srv)
			if err := c.Login(context.Background(), "a@b.c", "pw"); err != nil {
				t.Fatalf("login: %v", err)
			}
			s := c.Session()
			if !s.Authenticated || s.State != SessionAuthenticated {
				t.Fatalf("session = %+v", s)
			}
			if nav.last() != tc.want {
				t.Fatalf("navigated to %q, want %q", nav.last(), tc.want)
			}
			if c.accessCredential() != "acc-token" {
				t.Fatalf("credential = %q", c.accessCredential())
			}
		})
	}
}

func TestLogin_FailureLeavesAnonymous(t *testing.T) {
	t.Parallel()
	backend := &authBackend{loginStatus: 400, loginBody: `{"non_field_errors":["Unable to log in."]}`}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c, nav := newTestClient(t, srv)
	err := c.Login(context.Background(), "a@b.c", "bad")
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Field("non_field_errors") == "" {
		t.Fatalf("err = %v, want server payload unmodified", err)
	}
	if s := c.Session(); s.Authenticated || s.State != SessionAnonymous {
		t.Fatalf("session = %+v", s)
	}
	if nav.count() != 0 {
		t.Fatalf("unexpected navigation %v", nav.routes)
	}
	if c.accessCredential() != "" {
		t.Fatal("credentials must not be persisted on failed login")
	}
}

func TestLogin_IdentityFetchFailureClearsCredentials(t *testing.T) {
	t.Parallel()
	backend := &authBackend{userStatus: http.StatusInternalServerError}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	if err := c.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatal("expected error")
	}
	if c.accessCredential() != "" {
		t.Fatal("credentials must be cleared when the identity fetch fails")
	}
	if s := c.Session(); s.State != SessionAnonymous {
		t.Fatalf("session = %+v", s)
	}
}

func TestRegister_AutoLogin(t *testing.T) {
	t.Parallel()
	backend := &authBackend{userType: "caregiver"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c, nav := newTestClient(t, srv)
	req := RegisterRequest{Email: "a@b.c", Password1: "pw", Password2: "pw", UserType: RoleCaregiver, TermsAccepted: true, PrivacyPolicyAccepted: true}
	if err := c.Register(context.Background(), req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if backend.registers != 1 || backend.logins != 1 {
		t.Fatalf("registers=%d logins=%d", backend.registers, backend.logins)
	}
	if !c.Session().Authenticated || nav.last() != RouteCaregiverDashboard {
		t.Fatalf("session %+v, nav %q", c.Session(), nav.last())
	}
}

func TestRegister_LoginFailureMeansNoSession(t *testing.T) {
	t.Parallel()
	backend := &authBackend{loginStatus: 400, loginBody: `{"detail":"pending approval"}`}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	req := RegisterRequest{Email: "a@b.c", Password1: "pw", Password2: "pw"}
	if err := c.Register(context.Background(), req); err == nil {
		t.Fatal("expected error")
	}
	if backend.registers != 1 {
		t.Fatalf("registers = %d", backend.registers)
	}
	if c.Session().Authenticated {
		t.Fatal("no session may exist after failed auto-login")
	}
}

func TestLogout_ServerFailureStillClearsLocally(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, nav := newTestClient(t, srv)
	seedCredentials(t, c, "acc")
	c.session.set(SessionAuthenticated, nil, RoleClient)

	c.Logout(context.Background())

	if c.accessCredential() != "" {
		t.Fatal("credentials survived logout")
	}
	if s := c.Session(); s.State != SessionAnonymous {
		t.Fatalf("session = %+v", s)
	}
	if nav.last() != RouteHome {
		t.Fatalf("navigated to %q, want %q", nav.last(), RouteHome)
	}
}

func TestCheckAuth_ValidCredential(t *testing.T) {
	t.Parallel()
	backend := &authBackend{userType: "client"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	seedCredentials(t, c, "acc")
	s := c.CheckAuth(context.Background())
	if !s.Authenticated || s.Role != RoleClient {
		t.Fatalf("session = %+v", s)
	}
}

func TestCheckAuth_InvalidCredential(t *testing.T) {
	t.Parallel()
	backend := &authBackend{userStatus: http.StatusUnauthorized}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	seedCredentials(t, c, "stale")
	s := c.CheckAuth(context.Background())
	if s.Authenticated || s.State != SessionAnonymous {
		t.Fatalf("session = %+v", s)
	}
	if c.accessCredential() != "" {
		t.Fatal("stale credential not cleared")
	}
}

func TestCheckAuth_NoCredential(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a credential")
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	if s := c.CheckAuth(context.Background()); s.State != SessionAnonymous {
		t.Fatalf("session = %+v", s)
	}
}

func TestSessionVersion_IncreasesOnMutation(t *testing.T) {
	t.Parallel()
	backend := &authBackend{userType: "client"}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	c, _ := newTestClient(t, srv)
	before := c.Session().Version
	if err := c.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if after := c.Session().Version; after <= before {
		t.Fatalf("version %d -> %d, want increase", before, after)
	}
}

// A 401 from any workflow's endpoint tears the session down and redirects to
// login before the caller sees the error.
func TestUnauthorizedTeardown_FromEachWorkflow(t *testing.T) {
	t.Parallel()
	calls := map[string]func(*Client) error{
		"profile": func(c *Client) error {
			_, err := c.MyProfile(context.Background())
			return err
		},
		"booking": func(c *Client) error {
			b := c.Booking()
			b.Select(Caregiver{ID: 1, FirstName: "A", HourlyRate: NewRate(30)})
			_, err := b.Submit(context.Background())
			return err
		},
		"appointments": func(c *Client) error {
			_, err := c.UpcomingAppointments(context.Background())
			return err
		},
	}
	for name, call := range calls {
		name, call := name, call
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Token expired."}`))
			}))
			defer srv.Close()

			c, nav := newTestClient(t, srv)
			seedCredentials(t, c, "expired")
			c.session.set(SessionAuthenticated, nil, RoleClient)

			if err := call(c); err == nil {
				t.Fatal("expected error")
			}
			if c.accessCredential() != "" {
				t.Fatal("credentials survived 401")
			}
			if s := c.Session(); s.State != SessionAnonymous {
				t.Fatalf("session = %+v", s)
			}
			if nav.last() != RouteLogin {
				t.Fatalf("navigated to %q, want %q", nav.last(), RouteLogin)
			}
		})
	}
}
