package carenest

import "testing"

func TestRequireRole(t *testing.T) {
	t.Parallel()
	anon := Session{State: SessionAnonymous}
	client := Session{State: SessionAuthenticated, Authenticated: true, Role: RoleClient}
	caregiver := Session{State: SessionAuthenticated, Authenticated: true, Role: RoleCaregiver}

	cases := []struct {
		name    string
		s       Session
		allowed []Role
		want    GuardDecision
	}{
		{"anonymous to login", anon, []Role{RoleClient}, GuardDecision{Redirect: RouteLogin}},
		{"role allowed", client, []Role{RoleClient}, GuardDecision{Allow: true}},
		{"role not allowed", caregiver, []Role{RoleClient}, GuardDecision{Redirect: RouteHome}},
		{"any role when unrestricted", caregiver, nil, GuardDecision{Allow: true}},
		{"one of several", caregiver, []Role{RoleClient, RoleCaregiver}, GuardDecision{Allow: true}},
	}
	for _, tc := range cases {
		if got := RequireRole(tc.s, tc.allowed...); got != tc.want {
			t.Fatalf("%s: RequireRole = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestRedirectAuthenticated(t *testing.T) {
	t.Parallel()
	anon := Session{State: SessionAnonymous}
	if got := RedirectAuthenticated(anon); !got.Allow {
		t.Fatalf("anonymous should pass: %+v", got)
	}
	admin := Session{State: SessionAuthenticated, Authenticated: true, Role: RoleAdmin}
	if got := RedirectAuthenticated(admin); got.Redirect != RouteAdminDashboard {
		t.Fatalf("admin redirect = %+v", got)
	}
}

func TestDashboardRoute(t *testing.T) {
	t.Parallel()
	cases := map[Role]Route{
		RoleClient:    RouteClientDashboard,
		RoleCaregiver: RouteCaregiverDashboard,
		RoleAdmin:     RouteAdminDashboard,
		"supervisor":  RouteDashboard,
		"":            RouteDashboard,
	}
	for role, want := range cases {
		if got := DashboardRoute(role); got != want {
			t.Fatalf("DashboardRoute(%q) = %q, want %q", role, got, want)
		}
	}
}
