package carenest

// Route is a destination inside the hosting application. The client never
// renders anything; it hands routes to the configured Navigator and the
// host decides what they mean.
type Route string

const (
	RouteHome               Route = "/"
	RouteLogin              Route = "/login"
	RouteRegister           Route = "/register"
	RouteDashboard          Route = "/dashboard"
	RouteClientDashboard    Route = "/dashboard/client"
	RouteCaregiverDashboard Route = "/dashboard/caregiver"
	RouteAdminDashboard     Route = "/dashboard/admin"
)

// Navigator receives navigation side effects: post-login redirects, the
// forced trip to the login screen on credential expiry, guard redirects.
type Navigator interface {
	Navigate(Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

type nopNavigator struct{}

func (nopNavigator) Navigate(Route) {}

// DashboardRoute maps a role to its dashboard. Unrecognized roles land on
// the generic dashboard.
func DashboardRoute(r Role) Route {
	switch r {
	case RoleClient:
		return RouteClientDashboard
	case RoleCaregiver:
		return RouteCaregiverDashboard
	case RoleAdmin:
		return RouteAdminDashboard
	default:
		return RouteDashboard
	}
}

// GuardDecision is the outcome of evaluating a route guard against a
// session snapshot.
type GuardDecision struct {
	Allow    bool
	Redirect Route
}

// RequireRole guards a protected route. Anonymous sessions are sent to the
// login screen; authenticated sessions holding none of the allowed roles are
// sent home. An empty allowed list admits any authenticated session.
func RequireRole(s Session, allowed ...Role) GuardDecision {
	if !s.Authenticated {
		return GuardDecision{Redirect: RouteLogin}
	}
	if len(allowed) == 0 {
		return GuardDecision{Allow: true}
	}
	for _, r := range allowed {
		if s.Role == r {
			return GuardDecision{Allow: true}
		}
	}
	return GuardDecision{Redirect: RouteHome}
}

// RedirectAuthenticated guards public-only routes such as login and
// registration: an already-authenticated session is bounced to its
// dashboard instead.
func RedirectAuthenticated(s Session) GuardDecision {
	if s.Authenticated {
		return GuardDecision{Redirect: DashboardRoute(s.Role)}
	}
	return GuardDecision{Allow: true}
}
