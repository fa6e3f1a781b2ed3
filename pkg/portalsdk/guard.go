package portalsdk

// RouteAction is the outcome of a client-side route check.
type RouteAction int

const (
	// Allow lets the navigation proceed.
	Allow RouteAction = iota
	// RedirectLogin sends the user to the login page, remembering where
	// they were headed.
	RedirectLogin
	// RedirectUnauthorized sends a logged-in user of the wrong rank to
	// their own dashboard.
	RedirectUnauthorized
)

// RouteDecision is the guard's verdict for a navigation attempt.
type RouteDecision struct {
	Action RouteAction
	// From is the originally requested path, preserved on RedirectLogin so
	// login can bounce the user back.
	From string
	// Target is the path to navigate to when redirecting.
	Target string
}

// GuardRoute decides whether the session may enter path. An empty
// allowedRoles list means any authenticated user may enter.
//
// This mirrors the portal's protected-route component and is advisory only:
// the server still enforces authentication and roles on every request.
func GuardRoute(s *Session, path string, allowedRoles ...string) RouteDecision {
	if s == nil || !s.LoggedIn() {
		return RouteDecision{Action: RedirectLogin, From: path, Target: "/login"}
	}

	if len(allowedRoles) == 0 {
		return RouteDecision{Action: Allow}
	}

	profile := s.Profile()
	for _, role := range allowedRoles {
		if profile.Role == role {
			return RouteDecision{Action: Allow}
		}
	}

	// Wrong rank: bounce to the user's own dashboard rather than login.
	return RouteDecision{Action: RedirectUnauthorized, From: path, Target: profile.Dashboard}
}
