package session

// Route identifies a navigable view.
type Route int

const (
	RouteLogin Route = iota
	RouteHome
	RouteSongDetail
	RouteAddSong
	RouteEditSong
)

// String returns the route name for logs.
func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteHome:
		return "home"
	case RouteSongDetail:
		return "song"
	case RouteAddSong:
		return "add"
	case RouteEditSong:
		return "edit"
	}
	return "unknown"
}

// Decision is the guard's verdict for a navigation request.
type Decision int

const (
	// Render the requested route.
	Render Decision = iota
	// RedirectLogin sends an unauthenticated request for a protected route
	// to the login view.
	RedirectLogin
	// RedirectHome sends an authenticated request for the login view home.
	RedirectHome
)

// Resolve decides what to do with a navigation request. It is a pure
// function of the authentication state and the requested route, re-evaluated
// on every navigation and on every auth-state change.
func Resolve(authenticated bool, route Route) Decision {
	if route == RouteLogin {
		if authenticated {
			return RedirectHome
		}
		return Render
	}

	if !authenticated {
		return RedirectLogin
	}

	return Render
}
