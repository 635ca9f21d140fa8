package session

import "testing"

func TestResolve(t *testing.T) {
	protected := []Route{RouteHome, RouteSongDetail, RouteAddSong, RouteEditSong}

	t.Run("login while authenticated redirects home", func(t *testing.T) {
		if got := Resolve(true, RouteLogin); got != RedirectHome {
			t.Errorf("expected RedirectHome, got %v", got)
		}
	})

	t.Run("login while unauthenticated renders", func(t *testing.T) {
		if got := Resolve(false, RouteLogin); got != Render {
			t.Errorf("expected Render, got %v", got)
		}
	})

	t.Run("protected routes require authentication", func(t *testing.T) {
		for _, route := range protected {
			if got := Resolve(false, route); got != RedirectLogin {
				t.Errorf("route %s: expected RedirectLogin, got %v", route, got)
			}
			if got := Resolve(true, route); got != Render {
				t.Errorf("route %s: expected Render, got %v", route, got)
			}
		}
	})
}

func TestRouteString(t *testing.T) {
	names := map[Route]string{
		RouteLogin:      "login",
		RouteHome:       "home",
		RouteSongDetail: "song",
		RouteAddSong:    "add",
		RouteEditSong:   "edit",
	}

	for route, want := range names {
		if got := route.String(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}
