package session

import (
	"github.com/sopheara/klyr/internal/repositories"
)

// Theme is the two-state display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeController owns the persisted theme preference. Persistence failures
// are tolerated: the in-memory value keeps working, it just won't survive a
// restart.
type ThemeController struct {
	prefs   Store
	current Theme
}

// NewThemeController creates a theme controller defaulting to light.
func NewThemeController(prefs Store) *ThemeController {
	return &ThemeController{prefs: prefs, current: ThemeLight}
}

// Initialize reads the persisted preference, defaulting to light for
// absent or unrecognized values.
func (t *ThemeController) Initialize() {
	value, ok, err := t.prefs.Get(repositories.KeyTheme)
	if err != nil || !ok {
		t.current = ThemeLight
		return
	}

	switch Theme(value) {
	case ThemeDark:
		t.current = ThemeDark
	default:
		t.current = ThemeLight
	}
}

// Current returns the active theme.
func (t *ThemeController) Current() Theme {
	return t.current
}

// Toggle flips between light and dark and persists the new value immediately.
func (t *ThemeController) Toggle() Theme {
	if t.current == ThemeLight {
		t.current = ThemeDark
	} else {
		t.current = ThemeLight
	}

	t.prefs.Set(repositories.KeyTheme, string(t.current))
	return t.current
}
