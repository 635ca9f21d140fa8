package session

import (
	"testing"

	"github.com/sopheara/klyr/internal/repositories"
)

func TestThemeController(t *testing.T) {
	t.Run("defaults to light", func(t *testing.T) {
		tc := NewThemeController(newMemStore())
		tc.Initialize()

		if tc.Current() != ThemeLight {
			t.Errorf("expected light, got %s", tc.Current())
		}
	})

	t.Run("Initialize reads persisted value", func(t *testing.T) {
		store := newMemStore()
		store.entries[repositories.KeyTheme] = "dark"

		tc := NewThemeController(store)
		tc.Initialize()

		if tc.Current() != ThemeDark {
			t.Errorf("expected dark, got %s", tc.Current())
		}
	})

	t.Run("Initialize falls back to light for unknown values", func(t *testing.T) {
		store := newMemStore()
		store.entries[repositories.KeyTheme] = "sepia"

		tc := NewThemeController(store)
		tc.Initialize()

		if tc.Current() != ThemeLight {
			t.Errorf("expected light, got %s", tc.Current())
		}
	})

	t.Run("Toggle flips and persists", func(t *testing.T) {
		store := newMemStore()
		tc := NewThemeController(store)
		tc.Initialize()

		if got := tc.Toggle(); got != ThemeDark {
			t.Errorf("expected dark after first toggle, got %s", got)
		}
		if store.entries[repositories.KeyTheme] != "dark" {
			t.Error("expected persisted value to match in-memory value")
		}

		if got := tc.Toggle(); got != ThemeLight {
			t.Errorf("expected light after second toggle, got %s", got)
		}
		if store.entries[repositories.KeyTheme] != "light" {
			t.Error("expected persisted value to match in-memory value")
		}
	})

	t.Run("Toggle keeps working when the store fails", func(t *testing.T) {
		store := newMemStore()
		store.failing = true

		tc := NewThemeController(store)
		tc.Initialize()

		if got := tc.Toggle(); got != ThemeDark {
			t.Errorf("expected in-memory toggle to work, got %s", got)
		}
	})
}
