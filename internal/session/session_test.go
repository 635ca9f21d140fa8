package session

import (
	"testing"

	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/repositories"
	"github.com/sopheara/klyr/internal/shared"
)

var fixedPair = models.Credentials{Username: "admin", Password: "khmer2024"}

// memStore is an in-memory Store for session tests.
type memStore struct {
	entries map[string]string
	failing bool
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]string{}}
}

func (s *memStore) Get(key string) (string, bool, error) {
	if s.failing {
		return "", false, shared.ErrStoreUnavailable
	}
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *memStore) Set(key, value string) error {
	if s.failing {
		return shared.ErrStoreUnavailable
	}
	s.entries[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	if s.failing {
		return shared.ErrStoreUnavailable
	}
	delete(s.entries, key)
	return nil
}

func TestManager(t *testing.T) {
	t.Run("Initialize reads persisted flag", func(t *testing.T) {
		store := newMemStore()
		store.entries[repositories.KeyAuthFlag] = "true"

		m := NewManager(store, fixedPair, nil)
		m.Initialize()

		if !m.IsAuthenticated() {
			t.Error("expected authenticated after reading persisted flag")
		}
	})

	t.Run("Initialize treats other values as logged out", func(t *testing.T) {
		store := newMemStore()
		store.entries[repositories.KeyAuthFlag] = "yes"

		m := NewManager(store, fixedPair, nil)
		m.Initialize()

		if m.IsAuthenticated() {
			t.Error("only the literal \"true\" should authenticate")
		}
	})

	t.Run("Login with the fixed pair succeeds", func(t *testing.T) {
		store := newMemStore()
		m := NewManager(store, fixedPair, nil)
		m.Initialize()

		if !m.Login("admin", "khmer2024", false) {
			t.Fatal("expected login to succeed")
		}
		if !m.IsAuthenticated() {
			t.Error("expected authenticated after login")
		}
		if store.entries[repositories.KeyAuthFlag] != "true" {
			t.Error("expected persisted auth flag")
		}
	})

	t.Run("Login with any other pair fails and leaves state unchanged", func(t *testing.T) {
		store := newMemStore()
		m := NewManager(store, fixedPair, nil)
		m.Initialize()

		for _, pair := range []models.Credentials{
			{Username: "admin", Password: "wrong"},
			{Username: "someone", Password: "khmer2024"},
			{Username: "", Password: ""},
			{Username: "Admin", Password: "khmer2024"},
		} {
			if m.Login(pair.Username, pair.Password, false) {
				t.Errorf("expected login to fail for %q/%q", pair.Username, pair.Password)
			}
			if m.IsAuthenticated() {
				t.Error("failed login must not authenticate")
			}
		}

		if _, ok := store.entries[repositories.KeyAuthFlag]; ok {
			t.Error("failed login must not persist the flag")
		}
	})

	t.Run("Login with remember saves the pair as JSON", func(t *testing.T) {
		store := newMemStore()
		m := NewManager(store, fixedPair, nil)

		if !m.Login("admin", "khmer2024", true) {
			t.Fatal("expected login to succeed")
		}

		saved, ok := m.SavedLogin()
		if !ok {
			t.Fatal("expected a saved login")
		}
		if saved != fixedPair {
			t.Errorf("expected saved pair %v, got %v", fixedPair, saved)
		}
	})

	t.Run("Login without remember clears a previously saved pair", func(t *testing.T) {
		store := newMemStore()
		m := NewManager(store, fixedPair, nil)

		m.Login("admin", "khmer2024", true)
		m.Login("admin", "khmer2024", false)

		if _, ok := m.SavedLogin(); ok {
			t.Error("expected saved login to be cleared")
		}
	})

	t.Run("Logout clears the flag but keeps saved credentials", func(t *testing.T) {
		store := newMemStore()
		m := NewManager(store, fixedPair, nil)

		m.Login("admin", "khmer2024", true)
		m.Logout()

		if m.IsAuthenticated() {
			t.Error("expected logged out")
		}
		if _, ok := store.entries[repositories.KeyAuthFlag]; ok {
			t.Error("expected persisted flag to be cleared")
		}
		if _, ok := m.SavedLogin(); !ok {
			t.Error("logout must not clear remembered credentials")
		}
	})

	t.Run("SavedLogin discards unreadable JSON", func(t *testing.T) {
		store := newMemStore()
		store.entries[repositories.KeySavedLogin] = "{broken"

		m := NewManager(store, fixedPair, nil)
		if _, ok := m.SavedLogin(); ok {
			t.Error("expected no saved login for unreadable JSON")
		}
	})

	t.Run("Store failure degrades to in-memory state", func(t *testing.T) {
		store := newMemStore()
		store.failing = true

		m := NewManager(store, fixedPair, nil)
		m.Initialize()

		if !m.Login("admin", "khmer2024", false) {
			t.Fatal("login should still succeed in memory")
		}
		if !m.IsAuthenticated() {
			t.Error("expected authenticated despite store failure")
		}
	})
}

func TestPrefRepositoryAsStore(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	m := NewManager(repositories.NewPrefRepository(db), fixedPair, nil)
	m.Initialize()

	if !m.Login("admin", "khmer2024", false) {
		t.Fatal("expected login to succeed")
	}

	// A second manager over the same database sees the persisted flag,
	// like a process restart would.
	m2 := NewManager(repositories.NewPrefRepository(db), fixedPair, nil)
	m2.Initialize()
	if !m2.IsAuthenticated() {
		t.Error("expected persisted session to survive a restart")
	}
}
