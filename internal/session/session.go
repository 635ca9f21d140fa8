package session

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/sopheara/klyr/internal/models"
	"github.com/sopheara/klyr/internal/repositories"
	"github.com/sopheara/klyr/internal/shared"
)

// Store is the persisted key-value surface the session layer needs.
// *repositories.PrefRepository satisfies it.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Manager holds the process-wide authentication state.
//
// Login verifies the supplied pair against a single fixed credential pair
// embedded in the client. This keeps out casual access only; it is not
// real authentication and is documented as such.
type Manager struct {
	prefs         Store
	fixed         models.Credentials
	logger        *log.Logger
	authenticated bool
}

// NewManager creates a session manager checking against the given fixed pair.
func NewManager(prefs Store, fixed models.Credentials, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{prefs: prefs, fixed: fixed, logger: logger}
}

// Initialize reads the persisted authentication flag into memory. Call it
// before any guarded view becomes reachable.
func (m *Manager) Initialize() {
	value, ok, err := m.prefs.Get(repositories.KeyAuthFlag)
	if err != nil {
		m.logger.Warn("failed to read auth flag, treating as logged out", "err", err)
		m.authenticated = false
		return
	}

	m.authenticated = ok && value == "true"
}

// IsAuthenticated reports the current in-memory authentication state.
func (m *Manager) IsAuthenticated() bool {
	return m.authenticated
}

// Login succeeds only when the supplied pair exactly equals the fixed pair.
// On success the flag is persisted and, when remember is set, the pair is
// saved as JSON to pre-fill the next login; when remember is not set any
// saved pair is cleared. On failure state is left unchanged.
func (m *Manager) Login(username, password string, remember bool) bool {
	if username != m.fixed.Username || password != m.fixed.Password {
		return false
	}

	m.authenticated = true
	if err := m.prefs.Set(repositories.KeyAuthFlag, "true"); err != nil {
		m.logger.Warn("failed to persist auth flag", "err", err)
	}

	if remember {
		pair, err := json.Marshal(models.Credentials{Username: username, Password: password})
		if err == nil {
			err = m.prefs.Set(repositories.KeySavedLogin, string(pair))
		}
		if err != nil {
			m.logger.Warn("failed to save login", "err", err)
		}
	} else if err := m.prefs.Delete(repositories.KeySavedLogin); err != nil {
		m.logger.Warn("failed to clear saved login", "err", err)
	}

	return true
}

// Logout clears the in-memory state and the persisted flag. Saved login
// credentials are deliberately kept.
func (m *Manager) Logout() {
	m.authenticated = false
	if err := m.prefs.Delete(repositories.KeyAuthFlag); err != nil {
		m.logger.Warn("failed to clear auth flag", "err", err)
	}
}

// SavedLogin returns the remembered credential pair, if one was saved at a
// previous successful login.
func (m *Manager) SavedLogin() (models.Credentials, bool) {
	value, ok, err := m.prefs.Get(repositories.KeySavedLogin)
	if err != nil || !ok {
		return models.Credentials{}, false
	}

	var creds models.Credentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		m.logger.Warn("discarding unreadable saved login", "err", err)
		return models.Credentials{}, false
	}

	return creds, true
}
