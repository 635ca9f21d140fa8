package repositories

import (
	"database/sql"
	"fmt"
)

// Keys for every persisted entry. The names match the web client's local
// storage keys so both frontends read the same preferences.
const (
	KeyAuthFlag   = "khmer-lyrics-auth"
	KeyTheme      = "khmer-lyrics-theme"
	KeySavedLogin = "khmer-lyrics-saved-login"
)

// PrefRepository persists string-keyed preference entries in SQLite.
type PrefRepository struct {
	db *sql.DB
}

// NewPrefRepository creates a new PrefRepository with the given database connection
func NewPrefRepository(db *sql.DB) *PrefRepository {
	return &PrefRepository{db: db}
}

// Get retrieves the value for key. Absent keys return ("", false, nil).
func (r *PrefRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read pref %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores or replaces the value for key.
func (r *PrefRepository) Set(key, value string) error {
	query := `
		INSERT INTO prefs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write pref %s: %w", key, err)
	}

	return nil
}

// Delete removes the entry for key. Deleting an absent key is not an error.
func (r *PrefRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM prefs WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete pref %s: %w", key, err)
	}

	return nil
}
