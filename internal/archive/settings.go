package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KeyWelcomeShown marks that the one-time onboarding screen was shown.
const KeyWelcomeShown = "welcome_shown"

// Settings is a small key/value repository for app flags.
type Settings struct {
	db *sql.DB
}

// Get returns the value for key, or ("", false) when unset.
func (s *Settings) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}
