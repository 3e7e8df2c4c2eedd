package store

import (
	"database/sql"
)

// Durable per-browser keys. These survive server restarts so a returning
// browser can have its auth state re-verified instead of re-entered.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

func (s *Store) GetSessionValue(sessionID, key string) (string, error) {
	query := `SELECT value FROM session_values WHERE session_id = ? AND key = ?`
	var value string
	if err := s.DB.QueryRow(query, sessionID, key).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetSessionValues writes all pairs in one transaction so a crash cannot
// leave a session with a token but no user (or vice versa).
func (s *Store) SetSessionValues(sessionID string, values map[string]string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO session_values (session_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	for key, value := range values {
		if _, err := tx.Exec(query, sessionID, key, value); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ClearSession(sessionID string) error {
	query := `DELETE FROM session_values WHERE session_id = ?`
	_, err := s.DB.Exec(query, sessionID)
	return err
}
