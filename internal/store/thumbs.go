package store

import (
	"database/sql"
)

func (s *Store) GetThumbnail(productID int) (string, error) {
	query := `SELECT filename FROM thumbnails WHERE product_id = ?`
	var filename string
	if err := s.DB.QueryRow(query, productID).Scan(&filename); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

func (s *Store) SetThumbnail(productID int, filename string) error {
	query := `
		INSERT INTO thumbnails (product_id, filename, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (product_id) DO UPDATE SET filename = excluded.filename, created_at = CURRENT_TIMESTAMP
	`
	_, err := s.DB.Exec(query, productID, filename)
	return err
}
