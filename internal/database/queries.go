package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zombar/scanreport/internal/models"
)

// ErrNotFound is returned when a scan id does not exist.
var ErrNotFound = fmt.Errorf("scan not found")

// SaveScan inserts or replaces a scan record.
func (db *DB) SaveScan(rec *models.ScanRecord) error {
	docJSON, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO scans
			(id, remote_id, title, document, summary, ai_probability, plagiarism_score, failed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.RemoteID, rec.Title, string(docJSON), rec.Summary,
		rec.AIProbability, rec.PlagiarismScore, boolToInt(rec.Failed),
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	return nil
}

// GetScan retrieves a scan record by id.
func (db *DB) GetScan(id string) (*models.ScanRecord, error) {
	row := db.conn.QueryRow(`
		SELECT id, remote_id, title, document, summary, ai_probability, plagiarism_score, failed, created_at, updated_at
		FROM scans
		WHERE id = ?
	`, id)

	rec, err := scanRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	return rec, nil
}

// ListScans retrieves scan records newest first.
func (db *DB) ListScans(limit, offset int) ([]*models.ScanRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, remote_id, title, document, summary, ai_probability, plagiarism_score, failed, created_at, updated_at
		FROM scans
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var records []*models.ScanRecord
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteScan removes a scan record by id.
func (db *DB) DeleteScan(id string) error {
	result, err := db.conn.Exec(`DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*models.ScanRecord, error) {
	var (
		rec       models.ScanRecord
		remoteID  sql.NullString
		title     sql.NullString
		docJSON   string
		failed    int
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&rec.ID, &remoteID, &title, &docJSON, &rec.Summary,
		&rec.AIProbability, &rec.PlagiarismScore, &failed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(docJSON), &rec.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	rec.RemoteID = remoteID.String
	rec.Title = title.String
	rec.Failed = failed != 0
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
