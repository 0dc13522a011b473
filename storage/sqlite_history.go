package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"monster-deals/models"
)

// SQLiteHistory keeps the history log in a single SQLite table. The seq
// column preserves append order.
type SQLiteHistory struct {
	db *sql.DB
}

// NewSQLiteHistory opens (or creates) the database at path.
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	h := &SQLiteHistory{db: db}
	if err := h.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return h, nil
}

func (h *SQLiteHistory) migrate() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_history (
			seq         INTEGER PRIMARY KEY,
			run_id      TEXT    NOT NULL DEFAULT '',
			retailer    TEXT    NOT NULL,
			identifier  TEXT    NOT NULL,
			title       TEXT    NOT NULL,
			price       REAL    NOT NULL,
			fl_oz       REAL    NOT NULL,
			price_per_oz REAL   NOT NULL,
			link        TEXT    NOT NULL DEFAULT '',
			seller      TEXT    NOT NULL DEFAULT '',
			observed_at TEXT    NOT NULL
		)
	`)
	return err
}

func (h *SQLiteHistory) Load() ([]*models.Record, error) {
	rows, err := h.db.Query(`
		SELECT run_id, retailer, identifier, title, price, fl_oz, price_per_oz, link, seller, observed_at
		FROM price_history
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		r := &models.Record{}
		var observed string
		if err := rows.Scan(
			&r.RunID, &r.Source, &r.Identifier, &r.Title, &r.Price,
			&r.Volume, &r.UnitPrice, &r.Link, &r.Seller, &observed,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		if r.ObservedAt, err = time.Parse(time.RFC3339Nano, observed); err != nil {
			return nil, fmt.Errorf("sqlite: parse timestamp %q: %w", observed, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save replaces the table contents inside one transaction.
func (h *SQLiteHistory) Save(records []*models.Record) error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM price_history`); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO price_history
			(seq, run_id, retailer, identifier, title, price, fl_oz, price_per_oz, link, seller, observed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(
			i+1, r.RunID, r.Source, r.Identifier, r.Title, r.Price,
			r.Volume, r.UnitPrice, r.Link, r.Seller, r.ObservedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("sqlite: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}
