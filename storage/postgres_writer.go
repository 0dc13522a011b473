package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"monster-deals/models"
	"monster-deals/utils"
)

// PostgresWriter mirrors observed records into PostgreSQL for querying
// across runs.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_observations (
			id           SERIAL PRIMARY KEY,
			run_id       VARCHAR(64)   NOT NULL,
			retailer     VARCHAR(50)   NOT NULL,
			identifier   VARCHAR(64)   NOT NULL,
			title        TEXT          NOT NULL,
			price        NUMERIC(10,2) NOT NULL,
			fl_oz        NUMERIC(10,2) NOT NULL,
			price_per_oz NUMERIC(10,4) NOT NULL,
			seller       TEXT          NOT NULL DEFAULT '',
			link         TEXT          NOT NULL DEFAULT '',
			observed_at  TIMESTAMPTZ   NOT NULL,
			UNIQUE (run_id, identifier)
		);

		CREATE INDEX IF NOT EXISTS idx_observations_identifier   ON price_observations(identifier);
		CREATE INDEX IF NOT EXISTS idx_observations_price_per_oz ON price_observations(price_per_oz);
		CREATE INDEX IF NOT EXISTS idx_observations_observed_at  ON price_observations(observed_at);
	`)
	return err
}

// Write batch-inserts the records. Re-writing the same run is a no-op.
func (pw *PostgresWriter) Write(records []*models.Record) error {
	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		if err := pw.insertBatch(records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Record) error {
	query, args := buildInsert(batch)
	if _, err := pw.db.Exec(query, args...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

const insertColumns = 10

func buildInsert(batch []*models.Record) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*insertColumns)

	for idx, r := range batch {
		placeholders := make([]string, insertColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", idx*insertColumns+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			r.RunID, r.Source, r.Identifier, r.Title, r.Price,
			r.Volume, r.UnitPrice, r.Seller, r.Link, r.ObservedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO price_observations
			(run_id, retailer, identifier, title, price, fl_oz, price_per_oz, seller, link, observed_at)
		VALUES %s
		ON CONFLICT (run_id, identifier) DO NOTHING
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
