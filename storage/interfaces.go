package storage

import "monster-deals/models"

// HistoryStore holds the ordered log of every record ever observed. Load
// returns the whole log; Save replaces it.
type HistoryStore interface {
	Load() ([]*models.Record, error)
	Save(records []*models.Record) error
}

// RecordWriter is the interface for secondary sinks that receive one run's
// records (CSV export, database mirror).
type RecordWriter interface {
	Write(records []*models.Record) error
	Close() error
}
