package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"monster-deals/models"
	"monster-deals/utils"
)

// JSONHistory stores the history log as one indented JSON array.
type JSONHistory struct {
	path string
}

func NewJSONHistory(path string) *JSONHistory {
	return &JSONHistory{path: path}
}

// Load reads the whole log. A missing file is an empty history.
func (h *JSONHistory) Load() ([]*models.Record, error) {
	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: read %q: %w", h.path, err)
	}

	var records []*models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("history: decode %q: %w", h.path, err)
	}
	return records, nil
}

// Save rewrites the log through a temporary file so a crash mid-write
// leaves the previous log intact.
func (h *JSONHistory) Save(records []*models.Record) error {
	if records == nil {
		records = []*models.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	return writeFileAtomic(h.path, append(data, '\n'))
}

// AppendHistory loads the existing log, appends this run's records and
// writes it back. An unreadable or corrupt log is logged and replaced by an
// empty one. It returns the new log length.
func AppendHistory(store HistoryStore, records []*models.Record, logger *utils.Logger) (int, error) {
	history, err := store.Load()
	if err != nil {
		logger.Warn("[history] Existing history unusable, starting fresh: %v", err)
		history = nil
	}

	merged := make([]*models.Record, 0, len(history)+len(records))
	merged = append(merged, history...)
	merged = append(merged, records...)

	if err := store.Save(merged); err != nil {
		return 0, err
	}
	logger.Info("[history] %d previous + %d new = %d records", len(history), len(records), len(merged))
	return len(merged), nil
}

// WriteReport writes the report, replacing any previous one.
func WriteReport(path, report string) error {
	if err := writeFileAtomic(path, []byte(report)); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %q: %w", tmpName, err)
	}
	return nil
}
