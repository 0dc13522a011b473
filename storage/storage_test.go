package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"monster-deals/models"
	"monster-deals/utils"
)

func makeRecords(prefix string, n int) []*models.Record {
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	var out []*models.Record
	for i := 0; i < n; i++ {
		out = append(out, &models.Record{
			RunID:      prefix,
			Source:     "Amazon",
			Identifier: fmt.Sprintf("%s-%d", prefix, i),
			Title:      fmt.Sprintf("Monster Energy %d, 16 Fl Oz (Pack of 24)", i),
			Price:      30 + float64(i),
			Volume:     384,
			UnitPrice:  0.0781 + float64(i)/1000,
			Link:       "https://www.amazon.com/dp/" + prefix,
			Seller:     "primary listing",
			ObservedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func testStores(t *testing.T) map[string]HistoryStore {
	dir := t.TempDir()
	sqlite, err := NewSQLiteHistory(filepath.Join(dir, "history.sqlite"))
	if err != nil {
		t.Fatalf("NewSQLiteHistory: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]HistoryStore{
		"json":   NewJSONHistory(filepath.Join(dir, "history.json")),
		"sqlite": sqlite,
	}
}

func TestHistoryRoundTripAppends(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			logger := utils.NewDiscardLogger()
			first := makeRecords("run1", 3)
			second := makeRecords("run2", 2)

			if n, err := AppendHistory(store, first, logger); err != nil || n != 3 {
				t.Fatalf("first append: n=%d err=%v", n, err)
			}
			if n, err := AppendHistory(store, second, logger); err != nil || n != 5 {
				t.Fatalf("second append: n=%d err=%v", n, err)
			}

			got, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got) != 5 {
				t.Fatalf("history length: got %d, want 5", len(got))
			}
			for i, want := range append(first, second...) {
				if got[i].Identifier != want.Identifier {
					t.Errorf("history[%d]: got %s, want %s", i, got[i].Identifier, want.Identifier)
				}
			}
			if got[1].UnitPrice != first[1].UnitPrice || !got[1].ObservedAt.Equal(first[1].ObservedAt) {
				t.Errorf("record not preserved: %+v", got[1])
			}
		})
	}
}

func TestJSONHistoryMissingFileIsEmpty(t *testing.T) {
	store := NewJSONHistory(filepath.Join(t.TempDir(), "nope.json"))
	records, err := store.Load()
	if err != nil || len(records) != 0 {
		t.Errorf("Load missing file = %v, %v; want empty, nil", records, err)
	}
}

func TestAppendHistoryReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewJSONHistory(path)

	n, err := AppendHistory(store, makeRecords("fresh", 2), utils.NewDiscardLogger())
	if err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}
	if n != 2 {
		t.Errorf("history length: got %d, want 2", n)
	}

	records, err := store.Load()
	if err != nil || len(records) != 2 {
		t.Errorf("reload = %d records, %v; want 2, nil", len(records), err)
	}
}

func TestJSONHistoryKeepsFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := NewJSONHistory(path).Save(makeRecords("r", 1)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"retailer"`, `"fl_oz"`, `"price_per_oz"`, `"timestamp"`, "\n  {"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("history file missing %q:\n%s", key, data)
		}
	}
}

func TestWriteReportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "deal_report.md")
	if err := WriteReport(path, "first report with more text\n"); err != nil {
		t.Fatal(err)
	}
	if err := WriteReport(path, "second\n"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second\n" {
		t.Errorf("report: got %q, want %q", data, "second\n")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestCSVWriterWritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "observations.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(makeRecords("csv", 2)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3 (header + 2)", len(rows))
	}
	if rows[0][0] != "run_id" {
		t.Errorf("header: got %v", rows[0])
	}
	if rows[1][4] != "30.00" || rows[1][5] != "384" || rows[1][6] != "0.0781" {
		t.Errorf("row 1: got %v", rows[1])
	}
}

func TestBuildInsertPlaceholders(t *testing.T) {
	query, args := buildInsert(makeRecords("pg", 2))
	if len(args) != 2*insertColumns {
		t.Errorf("args: got %d, want %d", len(args), 2*insertColumns)
	}
	if !strings.Contains(query, "($1,$2,$3,$4,$5,$6,$7,$8,$9,$10),($11,") {
		t.Errorf("unexpected placeholders:\n%s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (run_id, identifier) DO NOTHING") {
		t.Error("missing conflict clause")
	}
}
