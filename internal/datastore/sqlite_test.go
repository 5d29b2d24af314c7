package datastore

import (
	"testing"
)

func TestSQLiteStore_CreateTableAndInsert(t *testing.T) {
	dbPath := "file::memory:?cache=shared"
	store := NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(RunsSchema); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	records := []map[string]any{
		{
			"source":           "samanantar",
			"dataset":          "ai4bharat/samanantar",
			"config":           "hi",
			"output_file":      "en_hi_parallel.jsonl",
			"records_written":  1000,
			"records_dropped":  3,
			"streaming":        1,
			"record_limit":     0,
			"duration_seconds": 12.5,
			"finished_at":      "2026-08-28T10:00:00Z",
		},
		{
			"source":           "wikipedia",
			"dataset":          "wikimedia/wikipedia",
			"config":           "20231101.hi",
			"output_file":      "hi_mono.jsonl",
			"records_written":  500,
			"records_dropped":  0,
			"streaming":        0,
			"record_limit":     500,
			"duration_seconds": 4.2,
			"finished_at":      "2026-08-28T10:01:00Z",
		},
	}
	if err := store.BatchInsert(DatabaseName, RunsTable, records); err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	rows, err := store.db.Query("SELECT source, records_written FROM collection_runs ORDER BY id")
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var count int
	for rows.Next() {
		var source string
		var written int
		if err := rows.Scan(&source, &written); err != nil {
			t.Fatalf("failed to scan: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}
}

func TestSQLiteStore_BatchInsertEmpty(t *testing.T) {
	store := NewSQLiteStore("file::memory:?cache=shared")
	if err := store.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.BatchInsert(DatabaseName, RunsTable, nil); err != nil {
		t.Errorf("expected no error for empty insert, got %v", err)
	}
}
