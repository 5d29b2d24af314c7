package datastore

// DatabaseName is the logical database collection runs are recorded in.
const DatabaseName = "corpora"

// RunsTable holds one row per collection output written.
const RunsTable = "collection_runs"

// RunsSchema creates the collection run log table.
const RunsSchema = `CREATE TABLE IF NOT EXISTS collection_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	dataset TEXT NOT NULL,
	config TEXT,
	output_file TEXT NOT NULL,
	records_written INTEGER NOT NULL,
	records_dropped INTEGER NOT NULL,
	streaming INTEGER NOT NULL,
	record_limit INTEGER NOT NULL,
	duration_seconds REAL NOT NULL,
	finished_at TEXT NOT NULL
)`

// Store abstracts where collection runs are recorded, locally or remote.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// BatchInsert inserts multiple records into the specified table
	BatchInsert(database string, table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
