package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agentic-research/shapekit/api"
	_ "modernc.org/sqlite"
)

// Record is one row of a records table.
type Record struct {
	ID   string
	Tree any
}

const recordsQuery = "SELECT id, record FROM results"

// StreamSQLite iterates over the results(id, record) table of a SQLite
// database, decoding each JSON record into an ordered tree and calling fn.
// Only one decoded record is alive at a time.
func StreamSQLite(ctx context.Context, dbPath string, fn func(rec Record) error) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.QueryContext(ctx, recordsQuery)
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		tree, err := api.DecodeJSON([]byte(raw))
		if err != nil {
			return fmt.Errorf("parse record %s: %w", id, err)
		}
		if err := fn(Record{ID: id, Tree: tree}); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadSQLite reads every record of the results table into memory.
// Prefer StreamSQLite for large databases.
func LoadSQLite(ctx context.Context, dbPath string) ([]Record, error) {
	var records []Record
	err := StreamSQLite(ctx, dbPath, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
