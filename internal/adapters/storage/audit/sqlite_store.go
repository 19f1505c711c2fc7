package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "clubroll/internal/domain/audit"
)

// SQLiteStore persists the operation log in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates an operation log store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitDB initializes the operation log schema.
// PRE: db is a valid database connection
// POST: The operation_log table exists, WAL mode enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS operation_log (
		id TEXT PRIMARY KEY,
		logged_at TEXT NOT NULL,
		actor TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		field TEXT NOT NULL,
		old_value TEXT NOT NULL DEFAULT '',
		new_value TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Append inserts a batch of change records in one transaction.
// PRE: every entry carries an ID and timestamp
// POST: All entries are persisted, or none
func (s *SQLiteStore) Append(ctx context.Context, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `INSERT INTO operation_log
		(id, logged_at, actor, year, month, day, field, old_value, new_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, query,
			e.ID,
			e.LoggedAt.Format(time.RFC3339Nano),
			e.Actor,
			e.Year,
			e.Month,
			e.Day,
			e.Field,
			e.OldValue,
			e.NewValue,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
