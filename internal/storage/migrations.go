package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version this build reads and writes.
const ExpectedSchemaVersion = 2

// schema lists the statements for each version in order. Version n is schema[n-1].
var schema = []struct {
	name  string
	stmts []string
}{
	{
		name: "key/value table",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS kv_store (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`,
		},
	},
	{
		name: "write timestamps",
		stmts: []string{
			`ALTER TABLE kv_store ADD COLUMN updated_at DATETIME DEFAULT CURRENT_TIMESTAMP`,
		},
	},
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// upgrade applies one version's statements and stamps the version in the same transaction.
func (s *SQLiteStorage) upgrade(ctx context.Context, version int, stmts []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range stmts {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema version %d: %w", version, err)
		}
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("failed to stamp schema version %d: %w", version, err)
	}
	return tx.Commit()
}

// Migrate brings the schema up to ExpectedSchemaVersion. Already applied versions are skipped.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if current > ExpectedSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, ExpectedSchemaVersion)
	}

	for i := current; i < len(schema); i++ {
		version := i + 1
		if err := s.upgrade(ctx, version, schema[i].stmts); err != nil {
			return err
		}
		slog.Debug("Upgraded database schema", "version", version, "step", schema[i].name)
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, final)
	}
	return nil
}
