// Package storage keeps the local spend history: one snapshot per refresh
// cycle plus per-department rollups, and the persisted display preference.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		slog.Debug("running migration", "file", entry.Name())

		if _, err := db.conn.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type DBStats struct {
	SnapshotsCount int64
	RollupsCount   int64
	SizeBytes      int64
}

func (db *DB) Stats(ctx context.Context) (*DBStats, error) {
	var stats DBStats

	row := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM spend_snapshots")
	if err := row.Scan(&stats.SnapshotsCount); err != nil {
		return nil, err
	}

	row = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM department_rollups")
	if err := row.Scan(&stats.RollupsCount); err != nil {
		return nil, err
	}

	row = db.conn.QueryRowContext(ctx, "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	if err := row.Scan(&stats.SizeBytes); err != nil {
		stats.SizeBytes = 0
	}

	return &stats, nil
}

// Cleanup drops snapshots past the retention window; rollups follow via
// CASCADE.
func (db *DB) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UTC().Format(time.RFC3339)

	result, err := db.conn.ExecContext(ctx,
		"DELETE FROM spend_snapshots WHERE collected_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup snapshots: %w", err)
	}
	deleted, _ := result.RowsAffected()

	if deleted > 0 {
		if _, err := db.conn.ExecContext(ctx, "VACUUM"); err != nil {
			slog.Warn("failed to vacuum database", "error", err)
		}
	}

	return deleted, nil
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}
