package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/techcorp/toolspend/internal/models"
)

type SnapshotsRepository struct {
	db *DB
}

func NewSnapshotsRepository(db *DB) *SnapshotsRepository {
	return &SnapshotsRepository{db: db}
}

func (r *SnapshotsRepository) Create(ctx context.Context, s *models.SpendSnapshot) (int64, error) {
	query := `
		INSERT INTO spend_snapshots (collected_at, total_monthly_cost, tools_count, active_tools, total_active_users)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.conn.ExecContext(ctx, query,
		s.CollectedAt.UTC().Format(time.RFC3339),
		s.TotalMonthlyCost,
		s.ToolsCount,
		s.ActiveTools,
		s.TotalActiveUsers,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// List returns snapshots collected at or after since, oldest first.
func (r *SnapshotsRepository) List(ctx context.Context, since time.Time) ([]models.SpendSnapshot, error) {
	query := `
		SELECT id, collected_at, total_monthly_cost, tools_count, active_tools, total_active_users
		FROM spend_snapshots
		WHERE collected_at >= ?
		ORDER BY collected_at ASC
	`
	rows, err := r.db.conn.QueryContext(ctx, query, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.SpendSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func (r *SnapshotsRepository) Latest(ctx context.Context) (*models.SpendSnapshot, error) {
	query := `
		SELECT id, collected_at, total_monthly_cost, tools_count, active_tools, total_active_users
		FROM spend_snapshots
		ORDER BY collected_at DESC
		LIMIT 1
	`
	row := r.db.conn.QueryRowContext(ctx, query)

	var (
		s           models.SpendSnapshot
		collectedAt string
	)
	err := row.Scan(&s.ID, &collectedAt, &s.TotalMonthlyCost, &s.ToolsCount, &s.ActiveTools, &s.TotalActiveUsers)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.CollectedAt, err = time.Parse(time.RFC3339, collectedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed collected_at %q: %w", collectedAt, err)
	}
	return &s, nil
}

func scanSnapshot(rows *sql.Rows) (models.SpendSnapshot, error) {
	var (
		s           models.SpendSnapshot
		collectedAt string
	)
	if err := rows.Scan(&s.ID, &collectedAt, &s.TotalMonthlyCost, &s.ToolsCount, &s.ActiveTools, &s.TotalActiveUsers); err != nil {
		return s, err
	}
	var err error
	s.CollectedAt, err = time.Parse(time.RFC3339, collectedAt)
	if err != nil {
		return s, fmt.Errorf("malformed collected_at %q: %w", collectedAt, err)
	}
	return s, nil
}
