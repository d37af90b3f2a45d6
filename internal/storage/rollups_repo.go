package storage

import (
	"context"

	"github.com/techcorp/toolspend/internal/models"
)

type RollupsRepository struct {
	db *DB
}

func NewRollupsRepository(db *DB) *RollupsRepository {
	return &RollupsRepository{db: db}
}

func (r *RollupsRepository) CreateBatch(ctx context.Context, rollups []models.DepartmentRollup) error {
	if len(rollups) == 0 {
		return nil
	}

	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO department_rollups (snapshot_id, department, total_cost, tools_count)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rollup := range rollups {
		_, err = stmt.ExecContext(ctx, rollup.SnapshotID, rollup.Department, rollup.TotalCost, rollup.ToolsCount)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListBySnapshot returns a snapshot's rollups, highest cost first.
func (r *RollupsRepository) ListBySnapshot(ctx context.Context, snapshotID int64) ([]models.DepartmentRollup, error) {
	query := `
		SELECT id, snapshot_id, department, total_cost, tools_count
		FROM department_rollups
		WHERE snapshot_id = ?
		ORDER BY total_cost DESC
	`
	rows, err := r.db.conn.QueryContext(ctx, query, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rollups []models.DepartmentRollup
	for rows.Next() {
		var rollup models.DepartmentRollup
		if err := rows.Scan(&rollup.ID, &rollup.SnapshotID, &rollup.Department, &rollup.TotalCost, &rollup.ToolsCount); err != nil {
			return nil, err
		}
		rollups = append(rollups, rollup)
	}
	return rollups, rows.Err()
}
