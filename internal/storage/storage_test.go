package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcorp/toolspend/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSnapshotsCreateAndList(t *testing.T) {
	db := testDB(t)
	repo := NewSnapshotsRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &models.SpendSnapshot{
			CollectedAt:      now.Add(time.Duration(-i) * time.Hour),
			TotalMonthlyCost: float64(400 - i),
			ToolsCount:       3,
			ActiveTools:      2,
			TotalActiveUsers: 80,
		})
		require.NoError(t, err)
	}

	snapshots, err := repo.List(ctx, now.Add(-90*time.Minute))
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	// Oldest first.
	assert.True(t, snapshots[0].CollectedAt.Before(snapshots[1].CollectedAt))
	assert.Equal(t, 399.0, snapshots[0].TotalMonthlyCost)
}

func TestSnapshotsLatest(t *testing.T) {
	db := testDB(t)
	repo := NewSnapshotsRepository(db)
	ctx := context.Background()

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	now := time.Now().UTC().Truncate(time.Second)
	_, err = repo.Create(ctx, &models.SpendSnapshot{CollectedAt: now.Add(-time.Hour), TotalMonthlyCost: 100})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.SpendSnapshot{CollectedAt: now, TotalMonthlyCost: 200})
	require.NoError(t, err)

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 200.0, latest.TotalMonthlyCost)
	assert.Equal(t, now, latest.CollectedAt)
}

func TestSnapshotsMalformedTimestampSurfaces(t *testing.T) {
	db := testDB(t)
	repo := NewSnapshotsRepository(db)
	ctx := context.Background()

	_, err := db.Conn().ExecContext(ctx, `
		INSERT INTO spend_snapshots (collected_at, total_monthly_cost, tools_count, active_tools, total_active_users)
		VALUES ('yesterday-ish', 100, 1, 1, 10)
	`)
	require.NoError(t, err)

	_, err = repo.Latest(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed collected_at")

	_, err = repo.List(ctx, time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed collected_at")
}

func TestRollupsCreateBatchAndList(t *testing.T) {
	db := testDB(t)
	snapshots := NewSnapshotsRepository(db)
	rollups := NewRollupsRepository(db)
	ctx := context.Background()

	snapshotID, err := snapshots.Create(ctx, &models.SpendSnapshot{CollectedAt: time.Now().UTC()})
	require.NoError(t, err)

	err = rollups.CreateBatch(ctx, []models.DepartmentRollup{
		{SnapshotID: snapshotID, Department: "Design", TotalCost: 80, ToolsCount: 1},
		{SnapshotID: snapshotID, Department: "Engineering", TotalCost: 320, ToolsCount: 2},
	})
	require.NoError(t, err)

	got, err := rollups.ListBySnapshot(ctx, snapshotID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Highest cost first.
	assert.Equal(t, "Engineering", got[0].Department)
	assert.Equal(t, 320.0, got[0].TotalCost)
}

func TestRollupsCreateBatchEmpty(t *testing.T) {
	db := testDB(t)
	assert.NoError(t, NewRollupsRepository(db).CreateBatch(context.Background(), nil))
}

func TestCleanupCascadesRollups(t *testing.T) {
	db := testDB(t)
	snapshots := NewSnapshotsRepository(db)
	rollups := NewRollupsRepository(db)
	ctx := context.Background()

	oldID, err := snapshots.Create(ctx, &models.SpendSnapshot{CollectedAt: time.Now().UTC().AddDate(0, 0, -100)})
	require.NoError(t, err)
	require.NoError(t, rollups.CreateBatch(ctx, []models.DepartmentRollup{
		{SnapshotID: oldID, Department: "Engineering", TotalCost: 100, ToolsCount: 1},
	}))

	freshID, err := snapshots.Create(ctx, &models.SpendSnapshot{CollectedAt: time.Now().UTC()})
	require.NoError(t, err)

	deleted, err := db.Cleanup(ctx, 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	gone, err := rollups.ListBySnapshot(ctx, oldID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	latest, err := snapshots.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, freshID, latest.ID)
}

func TestPreferences(t *testing.T) {
	db := testDB(t)
	repo := NewPreferencesRepository(db)
	ctx := context.Background()

	value, err := repo.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, repo.Set(ctx, ThemeKey, "light"))
	value, err = repo.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	// Upsert replaces the existing row.
	require.NoError(t, repo.Set(ctx, ThemeKey, "dark"))
	value, err = repo.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", value)
}

func TestStats(t *testing.T) {
	db := testDB(t)
	snapshots := NewSnapshotsRepository(db)
	ctx := context.Background()

	_, err := snapshots.Create(ctx, &models.SpendSnapshot{CollectedAt: time.Now().UTC()})
	require.NoError(t, err)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.SnapshotsCount)
	assert.Equal(t, int64(0), stats.RollupsCount)
}
