// Package refresher drives the periodic catalog and analytics reload. The
// two upstream fetches of a cycle run concurrently and settle
// independently; either side failing degrades that side only.
package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/techcorp/toolspend/internal/gateway"
	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/state"
	"github.com/techcorp/toolspend/internal/storage"
)

var (
	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "toolspend_refresh_failures_total",
		Help: "Number of refresh cycles with at least one failed fetch.",
	})
	lastRefreshUnix = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "toolspend_last_refresh_timestamp_seconds",
		Help: "Unix time of the last completed refresh cycle.",
	})
	refreshDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "toolspend_refresh_duration_seconds",
		Help: "Duration of the last refresh cycle.",
	})
)

type Refresher struct {
	gw        *gateway.Client
	catalog   *state.CatalogStore
	dashboard *state.DashboardStore
	snapshots *storage.SnapshotsRepository
	rollups   *storage.RollupsRepository
	db        *storage.DB

	interval  time.Duration
	retention time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
	status   models.RefreshStatus
	logger   *slog.Logger

	parentCtx context.Context // set by Start, used for triggered refreshes
	wg        sync.WaitGroup  // tracks async triggered refreshes
}

type Config struct {
	Interval  time.Duration
	Retention time.Duration
	DB        *storage.DB
}

func New(
	gw *gateway.Client,
	catalog *state.CatalogStore,
	dashboard *state.DashboardStore,
	snapshots *storage.SnapshotsRepository,
	rollups *storage.RollupsRepository,
	cfg Config,
) *Refresher {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention == 0 {
		cfg.Retention = 90 * 24 * time.Hour
	}

	return &Refresher{
		gw:        gw,
		catalog:   catalog,
		dashboard: dashboard,
		snapshots: snapshots,
		rollups:   rollups,
		db:        cfg.DB,
		interval:  cfg.Interval,
		retention: cfg.Retention,
		stopCh:    make(chan struct{}),
		logger:    slog.Default(),
	}
}

func (r *Refresher) Start(ctx context.Context) {
	// TriggerRefresh reads parentCtx under the same lock; Start usually
	// runs in its own goroutine.
	r.mu.Lock()
	r.parentCtx = ctx
	r.mu.Unlock()
	r.logger.Info("starting refresher", "interval", r.interval)

	r.executeRefresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.mu.Lock()
		r.status.NextRefreshAt = time.Now().Add(r.interval)
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			r.wg.Wait()
			r.logger.Info("refresher stopped")
			return
		case <-r.stopCh:
			r.wg.Wait()
			r.logger.Info("refresher stopped")
			return
		case <-ticker.C:
			r.executeRefresh(ctx)
		}
	}
}

func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}

// TriggerRefresh starts an asynchronous refresh cycle unless one is
// already running.
func (r *Refresher) TriggerRefresh() error {
	r.mu.Lock()
	if r.status.Running {
		r.mu.Unlock()
		return ErrRefreshAlreadyRunning
	}
	r.status.Running = true
	r.status.LastError = ""
	ctx := r.parentCtx
	r.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.doRefresh(ctx)
	}()
	return nil
}

func (r *Refresher) Status() models.RefreshStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// executeRefresh acquires the running flag and refreshes synchronously.
func (r *Refresher) executeRefresh(ctx context.Context) {
	r.mu.Lock()
	if r.status.Running {
		r.mu.Unlock()
		return
	}
	r.status.Running = true
	r.status.LastError = ""
	r.mu.Unlock()

	r.doRefresh(ctx)
}

// doRefresh runs one cycle. Caller must have set status.Running.
func (r *Refresher) doRefresh(ctx context.Context) {
	start := time.Now()
	logger := r.logger.With("refresh_at", start.Format(time.RFC3339))
	logger.Info("starting refresh")

	catalogGen := r.catalog.Begin()
	analyticsGen := r.dashboard.BeginAnalytics()
	recentGen := r.dashboard.BeginRecent()

	var (
		wg           sync.WaitGroup
		tools        []models.Tool
		toolsErr     error
		analyticsErr error
		recentErr    error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		tools, toolsErr = r.gw.ListTools(ctx, gateway.ToolQuery{})
		r.catalog.Complete(catalogGen, tools, toolsErr)
	}()
	go func() {
		defer wg.Done()
		analytics, err := r.gw.GetAnalytics(ctx)
		analyticsErr = err
		r.dashboard.CompleteAnalytics(analyticsGen, analytics, err)
	}()
	go func() {
		defer wg.Done()
		recent, err := r.gw.RecentTools(ctx)
		recentErr = err
		r.dashboard.CompleteRecent(recentGen, recent, err)
	}()
	wg.Wait()

	var cycleErr error
	for _, err := range []error{toolsErr, analyticsErr, recentErr} {
		if err != nil {
			cycleErr = err
			logger.Error("refresh fetch failed", "error", err)
		}
	}

	if toolsErr == nil {
		r.persistSnapshot(ctx, start, tools)
		r.runCleanup(ctx)
	}

	duration := time.Since(start)
	lastRefreshUnix.SetToCurrentTime()
	refreshDuration.Set(duration.Seconds())
	if cycleErr != nil {
		refreshFailures.Inc()
	}

	r.mu.Lock()
	r.status.Running = false
	r.status.LastRefreshAt = start
	r.status.LastDuration = duration.String()
	if cycleErr != nil {
		r.status.LastError = cycleErr.Error()
	} else {
		r.status.ToolsCount = len(tools)
	}
	r.mu.Unlock()

	logger.Info("refresh complete", "tools", len(tools), "duration", duration)
}

func (r *Refresher) persistSnapshot(ctx context.Context, collectedAt time.Time, tools []models.Tool) {
	if r.snapshots == nil {
		return
	}

	snapshot := buildSnapshot(collectedAt, tools)
	snapshotID, err := r.snapshots.Create(ctx, &snapshot)
	if err != nil {
		r.logger.Error("failed to persist spend snapshot", "error", err)
		return
	}

	rollups := buildRollups(snapshotID, tools)
	if err := r.rollups.CreateBatch(ctx, rollups); err != nil {
		r.logger.Error("failed to persist department rollups", "error", err)
	}
}

func (r *Refresher) runCleanup(ctx context.Context) {
	if r.db == nil || r.retention == 0 {
		return
	}

	deleted, err := r.db.Cleanup(ctx, r.retention)
	if err != nil {
		r.logger.Error("cleanup failed", "error", err)
		return
	}

	if deleted > 0 {
		r.logger.Info("cleanup completed", "deleted_snapshots", deleted)
	}
}

func buildSnapshot(collectedAt time.Time, tools []models.Tool) models.SpendSnapshot {
	snapshot := models.SpendSnapshot{
		CollectedAt: collectedAt.Truncate(time.Second),
		ToolsCount:  len(tools),
	}
	for _, t := range tools {
		snapshot.TotalMonthlyCost += t.MonthlyCost
		snapshot.TotalActiveUsers += t.ActiveUsersCount
		if t.Status == models.StatusActive {
			snapshot.ActiveTools++
		}
	}
	return snapshot
}

func buildRollups(snapshotID int64, tools []models.Tool) []models.DepartmentRollup {
	byDept := make(map[string]*models.DepartmentRollup)
	var order []string

	for _, t := range tools {
		rollup, ok := byDept[t.OwnerDepartment]
		if !ok {
			rollup = &models.DepartmentRollup{
				SnapshotID: snapshotID,
				Department: t.OwnerDepartment,
			}
			byDept[t.OwnerDepartment] = rollup
			order = append(order, t.OwnerDepartment)
		}
		rollup.TotalCost += t.MonthlyCost
		rollup.ToolsCount++
	}

	rollups := make([]models.DepartmentRollup, 0, len(order))
	for _, name := range order {
		rollups = append(rollups, *byDept[name])
	}
	return rollups
}

type refreshError string

func (e refreshError) Error() string { return string(e) }

const ErrRefreshAlreadyRunning = refreshError("refresh already running")
