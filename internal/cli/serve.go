package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/techcorp/toolspend/internal/api"
	"github.com/techcorp/toolspend/internal/api/handler"
	"github.com/techcorp/toolspend/internal/config"
	"github.com/techcorp/toolspend/internal/gateway"
	"github.com/techcorp/toolspend/internal/prefs"
	"github.com/techcorp/toolspend/internal/refresher"
	"github.com/techcorp/toolspend/internal/state"
	"github.com/techcorp/toolspend/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard server",
	Long:  `Starts the HTTP API and the background catalog refresher.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logLevel := cfg.LogLevel()
	if verbose || os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	db, err := storage.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshotsRepo := storage.NewSnapshotsRepository(db)
	rollupsRepo := storage.NewRollupsRepository(db)
	preferencesRepo := storage.NewPreferencesRepository(db)

	gw, err := gateway.NewClient(gateway.Config{
		URL:      cfg.Upstream.URL,
		Username: cfg.Upstream.Username,
		Password: cfg.Upstream.Password,
		Timeout:  cfg.Upstream.Timeout,
	})
	if err != nil {
		return err
	}

	catalog := state.NewCatalogStore()
	dashboard := state.NewDashboardStore()

	refr := refresher.New(gw, catalog, dashboard, snapshotsRepo, rollupsRepo, refresher.Config{
		Interval:  cfg.Refresh.Interval,
		Retention: cfg.RetentionDuration(),
		DB:        db,
	})

	prefsService := prefs.NewService(preferencesRepo)
	unsubscribe := prefsService.Subscribe(func(theme prefs.Theme) {
		slog.Info("theme preference changed", "theme", theme)
	})
	defer unsubscribe()

	selection := handler.NewSelectionState()

	server := api.NewServer(api.Handlers{
		Health:      handler.NewHealthHandler(gw, db, refr),
		Dashboard:   handler.NewDashboardHandler(dashboard, gw),
		Analytics:   handler.NewAnalyticsHandler(catalog, dashboard, gw, cfg.Budget.MonthlyLimit),
		Tools:       handler.NewToolsHandler(catalog, selection, gw),
		Selection:   handler.NewSelectionHandler(selection, catalog),
		Directory:   handler.NewDirectoryHandler(gw),
		History:     handler.NewHistoryHandler(snapshotsRepo, rollupsRepo),
		Refresh:     handler.NewRefreshHandler(refr),
		Preferences: handler.NewPreferencesHandler(prefsService),
	}, api.ServerConfig{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go refr.Start(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
