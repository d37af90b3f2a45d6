package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techcorp/toolspend/internal/api/handler"
)

type Server struct {
	httpServer *http.Server
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Handlers struct {
	Health      *handler.HealthHandler
	Dashboard   *handler.DashboardHandler
	Analytics   *handler.AnalyticsHandler
	Tools       *handler.ToolsHandler
	Selection   *handler.SelectionHandler
	Directory   *handler.DirectoryHandler
	History     *handler.HistoryHandler
	Refresh     *handler.RefreshHandler
	Preferences *handler.PreferencesHandler
}

func NewServer(handlers Handlers, cfg ServerConfig) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", handlers.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", handlers.Dashboard.Get)

	// Analytics
	mux.HandleFunc("GET /api/analytics", handlers.Analytics.Get)
	mux.HandleFunc("GET /api/analytics/departments", handlers.Analytics.DepartmentCosts)

	// Tools
	mux.HandleFunc("GET /api/tools", handlers.Tools.List)
	mux.HandleFunc("POST /api/tools", handlers.Tools.Create)
	mux.HandleFunc("PATCH /api/tools/{id}", handlers.Tools.Update)
	mux.HandleFunc("DELETE /api/tools/{id}", handlers.Tools.Delete)
	mux.HandleFunc("POST /api/tools/bulk-delete", handlers.Tools.BulkDelete)

	// Selection
	mux.HandleFunc("GET /api/selection", handlers.Selection.Get)
	mux.HandleFunc("POST /api/selection", handlers.Selection.Update)

	// Directory
	mux.HandleFunc("GET /api/departments", handlers.Directory.Departments)
	mux.HandleFunc("GET /api/users", handlers.Directory.Users)

	// History
	mux.HandleFunc("GET /api/history", handlers.History.List)

	// Refresh
	mux.HandleFunc("POST /api/refresh", handlers.Refresh.Trigger)
	mux.HandleFunc("GET /api/refresh/status", handlers.Refresh.Status)

	// Preferences
	mux.HandleFunc("GET /api/preferences", handlers.Preferences.GetTheme)
	mux.HandleFunc("PUT /api/preferences", handlers.Preferences.SetTheme)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Host + ":" + strconv.Itoa(cfg.Port),
			Handler:      withMiddleware(mux),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func (s *Server) Start() error {
	slog.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
