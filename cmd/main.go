package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/kickdirtbb/framing/internal/adapters/http/api"
	"github.com/kickdirtbb/framing/internal/adapters/mlbstats"
	"github.com/kickdirtbb/framing/internal/adapters/savant"
	app "github.com/kickdirtbb/framing/internal/app"
	"github.com/kickdirtbb/framing/internal/config"
	"github.com/kickdirtbb/framing/pkg/logger"
	"github.com/kickdirtbb/framing/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	writeTimeoutSlack         = 10 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	go startSystemMetricsUpdater(ctx)

	srv := newHTTPServer(ctx, cfg, newService(cfg, log))

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error(ctx, "HTTP server failed", logger.Error(err))
		stop()
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// newService wires the pitch source and name lookup into the service.
func newService(cfg *config.Config, log logger.Logger) *app.Service {
	source := savant.New(cfg.StatcastURL,
		savant.WithTimeout(cfg.FetchTimeout),
		savant.WithAttempts(cfg.FetchAttempts),
		savant.WithLogger(log.Named("savant")),
	)
	names := mlbstats.New(cfg.PeopleURL, mlbstats.WithTimeout(cfg.LookupTimeout))

	return app.New(source, names,
		app.WithMinCalledPitches(cfg.MinCalledPitches),
		app.WithLookupWorkers(cfg.LookupWorkers),
		app.WithLogger(log.Named("service")),
	)
}

// newHTTPServer builds the HTTP server. The write timeout leaves room for a
// full request timeout, which covers a slow Statcast download.
func newHTTPServer(ctx context.Context, cfg *config.Config, svc *app.Service) *http.Server {
	apiServer := api.NewServer(svc, svc,
		api.WithCORSOrigins(cfg.CORSOrigins),
		api.WithRequestTimeout(cfg.RequestTimeout),
	)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Routes(ctx),
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.RequestTimeout + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average pause since process start
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
