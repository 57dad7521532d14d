// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kickdirtbb/framing/internal/adapters/http/swagger"
	"github.com/kickdirtbb/framing/internal/domain/types"
	"github.com/kickdirtbb/framing/pkg/logger"
	"github.com/kickdirtbb/framing/pkg/metrics"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Catchers(ctx context.Context, date string) ([]types.CatcherGameMetrics, error)
	Plot(ctx context.Context, catcherID, gamePK int64, date string) (types.ChartData, error)
}

// Server wires HTTP routes for the framing API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	catchersHandler *CatchersHandler
	plotHandler     *PlotHandler

	corsOrigins    []string
	requestTimeout time.Duration
	now            func() time.Time
	logger         logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed browser origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRequestTimeout bounds every request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithClock overrides the clock used to pick the default date.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for request logging.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		corsOrigins:    []string{"*"},
		requestTimeout: 90 * time.Second,
		now:            time.Now,
		logger:         logger.Get().Named("http"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler(s.now)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.catchersHandler = NewCatchersHandler(deps, s.defaultDate)
	s.plotHandler = NewPlotHandler(deps, s.defaultDate)
	return s
}

// defaultDate is yesterday in server local time.
func (s *Server) defaultDate() string {
	return s.now().AddDate(0, 0, -1).Format(dateLayout)
}

// Routes builds the router with middleware and every route attached.
func (s *Server) Routes(ctx context.Context) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.With(MetricsMiddleware("health")).Get("/health", s.healthHandler.HandleHealth)
		r.With(MetricsMiddleware("stats")).Get("/stats", s.statsHandler.HandleStats)
		r.With(MetricsMiddleware("catchers")).Get("/statcast/catchers", s.catchersHandler.HandleGetCatchers)
		r.With(MetricsMiddleware("plot")).Get("/plot/{catcher_id}/{game_pk}", s.plotHandler.HandleGetPlot)
	})
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	swagger.Register(ctx, r)

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
