package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/logger"
	"github.com/osse101/RelicWatch_Go/internal/metrics"
	"github.com/osse101/RelicWatch_Go/internal/sse"
)

// CatalogFunc returns the loaded catalog, or nil while it is still building
type CatalogFunc func() *domain.Catalog

// SnapshotProvider exposes the most recent reward snapshot
type SnapshotProvider interface {
	Latest() (domain.RewardSnapshot, bool)
}

// Server is the local status server: health, metrics, the latest snapshot
// and the overlay streams
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, catalog CatalogFunc, snapshots SnapshotProvider, hub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(catalog, snapshots, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the status routes
func NewRouter(catalog CatalogFunc, snapshots SnapshotProvider, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get(RouteHealthz, HandleHealthz())
	r.Get(RouteReadyz, HandleReadyz(catalog))
	r.Handle(RouteMetrics, promhttp.Handler())

	r.Route(RouteAPI, func(r chi.Router) {
		r.Get(RouteSnapshot, HandleSnapshot(snapshots))
		r.Get(RouteCatalog, HandleCatalog(catalog))
		r.Get(RouteOverlayEvents, sse.Handler(hub))
		r.Get(RouteOverlaySocket, sse.WebsocketHandler(hub))
	})

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Debug(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called. It returns http.ErrServerClosed after a
// graceful stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
