package startup

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Veikkosuhonen/cloudcafe/internal/http/handlers/health"
	"github.com/Veikkosuhonen/cloudcafe/internal/http/handlers/subscription"
	"github.com/Veikkosuhonen/cloudcafe/internal/metrics"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage"
)

// Deps are the shared, process-wide collaborators handed to every handler.
type Deps struct {
	Storage storage.Storage
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
	// Registry defaults to a fresh registry, exposed on /metrics.
	Registry       *prometheus.Registry
	AllowedOrigins []string
}

// NewRouter registers all routes.
//
// Route table:
//
//	GET  /health_check  → liveness probe
//	POST /subscribe     → create a subscription from a form body
//	GET  /metrics       → Prometheus exposition
func NewRouter(deps Deps) http.Handler {
	if deps.TracerProvider == nil {
		deps.TracerProvider = otel.GetTracerProvider()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	m := metrics.New(deps.Registry)
	tracer := deps.TracerProvider.Tracer(subscription.TracerName)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	// Recoverer sits inside the logger so a panic is logged as a 500.
	r.Use(middleware.Recoverer)

	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health_check", health.Check())
	r.Post("/subscribe", subscription.Subscribe(deps.Storage, tracer, m))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	return r
}

// requestLogger logs one line per request once the response is written.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.InfoContext(r.Context(), "request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
