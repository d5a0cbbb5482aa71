package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	activityhandler "callsync/internal/activity/handler"
	csvimporthandler "callsync/internal/csvimport/handler"
	matchinghandler "callsync/internal/matching/handler"
	"callsync/internal/platform/metrics"
	"callsync/internal/platform/middleware"
	"callsync/internal/ratelimit"
	recordingshandler "callsync/internal/recordings/handler"
)

// requestTimeout bounds every API request. Match computation on a large
// pool stays well inside this; anything slower is stuck, not slow.
const requestTimeout = 30 * time.Second

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Recordings *recordingshandler.Handler
	Imports    *csvimporthandler.Handler
	Matching   *matchinghandler.Handler
	Activity   *activityhandler.Handler

	Auth      middleware.TokenValidator
	RateLimit *ratelimit.Middleware
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	// Readiness checks by dependency name; nil entries are skipped.
	Ready map[string]HealthChecker
}

// NewRouter assembles the public API. All v1 routes require a bearer token;
// the CSV upload route sits outside the JSON content-type guard because it
// takes the file itself.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.LatencyMiddleware(deps.Metrics))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", handleReadyz(deps.Ready, deps.Logger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Auth, deps.Logger))

		// CSV upload takes text/csv or multipart bodies.
		r.Group(func(r chi.Router) {
			if deps.RateLimit != nil {
				r.Use(deps.RateLimit.PerUser("import", 10, time.Minute))
			}
			r.Post("/imports", deps.Imports.HandleUpload)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.ContentTypeJSON)

			r.Get("/imports", deps.Imports.HandleList)
			r.Get("/imports/{importID}", deps.Imports.HandleGet)

			deps.Recordings.Register(r)
			deps.Activity.Register(r)

			r.Group(func(r chi.Router) {
				if deps.RateLimit != nil {
					r.Use(deps.RateLimit.PerUser("match", 60, time.Minute))
				}
				deps.Matching.Register(r)
			})
		})
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz pings every backing dependency. Any failure flips the whole
// endpoint to 503 so load balancers stop routing here.
func handleReadyz(checks map[string]HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(ctx); err != nil {
				logger.WarnContext(ctx, "readiness check failed",
					"dependency", name,
					"error", err,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable","dependency":"` + name + `"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}
