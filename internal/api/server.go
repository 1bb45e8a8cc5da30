// Package api configures and exposes the HTTP server, routes,
// metrics, health and profiling endpoints and the related middleware
// for the storefront service.
package api

import (
	"errors"
	"net/http"
	"storefront/internal/api/handler/pages"
	"storefront/internal/config"
	"storefront/pkg/controller"
	"storefront/pkg/metrics"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// PprofEnabled mounts the pprof endpoints under /debug/pprof.
	PprofEnabled bool
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		PprofEnabled:      cfg.HTTP.PprofEnabled,
	}
}

// Deps are the handlers and collectors the server routes to.
type Deps struct {
	Pages   *pages.Handler
	Metrics *metrics.Metrics
}

// routePattern reports the chi pattern the request matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}

	return ""
}

// NewRouter builds the route tree:
// - the HTML pages
// - Prometheus metrics endpoint (MetricsPath)
// - health check
// - pprof endpoints for profiling, when enabled
// Every route is instrumented and protected against panics.
func NewRouter(deps Deps, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return deps.Metrics.Instrument(routePattern, next)
	})

	// prometheus metrics server
	r.Method(http.MethodGet, opts.MetricsPath, deps.Metrics.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// pprof
	if opts.PprofEnabled {
		r.Mount(controller.PprofPrefix, controller.PprofMux())
	}

	deps.Pages.RegisterRoutes(r)

	return r
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It wraps the router with the logging middleware and applies a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	if deps.Pages == nil || deps.Metrics == nil {
		return nil, errors.New("pages handler and metrics are required")
	}

	// logger
	handler := controller.WithLogger(NewRouter(deps, opts))

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, opts.RequestTimeout, "request timed out"),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
