package web

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// NewServer creates and configures the RWeb server on the configured address.
func NewServer(app *App) *rweb.Server {
	return NewTestServer(app, rweb.ServerOptions{
		Address: app.Config.Address,
		Verbose: app.Config.LogLevel == "debug",
	})
}

// NewTestServer builds the server with explicit options, e.g. a dynamic
// "localhost:" address and a ReadyChan for tests.
func NewTestServer(app *App, opts rweb.ServerOptions) *rweb.Server {
	s := rweb.NewServer(opts)

	s.Use(rweb.RequestInfo)          // Logs request info
	s.Use(CorsMiddleware)            // Custom CORS middleware
	s.Use(app.RateLimitMiddleware)   // Per-client token bucket
	s.Use(app.SessionMiddleware)     // Session -> search controller
	s.Use(SecurityHeadersMiddleware) // Security headers
	s.Use(LoggingMiddleware)         // Request logging

	setupRoutes(s)

	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("CineMatch web server starting", "address", address)
	return s.Run()
}

// StartMetricsServer serves Prometheus metrics on a separate listener.
// An empty address disables it.
func StartMetricsServer(address string) {
	if address == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Metrics server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.LogErr(serr.Wrap(err, "metrics server stopped"), "address", address)
		}
	}()
}
