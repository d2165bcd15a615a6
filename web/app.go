package web

import (
	"context"
	"time"

	"cinematch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// App holds what the HTTP handlers share: configuration, the title
// catalog, the backend client and the per-session controllers.
type App struct {
	Config   *models.Config
	Catalog  *models.Catalog
	Backend  models.MovieBackend
	Sessions *SessionStore
	Signer   *models.SessionSigner
	Limiter  *IPRateLimiter // nil disables rate limiting
	Posters  *models.TrendingPosters

	trustedProxies map[string]bool
	stop           chan struct{}
}

// NewApp wires the application from cfg. A nil backend means a real
// BackendClient for cfg.BackendURL, cached when cfg.CacheTTL is set.
func NewApp(cfg *models.Config, catalog *models.Catalog, backend models.MovieBackend) (*App, error) {
	if catalog == nil {
		catalog = models.LoadCatalogFile(cfg.TitlesFile)
	}
	var cache *models.LookupCache
	if backend == nil {
		backend, cache = cfg.NewMovieBackend()
	}

	signer, err := models.NewSessionSigner(cfg.SessionSecret, 24*time.Hour)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create session signer")
	}

	app := &App{
		Config:  cfg,
		Catalog: catalog,
		Backend: backend,
		Signer:  signer,
		Posters: models.NewTrendingPosters(),
		stop:    make(chan struct{}),

		trustedProxies: make(map[string]bool, len(cfg.TrustedProxies)),
	}
	for _, ip := range cfg.TrustedProxies {
		app.trustedProxies[ip] = true
	}

	opts := cfg.ControllerOptions()
	opts.Posters = app.Posters
	app.Sessions = NewSessionStore(func() *models.SearchController {
		return models.NewSearchController(catalog, backend, opts)
	}, cfg.SessionIdleTimeout)
	app.Sessions.StartSweeper(time.Minute, app.stop)

	go app.resolveTrendingPosters()

	if cache != nil {
		cache.StartPurger(time.Minute, app.stop)
	}

	if cfg.RateLimitPerSecond > 0 {
		app.Limiter = NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, 10*time.Minute)
		app.Limiter.StartCleanup(time.Minute, app.stop)
	}

	return app, nil
}

// resolveTrendingPosters fills in dashboard posters once, in the
// background, so startup does not wait on the backend.
func (a *App) resolveTrendingPosters() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-a.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	titles := a.Catalog.Trending()
	n := a.Posters.Resolve(ctx, a.Backend, titles, a.Config.RequestTimeout)
	logger.Debug("Trending posters resolved", "resolved", n, "titles", len(titles))
}

// Close stops background workers.
func (a *App) Close() {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
}
