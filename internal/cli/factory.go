package cli

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edulab/stepwise"
	"github.com/edulab/stepwise/internal/adapters/redis"
	"github.com/edulab/stepwise/internal/config"
	"github.com/edulab/stepwise/pkg/adapters/memory"
	"github.com/edulab/stepwise/pkg/observability"
	"github.com/edulab/stepwise/pkg/persistence/middleware"
	"github.com/edulab/stepwise/pkg/ports"
	"github.com/edulab/stepwise/pkg/session"
)

// App bundles the long-lived pieces a serving command needs.
type App struct {
	Engine   *stepwise.Engine
	Sessions *session.Manager
	Registry *prometheus.Registry
	closer   func() error
}

// Close releases the session store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// buildApp wires the trace engine, metrics, and the configured store into
// a session manager.
func buildApp(cfg *config.Config, logger *slog.Logger) *App {
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	hooks := metrics.Hooks()

	engine := stepwise.New(
		stepwise.WithLogger(logger),
		stepwise.WithLifecycleHooks(hooks),
		stepwise.WithIterationCaps(cfg.Trace.ForLoopCap, cfg.Trace.WhileLoopCap),
		stepwise.WithAutoPlayInterval(cfg.Playback.AutoPlayInterval),
	)

	var store ports.TimelineStore
	var closer func() error
	switch cfg.Store.Backend {
	case "redis":
		rs := redis.New(cfg.Store.Address, cfg.Store.Password, cfg.Store.DB,
			redis.WithTTL(cfg.Store.TTL))
		store = rs
		closer = rs.Close
	default:
		store = memory.NewStore()
	}
	store = wrapStore(cfg.Store, store)

	sessions := session.NewManager(engine.Builder(),
		session.WithStore(store),
		session.WithLogger(logger),
		session.WithLifecycleHooks(hooks),
	)

	return &App{
		Engine:   engine,
		Sessions: sessions,
		Registry: registry,
		closer:   closer,
	}
}

// wrapStore layers the configured persistence middleware over a store.
// Redaction runs before encryption so masked snapshots are what get
// sealed.
func wrapStore(cfg config.StoreConfig, store ports.TimelineStore) ports.TimelineStore {
	if key, err := cfg.DecodedEncryptionKey(); err == nil && key != nil {
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}
	if len(cfg.RedactPatterns) > 0 {
		store = middleware.NewRedactionMiddleware(cfg.RedactPatterns)(store)
	}
	return store
}
