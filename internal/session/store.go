package session

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/glass/internal/repositories"
	"github.com/desertthunder/glass/internal/shared"
	"github.com/redis/go-redis/v9"
)

// memCleanupInterval is how often the memory store drops expired sessions.
const memCleanupInterval = time.Minute

// CloseFunc releases whatever a store holds open.
type CloseFunc func() error

// NewStore opens the session store named by cfg.Session.Store.
//
// The returned [CloseFunc] stops background sweeps and closes connections; call it on shutdown.
func NewStore(ctx context.Context, cfg *shared.Config, logger *log.Logger) (scs.Store, CloseFunc, error) {
	switch cfg.Session.Store {
	case "", shared.StoreMemory:
		store := memstore.NewWithCleanupInterval(memCleanupInterval)
		return store, func() error { store.StopCleanup(); return nil }, nil
	case shared.StoreSQLite:
		return newSQLiteStore(cfg.Database, logger)
	case shared.StoreRedis:
		return newRedisStore(ctx, cfg.Session.RedisURL)
	default:
		return nil, nil, fmt.Errorf("%w: unknown session store %q", shared.ErrInvalidConfig, cfg.Session.Store)
	}
}

func newSQLiteStore(cfg shared.DatabaseConfig, logger *log.Logger) (scs.Store, CloseFunc, error) {
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}
	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrSessionStore, err)
	}

	repo := repositories.NewSessionRepository(db, shared.WithLogger(logger, "store", shared.StoreSQLite))
	repo.StartCleanup(repositories.DefaultCleanupInterval)

	return repo, func() error {
		repo.StopCleanup()
		return db.Close()
	}, nil
}

func newRedisStore(ctx context.Context, url string) (scs.Store, CloseFunc, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: redis_url: %v", shared.ErrInvalidConfig, err)
	}

	client := redis.NewClient(opts)
	repo := repositories.NewRedisSessionRepository(client)
	if err := repo.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, err
	}

	return repo, client.Close, nil
}
