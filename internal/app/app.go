package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/blackeffigyeel/exam-orch/internal/cache"
	"github.com/blackeffigyeel/exam-orch/internal/config"
	"github.com/blackeffigyeel/exam-orch/internal/repository"
	"github.com/blackeffigyeel/exam-orch/internal/service"
	"github.com/blackeffigyeel/exam-orch/internal/transport/rest"
	"github.com/blackeffigyeel/exam-orch/internal/transport/ws"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// App owns the store, cache, services and hub for one process
type App struct {
	SessionRepo  repository.SessionRepo
	ProctorRepo  repository.ProctorRepo
	SessionCache *cache.ReadThrough

	Sessions *service.SessionService
	Proctors *service.ProctorService
	Hub      *ws.Hub

	closers []func(context.Context) error
}

// New connects the configured backends and wires the services
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	if err := a.openStore(ctx, cfg); err != nil {
		a.Close(ctx)
		return nil, err
	}
	if err := a.openCache(ctx, cfg); err != nil {
		a.Close(ctx)
		return nil, err
	}

	opts := service.Options{StoreTimeout: cfg.StoreTimeout}
	a.Hub = ws.NewHub()
	a.closers = append(a.closers, func(context.Context) error {
		a.Hub.Close()
		return nil
	})
	log.Println("WebSocket hub started")

	a.Sessions = service.NewSessionService(a.SessionRepo, a.SessionCache, opts)
	a.Proctors = service.NewProctorService(a.SessionRepo, a.ProctorRepo, a.SessionCache, opts)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	a.Sessions.SetBroadcaster(a.Hub)
	a.Proctors.SetBroadcaster(a.Hub)

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) error {
	if cfg.StoreBackend != config.BackendMongo {
		a.SessionRepo = repository.NewMemorySessionRepo()
		a.ProctorRepo = repository.NewMemoryProctorRepo()
		log.Println("Using in-memory store")
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	a.closers = append(a.closers, client.Disconnect)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureSessionIndexes(pingCtx, db); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	a.SessionRepo = repository.NewSessionRepo(db)
	a.ProctorRepo = repository.NewProctorRepo(db)
	log.Printf("Connected to MongoDB database %s", cfg.MongoDatabase)
	return nil
}

func (a *App) openCache(ctx context.Context, cfg *config.Config) error {
	if cfg.RedisURI == "" {
		a.SessionCache = cache.NewReadThrough(cache.NewNopSessionCache())
		log.Println("Session cache disabled (REDIS_URI not set)")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURI,
	})
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	a.SessionCache = cache.NewReadThrough(cache.NewSessionCache(rdb, cfg.CacheTTL))
	log.Println("Connected to Redis")
	return nil
}

// Router builds the HTTP handler
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		SessionService: a.Sessions,
		ProctorService: a.Proctors,
		WSHub:          a.Hub,
	})
}

// Close releases connections in reverse order of opening
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
