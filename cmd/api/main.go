package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/comitanigiacomo/kanso-heatmap/docs"
	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/dateformat"
	adapterHTTP "github.com/comitanigiacomo/kanso-heatmap/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-heatmap/internal/config"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/services"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/workers"
)

// @title Kanso Heatmap API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	startTime := time.Now()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}

	store, storePing, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Critical: Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache and rate limiting: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
			store = repository.NewCachedEntityStore(store, rdb, cfg.CacheTTL)
		}
	}

	formatter := dateformat.New(loc)
	clock := zonedClock(loc)
	locks := domain.NewCollectionLocks()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	rollover := workers.NewRolloverWorker(store, cfg.RolloverInterval).WithClock(clock).WithLocks(locks)
	rollover.Start(ctx)
	for _, t := range domain.EntityTypes {
		rollover.Enqueue(t)
	}

	entityService := services.NewEntityService(store, formatter, cfg.DefaultLang).WithClock(clock).WithLocks(locks)
	heatmapService := services.NewHeatmapService(store, formatter, cfg.DefaultLang).WithClock(clock).WithLocks(locks)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Duration)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		EntityHandler:  adapterHTTP.NewEntityHandler(entityService, formatter),
		HeatmapHandler: adapterHTTP.NewHeatmapHandler(heatmapService),
		Tokens:         tokenService,
		StorePing:      storePing,
		Redis:          rdb,
		RateLimit:      cfg.RateLimit,
		StartTime:      startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Heatmap running on http://localhost:%s (store: %s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

// zonedClock reads the wall clock in loc so day boundaries match the rendered labels.
func zonedClock(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func openStore(cfg *config.Config) (domain.EntityStore, func(context.Context) error, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		log.Printf("Connecting to database with driver %s...", cfg.DB.Driver)

		db, err := sqlx.Connect(cfg.DB.Driver, cfg.DB.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		pg := repository.NewPostgresEntityStore(db)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}

		log.Println("Database connected successfully.")
		return pg, db.PingContext, func() { db.Close() }, nil

	case config.StoreSQLite:
		s, err := repository.OpenSQLiteEntityStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Printf("SQLite store opened at %s", cfg.SQLitePath)
		return s, s.Ping, func() { s.Close() }, nil

	case config.StoreMemory:
		log.Println("Using in-memory store; data is lost on restart.")
		return repository.NewInMemoryEntityStore(), nil, func() {}, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
