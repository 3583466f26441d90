// Command booksvc serves the book catalog over HTTP with a cache-aside
// layer in front of the persistent store.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/bookdata/go-book-catalog/cache"
	"github.com/bookdata/go-book-catalog/internal/cacheinfra"
	"github.com/bookdata/go-book-catalog/internal/config"
	"github.com/bookdata/go-book-catalog/internal/storage"
	"github.com/bookdata/go-book-catalog/internal/web"
	"github.com/bookdata/go-book-catalog/pkg/di"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("service exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Info("starting booksvc", "config", cfg.String())

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewBookRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	store, codec, closeStore, err := buildCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	container := di.NewContainer(repo, store, codec, logger)

	if cfg.Seed {
		seeder := storage.NewSeeder(repo, container.BookCache(), logger)
		if err := seeder.Run(ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	handler := web.NewBookHandler(container.Service(), logger)
	router := web.NewRouter(handler, logger, cfg.RequestTimeout)
	server := web.NewServer(cfg.HTTPAddr, router, logger)

	return server.Run(ctx)
}

func openDatabase(cfg config.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		// sqlite keeps its whole state behind one connection.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}
}

// buildCache selects the store and codec from config. The returned close
// function releases backend connections and is safe to call once.
func buildCache(cfg config.Config, logger *slog.Logger) (cache.Store, cache.Codec, func(), error) {
	codec := cache.JSONCodec()
	if cfg.CacheCodec == config.CodecMsgpack {
		codec = cache.MsgpackCodec()
	}

	switch cfg.CacheBackend {
	case config.BackendRedis:
		store, err := cacheinfra.NewRedisStore(cacheinfra.RedisConfig{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
		}, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		// The store is fail-open, so an unreachable backend only costs
		// cache hits. Surface it at startup anyway.
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			logger.Warn("redis unreachable, cache degrades to misses", "error", err)
		}
		return store, codec, func() { _ = store.Close() }, nil
	default:
		store, err := cacheinfra.NewMemoryStore(cacheinfra.DefaultMemoryConfig())
		if err != nil {
			return nil, nil, nil, err
		}
		return store, codec, func() {}, nil
	}
}
