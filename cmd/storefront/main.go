// @title        NourTech Storefront API
// @version      1.0
// @description  Catalogue, ordering and cookie-session authentication for the NourTech storefront.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/api"
	"github.com/nourtech/storefront/internal/api/handler"
	"github.com/nourtech/storefront/internal/core/ports"
	"github.com/nourtech/storefront/internal/core/service"
	"github.com/nourtech/storefront/internal/infrastructure/config"
	mongodb "github.com/nourtech/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/nourtech/storefront/internal/infrastructure/db/redis"
	"github.com/nourtech/storefront/internal/infrastructure/memory"
	"github.com/nourtech/storefront/internal/infrastructure/password"
	"github.com/nourtech/storefront/internal/infrastructure/queue"
	"github.com/nourtech/storefront/internal/infrastructure/session"
	"github.com/nourtech/storefront/internal/infrastructure/storage"
	"github.com/nourtech/storefront/pkg/logger"
)

func main() {
	// Real environment variables win over .env entries.
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn().Err(envErr).Msg(".env file could not be loaded")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("storefront stopped")
	}
	log.Info().Msg("server exiting")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongodb.NewUserRepository(db)
	brands := mongodb.NewBrandRepository(db)
	products := mongodb.NewProductRepository(db)
	orders := mongodb.NewOrderRepository(db)
	contacts := mongodb.NewContactRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, brands, products, orders); err != nil {
		return err
	}

	revocations, closeRevocations, err := newRevocationStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRevocations()

	images := storage.NewClient(storage.Config{
		URL:        cfg.Storage.URL,
		ServiceKey: cfg.Storage.ServiceKey,
		Bucket:     cfg.Storage.Bucket,
		Timeout:    cfg.Storage.Timeout,
	})
	if !images.Configured() {
		log.Warn().Msg("image storage not configured; uploads will fail")
	}
	cleaner := queue.NewImageCleaner(cfg.ImageCleanupWorkers, images, log)
	cleaner.Start(ctx)

	// --- Sessions ---
	codec, err := session.NewCodec(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.Session.BcryptCost)

	// --- Services ---
	authService := service.NewAuthService(users, hasher, codec, log)
	productService := service.NewProductService(products, brands, cleaner, log)

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		created, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if !created {
			log.Debug().Str("username", cfg.Admin.Username).Msg("bootstrap admin already exists")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Auth:        authService,
		Users:       service.NewUserService(users, revocations, log),
		Brands:      service.NewBrandService(brands, products, cleaner, log),
		Products:    productService,
		Orders:      service.NewOrderService(orders, productService, log),
		Contact:     service.NewContactService(contacts),
		Uploads:     service.NewUploadService(images, log),
		Sessions:    codec,
		Revocations: revocations,
		Readiness: map[string]handler.PingFunc{
			"mongodb":     handler.MongoPing(db),
			"revocations": revocations.Ping,
		},
		Logger:         log,
		CookieSecure:   cfg.Session.CookieSecure,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRevocationStore picks Redis when REDIS_ADDR is set and a pruned
// in-memory list otherwise. The returned func releases its resources.
func newRevocationStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.RevocationStore, func(), error) {
	if cfg.Redis.Addr == "" {
		store := memory.NewRevocationStore(cfg.Session.TTL)
		stopPruner, err := store.StartPruner(cfg.Redis.PruneSchedule, log)
		if err != nil {
			return nil, nil, err
		}
		log.Warn().Msg("REDIS_ADDR not set; session revocations are kept in process memory")
		return store, stopPruner, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}
	return redisdb.NewRevocationStore(client, cfg.Session.TTL), closeClient, nil
}
