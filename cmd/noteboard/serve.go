package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"noteboard/internal/board/adapters/cache"
	grpcAdapter "noteboard/internal/board/adapters/grpc"
	httpServer "noteboard/internal/board/adapters/http"
	"noteboard/internal/board/adapters/http/board"
	"noteboard/internal/board/adapters/http/middleware"
	blobminio "noteboard/internal/board/adapters/minio"
	boardpg "noteboard/internal/board/adapters/postgres"
	"noteboard/internal/board/adapters/services"
	"noteboard/internal/board/app"
	"noteboard/internal/board/ports/stores"
	"noteboard/internal/board/resilience"
	"noteboard/pkg/db/postgres"
	redisdb "noteboard/pkg/db/redis"
	"noteboard/pkg/logger"
	"noteboard/pkg/shutdown"
)

// Константы для сообщений об ошибках запуска.
const (
	ErrInitDB          = "failed to initialize database"
	ErrInitStorage     = "failed to initialize object storage"
	ErrEnsureBucket    = "failed to ensure bucket"
	ErrCreateRedis     = "failed to create redis client"
	ErrInitView        = "failed to initialize view"
	ErrStartHealth     = "failed to start health server"
	ErrStartHTTPServer = "failed to start HTTP server"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "noteboard service started"
	LogServiceShutdownDone = "noteboard service shutdown complete"
	LogApplyingMigrations  = "applying database migrations"
	LogInitStores          = "initializing stores"
	LogInitCache           = "initializing url cache"
	LogCacheDisabled       = "redis is not configured, url cache disabled"
	LogAuthEnabled         = "token authentication enabled"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStartingHealth      = "starting health server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connection"
)

// Имена защищаемых хранилищ.
const (
	breakerRecords = "record_store"
	breakerBlobs   = "blob_store"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the note board HTTP server",
	Long:  `Serve applies migrations, connects to PostgreSQL, MinIO and optionally Redis, then serves the board over HTTP and health over gRPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	if !skipMigrations {
		log.Info(ctx, LogApplyingMigrations, zap.String("path", cfg.Postgres.MigrationsDir))
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsDir); err != nil {
			return err
		}
	}

	log.Info(ctx, LogInitStores)
	database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.GetOptions())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitDB, err)
	}
	records := boardpg.NewNoteStore(database.Pool())

	minioClient, err := blobminio.NewClient(cfg.Storage.GetClientConfig())
	if err != nil {
		database.Close(ctx)
		return fmt.Errorf("%s: %w", ErrInitStorage, err)
	}
	blobStore := blobminio.NewBlobStore(minioClient, cfg.Storage.Bucket, cfg.Storage.PresignExpiry)
	if err := blobStore.EnsureBucket(ctx, cfg.Storage.Region); err != nil {
		database.Close(ctx)
		return fmt.Errorf("%s: %w", ErrEnsureBucket, err)
	}

	var blobs stores.BlobStore = blobStore
	var urlCache *cache.RedisCache
	if cfg.Redis.Enabled() {
		log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
		redisClient, err := redisdb.NewClient(ctx, cfg.Redis.GetClientConfig())
		if err != nil {
			database.Close(ctx)
			return fmt.Errorf("%s: %w", ErrCreateRedis, err)
		}
		urlCache = cache.NewRedisCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.URLTTL)
		blobs = cache.NewCachedBlobStore(blobs, urlCache, cfg.Redis.URLTTL)
	} else {
		log.Info(ctx, LogCacheDisabled)
	}

	breaker := cfg.Breaker.GetCircuitBreakerConfig()
	guardedRecords := resilience.NewGuardedRecordStore(records, resilience.NewServiceResilience(breakerRecords, breaker))
	guardedBlobs := resilience.NewGuardedBlobStore(blobs, resilience.NewServiceResilience(breakerBlobs, breaker))

	sessions := app.NewSessions(func() *app.NoteBoard {
		return app.NewNoteBoard(guardedRecords, guardedBlobs, app.WithResolveLimit(cfg.Session.ResolveLimit))
	}, cfg.Session.IdleTTL, app.WithMaxSessions(cfg.Session.MaxSessions))

	view, err := board.NewView()
	if err != nil {
		database.Close(ctx)
		return fmt.Errorf("%s: %w", ErrInitView, err)
	}

	log.Info(ctx, LogInitHTTPServer)
	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.GetBodyLimit(),
	})

	routerCfg := httpServer.RouterConfig{
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
			MaxAge:     cfg.Session.IdleTTL,
		},
		TokenCookieName: cfg.Auth.CookieName,
	}
	if cfg.Auth.Enabled() {
		log.Info(ctx, LogAuthEnabled)
		routerCfg.Tokens = services.NewJWT(cfg.Auth.SecretKey, cfg.Auth.Issuer)
	}
	httpServer.SetupRouter(fiberApp, sessions, view, routerCfg)

	reporter := grpcAdapter.NewHealthReporter([]grpcAdapter.Probe{
		{Service: grpcAdapter.ServiceRecords, Pinger: records},
		{Service: grpcAdapter.ServiceBlobs, Pinger: blobStore},
	}, cfg.Health.ProbeInterval, cfg.Health.ProbeTimeout)

	healthServer := grpcAdapter.New(cfg.Health.GetAddress())
	healthServer.RegisterService(reporter.Register)

	log.Info(ctx, LogStartingHealth, zap.String("address", cfg.Health.GetAddress()))
	if err := healthServer.Start(ctx); err != nil {
		database.Close(ctx)
		return fmt.Errorf("%s: %w", ErrStartHealth, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		sessions.Run(gctx, cfg.Session.SweepInterval)
		return nil
	})
	g.Go(func() error {
		reporter.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			return fmt.Errorf("%s: %w", ErrStartHTTPServer, err)
		}
		return nil
	})

	shutdown.Wait(gctx, cfg.Shutdown.GetTimeout(),
		// Остановка HTTP сервера и фоновых задач.
		func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogStoppingHTTP)
			defer cancel()
			return fiberApp.ShutdownWithContext(ctx)
		},
		// Остановка сервера проверки состояния.
		func(ctx context.Context) error {
			return healthServer.Stop(ctx)
		},
	)

	// Хранилища закрываются после остановки всех потребителей.
	shutdown.Run(ctx, cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		},
		func(ctx context.Context) error {
			if urlCache == nil {
				return nil
			}
			logger.Log(ctx).Info(ctx, LogClosingRedis)
			return urlCache.Close()
		},
	)

	err = g.Wait()
	log.Info(ctx, LogServiceShutdownDone)
	return err
}
