package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/orbitx-mcn/orbitx-go/internal/config"
	"github.com/orbitx-mcn/orbitx-go/internal/db"
	"github.com/orbitx-mcn/orbitx-go/internal/handler"
	"github.com/orbitx-mcn/orbitx-go/internal/metrics"
	"github.com/orbitx-mcn/orbitx-go/internal/middleware"
	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/repository"
	"github.com/orbitx-mcn/orbitx-go/internal/router"
	"github.com/orbitx-mcn/orbitx-go/internal/service"
)

type storage struct {
	creators repository.CreatorRepository
	audit    repository.AuditRepository
	pool     *pgxpool.Pool
}

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "orbitx-api")
	log := middleware.Logger

	ctx := context.Background()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to open storage")
	}
	if store.pool != nil {
		defer store.pool.Close()
	}

	cache := service.NewCacheService(cfg.RedisURL, middleware.Component("cache"))
	defer cache.Close()

	var primaryLookup service.ChannelLookup
	if cfg.YouTubeAPIKey != "" {
		primaryLookup = service.NewYouTubeLookup(cfg.YouTubeAPIKey, cfg.YouTubeAPIBase, nil)
	} else {
		log.Info().Msg("no YouTube API key configured, channel lookups use mock data")
	}
	lookup := service.NewFallbackLookup(primaryLookup, cache, middleware.Component("lookup"))

	var primaryStrategist service.StrategyGenerator
	if cfg.GeminiAPIKey != "" {
		g, err := service.NewGeminiStrategist(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("gemini unavailable, strategies use mock data")
		} else {
			primaryStrategist = g
		}
	} else {
		log.Info().Msg("no Gemini API key configured, strategies use mock data")
	}
	strategist := service.NewFallbackStrategist(primaryStrategist, middleware.Component("strategy"))

	auditLogger := service.NewAuditLogger(store.audit, cfg.AuditUser, middleware.Component("audit"))
	creatorSvc := service.NewCreatorService(store.creators, auditLogger, lookup, middleware.Component("creators"))
	analyticsSvc := service.NewAnalyticsService(time.Now(), nil)
	authSvc := service.NewAuthService(newVerifier(cfg, log), middleware.Component("auth"))

	metrics.Register(store.pool)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	if cfg.ResyncIntervalMin > 0 {
		worker := service.NewResyncWorker(creatorSvc,
			time.Duration(cfg.ResyncIntervalMin)*time.Minute, middleware.Component("resync"))
		go worker.Start(workerCtx)
	}

	app := fiber.New(fiber.Config{
		AppName:      "OrbitX MCN API",
		ServerHeader: "OrbitX",
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	limiters := router.NewLimiters()
	defer limiters.Stop()

	rdb := cache.Client()
	router.Setup(app, &router.Handlers{
		Health:    handler.NewHealthHandler(store.pool, rdb, cfg.DataDir),
		Creator:   handler.NewCreatorHandler(creatorSvc),
		Audit:     handler.NewAuditHandler(auditLogger),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc),
		Auth:      handler.NewAuthHandler(authSvc),
		Lookup:    handler.NewLookupHandler(lookup),
		Strategy:  handler.NewStrategyHandler(strategist),
		Export:    handler.NewExportHandler(creatorSvc, analyticsSvc),
	}, cfg.CORSOrigins, limiters)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		stopWorkers()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Str("storage", cfg.StorageBackend).
		Msg("OrbitX backend starting")
	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

// openStorage builds the creator and audit repositories for the configured
// backend.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	log := middleware.Component("storage")

	if cfg.StorageBackend == config.StoragePostgres {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		creators := repository.NewPostgresCreatorRepo(pool)
		seeded, err := creators.SeedIfEmpty(ctx)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if seeded {
			log.Info().Msg("seeded empty creators table")
		}
		return &storage{
			creators: creators,
			audit:    repository.NewPostgresAuditRepo(pool),
			pool:     pool,
		}, nil
	}

	if cfg.StorageBackend != config.StorageFile {
		log.Warn().Str("backend", cfg.StorageBackend).Msg("unknown storage backend, using file")
	}
	fs := repository.NewFileStore(cfg.DataDir)
	if err := fs.EnsureDataDir(); err != nil {
		return nil, err
	}
	log.Info().Str("dir", fs.Dir()).Msg("using file storage")
	return &storage{
		creators: repository.NewMemoryCreatorRepo(fs.LoadCreators(), fs),
		audit:    repository.NewMemoryAuditRepo(fs.LoadLogs(), fs),
	}, nil
}

func newVerifier(cfg *config.Config, log zerolog.Logger) service.CredentialVerifier {
	user := model.User{Name: cfg.AuthDisplayName, Role: "Administrator"}
	if cfg.AuthPasswordHash != "" {
		return service.BcryptVerifier{
			Username:     cfg.AuthUsername,
			PasswordHash: []byte(cfg.AuthPasswordHash),
			User:         user,
		}
	}
	log.Warn().Msg("using plaintext AUTH_PASSWORD; set AUTH_PASSWORD_HASH outside of demos")
	return service.StaticVerifier{
		Username: cfg.AuthUsername,
		Password: cfg.AuthPassword,
		User:     user,
	}
}
