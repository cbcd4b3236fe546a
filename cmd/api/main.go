// Command api serves the practitioner and client registry over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/api"
	"github.com/vollmed/registry-api/internal/api/handler"
	"github.com/vollmed/registry-api/internal/core/service"
	"github.com/vollmed/registry-api/internal/core/validation"
	mongodb "github.com/vollmed/registry-api/internal/infrastructure/db/mongo"
	redisdb "github.com/vollmed/registry-api/internal/infrastructure/db/redis"
	"github.com/vollmed/registry-api/internal/infrastructure/queue"
	"github.com/vollmed/registry-api/internal/pkg/config"
	"github.com/vollmed/registry-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "registry-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exiting")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	practitionerRepo := mongodb.NewPractitionerRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	if err := mongodb.EnsureIndexes(ctx, practitionerRepo, clientRepo); err != nil {
		return err
	}

	// --- Audit trail ---
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), logger.For(log, "audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, logger.For(log, "dispatcher"))
	dispatcher.Start(ctx)

	// --- Use cases ---
	validator := validation.New()
	idempotency := redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	e := api.NewRouter(api.Dependencies{
		Practitioners: service.NewPractitionerService(practitionerRepo, validator, idempotency, dispatcher, logger.For(log, "practitioners")),
		Clients:       service.NewClientService(clientRepo, validator, idempotency, dispatcher, logger.For(log, "clients")),
		Readiness:     handler.NewHealthDependenciesHandler(mongoClient, rdb),
		Registerer:    prometheus.DefaultRegisterer,
		Gatherer:      prometheus.DefaultGatherer,
		Logger:        logger.For(log, "http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("waiting for in-flight requests to finish")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
