package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"callsync/internal/activity"
	activityhandler "callsync/internal/activity/handler"
	"callsync/internal/cdr"
	"callsync/internal/csvimport"
	csvimporthandler "callsync/internal/csvimport/handler"
	"callsync/internal/links"
	matchinghandler "callsync/internal/matching/handler"
	matchingmetrics "callsync/internal/matching/metrics"
	matchingservice "callsync/internal/matching/service"
	"callsync/internal/platform/config"
	"callsync/internal/platform/httpserver"
	"callsync/internal/platform/logger"
	"callsync/internal/platform/metrics"
	"callsync/internal/platform/redis"
	"callsync/internal/ratelimit"
	"callsync/internal/recordings"
	recordingshandler "callsync/internal/recordings/handler"
	"callsync/internal/storage"
	"callsync/internal/token"
	httptransport "callsync/internal/transport/http"
)

// cdrStore is everything the services collectively need from the
// call-record store. Both the memory and postgres stores satisfy it.
type cdrStore interface {
	csvimport.RecordStore
	links.RecordSource
	matchingservice.CandidateSource
}

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages; nothing here should branch on
// domain state.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores. Postgres when a DSN is configured, in-memory otherwise so the
	// server still comes up for local development and demos.
	var (
		db             *sql.DB
		recordingStore recordings.Store
		recordStore    cdrStore
		importStore    csvimport.Store
		linkStore      links.Store
		activityStore  activity.Store
	)
	if cfg.Postgres.DSN != "" {
		var err error
		db, err = storage.Open(ctx, cfg.Postgres)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			return err
		}
		defer db.Close()

		if err := storage.Migrate(ctx, db); err != nil {
			log.Error("schema migration failed", "error", err)
			return err
		}

		recordingStore = recordings.NewPostgres(db)
		recordStore = cdr.NewPostgres(db)
		importStore = csvimport.NewPostgres(db)
		linkStore = links.NewPostgres(db)
		activityStore = activity.NewPostgres(db)
		log.Info("postgres storage ready")
	} else {
		recordingStore = recordings.NewMemoryStore()
		recordStore = cdr.NewMemoryStore()
		importStore = csvimport.NewMemoryStore()
		linkStore = links.NewMemoryStore()
		activityStore = activity.NewMemoryStore()
		log.Warn("no postgres DSN configured, using in-memory stores")
	}

	// Match-result cache. Optional; a nil cache means every request computes.
	var matchCache matchingservice.Cache
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		matchCache = matchingservice.NewRedisCache(redisClient.Client, cfg.Redis.MatchTTL)
		log.Info("redis match cache ready", "ttl", cfg.Redis.MatchTTL)
	}

	// Activity feed. The worker drains the service inbox; Kafka mirroring is
	// optional and the worker tolerates a nil publisher.
	activitySvc := activity.NewService(log)
	var publisher activity.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPub, err := activity.NewKafkaPublisher(ctx, cfg.Kafka)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			return err
		}
		defer kafkaPub.Close()
		publisher = kafkaPub
		log.Info("kafka activity publisher ready", "topic", cfg.Kafka.Topic)
	}
	worker := activity.NewWorker(activityStore, publisher, activitySvc.Events(), log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("activity worker stopped", "error", err)
		}
	}()

	m := metrics.New()

	recordingSvc := recordings.NewService(recordingStore, activitySvc, log)
	importSvc := csvimport.NewService(recordStore, importStore, activitySvc, log)
	linkSvc := links.NewService(linkStore, recordingSvc, recordStore, activitySvc, log)
	matchSvc := matchingservice.NewService(recordingSvc, recordStore, linkSvc, matchCache, matchingmetrics.New(), log)

	ready := map[string]httptransport.HealthChecker{
		"postgres": dbHealth{db: db},
	}
	if redisClient != nil {
		ready["redis"] = redisClient
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Recordings: recordingshandler.New(recordingSvc, log),
		Imports:    csvimporthandler.New(importSvc, log),
		Matching:   matchinghandler.New(matchSvc, linkSvc, log),
		Activity:   activityhandler.New(activityStore, log),
		Auth:       token.NewValidator(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience),
		RateLimit:  ratelimit.New(ratelimit.NewMemoryStore(), log),
		Metrics:    m,
		Logger:     log,
		Ready:      ready,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("callsync listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return err
	}
	<-workerDone
	log.Info("shutdown complete")
	return nil
}

// dbHealth adapts *sql.DB to the router's readiness contract. A nil handle
// (in-memory mode) always reports healthy.
type dbHealth struct {
	db *sql.DB
}

func (d dbHealth) Health(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.db.PingContext(ctx)
}
