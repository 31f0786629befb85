// cmd/worker/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace-ledger-service/internal/config"
	"marketplace-ledger-service/internal/logging"
	"marketplace-ledger-service/internal/metrics"
	"marketplace-ledger-service/internal/repository/postgresql"
	"marketplace-ledger-service/internal/service"
	"marketplace-ledger-service/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, logCloser := logging.Setup(logging.Options{Service: "ledger-indexer", Env: cfg.Env, File: cfg.LogFile})
	defer logCloser.Close()

	// Postgres
	pool, err := postgresql.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("pg: %v", err)
	}
	defer pool.Close()

	repo := postgresql.NewEventRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("pg schema: %v", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	queue := service.NewRedisOutboxQueue(rdb, service.Lane{
		QueueKey:      cfg.OutboxQueueKey,
		ProcessingKey: cfg.OutboxProcessingKey,
	})

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("[worker] metrics server", "error", err)
			}
		}()
		defer srv.Close()
	}

	// returns envelopes left in processing by a crashed or restarted worker
	go worker.RunReaper(ctx, queue, cfg.ReapInterval, cfg.ReapBatch, logger)

	log.Printf("[worker] config workers=%d redis_addr=%s queue_key=%s processing_key=%s postgres_dsn=%s",
		cfg.Workers, cfg.RedisAddr, cfg.OutboxQueueKey, cfg.OutboxProcessingKey, config.RedactDSN(cfg.PostgresDSN),
	)

	processor := worker.NewProcessor(repo, m, logger)
	worker.NewPool(queue, processor, cfg.Workers, logger).Run(ctx)

	log.Println("worker stopped")
}
