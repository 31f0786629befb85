// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "marketplace-ledger-service/docs"
	"marketplace-ledger-service/internal/config"
	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/ledger"
	"marketplace-ledger-service/internal/logging"
	"marketplace-ledger-service/internal/metrics"
	"marketplace-ledger-service/internal/repository/postgresql"
	"marketplace-ledger-service/internal/service"
	"marketplace-ledger-service/internal/store"
	"marketplace-ledger-service/internal/store/leveldb"
	"marketplace-ledger-service/internal/store/memory"
	"marketplace-ledger-service/internal/store/postgres"
	redisstore "marketplace-ledger-service/internal/store/redis"
	"marketplace-ledger-service/internal/store/sqlite"
	httptransport "marketplace-ledger-service/internal/transport/http"
)

// @title Marketplace Ledger API
// @version 1.0
// @description Escrowed jobs, NFT ownership and a listing marketplace over a transactional key-value ledger.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, logCloser := logging.Setup(logging.Options{Service: "ledger-api", Env: cfg.Env, File: cfg.LogFile})
	defer logCloser.Close()

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		log.Fatalf("policy: %v", err)
	}

	// Redis is shared by the redis store backend and the outbox sink.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
	}

	st, closeStore, err := openStore(ctx, cfg, rdb)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	m := metrics.New()

	emitters := events.Multi{}
	if cfg.HasSink(config.SinkLog) {
		emitters = append(emitters, events.LogEmitter{Logger: logger})
	}
	if cfg.HasSink(config.SinkOutbox) {
		queue := service.NewRedisOutboxQueue(rdb, service.Lane{
			QueueKey:      cfg.OutboxQueueKey,
			ProcessingKey: cfg.OutboxProcessingKey,
		})
		emitters = append(emitters, service.NewOutboxEmitter(queue, logger))
	}

	svc := service.NewLedgerService(st, ledger.New(policy),
		service.WithEmitter(emitters),
		service.WithMetrics(m),
		service.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httptransport.Routes(httptransport.NewHandler(svc), m.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[api] shutdown", "error", err)
		}
	}()

	log.Printf("[api] config addr=%s store=%s sinks=%v single_release=%t self_signed_accounts=%t",
		cfg.HTTPAddr, cfg.StoreBackend, cfg.EventSinks, policy.SingleRelease, policy.SelfSignedAccounts,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http: %v", err)
	}
	log.Println("api stopped")
}

func openStore(ctx context.Context, cfg *config.Config, rdb *redis.Client) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		st := memory.New()
		return st, func() { _ = st.Close() }, nil
	case config.BackendLevelDB:
		st, err := leveldb.Open(cfg.LevelDBPath, cfg.LevelDBSync)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case config.BackendSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case config.BackendPostgres:
		pool, err := postgresql.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		st := postgres.New(pool)
		if err := st.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Printf("[api] postgres store dsn=%s", config.RedactDSN(cfg.PostgresDSN))
		return st, pool.Close, nil
	case config.BackendRedis:
		st := redisstore.New(rdb, cfg.RedisKeyPrefix)
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
