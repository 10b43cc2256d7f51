package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pticevod/poultry-ledger/internal/config"
	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/products"
	"github.com/pticevod/poultry-ledger/internal/infra/db"
	httpx "github.com/pticevod/poultry-ledger/internal/infra/http"
	"github.com/pticevod/poultry-ledger/internal/infra/logger"
	"github.com/pticevod/poultry-ledger/internal/infra/metrics"
	"github.com/pticevod/poultry-ledger/internal/infra/notify"
	"github.com/pticevod/poultry-ledger/internal/server/handlers"
	"github.com/pticevod/poultry-ledger/internal/server/router"
	"github.com/pticevod/poultry-ledger/internal/service/batchops"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	var notifier notify.Notifier
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
		if err != nil {
			log.Error("telegram init failed", "err", err)
			return
		}
		notifier = tg
		log.Info("admin alerts enabled", "chat_id", cfg.Telegram.AdminChatID)
	}

	svc := batchops.New(batchops.NewPgDB(pool), log, m, notifier)

	batchHandler := handlers.NewBatchHandler(svc,
		batches.NewRepo(pool), products.NewRepo(pool), activities.NewRepo(pool), log)
	productHandler := handlers.NewProductHandler(products.NewRepo(pool), log)

	engine := router.New(batchHandler, productHandler, log, cfg.Metrics.Enabled)

	srv := httpx.New(cfg.HTTP.Addr, engine)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
