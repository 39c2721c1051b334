package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nobih83/bn-storefront/internal/config"
	kafkax "github.com/nobih83/bn-storefront/internal/kafka"
	"github.com/nobih83/bn-storefront/internal/notify"
	"github.com/nobih83/bn-storefront/internal/orders"
	"github.com/nobih83/bn-storefront/internal/postgres"
	"github.com/nobih83/bn-storefront/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Fanout{
		Ledger: &notify.Repo{DB: db},
		Dedup:  &notify.RedisDedup{Redis: rdb, ServiceName: cfg.ServiceName + "-notifier"},
	}

	group, workers := cfg.NotifierGroup, cfg.NotifierWorkers
	placed := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderPlaced, workers)
	status := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderStatus, workers)

	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderPlaced, workers)
		if err := placed.Start(ctx, svc.HandleOrderPlaced); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()
	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderStatus, workers)
		if err := status.Start(ctx, svc.HandleStatusChanged); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down consumers...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
