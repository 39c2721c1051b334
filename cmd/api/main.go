package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nobih83/bn-storefront/internal/accounts"
	"github.com/nobih83/bn-storefront/internal/cart"
	"github.com/nobih83/bn-storefront/internal/catalog"
	"github.com/nobih83/bn-storefront/internal/config"
	"github.com/nobih83/bn-storefront/internal/httpx"
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
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	placed := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	placed.Start(ctx)
	status := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatus, 1024)
	status.Start(ctx)

	// Repos & first-boot seed
	catalogRepo := &catalog.Repo{DB: db}
	if err := catalogRepo.Seed(ctx); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	notifyRepo := &notify.Repo{DB: db}
	if err := notifyRepo.Seed(ctx); err != nil {
		log.Fatalf("seed notifications: %v", err)
	}
	userRepo := &accounts.Repo{DB: db}
	sessions := &accounts.SessionStore{Redis: rdb}

	// Router & handlers
	sm := &httpx.SessionMiddleware{Sessions: sessions}
	router := httpx.NewRouter(sm.Load)
	admin := httpx.NewAdminRouter()

	ah := &httpx.AuthHandler{Service: &accounts.Service{Repo: userRepo, Sessions: sessions}, Users: userRepo}
	ah.Register(router, admin)

	ch := &httpx.CatalogHandler{Repo: catalogRepo, Wishlist: &catalog.WishlistRepo{DB: db}}
	ch.Register(router, admin)

	oh := &httpx.OrdersHandler{
		Repo:           &orders.Repo{DB: db},
		Catalog:        catalogRepo,
		Users:          userRepo,
		Cart:           &cart.Store{Redis: rdb},
		PlacedProducer: placed,
		StatusProducer: status,
		Service:        cfg.ServiceName,
	}
	oh.Register(router, admin)

	nh := &httpx.NotifyHandler{Repo: notifyRepo}
	nh.Register(router, admin)

	router.Mount("/admin", admin)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	placed.Close()
	status.Close()
	placed.WaitClosed()
	status.WaitClosed()
}
