package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/cache"
	"ignite-shop/internal/catalog"
	"ignite-shop/internal/checkout"
	"ignite-shop/internal/config"
	"ignite-shop/internal/database"
	"ignite-shop/internal/handlers"
	"ignite-shop/internal/money"
	"ignite-shop/internal/pages"
	"ignite-shop/internal/provider"
	"ignite-shop/internal/repository"
	"ignite-shop/internal/routes"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	if err := pages.Init(); err != nil {
		log.Fatalf("❌ loading templates: %v", err)
	}

	formatter, err := money.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ page store: %v", err)
	}
	defer closeStore()

	backend := provider.NewBackend(cfg.StripeAPIURL, &http.Client{Timeout: 80 * time.Second})
	resolver := catalog.NewResolver(repository.NewStripeProductRepository(backend, cfg.StripeSecretKey), formatter)

	gen := pages.NewGenerator(resolver, store, pages.Options{
		Revalidate: cfg.Revalidate,
		Timeout:    cfg.CatalogTimeout,
		Logger:     logger,
	})
	defer gen.Close()

	checkoutSvc := checkout.NewService(checkout.NewStripeSessions(backend, cfg.StripeSecretKey), cfg.AppURL)

	router := routes.NewRouter(logger, routes.Handlers{
		Pages:            handlers.NewPageHandler(),
		Product:          handlers.NewProductHandler(gen),
		Checkout:         handlers.NewCheckoutHandler(checkoutSvc),
		Health:           handlers.NewHealthHandler(store),
		RevalidateSecret: cfg.RevalidateSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("🚀 Server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("err", err))
	}
}

const cacheSweepInterval = 5 * time.Minute

func openStore(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	if cfg.CacheBackend != config.CacheBackendMongo {
		c := cache.New(cfg.PageCacheTTL, cacheSweepInterval)
		return c, c.Close, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	store := cache.NewMongoStore(client.Database(cfg.MongoDB).Collection(cache.PagesCollection))
	return store, func() { _ = client.Disconnect(context.Background()) }, nil
}
