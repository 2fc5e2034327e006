package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/shopcart/api/controllers/pages"
	"github.com/angelmondragon/shopcart/api/routes"
	"github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/internal/catalog"
	"github.com/angelmondragon/shopcart/internal/slots"
	"github.com/angelmondragon/shopcart/pkg/config"
	"github.com/angelmondragon/shopcart/pkg/logger"
	"github.com/angelmondragon/shopcart/pkg/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, closeSlot, err := slots.Open(runCtx, cfg, logg)
	requireResource(runCtx, logg, "cart slot backend", err)

	products, err := catalog.Load(cfg.Cart.CatalogPath)
	requireResource(runCtx, logg, "catalog", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	manager, err := cart.NewManager(cart.ManagerParams{
		Slot:     slot,
		SlotName: cfg.Cart.SlotName,
		Logger:   logg,
		Recorder: metrics.NewCartMetrics(registry),
	})
	requireResource(runCtx, logg, "cart manager", err)

	pageHandlers, err := pages.New(pages.Deps{
		Stores:   manager,
		Catalog:  products,
		Order:    cfg.Order,
		Location: cfg.Cart.Location(),
		Logger:   logg,
	})
	requireResource(runCtx, logg, "page templates", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"storage":  cfg.Storage.NormalizedDriver(),
		"products": len(products.Products()),
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, slot, manager, products, pageHandlers, registry, metrics.NewHTTPMetrics(registry)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	runErr = multierr.Combine(runErr, server.Shutdown(shutdownCtx), closeSlot(shutdownCtx))
	if runErr != nil {
		logg.Error(ctx, "storefront stopped with errors", runErr)
		os.Exit(1)
	}
	logg.Info(ctx, "storefront stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
