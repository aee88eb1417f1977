package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rowanhale/vitrine/internal"
	"github.com/rowanhale/vitrine/internal/catalog"
	"github.com/rowanhale/vitrine/internal/handler/storefront"
	"github.com/rowanhale/vitrine/internal/middleware"
	"github.com/rowanhale/vitrine/internal/routes"
	"github.com/rowanhale/vitrine/internal/service"
	"github.com/rowanhale/vitrine/internal/stepstore"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize catalog providers
	logger.Info("Initializing catalog providers...")
	dummyProvider := catalog.NewDummyJSONProvider(cfg.Catalog.DummyJSONBaseURL, cfg.Catalog.RequestTimeout)
	fakeProvider := catalog.NewFakeStoreProvider(cfg.Catalog.FakeStoreBaseURL, cfg.Catalog.RequestTimeout)
	catalogService := catalog.NewService(dummyProvider, fakeProvider, catalog.Config{
		CacheSize: cfg.Catalog.CacheSize,
		CacheTTL:  cfg.Catalog.CacheTTL,
	}, logger)
	logger.Info("Catalog providers initialized",
		"dummyjson", cfg.Catalog.DummyJSONBaseURL,
		"fakestore", cfg.Catalog.FakeStoreBaseURL,
	)

	// Initialize session-scoped state
	cartService := service.NewCartService()
	steps := stepstore.NewMemoryStore(cfg.Session.TTL)

	checkoutService, err := service.NewCheckoutService(cartService, steps, cfg.Checkout.ProcessingDelay)
	if err != nil {
		return fmt.Errorf("failed to initialize checkout service: %w", err)
	}

	identityService := service.NewIdentityService(time.Second)

	// Expired-draft sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if removed := steps.Sweep(); removed > 0 {
					logger.Debug("Swept expired checkout sessions", "removed", removed)
				}
			}
		}
	}()

	// Metrics
	metrics := middleware.NewMetrics(cfg.Metrics.Namespace)

	// Router
	r := routes.New(routes.Deps{
		Products: storefront.NewProductHandler(catalogService),
		Cart:     storefront.NewCartHandler(cartService, catalogService),
		Checkout: storefront.NewCheckoutHandler(checkoutService, cartService),
		Auth:     storefront.NewAuthHandler(identityService),
		Metrics:  metrics,
	},
		middleware.RequestID,
		metrics.Middleware,
		middleware.WithRequestLogger(logger),
	)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
