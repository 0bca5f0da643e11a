// cmd/storefront/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/infrastructure/storeapi"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/money"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/view"
	"golang.org/x/sync/errgroup"
)

const (
	bootstrapTimeout = 30 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging)
	if err := run(cfg, log); err != nil {
		log.Fatal(err)
	}
}

// run wires and serves the storefront until a signal arrives. Errors are
// returned rather than fatal so deferred cleanup closes the storage pools.
func run(cfg *config.Config, log *logrus.Logger) error {
	log.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	store, err := openStorage(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.close(); err != nil {
			log.WithError(err).Warn("Failed to close storage")
		}
	}()

	if err := store.health(); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}

	api := storeapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)

	catalogStore := catalog.NewStore(api, log)
	cartStore := cart.NewStore(store.adapter, cfg.Storage.CartKey, log)
	engine := pricing.NewEngine(pricing.Config{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		FlatShippingFee:       cfg.Pricing.FlatShippingFee,
		TaxRate:               cfg.Pricing.TaxRate,
	})

	renderer := view.NewRenderer(
		catalogStore,
		cartStore,
		engine,
		checkout.NewService(api, log),
		money.NewFormatter(cfg.Pricing.Locale, cfg.Pricing.CurrencySymbol),
		log,
	)
	defer renderer.Close()

	// Catalog fetch and cart restore are independent. A catalog failure only
	// shows the banner; a cart backend that cannot be read stops startup.
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := catalogStore.Load(gctx); err != nil {
			log.WithError(err).Warn("Catalog unavailable at startup")
		}
		return nil
	})
	g.Go(func() error {
		return cartStore.Restore(gctx)
	})
	err = g.Wait()
	cancel()
	if err != nil {
		return fmt.Errorf("failed to restore cart: %w", err)
	}

	log.Infof("✅ Catalog has %d products, cart has %d items", len(catalogStore.Products()), cartStore.Count())

	server := http.NewServer(cfg, log, routes.Handlers{
		Storefront: handlers.NewStorefrontHandler(renderer, log),
		Checkout:   handlers.NewCheckoutHandler(renderer, log),
		Receipt:    handlers.NewReceiptHandler(renderer, pdf.NewService(cfg), log),
		Health: handlers.NewHealthHandler(cfg.App.Version, map[string]handlers.HealthCheck{
			"storage": store.health,
		}),
	})

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			log.Errorf("HTTP server failed: %v", err)
		}
	}

	log.Info("👋 Shutting down gracefully...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Stop(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Info("✅ Server shutdown completed")
	return nil
}
