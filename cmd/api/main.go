// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/catalog"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/enrollment"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
	httpserver "github.com/your-org/storefront-client/internal/interfaces/http"
	"github.com/your-org/storefront-client/internal/interfaces/http/routes"
	"github.com/your-org/storefront-client/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.WithField("version", cfg.App.Version).Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Environment)

	// Connect to the device key-value store
	store, err := storage.NewRedisStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer store.Close()

	if err := store.Health(); err != nil {
		logger.Fatalf("Redis health check failed: %v", err)
	}

	// Build the portal client and domain services
	portalClient := portal.NewClient(cfg, logger)
	sessions := session.NewManager(store, portalClient, logger)
	carts := cart.NewManager(cfg.Store.DefaultCoursePrice, cfg.Store.CartIdleTTL)

	services := &routes.Services{
		Carts:      carts,
		Sessions:   sessions,
		Checkout:   checkout.NewService(sessions, portalClient, cfg, logger),
		Catalog:    catalog.NewService(sessions, portalClient, logger),
		Enrollment: enrollment.NewService(portalClient, logger),
	}

	// Create and start HTTP server
	server := httpserver.NewServer(cfg, logger, services, store.Client())

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logger.Info("Server shutdown completed")
}
