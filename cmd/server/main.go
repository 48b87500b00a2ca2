package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stampcard/internal/adapters/http/middleware"
	"stampcard/internal/adapters/http/routes"
	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/config"
	"stampcard/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "stampcard/docs" // Swagger docs
)

// @title Stampcard API
// @version 1.0
// @description Loyalty card service: stamps, member discount, promotions and client self-service.

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the staff session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Open the durable medium behind the record store
	m, closeMedium, err := config.OpenMedium(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open storage: %v", err)
	}
	defer func() {
		if err := closeMedium(); err != nil {
			log.Printf("❌ Error closing storage: %v", err)
		}
	}()

	recordStore := store.New(m)
	if recordStore.Durable() && !recordStore.Available(ctx) {
		log.Println("⚠️ Warning: storage probe failed, records are kept in memory until it recovers")
	}

	svc := routes.NewServices(recordStore, cfg)

	// Seed promotions into an empty catalog
	seed, err := config.LoadPromotionSeed(cfg.Seed.PromotionsFile)
	if err != nil {
		log.Printf("⚠️ Warning: Failed to load promotion seed: %v", err)
	} else if _, err := svc.Promotion.Seed(ctx, seed); err != nil {
		log.Printf("⚠️ Warning: Failed to seed promotions: %v", err)
	}

	// Start scheduled snapshots
	cronService, err := services.NewCronService(svc.Export, cfg.Snapshot)
	if err != nil {
		log.Fatalf("❌ Failed to schedule snapshots: %v", err)
	}
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Stampcard API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, recordStore, svc, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
