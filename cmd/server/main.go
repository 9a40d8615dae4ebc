package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"univ-biblio/internal/adapters/http/middleware"
	"univ-biblio/internal/adapters/http/routes"
	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/adapters/persistence/repositories"
	"univ-biblio/internal/config"
	"univ-biblio/internal/core/services"
	"univ-biblio/internal/pkg/clock"

	"github.com/gofiber/fiber/v2"

	_ "univ-biblio/docs" // Swagger docs
)

// @title Univ Biblio API
// @version 1.0
// @description University library management API: catalogue, students, loans and returns.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@biblio.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:4400
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin account and starter catalogue
	if err := config.SeedData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start Cron Service for overdue reminders and token cleanup
	loanRepo := repositories.NewLoanRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	cronService := services.NewCronService(loanRepo, tokenRepo, services.NewNotificationService(), clock.System())
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Univ Biblio API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

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
