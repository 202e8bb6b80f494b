package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/nyxlicense/backend/internal/config"
	"github.com/nyxlicense/backend/internal/database"
	"github.com/nyxlicense/backend/internal/handlers"
	"github.com/nyxlicense/backend/internal/middleware"
	"github.com/nyxlicense/backend/internal/models"
	"github.com/nyxlicense/backend/internal/services"
	"github.com/nyxlicense/backend/internal/store"
	"github.com/nyxlicense/backend/internal/tokens"
)

func main() {
	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to database (and Redis when configured)
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := models.AutoMigrate(database.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	st := store.NewGormStore(database.DB)

	// Admin token store: Redis when available so tokens survive across
	// instances, otherwise process memory with a background sweeper.
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	var tokenStore tokens.Store
	var janitor *services.TokenJanitor
	if database.Redis != nil {
		tokenStore = tokens.NewRedisStore(database.Redis, ttl)
		log.Println("Admin tokens stored in Redis (shared across instances)")
	} else {
		memStore := tokens.NewMemoryStore(ttl)
		tokenStore = memStore
		janitor = services.NewTokenJanitor(memStore, 10*time.Minute)
		janitor.Start()
		log.Println("Admin tokens stored in process memory - run a single instance or set REDIS_HOST")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "NyX License API v1.0",
		ServerHeader: "NyXLicense",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"code":    handlers.CodeUpstreamFailure,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(compress.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "nyxlicense-api",
		})
	})

	// Initialize handlers
	authenticateHandler := handlers.NewAuthenticateHandler(st)
	trialHandler := handlers.NewTrialHandler(st, cfg.TrialSeconds)
	adminHandler := handlers.NewAdminHandler(cfg, tokenStore, st)

	// API routes
	api := app.Group("/api")

	// Public routes
	api.Post("/authenticate", authenticateHandler.Authenticate)
	api.Post("/trial/start", trialHandler.Start)
	api.Post("/admin/login", adminHandler.Login)

	// Admin-scoped routes
	admin := api.Group("/admin", middleware.AdminRequired(tokenStore))
	admin.Get("/accounts", adminHandler.ListAccounts)
	admin.Post("/accounts", adminHandler.CreateAccount)
	admin.Put("/accounts", adminHandler.ExtendAccount)
	admin.Delete("/accounts", adminHandler.DeleteAccount)
	admin.Get("/trials", adminHandler.ListTrials)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if janitor != nil {
			janitor.Stop()
		}
		app.Shutdown()
	}()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	log.Printf("Starting license API server on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
