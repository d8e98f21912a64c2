package main

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/folio-labs/folio-backend/database"
	"github.com/folio-labs/folio-backend/internal/config"
	"github.com/folio-labs/folio-backend/internal/jobs"
	"github.com/folio-labs/folio-backend/internal/models"
	"github.com/folio-labs/folio-backend/internal/routes"
	"github.com/folio-labs/folio-backend/internal/services"
	"github.com/folio-labs/folio-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	slogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Initialize storage
	var store storage.Store
	if cfg.UseMemoryStore {
		log.Println("Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("Connecting to PostgreSQL database...")
		if err := database.Connect(cfg); err != nil {
			log.Fatal(err)
		}

		log.Println("Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.PendingRegistration{},
			&models.OTP{},
			&models.Board{},
			&models.Task{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		store = storage.NewDatabaseStore(database.DB)
	}

	// Outbound mail degrades to a log-only sink without credentials.
	var mailer services.Mailer
	if cfg.MailConfigured() {
		mailer, err = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
		if err != nil {
			log.Fatal("Failed to initialize mailer:", err)
		}
		log.Println("SMTP mailer initialized")
	} else {
		mailer = services.NewLogMailer(slogger)
		log.Println("SMTP credentials not set - email delivery disabled")
	}

	dispatcher := jobs.NewMailDispatcher(mailer, slogger)
	dispatcher.Start()

	// Wire up services
	hasher := services.NewHasher(cfg.BcryptCost)
	tokens := services.NewTokenService(cfg.SecretKey, cfg.TokenTTLMinutes)
	otps := services.NewOTPService(store, cfg.OTPTTLMinutes)
	auth := services.NewAuthService(store, hasher, tokens, otps, dispatcher, cfg.OTPTTLMinutes)

	if cfg.SeedDemoUser {
		seedDemoUser(store, hasher)
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Folio Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoints
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Folio Backend API",
			"version": "1.0.0",
			"status":  "healthy",
			"storage": storageType(cfg),
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		if !cfg.UseMemoryStore && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"mail":     cfg.MailConfigured(),
			},
		})
	})

	routes.SetupRoutes(app, store, auth)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
		dispatcher.Stop()
	}()

	log.Printf("Folio backend starting on port %s (storage: %s)", cfg.Port, storageType(cfg))
	log.Fatal(app.Listen(":" + cfg.Port))
}

// seedDemoUser creates the demo account used by local frontends.
func seedDemoUser(store storage.Store, hasher *services.Hasher) {
	const demoEmail = "admin@folio.com"

	if _, err := store.GetUserByEmail(demoEmail); err == nil {
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("Failed to check for demo user: %v", err)
		return
	}

	hash, err := hasher.Hash("admin")
	if err != nil {
		log.Printf("Failed to hash demo password: %v", err)
		return
	}
	if _, err := store.CreateUser(&models.User{
		Email:        demoEmail,
		Name:         "Admin User",
		PasswordHash: hash,
	}); err != nil {
		log.Printf("Failed to seed demo user: %v", err)
		return
	}
	log.Printf("Seeded demo user: %s / admin", demoEmail)
}

func storageType(cfg *config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}
