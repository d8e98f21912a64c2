package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/folio-labs/folio-backend/internal/handlers"
	"github.com/folio-labs/folio-backend/internal/middleware"
	"github.com/folio-labs/folio-backend/internal/services"
	"github.com/folio-labs/folio-backend/internal/storage"
)

// SetupRoutes configures all API routes.
func SetupRoutes(app *fiber.App, store storage.Store, auth *services.AuthService) {
	authHandler := handlers.NewAuthHandler(auth)
	userHandler := handlers.NewUserHandler()
	boardHandler := handlers.NewBoardHandler(store)
	taskHandler := handlers.NewTaskHandler(store)

	// Public auth endpoints
	app.Post("/token", authHandler.Token)

	authGroup := app.Group("/auth")
	authGroup.Post("/register-request", authHandler.RegisterRequest)
	authGroup.Post("/register-verify", authHandler.RegisterVerify)
	authGroup.Post("/request-otp", authHandler.RequestOTP)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)
	authGroup.Post("/request-reset-password", authHandler.RequestReset)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Everything below requires a bearer token
	requireAuth := middleware.RequireAuth(auth)

	app.Get("/users/me", requireAuth, userHandler.Me)

	boards := app.Group("/boards", requireAuth)
	boards.Get("/", boardHandler.List)
	boards.Post("/", boardHandler.Create)
	boards.Delete("/:id", boardHandler.Delete)
	boards.Get("/:id/tasks", taskHandler.ListByBoard)

	tasks := app.Group("/tasks", requireAuth)
	tasks.Post("/", taskHandler.Create)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
}
