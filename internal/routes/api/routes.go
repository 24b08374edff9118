package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Delete("/games/:id", DeleteGame)
	apiGroup.Post("/games/:id/moves", PlayMove)
	apiGroup.Post("/games/:id/computer-move", ComputerMove)
	apiGroup.Post("/games/:id/reset", ResetGame)
	apiGroup.Put("/games/:id/difficulty", SetDifficulty)
}
