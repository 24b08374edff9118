package ws

import (
	"context"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/ws"
)

// requireGame rejects requests for unknown games before upgrading the connection.
func requireGame(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game id",
		})
	}

	services := c.Locals("services").(*services.Services) //nolint: errcheck

	if _, err = services.Games.Get(c.Context(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals("gameID", id)
	return c.Next()
}

func handleWs(c *websocket.Conn) {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	gameID := c.Locals("gameID").(uuid.UUID)              //nolint: errcheck

	h := ws.NewHandler(c, services.Games, gameID)
	err := h.Handle(context.Background())
	if err != nil {
		slog.Debug("ws connection closed", "game", gameID, "error", err)
	}
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws/games/:id", middleware.AuthOrToken(), requireGame, websocket.New(handleWs))
}
