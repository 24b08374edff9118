package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/session"
)

func games(c *fiber.Ctx) *session.Manager {
	return c.Locals("services").(*services.Services).Games //nolint: errcheck
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// StatusCode maps errors of the session layer to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrInvalidMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, session.ErrGameOver),
		errors.Is(err, session.ErrNotYourTurn),
		errors.Is(err, session.ErrNoComputer):
		return fiber.StatusConflict
	case errors.Is(err, session.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	status := StatusCode(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("game request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func sendGame(c *fiber.Ctx, status int, snapshot session.Snapshot) error {
	return c.Status(status).JSON(models.NewGameResponse(snapshot))
}

// CreateGame starts a new game.
func CreateGame(c *fiber.Ctx) error {
	var req models.CreateGameRequest

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	opts, err := req.Options(cfg.DefaultDifficulty)
	if err != nil {
		return sendError(c, err)
	}

	snapshot, err := games(c).Create(c.Context(), opts)
	if err != nil {
		return sendError(c, err)
	}

	return sendGame(c, fiber.StatusCreated, snapshot)
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game id")
	}

	snapshot, err := games(c).Get(c.Context(), id)
	if err != nil {
		return sendError(c, err)
	}

	return sendGame(c, fiber.StatusOK, snapshot)
}

// DeleteGame removes a game.
func DeleteGame(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game id")
	}

	if err = games(c).Delete(c.Context(), id); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PlayMove plays a move of a human player.
func PlayMove(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game id")
	}

	var req models.MoveRequest
	if err = c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pos, err := req.Position()
	if err != nil {
		return badRequest(c, err.Error())
	}

	snapshot, err := games(c).Play(c.Context(), id, pos)
	if err != nil {
		return sendError(c, err)
	}

	return sendGame(c, fiber.StatusOK, snapshot)
}

// ComputerMove lets the computer play a move.
func ComputerMove(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game id")
	}

	snapshot, err := games(c).ComputerMove(c.Context(), id)
	if err != nil {
		return sendError(c, err)
	}

	return sendGame(c, fiber.StatusOK, snapshot)
}

// ResetGame starts a new game in an existing session.
func ResetGame(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game id")
	}

	snapshot, err := games(c).Reset(c.Context(), id)
	if err != nil {
		return sendError(c, err)
	}

	return sendGame(c, fiber.StatusOK, snapshot)
}

// SetDifficulty changes the difficulty of the computer.
func SetDifficulty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid game id")
	}

	var req models.DifficultyRequest
	if err = c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	snapshot, err := games(c).SetDifficulty(c.Context(), id, search.Difficulty(req.Difficulty))
	if err != nil {
		return sendError(c, err)
	}

	return sendGame(c, fiber.StatusOK, snapshot)
}
