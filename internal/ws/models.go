package ws

import (
	"encoding/json"

	"github.com/lk16/reversi/internal/models"
)

// Events sent by clients.
const (
	EventState        = "state"
	EventMove         = "move"
	EventComputerMove = "computer_move"
	EventReset        = "reset"
	EventDifficulty   = "difficulty"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is a reply to an Incoming message with the same ID. Updates
// pushed by the server have ID 0.
type Outgoing struct {
	ID   int `json:"id"`
	Data any `json:"data"`
}

type GameData struct {
	Game models.GameResponse `json:"game"`
}

type ErrorData struct {
	Error string `json:"error"`
}
