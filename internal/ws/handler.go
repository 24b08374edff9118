package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/session"
)

// Conn is the part of a websocket connection used by the Handler.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	games  *session.Manager
	gameID uuid.UUID
	ws     Conn

	// writeMu serializes writes of replies and pushed updates
	writeMu sync.Mutex
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, games *session.Manager, gameID uuid.UUID) *Handler {
	return &Handler{games: games, gameID: gameID, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (session.Snapshot, error) {
	if req.Event == "" {
		return session.Snapshot{}, errors.New("event field is either empty or missing")
	}

	switch req.Event {
	case EventState:
		return h.games.Get(ctx, h.gameID)
	case EventMove:
		var reqData models.MoveRequest
		if err := json.Unmarshal(req.Data, &reqData); err != nil {
			return session.Snapshot{}, fmt.Errorf("%w: %w", session.ErrInvalidInput, err)
		}

		pos, err := reqData.Position()
		if err != nil {
			return session.Snapshot{}, fmt.Errorf("%w: %w", session.ErrInvalidInput, err)
		}

		return h.games.Play(ctx, h.gameID, pos)
	case EventComputerMove:
		return h.games.ComputerMove(ctx, h.gameID)
	case EventReset:
		return h.games.Reset(ctx, h.gameID)
	case EventDifficulty:
		var reqData models.DifficultyRequest
		if err := json.Unmarshal(req.Data, &reqData); err != nil {
			return session.Snapshot{}, fmt.Errorf("%w: %w", session.ErrInvalidInput, err)
		}

		return h.games.SetDifficulty(ctx, h.gameID, search.Difficulty(reqData.Difficulty))
	default:
		return session.Snapshot{}, fmt.Errorf("%w: unknown event: %s", session.ErrInvalidInput, req.Event)
	}
}

// push forwards updates of the game until updates is closed.
func (h *Handler) push(updates <-chan session.Snapshot) {
	for snapshot := range updates {
		outgoing := &Outgoing{Data: GameData{Game: models.NewGameResponse(snapshot)}}

		if err := h.writeMessage(outgoing); err != nil {
			slog.Debug("ws push error", "error", err)
			return
		}
	}
}

// Handle handles the websocket connection until the client disconnects.
// Besides replying to requests, it pushes every change of the game.
func (h *Handler) Handle(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, unsubscribe, err := h.games.Subscribe(ctx, h.gameID)
	if err != nil {
		return fmt.Errorf("ws subscribe error: %w", err)
	}

	pushDone := make(chan struct{})
	go func() {
		defer close(pushDone)
		h.push(updates)
	}()
	defer func() {
		unsubscribe()
		<-pushDone
	}()

	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		outgoing := &Outgoing{ID: req.ID}

		snapshot, err := h.handleMessage(ctx, req)
		if err != nil {
			outgoing.Data = ErrorData{Error: err.Error()}
		} else {
			outgoing.Data = GameData{Game: models.NewGameResponse(snapshot)}
		}

		if err = h.writeMessage(outgoing); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}
