package api_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

type errorResponse struct {
	Error string `json:"error"`
}

func createGame(t *testing.T, app *fiber.App, body any) models.GameResponse {
	t.Helper()

	resp := tests.Do(t, app, http.MethodPost, "/api/games", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return tests.Decode[models.GameResponse](t, resp)
}

func TestCreateGame(t *testing.T) {
	app := tests.NewTestApp(false)

	game := createGame(t, app, nil)

	_, err := uuid.Parse(game.ID)
	require.NoError(t, err)

	require.Equal(t, "human_vs_computer", game.Mode)
	require.Equal(t, "white", game.Computer)
	require.Equal(t, 2, game.Difficulty)
	require.Equal(t, "00000008100000000000001008000000", game.Board)
	require.Equal(t, "black", game.CurrentPlayer)
	require.Equal(t, 2, game.BlackCount)
	require.Equal(t, 2, game.WhiteCount)
	require.False(t, game.GameOver)
	require.Equal(t, "in_progress", game.Outcome)
	require.Equal(t, []string{"d3", "c4", "f5", "e6"}, game.ValidMoves)
	require.Empty(t, game.Moves)
}

func TestCreateGameOptions(t *testing.T) {
	app := tests.NewTestApp(false)

	game := createGame(t, app, map[string]any{
		"mode":       "human_vs_computer",
		"difficulty": "hard",
		"computer":   "black",
	})

	require.Equal(t, 6, game.Difficulty)
	require.Equal(t, "black", game.Computer)
	require.Equal(t, "white", game.CurrentPlayer)
	require.Len(t, game.Moves, 1)
	require.True(t, game.Moves[0].Computer)
}

func TestCreateGameInvalid(t *testing.T) {
	app := tests.NewTestApp(false)

	cases := []struct {
		name string
		body any
	}{
		{"unknown mode", map[string]any{"mode": "solo"}},
		{"unknown difficulty", map[string]any{"difficulty": "insane"}},
		{"unknown computer", map[string]any{"computer": "green"}},
		{"not an object", []int{1, 2}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := tests.Do(t, app, http.MethodPost, "/api/games", tt.body, "")
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := tests.Decode[errorResponse](t, resp)
			require.NotEmpty(t, body.Error)
		})
	}
}

func TestGetGame(t *testing.T) {
	app := tests.NewTestApp(false)
	game := createGame(t, app, map[string]any{"mode": "human_vs_human"})

	resp := tests.Do(t, app, http.MethodGet, "/api/games/"+game.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := tests.Decode[models.GameResponse](t, resp)
	require.Equal(t, game.ID, got.ID)
	require.Equal(t, game.Board, got.Board)

	resp = tests.Do(t, app, http.MethodGet, "/api/games/"+uuid.NewString(), nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = tests.Do(t, app, http.MethodGet, "/api/games/not-a-uuid", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPlayMove(t *testing.T) {
	app := tests.NewTestApp(false)
	game := createGame(t, app, nil)

	resp := tests.Do(t, app, http.MethodPost, "/api/games/"+game.ID+"/moves", map[string]any{"field": "d3"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := tests.Decode[models.GameResponse](t, resp)

	// The computer replies right away.
	require.Len(t, got.Moves, 2)
	require.Equal(t, models.MoveResponse{Player: "black", Field: "d3", Row: 2, Col: 3}, got.Moves[0])
	require.Equal(t, "white", got.Moves[1].Player)
	require.True(t, got.Moves[1].Computer)
	require.Equal(t, "black", got.CurrentPlayer)
	require.Equal(t, 6, got.BlackCount+got.WhiteCount)
}

func TestPlayMoveCoordinates(t *testing.T) {
	app := tests.NewTestApp(false)
	game := createGame(t, app, map[string]any{"mode": "human_vs_human"})

	resp := tests.Do(t, app, http.MethodPost, "/api/games/"+game.ID+"/moves", map[string]any{"row": 3, "col": 2}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := tests.Decode[models.GameResponse](t, resp)
	require.Equal(t, "white", got.CurrentPlayer)
	require.Equal(t, 4, got.BlackCount)
	require.Equal(t, 1, got.WhiteCount)
}

func TestPlayMoveErrors(t *testing.T) {
	app := tests.NewTestApp(false)
	humans := createGame(t, app, map[string]any{"mode": "human_vs_human"})
	computers := createGame(t, app, map[string]any{"mode": "computer_vs_computer"})

	cases := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"invalid move", humans.ID, map[string]any{"field": "a1"}, http.StatusUnprocessableEntity},
		{"off the board", humans.ID, map[string]any{"row": 8, "col": 0}, http.StatusUnprocessableEntity},
		{"bad field", humans.ID, map[string]any{"field": "k9"}, http.StatusBadRequest},
		{"no move", humans.ID, map[string]any{}, http.StatusBadRequest},
		{"not your turn", computers.ID, map[string]any{"field": "d3"}, http.StatusConflict},
		{"unknown game", uuid.NewString(), map[string]any{"field": "d3"}, http.StatusNotFound},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := tests.Do(t, app, http.MethodPost, "/api/games/"+tt.id+"/moves", tt.body, "")
			require.Equal(t, tt.status, resp.StatusCode)

			body := tests.Decode[errorResponse](t, resp)
			require.NotEmpty(t, body.Error)
		})
	}
}

func TestComputerMove(t *testing.T) {
	app := tests.NewTestApp(false)

	humans := createGame(t, app, map[string]any{"mode": "human_vs_human"})
	resp := tests.Do(t, app, http.MethodPost, "/api/games/"+humans.ID+"/computer-move", nil, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	computers := createGame(t, app, map[string]any{"mode": "computer_vs_computer", "difficulty": 1})

	// Play until the game is over, then one more.
	game := computers
	for range 61 {
		resp = tests.Do(t, app, http.MethodPost, "/api/games/"+computers.ID+"/computer-move", nil, "")
		if game.GameOver {
			require.Equal(t, http.StatusConflict, resp.StatusCode)
			resp.Body.Close()
			break
		}

		require.Equal(t, http.StatusOK, resp.StatusCode)
		game = tests.Decode[models.GameResponse](t, resp)
		require.Len(t, game.Moves, 1)
	}

	require.True(t, game.GameOver)
	require.NotEqual(t, "in_progress", game.Outcome)
	require.Equal(t, 64, game.BlackCount+game.WhiteCount+countEmpty(game.Rows))
}

func countEmpty(rows []string) int {
	empty := 0
	for _, row := range rows {
		for _, c := range row {
			if c == '.' {
				empty++
			}
		}
	}
	return empty
}

func TestResetGame(t *testing.T) {
	app := tests.NewTestApp(false)
	game := createGame(t, app, map[string]any{"mode": "human_vs_human"})

	resp := tests.Do(t, app, http.MethodPost, "/api/games/"+game.ID+"/moves", map[string]any{"field": "d3"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = tests.Do(t, app, http.MethodPost, "/api/games/"+game.ID+"/reset", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := tests.Decode[models.GameResponse](t, resp)
	require.Equal(t, game.Board, got.Board)
	require.Equal(t, "black", got.CurrentPlayer)
}

func TestSetDifficulty(t *testing.T) {
	app := tests.NewTestApp(false)
	game := createGame(t, app, nil)

	resp := tests.Do(t, app, http.MethodPut, "/api/games/"+game.ID+"/difficulty", map[string]any{"difficulty": "hard"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 6, tests.Decode[models.GameResponse](t, resp).Difficulty)

	resp = tests.Do(t, app, http.MethodPut, "/api/games/"+game.ID+"/difficulty", map[string]any{"difficulty": 3}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 3, tests.Decode[models.GameResponse](t, resp).Difficulty)

	resp = tests.Do(t, app, http.MethodPut, "/api/games/"+game.ID+"/difficulty", map[string]any{}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = tests.Do(t, app, http.MethodPut, "/api/games/"+game.ID+"/difficulty", map[string]any{"difficulty": -1}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteGame(t *testing.T) {
	app := tests.NewTestApp(false)
	game := createGame(t, app, nil)

	resp := tests.Do(t, app, http.MethodDelete, "/api/games/"+game.ID, nil, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = tests.Do(t, app, http.MethodGet, "/api/games/"+game.ID, nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = tests.Do(t, app, http.MethodDelete, "/api/games/"+game.ID, nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth(t *testing.T) {
	app := tests.NewTestApp(true)

	resp := tests.Do(t, app, http.MethodPost, "/api/games", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, `Basic realm="Restricted"`, resp.Header.Get("WWW-Authenticate"))
	resp.Body.Close()

	resp = tests.Do(t, app, http.MethodPost, "/api/games", nil, "wrong-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = tests.Do(t, app, http.MethodPost, "/api/games", nil, tests.TestToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPost, "/api/games", nil)
	require.NoError(t, err)
	req.SetBasicAuth(tests.TestUser, tests.TestPassword)

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	app := tests.NewTestApp(false)
	game := createGame(t, app, nil)

	resp := tests.Do(t, app, http.MethodGet, "/ws/games/"+game.ID, nil, "")
	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
	resp.Body.Close()
}
