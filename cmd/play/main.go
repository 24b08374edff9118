package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

func main() {
	config.SetLogLevel()

	defaultStart := othello.NewBoardStart().String()
	start := flag.String("start", defaultStart, "the start position")
	difficultyFlag := flag.String("difficulty", "medium", "easy, medium, hard or a search depth")
	colorFlag := flag.String("color", "black", "the color of the human player")
	auto := flag.Bool("auto", false, "let the computer play both sides")
	flag.Parse()

	startBoard, err := othello.NewBoardFromString(*start)
	if err != nil {
		log.Fatalf("failed to create board: %v", err)
	}

	difficulty, err := search.ParseDifficulty(*difficultyFlag)
	if err != nil {
		log.Fatalf("invalid difficulty: %v", err)
	}

	human, err := othello.ParsePlayer(*colorFlag)
	if err != nil {
		log.Fatalf("invalid color: %v", err)
	}

	bots := map[othello.Player]*search.Bot{
		human.Opponent(): search.NewBot(human.Opponent(), difficulty),
	}
	if *auto {
		bots[human] = search.NewBot(human, difficulty)
	}

	game := othello.NewGameFromBoard(startBoard, othello.Black)
	input := bufio.NewScanner(os.Stdin)

	for !game.IsGameOver() {
		state := game.GetGameState()
		state.Board.Print(state.CurrentPlayer)
		fmt.Printf("%s to move (%d - %d)\n", state.CurrentPlayer, state.BlackCount, state.WhiteCount)

		var move othello.Position

		if bot, ok := bots[state.CurrentPlayer]; ok {
			move, ok = bot.BestMove(state.Board, state.ValidMoves)
			if !ok {
				log.Fatalf("computer found no move")
			}
			fmt.Printf("computer plays %s\n\n", move)
		} else {
			move, ok = readMove(input, state)
			if !ok {
				return
			}
		}

		if !game.MakeMove(move.Row, move.Col) {
			log.Fatalf("move %s was rejected", move)
		}
	}

	state := game.GetGameState()
	state.Board.Print(state.CurrentPlayer)

	if winner, ok := state.Winner(); ok {
		fmt.Printf("%s wins %d - %d\n", winner, state.BlackCount, state.WhiteCount)
	} else {
		fmt.Printf("tie %d - %d\n", state.BlackCount, state.WhiteCount)
	}
}

// readMove asks for a move until a valid one is entered. It returns false on
// end of input or when the player quits.
func readMove(input *bufio.Scanner, state othello.GameState) (othello.Position, bool) {
	for {
		fmt.Print("move (e.g. d3, or q to quit): ")

		if !input.Scan() {
			return othello.Position{}, false
		}

		text := strings.TrimSpace(input.Text())
		if text == "q" || text == "quit" {
			return othello.Position{}, false
		}

		move, err := othello.ParseField(text)
		if err != nil {
			fmt.Println(err)
			continue
		}

		if !state.IsValidMove(move) {
			fmt.Printf("%s is not a valid move\n", move)
			continue
		}

		return move, true
	}
}
