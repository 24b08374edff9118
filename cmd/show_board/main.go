package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

func main() {
	boardString := flag.String("board", othello.NewBoardStart().String(), "the board to show")
	playerString := flag.String("player", "black", "the player to move")
	flag.Parse()

	board, err := othello.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	player, err := othello.ParsePlayer(*playerString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	board.Print(player)

	terms := search.EvaluateTerms(board, player)
	fmt.Printf("%s: %d - %d, evaluation %d %+v\n", player, board.Count(player), board.Count(player.Opponent()), terms.Score(), terms)
}
