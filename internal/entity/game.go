package entity

import (
	"errors"
	"fmt"
)

var ErrNoPlayers = errors.New("game has no players")

// Game is one session: a board, the players in move order and whose turn it is.
type Game struct {
	ID      string   `json:"id"`
	Board   *Board   `json:"board"`
	Players []Player `json:"players"`
	Turn    int      `json:"turn"`
	Status  Status   `json:"status"`
}

func NewGame(id string, board *Board, players []Player) *Game {
	return &Game{
		ID:      id,
		Board:   board,
		Players: players,
		Status:  StatusStillPlaying(),
	}
}

// CurrentPlayer - returns the player who has to move next.
func (that *Game) CurrentPlayer() (Player, error) {
	if len(that.Players) == 0 {
		return Player{}, ErrNoPlayers
	}

	if that.Turn < 0 || that.Turn >= len(that.Players) {
		return Player{}, fmt.Errorf("turn %d out of %d players", that.Turn, len(that.Players))
	}

	return that.Players[that.Turn], nil
}

// NextTurn - passes the move to the following player, wrapping after the last one.
func (that *Game) NextTurn() {
	if len(that.Players) == 0 {
		return
	}

	that.Turn = (that.Turn + 1) % len(that.Players)
}

func (that *Game) IsFinished() bool {
	return that.Status.IsFinished()
}
