package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

// MakeTurn - places the symbol of the current player on the 1-based cell and updates the game status.
func MakeTurn(gameInstance *entity.Game, symbol rune, cell int) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, symbol); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	placed, err := gameInstance.Board.PlaceSymbol(cell, symbol)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if !placed {
		return fmt.Errorf("invalid turn: %w: cell %d", apperror.ErrCellOccupied, cell)
	}

	updateGameStatus(gameInstance)

	return nil
}

// validateMove - checks that symbol belongs to the player whose turn it is.
func validateMove(gameInstance *entity.Game, symbol rune) error {
	current, err := gameInstance.CurrentPlayer()
	if err != nil {
		return err
	}

	if current.Symbol != symbol {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// updateGameStatus - evaluates the board after a move and rotates the turn while the game goes on.
func updateGameStatus(gameInstance *entity.Game) {
	gameInstance.Status = EvaluateStatus(gameInstance.Board)

	if !gameInstance.IsFinished() {
		gameInstance.NextTurn()
	}
}
