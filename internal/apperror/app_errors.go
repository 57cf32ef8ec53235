package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameNotStarted     = errors.New("game is not started")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrDuplicateSymbol    = errors.New("symbol is already taken")
	ErrInvalidPlayerCount = errors.New("invalid number of players")
)
