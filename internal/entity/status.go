package entity

import "fmt"

type StatusKind int

const (
	StillPlaying StatusKind = iota
	SomeoneWon
	Draw
)

// Status is the classification of a board. Winner is only set for SomeoneWon.
type Status struct {
	Kind   StatusKind `json:"kind"`
	Winner rune       `json:"winner,omitempty"`
}

func StatusStillPlaying() Status {
	return Status{Kind: StillPlaying}
}

func StatusDraw() Status {
	return Status{Kind: Draw}
}

func StatusWon(symbol rune) Status {
	return Status{Kind: SomeoneWon, Winner: symbol}
}

func (that Status) IsFinished() bool {
	return that.Kind != StillPlaying
}

func (that Status) String() string {
	switch that.Kind {
	case Draw:
		return "its a draw! no player can win anymore."
	case SomeoneWon:
		return fmt.Sprintf("%c won!", that.Winner)
	default:
		return "the game is still going..."
	}
}
