package tictactoe

import "github.com/rocketscienceinc/tictactoe-terminal/internal/entity"

// Line is one row, column or diagonal of a board.
type Line []entity.Field

// Lines - returns all rows, then all columns, then the main and the anti diagonal.
func Lines(board *entity.Board) []Line {
	size := board.Size()
	lines := make([]Line, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make(Line, size)
		for col := 0; col < size; col++ {
			line[col] = board.Field(row, col)
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make(Line, size)
		for row := 0; row < size; row++ {
			line[row] = board.Field(row, col)
		}
		lines = append(lines, line)
	}

	mainDiagonal, antiDiagonal := make(Line, size), make(Line, size)
	for i := 0; i < size; i++ {
		mainDiagonal[i] = board.Field(i, i)
		antiDiagonal[i] = board.Field(i, size-1-i)
	}

	return append(lines, mainDiagonal, antiDiagonal)
}

// EvaluateStatus - classifies the board. The first won line in Lines order decides the winner.
func EvaluateStatus(board *entity.Board) entity.Status {
	lines := Lines(board)

	for _, line := range lines {
		if winner, ok := lineWinner(line); ok {
			return entity.StatusWon(winner.Symbol())
		}
	}

	for _, line := range lines {
		if !isLineDead(line) {
			return entity.StatusStillPlaying()
		}
	}

	return entity.StatusDraw()
}

// lineWinner - returns the symbol filling the whole line.
func lineWinner(line Line) (entity.Field, bool) {
	if len(line) == 0 {
		return entity.Empty, false
	}

	first := line[0]
	if first.IsEmpty() {
		return entity.Empty, false
	}

	for _, field := range line[1:] {
		if field != first {
			return entity.Empty, false
		}
	}

	return first, true
}

// isLineDead - a line holding two different symbols can never be won.
func isLineDead(line Line) bool {
	var seen entity.Field

	for _, field := range line {
		if field.IsEmpty() {
			continue
		}

		if seen.IsEmpty() {
			seen = field
			continue
		}

		if field != seen {
			return true
		}
	}

	return false
}
