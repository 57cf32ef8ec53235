package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

const fieldSpacer = "  "

// playerColors are ANSI colors handed out to players in move order.
var playerColors = []string{"9", "12", "10", "11", "13", "14"}

// Output renders boards and messages to a terminal.
type Output struct {
	out *termenv.Output
}

func NewOutput(w io.Writer, opts ...termenv.OutputOption) *Output {
	return &Output{
		out: termenv.NewOutput(w, opts...),
	}
}

func (that *Output) Clear() {
	that.out.ClearScreen()
}

func (that *Output) Print(text string) {
	_, _ = io.WriteString(that.out, text)
}

func (that *Output) Println(text string) {
	_, _ = io.WriteString(that.out, text+"\n")
}

// PrintTemplate - prints the field numbers players type to address a field.
func (that *Output) PrintTemplate(size int) {
	width := cellWidth(size)

	var sb strings.Builder
	for row := 0; row < size; row++ {
		cells := make([]string, size)
		for col := 0; col < size; col++ {
			cells[col] = fmt.Sprintf("%*d", width, row*size+col+1)
		}
		sb.WriteString(strings.Join(cells, fieldSpacer))
		sb.WriteString("\n")
	}

	that.Print(sb.String())
}

// PrintBoard - prints the board, every symbol in the color of its player.
func (that *Output) PrintBoard(board *entity.Board, players []entity.Player) {
	size := board.Size()
	width := cellWidth(size)

	var sb strings.Builder
	for row := 0; row < size; row++ {
		cells := make([]string, size)
		for col := 0; col < size; col++ {
			field := board.Field(row, col)
			cells[col] = strings.Repeat(" ", width-1) + that.styleField(field, players)
		}
		sb.WriteString(strings.Join(cells, fieldSpacer))
		sb.WriteString("\n")
	}

	that.Print(sb.String())
}

func (that *Output) PrintStatus(status entity.Status) {
	that.Println(that.out.String(status.String()).Bold().String())
}

func (that *Output) styleField(field entity.Field, players []entity.Player) string {
	if field.IsEmpty() {
		return field.String()
	}

	style := that.out.String(field.String()).Bold()
	for i, player := range players {
		if player.Symbol == field.Symbol() {
			style = style.Foreground(that.out.Color(playerColors[i%len(playerColors)]))
			break
		}
	}

	return style.String()
}

func cellWidth(size int) int {
	return len(strconv.Itoa(size * size))
}
