package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

var ErrInputClosed = errors.New("input closed")

// Input reads answers to prompts line by line and asks again until an answer is valid.
type Input struct {
	scanner *bufio.Scanner
	output  *Output
}

func NewInput(r io.Reader, output *Output) *Input {
	return &Input{
		scanner: bufio.NewScanner(r),
		output:  output,
	}
}

// ReadLine - prints the prompt and returns the next line without surrounding whitespace.
func (that *Input) ReadLine(prompt string) (string, error) {
	that.output.Print(prompt)

	if !that.scanner.Scan() {
		if err := that.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", ErrInputClosed
	}

	return strings.TrimSpace(that.scanner.Text()), nil
}

// ReadInt - asks until the answer is a number between minValue and maxValue.
func (that *Input) ReadInt(prompt string, minValue, maxValue int) (int, error) {
	for {
		line, err := that.ReadLine(prompt)
		if err != nil {
			return 0, err
		}

		number, err := strconv.Atoi(line)
		if err != nil || number < minValue || number > maxValue {
			that.output.Println(fmt.Sprintf("please enter a number between %d and %d", minValue, maxValue))
			continue
		}

		return number, nil
	}
}

// ReadSymbol - asks until the answer is a single printable character that is not taken yet.
func (that *Input) ReadSymbol(prompt string, taken []rune) (rune, error) {
	for {
		line, err := that.ReadLine(prompt)
		if err != nil {
			return 0, err
		}

		symbol, size := utf8.DecodeRuneInString(line)
		if line == "" || size != len(line) || !entity.IsValidSymbol(symbol) {
			that.output.Println("please enter a single character")
			continue
		}

		if isTaken(symbol, taken) {
			that.output.Println(fmt.Sprintf("%c is already taken by another player", symbol))
			continue
		}

		return symbol, nil
	}
}

func isTaken(symbol rune, taken []rune) bool {
	for _, other := range taken {
		if other == symbol {
			return true
		}
	}

	return false
}
