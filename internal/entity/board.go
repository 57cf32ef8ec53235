package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	MinBoardSize = 3
	// MaxBoardSize keeps the field count addressable by a single byte index (15*15 <= 255).
	MaxBoardSize = 15
)

var (
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidSymbol    = errors.New("invalid symbol")
)

// Board is a square grid of fields addressed by zero-based (row, col).
// Boards are created with NewBoard, the zero value has no fields.
type Board struct {
	size   int
	fields [][]Field
}

// NewBoard - creates a size x size board. A nil content gives an empty board,
// content of exactly size*size fields is copied in row-major order and any other
// length falls back to an empty board.
func NewBoard(size int, content []Field) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d, must be between %d and %d", ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}

	board := &Board{
		size:   size,
		fields: make([][]Field, size),
	}
	for row := range board.fields {
		board.fields[row] = make([]Field, size)
	}

	if len(content) != size*size {
		return board, nil
	}

	for i, field := range content {
		board.fields[i/size][i%size] = field
	}

	return board, nil
}

func (that *Board) Size() int {
	return that.size
}

// FieldCount - number of fields on the board, the highest valid placement index.
func (that *Board) FieldCount() int {
	return that.size * that.size
}

func (that *Board) Field(row, col int) Field {
	return that.fields[row][col]
}

// Fields - returns a row-major copy of the board content.
func (that *Board) Fields() []Field {
	content := make([]Field, 0, that.FieldCount())
	for _, row := range that.fields {
		content = append(content, row...)
	}

	return content
}

// PlaceSymbol - puts symbol on the field with the 1-based index.
// Returns false and leaves the board untouched when the field is already occupied.
func (that *Board) PlaceSymbol(index int, symbol rune) (bool, error) {
	if index < 1 || index > that.FieldCount() {
		return false, fmt.Errorf("%w: %d, must be between 1 and %d", ErrInvalidCell, index, that.FieldCount())
	}

	if !IsValidSymbol(symbol) {
		return false, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}

	row, col := (index-1)/that.size, (index-1)%that.size
	if !that.fields[row][col].IsEmpty() {
		return false, nil
	}

	that.fields[row][col] = Occupied(symbol)

	return true, nil
}

// IsValidSymbol reports whether r can be used as a player symbol.
func IsValidSymbol(r rune) bool {
	return r != utf8.RuneError && unicode.IsPrint(r) && !unicode.IsSpace(r)
}

type boardJSON struct {
	Size   int      `json:"size"`
	Fields []string `json:"fields"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	encoded := boardJSON{
		Size:   that.size,
		Fields: make([]string, 0, that.FieldCount()),
	}

	for _, field := range that.Fields() {
		if field.IsEmpty() {
			encoded.Fields = append(encoded.Fields, "")
			continue
		}
		encoded.Fields = append(encoded.Fields, string(field.Symbol()))
	}

	data, err := json.Marshal(encoded)
	if err != nil {
		return nil, fmt.Errorf("could not marshal board: %w", err)
	}

	return data, nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var decoded boardJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("could not unmarshal board: %w", err)
	}

	if len(decoded.Fields) != decoded.Size*decoded.Size {
		return fmt.Errorf("%w: %d fields for size %d", ErrInvalidBoardSize, len(decoded.Fields), decoded.Size)
	}

	content := make([]Field, len(decoded.Fields))
	for i, symbol := range decoded.Fields {
		if symbol == "" {
			continue
		}

		r, width := utf8.DecodeRuneInString(symbol)
		if width != len(symbol) || !IsValidSymbol(r) {
			return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
		}
		content[i] = Occupied(r)
	}

	board, err := NewBoard(decoded.Size, content)
	if err != nil {
		return err
	}

	*that = *board

	return nil
}
