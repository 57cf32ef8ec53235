package entity

// Field is a single board cell: either Empty or holding one player's symbol.
type Field rune

// Empty is the zero value of Field.
const Empty Field = 0

// Occupied returns the field holding symbol.
func Occupied(symbol rune) Field {
	return Field(symbol)
}

func (that Field) IsEmpty() bool {
	return that == Empty
}

// Symbol returns the rune stored in the field, 0 for an empty field.
func (that Field) Symbol() rune {
	return rune(that)
}

// String - formats the field for the board display, a blank for an empty field.
func (that Field) String() string {
	if that.IsEmpty() {
		return " "
	}

	return string(rune(that))
}
