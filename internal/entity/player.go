package entity

import "fmt"

type Player struct {
	Symbol rune `json:"symbol"`
}

func (that Player) String() string {
	return fmt.Sprintf("player %c", that.Symbol)
}
