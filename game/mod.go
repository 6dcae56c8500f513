package game

import (
	"fmt"
)

type StateHash uint64

// Cell is the content of one board intersection.
type Cell uint8

const (
	Empty Cell = iota
	BlackStone
	WhiteStone
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case BlackStone:
		return "X"
	case WhiteStone:
		return "O"
	default:
		return "?"
	}
}

type Player int

const (
	Black Player = iota
	White
)

// Players lists both sides in turn order, Black first.
var Players = [2]Player{Black, White}

func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

func (p Player) Stone() Cell {
	if p == Black {
		return BlackStone
	}
	return WhiteStone
}

func (p Player) String() string {
	if p == Black {
		return "black"
	}
	return "white"
}

// Owner returns the player whose stone occupies the cell.
func (c Cell) Owner() (Player, bool) {
	switch c {
	case BlackStone:
		return Black, true
	case WhiteStone:
		return White, true
	default:
		return Black, false
	}
}

type Coordinate struct {
	Row int
	Col int
}

// String labels the coordinate with a column letter followed by the row, e.g. "H7".
func (c Coordinate) String() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row)
}
