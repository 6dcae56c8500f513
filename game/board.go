package game

import (
	"github.com/pkg/errors"
)

// Move is one placement recorded in the board history.
type Move struct {
	Stone Cell
	Coord Coordinate
}

// Board is the mutable board owned by a live game. It keeps the current
// Grid and the placement history; snapshots handed out by Grid stay valid
// after later mutations.
type Board struct {
	grid    Grid
	history []Move
}

func NewBoard(size, winLength int) *Board {
	if size <= 0 {
		panic("board size must be positive")
	}
	if winLength <= 1 {
		panic("win length must be greater than 1")
	}
	return &Board{grid: NewGrid(size, winLength)}
}

// BoardFromGrid starts a board from an existing position, with history in row-major order.
func BoardFromGrid(g Grid) *Board {
	b := &Board{grid: g}
	for c := range g.Occupied() {
		b.history = append(b.history, Move{Stone: g.At(c), Coord: c})
	}
	return b
}

func (b *Board) Grid() Grid { return b.grid }
func (b *Board) Size() int  { return b.grid.Size() }

func (b *Board) At(c Coordinate) Cell         { return b.grid.At(c) }
func (b *Board) IsEmpty(c Coordinate) bool    { return b.grid.IsEmpty(c) }
func (b *Board) InBounds(c Coordinate) bool   { return b.grid.InBounds(c) }
func (b *Board) IsFull() bool                 { return b.grid.IsFull() }
func (b *Board) Stones(p Player) []Coordinate { return b.grid.Stones(p) }

// Place puts stone at c and reports whether it completes a winning line.
func (b *Board) Place(c Coordinate, stone Cell) (bool, error) {
	next, win, err := b.grid.Place(c, stone)
	if err != nil {
		return false, err
	}
	b.grid = next
	b.history = append(b.history, Move{Stone: stone, Coord: c})
	return win, nil
}

// Remove clears the stone at c, drops its latest history entry and returns it.
func (b *Board) Remove(c Coordinate) (Cell, error) {
	if !b.grid.InBounds(c) {
		return Empty, errors.Wrapf(ErrOutOfBounds, "remove at %v", c)
	}
	stone := b.grid.At(c)
	if stone == Empty {
		return Empty, errors.Wrapf(ErrEmptyCell, "remove at %v", c)
	}
	b.grid = b.grid.With(c, Empty)
	for i := len(b.history) - 1; i >= 0; i-- {
		if b.history[i].Coord == c {
			b.history = append(b.history[:i:i], b.history[i+1:]...)
			break
		}
	}
	return stone, nil
}

// Undo pops the most recent placement.
func (b *Board) Undo() (Move, error) {
	if len(b.history) == 0 {
		return Move{}, ErrNoHistory
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.grid = b.grid.With(last.Coord, Empty)
	return last, nil
}

func (b *Board) Clear() {
	b.grid = NewGrid(b.grid.Size(), b.grid.WinLength())
	b.history = nil
}

func (b *Board) History() []Move {
	history := make([]Move, len(b.history))
	copy(history, b.history)
	return history
}

func (b *Board) MoveCount() int { return len(b.history) }

// Clone shares the immutable grid and copies the history.
func (b *Board) Clone() *Board {
	return &Board{grid: b.grid, history: b.History()}
}
