package game

import (
	"encoding/binary"
	"hash/fnv"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// Directions scanned for lines: vertical, horizontal and both diagonals.
var Directions = [4]Coordinate{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Grid is an immutable snapshot of the board. Writes go through With, which
// copies only the touched row and shares every other row with the receiver.
type Grid struct {
	size      int
	winLength int
	rows      [][]Cell
}

func NewGrid(size, winLength int) Grid {
	rows := make([][]Cell, size)
	for i := range rows {
		rows[i] = make([]Cell, size)
	}
	return Grid{size: size, winLength: winLength, rows: rows}
}

// GridFromRows builds a grid from strings of '.', 'X' (black) and 'O' (white).
func GridFromRows(winLength int, lines ...string) (Grid, error) {
	size := len(lines)
	g := NewGrid(size, winLength)
	for r, line := range lines {
		if len(line) != size {
			return Grid{}, errors.Errorf("row %d has %d cells, want %d", r, len(line), size)
		}
		for c, ch := range line {
			switch ch {
			case '.':
			case 'X':
				g.rows[r][c] = BlackStone
			case 'O':
				g.rows[r][c] = WhiteStone
			default:
				return Grid{}, errors.Wrapf(ErrInvalidStone, "row %d col %d: %q", r, c, ch)
			}
		}
	}
	return g, nil
}

func (g Grid) Size() int      { return g.size }
func (g Grid) WinLength() int { return g.winLength }

func (g Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// At returns the cell content, or Empty when c is off the board.
func (g Grid) At(c Coordinate) Cell {
	if !g.InBounds(c) {
		return Empty
	}
	return g.rows[c.Row][c.Col]
}

func (g Grid) IsEmpty(c Coordinate) bool {
	return g.InBounds(c) && g.rows[c.Row][c.Col] == Empty
}

func (g Grid) Center() Coordinate {
	return Coordinate{Row: g.size / 2, Col: g.size / 2}
}

// With returns a copy of the grid with cell set at c. The caller guarantees c is in bounds.
func (g Grid) With(c Coordinate, cell Cell) Grid {
	rows := make([][]Cell, g.size)
	copy(rows, g.rows)
	row := make([]Cell, g.size)
	copy(row, g.rows[c.Row])
	row[c.Col] = cell
	rows[c.Row] = row
	return Grid{size: g.size, winLength: g.winLength, rows: rows}
}

// Place puts a stone on an empty cell and reports whether it completes a winning line.
func (g Grid) Place(c Coordinate, stone Cell) (Grid, bool, error) {
	if stone == Empty {
		return g, false, ErrInvalidStone
	}
	if !g.InBounds(c) {
		return g, false, errors.Wrapf(ErrOutOfBounds, "place at %v", c)
	}
	if g.rows[c.Row][c.Col] != Empty {
		return g, false, errors.Wrapf(ErrOccupied, "place at %v", c)
	}
	next := g.With(c, stone)
	return next, next.FormsWinningLine(c, stone), nil
}

func (g Grid) IsFull() bool {
	for _, row := range g.rows {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// Occupied yields every coordinate holding a stone in row-major order.
func (g Grid) Occupied() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		for r, row := range g.rows {
			for c, cell := range row {
				if cell == Empty {
					continue
				}
				if !yield(Coordinate{Row: r, Col: c}) {
					return
				}
			}
		}
	}
}

// Stones lists the coordinates of a player's stones in row-major order.
func (g Grid) Stones(p Player) []Coordinate {
	stone := p.Stone()
	coords := []Coordinate{}
	for c := range g.Occupied() {
		if g.rows[c.Row][c.Col] == stone {
			coords = append(coords, c)
		}
	}
	return coords
}

// FormsWinningLine reports whether the stone at c is part of a run of at least WinLength.
func (g Grid) FormsWinningLine(c Coordinate, stone Cell) bool {
	if stone == Empty {
		return false
	}
	for _, d := range Directions {
		length := 1 + g.count(c, stone, d.Row, d.Col) + g.count(c, stone, -d.Row, -d.Col)
		if length >= g.winLength {
			return true
		}
	}
	return false
}

func (g Grid) count(c Coordinate, stone Cell, dr, dc int) int {
	n := 0
	next := Coordinate{Row: c.Row + dr, Col: c.Col + dc}
	for g.InBounds(next) && g.rows[next.Row][next.Col] == stone {
		n++
		next = Coordinate{Row: next.Row + dr, Col: next.Col + dc}
	}
	return n
}

func (g Grid) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(g.size))
	binary.Write(hasher, binary.LittleEndian, int64(g.winLength))
	for _, row := range g.rows {
		hasher.Write(cellBytes(row))
	}

	return StateHash(hasher.Sum64())
}

func cellBytes(row []Cell) []byte {
	b := make([]byte, len(row))
	for i, cell := range row {
		b[i] = byte(cell)
	}
	return b
}

func (g Grid) Equal(other Grid) bool {
	if g.size != other.size || g.winLength != other.winLength {
		return false
	}
	for r := range g.rows {
		for c := range g.rows[r] {
			if g.rows[r][c] != other.rows[r][c] {
				return false
			}
		}
	}
	return true
}

func (g Grid) String() string {
	var sb strings.Builder
	for _, row := range g.rows {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
