package searcher

import (
	"iter"

	"gomoku/game"
)

const neighbourhood = 2

// Candidates yields placement coordinates worth considering. An empty grid
// yields only the centre; otherwise every empty cell within Chebyshev
// distance 2 of a stone, once each. If no such cell exists every empty cell
// is yielded in row-major order. The sequence can be ranged over repeatedly.
func Candidates(grid game.Grid) iter.Seq[game.Coordinate] {
	return func(yield func(game.Coordinate) bool) {
		size := grid.Size()
		if size == 0 {
			return
		}

		occupied, found := false, false
		seen := make([]bool, size*size)
		for stone := range grid.Occupied() {
			occupied = true
			for dr := -neighbourhood; dr <= neighbourhood; dr++ {
				for dc := -neighbourhood; dc <= neighbourhood; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					c := game.Coordinate{Row: stone.Row + dr, Col: stone.Col + dc}
					if !grid.IsEmpty(c) || seen[c.Row*size+c.Col] {
						continue
					}
					seen[c.Row*size+c.Col] = true
					found = true
					if !yield(c) {
						return
					}
				}
			}
		}
		if !occupied {
			yield(grid.Center())
			return
		}

		if found {
			return
		}
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				coord := game.Coordinate{Row: r, Col: c}
				if grid.IsEmpty(coord) && !yield(coord) {
					return
				}
			}
		}
	}
}
