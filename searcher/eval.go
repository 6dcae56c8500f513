package searcher

import (
	"gomoku/game"
)

const WinScore = 1_000_000.0

// Evaluate scores the grid from perspective's point of view: the sum of its
// run scores minus the opponent's.
func Evaluate(grid game.Grid, perspective game.Player) float64 {
	return scorePlayer(grid, perspective) - scorePlayer(grid, perspective.Opponent())
}

func scorePlayer(grid game.Grid, p game.Player) float64 {
	stone := p.Stone()
	total := 0.0
	for c := range grid.Occupied() {
		if grid.At(c) != stone {
			continue
		}
		for _, d := range game.Directions {
			prev := game.Coordinate{Row: c.Row - d.Row, Col: c.Col - d.Col}
			if grid.InBounds(prev) && grid.At(prev) == stone {
				continue // Not the start of a run
			}
			length, open := runMetrics(grid, c, stone, d)
			total += scoreRun(length, open, grid.WinLength())
		}
	}
	return total
}

// runMetrics measures the run through start along d and counts its empty in-bounds ends.
func runMetrics(grid game.Grid, start game.Coordinate, stone game.Cell, d game.Coordinate) (length, open int) {
	c := start
	for grid.InBounds(c) && grid.At(c) == stone {
		length++
		c = game.Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
	}
	if grid.IsEmpty(c) {
		open++
	}

	c = game.Coordinate{Row: start.Row - d.Row, Col: start.Col - d.Col}
	for grid.InBounds(c) && grid.At(c) == stone {
		length++
		c = game.Coordinate{Row: c.Row - d.Row, Col: c.Col - d.Col}
	}
	if grid.IsEmpty(c) {
		open++
	}
	return length, open
}

// scoreRun applies the run table. The first value is for runs open at both ends.
func scoreRun(length, open, win int) float64 {
	both := open == 2
	switch {
	case length >= win:
		return WinScore
	case length == win-1:
		return pick(both, 50_000, 5_000)
	case length == win-2:
		return pick(both, 2_000, 400)
	case length == win-3:
		return pick(both, 200, 50)
	case length == 2: // Only reachable for lines longer than five
		return pick(both, 30, 10)
	default:
		return 1
	}
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
