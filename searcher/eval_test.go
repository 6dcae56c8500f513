package searcher

import (
	"testing"

	"gomoku/game"

	"github.com/stretchr/testify/require"
)

// gridWith places stones on an empty size x size grid with the standard win length.
func gridWith(t *testing.T, size int, black, white []game.Coordinate) game.Grid {
	t.Helper()
	g := game.NewGrid(size, 5)
	var err error
	for _, c := range black {
		g, _, err = g.Place(c, game.BlackStone)
		require.NoError(t, err)
	}
	for _, c := range white {
		g, _, err = g.Place(c, game.WhiteStone)
		require.NoError(t, err)
	}
	return g
}

func row(r int, cols ...int) []game.Coordinate {
	coords := make([]game.Coordinate, len(cols))
	for i, c := range cols {
		coords[i] = game.Coordinate{Row: r, Col: c}
	}
	return coords
}

func TestEvaluate(t *testing.T) {
	t.Run("an empty grid is level", func(t *testing.T) {
		require.Equal(t, 0.0, Evaluate(game.NewGrid(15, 5), game.Black))
	})

	t.Run("a lone stone scores one per direction", func(t *testing.T) {
		g := gridWith(t, 15, row(7, 7), nil)
		require.Equal(t, 4.0, Evaluate(g, game.Black))
		require.Equal(t, -4.0, Evaluate(g, game.White))
	})

	t.Run("an open two", func(t *testing.T) {
		g := gridWith(t, 15, row(7, 7, 8), nil)
		// One open run of two plus three single-stone runs per stone
		require.Equal(t, 206.0, Evaluate(g, game.Black))
	})

	t.Run("open runs outscore closed runs", func(t *testing.T) {
		open := gridWith(t, 15, row(7, 5, 6, 7, 8), nil)
		closed := gridWith(t, 15, row(7, 5, 6, 7, 8), row(7, 4))
		require.Greater(t, Evaluate(open, game.Black), 50_000.0)
		require.Less(t, Evaluate(closed, game.Black), 50_000.0)
		require.Greater(t, Evaluate(closed, game.Black), 5_000.0-100)
	})

	t.Run("the board edge closes a run", func(t *testing.T) {
		edge := gridWith(t, 15, row(0, 0, 1, 2), nil)
		inner := gridWith(t, 15, row(7, 5, 6, 7), nil)
		require.Less(t, Evaluate(edge, game.Black), Evaluate(inner, game.Black))
	})

	t.Run("five in a row dominates", func(t *testing.T) {
		five := gridWith(t, 15, row(7, 3, 4, 5, 6, 7), row(0, 0, 1, 2, 3))
		require.GreaterOrEqual(t, Evaluate(five, game.Black), WinScore-100_000)
		require.LessOrEqual(t, Evaluate(five, game.White), -(WinScore - 100_000))
	})

	t.Run("antisymmetric and deterministic", func(t *testing.T) {
		g := gridWith(t, 15,
			[]game.Coordinate{{Row: 7, Col: 7}, {Row: 8, Col: 8}, {Row: 6, Col: 8}, {Row: 2, Col: 2}},
			[]game.Coordinate{{Row: 7, Col: 8}, {Row: 9, Col: 9}, {Row: 5, Col: 5}},
		)
		require.Equal(t, Evaluate(g, game.Black), -Evaluate(g, game.White))
		require.Equal(t, Evaluate(g, game.Black), Evaluate(g, game.Black))
	})
}

func TestScoreRun(t *testing.T) {
	tests := []struct {
		length, open, win int
		want              float64
	}{
		{5, 0, 5, WinScore},
		{6, 2, 5, WinScore},
		{4, 2, 5, 50_000},
		{4, 1, 5, 5_000},
		{3, 2, 5, 2_000},
		{3, 0, 5, 400},
		{2, 2, 5, 200},
		{2, 1, 5, 50},
		{1, 2, 5, 1},
		{2, 2, 4, 2_000},
		{2, 2, 6, 30},
		{2, 2, 7, 30},
		{2, 1, 7, 10},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, scoreRun(tt.length, tt.open, tt.win), "length %d open %d win %d", tt.length, tt.open, tt.win)
	}
}
