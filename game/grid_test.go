package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, winLength int, lines ...string) Grid {
	t.Helper()
	g, err := GridFromRows(winLength, lines...)
	require.NoError(t, err)
	return g
}

func TestGridFromRows(t *testing.T) {
	t.Run("reads stones by row and column", func(t *testing.T) {
		g := mustGrid(t, 3,
			"X..",
			".O.",
			"..X",
		)

		require.Equal(t, 3, g.Size())
		require.Equal(t, 3, g.WinLength())
		require.Equal(t, BlackStone, g.At(Coordinate{0, 0}))
		require.Equal(t, WhiteStone, g.At(Coordinate{1, 1}))
		require.Equal(t, Empty, g.At(Coordinate{0, 1}))
		require.Equal(t, "X..\n.O.\n..X\n", g.String())
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		_, err := GridFromRows(3, "...", "..", "...")
		require.Error(t, err)
	})

	t.Run("rejects unknown markers", func(t *testing.T) {
		_, err := GridFromRows(3, "...", ".Z.", "...")
		require.True(t, errors.Is(err, ErrInvalidStone))
	})
}

func TestGridPlace(t *testing.T) {
	t.Run("placing leaves the original grid untouched", func(t *testing.T) {
		g := NewGrid(15, 5)
		next, win, err := g.Place(Coordinate{7, 7}, BlackStone)

		require.NoError(t, err)
		require.False(t, win)
		require.Equal(t, BlackStone, next.At(Coordinate{7, 7}))
		require.Equal(t, Empty, g.At(Coordinate{7, 7}), "Place should copy on write")
	})

	t.Run("detects lines in every direction", func(t *testing.T) {
		tests := []struct {
			name  string
			lines []string
			at    Coordinate
		}{
			{"horizontal", []string{"XX.XX", ".....", ".....", ".....", "....."}, Coordinate{0, 2}},
			{"vertical", []string{"X....", "X....", ".....", "X....", "X...."}, Coordinate{2, 0}},
			{"diagonal", []string{"X....", ".X...", ".....", "...X.", "....X"}, Coordinate{2, 2}},
			{"anti-diagonal", []string{"....X", "...X.", ".....", ".X...", "X...."}, Coordinate{2, 2}},
		}
		for _, tt := range tests {
			g := mustGrid(t, 5, tt.lines...)
			_, win, err := g.Place(tt.at, BlackStone)
			require.NoError(t, err)
			require.True(t, win, tt.name)
		}
	})

	t.Run("a broken line does not win", func(t *testing.T) {
		g := mustGrid(t, 5,
			"XXOX.",
			".....",
			".....",
			".....",
			".....",
		)
		_, win, err := g.Place(Coordinate{0, 4}, BlackStone)
		require.NoError(t, err)
		require.False(t, win)
	})

	t.Run("rejects occupied and off-board cells", func(t *testing.T) {
		g := mustGrid(t, 3, "X..", "...", "...")

		_, _, err := g.Place(Coordinate{0, 0}, WhiteStone)
		require.True(t, errors.Is(err, ErrOccupied))

		_, _, err = g.Place(Coordinate{3, 0}, WhiteStone)
		require.True(t, errors.Is(err, ErrOutOfBounds))

		_, _, err = g.Place(Coordinate{1, 1}, Empty)
		require.True(t, errors.Is(err, ErrInvalidStone))
	})
}

func TestGridQueries(t *testing.T) {
	g := mustGrid(t, 3,
		"XO.",
		".X.",
		"O..",
	)

	require.Equal(t, []Coordinate{{0, 0}, {1, 1}}, g.Stones(Black))
	require.Equal(t, []Coordinate{{0, 1}, {2, 0}}, g.Stones(White))
	require.False(t, g.IsFull())
	require.True(t, mustGrid(t, 3, "XOX", "OXO", "OXO").IsFull())
	require.Equal(t, Empty, g.At(Coordinate{-1, 0}), "Off-board cells read as empty")
	require.False(t, g.IsEmpty(Coordinate{-1, 0}), "Off-board cells are not playable")
	require.Equal(t, Coordinate{1, 1}, g.Center())
}

func TestGridHash(t *testing.T) {
	a := mustGrid(t, 3, "X..", "...", "..O")
	b := mustGrid(t, 3, "X..", "...", "..O")
	c := mustGrid(t, 3, "X..", "...", "O..")

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.False(t, a.Equal(c))
	require.NotEqual(t, a.Hash(), c.Hash())
}
