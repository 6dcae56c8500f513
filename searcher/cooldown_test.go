package searcher

import (
	"testing"

	"gomoku/game"

	"github.com/stretchr/testify/require"
)

var testSkills = []game.SkillID{game.StoneStorm, game.StillWaters, game.MightyClearing, game.SeizeAndMove}

func TestCooldownSnapshot(t *testing.T) {
	t.Run("construction copies its inputs", func(t *testing.T) {
		black := []int{1, 2, 3, 4}
		s := NewCooldownSnapshot(testSkills, black, []int{0, 0, 0, 0}, 3)
		black[0] = 99

		require.Equal(t, 1, s.Remaining(game.Black, game.StoneStorm))
		require.Equal(t, 3, s.Round())

		row := s.ForPlayer(game.Black)
		row[1] = 99
		require.Equal(t, 2, s.Remaining(game.Black, game.StillWaters))
	})

	t.Run("mismatched rows panic", func(t *testing.T) {
		require.Panics(t, func() { NewCooldownSnapshot(testSkills, []int{1}, []int{0, 0, 0, 0}, 0) })
	})

	t.Run("a move ticks only the opponent and floors at zero", func(t *testing.T) {
		s := NewCooldownSnapshot(testSkills, []int{2, 0, 1, 5}, []int{3, 0, 1, 2}, 4)
		next := s.AdvanceAfterMove(game.Black)

		require.Equal(t, []int{2, 0, 1, 5}, next.ForPlayer(game.Black))
		require.Equal(t, []int{2, 0, 0, 1}, next.ForPlayer(game.White))
		require.Equal(t, 5, next.Round())
		require.Equal(t, []int{3, 0, 1, 2}, s.ForPlayer(game.White), "Transitions return new snapshots")
		require.Equal(t, 4, s.Round())
	})

	t.Run("triggering a skill sets its cooldown without advancing the round", func(t *testing.T) {
		s := NewCooldownSnapshot(testSkills, []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 1)
		next := s.WithSkillTriggered(game.White, game.SeizeAndMove, 9)

		require.Equal(t, 9, next.Remaining(game.White, game.SeizeAndMove))
		require.False(t, next.Ready(game.White, game.SeizeAndMove))
		require.True(t, next.Ready(game.Black, game.SeizeAndMove))
		require.Equal(t, 1, next.Round())
		require.True(t, s.Ready(game.White, game.SeizeAndMove))
	})

	t.Run("untracked skills panic", func(t *testing.T) {
		s := NewCooldownSnapshot([]game.SkillID{game.StillWaters}, []int{0}, []int{0}, 0)
		require.Panics(t, func() { s.Remaining(game.Black, game.StoneStorm) })
		require.Panics(t, func() { s.WithSkillTriggered(game.Black, game.StoneStorm, 5) })
	})

	t.Run("snapshot of a live game", func(t *testing.T) {
		g := game.New(game.WithSeed(1, 1))
		g.PlaceAtCursor()
		s := SnapshotFromGame(g)

		require.Equal(t, g.Registry().IDs(), s.Skills())
		require.Equal(t, g.Cooldowns(game.Black), s.ForPlayer(game.Black))
		require.Equal(t, g.Cooldowns(game.White), s.ForPlayer(game.White))
		require.Equal(t, 1, s.Round())
	})

	t.Run("snapshot transitions track the live game", func(t *testing.T) {
		g := game.New(game.WithSeed(1, 1))
		s := SnapshotFromGame(g)
		for i := 0; i < 6; i++ {
			mover := g.CurrentPlayer()
			_, err := g.PlaceStone(game.Coordinate{Row: i, Col: 0})
			require.NoError(t, err)
			s = s.AdvanceAfterMove(mover)
		}

		require.Equal(t, SnapshotFromGame(g), s)
	})
}
