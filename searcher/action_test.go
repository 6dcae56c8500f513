package searcher

import (
	"testing"

	"gomoku/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAction(t *testing.T) {
	t.Run("stone storm needs a target", func(t *testing.T) {
		err := UseSkill(game.StoneStorm).Validate()
		require.True(t, errors.Is(err, ErrMissingTarget))

		require.NoError(t, UseSkillAt(game.StoneStorm, game.Coordinate{Row: 1, Col: 1}).Validate())
		require.NoError(t, UseSkill(game.StillWaters).Validate())
		require.NoError(t, Place(game.Coordinate{}).Validate())
	})

	t.Run("kinds", func(t *testing.T) {
		require.True(t, Place(game.Coordinate{}).IsPlacement())
		require.False(t, Place(game.Coordinate{}).IsSkill())
		require.True(t, UseSkill(game.StillWaters).IsSkill())
	})

	t.Run("actions compare by value", func(t *testing.T) {
		require.Equal(t, Place(game.Coordinate{Row: 2, Col: 3}), Place(game.Coordinate{Row: 2, Col: 3}))
		require.NotEqual(t, UseSkill(game.SeizeAndMove), UseSkillAt(game.SeizeAndMove, game.Coordinate{}))
	})

	t.Run("labels", func(t *testing.T) {
		require.Equal(t, "place H7", Place(game.Coordinate{Row: 7, Col: 7}).String())
		require.Equal(t, "stone-storm at C2", UseSkillAt(game.StoneStorm, game.Coordinate{Row: 2, Col: 2}).String())
		require.Equal(t, "still-waters", UseSkill(game.StillWaters).String())
	})
}
