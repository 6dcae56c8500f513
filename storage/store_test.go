package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gomoku/experiments/metrics"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func match(id, black, white, winner string, draw bool, start int64) metrics.GameMetric {
	startTime := time.Unix(start, 0)
	endTime := time.Unix(start+30, 0)
	return metrics.GameMetric{
		ID:         id,
		Seed:       1<<63 + uint64(start),
		Black:      black,
		White:      white,
		Winner:     winner,
		IsDraw:     draw,
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalMoves: 2,
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a match", func(t *testing.T) {
		s, err := Open(filepath.Join(t.TempDir(), "nested", "matches.db"))
		require.NoError(t, err)
		defer s.Close()

		game := match("a", "ziqi", "coach-wang", "white", false, 100)
		moves := []metrics.MoveMetric{
			{Step: 1, Player: "black", Action: "place H7", SearchMetric: metrics.SearchMetric{Depth: 1, Expansions: 2, BestScore: 4}},
			{Step: 2, Player: "white", Action: "still-waters", SearchMetric: metrics.SearchMetric{Depth: 3, Ties: 2}},
		}
		require.NoError(t, s.SaveMatch(ctx, game, moves))

		got, err := s.Match(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, game, got.GameMetric)
		require.Equal(t, moves, got.Moves)
	})

	t.Run("missing matches and duplicate ids", func(t *testing.T) {
		s, err := Open(":memory:")
		require.NoError(t, err)
		defer s.Close()

		_, err = s.Match(ctx, "nope")
		require.True(t, errors.Is(err, ErrMatchNotFound))

		game := match("a", "ziqi", "ziqi", "", true, 1)
		require.NoError(t, s.SaveMatch(ctx, game, nil))
		require.Error(t, s.SaveMatch(ctx, game, nil))

		got, err := s.Match(ctx, "a")
		require.NoError(t, err)
		require.Empty(t, got.Moves)
	})

	t.Run("lists the most recent matches first", func(t *testing.T) {
		s, err := Open(":memory:")
		require.NoError(t, err)
		defer s.Close()

		for i, id := range []string{"first", "second", "third"} {
			require.NoError(t, s.SaveMatch(ctx, match(id, "ziqi", "jinengwu", "black", false, int64(i*100)), nil))
		}

		games, err := s.ListMatches(ctx, 2)
		require.NoError(t, err)
		require.Len(t, games, 2)
		require.Equal(t, "third", games[0].ID)
		require.Equal(t, "second", games[1].ID)
	})

	t.Run("standings count both colours", func(t *testing.T) {
		s, err := Open(":memory:")
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.SaveMatch(ctx, match("1", "ziqi", "coach-wang", "white", false, 1), nil))
		require.NoError(t, s.SaveMatch(ctx, match("2", "coach-wang", "ziqi", "black", false, 2), nil))
		require.NoError(t, s.SaveMatch(ctx, match("3", "ziqi", "coach-wang", "", true, 3), nil))
		require.NoError(t, s.SaveMatch(ctx, match("4", "ziqi", "coach-wang", "", false, 4), nil))

		standings, err := s.Standings(ctx)
		require.NoError(t, err)
		require.Equal(t, []Standing{
			{Persona: "coach-wang", Wins: 2, Losses: 0, Draws: 1, Other: 1},
			{Persona: "ziqi", Wins: 0, Losses: 2, Draws: 1, Other: 1},
		}, standings)
	})
}
