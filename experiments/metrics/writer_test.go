package metrics

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "ladder")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "ladder"), filepath.Dir(w.Dir()))

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Persona: "ziqi,depth=2", Budget: 500}}))
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		MatchUp: 0,
		Agent1:  1,
		Agent2:  1,
		GameMetric: GameMetric{
			ID: "g1", Seed: 9, Black: "ziqi", White: "ziqi", Winner: "black",
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 17,
		},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{
		{Game: "g1", MoveMetric: MoveMetric{Step: 1, Player: "black", Action: "place H7"}},
		{Game: "g1", MoveMetric: MoveMetric{Step: 2, Player: "white", Action: "still-waters", SearchMetric: SearchMetric{BestScore: -12.5, IsFallback: true}}},
	}))

	agents := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{{"id", "persona", "budget"}, {"1", "ziqi,depth=2", "500"}}, agents)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, "g1", games[1][0])
	require.Equal(t, "black", games[1][7])
	require.Equal(t, "2024-05-01T12:00:00Z", games[1][9])
	require.Equal(t, "17", games[1][12])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 3)
	require.Len(t, moves[0], 14)
	require.Equal(t, "-12.5", moves[2][11])
	require.Equal(t, "true", moves[2][13])
}

func TestCollector(t *testing.T) {
	t.Run("collects one search", func(t *testing.T) {
		c := NewCollector()
		c.Start(3, 100)
		c.SetRootBranches(20, 2)
		for i := 0; i < 5; i++ {
			c.AddPush()
		}
		c.AddExpansion()
		c.SetOutcome(42, 2, false)
		m := c.Complete()

		require.Equal(t, 3, m.Depth)
		require.Equal(t, 100, m.Budget)
		require.Equal(t, 20, m.RootPlacements)
		require.Equal(t, 2, m.RootSkills)
		require.Equal(t, 5, m.Pushes)
		require.Equal(t, 1, m.Expansions)
		require.Equal(t, 42.0, m.BestScore)

		c.Start(1, 10)
		require.Equal(t, 0, c.Complete().Pushes, "Start resets the counters")
	})

	t.Run("fallback searches carry no score", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1)
		c.SetOutcome(math.Inf(-1), 0, true)
		m := c.Complete()
		require.Equal(t, 0.0, m.BestScore)
		require.True(t, m.IsFallback)
	})

	t.Run("the dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3, 100)
		c.AddPush()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
