package agent

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
)

// Turn reports what an agent did with its turn.
type Turn struct {
	Action      searcher.Action // Applied to the game
	Planned     searcher.Action // Chosen by search
	SkillFailed bool            // Planned skill could not be used, a placement was played instead
	Metric      metrics.SearchMetric
}

type Agent interface {
	// TakeTurn picks and applies one action for the player to move in g
	TakeTurn(g *game.Game) (Turn, error)
}
