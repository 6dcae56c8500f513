package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"
	"gomoku/searcher"
	"gomoku/searcher/agent"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

type Option func(e *LocalEngine)

// WithSeed fixes every random source of the match. Without it a fresh seed is drawn.
func WithSeed(seed uint64) Option {
	return func(e *LocalEngine) {
		e.seed = seed
		e.seeded = true
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithBoardSize(size int) Option {
	return func(e *LocalEngine) {
		if size > 0 {
			e.boardSize = size
		}
	}
}

// WithSearchOptions configures both agents' searchers.
func WithSearchOptions(options ...searcher.Option) Option {
	return func(e *LocalEngine) {
		for _, p := range game.Players {
			e.searchOptions[p] = append(e.searchOptions[p], options...)
		}
	}
}

// WithPlayerSearchOptions configures one agent's searcher, after any shared options.
func WithPlayerSearchOptions(player game.Player, options ...searcher.Option) Option {
	return func(e *LocalEngine) {
		e.searchOptions[player] = append(e.searchOptions[player], options...)
	}
}

// LocalEngine plays two personas against each other in process.
type LocalEngine struct {
	id            string
	seed          uint64
	seeded        bool
	maxTurns      int
	boardSize     int
	searchOptions [2][]searcher.Option
	personas      [2]agent.Persona
	agents        [2]agent.Agent
	game          *game.Game
}

func NewLocalEngine(black, white agent.Persona, options ...Option) *LocalEngine {
	e := &LocalEngine{ // Default values
		id:        uuid.New().String(),
		maxTurns:  meta.MAX_TURNS,
		boardSize: meta.BOARD_SIZE,
		personas:  [2]agent.Persona{black, white},
	}
	for _, option := range options {
		option(e)
	}
	if !e.seeded {
		e.seed = frand.Uint64n(math.MaxUint64)
	}

	e.game = game.New(game.WithBoardSize(e.boardSize), game.WithSeed(e.seed, 0))
	for _, p := range game.Players {
		searchOptions := append([]searcher.Option{searcher.WithMetrics()}, e.searchOptions[p]...)
		rng := rand.New(rand.NewPCG(e.seed, uint64(p)+1))
		e.agents[p] = agent.NewOpponent(e.personas[p], p, rng, searchOptions...)
	}
	return e
}

func (e *LocalEngine) ID() string       { return e.id }
func (e *LocalEngine) Seed() uint64     { return e.seed }
func (e *LocalEngine) Game() *game.Game { return e.game }

// Run executes the entire game loop until the game is decided or the turn cap is hit.
func (e *LocalEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:        e.id,
		Seed:      e.seed,
		Black:     e.personas[game.Black].Key,
		White:     e.personas[game.White].Key,
		StartTime: time.Now(),
	}
	log.Info().Msgf("match %s: %s (black) vs %s (white), seed %d", e.id, gameMetric.Black, gameMetric.White, e.seed)

	var moveMetrics []metrics.MoveMetric
	step := 1
	for !e.game.IsFinished() && step <= e.maxTurns {
		player := e.game.CurrentPlayer()
		turn, err := e.agents[player].TakeTurn(e.game)
		if errors.Is(err, searcher.ErrNoLegalAction) {
			log.Warn().Msgf("match %s: %s has no legal action at step %d", e.id, player, step)
			break
		}
		if err != nil {
			return gameMetric, moveMetrics, errors.WithMessagef(err, "match %s step %d", e.id, step)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player.String(),
			Action:       turn.Action.String(),
			SkillFailed:  turn.SkillFailed,
			SearchMetric: turn.Metric,
		})
		log.Info().Msgf("match %s step %d: %s %v", e.id, step, player, turn.Action)
		step++
	}

	if winner, ok := e.game.Winner(); ok {
		gameMetric.Winner = winner.String()
		log.Info().Msgf("match %s: %s wins after %d actions", e.id, winner, len(moveMetrics))
	} else if e.game.IsDraw() {
		gameMetric.IsDraw = true
		log.Info().Msgf("match %s: draw after %d actions", e.id, len(moveMetrics))
	} else {
		log.Info().Msgf("match %s: stopped after %d actions without a result", e.id, len(moveMetrics))
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return gameMetric, moveMetrics, nil
}
