package searcher

import (
	"container/heap"
	"math"
	"math/rand/v2"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var (
	ErrNoLegalAction = errors.New("no legal action")
	ErrSkillSelected = errors.New("search selected a skill")
)

const (
	relTolerance = 1e-9
	absTolerance = 1e-6
)

type Option func(s *Searcher)

// Searcher runs best-first search over placements and root skill
// activations. A Searcher with metrics enabled must not be shared between
// goroutines.
type Searcher struct {
	budget          int
	stormBranches   int
	stormCandidates int
	metrics         metrics.Collector
}

// WithBudget sets the maximum number of frontier pops per search.
func WithBudget(expansions int) Option {
	return func(s *Searcher) {
		if expansions > 0 {
			s.budget = expansions
		}
	}
}

// WithStormBranches sets how many Stone Storm targets are kept as root branches.
func WithStormBranches(k int) Option {
	return func(s *Searcher) {
		if k > 0 {
			s.stormBranches = k
		}
	}
}

// WithStormCandidates caps how many Stone Storm targets are scored; 0 scores all of them.
func WithStormCandidates(n int) Option {
	return func(s *Searcher) {
		if n >= 0 {
			s.stormCandidates = n
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		budget:          meta.MAX_EXPANSIONS,
		stormBranches:   meta.STORM_BRANCHES,
		stormCandidates: meta.STORM_CANDIDATES,
		metrics:         metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Result is the outcome of one search.
type Result struct {
	Action   Action
	Score    float64 // -Inf when the action came from the fallback
	Ties     int
	Fallback bool
	Metric   metrics.SearchMetric
}

// ChooseAction searches with a default Searcher.
func ChooseAction(g *game.Game, depth int, rng *rand.Rand) (Action, error) {
	return NewSearcher().ChooseAction(g, depth, rng)
}

// ChooseMove searches with a default Searcher and insists on a placement.
func ChooseMove(g *game.Game, depth int, rng *rand.Rand) (game.Coordinate, error) {
	return NewSearcher().ChooseMove(g, depth, rng)
}

// ChooseAction returns the best action for the side to move in g.
func (s *Searcher) ChooseAction(g *game.Game, depth int, rng *rand.Rand) (Action, error) {
	result, err := s.Search(g, depth, rng)
	if err != nil {
		return Action{}, err
	}
	return result.Action, nil
}

// ChooseMove is ChooseAction for callers that can only play placements.
func (s *Searcher) ChooseMove(g *game.Game, depth int, rng *rand.Rand) (game.Coordinate, error) {
	action, err := s.ChooseAction(g, depth, rng)
	if err != nil {
		return game.Coordinate{}, err
	}
	if !action.IsPlacement() {
		return game.Coordinate{}, errors.Wrapf(ErrSkillSelected, "%v", action)
	}
	return action.Move, nil
}

// Search reads the cooldown snapshot from g and runs SearchWith.
func (s *Searcher) Search(g *game.Game, depth int, rng *rand.Rand) (Result, error) {
	return s.SearchWith(g, SnapshotFromGame(g), depth, rng)
}

// CandidateActions lists the root actions a search would consider, placements first.
func (s *Searcher) CandidateActions(g *game.Game, snapshot CooldownSnapshot, rng *rand.Rand) []Action {
	moves, skills := s.expandRoot(g, snapshot, rng)
	actions := make([]Action, 0, len(moves)+len(skills))
	for _, m := range moves {
		actions = append(actions, Place(m))
	}
	for _, child := range skills {
		actions = append(actions, child.action)
	}
	return actions
}

func (s *Searcher) expandRoot(g *game.Game, snapshot CooldownSnapshot, rng *rand.Rand) ([]game.Coordinate, []skillChild) {
	moves := []game.Coordinate{}
	for m := range Candidates(g.Grid()) {
		moves = append(moves, m)
	}
	skills := s.rootSkillChildren(g, snapshot, rng)
	return moves, skills
}

// SearchWith runs best-first search from g using snapshot for skill
// readiness. g is never modified; every random choice draws from rng.
func (s *Searcher) SearchWith(g *game.Game, snapshot CooldownSnapshot, depth int, rng *rand.Rand) (Result, error) {
	if depth < 1 {
		depth = 1
	}
	s.metrics.Start(depth, s.budget)

	root := g.CurrentPlayer()
	grid := g.Grid()
	moves, skills := s.expandRoot(g, snapshot, rng)
	s.metrics.SetRootBranches(len(moves), len(skills))
	if len(moves) == 0 && len(skills) == 0 {
		return Result{}, ErrNoLegalAction
	}

	f := &frontier{}
	best := newBestActions()
	seq := 0
	push := func(n *node) {
		n.seq = seq
		seq++
		heap.Push(f, n)
		s.metrics.AddPush()
	}

	rootCooldowns := snapshot.AdvanceAfterMove(root)
	for _, m := range moves {
		next, win := mustPlace(grid, m, root.Stone())
		eval := Evaluate(next, root)
		n := &node{
			priority:  priority(1, eval, root.Opponent(), root),
			depth:     1,
			grid:      next,
			toMove:    root.Opponent(),
			first:     Place(m),
			eval:      eval,
			terminal:  win || next.IsFull(),
			cooldowns: rootCooldowns,
		}
		push(n)
		if n.terminal {
			best.record(eval, n.first)
		}
	}
	for _, child := range skills {
		n := &node{
			priority:  priority(1, child.eval, child.game.CurrentPlayer(), root),
			depth:     1,
			grid:      child.game.Grid(),
			toMove:    child.game.CurrentPlayer(),
			first:     child.action,
			eval:      child.eval,
			terminal:  child.game.IsFinished(),
			cooldowns: child.cooldowns,
		}
		push(n)
		if n.terminal {
			best.record(child.eval, n.first)
		}
	}

	expansions := 0
	for f.Len() > 0 && expansions < s.budget {
		n := heap.Pop(f).(*node)
		expansions++
		s.metrics.AddExpansion()

		if n.terminal || n.depth >= depth {
			best.record(n.score(), n.first)
			continue
		}

		expanded := false
		cooldowns := n.cooldowns.AdvanceAfterMove(n.toMove)
		for m := range Candidates(n.grid) {
			expanded = true
			next, win := mustPlace(n.grid, m, n.toMove.Stone())
			eval := Evaluate(next, root)
			push(&node{
				priority:  priority(n.depth+1, eval, n.toMove.Opponent(), root),
				depth:     n.depth + 1,
				grid:      next,
				toMove:    n.toMove.Opponent(),
				first:     n.first,
				eval:      eval,
				terminal:  win || next.IsFull(),
				cooldowns: cooldowns,
			})
		}
		if !expanded {
			best.record(n.eval, n.first)
		}
	}

	result := Result{Score: best.score, Ties: len(best.actions)}
	if len(best.actions) > 0 {
		result.Action = best.actions[rng.IntN(len(best.actions))]
	} else {
		log.Warn().Msgf("no action resolved after %d expansions, falling back to a random candidate", expansions)
		result.Fallback = true
		if len(moves) > 0 {
			result.Action = Place(moves[rng.IntN(len(moves))])
		} else {
			result.Action = skills[rng.IntN(len(skills))].action
		}
	}

	s.metrics.SetOutcome(result.Score, result.Ties, result.Fallback)
	result.Metric = s.metrics.Complete()
	log.Debug().Msgf("%s chose %v after %d expansions (frontier %d, score %.1f, ties %d)",
		root, result.Action, expansions, f.Len(), result.Score, result.Ties)
	return result, nil
}

// mustPlace panics on placements the move generator should never produce.
func mustPlace(grid game.Grid, c game.Coordinate, stone game.Cell) (game.Grid, bool) {
	next, win, err := grid.Place(c, stone)
	if err != nil {
		panic(errors.Wrap(err, "move generator produced an illegal placement"))
	}
	return next, win
}

// bestActions keeps the distinct root actions whose score is within
// tolerance of the best seen so far.
type bestActions struct {
	score   float64
	actions []Action
}

func newBestActions() *bestActions {
	return &bestActions{score: math.Inf(-1)}
}

func (b *bestActions) record(score float64, action Action) {
	switch {
	case score > b.score && !isClose(score, b.score):
		b.score = score
		b.actions = []Action{action}
	case isClose(score, b.score):
		if score > b.score {
			b.score = score
		}
		if !slices.Contains(b.actions, action) {
			b.actions = append(b.actions, action)
		}
	}
}

func isClose(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= math.Max(relTolerance*math.Max(math.Abs(a), math.Abs(b)), absTolerance)
}
