package searcher

import (
	"cmp"
	"math/rand/v2"

	"gomoku/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// SimulateSkill plays a skill action on a deep copy of g and returns the copy
// together with the cooldown snapshot that follows the activation. g itself
// is never modified. The copy draws its randomness from a source seeded by rng.
func SimulateSkill(g *game.Game, snapshot CooldownSnapshot, action Action, rng *rand.Rand) (*game.Game, CooldownSnapshot, error) {
	skill, err := g.Registry().Lookup(action.Skill)
	if err != nil {
		return nil, snapshot, err
	}

	sim := g.Clone()
	sim.Reseed(rng.Uint64(), rng.Uint64())
	if action.HasTarget {
		if err := sim.SetCursor(action.Target); err != nil {
			return nil, snapshot, errors.WithMessage(game.ErrInvalidSkillActivation, err.Error())
		}
	}

	actor := sim.CurrentPlayer()
	// The snapshot decides readiness, not the live table the copy inherited
	for _, id := range snapshot.skills {
		if err := sim.SetCooldown(actor, id, snapshot.Remaining(actor, id)); err != nil {
			return nil, snapshot, errors.WithMessage(game.ErrInvalidSkillActivation, err.Error())
		}
	}
	if _, err := sim.UseSkill(action.Skill); err != nil {
		if errors.Is(err, game.ErrInvalidSkillActivation) {
			return nil, snapshot, err
		}
		return nil, snapshot, errors.WithMessage(game.ErrInvalidSkillActivation, err.Error())
	}

	next := snapshot.WithSkillTriggered(actor, action.Skill, skill.Cooldown())
	if sim.IsFinished() {
		return sim, next, nil
	}
	next = next.AdvanceAfterMove(actor)
	if skipped, ok := sim.SkippedLast(); ok && skipped == actor.Opponent() {
		// The opponent's turn was consumed, so the actor's own cooldowns tick as well
		next = next.AdvanceAfterMove(skipped)
	}
	return sim, next, nil
}

type skillChild struct {
	action    Action
	game      *game.Game
	cooldowns CooldownSnapshot
	eval      float64
}

// rootSkillChildren simulates every skill the side to move may use. Mighty
// Clearing is never expanded; Stone Storm becomes up to stormBranches
// target-specific children.
func (s *Searcher) rootSkillChildren(g *game.Game, snapshot CooldownSnapshot, rng *rand.Rand) []skillChild {
	actor := g.CurrentPlayer()
	children := []skillChild{}
	for _, id := range snapshot.skills {
		if !snapshot.Ready(actor, id) {
			continue
		}
		switch id {
		case game.MightyClearing:
			continue
		case game.StoneStorm:
			children = append(children, s.stormChildren(g, snapshot, rng)...)
			continue
		}

		sim, next, err := SimulateSkill(g, snapshot, UseSkill(id), rng)
		if err != nil {
			mustBeInvalid(err)
			log.Debug().Msgf("skipping %v at the root: %v", id, err)
			continue
		}

		action := UseSkill(id)
		if result, ok := sim.LastSkill(); ok && result.HasSource {
			action = UseSkillAt(id, result.Source)
		}
		children = append(children, skillChild{
			action:    action,
			game:      sim,
			cooldowns: next,
			eval:      Evaluate(sim.Grid(), actor),
		})
	}
	return children
}

// stormChildren scores Stone Storm on up to stormCandidates opponent stones,
// the one under the cursor first, and keeps the best stormBranches.
func (s *Searcher) stormChildren(g *game.Game, snapshot CooldownSnapshot, rng *rand.Rand) []skillChild {
	actor := g.CurrentPlayer()
	opponent := actor.Opponent()
	stones := g.OccupiedBy(opponent)
	if len(stones) == 0 {
		return nil
	}

	cursor := g.Cursor()
	targets := make([]game.Coordinate, 0, len(stones))
	if g.Grid().At(cursor) == opponent.Stone() {
		targets = append(targets, cursor)
	}
	for _, c := range stones {
		if c != cursor {
			targets = append(targets, c)
		}
	}
	if s.stormCandidates > 0 && len(targets) > s.stormCandidates {
		targets = targets[:s.stormCandidates]
	}

	scored := make([]skillChild, 0, len(targets))
	for _, target := range targets {
		action := UseSkillAt(game.StoneStorm, target)
		sim, next, err := SimulateSkill(g, snapshot, action, rng)
		if err != nil {
			mustBeInvalid(err)
			continue
		}
		scored = append(scored, skillChild{
			action:    action,
			game:      sim,
			cooldowns: next,
			eval:      Evaluate(sim.Grid(), actor),
		})
	}

	slices.SortStableFunc(scored, func(a, b skillChild) int {
		return cmp.Compare(b.eval, a.eval)
	})
	return scored[:min(len(scored), s.stormBranches)]
}

func mustBeInvalid(err error) {
	if !errors.Is(err, game.ErrInvalidSkillActivation) {
		panic(err)
	}
}
