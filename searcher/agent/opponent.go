package agent

import (
	"math/rand/v2"

	"gomoku/game"
	"gomoku/searcher"
	"gomoku/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrNotYourTurn = errors.New("not this opponent's turn")

// Opponent plays one side of a game on behalf of a persona.
type Opponent struct {
	persona  Persona
	player   game.Player
	rng      *rand.Rand
	searcher *searcher.Searcher
}

// NewOpponent returns an opponent for player. All of its random choices,
// including those made during search, draw from rng.
func NewOpponent(persona Persona, player game.Player, rng *rand.Rand, options ...searcher.Option) *Opponent {
	return &Opponent{
		persona:  persona,
		player:   player,
		rng:      rng,
		searcher: searcher.NewSearcher(options...),
	}
}

func (o *Opponent) Persona() Persona    { return o.persona }
func (o *Opponent) Player() game.Player { return o.player }

func (o *Opponent) TakeTurn(g *game.Game) (Turn, error) {
	if g.IsFinished() {
		return Turn{}, game.ErrGameFinished
	}
	if g.CurrentPlayer() != o.player {
		return Turn{}, errors.Wrapf(ErrNotYourTurn, "%s to move", g.CurrentPlayer())
	}

	if turn, ok := o.clearBoard(g); ok {
		return turn, nil
	}

	result, err := o.searcher.Search(g, o.persona.Depth, o.rng)
	if err != nil {
		return Turn{}, err
	}
	turn := Turn{Action: result.Action, Planned: result.Action, Metric: result.Metric}

	if result.Action.IsSkill() {
		applied, err := o.executeSkill(g, result.Action)
		if err == nil {
			turn.Action = applied
			return turn, nil
		}
		log.Debug().Msgf("%s could not use %v, placing instead: %v", o.persona.Key, result.Action, err)

		coord, err := o.fallbackMove(g)
		if err != nil {
			return Turn{}, errors.WithMessage(err, "no placement after failed skill")
		}
		turn.Action = searcher.Place(coord)
		turn.SkillFailed = true
	}

	if err := g.SetCursor(turn.Action.Move); err != nil {
		return Turn{}, err
	}
	if _, err := g.PlaceAtCursor(); err != nil {
		return Turn{}, errors.WithMessagef(err, "placing %v", turn.Action.Move)
	}
	return turn, nil
}

// clearBoard lets the persona wipe the board outside search. It only
// considers doing so while behind on the board.
func (o *Opponent) clearBoard(g *game.Game) (Turn, bool) {
	ready := g.ReadySkills(o.player)
	if utils.FindIndex(ready, game.MightyClearing) < 0 {
		return Turn{}, false
	}
	if searcher.Evaluate(g.Grid(), o.player) >= 0 {
		return Turn{}, false
	}
	if o.rng.Float64() >= o.persona.TriggerChance {
		return Turn{}, false
	}
	if id, ok := o.persona.PickSkill(o.rng, ready); !ok || id != game.MightyClearing {
		return Turn{}, false
	}

	if _, err := g.UseSkill(game.MightyClearing); err != nil {
		log.Warn().Msgf("%s failed to clear the board: %v", o.persona.Key, err)
		return Turn{}, false
	}
	action := searcher.UseSkill(game.MightyClearing)
	return Turn{Action: action, Planned: action}, true
}

func (o *Opponent) executeSkill(g *game.Game, action searcher.Action) (searcher.Action, error) {
	switch action.Skill {
	case game.StoneStorm:
		if action.HasTarget {
			if err := g.SetCursor(action.Target); err != nil {
				return action, err
			}
		}
	case game.SeizeAndMove:
		target := action.Target
		if !action.HasTarget {
			stones := g.OccupiedBy(o.player.Opponent())
			if len(stones) == 0 {
				return action, errors.Wrap(game.ErrInvalidSkillActivation, "no opponent stone to seize")
			}
			target = stones[o.rng.IntN(len(stones))]
		}
		if err := g.SetCursor(target); err != nil {
			return action, err
		}
	}

	result, err := g.UseSkill(action.Skill)
	if err != nil {
		return action, err
	}
	if result.HasSource {
		return searcher.UseSkillAt(action.Skill, result.Source), nil
	}
	return searcher.UseSkill(action.Skill), nil
}

// fallbackMove searches a copy of g on which every skill is cooling down,
// so the answer is always a placement.
func (o *Opponent) fallbackMove(g *game.Game) (game.Coordinate, error) {
	snapshot := g.Clone()
	p := snapshot.CurrentPlayer()
	for _, id := range snapshot.Registry().IDs() {
		remaining, err := snapshot.Cooldown(p, id)
		if err != nil {
			return game.Coordinate{}, err
		}
		if err := snapshot.SetCooldown(p, id, max(remaining, 1)); err != nil {
			return game.Coordinate{}, err
		}
	}
	return o.searcher.ChooseMove(snapshot, o.persona.Depth, o.rng)
}
