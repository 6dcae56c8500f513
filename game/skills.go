package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// stoneStorm removes one opponent stone: the one under the cursor if there
// is one, otherwise a random one.
type stoneStorm struct{}

func (stoneStorm) ID() SkillID          { return StoneStorm }
func (stoneStorm) Name() string         { return "Stone Storm" }
func (stoneStorm) Description() string  { return "Remove one of the opponent's stones." }
func (stoneStorm) Cooldown() int        { return 5 }
func (stoneStorm) InitialCooldown() int { return 5 }

func (s stoneStorm) Apply(g *Game, player Player, rng *rand.Rand) (SkillResult, error) {
	targets := g.board.Stones(player.Opponent())
	if len(targets) == 0 {
		return SkillResult{}, errors.Wrap(ErrInvalidSkillActivation, "opponent has no stone to remove")
	}

	target := g.cursor
	if g.board.At(target) != player.Opponent().Stone() {
		target = targets[rng.IntN(len(targets))]
	}
	if _, err := g.board.Remove(target); err != nil {
		return SkillResult{}, errors.Wrap(ErrInvalidSkillActivation, err.Error())
	}
	if g.lastMove != nil && g.lastMove.Coord == target {
		g.lastMove = nil
	}

	return SkillResult{
		Skill:       s.ID(),
		Player:      player,
		Description: fmt.Sprintf("removed %s stone at %v", player.Opponent(), target),
		Source:      target,
		HasSource:   true,
	}, nil
}

// stillWaters makes the opponent lose their next turn.
type stillWaters struct{}

func (stillWaters) ID() SkillID          { return StillWaters }
func (stillWaters) Name() string         { return "Still Waters" }
func (stillWaters) Description() string  { return "The opponent cannot move next turn." }
func (stillWaters) Cooldown() int        { return 7 }
func (stillWaters) InitialCooldown() int { return 0 }

func (s stillWaters) Apply(g *Game, player Player, _ *rand.Rand) (SkillResult, error) {
	g.ScheduleSkip(player.Opponent())
	return SkillResult{
		Skill:       s.ID(),
		Player:      player,
		Description: fmt.Sprintf("%s skips the next turn", player.Opponent()),
	}, nil
}

// mightyClearing wipes the board together with any decided result.
type mightyClearing struct{}

func (mightyClearing) ID() SkillID          { return MightyClearing }
func (mightyClearing) Name() string         { return "Mighty Clearing" }
func (mightyClearing) Description() string  { return "Clear every stone from the board." }
func (mightyClearing) Cooldown() int        { return 12 }
func (mightyClearing) InitialCooldown() int { return 7 }

func (s mightyClearing) Apply(g *Game, player Player, _ *rand.Rand) (SkillResult, error) {
	g.board.Clear()
	g.lastMove = nil
	g.winner = nil
	g.draw = false
	return SkillResult{
		Skill:       s.ID(),
		Player:      player,
		Description: "the board was cleared",
	}, nil
}

// seizeAndMove relocates the opponent stone under the cursor to a random
// empty cell. If the relocated stone completes a line, the opponent wins.
type seizeAndMove struct{}

func (seizeAndMove) ID() SkillID          { return SeizeAndMove }
func (seizeAndMove) Name() string         { return "Seize and Move" }
func (seizeAndMove) Description() string  { return "Move one of the opponent's stones somewhere else." }
func (seizeAndMove) Cooldown() int        { return 9 }
func (seizeAndMove) InitialCooldown() int { return 3 }

func (s seizeAndMove) Apply(g *Game, player Player, rng *rand.Rand) (SkillResult, error) {
	source := g.cursor
	if g.board.At(source) != player.Opponent().Stone() {
		return SkillResult{}, errors.Wrapf(ErrInvalidSkillActivation, "cursor %v is not on an opponent stone", source)
	}

	empties := []Coordinate{}
	grid := g.board.Grid()
	for r := 0; r < grid.Size(); r++ {
		for c := 0; c < grid.Size(); c++ {
			coord := Coordinate{Row: r, Col: c}
			if coord != source && grid.IsEmpty(coord) {
				empties = append(empties, coord)
			}
		}
	}
	if len(empties) == 0 {
		return SkillResult{}, errors.Wrap(ErrInvalidSkillActivation, "no empty cell to move the stone to")
	}
	dest := empties[rng.IntN(len(empties))]

	stone, err := g.board.Remove(source)
	if err != nil {
		return SkillResult{}, errors.Wrap(ErrInvalidSkillActivation, err.Error())
	}
	if g.lastMove != nil && g.lastMove.Coord == source {
		g.lastMove = nil
	}
	win, err := g.board.Place(dest, stone)
	if err != nil {
		panic(fmt.Sprintf("relocating to empty cell %v: %v", dest, err))
	}
	if win {
		winner := player.Opponent()
		g.winner = &winner
		g.draw = false
		g.lastMove = nil
		g.logAction(fmt.Sprintf("%s completes five after the relocation", winner))
	}

	return SkillResult{
		Skill:       s.ID(),
		Player:      player,
		Description: fmt.Sprintf("moved %s stone %v -> %v", player.Opponent(), source, dest),
		Source:      source,
		Destination: dest,
		HasSource:   true,
		HasDest:     true,
	}, nil
}
