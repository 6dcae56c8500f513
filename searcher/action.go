package searcher

import (
	"fmt"

	"gomoku/game"

	"github.com/pkg/errors"
)

type ActionKind int

const (
	PlaceKind ActionKind = iota
	SkillKind
)

// Action is either a placement or a skill activation. Skill actions carry
// the target actually used when the skill needs one.
type Action struct {
	Kind      ActionKind
	Move      game.Coordinate
	Skill     game.SkillID
	Target    game.Coordinate
	HasTarget bool
}

var ErrMissingTarget = errors.New("skill action requires a target")

func Place(c game.Coordinate) Action {
	return Action{Kind: PlaceKind, Move: c}
}

func UseSkill(id game.SkillID) Action {
	return Action{Kind: SkillKind, Skill: id}
}

func UseSkillAt(id game.SkillID, target game.Coordinate) Action {
	return Action{Kind: SkillKind, Skill: id, Target: target, HasTarget: true}
}

func (a Action) IsPlacement() bool { return a.Kind == PlaceKind }
func (a Action) IsSkill() bool     { return a.Kind == SkillKind }

// Validate checks that a Stone Storm action names the stone it removes.
func (a Action) Validate() error {
	if a.Kind == SkillKind && a.Skill == game.StoneStorm && !a.HasTarget {
		return errors.Wrapf(ErrMissingTarget, "%v", a.Skill)
	}
	return nil
}

func (a Action) String() string {
	switch {
	case a.Kind == PlaceKind:
		return fmt.Sprintf("place %v", a.Move)
	case a.HasTarget:
		return fmt.Sprintf("%v at %v", a.Skill, a.Target)
	default:
		return a.Skill.String()
	}
}
