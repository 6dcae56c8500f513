package searcher

import (
	"fmt"

	"gomoku/game"
	"gomoku/utils"
)

// CooldownSnapshot is an immutable view of both players' remaining skill
// cooldowns plus a round counter. Transitions return new snapshots and may
// share untouched rows with the receiver, so rows are never written in place.
type CooldownSnapshot struct {
	skills    []game.SkillID
	remaining [2][]int
	round     int
}

func NewCooldownSnapshot(skills []game.SkillID, black, white []int, round int) CooldownSnapshot {
	if len(black) != len(skills) || len(white) != len(skills) {
		panic("cooldown rows must match the skill list")
	}
	return CooldownSnapshot{
		skills:    append([]game.SkillID(nil), skills...),
		remaining: [2][]int{append([]int(nil), black...), append([]int(nil), white...)},
		round:     round,
	}
}

// SnapshotFromGame reads the live cooldown table and round counter.
func SnapshotFromGame(g *game.Game) CooldownSnapshot {
	return NewCooldownSnapshot(
		g.Registry().IDs(),
		g.Cooldowns(game.Black),
		g.Cooldowns(game.White),
		g.Round(),
	)
}

func (s CooldownSnapshot) Skills() []game.SkillID {
	return append([]game.SkillID(nil), s.skills...)
}

func (s CooldownSnapshot) Round() int { return s.round }

func (s CooldownSnapshot) ForPlayer(p game.Player) []int {
	return append([]int(nil), s.remaining[p]...)
}

// Remaining panics on a skill the snapshot does not track.
func (s CooldownSnapshot) Remaining(p game.Player, id game.SkillID) int {
	return s.remaining[p][s.index(id)]
}

func (s CooldownSnapshot) Ready(p game.Player, id game.SkillID) bool {
	return s.Remaining(p, id) == 0
}

// AdvanceAfterMove applies one resolved action by p: every cooldown of p's
// opponent drops by one (not below zero) and the round counter grows by one.
func (s CooldownSnapshot) AdvanceAfterMove(p game.Player) CooldownSnapshot {
	opponent := p.Opponent()
	next := make([]int, len(s.remaining[opponent]))
	for i, v := range s.remaining[opponent] {
		if v > 0 {
			next[i] = v - 1
		}
	}
	remaining := s.remaining
	remaining[opponent] = next
	return CooldownSnapshot{skills: s.skills, remaining: remaining, round: s.round + 1}
}

// WithSkillTriggered sets p's entry for id to cooldown. Unknown skills panic.
func (s CooldownSnapshot) WithSkillTriggered(p game.Player, id game.SkillID, cooldown int) CooldownSnapshot {
	i := s.index(id)
	row := append([]int(nil), s.remaining[p]...)
	row[i] = cooldown
	remaining := s.remaining
	remaining[p] = row
	return CooldownSnapshot{skills: s.skills, remaining: remaining, round: s.round}
}

func (s CooldownSnapshot) index(id game.SkillID) int {
	i := utils.FindIndex(s.skills, id)
	if i < 0 {
		panic(fmt.Sprintf("%v: %v", game.ErrUnknownSkill, id))
	}
	return i
}
