package game

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type SkillID int

const (
	StoneStorm SkillID = iota
	StillWaters
	MightyClearing
	SeizeAndMove
)

var skillKeys = map[SkillID]string{
	StoneStorm:     "stone-storm",
	StillWaters:    "still-waters",
	MightyClearing: "mighty-clearing",
	SeizeAndMove:   "seize-and-move",
}

func (id SkillID) String() string {
	if key, ok := skillKeys[id]; ok {
		return key
	}
	return "unknown"
}

// ParseSkillID accepts the hyphenated key of a skill, e.g. "stone-storm".
func ParseSkillID(s string) (SkillID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for id, k := range skillKeys {
		if k == key {
			return id, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownSkill, "%q", s)
}

// SkillResult describes what a skill activation did to the game.
type SkillResult struct {
	Skill       SkillID
	Player      Player
	Description string
	Source      Coordinate // stone removed or seized
	Destination Coordinate // where a seized stone landed
	HasSource   bool
	HasDest     bool
}

type Skill interface {
	ID() SkillID
	Name() string
	Description() string
	Cooldown() int
	InitialCooldown() int
	// Apply performs the effect for player on g. Failed preconditions wrap ErrInvalidSkillActivation.
	Apply(g *Game, player Player, rng *rand.Rand) (SkillResult, error)
}

// Registry is an ordered, read-only set of skills. Order defines the
// cooldown table layout and is shared by every clone of a game.
type Registry struct {
	skills []Skill
}

func NewRegistry(skills ...Skill) *Registry {
	seen := map[SkillID]bool{}
	for _, s := range skills {
		if seen[s.ID()] {
			panic("duplicate skill " + s.ID().String())
		}
		seen[s.ID()] = true
	}
	return &Registry{skills: slices.Clone(skills)}
}

// DefaultRegistry holds the four standard skills.
func DefaultRegistry() *Registry {
	return NewRegistry(stoneStorm{}, stillWaters{}, mightyClearing{}, seizeAndMove{})
}

func (r *Registry) Lookup(id SkillID) (Skill, error) {
	i := r.Index(id)
	if i < 0 {
		return nil, errors.Wrapf(ErrUnknownSkill, "skill %v", id)
	}
	return r.skills[i], nil
}

// Index returns the position of id in the registry order, or -1.
func (r *Registry) Index(id SkillID) int {
	return slices.IndexFunc(r.skills, func(s Skill) bool { return s.ID() == id })
}

func (r *Registry) IDs() []SkillID {
	ids := make([]SkillID, len(r.skills))
	for i, s := range r.skills {
		ids[i] = s.ID()
	}
	return ids
}

func (r *Registry) Skills() []Skill { return slices.Clone(r.skills) }
func (r *Registry) Len() int        { return len(r.skills) }
