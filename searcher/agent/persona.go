package agent

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"gomoku/game"
	"gomoku/utils"

	"github.com/pkg/errors"
)

var ErrUnknownPersona = errors.New("unknown persona")

const DefaultTriggerChance = 1.0 / 3

type SkillWeight struct {
	Skill  game.SkillID
	Weight float64
}

// Persona bundles the search depth and skill taste of an AI opponent.
type Persona struct {
	Key           string
	DisplayName   string
	Level         int
	Depth         int
	SkillWeights  []SkillWeight // Sampling order is slice order
	TriggerChance float64
	NoSkillWeight float64
	Description   string
}

// PickSkill samples one of the available skills by weight. It reports false
// when the persona declines to use a skill or nothing eligible is left.
func (p Persona) PickSkill(rng *rand.Rand, available []game.SkillID) (game.SkillID, bool) {
	type choice struct {
		skill  game.SkillID
		none   bool
		weight float64
	}

	choices := []choice{}
	total := 0.0
	for _, sw := range p.SkillWeights {
		if sw.Weight <= 0 || utils.FindIndex(available, sw.Skill) < 0 {
			continue
		}
		choices = append(choices, choice{skill: sw.Skill, weight: sw.Weight})
		total += sw.Weight
	}
	if p.NoSkillWeight > 0 {
		choices = append(choices, choice{none: true, weight: p.NoSkillWeight})
		total += p.NoSkillWeight
	}
	if len(choices) == 0 || total <= 0 {
		return 0, false
	}

	threshold := rng.Float64() * total
	for _, c := range choices {
		if threshold < c.weight {
			return c.skill, !c.none
		}
		threshold -= c.weight
	}
	last := choices[len(choices)-1]
	return last.skill, !last.none
}

func (p Persona) Weight(id game.SkillID) float64 {
	for _, sw := range p.SkillWeights {
		if sw.Skill == id {
			return sw.Weight
		}
	}
	return 0
}

var personas = []Persona{
	{
		Key:         "ziqi",
		DisplayName: "Ziqi",
		Level:       1,
		Depth:       1,
		SkillWeights: []SkillWeight{
			{game.StoneStorm, 0.4},
			{game.StillWaters, 0.4},
			{game.SeizeAndMove, 0.1},
		},
		TriggerChance: DefaultTriggerChance,
		NoSkillWeight: 0.1,
		Description:   "A beginner who sometimes forgets to use skills.",
	},
	{
		Key:         "zhangcheng",
		DisplayName: "Zhang Cheng",
		Level:       2,
		Depth:       2,
		SkillWeights: []SkillWeight{
			{game.StoneStorm, 0.4},
			{game.StillWaters, 0.1},
			{game.SeizeAndMove, 0.55},
			{game.MightyClearing, 0.05},
		},
		TriggerChance: DefaultTriggerChance,
		Description:   "The class troublemaker, loves moving and wrecking stones.",
	},
	{
		Key:         "coach-wang",
		DisplayName: "Coach Wang",
		Level:       3,
		Depth:       3,
		SkillWeights: []SkillWeight{
			{game.StoneStorm, 0.4},
			{game.SeizeAndMove, 0.6},
		},
		TriggerChance: DefaultTriggerChance,
		Description:   "Steady and seasoned, always hunting for the weak spot.",
	},
	{
		Key:         "jinengwu",
		DisplayName: "Jineng Wu",
		Level:       4,
		Depth:       4,
		SkillWeights: []SkillWeight{
			{game.StoneStorm, 0.2},
			{game.SeizeAndMove, 0.6},
			{game.MightyClearing, 0.2},
		},
		TriggerChance: DefaultTriggerChance,
		Description:   "The final teacher, a master of every skill.",
	},
}

// Personas lists the built-in personas by level.
func Personas() []Persona {
	list := make([]Persona, len(personas))
	copy(list, personas)
	sort.Slice(list, func(i, j int) bool { return list[i].Level < list[j].Level })
	return list
}

func PersonaByKey(key string) (Persona, error) {
	for _, p := range personas {
		if p.Key == key {
			return p, nil
		}
	}
	return Persona{}, errors.Wrapf(ErrUnknownPersona, "key %q", key)
}

func PersonaByLevel(level int) (Persona, error) {
	for _, p := range personas {
		if p.Level == level {
			return p, nil
		}
	}
	return Persona{}, errors.Wrapf(ErrUnknownPersona, "level %d", level)
}

// ParsePersona reads "key[,depth=N][,trigger=F][,noskill=F]". The key may
// also be a level number.
func ParsePersona(config string) (Persona, error) {
	params := utils.SplitConfigString(config)
	name := strings.TrimSpace(params[""])
	delete(params, "")
	if name == "" {
		return Persona{}, errors.Wrapf(ErrUnknownPersona, "empty persona in %q", config)
	}

	var p Persona
	var err error
	if level, convErr := strconv.Atoi(name); convErr == nil {
		p, err = PersonaByLevel(level)
	} else {
		p, err = PersonaByKey(name)
	}
	if err != nil {
		return Persona{}, err
	}

	if p.Depth, err = utils.PopParamOr(params, "depth", p.Depth); err != nil {
		return Persona{}, err
	}
	if p.TriggerChance, err = utils.PopParamOr(params, "trigger", p.TriggerChance); err != nil {
		return Persona{}, err
	}
	if p.NoSkillWeight, err = utils.PopParamOr(params, "noskill", p.NoSkillWeight); err != nil {
		return Persona{}, err
	}
	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Persona{}, errors.Errorf("unknown persona parameters %v in %q", keys, config)
	}

	p.SkillWeights = append([]SkillWeight(nil), p.SkillWeights...)
	return p, nil
}
