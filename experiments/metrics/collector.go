package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth          int
	Budget         int
	Duration       time.Duration
	Expansions     int
	Pushes         int
	RootPlacements int
	RootSkills     int
	BestScore      float64
	Ties           int
	IsFallback     bool
}

type MoveMetric struct {
	Step        int
	Player      string // "black" or "white"
	Action      string
	SkillFailed bool // The planned skill failed and a placement was played instead
	SearchMetric
}

// AgentConfig describes one side of a match up.
type AgentConfig struct {
	ID      int
	Persona string // Persona config string, e.g. "coach-wang,depth=2"
	Budget  int
}

type GameMetric struct {
	ID         string
	Seed       uint64
	Black      string // Persona key
	White      string // Persona key
	Winner     string // "black", "white" or "" for no winner
	IsDraw     bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(depth, budget int)
	SetRootBranches(placements, skills int)
	AddExpansion()
	AddPush()
	SetOutcome(bestScore float64, ties int, fallback bool)
	Complete() SearchMetric
}

type collector struct {
	depth          int
	budget         int
	startTime      time.Time
	rootPlacements int
	rootSkills     int
	expansions     atomic.Int32
	pushes         atomic.Int32
	bestScore      float64
	ties           int
	fallback       bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, budget int) {
	m.startTime = time.Now()
	m.depth = depth
	m.budget = budget
	m.rootPlacements = 0
	m.rootSkills = 0
	m.expansions.Store(0)
	m.pushes.Store(0)
	m.bestScore = 0
	m.ties = 0
	m.fallback = false
}

func (m *collector) SetRootBranches(placements, skills int) {
	m.rootPlacements = placements
	m.rootSkills = skills
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddPush() {
	m.pushes.Add(1)
}

func (m *collector) SetOutcome(bestScore float64, ties int, fallback bool) {
	if math.IsInf(bestScore, 0) {
		bestScore = 0 // Fallbacks have no score and are marked by IsFallback
	}
	m.bestScore = bestScore
	m.ties = ties
	m.fallback = fallback
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:          m.depth,
		Budget:         m.budget,
		Duration:       time.Since(m.startTime),
		Expansions:     int(m.expansions.Load()),
		Pushes:         int(m.pushes.Load()),
		RootPlacements: m.rootPlacements,
		RootSkills:     m.rootSkills,
		BestScore:      m.bestScore,
		Ties:           m.ties,
		IsFallback:     m.fallback,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, budget int)                               {}
func (m *dummyCollector) SetRootBranches(placements, skills int)                {}
func (m *dummyCollector) AddExpansion()                                         {}
func (m *dummyCollector) AddPush()                                              {}
func (m *dummyCollector) SetOutcome(bestScore float64, ties int, fallback bool) {}
func (m *dummyCollector) Complete() SearchMetric                                { return SearchMetric{} }
