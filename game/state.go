package game

import (
	"fmt"
	"math/rand/v2"

	"gomoku/meta"

	"github.com/pkg/errors"
)

type MoveResult struct {
	Coord  Coordinate
	Player Player
	Stone  Cell
	Win    bool
	Draw   bool
}

type Option func(c *config)

type config struct {
	size      int
	winLength int
	registry  *Registry
	seed      [2]uint64
	seeded    bool
}

func WithBoardSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.size = size
		}
	}
}

func WithWinLength(length int) Option {
	return func(c *config) {
		if length > 1 {
			c.winLength = length
		}
	}
}

func WithRegistry(registry *Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithSeed fixes the game's own random source, used by skills that pick random cells.
func WithSeed(seed1, seed2 uint64) Option {
	return func(c *config) {
		c.seed = [2]uint64{seed1, seed2}
		c.seeded = true
	}
}

// Game is the live turn manager: board, side to move, cursor, cooldowns,
// skip scheduling and result. Mutating methods are not safe for concurrent use.
type Game struct {
	board    *Board
	registry *Registry
	src      *rand.PCG
	rng      *rand.Rand

	current     Player
	round       int // Turn handovers so far, skipped turns included
	cursor      Coordinate
	lastMove    *MoveResult
	lastSkill   *SkillResult
	winner      *Player
	draw        bool
	cooldowns   [2][]int // Indexed by player, then by registry order
	skipNext    *Player
	skippedLast *Player
	actionLog   []string
}

func New(options ...Option) *Game {
	c := &config{ // Default values
		size:      meta.BOARD_SIZE,
		winLength: meta.WIN_LENGTH,
		registry:  DefaultRegistry(),
	}
	for _, option := range options {
		option(c)
	}
	if !c.seeded {
		c.seed = [2]uint64{rand.Uint64(), rand.Uint64()}
	}

	src := rand.NewPCG(c.seed[0], c.seed[1])
	g := &Game{
		board:    NewBoard(c.size, c.winLength),
		registry: c.registry,
		src:      src,
		rng:      rand.New(src),
	}
	g.Reset()
	return g
}

// Reset returns the game to its opening state, keeping board size, registry and random source.
func (g *Game) Reset() {
	g.board.Clear()
	g.current = Black
	g.round = 0
	g.cursor = g.board.Grid().Center()
	g.lastMove = nil
	g.lastSkill = nil
	g.winner = nil
	g.draw = false
	g.skipNext = nil
	g.skippedLast = nil
	for _, p := range Players {
		g.cooldowns[p] = make([]int, g.registry.Len())
		for i, s := range g.registry.skills {
			g.cooldowns[p][i] = s.InitialCooldown()
		}
	}
	g.actionLog = nil
	g.logAction("game reset")
}

// Reseed replaces the state of the game's random source.
func (g *Game) Reseed(seed1, seed2 uint64) {
	g.src.Seed(seed1, seed2)
}

// Clone returns a fully independent copy, including the random source state.
// The registry is shared since it is read-only.
func (g *Game) Clone() *Game {
	src := *g.src
	clone := &Game{
		board:     g.board.Clone(),
		registry:  g.registry,
		src:       &src,
		current:   g.current,
		round:     g.round,
		cursor:    g.cursor,
		draw:      g.draw,
		actionLog: append([]string(nil), g.actionLog...),
	}
	clone.rng = rand.New(clone.src)
	if g.lastMove != nil {
		m := *g.lastMove
		clone.lastMove = &m
	}
	if g.lastSkill != nil {
		s := *g.lastSkill
		clone.lastSkill = &s
	}
	clone.winner = copyPlayer(g.winner)
	clone.skipNext = copyPlayer(g.skipNext)
	clone.skippedLast = copyPlayer(g.skippedLast)
	for _, p := range Players {
		clone.cooldowns[p] = append([]int(nil), g.cooldowns[p]...)
	}
	return clone
}

func copyPlayer(p *Player) *Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (g *Game) PlaceAtCursor() (MoveResult, error) {
	return g.PlaceStone(g.cursor)
}

// PlaceStone puts the current player's stone at c and passes the turn unless the game ended.
func (g *Game) PlaceStone(c Coordinate) (MoveResult, error) {
	if g.IsFinished() {
		return MoveResult{}, ErrGameFinished
	}

	stone := g.current.Stone()
	win, err := g.board.Place(c, stone)
	if err != nil {
		return MoveResult{}, err
	}
	draw := !win && g.board.IsFull()
	if win {
		winner := g.current
		g.winner = &winner
	} else if draw {
		g.draw = true
	}

	result := MoveResult{Coord: c, Player: g.current, Stone: stone, Win: win, Draw: draw}
	g.lastMove = &result
	g.lastSkill = nil
	g.logAction(fmt.Sprintf("%s places at %v", g.current, c))

	if !g.IsFinished() {
		g.advance()
	}
	return result, nil
}

// UseSkill activates a ready skill for the current player, resets its
// cooldown and passes the turn unless the game ended.
func (g *Game) UseSkill(id SkillID) (SkillResult, error) {
	if g.IsFinished() {
		return SkillResult{}, ErrGameFinished
	}

	skill, err := g.registry.Lookup(id)
	if err != nil {
		return SkillResult{}, err
	}
	i := g.registry.Index(id)
	if remaining := g.cooldowns[g.current][i]; remaining > 0 {
		return SkillResult{}, errors.Wrapf(ErrInvalidSkillActivation, "%s needs %d more turns", skill.Name(), remaining)
	}

	result, err := skill.Apply(g, g.current, g.rng)
	if err != nil {
		return SkillResult{}, err
	}
	g.cooldowns[g.current][i] = skill.Cooldown()
	g.lastSkill = &result
	g.logAction(fmt.Sprintf("%s uses %s (%s)", g.current, skill.Name(), result.Description))

	if !g.IsFinished() {
		g.advance()
	}
	return result, nil
}

func (g *Game) advance() {
	g.moveTo(g.current.Opponent())
}

// moveTo hands the turn to p, ticking p's cooldowns. A player scheduled to be
// skipped still ticks, then the turn passes straight back.
func (g *Game) moveTo(p Player) {
	skipped := false
	for {
		g.current = p
		g.round++
		g.tick(p)
		if g.skipNext != nil && *g.skipNext == p {
			g.skipNext = nil
			g.skippedLast = copyPlayer(&p)
			g.logAction(fmt.Sprintf("%s was skipped", p))
			p = p.Opponent()
			skipped = true
			continue
		}
		if !skipped {
			g.skippedLast = nil
		}
		return
	}
}

func (g *Game) tick(p Player) {
	for i, remaining := range g.cooldowns[p] {
		if remaining > 0 {
			g.cooldowns[p][i] = remaining - 1
		}
	}
}

// ScheduleSkip makes p lose their next turn.
func (g *Game) ScheduleSkip(p Player) {
	g.skipNext = copyPlayer(&p)
	g.logAction(fmt.Sprintf("%s will be skipped next turn", p))
}

func (g *Game) SkipPending() (Player, bool) {
	if g.skipNext == nil {
		return Black, false
	}
	return *g.skipNext, true
}

func (g *Game) SkippedLast() (Player, bool) {
	if g.skippedLast == nil {
		return Black, false
	}
	return *g.skippedLast, true
}

func (g *Game) SetCursor(c Coordinate) error {
	if !g.board.InBounds(c) {
		return errors.Wrapf(ErrOutOfBounds, "cursor %v", c)
	}
	g.cursor = c
	return nil
}

// MoveCursor shifts the cursor, wrapping around the board edges.
func (g *Game) MoveCursor(dRow, dCol int) Coordinate {
	size := g.board.Size()
	g.cursor = Coordinate{
		Row: ((g.cursor.Row+dRow)%size + size) % size,
		Col: ((g.cursor.Col+dCol)%size + size) % size,
	}
	return g.cursor
}

func (g *Game) Cursor() Coordinate { return g.cursor }

func (g *Game) CurrentPlayer() Player { return g.current }

// SetCurrentPlayer hands the move to p without ticking cooldowns. Used to set up positions.
func (g *Game) SetCurrentPlayer(p Player) { g.current = p }

func (g *Game) Winner() (Player, bool) {
	if g.winner == nil {
		return Black, false
	}
	return *g.winner, true
}

func (g *Game) IsDraw() bool     { return g.draw }
func (g *Game) IsFinished() bool { return g.winner != nil || g.draw }

// Grid returns an immutable snapshot of the board.
func (g *Game) Grid() Grid { return g.board.Grid() }

// Board exposes the mutable board, mainly for setting up positions.
func (g *Game) Board() *Board { return g.board }

func (g *Game) Registry() *Registry { return g.registry }

func (g *Game) OccupiedBy(p Player) []Coordinate { return g.board.Stones(p) }

func (g *Game) MoveCount() int { return g.board.MoveCount() }

// Round counts turn handovers since the last reset. A skipped turn counts as one.
func (g *Game) Round() int { return g.round }

func (g *Game) Cooldown(p Player, id SkillID) (int, error) {
	i := g.registry.Index(id)
	if i < 0 {
		return 0, errors.Wrapf(ErrUnknownSkill, "skill %v", id)
	}
	return g.cooldowns[p][i], nil
}

// Cooldowns lists p's remaining cooldowns in registry order.
func (g *Game) Cooldowns(p Player) []int {
	return append([]int(nil), g.cooldowns[p]...)
}

func (g *Game) SetCooldown(p Player, id SkillID, turns int) error {
	i := g.registry.Index(id)
	if i < 0 {
		return errors.Wrapf(ErrUnknownSkill, "skill %v", id)
	}
	if turns < 0 {
		turns = 0
	}
	g.cooldowns[p][i] = turns
	return nil
}

// ReadySkills lists the skills p could use right now, in registry order.
func (g *Game) ReadySkills(p Player) []SkillID {
	ready := []SkillID{}
	for i, s := range g.registry.skills {
		if g.cooldowns[p][i] == 0 {
			ready = append(ready, s.ID())
		}
	}
	return ready
}

func (g *Game) LastMove() (MoveResult, bool) {
	if g.lastMove == nil {
		return MoveResult{}, false
	}
	return *g.lastMove, true
}

func (g *Game) LastSkill() (SkillResult, bool) {
	if g.lastSkill == nil {
		return SkillResult{}, false
	}
	return *g.lastSkill, true
}

func (g *Game) ActionLog() []string {
	return append([]string(nil), g.actionLog...)
}

func (g *Game) logAction(message string) {
	g.actionLog = append(g.actionLog, message)
	if over := len(g.actionLog) - meta.ACTION_LOG_CAPACITY; over > 0 {
		g.actionLog = append([]string(nil), g.actionLog[over:]...)
	}
}
