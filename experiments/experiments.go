package experiments

import (
	"context"
	"math/rand/v2"
	"runtime"

	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/searcher/agent"
	"gomoku/storage"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

const NumGames = 10 // Per match up

// Config describes one experiment: every match up is played Games times.
type Config struct {
	Name     string
	Agents   []metrics.AgentConfig
	MatchUps [][2]int // Pairs of AgentConfig.ID, black first
	Games    int
	Parallel int    // Matches in flight; defaults to GOMAXPROCS
	Seed     uint64 // Base seed; 0 draws a random one
	MaxTurns int
	OutDir   string         // CSV output root; empty skips CSV output
	Store    *storage.Store // Optional match history
}

// MatchUpSummary tallies the results of one match up.
type MatchUpSummary struct {
	Black      string
	White      string
	BlackWins  int
	WhiteWins  int
	Draws      int
	Unfinished int
}

// PersonaLadder pits every built-in persona against every other, both colours.
func PersonaLadder(budget int) Config {
	config := Config{Name: "persona_ladder", Games: NumGames}
	personas := agent.Personas()
	for i, p := range personas {
		config.Agents = append(config.Agents, metrics.AgentConfig{ID: i + 1, Persona: p.Key, Budget: budget})
	}
	for _, a := range config.Agents {
		for _, b := range config.Agents {
			if a.ID != b.ID {
				config.MatchUps = append(config.MatchUps, [2]int{a.ID, b.ID})
			}
		}
	}
	return config
}

type job struct {
	index   int
	matchUp int
	black   metrics.AgentConfig
	white   metrics.AgentConfig
	seed    uint64
}

// Run plays every game of the experiment, several at a time, and writes the results.
func Run(ctx context.Context, config Config) ([]MatchUpSummary, error) {
	agents := map[int]metrics.AgentConfig{}
	for _, a := range config.Agents {
		agents[a.ID] = a
	}
	if config.Games <= 0 {
		config.Games = NumGames
	}
	if config.Parallel <= 0 {
		config.Parallel = runtime.GOMAXPROCS(0)
	}
	if config.Seed == 0 {
		config.Seed = frand.Uint64n(1<<63) + 1
	}

	seeds := rand.New(rand.NewPCG(config.Seed, 0))
	jobs := []job{}
	for mi, pair := range config.MatchUps {
		black, ok := agents[pair[0]]
		if !ok {
			return nil, errors.Errorf("match up %d refers to unknown agent %d", mi, pair[0])
		}
		white, ok := agents[pair[1]]
		if !ok {
			return nil, errors.Errorf("match up %d refers to unknown agent %d", mi, pair[1])
		}
		for i := 0; i < config.Games; i++ {
			jobs = append(jobs, job{index: len(jobs), matchUp: mi, black: black, white: white, seed: seeds.Uint64()})
		}
	}

	log.Info().Msgf("starting %s experiment: %d games over %d match ups, seed %d", config.Name, len(jobs), len(config.MatchUps), config.Seed)

	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveRecords := make([][]metrics.MoveRecord, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Parallel)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gameMetric, moveMetrics, err := runGame(j, config.MaxTurns)
			if err != nil {
				return err
			}
			gameRecords[j.index] = metrics.GameRecord{
				MatchUp:    j.matchUp,
				Agent1:     j.black.ID,
				Agent2:     j.white.ID,
				GameMetric: gameMetric,
			}
			for _, mm := range moveMetrics {
				moveRecords[j.index] = append(moveRecords[j.index], metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
			}
			if config.Store != nil {
				if err := config.Store.SaveMatch(ctx, gameMetric, moveMetrics); err != nil {
					return err
				}
			}
			log.Info().Msgf("completed game %d of %d: %s vs %s, winner %q", j.index+1, len(jobs), gameMetric.Black, gameMetric.White, gameMetric.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WithMessagef(err, "%s experiment", config.Name)
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	if config.OutDir != "" {
		if err := writeResults(config, gameRecords, moveRecords); err != nil {
			return nil, err
		}
	}
	return summarize(config, gameRecords), nil
}

func runGame(j job, maxTurns int) (metrics.GameMetric, []metrics.MoveMetric, error) {
	black, err := agent.ParsePersona(j.black.Persona)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	white, err := agent.ParsePersona(j.white.Persona)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	options := []engine.Option{engine.WithSeed(j.seed), engine.WithMaxTurns(maxTurns)}
	if j.black.Budget > 0 {
		options = append(options, engine.WithPlayerSearchOptions(game.Black, searcher.WithBudget(j.black.Budget)))
	}
	if j.white.Budget > 0 {
		options = append(options, engine.WithPlayerSearchOptions(game.White, searcher.WithBudget(j.white.Budget)))
	}
	e := engine.NewLocalEngine(black, white, options...)
	return e.Run()
}

func writeResults(config Config, gameRecords []metrics.GameRecord, moveRecords [][]metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(config.OutDir, config.Name)
	if err != nil {
		return err
	}
	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	log.Info().Msg("stored game records")

	flat := []metrics.MoveRecord{}
	for _, records := range moveRecords {
		flat = append(flat, records...)
	}
	if err := writer.WriteMoveRecords(flat); err != nil {
		return err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

func summarize(config Config, gameRecords []metrics.GameRecord) []MatchUpSummary {
	summaries := make([]MatchUpSummary, len(config.MatchUps))
	agents := map[int]metrics.AgentConfig{}
	for _, a := range config.Agents {
		agents[a.ID] = a
	}
	for mi, pair := range config.MatchUps {
		summaries[mi].Black = agents[pair[0]].Persona
		summaries[mi].White = agents[pair[1]].Persona
	}
	for _, r := range gameRecords {
		s := &summaries[r.MatchUp]
		switch {
		case r.Winner == "black":
			s.BlackWins++
		case r.Winner == "white":
			s.WhiteWins++
		case r.IsDraw:
			s.Draws++
		default:
			s.Unfinished++
		}
	}
	return summaries
}
