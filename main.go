package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gomoku/experiments"
	"gomoku/experiments/metrics"
	"gomoku/meta"
	"gomoku/searcher/agent"
	"gomoku/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	black := flag.String("black", "", "Black persona, e.g. \"ziqi\" or \"3,depth=2,trigger=0.5\"; empty runs the persona ladder")
	white := flag.String("white", "coach-wang", "White persona")
	games := flag.Int("games", experiments.NumGames, "Games per match up")
	parallel := flag.Int("parallel", 0, "Games played at once (0 for GOMAXPROCS)")
	seed := flag.Uint64("seed", 0, "Base seed (0 for a random seed)")
	budget := flag.Int("budget", meta.MAX_EXPANSIONS, "Search expansions per decision")
	maxTurns := flag.Int("turns", meta.MAX_TURNS, "Turn cap per game")
	out := flag.String("out", "results", "CSV output directory (empty to disable)")
	db := flag.String("db", "", "SQLite match history path (empty to disable)")
	standings := flag.Bool("standings", false, "Print persona standings from -db and exit")
	debug := flag.Bool("debug", false, "Log every search")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var store *storage.Store
	if *db != "" {
		var err error
		store, err = storage.Open(*db)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open match store")
		}
		defer store.Close()
	}

	if *standings {
		if store == nil {
			log.Fatal().Msg("-standings needs -db")
		}
		printStandings(ctx, store)
		return
	}

	var config experiments.Config
	if *black == "" {
		config = experiments.PersonaLadder(*budget)
	} else {
		for _, s := range []string{*black, *white} {
			if _, err := agent.ParsePersona(s); err != nil {
				log.Fatal().Err(err).Msgf("bad persona %q", s)
			}
		}
		config = experiments.Config{
			Name: "match",
			Agents: []metrics.AgentConfig{
				{ID: 1, Persona: *black, Budget: *budget},
				{ID: 2, Persona: *white, Budget: *budget},
			},
			MatchUps: [][2]int{{1, 2}},
		}
	}
	config.Games = *games
	config.Parallel = *parallel
	config.Seed = *seed
	config.MaxTurns = *maxTurns
	config.OutDir = *out
	config.Store = store

	summaries, err := experiments.Run(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	fmt.Printf("%-24s %-24s %6s %6s %6s %6s\n", "black", "white", "b-win", "w-win", "draw", "none")
	for _, s := range summaries {
		fmt.Printf("%-24s %-24s %6d %6d %6d %6d\n", s.Black, s.White, s.BlackWins, s.WhiteWins, s.Draws, s.Unfinished)
	}
}

func printStandings(ctx context.Context, store *storage.Store) {
	standings, err := store.Standings(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read standings")
	}
	fmt.Printf("%-24s %6s %6s %6s %6s\n", "persona", "wins", "losses", "draws", "none")
	for _, st := range standings {
		fmt.Printf("%-24s %6d %6d %6d %6d\n", st.Persona, st.Wins, st.Losses, st.Draws, st.Other)
	}
}
