package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gomoku/experiments/metrics"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var ErrMatchNotFound = errors.New("match not found")

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id TEXT PRIMARY KEY,
	seed TEXT NOT NULL,
	black TEXT NOT NULL,
	white TEXT NOT NULL,
	winner TEXT NOT NULL,
	is_draw INTEGER NOT NULL,
	started_at INTEGER NOT NULL,
	ended_at INTEGER NOT NULL,
	total_moves INTEGER NOT NULL,
	moves TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS matches_started_at ON matches (started_at);
`

// Match is a stored match with its per-action records.
type Match struct {
	metrics.GameMetric
	Moves []metrics.MoveMetric
}

// Standing tallies a persona's results over every stored match.
type Standing struct {
	Persona string
	Wins    int
	Losses  int
	Draws   int
	Other   int // Matches stopped without a result
}

// Store keeps match history in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// A single connection serialises writers and keeps ":memory:" databases alive
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create tables")
	}
	log.Debug().Msgf("match store ready at %s", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveMatch(ctx context.Context, game metrics.GameMetric, moves []metrics.MoveMetric) error {
	if moves == nil {
		moves = []metrics.MoveMetric{}
	}
	encoded, err := json.Marshal(moves)
	if err != nil {
		return errors.Wrapf(err, "failed to encode moves of match %s", game.ID)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (id, seed, black, white, winner, is_draw, started_at, ended_at, total_moves, moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID,
		strconv.FormatUint(game.Seed, 10),
		game.Black,
		game.White,
		game.Winner,
		game.IsDraw,
		game.StartTime.UnixNano(),
		game.EndTime.UnixNano(),
		game.TotalMoves,
		string(encoded),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to save match %s", game.ID)
	}
	log.Debug().Msgf("match %s saved", game.ID)
	return nil
}

func (s *Store) Match(ctx context.Context, id string) (Match, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seed, black, white, winner, is_draw, started_at, ended_at, total_moves, moves
		FROM matches WHERE id = ?`, id)

	var m Match
	var encoded string
	err := scanGame(row, &m.GameMetric, &encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, errors.Wrapf(ErrMatchNotFound, "id %s", id)
	}
	if err != nil {
		return Match{}, errors.Wrapf(err, "failed to load match %s", id)
	}
	if err := json.Unmarshal([]byte(encoded), &m.Moves); err != nil {
		return Match{}, errors.Wrapf(err, "failed to decode moves of match %s", id)
	}
	return m, nil
}

// ListMatches returns the most recent matches first, without their moves.
func (s *Store) ListMatches(ctx context.Context, limit int) ([]metrics.GameMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seed, black, white, winner, is_draw, started_at, ended_at, total_moves, ''
		FROM matches ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list matches")
	}
	defer rows.Close()

	games := []metrics.GameMetric{}
	for rows.Next() {
		var g metrics.GameMetric
		var ignored string
		if err := scanGame(rows, &g, &ignored); err != nil {
			return nil, errors.Wrap(err, "failed to read match row")
		}
		games = append(games, g)
	}
	return games, errors.Wrap(rows.Err(), "failed to list matches")
}

// Standings tallies results per persona, ordered by persona key.
func (s *Store) Standings(ctx context.Context) ([]Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT persona,
			SUM(CASE WHEN winner = side THEN 1 ELSE 0 END),
			SUM(CASE WHEN winner <> '' AND winner <> side THEN 1 ELSE 0 END),
			SUM(is_draw),
			SUM(CASE WHEN winner = '' AND is_draw = 0 THEN 1 ELSE 0 END)
		FROM (
			SELECT black AS persona, 'black' AS side, winner, is_draw FROM matches
			UNION ALL
			SELECT white AS persona, 'white' AS side, winner, is_draw FROM matches
		)
		GROUP BY persona ORDER BY persona`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute standings")
	}
	defer rows.Close()

	standings := []Standing{}
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Persona, &st.Wins, &st.Losses, &st.Draws, &st.Other); err != nil {
			return nil, errors.Wrap(err, "failed to read standing row")
		}
		standings = append(standings, st)
	}
	return standings, errors.Wrap(rows.Err(), "failed to compute standings")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner, g *metrics.GameMetric, moves *string) error {
	var seed string
	var started, ended int64
	if err := row.Scan(&g.ID, &seed, &g.Black, &g.White, &g.Winner, &g.IsDraw, &started, &ended, &g.TotalMoves, moves); err != nil {
		return err
	}
	parsed, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "bad seed %q", seed)
	}
	g.Seed = parsed
	g.StartTime = time.Unix(0, started)
	g.EndTime = time.Unix(0, ended)
	g.Duration = g.EndTime.Sub(g.StartTime)
	return nil
}
