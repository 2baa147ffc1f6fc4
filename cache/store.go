package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
	"github.com/domino14/rummy/tiles"
)

const schema = `
CREATE TABLE IF NOT EXISTS solutions (
	key      INTEGER PRIMARY KEY,
	position TEXT NOT NULL,
	melds    TEXT NOT NULL,
	played   TEXT NOT NULL,
	score    INTEGER NOT NULL,
	states   INTEGER NOT NULL,
	created  TIMESTAMP NOT NULL
)`

// Store persists solutions in a sqlite database, keyed by the stable
// position key. Melds and played tiles are stored in position notation.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path. Use
// ":memory:" for a throwaway store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	log.Info().Str("path", path).Msg("opened-solution-store")
	return &Store{db: db}, nil
}

// Get returns the stored solution for key, or nil if there is none.
func (s *Store) Get(ctx context.Context, key uint64) (*solver.Solution, error) {
	var melds, played string
	var score, states int
	err := s.db.QueryRowContext(ctx,
		`SELECT melds, played, score, states FROM solutions WHERE key = ?`,
		int64(key)).Scan(&melds, &played, &score, &states)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sol := &solver.Solution{Score: score, Stats: solver.Stats{States: states}}
	if sol.Melds, err = position.ParseBoard(melds); err != nil {
		return nil, fmt.Errorf("stored melds for %d: %w", key, err)
	}
	if sol.Played, err = tiles.ParseList(played); err != nil {
		return nil, fmt.Errorf("stored tiles for %d: %w", key, err)
	}
	return sol, nil
}

// Put stores a solution, replacing any previous one for the key.
func (s *Store) Put(ctx context.Context, key uint64, pos string, sol *solver.Solution) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO solutions (key, position, melds, played, score, states, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int64(key), pos, position.BoardString(sol.Melds), tiles.ListString(sol.Played),
		sol.Score, sol.Stats.States, time.Now().UTC())
	return err
}

// Count returns the number of stored solutions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM solutions`).Scan(&n)
	return n, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
