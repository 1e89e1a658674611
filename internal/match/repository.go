package match

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Repository archives finished matches.
type Repository interface {
	SaveResult(ctx context.Context, g *Match) error
	RecentResults(ctx context.Context, playerID string, limit int) ([]*Result, error)
	Close() error
}

// Schema creates the results table used by PostgresRepository.
const Schema = `CREATE TABLE IF NOT EXISTS chessvar_results (
    match_id    TEXT PRIMARY KEY,
    white_id    TEXT NOT NULL,
    white_name  TEXT NOT NULL DEFAULT '',
    black_id    TEXT NOT NULL,
    black_name  TEXT NOT NULL DEFAULT '',
    winner_id   TEXT NOT NULL DEFAULT '',
    result      TEXT NOT NULL,
    result_method TEXT NOT NULL,
    moves       JSONB NOT NULL,
    record      TEXT NOT NULL,
    started_at  TIMESTAMPTZ NOT NULL,
    ended_at    TIMESTAMPTZ NOT NULL,
    duration_ms BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS chessvar_results_white_idx ON chessvar_results (white_id, ended_at DESC);
CREATE INDEX IF NOT EXISTS chessvar_results_black_idx ON chessvar_results (black_id, ended_at DESC);`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresRepository{db: db}, nil
}

// EnsureSchema creates the results table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

func (r *PostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveResult upserts the final result of g.
func (r *PostgresRepository) SaveResult(ctx context.Context, g *Match) error {
	if r == nil || r.db == nil || g == nil {
		return nil
	}
	res := NewResult(g)
	movesRaw, err := json.Marshal(res.Moves)
	if err != nil {
		return fmt.Errorf("marshal moves: %w", err)
	}

	const q = `INSERT INTO chessvar_results (
        match_id, white_id, white_name, black_id, black_name,
        winner_id, result, result_method, moves, record,
        started_at, ended_at, duration_ms
      ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9::jsonb,$10,$11,$12,$13
      ) ON CONFLICT (match_id) DO UPDATE SET
        white_id=EXCLUDED.white_id,
        white_name=EXCLUDED.white_name,
        black_id=EXCLUDED.black_id,
        black_name=EXCLUDED.black_name,
        winner_id=EXCLUDED.winner_id,
        result=EXCLUDED.result,
        result_method=EXCLUDED.result_method,
        moves=EXCLUDED.moves,
        record=EXCLUDED.record,
        started_at=EXCLUDED.started_at,
        ended_at=EXCLUDED.ended_at,
        duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, q,
		res.MatchID,
		res.WhiteID, res.WhiteName,
		res.BlackID, res.BlackName,
		res.Winner, res.Outcome, res.Method, string(movesRaw), res.Record,
		res.StartedAt, res.EndedAt, res.DurationMS,
	)
	return err
}

// RecentResults returns playerID's results, newest first.
func (r *PostgresRepository) RecentResults(ctx context.Context, playerID string, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `SELECT match_id, white_id, white_name, black_id, black_name,
        winner_id, result, result_method, moves, record,
        started_at, ended_at, duration_ms
      FROM chessvar_results
      WHERE white_id = $1 OR black_id = $1
      ORDER BY ended_at DESC
      LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Result{}
	for rows.Next() {
		var (
			res      Result
			movesRaw []byte
		)
		if err := rows.Scan(
			&res.MatchID, &res.WhiteID, &res.WhiteName, &res.BlackID, &res.BlackName,
			&res.Winner, &res.Outcome, &res.Method, &movesRaw, &res.Record,
			&res.StartedAt, &res.EndedAt, &res.DurationMS,
		); err != nil {
			return nil, err
		}
		if len(movesRaw) > 0 {
			if err := json.Unmarshal(movesRaw, &res.Moves); err != nil {
				return nil, fmt.Errorf("decode moves for %s: %w", res.MatchID, err)
			}
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
	_ Repository = (*BadgerRepository)(nil)
)
