package match

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/chessvar/internal/obslog"
	"github.com/park285/chessvar/internal/variant"
)

const defaultTTL = 24 * time.Hour

// Manager stores matches in Redis and applies moves through the variant
// engine inside WATCH transactions.
type Manager struct {
	rdb  *redis.Client
	repo Repository
	ttl  time.Duration
	rule variant.DoubleStepRule
	now  func() time.Time
}

type ManagerOption func(*Manager)

// WithTTL sets how long match records and player indexes live.
func WithTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithDoubleStepRule sets the pawn rule for newly created matches.
func WithDoubleStepRule(r variant.DoubleStepRule) ManagerOption {
	return func(m *Manager) { m.rule = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(redisURL string, opts ...ManagerOption) (*Manager, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for match manager")
	}
	ropts, err := redis.ParseURL(strings.TrimSpace(redisURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(ropts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewManagerWithClient(rdb, opts...), nil
}

// NewManagerWithClient wraps an existing client. The manager owns it after
// this call.
func NewManagerWithClient(rdb *redis.Client, opts ...ManagerOption) *Manager {
	m := &Manager{rdb: rdb, ttl: defaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Close() error {
	if m == nil || m.rdb == nil {
		return nil
	}
	return m.rdb.Close()
}

// AttachRepository wires a store for finished match results.
func (m *Manager) AttachRepository(r Repository) {
	if m != nil {
		m.repo = r
	}
}

// Ping checks the Redis connection.
func (m *Manager) Ping(ctx context.Context) error {
	if m == nil || m.rdb == nil {
		return errors.New("match manager not initialized")
	}
	return m.rdb.Ping(ctx).Err()
}

// Create starts a match. color is the challenger's requested side.
func (m *Manager) Create(ctx context.Context, challengerID, challengerName, opponentID, opponentName string, color ColorChoice) (*Match, error) {
	if m == nil || m.rdb == nil {
		return nil, errors.New("match manager not initialized")
	}
	challengerID, opponentID = strings.TrimSpace(challengerID), strings.TrimSpace(opponentID)
	if challengerID == "" || opponentID == "" {
		return nil, fmt.Errorf("%w: both players are required", ErrInvalidArgs)
	}
	if challengerID == opponentID {
		return nil, fmt.Errorf("%w: cannot play against yourself", ErrInvalidArgs)
	}

	whiteID, whiteName := challengerID, challengerName
	blackID, blackName := opponentID, opponentName
	swap := false
	switch color {
	case ColorWhite:
	case ColorBlack:
		swap = true
	default:
		if n, _ := rand.Int(rand.Reader, big.NewInt(2)); n != nil && n.Int64() == 0 {
			swap = true
		}
	}
	if swap {
		whiteID, whiteName, blackID, blackName = blackID, blackName, whiteID, whiteName
	}

	now := m.now()
	start := variant.NewBoard()
	g := &Match{
		ID:         uuid.NewString(),
		WhiteID:    whiteID,
		WhiteName:  strings.TrimSpace(whiteName),
		BlackID:    blackID,
		BlackName:  strings.TrimSpace(blackName),
		Moves:      []Move{},
		Board:      start.String(),
		Turn:       variant.White.String(),
		Status:     StatusActive,
		DoubleStep: m.rule.String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := m.save(ctx, g); err != nil {
		return nil, err
	}
	if err := m.indexParticipants(ctx, g.ID, g.WhiteID, g.BlackID); err != nil {
		return nil, err
	}
	obslog.L().Info("match_create",
		zap.String("match_id", g.ID),
		zap.String("white_id", g.WhiteID),
		zap.String("black_id", g.BlackID),
		zap.String("double_step", g.DoubleStep),
	)
	return g, nil
}

// Get loads a match by ID.
func (m *Manager) Get(ctx context.Context, id string) (*Match, error) {
	if m == nil || m.rdb == nil {
		return nil, errors.New("match manager not initialized")
	}
	g, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrMatchNotFound
	}
	return g, nil
}

// ActiveByPlayer returns the player's most recently updated active match.
func (m *Manager) ActiveByPlayer(ctx context.Context, playerID string) (*Match, error) {
	if m == nil || m.rdb == nil {
		return nil, errors.New("match manager not initialized")
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidArgs)
	}
	ids, err := m.rdb.SMembers(ctx, idxPlayerKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	var list []*Match
	for _, id := range ids {
		g, gerr := m.get(ctx, id)
		if gerr == nil && g != nil && g.Status == StatusActive {
			list = append(list, g)
		}
	}
	if len(list) == 0 {
		return nil, ErrMatchNotFound
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	return list[0], nil
}

// PlayMove applies from→to for playerID. Rejected moves leave the stored
// match unchanged; the error wraps a variant or match sentinel.
func (m *Manager) PlayMove(ctx context.Context, id, playerID, from, to string) (*Match, variant.Outcome, error) {
	if m == nil || m.rdb == nil {
		return nil, variant.Outcome{}, errors.New("match manager not initialized")
	}
	playerID = strings.TrimSpace(playerID)
	key := matchKey(id)

	var (
		updated *Match
		outcome variant.Outcome
	)
	err := m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		if cur.Status.Terminal() {
			return ErrMatchFinished
		}
		color, ok := cur.ColorOf(playerID)
		if !ok {
			return ErrNotParticipant
		}

		s, err := Replay(cur)
		if err != nil {
			return err
		}
		if s.ActiveColor() != color {
			return ErrNotYourTurn
		}
		start, err := variant.ParseSquare(strings.ToLower(strings.TrimSpace(from)))
		if err != nil {
			return err
		}
		end, err := variant.ParseSquare(strings.ToLower(strings.TrimSpace(to)))
		if err != nil {
			return err
		}
		board := s.Board()
		piece := board.SquareAt(start.Row, start.Col)
		out, err := s.MoveCoords(start, end)
		if err != nil {
			return err
		}

		mv := Move{From: start.String(), To: end.String(), Color: color.String(), Piece: piece.Kind.String()}
		if out.Kind == variant.Capture {
			mv.Captured = out.Captured.Kind.String()
		}
		cur.Moves = append(cur.Moves, mv)
		m.syncFromSession(cur, s)

		if err := m.write(ctx, tx, key, cur); err != nil {
			return err
		}
		updated, outcome = cur, out
		return nil
	}, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, variant.Outcome{}, ErrConcurrentUpdate
		}
		return nil, variant.Outcome{}, err
	}

	last, _ := updated.LastMove()
	obslog.L().Info("match_move",
		zap.String("match_id", updated.ID),
		zap.String("player_id", playerID),
		zap.String("move", last.Notation()),
		zap.String("turn", updated.Turn),
		zap.String("status", string(updated.Status)),
	)
	if updated.Status == StatusFinished {
		obslog.L().Info("match_finish",
			zap.String("match_id", updated.ID),
			zap.String("outcome", updated.Outcome),
			zap.String("method", updated.Method),
		)
		_ = m.persistIfFinal(ctx, updated)
	}
	return updated, outcome, nil
}

// Resign ends the match with the opponent as winner.
func (m *Manager) Resign(ctx context.Context, id, playerID string) (*Match, error) {
	if m == nil || m.rdb == nil {
		return nil, errors.New("match manager not initialized")
	}
	playerID = strings.TrimSpace(playerID)
	key := matchKey(id)

	var updated *Match
	err := m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		if cur.Status.Terminal() {
			return ErrMatchFinished
		}
		color, ok := cur.ColorOf(playerID)
		if !ok {
			return ErrNotParticipant
		}
		cur.Status = StatusResigned
		cur.Winner = cur.opponentOf(playerID)
		cur.Outcome = color.Opposite().String()
		cur.Method = "resignation"
		cur.UpdatedAt = m.now()
		if err := m.write(ctx, tx, key, cur); err != nil {
			return err
		}
		updated = cur
		return nil
	}, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}
	obslog.L().Info("match_resign",
		zap.String("match_id", updated.ID),
		zap.String("resigner", playerID),
		zap.String("winner", updated.Winner),
	)
	_ = m.persistIfFinal(ctx, updated)
	return updated, nil
}

// RecentResults lists finished matches of playerID, newest first. Without
// an attached repository the list is empty.
func (m *Manager) RecentResults(ctx context.Context, playerID string, limit int) ([]*Result, error) {
	if m == nil || m.repo == nil {
		return []*Result{}, nil
	}
	return m.repo.RecentResults(ctx, strings.TrimSpace(playerID), limit)
}

// Replay rebuilds the engine session by playing back every stored move
// from the starting position.
func Replay(g *Match) (*variant.Session, error) {
	rule, ok := variant.ParseDoubleStepRule(g.DoubleStep)
	if !ok {
		return nil, fmt.Errorf("match %s: unknown double step rule %q", g.ID, g.DoubleStep)
	}
	s := variant.NewGame(variant.WithDoubleStepRule(rule))
	for i, mv := range g.Moves {
		if _, err := s.Move(mv.From, mv.To); err != nil {
			return nil, fmt.Errorf("replay move %d %s: %w", i+1, mv.Notation(), err)
		}
	}
	return s, nil
}

// syncFromSession copies derived fields from the engine into g.
func (m *Manager) syncFromSession(g *Match, s *variant.Session) {
	b := s.Board()
	g.Board = b.String()
	g.Turn = s.ActiveColor().String()
	g.Captured = capturesFrom(s.Tally())
	g.UpdatedAt = m.now()
	switch s.State() {
	case variant.WhiteWon:
		g.Status = StatusFinished
		g.Winner = g.WhiteID
		g.Outcome = variant.White.String()
		g.Method = "capture_all_" + s.DecidingKind().String()
	case variant.BlackWon:
		g.Status = StatusFinished
		g.Winner = g.BlackID
		g.Outcome = variant.Black.String()
		g.Method = "capture_all_" + s.DecidingKind().String()
	}
}

// Persistence

func load(ctx context.Context, tx *redis.Tx, key string) (*Match, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	var g Match
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode match: %w", err)
	}
	return &g, nil
}

func (m *Manager) write(ctx context.Context, tx *redis.Tx, key string, g *Match) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, m.ttl)
		return nil
	})
	return err
}

func (m *Manager) save(ctx context.Context, g *Match) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, matchKey(g.ID), raw, m.ttl).Err()
}

func (m *Manager) get(ctx context.Context, id string) (*Match, error) {
	raw, err := m.rdb.Get(ctx, matchKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g Match
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (m *Manager) indexParticipants(ctx context.Context, id string, players ...string) error {
	for _, p := range players {
		if strings.TrimSpace(p) == "" {
			continue
		}
		key := idxPlayerKey(p)
		if err := m.rdb.SAdd(ctx, key, id).Err(); err != nil {
			return err
		}
		// index lives as long as the match record
		_ = m.rdb.Expire(ctx, key, m.ttl).Err()
	}
	return nil
}

func matchKey(id string) string          { return "chessvar:match:" + strings.TrimSpace(id) }
func idxPlayerKey(playerID string) string { return "chessvar:index:player:" + strings.TrimSpace(playerID) }

// persistIfFinal archives a finished match when a repository is attached.
func (m *Manager) persistIfFinal(ctx context.Context, g *Match) error {
	if m == nil || m.repo == nil || g == nil || !g.Status.Terminal() {
		return nil
	}
	if err := m.repo.SaveResult(ctx, g); err != nil {
		obslog.L().Error("result_persist_error", zap.String("match_id", g.ID), zap.String("outcome", g.Outcome), zap.Error(err))
		return err
	}
	obslog.L().Info("result_persist", zap.String("match_id", g.ID), zap.String("outcome", g.Outcome), zap.String("method", g.Method))
	return nil
}
