package match

import (
	"strings"
	"time"

	"github.com/park285/chessvar/internal/variant"
)

// Status is the match lifecycle stored in Redis.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
	StatusResigned Status = "RESIGNED"
)

// Terminal reports whether no more moves are accepted.
func (s Status) Terminal() bool { return s == StatusFinished || s == StatusResigned }

// ColorChoice is the side the challenger asks for.
type ColorChoice string

const (
	ColorWhite  ColorChoice = "white"
	ColorBlack  ColorChoice = "black"
	ColorRandom ColorChoice = "random"
)

func ParseColorChoice(s string) ColorChoice {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return ColorWhite
	case "black", "b":
		return ColorBlack
	default:
		return ColorRandom
	}
}

// Move is one accepted move as stored with the match.
type Move struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Color    string `json:"color"`
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
}

// Notation is "a1-a4", or "a1xa4" for a capture.
func (m Move) Notation() string {
	sep := "-"
	if m.Captured != "" {
		sep = "x"
	}
	return m.From + sep + m.To
}

// Captures counts captured pieces by kind name, per owner color.
type Captures struct {
	White map[string]int `json:"white,omitempty"`
	Black map[string]int `json:"black,omitempty"`
}

func capturesFrom(t variant.Tally) Captures {
	var c Captures
	for _, k := range variant.Kinds {
		if n := t.Get(variant.White, k); n > 0 {
			if c.White == nil {
				c.White = make(map[string]int)
			}
			c.White[k.String()] = n
		}
		if n := t.Get(variant.Black, k); n > 0 {
			if c.Black == nil {
				c.Black = make(map[string]int)
			}
			c.Black[k.String()] = n
		}
	}
	return c
}

// Match is the persisted state of one game between two players.
type Match struct {
	ID         string    `json:"id"`
	WhiteID    string    `json:"white_id"`
	WhiteName  string    `json:"white_name"`
	BlackID    string    `json:"black_id"`
	BlackName  string    `json:"black_name"`
	Moves      []Move    `json:"moves"`
	Board      string    `json:"board"`
	Turn       string    `json:"turn"`
	Status     Status    `json:"status"`
	Winner     string    `json:"winner,omitempty"`
	Outcome    string    `json:"outcome,omitempty"` // "white" | "black"
	Method     string    `json:"method,omitempty"`
	Captured   Captures  `json:"captured"`
	DoubleStep string    `json:"double_step"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ColorOf returns the side playerID plays, or false if they are not in the match.
func (m *Match) ColorOf(playerID string) (variant.Color, bool) {
	switch strings.TrimSpace(playerID) {
	case "":
		return variant.White, false
	case m.WhiteID:
		return variant.White, true
	case m.BlackID:
		return variant.Black, true
	default:
		return variant.White, false
	}
}

// PlayerOf returns the ID playing color c.
func (m *Match) PlayerOf(c variant.Color) string {
	if c == variant.White {
		return m.WhiteID
	}
	return m.BlackID
}

func (m *Match) opponentOf(playerID string) string {
	if m.WhiteID == playerID {
		return m.BlackID
	}
	if m.BlackID == playerID {
		return m.WhiteID
	}
	return ""
}

// LastMove returns the most recent move, if any.
func (m *Match) LastMove() (Move, bool) {
	if len(m.Moves) == 0 {
		return Move{}, false
	}
	return m.Moves[len(m.Moves)-1], true
}

// Result is the archived summary of a finished match.
type Result struct {
	MatchID    string    `json:"match_id"`
	WhiteID    string    `json:"white_id"`
	WhiteName  string    `json:"white_name"`
	BlackID    string    `json:"black_id"`
	BlackName  string    `json:"black_name"`
	Winner     string    `json:"winner"`
	Outcome    string    `json:"outcome"`
	Method     string    `json:"method"`
	Moves      []string  `json:"moves"`
	Record     string    `json:"record"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	DurationMS int64     `json:"duration_ms"`
}

// NewResult summarizes a finished match.
func NewResult(m *Match) *Result {
	moves := make([]string, 0, len(m.Moves))
	for _, mv := range m.Moves {
		moves = append(moves, mv.Notation())
	}
	dur := m.UpdatedAt.Sub(m.CreatedAt).Milliseconds()
	if dur < 0 {
		dur = 0
	}
	return &Result{
		MatchID:    m.ID,
		WhiteID:    m.WhiteID,
		WhiteName:  m.WhiteName,
		BlackID:    m.BlackID,
		BlackName:  m.BlackName,
		Winner:     m.Winner,
		Outcome:    m.Outcome,
		Method:     m.Method,
		Moves:      moves,
		Record:     BuildRecord(m),
		StartedAt:  m.CreatedAt,
		EndedAt:    m.UpdatedAt,
		DurationMS: dur,
	}
}
