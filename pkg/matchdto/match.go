package matchdto

import "time"

type MoveView struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Color    string `json:"color"`
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
}

// MatchView is the public state of a match.
type MatchView struct {
	ID         string                    `json:"id"`
	WhiteID    string                    `json:"white_id"`
	WhiteName  string                    `json:"white_name"`
	BlackID    string                    `json:"black_id"`
	BlackName  string                    `json:"black_name"`
	Board      []string                  `json:"board"`
	Turn       string                    `json:"turn"`
	Status     string                    `json:"status"`
	State      string                    `json:"state"`
	Winner     string                    `json:"winner,omitempty"`
	Method     string                    `json:"method,omitempty"`
	Summary    string                    `json:"summary"`
	Moves      []MoveView                `json:"moves"`
	Captured   map[string]map[string]int `json:"captured"`
	DoubleStep string                    `json:"double_step"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

type MoveResponse struct {
	Match   MatchView `json:"match"`
	Outcome string    `json:"outcome"` // quiet | capture
	Message string    `json:"message"`
}

type ResultView struct {
	MatchID    string    `json:"match_id"`
	WhiteID    string    `json:"white_id"`
	WhiteName  string    `json:"white_name"`
	BlackID    string    `json:"black_id"`
	BlackName  string    `json:"black_name"`
	Winner     string    `json:"winner"`
	Outcome    string    `json:"outcome"`
	Method     string    `json:"method"`
	Record     string    `json:"record"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	DurationMS int64     `json:"duration_ms"`
}

type ResultsResponse struct {
	PlayerID string       `json:"player_id"`
	Results  []ResultView `json:"results"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
