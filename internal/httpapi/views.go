package httpapi

import (
	"strings"

	"github.com/park285/chessvar/internal/match"
	"github.com/park285/chessvar/internal/variant"
	"github.com/park285/chessvar/pkg/matchdto"
)

func (s *Server) view(g *match.Match) matchdto.MatchView {
	moves := make([]matchdto.MoveView, 0, len(g.Moves))
	for _, mv := range g.Moves {
		moves = append(moves, matchdto.MoveView{From: mv.From, To: mv.To, Color: mv.Color, Piece: mv.Piece, Captured: mv.Captured})
	}
	var rows []string
	if b, err := variant.ParseBoard(g.Board); err == nil {
		rows = b.Rows()
	}
	return matchdto.MatchView{
		ID:        g.ID,
		WhiteID:   g.WhiteID,
		WhiteName: g.WhiteName,
		BlackID:   g.BlackID,
		BlackName: g.BlackName,
		Board:     rows,
		Turn:      g.Turn,
		Status:    string(g.Status),
		State:     gameState(g).String(),
		Winner:    g.Winner,
		Method:    g.Method,
		Summary:   s.summary(g),
		Moves:     moves,
		Captured: map[string]map[string]int{
			"white": nonNil(g.Captured.White),
			"black": nonNil(g.Captured.Black),
		},
		DoubleStep: g.DoubleStep,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func gameState(g *match.Match) variant.State {
	switch g.Outcome {
	case "white":
		return variant.WhiteWon
	case "black":
		return variant.BlackWon
	default:
		return variant.InProgress
	}
}

// summary is the one-line status shown to players.
func (s *Server) summary(g *match.Match) string {
	switch {
	case g.Status == match.StatusResigned:
		winner := titleWord(g.Outcome)
		return s.msgs.RenderOr("outcome.resigned", map[string]any{"Winner": winner}, winner+" wins by resignation")
	case g.Status == match.StatusFinished:
		kind := strings.TrimPrefix(g.Method, "capture_all_")
		key := "outcome." + g.Outcome + "_won"
		return s.msgs.RenderOr(key, map[string]any{"Kind": kind}, g.Outcome+" wins")
	default:
		return s.msgs.RenderOr("outcome.in_progress", map[string]any{"Turn": g.Turn}, g.Turn+" to move")
	}
}

func (s *Server) moveMessage(g *match.Match) string {
	last, ok := g.LastMove()
	if !ok {
		return ""
	}
	data := map[string]any{
		"Color":    last.Color,
		"Piece":    last.Piece,
		"From":     last.From,
		"To":       last.To,
		"Captured": last.Captured,
	}
	key := "move.accepted"
	if last.Captured != "" {
		key = "move.capture"
	}
	return s.msgs.RenderOr(key, data, last.Notation())
}

func resultView(r *match.Result) matchdto.ResultView {
	return matchdto.ResultView{
		MatchID:    r.MatchID,
		WhiteID:    r.WhiteID,
		WhiteName:  r.WhiteName,
		BlackID:    r.BlackID,
		BlackName:  r.BlackName,
		Winner:     r.Winner,
		Outcome:    r.Outcome,
		Method:     r.Method,
		Record:     r.Record,
		StartedAt:  r.StartedAt,
		EndedAt:    r.EndedAt,
		DurationMS: r.DurationMS,
	}
}

func nonNil(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
