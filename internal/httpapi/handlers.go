package httpapi

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/park285/chessvar/internal/match"
	"github.com/park285/chessvar/internal/render"
	"github.com/park285/chessvar/internal/variant"
	"github.com/park285/chessvar/pkg/matchdto"
)

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	c, cancel := s.backend(ctx)
	defer cancel()
	if err := s.mgr.Ping(c); err != nil {
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, "unavailable", err.Error(), true)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, matchdto.HealthResponse{Status: "ok"})
}

func (s *Server) handleCreate(ctx *fasthttp.RequestCtx) {
	var req matchdto.CreateMatchRequest
	if err := decodeJSON(ctx, &req); err != nil {
		s.fail(ctx, fmt.Errorf("%w: %v", match.ErrInvalidArgs, err), nil)
		return
	}
	c, cancel := s.backend(ctx)
	defer cancel()
	g, err := s.mgr.Create(c, req.ChallengerID, req.ChallengerName, req.OpponentID, req.OpponentName, match.ParseColorChoice(req.Color))
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, s.view(g))
}

func (s *Server) handleGet(ctx *fasthttp.RequestCtx, id string) {
	c, cancel := s.backend(ctx)
	defer cancel()
	g, err := s.mgr.Get(c, id)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.view(g))
}

func (s *Server) handleMove(ctx *fasthttp.RequestCtx, id string) {
	var req matchdto.MoveRequest
	if err := decodeJSON(ctx, &req); err != nil {
		s.fail(ctx, fmt.Errorf("%w: %v", match.ErrInvalidArgs, err), nil)
		return
	}
	data := map[string]any{"From": req.From, "To": req.To}
	c, cancel := s.backend(ctx)
	defer cancel()
	g, out, err := s.mgr.PlayMove(c, id, req.PlayerID, req.From, req.To)
	if err != nil {
		s.fail(ctx, err, data)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, matchdto.MoveResponse{
		Match:   s.view(g),
		Outcome: out.Kind.String(),
		Message: s.moveMessage(g),
	})
}

func (s *Server) handleResign(ctx *fasthttp.RequestCtx, id string) {
	var req matchdto.ResignRequest
	if err := decodeJSON(ctx, &req); err != nil {
		s.fail(ctx, fmt.Errorf("%w: %v", match.ErrInvalidArgs, err), nil)
		return
	}
	c, cancel := s.backend(ctx)
	defer cancel()
	g, err := s.mgr.Resign(c, id, req.PlayerID)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.view(g))
}

// handleBoardPNG renders the board. ?viewer=<player id> flips it for the
// black player.
func (s *Server) handleBoardPNG(ctx *fasthttp.RequestCtx, id string) {
	c, cancel := s.backend(ctx)
	defer cancel()
	g, err := s.mgr.Get(c, id)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	sess, err := match.Replay(g)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}

	opts := render.RenderOptions{
		Title:    fmt.Sprintf("%s vs %s", displayName(g.WhiteName, g.WhiteID), displayName(g.BlackName, g.BlackID)),
		Turn:     s.summary(g),
		Captured: sess.Tally(),
	}
	if viewer := string(ctx.QueryArgs().Peek("viewer")); viewer != "" {
		if color, ok := g.ColorOf(viewer); ok && color == variant.Black {
			opts.Flip = true
		}
	}
	if last, ok := g.LastMove(); ok {
		from, ferr := variant.ParseSquare(last.From)
		to, terr := variant.ParseSquare(last.To)
		if ferr == nil && terr == nil {
			opts.Highlight = &render.MoveHighlight{From: from, To: to}
		}
	}

	img, err := s.renderer.RenderPNG(c, sess.Board(), opts)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("image/png")
	ctx.SetBody(img)
}

func (s *Server) handleBoardText(ctx *fasthttp.RequestCtx, id string) {
	c, cancel := s.backend(ctx)
	defer cancel()
	g, err := s.mgr.Get(c, id)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	b, err := variant.ParseBoard(g.Board)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString(render.Text(b))
}

func (s *Server) handleActive(ctx *fasthttp.RequestCtx, playerID string) {
	c, cancel := s.backend(ctx)
	defer cancel()
	g, err := s.mgr.ActiveByPlayer(c, playerID)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.view(g))
}

func (s *Server) handleResults(ctx *fasthttp.RequestCtx, playerID string) {
	limit := ctx.QueryArgs().GetUintOrZero("limit")
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	c, cancel := s.backend(ctx)
	defer cancel()
	results, err := s.mgr.RecentResults(c, playerID, limit)
	if err != nil {
		s.fail(ctx, err, nil)
		return
	}
	resp := matchdto.ResultsResponse{PlayerID: playerID, Results: make([]matchdto.ResultView, 0, len(results))}
	for _, r := range results {
		resp.Results = append(resp.Results, resultView(r))
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func displayName(name, id string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return id
}
