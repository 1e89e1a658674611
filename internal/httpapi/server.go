package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/chessvar/internal/match"
	"github.com/park285/chessvar/internal/msgcat"
	"github.com/park285/chessvar/internal/obslog"
	"github.com/park285/chessvar/internal/render"
)

// Server exposes the match manager over HTTP.
type Server struct {
	mgr          *match.Manager
	renderer     render.BoardRenderer
	msgs         *msgcat.Catalog
	historyLimit int
	timeout      time.Duration
	srv          *fasthttp.Server
}

type Option func(*Server)

// WithHistoryLimit caps /players/{id}/results.
func WithHistoryLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithRequestTimeout bounds each handler's backend calls.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(mgr *match.Manager, renderer render.BoardRenderer, msgs *msgcat.Catalog, opts ...Option) *Server {
	s := &Server{
		mgr:          mgr,
		renderer:     renderer,
		msgs:         msgs,
		historyLimit: 10,
		timeout:      10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "chessvar",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe(addr string) error { return s.srv.ListenAndServe(addr) }

func (s *Server) Serve(ln net.Listener) error { return s.srv.Serve(ln) }

func (s *Server) Shutdown(ctx context.Context) error { return s.srv.ShutdownWithContext(ctx) }

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.logRequests(s.route)
}

func (s *Server) logRequests(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		obslog.L().Info("http_request",
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// route dispatches on path segments:
//
//	POST /matches
//	GET  /matches/{id}
//	POST /matches/{id}/moves
//	POST /matches/{id}/resign
//	GET  /matches/{id}/board.png
//	GET  /matches/{id}/board.txt
//	GET  /players/{id}/active
//	GET  /players/{id}/results
//	GET  /healthz
func (s *Server) route(ctx *fasthttp.RequestCtx) {
	parts := splitPath(string(ctx.Path()))
	method := string(ctx.Method())

	switch {
	case len(parts) == 1 && parts[0] == "healthz":
		s.only(ctx, method, fasthttp.MethodGet, s.handleHealth)
	case len(parts) == 1 && parts[0] == "matches":
		s.only(ctx, method, fasthttp.MethodPost, s.handleCreate)
	case len(parts) == 2 && parts[0] == "matches":
		s.only(ctx, method, fasthttp.MethodGet, func(c *fasthttp.RequestCtx) { s.handleGet(c, parts[1]) })
	case len(parts) == 3 && parts[0] == "matches":
		id := parts[1]
		switch parts[2] {
		case "moves":
			s.only(ctx, method, fasthttp.MethodPost, func(c *fasthttp.RequestCtx) { s.handleMove(c, id) })
		case "resign":
			s.only(ctx, method, fasthttp.MethodPost, func(c *fasthttp.RequestCtx) { s.handleResign(c, id) })
		case "board.png":
			s.only(ctx, method, fasthttp.MethodGet, func(c *fasthttp.RequestCtx) { s.handleBoardPNG(c, id) })
		case "board.txt":
			s.only(ctx, method, fasthttp.MethodGet, func(c *fasthttp.RequestCtx) { s.handleBoardText(c, id) })
		default:
			s.notFound(ctx)
		}
	case len(parts) == 3 && parts[0] == "players":
		id := parts[1]
		switch parts[2] {
		case "active":
			s.only(ctx, method, fasthttp.MethodGet, func(c *fasthttp.RequestCtx) { s.handleActive(c, id) })
		case "results":
			s.only(ctx, method, fasthttp.MethodGet, func(c *fasthttp.RequestCtx) { s.handleResults(c, id) })
		default:
			s.notFound(ctx)
		}
	default:
		s.notFound(ctx)
	}
}

func (s *Server) only(ctx *fasthttp.RequestCtx, got, want string, h fasthttp.RequestHandler) {
	if got != want {
		ctx.Response.Header.Set("Allow", want)
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", false)
		return
	}
	h(ctx)
}

func (s *Server) notFound(ctx *fasthttp.RequestCtx) {
	s.writeError(ctx, fasthttp.StatusNotFound, "not_found", "no such route", false)
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// backend derives a context bounded by the server's request timeout.
func (s *Server) backend(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error(`{"error":{"code":"internal","message":"encode response"}}`, fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(body)
}

func decodeJSON(ctx *fasthttp.RequestCtx, v any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(body, v)
}
