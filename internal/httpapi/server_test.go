package httpapi

import (
	"encoding/json"
	"fmt"
	"net"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/park285/chessvar/internal/match"
	"github.com/park285/chessvar/internal/msgcat"
	"github.com/park285/chessvar/internal/render"
	"github.com/park285/chessvar/pkg/matchdto"
)

type testEnv struct {
	client *fasthttp.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	mgr, err := match.NewManager(fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	mgr.AttachRepository(match.NewMemoryRepository())
	t.Cleanup(func() { _ = mgr.Close() })
	msgs, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat: %v", err)
	}

	srv := New(mgr, render.NewSVGBoardRenderer(), msgs)
	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	return &testEnv{client: &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, []byte, string) {
	t.Helper()
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://chessvar.test" + path)
	req.Header.SetMethod(method)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(raw)
	}
	if err := e.client.Do(req, resp); err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	out := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), out, string(resp.Header.ContentType())
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func (e *testEnv) create(t *testing.T) matchdto.MatchView {
	t.Helper()
	status, body, _ := e.do(t, fasthttp.MethodPost, "/matches", matchdto.CreateMatchRequest{
		ChallengerID: "w", ChallengerName: "Wendy", OpponentID: "b", OpponentName: "Bart", Color: "white",
	})
	if status != fasthttp.StatusCreated {
		t.Fatalf("create status %d: %s", status, body)
	}
	return decode[matchdto.MatchView](t, body)
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)
	status, body, _ := e.do(t, fasthttp.MethodGet, "/healthz", nil)
	if status != fasthttp.StatusOK || decode[matchdto.HealthResponse](t, body).Status != "ok" {
		t.Fatalf("healthz %d: %s", status, body)
	}
}

func TestCreateAndMove(t *testing.T) {
	e := newTestEnv(t)
	m := e.create(t)
	if m.Turn != "white" || m.State != "UNFINISHED" || len(m.Board) != 8 || m.Board[7] != "rnbqkbnr" {
		t.Fatalf("created view = %+v", m)
	}

	status, body, _ := e.do(t, fasthttp.MethodPost, "/matches/"+m.ID+"/moves", matchdto.MoveRequest{PlayerID: "w", From: "a2", To: "a4"})
	if status != fasthttp.StatusOK {
		t.Fatalf("move status %d: %s", status, body)
	}
	mr := decode[matchdto.MoveResponse](t, body)
	if mr.Outcome != "quiet" || mr.Match.Turn != "black" || mr.Message == "" {
		t.Fatalf("move response = %+v", mr)
	}

	status, body, ctype := e.do(t, fasthttp.MethodGet, "/matches/"+m.ID+"/board.txt", nil)
	if status != fasthttp.StatusOK || ctype != "text/plain; charset=utf-8" {
		t.Fatalf("board.txt %d %s", status, ctype)
	}
	if want := "RNBQKBNR\nPPPPPPPP\n--------\n--------\np-------\n--------\n-ppppppp\nrnbqkbnr\n"; string(body) != want {
		t.Fatalf("board.txt =\n%s", body)
	}

	status, body, ctype = e.do(t, fasthttp.MethodGet, "/matches/"+m.ID+"/board.png?viewer=b", nil)
	if status != fasthttp.StatusOK || ctype != "image/png" || len(body) < 8 || string(body[1:4]) != "PNG" {
		t.Fatalf("board.png %d %s", status, ctype)
	}
}

func TestMoveRejections(t *testing.T) {
	e := newTestEnv(t)
	m := e.create(t)
	cases := []struct {
		name   string
		req    matchdto.MoveRequest
		status int
		code   string
	}{
		{"wrong turn", matchdto.MoveRequest{PlayerID: "b", From: "a7", To: "a5"}, fasthttp.StatusConflict, "not_your_turn"},
		{"stranger", matchdto.MoveRequest{PlayerID: "z", From: "a2", To: "a4"}, fasthttp.StatusForbidden, "not_participant"},
		{"sideways", matchdto.MoveRequest{PlayerID: "w", From: "a2", To: "b2"}, fasthttp.StatusUnprocessableEntity, "illegal_move"},
		{"blocked", matchdto.MoveRequest{PlayerID: "w", From: "c1", To: "a3"}, fasthttp.StatusUnprocessableEntity, "illegal_move"},
		{"empty", matchdto.MoveRequest{PlayerID: "w", From: "d4", To: "d5"}, fasthttp.StatusUnprocessableEntity, "empty_square"},
		{"malformed", matchdto.MoveRequest{PlayerID: "w", From: "a", To: "a4"}, fasthttp.StatusBadRequest, "malformed_square"},
		{"off board", matchdto.MoveRequest{PlayerID: "w", From: "a2", To: "a9"}, fasthttp.StatusBadRequest, "off_board"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, body, _ := e.do(t, fasthttp.MethodPost, "/matches/"+m.ID+"/moves", c.req)
			if status != c.status {
				t.Fatalf("status %d, want %d: %s", status, c.status, body)
			}
			er := decode[matchdto.ErrorResponse](t, body)
			if er.Error.Code != c.code || er.Error.Message == "" {
				t.Fatalf("error = %+v", er.Error)
			}
		})
	}

	status, body, _ := e.do(t, fasthttp.MethodGet, "/matches/"+m.ID, nil)
	if status != fasthttp.StatusOK {
		t.Fatalf("get %d", status)
	}
	if v := decode[matchdto.MatchView](t, body); len(v.Moves) != 0 || v.Turn != "white" {
		t.Fatalf("rejections mutated match: %+v", v)
	}
}

func TestResignAndResults(t *testing.T) {
	e := newTestEnv(t)
	m := e.create(t)

	status, body, _ := e.do(t, fasthttp.MethodGet, "/players/w/active", nil)
	if status != fasthttp.StatusOK || decode[matchdto.MatchView](t, body).ID != m.ID {
		t.Fatalf("active %d: %s", status, body)
	}

	status, body, _ = e.do(t, fasthttp.MethodPost, "/matches/"+m.ID+"/resign", matchdto.ResignRequest{PlayerID: "b"})
	if status != fasthttp.StatusOK {
		t.Fatalf("resign %d: %s", status, body)
	}
	v := decode[matchdto.MatchView](t, body)
	if v.Status != "RESIGNED" || v.State != "WHITE_WON" || v.Winner != "w" {
		t.Fatalf("resigned view = %+v", v)
	}

	status, _, _ = e.do(t, fasthttp.MethodGet, "/players/w/active", nil)
	if status != fasthttp.StatusNotFound {
		t.Fatalf("active after resign = %d", status)
	}

	status, body, _ = e.do(t, fasthttp.MethodGet, "/players/b/results?limit=5", nil)
	if status != fasthttp.StatusOK {
		t.Fatalf("results %d: %s", status, body)
	}
	rr := decode[matchdto.ResultsResponse](t, body)
	if len(rr.Results) != 1 || rr.Results[0].Method != "resignation" || rr.Results[0].Record != "1-0" {
		t.Fatalf("results = %+v", rr)
	}
}

func TestRouting(t *testing.T) {
	e := newTestEnv(t)
	if status, _, _ := e.do(t, fasthttp.MethodGet, "/nope", nil); status != fasthttp.StatusNotFound {
		t.Fatalf("unknown route = %d", status)
	}
	if status, _, _ := e.do(t, fasthttp.MethodGet, "/matches", nil); status != fasthttp.StatusMethodNotAllowed {
		t.Fatalf("GET /matches = %d", status)
	}
	if status, _, _ := e.do(t, fasthttp.MethodGet, "/matches/missing", nil); status != fasthttp.StatusNotFound {
		t.Fatalf("missing match = %d", status)
	}
	status, body, _ := e.do(t, fasthttp.MethodPost, "/matches", nil)
	if status != fasthttp.StatusBadRequest || decode[matchdto.ErrorResponse](t, body).Error.Code != "invalid_args" {
		t.Fatalf("empty create = %d %s", status, body)
	}
}
