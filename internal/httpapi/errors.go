package httpapi

import (
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/chessvar/internal/match"
	"github.com/park285/chessvar/internal/obslog"
	"github.com/park285/chessvar/internal/variant"
	"github.com/park285/chessvar/pkg/matchdto"
)

var errEmptyBody = errors.New("empty request body")

type errorMapping struct {
	target    error
	status    int
	code      string
	msgKey    string
	retryable bool
}

// errorTable is checked in order with errors.Is.
var errorTable = []errorMapping{
	{variant.ErrGameOver, fasthttp.StatusConflict, "game_over", "move.game_over", false},
	{variant.ErrMalformedSquare, fasthttp.StatusBadRequest, "malformed_square", "move.malformed_square", false},
	{variant.ErrOffBoard, fasthttp.StatusBadRequest, "off_board", "move.off_board", false},
	{variant.ErrEmptySquare, fasthttp.StatusUnprocessableEntity, "empty_square", "move.empty_square", false},
	{variant.ErrNotYourPiece, fasthttp.StatusUnprocessableEntity, "not_your_piece", "move.not_your_piece", false},
	{variant.ErrIllegalMove, fasthttp.StatusUnprocessableEntity, "illegal_move", "move.illegal_move", false},
	{match.ErrMatchNotFound, fasthttp.StatusNotFound, "match_not_found", "match.not_found", false},
	{match.ErrMatchFinished, fasthttp.StatusConflict, "match_finished", "match.finished", false},
	{match.ErrNotParticipant, fasthttp.StatusForbidden, "not_participant", "match.not_participant", false},
	{match.ErrNotYourTurn, fasthttp.StatusConflict, "not_your_turn", "match.not_your_turn", false},
	{match.ErrConcurrentUpdate, fasthttp.StatusConflict, "concurrent_update", "match.concurrent_update", true},
	{match.ErrInvalidArgs, fasthttp.StatusBadRequest, "invalid_args", "match.invalid_args", false},
	{errEmptyBody, fasthttp.StatusBadRequest, "invalid_args", "match.invalid_args", false},
}

// toDomainError converts err into a status code and wire error. data feeds
// the message template.
func (s *Server) toDomainError(err error, data map[string]any) (int, matchdto.DomainError) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, matchdto.DomainError{
				Code:      m.code,
				Message:   s.msgs.RenderOr(m.msgKey, data, err.Error()),
				Retryable: m.retryable,
			}
		}
	}
	return fasthttp.StatusInternalServerError, matchdto.DomainError{
		Code:      "internal",
		Message:   s.msgs.RenderOr("match.internal", data, "internal error"),
		Retryable: true,
	}
}

func (s *Server) fail(ctx *fasthttp.RequestCtx, err error, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	for _, k := range []string{"From", "To", "Detail"} {
		if _, ok := data[k]; !ok {
			data[k] = ""
		}
	}
	if data["Detail"] == "" {
		data["Detail"] = err.Error()
	}
	status, de := s.toDomainError(err, data)
	if status >= fasthttp.StatusInternalServerError {
		obslog.L().Error("http_handler_error", zap.String("path", string(ctx.Path())), zap.Error(err))
	}
	writeJSON(ctx, status, matchdto.ErrorResponse{Error: de})
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, code, msg string, retryable bool) {
	writeJSON(ctx, status, matchdto.ErrorResponse{Error: matchdto.DomainError{Code: code, Message: msg, Retryable: retryable}})
}
