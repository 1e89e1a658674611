package variant

import "errors"

var (
	ErrGameOver        = errors.New("game is already won")
	ErrMalformedSquare = errors.New("malformed square")
	ErrOffBoard        = errors.New("square is off the board")
	ErrEmptySquare     = errors.New("no piece on start square")
	ErrNotYourPiece    = errors.New("piece belongs to the other player")
	ErrIllegalMove     = errors.New("illegal move for piece")
)
