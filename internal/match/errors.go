package match

import "errors"

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchFinished    = errors.New("match already finished")
	ErrNotParticipant   = errors.New("player is not in this match")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrConcurrentUpdate = errors.New("match was updated concurrently")
	ErrInvalidArgs      = errors.New("invalid arguments")
)
