package variant

import "fmt"

// Tally counts captured pieces per (color, kind). The color is the owner
// of the captured piece.
type Tally [2][len(Kinds) + 1]int

// Get returns the count for one color and kind.
func (t Tally) Get(c Color, k Kind) int {
	if int(c) >= len(t) || int(k) >= len(t[c]) {
		return 0
	}
	return t[c][k]
}

// winThreshold is how many captures of a kind end the game: every piece of
// that kind the side started with.
var winThreshold = [...]int{
	Pawn:   8,
	Knight: 2,
	Bishop: 2,
	Rook:   2,
	Queen:  1,
	King:   1,
}

// Exhausted returns the first kind of color c whose captures reached the
// threshold.
func (t Tally) Exhausted(c Color) (Kind, bool) {
	for _, k := range Kinds {
		if t.Get(c, k) >= winThreshold[k] {
			return k, true
		}
	}
	return NoKind, false
}

// Option configures a Session.
type Option func(*Session)

// WithDoubleStepRule selects how pawn double steps are validated.
func WithDoubleStepRule(r DoubleStepRule) Option {
	return func(s *Session) { s.doubleStep = r }
}

// Session owns one game: board, captures, turn and result. A Session is not
// safe for concurrent use.
type Session struct {
	board      Board
	tally      Tally
	state      State
	turn       Color
	moves      [2]int
	doubleStep DoubleStepRule
	decider    Kind
}

// NewGame returns a session at the starting position with White to move.
func NewGame(opts ...Option) *Session {
	s := &Session{board: NewBoard(), turn: White, state: InProgress}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MakeMove plays start→end for the side to move. It returns false, leaving
// the session untouched, when the move is rejected for any reason.
func (s *Session) MakeMove(start, end string) bool {
	_, err := s.Move(start, end)
	return err == nil
}

// Move is MakeMove with the rejection reason and the engine verdict.
func (s *Session) Move(start, end string) (Outcome, error) {
	if s.state.Terminal() {
		return Outcome{}, ErrGameOver
	}
	from, err := ParseSquare(start)
	if err != nil {
		return Outcome{}, err
	}
	to, err := ParseSquare(end)
	if err != nil {
		return Outcome{}, err
	}
	return s.MoveCoords(from, to)
}

// MoveCoords plays a move given already converted coordinates.
func (s *Session) MoveCoords(from, to Coord) (Outcome, error) {
	if s.state.Terminal() {
		return Outcome{}, ErrGameOver
	}
	if !from.OnBoard() || !to.OnBoard() {
		return Outcome{}, ErrOffBoard
	}
	piece := s.board.at(from)
	if piece.IsEmpty() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrEmptySquare, from)
	}
	if piece.Color != s.turn {
		return Outcome{}, fmt.Errorf("%w: %s on %s", ErrNotYourPiece, piece, from)
	}
	out := evaluateMove(&s.board, from, to, s.turn, s.doubleStep)
	if !out.Legal() {
		return Outcome{}, fmt.Errorf("%w: %s %s-%s", ErrIllegalMove, piece.Kind, from, to)
	}
	s.apply(from, to, piece, out)
	return out, nil
}

// apply performs every mutation of an accepted move. Nothing before it
// writes to the session.
func (s *Session) apply(from, to Coord, piece Piece, out Outcome) {
	s.board.SetSquare(to.Row, to.Col, piece)
	s.board.SetSquare(from.Row, from.Col, NoPiece)
	if out.Kind == Capture {
		s.tally[out.Captured.Color][out.Captured.Kind]++
	}
	s.evaluateWin()
	s.moves[s.turn]++
	s.turn = s.turn.Opposite()
}

// evaluateWin checks White's losses first. Once a result is set it is
// never overwritten.
func (s *Session) evaluateWin() {
	for _, loser := range [...]Color{White, Black} {
		if s.state.Terminal() {
			return
		}
		if k, ok := s.tally.Exhausted(loser); ok {
			s.state = wonBy(loser.Opposite())
			s.decider = k
		}
	}
}

// State returns the game result so far.
func (s *Session) State() State { return s.state }

// Board returns a copy of the board.
func (s *Session) Board() Board { return s.board }

// CapturedCount returns how many pieces of color c and kind k were captured.
func (s *Session) CapturedCount(c Color, k Kind) int { return s.tally.Get(c, k) }

// Tally returns a copy of all capture counters.
func (s *Session) Tally() Tally { return s.tally }

// ActiveColor is the side to move.
func (s *Session) ActiveColor() Color { return s.turn }

// MoveCount is the number of moves c has completed.
func (s *Session) MoveCount(c Color) int { return s.moves[c] }

// DecidingKind is the kind whose last piece was captured to end the game,
// or NoKind while the game is in progress.
func (s *Session) DecidingKind() Kind { return s.decider }

// DoubleStepRule reports the pawn rule this session plays with.
func (s *Session) DoubleStepRule() DoubleStepRule { return s.doubleStep }
