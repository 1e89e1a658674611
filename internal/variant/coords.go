package variant

import "fmt"

// Coord addresses a square by row (rank-1) and column (file-'a').
type Coord struct {
	Row int
	Col int
}

func (c Coord) OnBoard() bool { return IsOnBoard(c.Row, c.Col) }

// String returns algebraic notation, e.g. "e2".
func (c Coord) String() string {
	if !c.OnBoard() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return string([]byte{byte('a' + c.Col), byte('1' + c.Row)})
}

// ParseSquare converts two-character algebraic notation into a Coord.
// Anything that is not a lowercase letter followed by a digit is
// ErrMalformedSquare; a letter/digit pair outside a1..h8 is ErrOffBoard.
func ParseSquare(s string) (Coord, error) {
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'z' || rank < '0' || rank > '9' {
		return Coord{}, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}
	c := Coord{Row: int(rank) - '1', Col: int(file) - 'a'}
	if !c.OnBoard() {
		return Coord{}, fmt.Errorf("%w: %q", ErrOffBoard, s)
	}
	return c, nil
}
