package variant

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mustBoard builds a board from rank strings, rank 8 first.
func mustBoard(t *testing.T, ranks ...string) Board {
	t.Helper()
	layout := ""
	for i, r := range ranks {
		if i > 0 {
			layout += "/"
		}
		layout += r
	}
	b, err := ParseBoard(layout)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

func TestNewBoard_Layout(t *testing.T) {
	b := NewBoard()
	want := []string{
		"RNBQKBNR",
		"PPPPPPPP",
		"--------",
		"--------",
		"--------",
		"--------",
		"pppppppp",
		"rnbqkbnr",
	}
	if diff := cmp.Diff(want, b.Rows()); diff != "" {
		t.Fatalf("start rows mismatch (-want +got):\n%s", diff)
	}
	if got := b.SquareAt(0, 4); got != (Piece{Kind: King, Color: White}) {
		t.Fatalf("e1 = %v, want white king", got)
	}
	if got := b.SquareAt(7, 3); got != (Piece{Kind: Queen, Color: Black}) {
		t.Fatalf("d8 = %v, want black queen", got)
	}
	for _, k := range Kinds {
		if w, bl := b.Count(White, k), b.Count(Black, k); w != winThreshold[k] || bl != winThreshold[k] {
			t.Fatalf("%s count white=%d black=%d, want %d", k, w, bl, winThreshold[k])
		}
	}
}

func TestIsOnBoard(t *testing.T) {
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{7, 7, true},
		{3, 5, true},
		{-1, 0, false},
		{0, -1, false},
		{8, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		if got := IsOnBoard(c.row, c.col); got != c.want {
			t.Errorf("IsOnBoard(%d,%d) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
}

func TestBoard_ValueCopyIsIndependent(t *testing.T) {
	a := NewBoard()
	b := a
	b.SetSquare(1, 0, NoPiece)
	if a.SquareAt(1, 0).IsEmpty() {
		t.Fatalf("mutating copy changed original")
	}
}

func TestParseBoard_RoundTripAndErrors(t *testing.T) {
	start := NewBoard()
	got, err := ParseBoard(start.String())
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	if got != start {
		t.Fatalf("round trip mismatch: %s", got)
	}
	for _, bad := range []string{"", "RNBQKBNR", "RNBQKBNX/PPPPPPPP/8/8/8/8/pppppppp/rnbqkbnr", "--------/--------/--------/--------/--------/--------/--------/-------"} {
		if _, err := ParseBoard(bad); err == nil {
			t.Errorf("ParseBoard(%q) accepted", bad)
		}
	}
}

func TestPieceSymbol(t *testing.T) {
	if s := (Piece{Kind: Knight, Color: White}).Symbol(); s != 'n' {
		t.Fatalf("white knight symbol = %c", s)
	}
	if s := (Piece{Kind: Knight, Color: Black}).Symbol(); s != 'N' {
		t.Fatalf("black knight symbol = %c", s)
	}
	if s := NoPiece.Symbol(); s != '-' {
		t.Fatalf("empty symbol = %c", s)
	}
	p, ok := PieceFromSymbol('Q')
	if !ok || p != (Piece{Kind: Queen, Color: Black}) {
		t.Fatalf("PieceFromSymbol('Q') = %v, %v", p, ok)
	}
	if _, ok := PieceFromSymbol('x'); ok {
		t.Fatalf("PieceFromSymbol('x') accepted")
	}
}
