package variant

import (
	"fmt"
	"strings"
)

// Size is the number of rows and columns.
const Size = 8

// Board is the 8×8 grid. Row 0 is rank 1, column 0 is file a.
// Board is a value type: assigning it copies every square.
type Board struct {
	squares [Size][Size]Piece
}

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting layout.
func NewBoard() Board {
	var b Board
	for col := 0; col < Size; col++ {
		b.squares[0][col] = Piece{Kind: backRank[col], Color: White}
		b.squares[1][col] = Piece{Kind: Pawn, Color: White}
		b.squares[6][col] = Piece{Kind: Pawn, Color: Black}
		b.squares[7][col] = Piece{Kind: backRank[col], Color: Black}
	}
	return b
}

// IsOnBoard reports whether (row, col) addresses a square.
func IsOnBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// SquareAt returns the occupant of (row, col). Callers validate with IsOnBoard.
func (b *Board) SquareAt(row, col int) Piece { return b.squares[row][col] }

// SetSquare overwrites (row, col). Callers validate with IsOnBoard.
func (b *Board) SetSquare(row, col int, p Piece) { b.squares[row][col] = p }

func (b *Board) at(c Coord) Piece { return b.squares[c.Row][c.Col] }

// Count returns how many pieces of the given color and kind are on the board.
func (b *Board) Count(color Color, kind Kind) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p := b.squares[row][col]; p.Kind == kind && p.Color == color {
				n++
			}
		}
	}
	return n
}

// Rows returns one string per rank, rank 8 first, using Piece.Symbol.
func (b Board) Rows() []string {
	rows := make([]string, 0, Size)
	for row := Size - 1; row >= 0; row-- {
		var sb strings.Builder
		for col := 0; col < Size; col++ {
			sb.WriteByte(b.squares[row][col].Symbol())
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// String is the compact layout "RNBQKBNR/PPPPPPPP/.../rnbqkbnr", rank 8 first.
func (b Board) String() string { return strings.Join(b.Rows(), "/") }

// ParseBoard decodes the layout produced by Board.String.
func ParseBoard(s string) (Board, error) {
	var b Board
	ranks := strings.Split(strings.TrimSpace(s), "/")
	if len(ranks) != Size {
		return b, fmt.Errorf("board layout: want %d ranks, got %d", Size, len(ranks))
	}
	for i, rank := range ranks {
		if len(rank) != Size {
			return b, fmt.Errorf("board layout: rank %d has %d squares", Size-i, len(rank))
		}
		row := Size - 1 - i
		for col := 0; col < Size; col++ {
			p, ok := PieceFromSymbol(rank[col])
			if !ok {
				return b, fmt.Errorf("board layout: bad symbol %q", rank[col])
			}
			b.squares[row][col] = p
		}
	}
	return b, nil
}
