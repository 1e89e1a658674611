package variant

import "fmt"

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ParseColor accepts "white"/"w" and "black"/"b".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "white", "w", "White", "WHITE":
		return White, true
	case "black", "b", "Black", "BLACK":
		return Black, true
	default:
		return White, false
	}
}

// Kind is the piece type. NoKind marks an empty square.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds lists every real piece kind in board order of importance.
var Kinds = [...]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

func (k Kind) String() string {
	switch k {
	case NoKind:
		return "none"
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// ParseKind accepts the lowercase kind name or its single letter.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "pawn", "p":
		return Pawn, true
	case "knight", "n":
		return Knight, true
	case "bishop", "b":
		return Bishop, true
	case "rook", "r":
		return Rook, true
	case "queen", "q":
		return Queen, true
	case "king", "k":
		return King, true
	default:
		return NoKind, false
	}
}

func (k Kind) letter() byte {
	switch k {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	default:
		return '-'
	}
}

// Piece is the content of one square. The zero value is an empty square.
type Piece struct {
	Kind  Kind
	Color Color
}

// NoPiece is the empty square.
var NoPiece = Piece{}

func (p Piece) IsEmpty() bool { return p.Kind == NoKind }

// Symbol returns the board letter: white pieces are lowercase, black pieces
// uppercase, empty squares '-'.
func (p Piece) Symbol() byte {
	if p.IsEmpty() {
		return '-'
	}
	l := p.Kind.letter()
	if p.Color == Black {
		return l - 'a' + 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// PieceFromSymbol is the inverse of Piece.Symbol.
func PieceFromSymbol(b byte) (Piece, bool) {
	if b == '-' {
		return NoPiece, true
	}
	color := White
	if b >= 'A' && b <= 'Z' {
		color = Black
		b = b - 'A' + 'a'
	}
	k, ok := ParseKind(string(b))
	if !ok {
		return NoPiece, false
	}
	return Piece{Kind: k, Color: color}, true
}

// State is the game lifecycle.
type State uint8

const (
	InProgress State = iota
	WhiteWon
	BlackWon
)

func (s State) String() string {
	switch s {
	case WhiteWon:
		return "WHITE_WON"
	case BlackWon:
		return "BLACK_WON"
	default:
		return "UNFINISHED"
	}
}

// Terminal reports whether no further moves are accepted.
func (s State) Terminal() bool { return s == WhiteWon || s == BlackWon }

// wonBy returns the terminal state in which c is the winner.
func wonBy(c Color) State {
	if c == White {
		return WhiteWon
	}
	return BlackWon
}
