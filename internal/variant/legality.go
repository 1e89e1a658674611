package variant

// OutcomeKind classifies the result of EvaluateMove.
type OutcomeKind uint8

const (
	Illegal OutcomeKind = iota
	Quiet
	Capture
)

func (k OutcomeKind) String() string {
	switch k {
	case Quiet:
		return "quiet"
	case Capture:
		return "capture"
	default:
		return "illegal"
	}
}

// Outcome is the verdict for one candidate move. Captured is set only when
// Kind is Capture.
type Outcome struct {
	Kind     OutcomeKind
	Captured Piece
}

func (o Outcome) Legal() bool { return o.Kind != Illegal }

// DoubleStepRule decides whether a pawn's two-square advance needs the
// square it passes over to be empty.
type DoubleStepRule uint8

const (
	// DoubleStepStrict requires the passed-over and destination squares empty.
	DoubleStepStrict DoubleStepRule = iota
	// DoubleStepLenient only checks the destination square, so a pawn can
	// hop over a piece directly in front of it.
	DoubleStepLenient
)

func (r DoubleStepRule) String() string {
	if r == DoubleStepLenient {
		return "lenient"
	}
	return "strict"
}

// ParseDoubleStepRule accepts "strict" and "lenient"; empty means strict.
func ParseDoubleStepRule(s string) (DoubleStepRule, bool) {
	switch s {
	case "", "strict":
		return DoubleStepStrict, true
	case "lenient":
		return DoubleStepLenient, true
	default:
		return DoubleStepStrict, false
	}
}

type direction struct{ dr, dc int }

var (
	orthogonal = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allLines   = append(append([]direction{}, orthogonal...), diagonal...)
)

type legalityFunc func(b *Board, from, to Coord, mover Color, rule DoubleStepRule) bool

var legality = [...]legalityFunc{
	NoKind: func(*Board, Coord, Coord, Color, DoubleStepRule) bool { return false },
	Pawn:   pawnLegal,
	Knight: knightLegal,
	Bishop: slider(diagonal),
	Rook:   slider(orthogonal),
	Queen:  slider(allLines),
	King:   kingLegal,
}

// EvaluateMove decides whether the piece on from may move to to for mover.
// It never mutates b. The caller guarantees both coordinates are on the
// board and that from holds a piece of mover's color.
func EvaluateMove(b *Board, from, to Coord, mover Color) Outcome {
	return evaluateMove(b, from, to, mover, DoubleStepStrict)
}

// EvaluateMoveWithRule is EvaluateMove under an explicit double-step rule.
func EvaluateMoveWithRule(b *Board, from, to Coord, mover Color, rule DoubleStepRule) Outcome {
	return evaluateMove(b, from, to, mover, rule)
}

func evaluateMove(b *Board, from, to Coord, mover Color, rule DoubleStepRule) Outcome {
	piece := b.at(from)
	if int(piece.Kind) >= len(legality) {
		return Outcome{Kind: Illegal}
	}
	if !legality[piece.Kind](b, from, to, mover, rule) {
		return Outcome{Kind: Illegal}
	}
	target := b.at(to)
	if target.IsEmpty() {
		return Outcome{Kind: Quiet}
	}
	return Outcome{Kind: Capture, Captured: target}
}

func forward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func homeRow(c Color) int {
	if c == White {
		return 1
	}
	return Size - 2
}

// enterable: empty or held by the opponent.
func enterable(b *Board, c Coord, mover Color) bool {
	p := b.at(c)
	return p.IsEmpty() || p.Color != mover
}

func pawnLegal(b *Board, from, to Coord, mover Color, rule DoubleStepRule) bool {
	dir := forward(mover)
	dr, dc := to.Row-from.Row, to.Col-from.Col
	target := b.at(to)

	switch {
	case dc == 0 && dr == dir:
		return target.IsEmpty()
	case dc == 0 && dr == 2*dir:
		if from.Row != homeRow(mover) || !target.IsEmpty() {
			return false
		}
		if rule == DoubleStepLenient {
			return true
		}
		return b.at(Coord{Row: from.Row + dir, Col: from.Col}).IsEmpty()
	case abs(dc) == 1 && dr == dir:
		return !target.IsEmpty() && target.Color != mover
	default:
		return false
	}
}

func knightLegal(b *Board, from, to Coord, mover Color, _ DoubleStepRule) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if !(dr == 1 && dc == 2) && !(dr == 2 && dc == 1) {
		return false
	}
	return enterable(b, to, mover)
}

func kingLegal(b *Board, from, to Coord, mover Color, _ DoubleStepRule) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if dr > 1 || dc > 1 || (dr == 0 && dc == 0) {
		return false
	}
	return enterable(b, to, mover)
}

// slider builds a ray-casting check over dirs. Each ray walks outward until
// the edge, an opposing piece (included, then stop) or an own piece
// (excluded, then stop). to is legal iff some ray reaches it.
func slider(dirs []direction) legalityFunc {
	return func(b *Board, from, to Coord, mover Color, _ DoubleStepRule) bool {
		for _, d := range dirs {
			if !pointsAt(from, to, d) {
				continue
			}
			c := Coord{Row: from.Row + d.dr, Col: from.Col + d.dc}
			for ; c.OnBoard(); c.Row, c.Col = c.Row+d.dr, c.Col+d.dc {
				p := b.at(c)
				if !p.IsEmpty() && p.Color == mover {
					break
				}
				if c == to {
					return true
				}
				if !p.IsEmpty() {
					break
				}
			}
			return false
		}
		return false
	}
}

// pointsAt reports whether to lies on the ray from in direction d.
func pointsAt(from, to Coord, d direction) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	if dr == 0 && dc == 0 {
		return false
	}
	if sign(dr) != d.dr || sign(dc) != d.dc {
		return false
	}
	return dr == 0 || dc == 0 || abs(dr) == abs(dc)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
