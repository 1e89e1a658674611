package variant

import "testing"

func sq(t *testing.T, s string) Coord {
	t.Helper()
	c, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return c
}

func TestEvaluateMove_StartPosition(t *testing.T) {
	b := NewBoard()
	cases := []struct {
		from, to string
		mover    Color
		want     OutcomeKind
	}{
		{"e2", "e3", White, Quiet},
		{"e2", "e4", White, Quiet},
		{"e2", "e5", White, Illegal},
		{"a2", "b2", White, Illegal}, // sideways
		{"a2", "b3", White, Illegal}, // diagonal onto empty
		{"e7", "e5", Black, Quiet},
		{"e7", "e6", Black, Quiet},
		{"e7", "e8", Black, Illegal}, // backward
		{"b1", "c3", White, Quiet},
		{"b1", "a3", White, Quiet},
		{"b1", "d2", White, Illegal}, // own pawn
		{"g8", "f6", Black, Quiet},
		{"c1", "a3", White, Illegal}, // blocked by b2
		{"a1", "a3", White, Illegal}, // blocked by a2
		{"d1", "d3", White, Illegal},
		{"e1", "e2", White, Illegal}, // own pawn
		{"e1", "e1", White, Illegal},
	}
	for _, c := range cases {
		t.Run(c.from+c.to, func(t *testing.T) {
			got := EvaluateMove(&b, sq(t, c.from), sq(t, c.to), c.mover)
			if got.Kind != c.want {
				t.Fatalf("EvaluateMove %s-%s = %s, want %s", c.from, c.to, got.Kind, c.want)
			}
		})
	}
	if b != NewBoard() {
		t.Fatalf("EvaluateMove mutated the board")
	}
}

func TestEvaluateMove_Sliders(t *testing.T) {
	b := mustBoard(t,
		"----K---",
		"--------",
		"-P---p--",
		"--------",
		"---q----",
		"--------",
		"--------",
		"----k---",
	)
	// white queen on d4, black pawn on b6, white pawn on f6
	cases := []struct {
		to   string
		want OutcomeKind
	}{
		{"d8", Quiet},
		{"d1", Quiet},
		{"a4", Quiet},
		{"h4", Quiet},
		{"a1", Quiet},
		{"g1", Quiet},
		{"c5", Quiet},
		{"b6", Capture},
		{"a7", Illegal}, // behind the captured pawn
		{"e5", Quiet},
		{"f6", Illegal}, // own pawn
		{"g7", Illegal},
		{"e6", Illegal}, // not on a line
		{"c2", Illegal},
	}
	from := sq(t, "d4")
	for _, c := range cases {
		got := EvaluateMove(&b, from, sq(t, c.to), White)
		if got.Kind != c.want {
			t.Errorf("queen d4-%s = %s, want %s", c.to, got.Kind, c.want)
		}
		if c.want == Capture && got.Captured != (Piece{Kind: Pawn, Color: Black}) {
			t.Errorf("queen d4-%s captured %v", c.to, got.Captured)
		}
	}

	b.SetSquare(3, 3, Piece{Kind: Rook, Color: White})
	if got := EvaluateMove(&b, from, sq(t, "c5"), White); got.Legal() {
		t.Errorf("rook moved diagonally")
	}
	if got := EvaluateMove(&b, from, sq(t, "d8"), White); !got.Legal() {
		t.Errorf("rook d4-d8 rejected")
	}
	b.SetSquare(3, 3, Piece{Kind: Bishop, Color: White})
	if got := EvaluateMove(&b, from, sq(t, "d8"), White); got.Legal() {
		t.Errorf("bishop moved orthogonally")
	}
	if got := EvaluateMove(&b, from, sq(t, "b6"), White); got.Kind != Capture {
		t.Errorf("bishop d4xb6 = %s", got.Kind)
	}
}

func TestEvaluateMove_KingCapturable(t *testing.T) {
	b := mustBoard(t,
		"--------",
		"--------",
		"--------",
		"--------",
		"--------",
		"--------",
		"----K---",
		"----k---",
	)
	got := EvaluateMove(&b, sq(t, "e1"), sq(t, "e2"), White)
	if got.Kind != Capture || got.Captured != (Piece{Kind: King, Color: Black}) {
		t.Fatalf("king e1xe2 = %+v", got)
	}
	if got := EvaluateMove(&b, sq(t, "e1"), sq(t, "e3"), White); got.Legal() {
		t.Fatalf("king moved two squares")
	}
}

func TestEvaluateMove_PawnCaptures(t *testing.T) {
	b := mustBoard(t,
		"--------",
		"--------",
		"--------",
		"--------",
		"---P----",
		"--p-p---",
		"--------",
		"--------",
	)
	if got := EvaluateMove(&b, sq(t, "c3"), sq(t, "d4"), White); got.Kind != Capture {
		t.Fatalf("c3xd4 = %s", got.Kind)
	}
	if got := EvaluateMove(&b, sq(t, "d4"), sq(t, "e3"), Black); got.Kind != Capture {
		t.Fatalf("d4xe3 = %s", got.Kind)
	}
	if got := EvaluateMove(&b, sq(t, "d4"), sq(t, "c5"), Black); got.Legal() {
		t.Fatalf("black pawn captured backward onto empty")
	}
	// blocked straight ahead by an opposing piece
	b.SetSquare(3, 2, Piece{Kind: Knight, Color: Black})
	if got := EvaluateMove(&b, sq(t, "c3"), sq(t, "c4"), White); got.Legal() {
		t.Fatalf("pawn captured straight ahead")
	}
}

func TestEvaluateMove_PawnOnLastRankIsStuck(t *testing.T) {
	b := mustBoard(t,
		"p-------",
		"--------",
		"--------",
		"--------",
		"--------",
		"--------",
		"--------",
		"--------",
	)
	for _, to := range []string{"a7", "b8", "b7"} {
		if got := EvaluateMove(&b, sq(t, "a8"), sq(t, to), White); got.Legal() {
			t.Fatalf("pawn on a8 moved to %s", to)
		}
	}
}

func TestEvaluateMove_DoubleStepRules(t *testing.T) {
	b := NewBoard()
	b.SetSquare(2, 0, Piece{Kind: Knight, Color: White}) // a3 occupied
	from, to := sq(t, "a2"), sq(t, "a4")

	if got := EvaluateMoveWithRule(&b, from, to, White, DoubleStepStrict); got.Legal() {
		t.Fatalf("strict: pawn jumped over a3")
	}
	if got := EvaluateMoveWithRule(&b, from, to, White, DoubleStepLenient); got.Kind != Quiet {
		t.Fatalf("lenient: a2-a4 = %s, want quiet", got.Kind)
	}

	b.SetSquare(3, 0, Piece{Kind: Pawn, Color: Black}) // a4 occupied
	if got := EvaluateMoveWithRule(&b, from, to, White, DoubleStepLenient); got.Legal() {
		t.Fatalf("lenient: double step onto occupied square")
	}

	// double step only from the home row
	b = NewBoard()
	b.SetSquare(1, 4, NoPiece)
	b.SetSquare(2, 4, Piece{Kind: Pawn, Color: White})
	if got := EvaluateMove(&b, sq(t, "e3"), sq(t, "e5"), White); got.Legal() {
		t.Fatalf("double step from e3 accepted")
	}
}

func TestParseDoubleStepRule(t *testing.T) {
	for in, want := range map[string]DoubleStepRule{"": DoubleStepStrict, "strict": DoubleStepStrict, "lenient": DoubleStepLenient} {
		got, ok := ParseDoubleStepRule(in)
		if !ok || got != want {
			t.Errorf("ParseDoubleStepRule(%q) = %s, %v", in, got, ok)
		}
	}
	if _, ok := ParseDoubleStepRule("loose"); ok {
		t.Errorf("ParseDoubleStepRule accepted unknown value")
	}
}
