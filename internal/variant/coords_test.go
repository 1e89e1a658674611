package variant

import (
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	cases := []struct {
		in      string
		want    Coord
		wantErr error
	}{
		{in: "a1", want: Coord{Row: 0, Col: 0}},
		{in: "h8", want: Coord{Row: 7, Col: 7}},
		{in: "e2", want: Coord{Row: 1, Col: 4}},
		{in: "d5", want: Coord{Row: 4, Col: 3}},
		{in: "i9", wantErr: ErrOffBoard},
		{in: "a0", wantErr: ErrOffBoard},
		{in: "a9", wantErr: ErrOffBoard},
		{in: "z1", wantErr: ErrOffBoard},
		{in: "", wantErr: ErrMalformedSquare},
		{in: "e", wantErr: ErrMalformedSquare},
		{in: "e22", wantErr: ErrMalformedSquare},
		{in: "E2", wantErr: ErrMalformedSquare},
		{in: "2e", wantErr: ErrMalformedSquare},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseSquare(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("ParseSquare(%q) err = %v, want %v", c.in, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("ParseSquare(%q) = %+v, want %+v", c.in, got, c.want)
			}
			if got.String() != c.in {
				t.Fatalf("String() = %q, want %q", got.String(), c.in)
			}
		})
	}
}
