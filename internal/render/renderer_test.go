package render

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/park285/chessvar/internal/variant"
)

func TestRenderPNG_StartPosition(t *testing.T) {
	r := NewSVGBoardRenderer()
	data, err := r.RenderPNG(context.Background(), variant.NewBoard(), RenderOptions{Title: "alice vs bob", Turn: "white to move"})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 64*8+2*sideMargin || b.Dy() != 64*8+topMargin+bottomMargin {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestRenderPNG_FlipAndHighlightChangeImage(t *testing.T) {
	r := NewSVGBoardRenderer()
	s := variant.NewGame()
	if !s.MakeMove("e2", "e4") {
		t.Fatalf("e2-e4 rejected")
	}
	board := s.Board()
	ctx := context.Background()

	plain, err := r.RenderPNG(ctx, board, RenderOptions{})
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	flipped, err := r.RenderPNG(ctx, board, RenderOptions{Flip: true})
	if err != nil {
		t.Fatalf("flipped: %v", err)
	}
	hl := &MoveHighlight{From: variant.Coord{Row: 1, Col: 4}, To: variant.Coord{Row: 3, Col: 4}}
	highlighted, err := r.RenderPNG(ctx, board, RenderOptions{Highlight: hl})
	if err != nil {
		t.Fatalf("highlighted: %v", err)
	}
	if bytes.Equal(plain, flipped) {
		t.Fatalf("flip did not change the image")
	}
	if bytes.Equal(plain, highlighted) {
		t.Fatalf("highlight did not change the image")
	}
}

func TestRenderPNG_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSVGBoardRenderer().RenderPNG(ctx, variant.NewBoard(), RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderPieceImage_AllAssets(t *testing.T) {
	for _, c := range []variant.Color{variant.White, variant.Black} {
		for _, k := range variant.Kinds {
			p := variant.Piece{Kind: k, Color: c}
			img, err := renderPieceImage(p, 32)
			if err != nil {
				t.Fatalf("%s: %v", p, err)
			}
			if img.Bounds().Dx() != 32 {
				t.Fatalf("%s: size %v", p, img.Bounds())
			}
		}
	}
	if got := pieceAssetName(variant.Piece{Kind: variant.Knight, Color: variant.White}); got != "assets/pieces/wN.svg" {
		t.Fatalf("asset name = %s", got)
	}
}

func TestText(t *testing.T) {
	got := Text(variant.NewBoard())
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 8 || lines[0] != "RNBQKBNR" || lines[7] != "rnbqkbnr" || lines[3] != "--------" {
		t.Fatalf("Text =\n%s", got)
	}
	labeled := LabeledText(variant.NewBoard())
	if !strings.HasPrefix(labeled, "8 RNBQKBNR\n") || !strings.HasSuffix(labeled, "  abcdefgh\n") {
		t.Fatalf("LabeledText =\n%s", labeled)
	}
}

func TestFormatCaptures(t *testing.T) {
	var tl variant.Tally
	tl[variant.Black][variant.Pawn] = 3
	tl[variant.White][variant.Rook] = 1
	if got := formatCaptures(tl); got != "W 3 : B 1" {
		t.Fatalf("formatCaptures = %q", got)
	}
}
