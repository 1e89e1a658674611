package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/park285/chessvar/internal/variant"
)

// MoveHighlight marks the last move.
type MoveHighlight struct {
	From variant.Coord
	To   variant.Coord
}

type RenderOptions struct {
	Highlight *MoveHighlight
	// Flip draws the board from Black's side.
	Flip     bool
	Title    string
	Turn     string
	Captured variant.Tally
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, board variant.Board, opts RenderOptions) ([]byte, error)
}

type svgBoardRenderer struct {
	squareSize int
	face       font.Face
}

// NewSVGBoardRenderer rasterizes the embedded SVG pieces onto a PNG.
func NewSVGBoardRenderer() BoardRenderer {
	return &svgBoardRenderer{squareSize: 64, face: basicfont.Face7x13}
}

const (
	sideMargin     = 28
	topMargin      = 84
	bottomMargin   = 28
	titleHeight    = 30
	turnHeight     = 24
	gapBetween     = 8
	gapToBoard     = 14
	panelRadius    = 8
	panelPaddingX  = 16
	titleMinWidth  = 220
	scoreMinWidth  = 96
	turnMinWidth   = 120
	shadowOffsetY  = 4
	boardShadowOff = 6
)

func (r *svgBoardRenderer) RenderPNG(ctx context.Context, board variant.Board, opts RenderOptions) ([]byte, error) {
	sq := r.squareSize
	boardSize := sq * variant.Size
	totalWidth := boardSize + sideMargin*2
	totalHeight := boardSize + topMargin + bottomMargin
	origin := image.Point{X: sideMargin, Y: topMargin}
	boardRect := image.Rect(origin.X, origin.Y, origin.X+boardSize, origin.Y+boardSize)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	geo := geometry{square: sq, origin: origin, flip: opts.Flip}
	r.drawHUD(img, opts, boardRect)
	drawBoardShadow(img, boardRect)
	drawSquares(img, geo)
	if err := drawPieces(ctx, img, &board, geo); err != nil {
		return nil, err
	}
	drawHighlight(img, &board, opts.Highlight, geo)
	r.drawCoordinates(img, geo)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	backgroundColor          = color.RGBA{22, 24, 34, 255}
	lightSquare              = color.RGBA{233, 207, 163, 255}
	darkSquare               = color.RGBA{187, 136, 96, 255}
	whiteMoveHighlightFill   = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	blackMoveHighlightArrow  = color.NRGBA{R: 148, G: 207, B: 255, A: 170}
	neutralMoveHighlightFill = color.NRGBA{R: 182, G: 184, B: 190, A: 140}
	hudPanelColor            = color.NRGBA{R: 28, G: 31, B: 46, A: 250}
	hudTurnPanelColor        = color.NRGBA{R: 32, G: 35, B: 52, A: 245}
	hudShadowColor           = color.NRGBA{0, 0, 0, 50}
	hudTextPrimary           = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	hudTurnTextColor         = color.NRGBA{R: 204, G: 210, B: 236, A: 255}
	boardShadowColor         = color.NRGBA{0, 0, 0, 60}
	coordinateTextColor      = color.NRGBA{R: 8, G: 214, B: 120, A: 255}
)

// geometry maps board coordinates to pixels.
type geometry struct {
	square int
	origin image.Point
	flip   bool
}

func (g geometry) rect(c variant.Coord) image.Rectangle {
	row, col := variant.Size-1-c.Row, c.Col
	if g.flip {
		row, col = c.Row, variant.Size-1-c.Col
	}
	x := g.origin.X + col*g.square
	y := g.origin.Y + row*g.square
	return image.Rect(x, y, x+g.square, y+g.square)
}

func (g geometry) center(c variant.Coord) image.Point {
	r := g.rect(c)
	return image.Point{X: r.Min.X + g.square/2, Y: r.Min.Y + g.square/2}
}

func drawBoardShadow(img *image.RGBA, boardRect image.Rectangle) {
	shadow := image.Rect(boardRect.Min.X+4, boardRect.Min.Y+boardShadowOff, boardRect.Max.X+boardShadowOff, boardRect.Max.Y+boardShadowOff+2)
	imagedraw.Draw(img, shadow, image.NewUniform(boardShadowColor), image.Point{}, imagedraw.Over)
}

func drawSquares(dst imagedraw.Image, g geometry) {
	for row := 0; row < variant.Size; row++ {
		for col := 0; col < variant.Size; col++ {
			c := variant.Coord{Row: row, Col: col}
			imagedraw.Draw(dst, g.rect(c), image.NewUniform(squareColor(c)), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(ctx context.Context, dst imagedraw.Image, board *variant.Board, g geometry) error {
	for row := 0; row < variant.Size; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := 0; col < variant.Size; col++ {
			piece := board.SquareAt(row, col)
			if piece.IsEmpty() {
				continue
			}
			img, err := renderPieceImage(piece, g.square)
			if err != nil {
				return err
			}
			imagedraw.Draw(dst, g.rect(variant.Coord{Row: row, Col: col}), img, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

// drawHighlight fills both squares for a white move and draws an arrow for
// a black one. Without a piece on either square only the squares are tinted.
func drawHighlight(img *image.RGBA, board *variant.Board, h *MoveHighlight, g geometry) {
	if h == nil || !h.From.OnBoard() || !h.To.OnBoard() {
		return
	}
	mover, ok := highlightMover(board, h)
	switch {
	case ok && mover == variant.Black:
		drawArrow(img, g.center(h.From), g.center(h.To), g.square, blackMoveHighlightArrow)
	case ok && mover == variant.White:
		drawSquareOverlay(img, g.rect(h.From), whiteMoveHighlightFill)
		drawSquareOverlay(img, g.rect(h.To), whiteMoveHighlightFill)
	default:
		drawSquareOverlay(img, g.rect(h.From), neutralMoveHighlightFill)
		drawSquareOverlay(img, g.rect(h.To), neutralMoveHighlightFill)
	}
}

func highlightMover(board *variant.Board, h *MoveHighlight) (variant.Color, bool) {
	if p := board.SquareAt(h.To.Row, h.To.Col); !p.IsEmpty() {
		return p.Color, true
	}
	if p := board.SquareAt(h.From.Row, h.From.Col); !p.IsEmpty() {
		return p.Color, true
	}
	return variant.White, false
}

func (r *svgBoardRenderer) drawHUD(img *image.RGBA, opts RenderOptions, boardRect image.Rectangle) {
	drawer := &font.Drawer{Dst: img, Face: r.face}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "White vs Black"
	}
	turn := strings.TrimSpace(opts.Turn)
	if turn == "" {
		turn = "Turn"
	}
	score := formatCaptures(opts.Captured)

	turnBottom := boardRect.Min.Y - gapToBoard
	turnTop := turnBottom - turnHeight
	titleBottom := turnTop - gapBetween
	titleTop := titleBottom - titleHeight

	titleWidth := maxInt(titleMinWidth, drawer.MeasureString(title).Round()+panelPaddingX*2)
	scoreWidth := maxInt(scoreMinWidth, drawer.MeasureString(score).Round()+panelPaddingX*2)
	turnWidth := maxInt(turnMinWidth, drawer.MeasureString(turn).Round()+panelPaddingX*2)
	if limit := boardRect.Dx() - scoreWidth - 16; titleWidth > limit {
		titleWidth = maxInt(limit, titleMinWidth)
	}
	if limit := boardRect.Dx() - scoreWidth - 16; turnWidth > limit {
		turnWidth = limit
	}

	titleRect := image.Rect(boardRect.Min.X, titleTop, boardRect.Min.X+titleWidth, titleBottom)
	scoreRect := image.Rect(boardRect.Max.X-scoreWidth, titleTop, boardRect.Max.X, titleBottom)
	turnRect := image.Rect(boardRect.Min.X, turnTop, boardRect.Min.X+turnWidth, turnBottom)

	for _, rect := range []image.Rectangle{titleRect, scoreRect, turnRect} {
		drawRoundedPanel(img, rect.Add(image.Pt(0, shadowOffsetY)), panelRadius, hudShadowColor)
	}
	drawRoundedPanel(img, titleRect, panelRadius, hudPanelColor)
	drawRoundedPanel(img, scoreRect, panelRadius, hudPanelColor)
	drawRoundedPanel(img, turnRect, panelRadius, hudTurnPanelColor)

	title = truncateWithEllipsis(r.face, title, titleRect.Dx()-panelPaddingX*2)
	turn = truncateWithEllipsis(r.face, turn, turnRect.Dx()-panelPaddingX*2)
	drawCenteredString(drawer, titleRect, title, hudTextPrimary)
	drawCenteredString(drawer, scoreRect, score, hudTextPrimary)
	drawCenteredString(drawer, turnRect, turn, hudTurnTextColor)
}

// formatCaptures shows how many pieces each side has taken, e.g. "W 3 : B 1".
func formatCaptures(t variant.Tally) string {
	var byWhite, byBlack int
	for _, k := range variant.Kinds {
		byWhite += t.Get(variant.Black, k)
		byBlack += t.Get(variant.White, k)
	}
	return fmt.Sprintf("W %d : B %d", byWhite, byBlack)
}

func (r *svgBoardRenderer) drawCoordinates(dst imagedraw.Image, g geometry) {
	drawer := &font.Drawer{Dst: dst, Face: r.face, Src: image.NewUniform(coordinateTextColor)}
	ascent := r.face.Metrics().Ascent.Ceil()
	for i := 0; i < variant.Size; i++ {
		rank := g.center(variant.Coord{Row: i, Col: 0})
		drawCenteredText(drawer, string(rune('1'+i)), g.origin.X-sideMargin/2, rank.Y+ascent/2)

		file := g.center(variant.Coord{Row: 0, Col: i})
		drawCenteredText(drawer, string(rune('a'+i)), file.X, g.origin.Y+g.square*variant.Size+ascent+4)
	}
}

func squareColor(c variant.Coord) color.Color {
	if (c.Row+c.Col)%2 == 0 {
		return darkSquare
	}
	return lightSquare
}
