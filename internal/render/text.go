package render

import (
	"strings"

	"github.com/park285/chessvar/internal/variant"
)

// Text prints the board rank 8 first, one rank per line, with white pieces
// in lowercase, black in uppercase and '-' for empty squares.
func Text(b variant.Board) string {
	return strings.Join(b.Rows(), "\n") + "\n"
}

// LabeledText is Text with rank numbers on the left and files underneath.
func LabeledText(b variant.Board) string {
	var sb strings.Builder
	for i, row := range b.Rows() {
		sb.WriteByte(byte('0' + variant.Size - i))
		sb.WriteByte(' ')
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
