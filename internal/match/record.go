package match

import (
	"fmt"
	"strings"
)

func resultToken(outcome string) string {
	switch outcome {
	case "white":
		return "1-0"
	case "black":
		return "0-1"
	default:
		return "*"
	}
}

// BuildRecord renders the move list as numbered pairs followed by the
// result token, e.g. "1. e2-e3 f7-f6 2. d1-h5 a7-a6 3. h5xe8 1-0".
func BuildRecord(m *Match) string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(m.Moves); i += 2 {
		fmt.Fprintf(&b, "%d. %s", i/2+1, m.Moves[i].Notation())
		if i+1 < len(m.Moves) {
			b.WriteString(" ")
			b.WriteString(m.Moves[i+1].Notation())
		}
		b.WriteString(" ")
	}
	b.WriteString(resultToken(m.Outcome))
	return b.String()
}
