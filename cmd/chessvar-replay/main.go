// Command chessvar-replay plays a move list through the engine and prints
// each verdict, the final board and the capture tallies.
//
//	chessvar-replay [-lenient] a2 a4 b7 b5 ...
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/park285/chessvar/internal/render"
	"github.com/park285/chessvar/internal/variant"
)

func main() {
	lenient := flag.Bool("lenient", false, "let pawns double-step over an occupied square")
	flag.Parse()
	os.Exit(run(os.Stdout, flag.Args(), *lenient))
}

func run(w io.Writer, args []string, lenient bool) int {
	if len(args)%2 != 0 {
		fmt.Fprintln(w, "usage: chessvar-replay [-lenient] FROM TO [FROM TO ...]")
		return 2
	}
	rule := variant.DoubleStepStrict
	if lenient {
		rule = variant.DoubleStepLenient
	}
	s := variant.NewGame(variant.WithDoubleStepRule(rule))

	rejected := 0
	for i := 0; i < len(args); i += 2 {
		mover := s.ActiveColor()
		out, err := s.Move(args[i], args[i+1])
		switch {
		case err != nil:
			rejected++
			fmt.Fprintf(w, "%-6s %s-%s  rejected: %v\n", mover, args[i], args[i+1], err)
		case out.Kind == variant.Capture:
			fmt.Fprintf(w, "%-6s %sx%s  takes %s\n", mover, args[i], args[i+1], out.Captured)
		default:
			fmt.Fprintf(w, "%-6s %s-%s\n", mover, args[i], args[i+1])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, render.LabeledText(s.Board()))
	fmt.Fprintf(w, "\nstate: %s", s.State())
	if s.State().Terminal() {
		fmt.Fprintf(w, " (all %ss captured)", s.DecidingKind())
	} else {
		fmt.Fprintf(w, ", %s to move", s.ActiveColor())
	}
	fmt.Fprintln(w)
	for _, c := range []variant.Color{variant.White, variant.Black} {
		fmt.Fprintf(w, "%s lost:", c)
		for _, k := range variant.Kinds {
			fmt.Fprintf(w, " %s=%d", k, s.CapturedCount(c, k))
		}
		fmt.Fprintln(w)
	}
	if rejected > 0 {
		return 1
	}
	return 0
}
