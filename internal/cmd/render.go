package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"fsindex/internal/index"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	emptyColor  = color.New(color.FgYellow)
	timingColor = color.New(color.Faint)
)

// measure runs fn and reports its wall-clock time.
func measure[T any](w io.Writer, fn func() T) T {
	start := time.Now()
	result := fn()
	elapsed := time.Since(start)
	timingColor.Fprintf(w, "Time taken: %.4f ms\n", float64(elapsed.Nanoseconds())/1e6)
	return result
}

func printHeader(w io.Writer, format string, args ...interface{}) {
	headerColor.Fprintf(w, format+"\n", args...)
}

func printMatches(w io.Writer, title string, matches []index.Match) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(matches) == 0 {
		emptyColor.Fprintln(w, "  (no matches)")
		return
	}
	for _, m := range matches {
		fmt.Fprintf(w, "  - %s\n", m)
	}
}

func printShortest(w io.Writer, sp index.ShortestPath, ok bool) {
	if !ok {
		emptyColor.Fprintln(w, "No path found")
		return
	}
	fmt.Fprintf(w, "%s (%d hops)\n", sp.Path, sp.Hops)
}
