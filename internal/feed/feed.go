// Package feed renders user activity as display lines.
package feed

import (
	"bufio" // Buffered output
	"fmt"   // Line formatting
	"io"    // Output sink
	"iter"  // Lazy line sequence

	"minivenmo/internal/domain" // Activities
)

// Line renders a single activity.
func Line(a domain.Activity) string {
	switch a := a.(type) {
	case *domain.Payment:
		line := fmt.Sprintf("%s paid %s $%s", a.Payer().Username(), a.Payee().Username(), a.Amount().StringFixed(2))
		if a.Note() != "" {
			line += " for " + a.Note() // Only when a note was given
		}
		return line
	case *domain.Friendship:
		return fmt.Sprintf("%s befriended %s", a.Initiator().Username(), a.Target().Username())
	default:
		panic(fmt.Sprintf("feed: unknown activity %T", a)) // Activity is sealed
	}
}

// Lines yields the display line of each activity in order. The sequence can
// be ranged over any number of times.
func Lines(activities []domain.Activity) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, a := range activities {
			if !yield(Line(a)) {
				return // Consumer stopped early
			}
		}
	}
}

// Render writes each line to w on its own line.
func Render(w io.Writer, lines iter.Seq[string]) error {
	bw := bufio.NewWriter(w)
	for line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Collect renders activities into a slice.
func Collect(activities []domain.Activity) []string {
	out := make([]string, 0, len(activities))
	for line := range Lines(activities) {
		out = append(out, line)
	}
	return out
}
