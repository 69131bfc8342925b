// Package stats renders end-of-session summaries.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/scramble/internal/engine"
	"github.com/verte-zerg/scramble/internal/model"
	"github.com/verte-zerg/scramble/internal/session"
)

// LengthCount is the number of accepted words of one length.
type LengthCount struct {
	Length  int
	Words   int
	Letters int
}

// LengthCounts groups words by letter count, longest first.
func LengthCounts(words []string) []LengthCount {
	byLen := map[int]int{}
	for _, w := range words {
		byLen[engine.Letters(w)]++
	}
	out := make([]LengthCount, 0, len(byLen))
	for length, n := range byLen {
		out = append(out, LengthCount{Length: length, Words: n, Letters: length * n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Length > out[j].Length
	})
	return out
}

// Longest returns the longest word, preferring the earliest accepted on ties.
func Longest(used []string) string {
	best := ""
	// used is most-recent-first, so walk it backwards.
	for i := len(used) - 1; i >= 0; i-- {
		if engine.Letters(used[i]) > engine.Letters(best) {
			best = used[i]
		}
	}
	return best
}

// RenderSummary prints the score and a per-length table for a session.
func RenderSummary(w io.Writer, snap session.Snapshot) error {
	if snap.State != session.Active {
		_, err := fmt.Fprintln(w, "No game played.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Root word: %s\n", snap.Root); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words: %d\n", snap.Score.Words); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Letters: %d\n", snap.Score.Letters); err != nil {
		return err
	}
	if len(snap.Used) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Longest: %s\n", Longest(snap.Used)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	headers := []string{"Length", "Words", "Letters"}
	counts := LengthCounts(snap.Used)
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.Length),
			fmt.Sprintf("%d", c.Words),
			fmt.Sprintf("%d", c.Letters),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLangs prints one row per lexicon language.
func RenderLangs(w io.Writer, langs []model.LangSummary) error {
	headers := []string{"Lang", "Dictionary", "Roots"}
	rows := make([][]string, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, []string{
			l.Lang,
			fmt.Sprintf("%d", l.Dictionary),
			fmt.Sprintf("%d", l.Roots),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
