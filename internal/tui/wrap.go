package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/scramble/internal/engine"
)

const wordGap = "   "

// wrapWords lays out used words as "word (n)" entries, filling each line up
// to width display cells. An entry wider than width gets a line of its own.
func wrapWords(words []string, width int) []string {
	if len(words) == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}
	gapWidth := runewidth.StringWidth(wordGap)

	var lines []string
	var b strings.Builder
	lineWidth := 0
	for _, w := range words {
		entry := fmt.Sprintf("%s (%d)", w, engine.Letters(w))
		entryWidth := runewidth.StringWidth(entry)
		if lineWidth > 0 && lineWidth+gapWidth+entryWidth > width {
			lines = append(lines, b.String())
			b.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			b.WriteString(wordGap)
			lineWidth += gapWidth
		}
		b.WriteString(entry)
		lineWidth += entryWidth
	}
	if lineWidth > 0 {
		lines = append(lines, b.String())
	}
	return lines
}
