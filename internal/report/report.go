// Package report renders missing-value counts as a horizontal bar chart for
// the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// DefaultTopN is how many columns a chart shows by default.
const DefaultTopN = 30

// DefaultWidth is the length of the longest bar in cells.
const DefaultWidth = 40

// Bar is one chart row.
type Bar struct {
	Column string
	Count  int
}

// TopMissing returns the n columns with the most missing values, highest
// first, ties broken by name. n <= 0 selects DefaultTopN.
func TopMissing(counts map[string]int, n int) []Bar {
	if n <= 0 {
		n = DefaultTopN
	}
	bars := make([]Bar, 0, len(counts))
	for c, k := range counts {
		bars = append(bars, Bar{Column: c, Count: k})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Count != bars[j].Count {
			return bars[i].Count > bars[j].Count
		}
		return bars[i].Column < bars[j].Column
	})
	if len(bars) > n {
		bars = bars[:n]
	}
	return bars
}

// Options tunes Render.
type Options struct {
	// Width of the longest bar; DefaultWidth when <= 0.
	Width int
}

// Render writes title and one line per bar: the column name, a bar scaled to
// the largest count, and the count with thousands separators. Color is used
// only when w is a terminal.
func Render(w io.Writer, title string, bars []Bar, opt Options) error {
	width := opt.Width
	if width <= 0 {
		width = DefaultWidth
	}
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).Underline(true)
	nameStyle := r.NewStyle().Foreground(lipgloss.Color("245"))
	barStyle := r.NewStyle().Foreground(lipgloss.Color("203"))
	countStyle := r.NewStyle().Bold(true)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteByte('\n')
	if len(bars) == 0 {
		sb.WriteString(nameStyle.Render("no missing values"))
		sb.WriteByte('\n')
		_, err := io.WriteString(w, sb.String())
		return err
	}

	nameWidth, max := 0, 0
	for _, b := range bars {
		if n := lipgloss.Width(b.Column); n > nameWidth {
			nameWidth = n
		}
		if b.Count > max {
			max = b.Count
		}
	}
	for _, b := range bars {
		sb.WriteString(nameStyle.Width(nameWidth + 1).Render(b.Column))
		sb.WriteString(barStyle.Render(strings.Repeat("█", scale(b.Count, max, width))))
		sb.WriteByte(' ')
		sb.WriteString(countStyle.Render(humanize.Comma(int64(b.Count))))
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// scale maps count onto [1, width]; a non-zero count always gets one cell.
func scale(count, max, width int) int {
	if count <= 0 || max <= 0 {
		return 0
	}
	n := count * width / max
	if n < 1 {
		n = 1
	}
	return n
}
