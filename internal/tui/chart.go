package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type BarRow struct {
	Label string
	Value float64
	// Text replaces the printed value when set.
	Text string
}

// RenderBars draws one horizontal bar per row, scaled to the largest value
// or to scale when it is larger.
func RenderBars(rows []BarRow, scale float64, width int) string {
	if width <= 0 {
		width = 30
	}
	for _, r := range rows {
		if r.Value > scale {
			scale = r.Value
		}
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = maxInt(labelWidth, lipgloss.Width(r.Label))
	}

	var b strings.Builder
	for _, r := range rows {
		n := 0
		if scale > 0 && r.Value > 0 {
			n = int(r.Value / scale * float64(width))
			n = maxInt(n, 1)
		}
		text := r.Text
		if text == "" {
			text = fmt.Sprintf("%g", r.Value)
		}
		fmt.Fprintf(&b, "%-*s %s%s %s\n",
			labelWidth, r.Label,
			barStyle.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", width-n),
			mutedStyle.Render(text))
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
