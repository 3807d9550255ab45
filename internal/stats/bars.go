package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// Bar is one labeled row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	Text  string
}

const (
	minBarWidth         = 10
	terminalWidthBackup = 80
	barGap              = 2
)

var partialBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// RenderBars writes a horizontal bar chart. A width of 0 sizes the chart to the terminal.
func RenderBars(w io.Writer, title string, bars []Bar, width int) error {
	if len(bars) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	labelWidth, textWidth := 0, 0
	maxVal := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, displayWidth(b.Label))
		textWidth = max(textWidth, displayWidth(b.Text))
		maxVal = math.Max(maxVal, b.Value)
	}
	barWidth := width - labelWidth - textWidth - 2*barGap
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	gap := strings.Repeat(" ", barGap)
	for _, b := range bars {
		line := padCell(b.Label, labelWidth, false) + gap + renderBar(b.Value, maxVal, barWidth) + gap + b.Text
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderBar(value, maxVal float64, width int) string {
	if maxVal <= 0 || value <= 0 {
		return strings.Repeat(" ", width)
	}
	eighths := int(math.Round(value / maxVal * float64(width*8)))
	full := eighths / 8
	rest := eighths % 8
	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))
	used := full
	if rest > 0 && used < width {
		b.WriteRune(partialBlocks[rest])
		used++
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
