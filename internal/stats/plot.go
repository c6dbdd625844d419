package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisSeparator       = " │ "
	axisLabelWidth      = 6
	terminalWidthBackup = 80
)

var blockLevels = []rune(" ▁▂▃▄▅▆▇█")

// PlotWeights renders a column chart of values scaled between their minimum
// and maximum. A non-positive width uses the terminal width.
func PlotWeights(w io.Writer, title string, values []float64, width, height int) error {
	if len(values) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	cols := resample(values, width)
	lo, hi := bounds(cols)
	if math.Abs(hi-lo) < 1e-9 {
		lo--
		hi++
	}
	steps := len(blockLevels) - 1
	levels := make([]int, len(cols))
	for i, v := range cols {
		levels[i] = int(math.Round((v - lo) / (hi - lo) * float64(height*steps)))
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = fmt.Sprintf("%.1f", hi)
		case height - 1:
			label = fmt.Sprintf("%.1f", lo)
		}
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisLabelWidth, label, axisSeparator))
		floor := (height - 1 - y) * steps
		for _, level := range levels {
			fill := max(0, min(level-floor, steps))
			row.WriteRune(blockLevels[fill])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// PlotWidthFor computes a chart width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisLabelWidth-runewidth.StringWidth(axisSeparator), minPlotWidth)
}

// resample stretches or averages values into exactly width columns. Short
// series are not stretched.
func resample(values []float64, width int) []float64 {
	if len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := max((i+1)*len(values)/width, start+1)
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
