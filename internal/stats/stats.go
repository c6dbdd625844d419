// Package stats contains weight history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/fitlife/internal/format"
	"github.com/verte-zerg/fitlife/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Weights extracts the weight series from history entries.
func Weights(entries []model.WeightEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Weight
	}
	return out
}

// Summarize condenses an ordered history. Change is latest minus first, so
// a loss is negative.
func Summarize(entries []model.WeightEntry) model.HistorySummary {
	if len(entries) == 0 {
		return model.HistorySummary{}
	}
	s := model.HistorySummary{
		Entries: len(entries),
		First:   entries[0].Weight,
		Latest:  entries[len(entries)-1].Weight,
		Min:     entries[0].Weight,
		Max:     entries[0].Weight,
	}
	for _, e := range entries[1:] {
		s.Min = math.Min(s.Min, e.Weight)
		s.Max = math.Max(s.Max, e.Weight)
	}
	s.Change = s.Latest - s.First
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := bounds(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(last)))
		idx = max(0, min(idx, last))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// RenderSummary prints the summary block for a history.
func RenderSummary(w io.Writer, s model.HistorySummary) error {
	if s.Entries == 0 {
		_, err := fmt.Fprintln(w, "Nenhum registro de peso.")
		return err
	}
	lines := []string{
		"Resumo",
		fmt.Sprintf("Registros: %d", s.Entries),
		fmt.Sprintf("Inicial: %s kg", format.Number(s.First, 1)),
		fmt.Sprintf("Atual: %s kg", format.Number(s.Latest, 1)),
		fmt.Sprintf("Mínimo: %s kg", format.Number(s.Min, 1)),
		fmt.Sprintf("Máximo: %s kg", format.Number(s.Max, 1)),
		fmt.Sprintf("Variação: %+.1f kg", s.Change),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistoryTable prints the entries as an aligned table with the
// difference to the previous weigh-in.
func RenderHistoryTable(w io.Writer, entries []model.WeightEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum registro de peso.")
		return err
	}
	headers, rows := HistoryRows(entries)
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryRows builds the date, weight and delta cells for each entry.
func HistoryRows(entries []model.WeightEntry) ([]string, [][]string) {
	headers := []string{"Data", "Peso (kg)", "Variação"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		delta := "-"
		if i > 0 {
			delta = fmt.Sprintf("%+.1f", e.Weight-entries[i-1].Weight)
		}
		rows = append(rows, []string{format.Date(e.Date), format.Number(e.Weight, 1), delta})
	}
	return headers, rows
}
