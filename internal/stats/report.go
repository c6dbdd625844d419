package stats

import (
	"context"

	"github.com/verte-zerg/fitlife/internal/model"
)

// HistorySource loads the weight history. It never fails; an unavailable
// history is empty.
type HistorySource interface {
	FetchWeightHistory(ctx context.Context) []model.WeightEntry
}

// Report contains precomputed data for history rendering.
type Report struct {
	Entries []model.WeightEntry
	Summary model.HistorySummary
	Trend   []float64
}

// BuildReport loads the history and prepares it for rendering. last limits
// the report to the most recent entries when positive.
func BuildReport(ctx context.Context, src HistorySource, last, trendWindow int) Report {
	entries := src.FetchWeightHistory(ctx)
	if last > 0 && len(entries) > last {
		entries = entries[len(entries)-last:]
	}
	return Report{
		Entries: entries,
		Summary: Summarize(entries),
		Trend:   MovingAverage(Weights(entries), trendWindow),
	}
}
