package api

import (
	"context"
	"fmt"

	"github.com/verte-zerg/fitlife/internal/model"
)

// FetchProgress loads the current progress snapshot. Errors are returned to
// the caller.
func (c *Client) FetchProgress(ctx context.Context) (model.ProgressSnapshot, error) {
	var snap model.ProgressSnapshot
	if err := c.Request(ctx, ProgressEndpoint, "", nil, &snap); err != nil {
		return model.ProgressSnapshot{}, fmt.Errorf("failed to fetch progress: %w", err)
	}
	return snap, nil
}

// FetchWeightHistory loads the weight history. Any failure is logged and
// yields an empty history instead of an error.
func (c *Client) FetchWeightHistory(ctx context.Context) []model.WeightEntry {
	var history []model.WeightEntry
	if err := c.Request(ctx, HistoryEndpoint, "", nil, &history); err != nil {
		c.log.WithError(err).Error("Erro ao carregar histórico")
		return []model.WeightEntry{}
	}
	if history == nil {
		return []model.WeightEntry{}
	}
	return history
}
