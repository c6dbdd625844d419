package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/verte-zerg/fitlife/internal/model"
	"github.com/verte-zerg/fitlife/internal/validate"
)

// AddWeight records a weigh-in. An empty date lets the server use today;
// an existing entry for the same date is replaced server-side.
func (c *Client) AddWeight(ctx context.Context, in model.WeightInput) (model.Ack, error) {
	return c.post(ctx, AddWeightEndpoint, in)
}

// DeleteWeight removes the weigh-in recorded on date (YYYY-MM-DD).
func (c *Client) DeleteWeight(ctx context.Context, date string) (model.Ack, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return model.Ack{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	var ack model.Ack
	if err := c.Request(ctx, DeleteWeightEndpoint+url.PathEscape(date), http.MethodDelete, nil, &ack); err != nil {
		return model.Ack{}, err
	}
	return ack, nil
}

// SaveProfile stores the user profile.
func (c *Client) SaveProfile(ctx context.Context, p model.Profile) (model.Ack, error) {
	return c.post(ctx, SaveProfileEndpoint, p)
}

// CalculateIMC asks the server for the BMI and its classification.
func (c *Client) CalculateIMC(ctx context.Context, in model.BMIInput) (model.BMIResult, error) {
	var out model.BMIResult
	err := c.postInto(ctx, CalcIMCEndpoint, in, &out)
	return out, err
}

// CalculateTMB asks the server for basal metabolic rate and TDEE.
func (c *Client) CalculateTMB(ctx context.Context, in model.EnergyInput) (model.EnergyResult, error) {
	var out model.EnergyResult
	err := c.postInto(ctx, CalcTMBEndpoint, in, &out)
	return out, err
}

// CalculateDeficit asks the server for the daily calorie target.
func (c *Client) CalculateDeficit(ctx context.Context, in model.EnergyInput) (model.DeficitResult, error) {
	var out model.DeficitResult
	err := c.postInto(ctx, CalcDeficitEndpoint, in, &out)
	return out, err
}

// CalculateIdealWeight asks the server for ideal weight estimates.
func (c *Client) CalculateIdealWeight(ctx context.Context, in model.IdealWeightInput) (model.IdealWeightResult, error) {
	var out model.IdealWeightResult
	err := c.postInto(ctx, CalcIdealEndpoint, in, &out)
	return out, err
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) (model.Ack, error) {
	var ack model.Ack
	if err := c.postInto(ctx, endpoint, payload, &ack); err != nil {
		return model.Ack{}, err
	}
	return ack, nil
}

func (c *Client) postInto(ctx context.Context, endpoint string, payload, out any) error {
	if err := validate.Payload(payload); err != nil {
		return err
	}
	return c.Request(ctx, endpoint, http.MethodPost, payload, out)
}
