// Package refresh pulls the progress snapshot from the API and writes it
// into display slots.
package refresh

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/fitlife/internal/display"
	"github.com/verte-zerg/fitlife/internal/model"
)

// ProgressSource fetches the current progress snapshot.
type ProgressSource interface {
	FetchProgress(ctx context.Context) (model.ProgressSnapshot, error)
}

// Apply writes snap into out. Each slot is written independently and
// missing values or slots are skipped. The progress bar is only set for a
// present, non-zero percentage.
func Apply(snap model.ProgressSnapshot, out display.Writer) {
	values := []struct {
		slot  display.Slot
		value *float64
	}{
		{display.SlotCurrentWeight, snap.CurrentWeight},
		{display.SlotWeightLost, snap.WeightLost},
		{display.SlotWeightRemaining, snap.WeightRemaining},
		{display.SlotPercentComplete, snap.PercentComplete},
	}
	for _, v := range values {
		if v.value == nil {
			continue
		}
		out.WriteDisplay(v.slot, *v.value)
	}
	if snap.PercentComplete != nil && *snap.PercentComplete != 0 {
		out.WriteDisplay(display.SlotProgressBar, *snap.PercentComplete)
	}
}

// Refresher fetches snapshots and applies them to a display. Concurrent
// refreshes are not coordinated: none cancels another and the last one to
// complete wins the display.
type Refresher struct {
	src ProgressSource
	out display.Writer
	log logrus.FieldLogger
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithLogger sets the diagnostic logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Refresher) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a Refresher writing snapshots from src into out.
func New(src ProgressSource, out display.Writer, opts ...Option) *Refresher {
	r := &Refresher{
		src: src,
		out: out,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh fetches one snapshot and applies it. On failure the display is
// left untouched and the error is logged and returned.
func (r *Refresher) Refresh(ctx context.Context) (model.ProgressSnapshot, error) {
	snap, err := r.src.FetchProgress(ctx)
	if err != nil {
		r.log.WithError(err).Error("Erro ao atualizar progresso")
		return model.ProgressSnapshot{}, err
	}
	Apply(snap, r.out)
	return snap, nil
}
