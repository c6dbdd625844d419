package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is used when the configured poll interval is not positive.
const DefaultInterval = time.Minute

// Poller refreshes on a fixed interval, starting immediately.
type Poller struct {
	scheduler *gocron.Scheduler
	refresher *Refresher
	interval  time.Duration
	timeout   time.Duration
	log       logrus.FieldLogger
	onResult  func(error)
}

// NewPoller creates a Poller. onResult, when non-nil, is called after
// every refresh with its error.
func NewPoller(r *Refresher, interval, timeout time.Duration, onResult func(error)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		scheduler: gocron.NewScheduler(time.Local),
		refresher: r,
		interval:  interval,
		timeout:   timeout,
		log:       r.log,
		onResult:  onResult,
	}
}

// Start schedules the refresh job and starts the scheduler.
func (p *Poller) Start(ctx context.Context) error {
	_, err := p.scheduler.Every(p.interval).Do(func() {
		if ctx.Err() != nil {
			return
		}
		runCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
		_, err := p.refresher.Refresh(runCtx)
		if p.onResult != nil {
			p.onResult(err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	p.log.WithField("interval", p.interval.String()).Info("progress polling started")
	p.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler. Refreshes already running complete on their own.
func (p *Poller) Stop() {
	p.scheduler.Stop()
}
