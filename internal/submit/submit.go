// Package submit implements the duplicate-submission guard and the busy
// state of submit buttons.
package submit

import (
	"sync"
	"time"

	"github.com/verte-zerg/fitlife/internal/schedule"
)

// Default windows.
const (
	GuardWindow   = 2 * time.Second
	ButtonRevert  = 3 * time.Second
	BusyLabel     = "Processando..."
	FallbackLabel = "Enviar"
)

// Guard suppresses submissions for a fixed window after an allowed one.
// It is shared by every form and does not track which form submitted.
// The reset timer is never cancelled, so it is the only thing that clears
// the flag and at most one is pending at a time.
type Guard struct {
	clock  schedule.Clock
	window time.Duration

	mu         sync.Mutex
	submitting bool
}

// NewGuard returns a guard with the given window.
func NewGuard(clock schedule.Clock, window time.Duration) *Guard {
	if clock == nil {
		clock = schedule.System()
	}
	if window <= 0 {
		window = GuardWindow
	}
	return &Guard{clock: clock, window: window}
}

// TryAcquire reports whether a submission may proceed. An allowed
// submission blocks further ones until the window elapses.
func (g *Guard) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitting {
		return false
	}
	g.submitting = true
	g.clock.AfterFunc(g.window, func() {
		g.mu.Lock()
		g.submitting = false
		g.mu.Unlock()
	})
	return true
}

// Submitting reports whether the guard is currently blocking.
func (g *Guard) Submitting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitting
}

// Button is the busy state of a submit control.
type Button struct {
	clock    schedule.Clock
	revert   time.Duration
	original string

	mu       sync.Mutex
	label    string
	disabled bool
}

// NewButton returns an enabled button showing label.
func NewButton(clock schedule.Clock, label string) *Button {
	if clock == nil {
		clock = schedule.System()
	}
	return &Button{clock: clock, revert: ButtonRevert, original: label, label: label}
}

// Press disables the button and shows the busy label. It reverts on its own
// after the revert delay whatever the outcome of the submission.
func (b *Button) Press() schedule.Task {
	b.mu.Lock()
	b.disabled = true
	b.label = BusyLabel
	b.mu.Unlock()
	return b.clock.AfterFunc(b.revert, b.restore)
}

func (b *Button) restore() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = false
	b.label = b.original
	if b.label == "" {
		b.label = FallbackLabel
	}
}

// Label returns the text currently shown.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// Disabled reports whether the button is in its busy state.
func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// Coordinator is handed to form code and owns the shared guard.
type Coordinator struct {
	clock schedule.Clock
	guard *Guard
}

// NewCoordinator returns a coordinator using the default windows.
func NewCoordinator(clock schedule.Clock) *Coordinator {
	if clock == nil {
		clock = schedule.System()
	}
	return &Coordinator{clock: clock, guard: NewGuard(clock, GuardWindow)}
}

// Guard returns the shared guard.
func (c *Coordinator) Guard() *Guard {
	return c.guard
}

// NewButton returns a button driven by the coordinator's clock.
func (c *Coordinator) NewButton(label string) *Button {
	return NewButton(c.clock, label)
}

// Submit handles a submit event from a form whose control is btn (nil when
// the form has none). The control always enters its busy state; the return
// value reports whether the submission may go ahead.
func (c *Coordinator) Submit(btn *Button) bool {
	if btn != nil {
		btn.Press()
	}
	return c.guard.TryAcquire()
}
