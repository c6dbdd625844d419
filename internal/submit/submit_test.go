package submit

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/verte-zerg/fitlife/internal/schedule"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newClock() *schedule.Manual {
	return schedule.NewManual(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
}

func TestGuardWindow(t *testing.T) {
	clock := newClock()
	g := NewGuard(clock, GuardWindow)

	if !g.TryAcquire() {
		t.Fatalf("first submit must be allowed")
	}
	clock.Advance(500 * time.Millisecond)
	if g.TryAcquire() {
		t.Fatalf("submit 500ms later must be suppressed")
	}
	clock.Advance(1600 * time.Millisecond)
	if !g.TryAcquire() {
		t.Fatalf("submit 2.1s later must be allowed")
	}
}

func TestGuardSuppressedAttemptDoesNotExtendWindow(t *testing.T) {
	clock := newClock()
	g := NewGuard(clock, GuardWindow)
	g.TryAcquire()
	clock.Advance(1900 * time.Millisecond)
	if g.TryAcquire() {
		t.Fatalf("expected suppression inside window")
	}
	clock.Advance(100 * time.Millisecond)
	if g.Submitting() {
		t.Fatalf("expected guard reset exactly at window end")
	}
}

func TestGuardEachWindowHasOwnReset(t *testing.T) {
	clock := newClock()
	g := NewGuard(clock, GuardWindow)
	g.TryAcquire()
	if clock.Pending() != 1 {
		t.Fatalf("expected one pending reset, got %d", clock.Pending())
	}
	if g.TryAcquire() {
		t.Fatalf("expected suppression inside window")
	}
	if clock.Pending() != 1 {
		t.Fatalf("suppressed attempt must not schedule a reset, got %d", clock.Pending())
	}

	clock.Advance(GuardWindow)
	if !g.TryAcquire() {
		t.Fatalf("expected submit after window")
	}
	clock.Advance(GuardWindow - time.Millisecond)
	if !g.Submitting() {
		t.Fatalf("second window cleared early")
	}
	clock.Advance(time.Millisecond)
	if g.Submitting() || clock.Pending() != 0 {
		t.Fatalf("expected second window to end on its own reset")
	}
}

func TestGuardDefaults(t *testing.T) {
	g := NewGuard(nil, 0)
	if g.window != GuardWindow {
		t.Fatalf("expected default window, got %v", g.window)
	}
	if !g.TryAcquire() {
		t.Fatalf("expected first submit")
	}
	if g.TryAcquire() {
		t.Fatalf("expected system clock window to suppress")
	}
}

func TestButtonRevertsAfterDelay(t *testing.T) {
	clock := newClock()
	b := NewButton(clock, "Registrar peso")
	b.Press()
	if !b.Disabled() || b.Label() != BusyLabel {
		t.Fatalf("expected busy button, got %q disabled=%v", b.Label(), b.Disabled())
	}
	clock.Advance(2999 * time.Millisecond)
	if !b.Disabled() {
		t.Fatalf("button reverted too early")
	}
	clock.Advance(time.Millisecond)
	if b.Disabled() || b.Label() != "Registrar peso" {
		t.Fatalf("expected original label, got %q disabled=%v", b.Label(), b.Disabled())
	}
}

func TestButtonFallbackLabel(t *testing.T) {
	clock := newClock()
	b := NewButton(clock, "")
	b.Press()
	clock.Advance(ButtonRevert)
	if b.Label() != FallbackLabel {
		t.Fatalf("expected fallback label, got %q", b.Label())
	}
}

func TestCoordinatorSharesGuardAcrossForms(t *testing.T) {
	clock := newClock()
	c := NewCoordinator(clock)
	weight := c.NewButton("Registrar")
	profile := c.NewButton("Salvar perfil")

	if !c.Submit(weight) {
		t.Fatalf("first submit must go ahead")
	}
	clock.Advance(500 * time.Millisecond)
	if c.Submit(profile) {
		t.Fatalf("another form inside the window must be suppressed")
	}
	if !profile.Disabled() {
		t.Fatalf("suppressed submit still shows the busy state")
	}
	clock.Advance(1600 * time.Millisecond)
	if !c.Submit(nil) {
		t.Fatalf("submit after the window must go ahead")
	}
	clock.Advance(ButtonRevert)
	if weight.Disabled() || profile.Disabled() {
		t.Fatalf("buttons must revert")
	}
}
