package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/verte-zerg/fitlife/internal/display"
	"github.com/verte-zerg/fitlife/internal/model"
	"github.com/verte-zerg/fitlife/internal/nav"
	"github.com/verte-zerg/fitlife/internal/schedule"
	"github.com/verte-zerg/fitlife/internal/submit"
)

type fakeBackend struct {
	mu       sync.Mutex
	snap     model.ProgressSnapshot
	err      error
	history  []model.WeightEntry
	added    []model.WeightInput
	addError error
}

func (b *fakeBackend) FetchProgress(context.Context) (model.ProgressSnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap, b.err
}

func (b *fakeBackend) FetchWeightHistory(context.Context) []model.WeightEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history
}

func (b *fakeBackend) AddWeight(_ context.Context, in model.WeightInput) (model.Ack, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.addError != nil {
		return model.Ack{}, b.addError
	}
	b.added = append(b.added, in)
	return model.Ack{Success: true, Message: "Peso adicionado com sucesso!"}, nil
}

func f64(v float64) *float64 {
	return &v
}

func newTestModel(t *testing.T, backend *fakeBackend, open string) (*Model, *schedule.Manual) {
	t.Helper()
	clock := schedule.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	logger, _ := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	m := NewModel(backend, Options{
		Open:        open,
		Coordinator: submit.NewCoordinator(clock),
		Logger:      logger,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, clock
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRefreshFillsProgressCards(t *testing.T) {
	backend := &fakeBackend{snap: model.ProgressSnapshot{
		CurrentWeight:   f64(80),
		WeightLost:      f64(5),
		WeightRemaining: f64(15),
		PercentComplete: f64(25),
	}}
	m, _ := newTestModel(t, backend, "")

	m.Update(m.refreshCmd()())

	if v, ok := m.Surface().Value(display.SlotProgressBar); !ok || v != 25 {
		t.Fatalf("expected bar at 25, got %v %v", v, ok)
	}
	out := m.renderProgress()
	if !containsAll(out, []string{"80.0 kg", "5.0 kg", "15.0 kg", "25.0%"}) {
		t.Fatalf("progress cards missing values: %s", out)
	}
}

func TestRefreshFailureKeepsPreviousValues(t *testing.T) {
	backend := &fakeBackend{snap: model.ProgressSnapshot{CurrentWeight: f64(80)}}
	m, _ := newTestModel(t, backend, "")
	m.Update(m.refreshCmd()())

	backend.mu.Lock()
	backend.err = errors.New("connection refused")
	backend.mu.Unlock()
	m.Update(m.refreshCmd()())

	if v, ok := m.Surface().Value(display.SlotCurrentWeight); !ok || v != 80 {
		t.Fatalf("expected previous weight to stay, got %v %v", v, ok)
	}
	if m.refreshErr == "" {
		t.Fatalf("expected refresh failure in footer")
	}
	if !strings.Contains(m.renderFooter(), m.refreshErr) {
		t.Fatalf("footer missing refresh failure: %s", m.renderFooter())
	}
}

func TestZeroPercentLeavesBarEmpty(t *testing.T) {
	backend := &fakeBackend{snap: model.ProgressSnapshot{PercentComplete: f64(0)}}
	m, _ := newTestModel(t, backend, "")
	m.Update(m.refreshCmd()())

	if _, ok := m.Surface().Value(display.SlotProgressBar); ok {
		t.Fatalf("expected bar to stay unset for zero percent")
	}
	if !strings.Contains(m.renderProgress(), "Sem progresso registrado.") {
		t.Fatalf("expected empty progress notice")
	}
}

func TestGoalReachedNotice(t *testing.T) {
	reached := true
	backend := &fakeBackend{snap: model.ProgressSnapshot{PercentComplete: f64(100), GoalReached: &reached}}
	m, _ := newTestModel(t, backend, "")
	m.Update(m.refreshCmd()())

	if !strings.Contains(m.renderProgress(), "Meta atingida!") {
		t.Fatalf("expected goal notice: %s", m.renderProgress())
	}
}

func TestOpenSelectsTab(t *testing.T) {
	cases := []struct {
		open string
		want int
	}{
		{"", tabProgress},
		{"#history", tabHistory},
		{"/add-weight", tabLog},
		{"/calculators", tabCalculators},
		{"/add-weight/", tabProgress},
		{"#missing", tabProgress},
	}
	for _, tc := range cases {
		m, _ := newTestModel(t, &fakeBackend{}, tc.open)
		if m.activeTab != tc.want {
			t.Fatalf("open %q: expected tab %d, got %d", tc.open, tc.want, m.activeTab)
		}
		if nav.Current(Links, m.path) != tc.want {
			t.Fatalf("open %q: path %q does not match tab", tc.open, m.path)
		}
	}
}

func TestMoveTabWraps(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "")
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabCalculators {
		t.Fatalf("expected wrap to last tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabProgress {
		t.Fatalf("expected wrap to first tab, got %d", m.activeTab)
	}
	m.Update(keyRunes("3"))
	if m.path != "/add-weight" {
		t.Fatalf("expected numeric shortcut to select log tab, got %q", m.path)
	}
}

func TestWeightFieldClampsOnBlur(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "/add-weight")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.editing {
		t.Fatalf("expected edit mode")
	}
	m.Update(keyRunes("15"))
	if v, _ := m.weightForm.ReadField(fieldWeight); v != "15" {
		t.Fatalf("expected raw value while typing, got %q", v)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if v, _ := m.weightForm.ReadField(fieldWeight); v != "30" {
		t.Fatalf("expected clamp to 30, got %q", v)
	}
}

func TestSubmitRequiresWeight(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "/add-weight")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.formErr == "" {
		t.Fatalf("expected validation error")
	}
	if !m.weightForm.invalid[fieldWeight] {
		t.Fatalf("expected weight field to be marked invalid")
	}
	if m.weightForm.invalid[fieldDate] {
		t.Fatalf("optional date must not be marked")
	}
	if m.coord.Guard().Submitting() {
		t.Fatalf("blocked submission must not take the guard")
	}
	if m.weightForm.button.Disabled() {
		t.Fatalf("blocked submission must not disable the button")
	}
}

func TestSubmitWeightGuardedAndBusy(t *testing.T) {
	backend := &fakeBackend{}
	m, clock := newTestModel(t, backend, "/add-weight")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.weightForm.setValue(fieldWeight, "500")
	m.weightForm.setValue(fieldDate, "2025-03-01")

	if cmd := m.submit(m.weightForm); cmd == nil {
		t.Fatalf("expected submit command")
	}
	if got := m.weightForm.button.Label(); got != submit.BusyLabel {
		t.Fatalf("expected busy label, got %q", got)
	}
	if v, _ := m.weightForm.ReadField(fieldWeight); v != "300" {
		t.Fatalf("expected clamp before submit, got %q", v)
	}

	clock.Advance(500 * time.Millisecond)
	m.submit(m.weightForm)
	if !strings.Contains(m.status, "aguarde") {
		t.Fatalf("expected suppressed submission notice, got %q", m.status)
	}

	clock.Advance(1600 * time.Millisecond)
	m.status = ""
	m.submit(m.weightForm)
	if m.status != "" {
		t.Fatalf("expected submission after window, got %q", m.status)
	}

	clock.Advance(3 * time.Second)
	if got := m.weightForm.button.Label(); got != "Registrar" {
		t.Fatalf("expected label restored, got %q", got)
	}
	if m.weightForm.button.Disabled() {
		t.Fatalf("expected button enabled again")
	}
}

func TestSubmitWeightSendsAndResets(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestModel(t, backend, "/add-weight")
	m.weightForm.setValue(fieldWeight, "72,5")
	m.weightForm.setValue(fieldDate, " 2025-03-01 ")

	cmd := m.submitWeight()
	if cmd == nil {
		t.Fatalf("expected add weight command")
	}
	m.Update(cmd())

	if len(backend.added) != 1 {
		t.Fatalf("expected one add weight call, got %d", len(backend.added))
	}
	got := backend.added[0]
	if got.Weight != 72.5 || got.Date != "2025-03-01" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if m.status != "Peso adicionado com sucesso!" {
		t.Fatalf("unexpected status: %q", m.status)
	}
	if v, _ := m.weightForm.ReadField(fieldWeight); v != "" {
		t.Fatalf("expected form reset, got %q", v)
	}
}

func TestSubmitWeightFailureShowsError(t *testing.T) {
	backend := &fakeBackend{addError: errors.New("boom")}
	m, _ := newTestModel(t, backend, "/add-weight")
	m.weightForm.setValue(fieldWeight, "80")

	m.Update(m.submitWeight()())

	if !strings.Contains(m.formErr, "boom") {
		t.Fatalf("expected error in footer, got %q", m.formErr)
	}
	if v, _ := m.weightForm.ReadField(fieldWeight); v != "80" {
		t.Fatalf("failed submission must keep the form, got %q", v)
	}
}

func TestBMICalculator(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "/calculators")
	m.bmiForm.setValue(fieldWeight, "70")
	m.bmiForm.setValue(fieldHeight, "1.75")
	m.submit(m.bmiForm)

	if m.bmiResult != "IMC: 22.86" {
		t.Fatalf("unexpected bmi result: %q", m.bmiResult)
	}
	out := m.renderBody()
	if !strings.Contains(out, "Índice de Massa Corporal") {
		t.Fatalf("expected IMC tooltip: %s", out)
	}
}

func TestBMICalculatorClampsHeight(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "/calculators")
	m.bmiForm.setValue(fieldWeight, "70")
	m.bmiForm.setValue(fieldHeight, "0.5")
	m.submit(m.bmiForm)

	if v, _ := m.bmiForm.ReadField(fieldHeight); v != "1" {
		t.Fatalf("expected height clamp to 1, got %q", v)
	}
	if m.bmiResult != "IMC: 70.00" {
		t.Fatalf("unexpected bmi result: %q", m.bmiResult)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "#history")
	m.Update(historyMsg{entries: []model.WeightEntry{
		{Date: "2025-01-01", Weight: 85},
		{Date: "2025-01-08", Weight: 83.5},
	}})

	rows := m.history.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "08/01/2025" || rows[0][2] != "-1.5" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	out := m.renderHistory()
	if !containsAll(out, []string{"Registros: 2", "Inicial: 85.0 kg", "Atual: 83.5 kg"}) {
		t.Fatalf("history summary missing values: %s", out)
	}
}

func TestEmptyHistory(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "#history")
	m.Update(historyMsg{})
	if got := m.renderHistory(); got != "Nenhum registro de peso." {
		t.Fatalf("unexpected empty history: %q", got)
	}
}

func TestViewFitsWindow(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{}, "")
	out := m.View()
	if lines := strings.Split(out, "\n"); len(lines) != 30 {
		t.Fatalf("expected 30 lines, got %d", len(lines))
	}
	if !containsAll(out, []string{"Progresso", "Histórico", "Registrar", "Calculadoras"}) {
		t.Fatalf("tabs missing from view")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
