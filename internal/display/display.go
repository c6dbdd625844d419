// Package display abstracts the places the client reads form values from
// and writes results to, so the sync and validation code can run without a
// real screen.
package display

import "sync"

// Slot names a display target.
type Slot string

// Display targets written by a progress refresh.
const (
	SlotCurrentWeight   Slot = "pesoAtual"
	SlotWeightLost      Slot = "pesoPerdido"
	SlotWeightRemaining Slot = "pesoRestante"
	SlotPercentComplete Slot = "percentualCompleto"
	SlotProgressBar     Slot = "progress-bar"
)

// Writer receives display values. It reports false when the slot does not
// exist on this surface.
type Writer interface {
	WriteDisplay(slot Slot, value float64) bool
}

// Reader exposes the current value of a named form field.
type Reader interface {
	ReadField(name string) (string, bool)
}

// Memory is an in-memory Reader and Writer. Only the slots it was created
// with exist.
type Memory struct {
	mu     sync.Mutex
	slots  map[Slot]float64
	set    map[Slot]bool
	fields map[string]string
}

// NewMemory returns a surface exposing the given slots. With no slots it
// exposes all of them.
func NewMemory(slots ...Slot) *Memory {
	if len(slots) == 0 {
		slots = AllSlots()
	}
	m := &Memory{
		slots:  make(map[Slot]float64, len(slots)),
		set:    make(map[Slot]bool, len(slots)),
		fields: map[string]string{},
	}
	for _, s := range slots {
		m.slots[s] = 0
	}
	return m
}

// AllSlots lists every known slot in display order.
func AllSlots() []Slot {
	return []Slot{SlotCurrentWeight, SlotWeightLost, SlotWeightRemaining, SlotPercentComplete, SlotProgressBar}
}

// WriteDisplay implements Writer.
func (m *Memory) WriteDisplay(slot Slot, value float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[slot]; !ok {
		return false
	}
	m.slots[slot] = value
	m.set[slot] = true
	return true
}

// Value returns the last value written to slot and whether it was written.
func (m *Memory) Value(slot Slot) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[slot], m.set[slot]
}

// SetField stores a form field value.
func (m *Memory) SetField(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[name] = value
}

// ReadField implements Reader.
func (m *Memory) ReadField(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.fields[name]
	return v, ok
}
