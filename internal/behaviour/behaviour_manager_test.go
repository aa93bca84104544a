package behaviour

import (
	"testing"
)

type mockBehaviour struct {
	starts  int
	updates int
	lastDt  float64
}

func (m *mockBehaviour) Start() {
	m.starts++
}

func (m *mockBehaviour) Update(dt float64) {
	m.updates++
	m.lastDt = dt
}

func TestBehaviourManagerStartsOnce(t *testing.T) {
	m := NewBehaviourManager()
	b := &mockBehaviour{}
	m.Add(b)

	m.UpdateAll(0.016)
	m.UpdateAll(0.017)

	if b.starts != 1 {
		t.Errorf("Expected Start to run once, got %d", b.starts)
	}
	if b.updates != 2 {
		t.Errorf("Expected 2 updates, got %d", b.updates)
	}
	if b.lastDt != 0.017 {
		t.Errorf("Expected dt 0.017, got %f", b.lastDt)
	}
}

func TestBehaviourManagerRemove(t *testing.T) {
	m := NewBehaviourManager()
	a := &mockBehaviour{}
	b := &mockBehaviour{}
	m.Add(a)
	m.Add(b)

	m.Remove(a)
	m.UpdateAll(1)

	if m.Len() != 1 {
		t.Errorf("Expected 1 behaviour, got %d", m.Len())
	}
	if a.updates != 0 || b.updates != 1 {
		t.Errorf("Expected only the remaining behaviour to update, got %d and %d", a.updates, b.updates)
	}

	// removing an unknown behaviour is a no-op
	m.Remove(&mockBehaviour{})
	if m.Len() != 1 {
		t.Errorf("Expected 1 behaviour, got %d", m.Len())
	}
}

func TestBehaviourManagerClear(t *testing.T) {
	m := NewBehaviourManager()
	m.Add(&mockBehaviour{})
	m.Add(&mockBehaviour{})

	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Expected 0 behaviours after Clear, got %d", m.Len())
	}
}

func TestFunc(t *testing.T) {
	m := NewBehaviourManager()
	var total float64
	m.Add(Func(func(dt float64) { total += dt }))

	m.UpdateAll(0.5)
	m.UpdateAll(0.25)

	if total != 0.75 {
		t.Errorf("Expected 0.75, got %f", total)
	}
}
