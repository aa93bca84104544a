package behaviour

// Behaviour is a per frame animator. Start runs once before the first
// Update; dt is the time since the previous frame in seconds.
type Behaviour interface {
	Start()
	Update(dt float64)
}

type behaviourWrapper struct {
	behaviour Behaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []behaviourWrapper
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, behaviourWrapper{behaviour: behaviour})
}

func (m *BehaviourManager) Remove(behaviour Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].behaviour == behaviour {
			// Remove by swapping with last element and truncating
			m.behaviours[i] = m.behaviours[len(m.behaviours)-1]
			m.behaviours = m.behaviours[:len(m.behaviours)-1]
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) UpdateAll(dt float64) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].behaviour.Update(dt)
	}
}
