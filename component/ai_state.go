package component

// AIState identifies the pursuit behavior an agent is currently running.
type AIState int

const (
	StatePatrol AIState = iota
	StateChase
	StateSearch
)

func (s AIState) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Timers holds the per-agent accumulators used by pursuit and patrol.
type Timers struct {
	LoseSight float64
	Repath    float64
	Wait      float64
}

// ResetPursuit zeroes the accumulators owned by the pursuit controller.
func (t *Timers) ResetPursuit() {
	t.LoseSight = 0
	t.Repath = 0
}
