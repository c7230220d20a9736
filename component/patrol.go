package component

import "github.com/jakecoffman/cp"

// PatrolRoute is an ordered waypoint list with a cursor that never leaves
// [0, len(Waypoints)).
type PatrolRoute struct {
	Waypoints []cp.Vector
	Index     int
	DirSign   int
	PingPong  bool
}

func NewPatrolRoute(waypoints []cp.Vector, pingPong bool) PatrolRoute {
	wp := append([]cp.Vector(nil), waypoints...)
	return PatrolRoute{Waypoints: wp, DirSign: 1, PingPong: pingPong}
}

func (r *PatrolRoute) Empty() bool {
	return len(r.Waypoints) == 0
}

// Current returns the waypoint the route is heading to.
func (r *PatrolRoute) Current() (cp.Vector, bool) {
	if r.Empty() {
		return cp.Vector{}, false
	}
	return r.Waypoints[r.Index], true
}

// Advance moves the cursor to the next waypoint, wrapping or bouncing.
func (r *PatrolRoute) Advance() {
	n := len(r.Waypoints)
	if n == 0 {
		return
	}
	if !r.PingPong {
		r.Index = (r.Index + 1) % n
		return
	}
	if n == 1 {
		r.Index = 0
		return
	}
	if r.Index == n-1 {
		r.DirSign = -1
	} else if r.Index == 0 {
		r.DirSign = 1
	}
	r.Index += r.DirSign
}

// LookOrder is the rotation used by the look-around interlude.
type LookOrder int

const (
	LookClockwise LookOrder = iota
	LookCounterClockwise
)

// LookHolds is the number of holds in one interlude: four directions plus
// the return to the first.
const LookHolds = 5

// LookAround is the resumable progress of a look-around interlude.
type LookAround struct {
	Active   bool
	Sequence [4]cp.Vector
	Start    int
	Step     int
	Elapsed  float64
}

// Direction returns the hold direction for the current step.
func (l *LookAround) Direction() cp.Vector {
	if l.Step >= 4 {
		return l.Sequence[l.Start]
	}
	return l.Sequence[(l.Start+l.Step)&3]
}
