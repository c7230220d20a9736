package ai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
)

type pursuitRig struct {
	sensor  *VisionSensor
	patrol  *PatrolTraversal
	ctrl    *PursuitController
	body    *component.Body
	timers  *component.Timers
	capture *captureLog
	states  []component.AIState
}

func newPursuitRig(cfg component.PursuitConfig) *pursuitRig {
	r := &pursuitRig{
		body:    &component.Body{},
		timers:  &component.Timers{},
		capture: &captureLog{},
	}
	r.sensor = NewVisionSensor("g1", component.VisionConfig{Radius: 5, Angle: 70, Obstacles: 1}, nil)
	r.patrol = NewPatrolTraversal("g1", component.DefaultPatrolConfig(), nil, r.body, r.timers)
	r.ctrl = NewPursuitController("g1", cfg, r.sensor, r.patrol, r.body, r.timers, r.capture)
	r.ctrl.OnTransition = func(from, to component.AIState) {
		r.states = append(r.states, to)
	}
	return r
}

func stillPursuit() component.PursuitConfig {
	cfg := component.DefaultPursuitConfig()
	cfg.ChaseSpeed = 0
	return cfg
}

func (r *pursuitRig) tick(dt float64, target Target) {
	r.sensor.Sense(r.body.Position, common.Right, target)
	r.ctrl.Update(dt, target, common.Right)
}

func (r *pursuitRig) chase(t *testing.T, target *stubTarget) {
	t.Helper()
	r.tick(0.1, target)
	if r.ctrl.State() != component.StateChase {
		t.Fatalf("expected chase after sighting, got %v", r.ctrl.State())
	}
}

func TestPursuitEnterChaseInflatesCone(t *testing.T) {
	r := newPursuitRig(stillPursuit())
	r.chase(t, &stubTarget{pos: cp.Vector{X: 3}})

	if math.Abs(r.sensor.Cone.Radius()-8) > 1e-9 {
		t.Fatalf("radius = %v, want 8", r.sensor.Cone.Radius())
	}
	if math.Abs(r.sensor.Cone.Angle()-91) > 1e-9 {
		t.Fatalf("angle = %v, want 91", r.sensor.Cone.Angle())
	}
	if r.patrol.Enabled() {
		t.Fatalf("patrol must be disabled while chasing")
	}
	if !r.ctrl.IsChasing() {
		t.Fatalf("IsChasing should be true")
	}
}

func TestPursuitConeDecaysMonotonically(t *testing.T) {
	r := newPursuitRig(stillPursuit())
	target := &stubTarget{pos: cp.Vector{X: 3}}
	r.chase(t, target)

	prevR, prevA := r.sensor.Cone.Radius(), r.sensor.Cone.Angle()
	for i := 0; i < 40; i++ {
		r.tick(0.1, target)
		rad, ang := r.sensor.Cone.Radius(), r.sensor.Cone.Angle()
		if rad > prevR || ang > prevA {
			t.Fatalf("cone grew on tick %d: (%v, %v) -> (%v, %v)", i, prevR, prevA, rad, ang)
		}
		if rad < 5 || ang < 70 {
			t.Fatalf("cone fell below base on tick %d: (%v, %v)", i, rad, ang)
		}
		prevR, prevA = rad, ang
	}
	if r.sensor.Cone.Radius() != 5 || r.sensor.Cone.Angle() != 70 {
		t.Fatalf("cone should settle on base, got (%v, %v)", r.sensor.Cone.Radius(), r.sensor.Cone.Angle())
	}
	if r.ctrl.State() != component.StateChase {
		t.Fatalf("target stayed visible, state = %v", r.ctrl.State())
	}
}

func TestPursuitLoseSight(t *testing.T) {
	r := newPursuitRig(stillPursuit())
	target := &stubTarget{pos: cp.Vector{X: 3}}
	r.chase(t, target)
	r.body.Velocity = cp.Vector{X: 1}

	target.pos = cp.Vector{X: -3}
	for i := 0; i < 19; i++ {
		r.tick(0.1, target)
	}
	if r.ctrl.State() != component.StateChase {
		t.Fatalf("after 1.9s unseen state = %v, want chase", r.ctrl.State())
	}
	r.tick(0.1, target)
	if r.ctrl.State() != component.StateSearch {
		t.Fatalf("after 2.0s unseen state = %v, want search", r.ctrl.State())
	}
	if r.body.Velocity != (cp.Vector{}) {
		t.Fatalf("search should stop the body, velocity %v", r.body.Velocity)
	}
	if r.patrol.Enabled() {
		t.Fatalf("patrol must stay disabled while searching")
	}
}

func TestPursuitSearchReturnsToPatrol(t *testing.T) {
	cfg := stillPursuit()
	cfg.LoseSightTime = 0.25
	r := newPursuitRig(cfg)
	target := &stubTarget{pos: cp.Vector{X: 3}}
	r.chase(t, target)

	target.pos = cp.Vector{X: -3}
	r.tick(0.125, target)
	r.tick(0.125, target)
	if r.ctrl.State() != component.StateSearch {
		t.Fatalf("state = %v, want search", r.ctrl.State())
	}

	for i := 0; i < 11; i++ {
		r.tick(0.125, target)
	}
	if r.ctrl.State() != component.StateSearch {
		t.Fatalf("after 1.375s of search state = %v", r.ctrl.State())
	}
	r.tick(0.125, target)
	if r.ctrl.State() != component.StatePatrol {
		t.Fatalf("after 1.5s of search state = %v, want patrol", r.ctrl.State())
	}
	if r.sensor.Cone.Radius() != 5 || r.sensor.Cone.Angle() != 70 {
		t.Fatalf("patrol must restore base cone, got (%v, %v)", r.sensor.Cone.Radius(), r.sensor.Cone.Angle())
	}
	if !r.patrol.Enabled() {
		t.Fatalf("patrol traversal should be re-enabled")
	}

	want := []component.AIState{component.StateChase, component.StateSearch, component.StatePatrol}
	if len(r.states) != len(want) {
		t.Fatalf("transitions %v, want %v", r.states, want)
	}
	for i := range want {
		if r.states[i] != want[i] {
			t.Fatalf("transitions %v, want %v", r.states, want)
		}
	}
}

func TestPursuitSearchReacquires(t *testing.T) {
	cfg := stillPursuit()
	cfg.LoseSightTime = 0.1
	r := newPursuitRig(cfg)
	target := &stubTarget{pos: cp.Vector{X: 3}}
	r.chase(t, target)

	target.pos = cp.Vector{X: -3}
	r.tick(0.1, target)
	if r.ctrl.State() != component.StateSearch {
		t.Fatalf("state = %v, want search", r.ctrl.State())
	}
	r.tick(0.1, target)
	shrunk := r.sensor.Cone.Radius()

	target.pos = cp.Vector{X: 3}
	r.tick(0.1, target)
	if r.ctrl.State() != component.StateChase {
		t.Fatalf("state = %v, want chase", r.ctrl.State())
	}
	if r.sensor.Cone.Radius() <= shrunk || math.Abs(r.sensor.Cone.Radius()-8) > 1e-9 {
		t.Fatalf("re-chase should re-inflate the cone, radius %v", r.sensor.Cone.Radius())
	}
	if r.timers.LoseSight != 0 {
		t.Fatalf("re-chase should reset the lose-sight timer, got %v", r.timers.LoseSight)
	}
}

func TestPursuitCatchDistance(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		captured bool
	}{
		{"inside", 0.49, true},
		{"on_edge", 0.5, true},
		{"outside", 0.51, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newPursuitRig(stillPursuit())
			target := &stubTarget{pos: cp.Vector{X: 3}}
			r.chase(t, target)

			target.pos = cp.Vector{X: c.distance}
			r.tick(0.1, target)

			if got := len(r.capture.guards) == 1; got != c.captured {
				t.Fatalf("captured = %v, want %v", got, c.captured)
			}
			if c.captured {
				if r.capture.guards[0] != "g1" || r.ctrl.Captures() != 1 {
					t.Fatalf("capture not attributed: %v, count %d", r.capture.guards, r.ctrl.Captures())
				}
				if r.ctrl.State() != component.StatePatrol || r.sensor.Cone.Radius() != 5 {
					t.Fatalf("capture should return to patrol with base cone, state %v radius %v", r.ctrl.State(), r.sensor.Cone.Radius())
				}
			} else if r.ctrl.State() != component.StateChase {
				t.Fatalf("state = %v, want chase", r.ctrl.State())
			}
		})
	}
}

func TestPursuitHidingInPlainSight(t *testing.T) {
	cases := []struct {
		name     string
		enabled  bool
		captured bool
	}{
		{"capture_enabled", true, true},
		{"capture_disabled", false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := stillPursuit()
			cfg.CaptureOnHideInSight = c.enabled
			r := newPursuitRig(cfg)
			target := &stubTarget{pos: cp.Vector{X: 3}}
			r.chase(t, target)

			target.hidden = true
			r.tick(0.1, target)

			if r.sensor.IsDetecting() {
				t.Fatalf("a hidden target must not be detected")
			}
			if got := len(r.capture.guards) == 1; got != c.captured {
				t.Fatalf("captured = %v, want %v", got, c.captured)
			}
			if !c.captured {
				if r.ctrl.State() != component.StateChase || math.Abs(r.timers.LoseSight-0.1) > 1e-9 {
					t.Fatalf("state %v lose-sight %v, want chase and 0.1", r.ctrl.State(), r.timers.LoseSight)
				}
			}
		})
	}
}

func TestPursuitHiddenOutOfSightIsNotCaptured(t *testing.T) {
	r := newPursuitRig(stillPursuit())
	target := &stubTarget{pos: cp.Vector{X: 3}}
	r.chase(t, target)

	target.pos = cp.Vector{X: -3}
	target.hidden = true
	r.tick(0.1, target)
	if len(r.capture.guards) != 0 {
		t.Fatalf("hiding behind the guard should not capture")
	}
}

func TestPursuitRepathThrottle(t *testing.T) {
	cfg := component.DefaultPursuitConfig()
	cfg.ChaseSpeed = 5
	cfg.RepathInterval = 0.05
	r := newPursuitRig(cfg)
	target := &stubTarget{pos: cp.Vector{X: 4}}
	r.tick(0.02, target)
	if r.ctrl.State() != component.StateChase {
		t.Fatalf("state = %v, want chase", r.ctrl.State())
	}

	r.tick(0.02, target)
	r.tick(0.02, target)
	if r.body.Position != (cp.Vector{}) {
		t.Fatalf("moved before repath interval: %v", r.body.Position)
	}
	r.tick(0.02, target)
	if math.Abs(r.body.Position.X-0.3) > 1e-9 || r.body.Position.Y != 0 {
		t.Fatalf("position = %v, want (0.3, 0)", r.body.Position)
	}
	if r.body.Velocity != (cp.Vector{X: 5}) {
		t.Fatalf("velocity = %v, want (5, 0)", r.body.Velocity)
	}
	if r.timers.Repath != 0 {
		t.Fatalf("repath timer should reset after a move, got %v", r.timers.Repath)
	}
}

func TestPursuitNilTarget(t *testing.T) {
	r := newPursuitRig(stillPursuit())
	r.tick(0.1, nil)
	if r.ctrl.State() != component.StatePatrol {
		t.Fatalf("nil target changed state to %v", r.ctrl.State())
	}

	r.chase(t, &stubTarget{pos: cp.Vector{X: 3}})
	for i := 0; i < 20; i++ {
		r.tick(0.1, nil)
	}
	if r.ctrl.State() != component.StateSearch || len(r.capture.guards) != 0 {
		t.Fatalf("nil target in chase should lose sight without capture, state %v", r.ctrl.State())
	}
}

func TestPursuitInvariantsUnderRandomInput(t *testing.T) {
	cfg := component.DefaultPursuitConfig()
	r := newPursuitRig(cfg)
	rng := rand.New(rand.NewSource(7))
	target := &stubTarget{}

	for i := 0; i < 2000; i++ {
		if i%10 == 0 {
			target.pos = cp.Vector{X: rng.Float64()*16 - 8, Y: rng.Float64()*16 - 8}
			target.hidden = rng.Intn(5) == 0
		}
		r.tick(0.05, target)

		cone := r.sensor.Cone
		if cone.Radius() < cone.BaseRadius-1e-9 || cone.Radius() > cone.BaseRadius*cfg.ExpandMultiplier+1e-9 {
			t.Fatalf("tick %d: radius %v outside [%v, %v]", i, cone.Radius(), cone.BaseRadius, cone.BaseRadius*cfg.ExpandMultiplier)
		}
		if cone.Angle() < cone.BaseAngle-1e-9 || cone.Angle() > component.MaxViewAngle {
			t.Fatalf("tick %d: angle %v out of range", i, cone.Angle())
		}
		state := r.ctrl.State()
		if state == component.StatePatrol && cone.Inflated() {
			t.Fatalf("tick %d: cone inflated while patrolling", i)
		}
		if r.patrol.Enabled() != (state == component.StatePatrol) {
			t.Fatalf("tick %d: patrol enabled=%v in state %v", i, r.patrol.Enabled(), state)
		}
		if r.timers.LoseSight < 0 || r.timers.Repath < 0 {
			t.Fatalf("tick %d: negative timers %+v", i, *r.timers)
		}
		if state == component.StateChase && r.timers.LoseSight > cfg.LoseSightTime {
			t.Fatalf("tick %d: chase outlived lose-sight time", i)
		}
	}
}
