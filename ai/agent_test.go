package ai

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/component"
)

func TestAgentLookAroundSpotsTargetBehindWaypoint(t *testing.T) {
	cfg := testAgentConfig()
	cfg.Position = cp.Vector{X: -0.5}
	cfg.Waypoints = []cp.Vector{{}, {X: 5}}
	a := NewAgent(cfg, nil, &captureLog{})

	// below the guard: only visible once the interlude turns to face down
	target := &stubTarget{pos: cp.Vector{Y: 3}}
	const dt = 0.125
	for i := 0; i < 6 && a.State() == component.StatePatrol; i++ {
		a.FixedUpdate(dt)
		a.Update(dt, target)
	}
	if a.State() != component.StateChase {
		t.Fatalf("state = %v, want chase once the guard faced down", a.State())
	}
	if a.DisplayDirection() != component.DirFront {
		t.Fatalf("display direction = %v, want front", a.DisplayDirection())
	}
	if a.Patrol.Enabled() {
		t.Fatalf("patrol should pause while chasing")
	}
	if a.AnimSpeed() != cfg.Facing.ChaseAnimSpeed {
		t.Fatalf("anim speed = %v, want chase speed", a.AnimSpeed())
	}
}

func TestAgentPositionDeltaDrivesFacing(t *testing.T) {
	a := NewAgent(testAgentConfig(), nil, nil)
	a.Body.Position = cp.Vector{X: -1}
	a.UpdateFacing(0.1)
	if !a.IsMoving() || a.DisplayDirection() != component.DirLeft {
		t.Fatalf("moving=%v dir=%v, want moving left", a.IsMoving(), a.DisplayDirection())
	}
}

func TestAgentFullCapture(t *testing.T) {
	cfg := testAgentConfig()
	cfg.Pursuit.ChaseSpeed = 5
	capture := &captureLog{}
	a := NewAgent(cfg, nil, capture)
	target := plainTarget{pos: cp.Vector{X: 3}}

	for i := 0; i < 200 && len(capture.guards) == 0; i++ {
		a.Update(0.02, target)
	}
	if len(capture.guards) != 1 || capture.guards[0] != "g1" {
		t.Fatalf("captures = %v, want [g1]", capture.guards)
	}
	if a.State() != component.StatePatrol || a.Pursuit.Captures() != 1 {
		t.Fatalf("state %v captures %d after catch", a.State(), a.Pursuit.Captures())
	}
	if a.Body.Position.Distance(target.pos) > cfg.Pursuit.CatchDistance {
		t.Fatalf("guard stopped at %v, too far from %v", a.Body.Position, target.pos)
	}
}

func TestAgentConfigureKeepsState(t *testing.T) {
	a := NewAgent(testAgentConfig(), nil, nil)
	a.Update(0.1, &stubTarget{pos: cp.Vector{X: 3}})
	if a.State() != component.StateChase {
		t.Fatalf("state = %v, want chase", a.State())
	}

	cfg := testAgentConfig()
	cfg.Vision.Radius = 6
	a.Configure(cfg)
	if a.State() != component.StateChase {
		t.Fatalf("configure changed state to %v", a.State())
	}
	if a.Sensor.Cone.BaseRadius != 6 || a.Sensor.Cone.Radius() != 8 {
		t.Fatalf("base %v current %v, want 6 and unchanged 8", a.Sensor.Cone.BaseRadius, a.Sensor.Cone.Radius())
	}

	patrolling := NewAgent(testAgentConfig(), nil, nil)
	patrolling.Configure(cfg)
	if patrolling.Sensor.Cone.Radius() != 6 {
		t.Fatalf("patrolling guard should adopt new base, radius %v", patrolling.Sensor.Cone.Radius())
	}
}
