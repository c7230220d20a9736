package ai

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/component"
)

type stubTarget struct {
	pos    cp.Vector
	hidden bool
}

func (s *stubTarget) Position() cp.Vector { return s.pos }

func (s *stubTarget) IsHidden() bool { return s.hidden }

type plainTarget struct {
	pos cp.Vector
}

func (p plainTarget) Position() cp.Vector { return p.pos }

type stubOccluder struct {
	blocked bool
	calls   int
}

func (o *stubOccluder) Occluded(from, to cp.Vector, mask component.ObstacleMask) bool {
	o.calls++
	return o.blocked
}

type captureLog struct {
	guards []string
}

func (c *captureLog) OnCapture(guard string) {
	c.guards = append(c.guards, guard)
}

func testAgentConfig() AgentConfig {
	facing := component.DefaultFacingConfig()
	facing.SmoothTime = 0
	pursuit := component.DefaultPursuitConfig()
	pursuit.ChaseSpeed = 0
	return AgentConfig{
		Name:    "g1",
		Vision:  component.VisionConfig{Radius: 5, Angle: 70, Obstacles: 1},
		Facing:  facing,
		Patrol:  component.DefaultPatrolConfig(),
		Pursuit: pursuit,
	}
}
