package ai

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// AgentConfig is everything needed to build a guard.
type AgentConfig struct {
	Name      string
	Position  cp.Vector
	Waypoints []cp.Vector
	Vision    component.VisionConfig
	Facing    component.FacingConfig
	Patrol    component.PatrolConfig
	Pursuit   component.PursuitConfig
	Hooks     *ScriptHooks
}

// Agent is one guard. It owns its body, timers and the four behavior
// modules, wired to each other by direct reference.
type Agent struct {
	// OnTransition, when set, is called after the guard's hooks on every
	// state change.
	OnTransition func(from, to component.AIState)

	Name   string
	Body   component.Body
	Timers component.Timers

	Facing  *FacingModel
	Sensor  *VisionSensor
	Patrol  *PatrolTraversal
	Pursuit *PursuitController
	Hooks   *ScriptHooks

	lastPos cp.Vector
	log     *logrus.Entry
}

func NewAgent(cfg AgentConfig, occluder Occluder, capture CaptureListener) *Agent {
	a := &Agent{
		Name:    cfg.Name,
		Body:    component.Body{Position: cfg.Position},
		Hooks:   cfg.Hooks,
		lastPos: cfg.Position,
		log:     logger.For("agent").WithField("guard", cfg.Name),
	}
	a.Facing = NewFacingModel(cfg.Facing, common.Right)
	a.Sensor = NewVisionSensor(cfg.Name, cfg.Vision, occluder)
	a.Patrol = NewPatrolTraversal(cfg.Name, cfg.Patrol, cfg.Waypoints, &a.Body, &a.Timers)
	a.Pursuit = NewPursuitController(cfg.Name, cfg.Pursuit, a.Sensor, a.Patrol, &a.Body, &a.Timers, capture)
	a.Pursuit.OnTransition = a.runTransitionHooks
	a.Pursuit.OnCaptured = func() { a.runHook(PhaseCapture, a.Pursuit.State()) }
	return a
}

// Configure applies new tuning by value assignment. Behavior state, route
// progress and the current cone are kept; the cone's base values change.
func (a *Agent) Configure(cfg AgentConfig) {
	a.Facing.Configure(cfg.Facing)
	a.Patrol.Configure(cfg.Patrol)
	a.Pursuit.Configure(cfg.Pursuit)

	a.Sensor.Configure(cfg.Vision)
	if a.Pursuit.State() == component.StatePatrol {
		a.Sensor.Cone.Reset()
	}
	if cfg.Hooks != nil {
		a.Hooks = cfg.Hooks
	}
	a.log.Debug("configuration applied")
}

// FixedUpdate runs the physics-rate part of the agent.
func (a *Agent) FixedUpdate(dt float64) {
	a.Patrol.Advance(dt)
}

// UpdateFacing resolves this frame's facing from reported velocity, falling
// back to the frame's position delta when the body reports none.
func (a *Agent) UpdateFacing(dt float64) {
	v := a.Body.Velocity
	if !common.HasDirection(v) {
		v = a.Body.Position.Sub(a.lastPos).Mult(1 / math.Max(dt, 0.0001))
	}
	a.lastPos = a.Body.Position
	a.Facing.Update(v, a.Patrol.Override(), dt)
}

// Sense evaluates the sensor along the current facing.
func (a *Agent) Sense(target Target) bool {
	return a.Sensor.Sense(a.Body.Position, a.Facing.Direction(), target)
}

// Decide runs the state machine for one decision tick.
func (a *Agent) Decide(dt float64, target Target) {
	a.Pursuit.Update(dt, target, a.Facing.Direction())
}

// Update runs a full decision tick: facing, then sensing, then the state
// machine.
func (a *Agent) Update(dt float64, target Target) {
	a.UpdateFacing(dt)
	a.Sense(target)
	a.Decide(dt, target)
}

func (a *Agent) State() component.AIState { return a.Pursuit.State() }

func (a *Agent) IsDetecting() bool { return a.Sensor.IsDetecting() }

func (a *Agent) IsMoving() bool { return a.Facing.IsMoving() }

func (a *Agent) DisplayDirection() component.CardinalDir { return a.Facing.DisplayDirection() }

func (a *Agent) IsChasing() bool { return a.Pursuit.IsChasing() }

func (a *Agent) AnimSpeed() float64 { return a.Facing.AnimSpeed(a.IsChasing()) }

func (a *Agent) runTransitionHooks(from, to component.AIState) {
	a.runHook(PhaseExit, from)
	a.runHook(PhaseEnter, to)
	if a.OnTransition != nil {
		a.OnTransition(from, to)
	}
}

func (a *Agent) runHook(phase string, state component.AIState) {
	if a.Hooks == nil {
		return
	}
	if err := a.Hooks.Run(phase, a, state); err != nil {
		a.log.WithError(err).WithField("phase", phase).Warn("hook script failed")
	}
}
