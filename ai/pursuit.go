package ai

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// PursuitController is the patrol/chase/search state machine. It reads the
// sensor, owns the cone's current values and drives chase movement.
type PursuitController struct {
	// OnTransition, when set, is called after every state change.
	OnTransition func(from, to component.AIState)
	// OnCaptured, when set, is called after the capture listener.
	OnCaptured func()

	guard    string
	cfg      component.PursuitConfig
	state    component.AIState
	timers   *component.Timers
	sensor   *VisionSensor
	patrol   *PatrolTraversal
	body     *component.Body
	capture  CaptureListener
	captures int
	log      *logrus.Entry
}

func NewPursuitController(guard string, cfg component.PursuitConfig, sensor *VisionSensor, patrol *PatrolTraversal, body *component.Body, timers *component.Timers, capture CaptureListener) *PursuitController {
	c := &PursuitController{
		guard:   guard,
		cfg:     cfg,
		timers:  timers,
		sensor:  sensor,
		patrol:  patrol,
		body:    body,
		capture: capture,
		log:     logger.For("pursuit").WithField("guard", guard),
	}
	c.setState(component.StatePatrol)
	return c
}

// Configure replaces tuning values without touching the current state.
func (c *PursuitController) Configure(cfg component.PursuitConfig) {
	c.cfg = cfg
	if c.state == component.StatePatrol && c.patrol != nil && cfg.PatrolSpeed > 0 {
		c.patrol.SetSpeed(cfg.PatrolSpeed)
	}
}

func (c *PursuitController) SetCaptureListener(l CaptureListener) {
	c.capture = l
}

func (c *PursuitController) State() component.AIState { return c.state }

func (c *PursuitController) IsChasing() bool { return c.state == component.StateChase }

// Captures counts how many times this guard has caught the target.
func (c *PursuitController) Captures() int { return c.captures }

// Update runs one decision tick. The sensor must already have been sensed
// this tick; facing is the direction it was sensed along.
func (c *PursuitController) Update(dt float64, target Target, facing cp.Vector) {
	seen := c.sensor.IsDetecting()
	switch c.state {
	case component.StatePatrol:
		if seen {
			c.enterChase()
		}
	case component.StateChase:
		c.chaseUpdate(dt, target, facing, seen)
	case component.StateSearch:
		c.searchUpdate(dt, seen)
	}
}

func (c *PursuitController) chaseUpdate(dt float64, target Target, facing cp.Vector, seen bool) {
	if c.cfg.CaptureOnHideInSight && target != nil && concealed(target) && c.sensor.InPlainSight(c.body.Position, facing, target) {
		c.captureTarget("hid in plain sight")
		return
	}
	if target != nil && c.body.Position.Distance(target.Position()) <= c.cfg.CatchDistance {
		c.captureTarget("caught")
		return
	}

	if target != nil {
		c.timers.Repath += dt
		if common.Elapsed(c.timers.Repath, c.cfg.RepathInterval) {
			step := c.timers.Repath
			c.timers.Repath = 0
			c.moveTowards(target.Position(), c.cfg.ChaseSpeed, step)
		}
	}

	if seen {
		c.timers.LoseSight = 0
	} else {
		c.timers.LoseSight += dt
		if common.Elapsed(c.timers.LoseSight, c.cfg.LoseSightTime) {
			c.enterSearch()
			return
		}
	}

	c.relax(dt)
}

func (c *PursuitController) searchUpdate(dt float64, seen bool) {
	if seen {
		c.enterChase()
		return
	}
	c.timers.LoseSight += dt
	if common.Elapsed(c.timers.LoseSight, c.cfg.SearchTime) {
		c.enterPatrol()
		return
	}
	c.relax(dt)
}

func (c *PursuitController) enterChase() {
	cone := &c.sensor.Cone
	cone.SetRadius(cone.BaseRadius * c.cfg.ExpandMultiplier)
	cone.SetAngle(cone.BaseAngle * common.Lerp(1, c.cfg.ExpandMultiplier, 0.5))
	c.timers.ResetPursuit()
	c.setState(component.StateChase)
}

func (c *PursuitController) enterSearch() {
	c.timers.ResetPursuit()
	c.body.Velocity = cp.Vector{}
	c.setState(component.StateSearch)
}

func (c *PursuitController) enterPatrol() {
	c.sensor.Cone.Reset()
	c.timers.ResetPursuit()
	c.setState(component.StatePatrol)
}

func (c *PursuitController) setState(next component.AIState) {
	prev := c.state
	c.state = next
	if c.patrol != nil {
		c.patrol.SetEnabled(next == component.StatePatrol)
		if next == component.StatePatrol && c.cfg.PatrolSpeed > 0 {
			c.patrol.SetSpeed(c.cfg.PatrolSpeed)
		}
	}
	if prev == next {
		return
	}
	c.log.WithFields(logrus.Fields{"from": prev, "to": next}).Debug("state changed")
	if c.OnTransition != nil {
		c.OnTransition(prev, next)
	}
}

// relax pulls the cone back toward base at a rate proportional to base.
func (c *PursuitController) relax(dt float64) {
	cone := &c.sensor.Cone
	rate := c.cfg.ShrinkPerSecond * dt
	cone.SetRadius(common.MoveTowards(cone.Radius(), cone.BaseRadius, cone.BaseRadius*rate))
	cone.SetAngle(common.MoveTowards(cone.Angle(), cone.BaseAngle, cone.BaseAngle*rate))
}

func (c *PursuitController) moveTowards(target cp.Vector, speed, dt float64) {
	dir := target.Sub(c.body.Position)
	if dir.LengthSq() < 0.000001 {
		return
	}
	dir = common.Normalize(dir)
	c.body.Position = c.body.Position.Add(dir.Mult(speed * dt))
	c.body.Velocity = dir.Mult(speed)
}

func (c *PursuitController) captureTarget(reason string) {
	c.captures++
	c.log.WithField("reason", reason).Info("target captured")
	if c.capture != nil {
		c.capture.OnCapture(c.guard)
	}
	if c.OnCaptured != nil {
		c.OnCaptured()
	}
	c.enterPatrol()
}
