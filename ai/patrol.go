package ai

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

var (
	clockwise        = [4]cp.Vector{common.Right, common.Down, common.Left, common.Up}
	counterClockwise = [4]cp.Vector{common.Right, common.Up, common.Left, common.Down}
)

// PatrolTraversal walks a body along a route on the fixed tick. On arrival
// it either waits or runs a look-around interlude before moving on.
type PatrolTraversal struct {
	Route component.PatrolRoute

	cfg         component.PatrolConfig
	body        *component.Body
	timers      *component.Timers
	look        component.LookAround
	override    component.FacingOverride
	lastMoveDir cp.Vector
	enabled     bool
	log         *logrus.Entry
}

func NewPatrolTraversal(guard string, cfg component.PatrolConfig, waypoints []cp.Vector, body *component.Body, timers *component.Timers) *PatrolTraversal {
	p := &PatrolTraversal{
		Route:       component.NewPatrolRoute(waypoints, cfg.PingPong),
		cfg:         cfg,
		body:        body,
		timers:      timers,
		lastMoveDir: common.Right,
		enabled:     true,
		log:         logger.For("patrol").WithField("guard", guard),
	}
	if p.Route.Empty() {
		p.log.Warn("no waypoints; guard will stand still while patrolling")
	}
	return p
}

// Configure replaces tuning values. Route progress is kept.
func (p *PatrolTraversal) Configure(cfg component.PatrolConfig) {
	p.cfg = cfg
	p.Route.PingPong = cfg.PingPong
}

func (p *PatrolTraversal) SetEnabled(on bool) { p.enabled = on }

func (p *PatrolTraversal) Enabled() bool { return p.enabled }

func (p *PatrolTraversal) SetSpeed(speed float64) { p.cfg.Speed = speed }

func (p *PatrolTraversal) Speed() float64 { return p.cfg.Speed }

// Override is the facing override written by the look-around interlude.
func (p *PatrolTraversal) Override() component.FacingOverride { return p.override }

func (p *PatrolTraversal) LookingAround() bool { return p.look.Active }

func (p *PatrolTraversal) LastMoveDir() cp.Vector { return p.lastMoveDir }

// Advance runs one fixed tick. A running interlude always progresses, even
// while the traversal is disabled, and finishes on its own.
func (p *PatrolTraversal) Advance(dt float64) {
	if p.look.Active {
		p.stepLook(dt)
		return
	}
	if !p.enabled {
		return
	}
	target, ok := p.Route.Current()
	if !ok {
		return
	}

	to := target.Sub(p.body.Position)
	dist := to.Length()
	if dist <= p.cfg.ArriveThreshold {
		p.body.Velocity = cp.Vector{}
		if p.cfg.LookAround {
			p.startLook(dt)
			return
		}
		p.timers.Wait += dt
		if common.Elapsed(p.timers.Wait, p.cfg.WaitAtPoint) {
			p.timers.Wait = 0
			p.Route.Advance()
		}
		return
	}

	dir := to.Mult(1 / dist)
	step := math.Min(p.cfg.Speed*dt, dist)
	p.body.Position = p.body.Position.Add(dir.Mult(step))
	p.body.Velocity = dir.Mult(p.cfg.Speed)
	p.lastMoveDir = dir
	if p.cfg.RotateTransform {
		p.body.Rotation = common.Heading(dir)
	}
}

func (p *PatrolTraversal) startLook(dt float64) {
	if p.look.Active {
		return
	}
	seq := clockwise
	if p.cfg.LookOrder == component.LookCounterClockwise {
		seq = counterClockwise
	}

	startDir := common.Right
	if common.HasDirection(p.lastMoveDir) {
		startDir = common.Normalize(p.lastMoveDir)
	}
	start := 0
	best := math.Inf(-1)
	for i, d := range seq {
		if dot := d.Dot(startDir); dot > best {
			best = dot
			start = i
		}
	}

	p.look = component.LookAround{Active: true, Sequence: seq, Start: start}
	p.log.WithField("waypoint", p.Route.Index).Debug("look-around started")
	p.applyHold()
	p.stepLook(dt)
}

func (p *PatrolTraversal) stepLook(dt float64) {
	if common.Elapsed(p.look.Elapsed, p.cfg.LookStep) && p.look.Elapsed > 0 {
		p.look.Step++
		if p.look.Step >= component.LookHolds {
			p.finishLook()
			return
		}
		p.look.Elapsed = 0
		p.applyHold()
	}
	if p.enabled {
		p.body.Velocity = cp.Vector{}
	}
	p.look.Elapsed += dt
}

func (p *PatrolTraversal) applyHold() {
	dir := p.look.Direction()
	p.override = component.SomeFacing(dir)
	if p.cfg.RotateTransform {
		p.body.Rotation = common.Heading(dir)
	}
}

func (p *PatrolTraversal) finishLook() {
	p.override = component.NoFacing()
	p.look = component.LookAround{}
	p.timers.Wait = 0
	p.Route.Advance()
	p.log.WithField("waypoint", p.Route.Index).Debug("look-around finished")
}
