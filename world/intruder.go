package world

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// IntruderConfig tunes the player-controlled target.
type IntruderConfig struct {
	Speed  float64
	Radius float64
}

// Terrain is what the intruder needs to know about the level.
type Terrain interface {
	InHidingSpot(p cp.Vector) bool
	Blocked(p cp.Vector, r float64) bool
}

// Intruder is the target the guards look for. It can only hide inside a
// hiding spot and doesn't move while hidden.
type Intruder struct {
	Body component.Body

	cfg    IntruderConfig
	input  cp.Vector
	hidden bool
	area   Terrain
	log    *logrus.Entry
}

func NewIntruder(cfg IntruderConfig, spawn cp.Vector, area Terrain) *Intruder {
	return &Intruder{
		Body: component.Body{Position: spawn},
		cfg:  cfg,
		area: area,
		log:  logger.For("intruder"),
	}
}

func (i *Intruder) Position() cp.Vector { return i.Body.Position }

func (i *Intruder) IsHidden() bool { return i.hidden }

// SetInput sets the desired movement direction; it is normalized on use.
func (i *Intruder) SetInput(dir cp.Vector) { i.input = dir }

// ToggleHide flips concealment when standing in a hiding spot and reports
// the new state.
func (i *Intruder) ToggleHide() bool {
	if i.hidden {
		i.hidden = false
	} else if i.inSpot() {
		i.hidden = true
	}
	i.log.WithField("hidden", i.hidden).Debug("hide toggled")
	return i.hidden
}

// Step moves the intruder by its input for one fixed tick.
func (i *Intruder) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if i.hidden {
		i.Body.Velocity = cp.Vector{}
		if !i.inSpot() {
			i.hidden = false
		}
		return
	}
	dir := common.Normalize(i.input)
	step := dir.Mult(i.cfg.Speed * dt)
	start := i.Body.Position
	i.Body.Position = i.slide(start, step)
	i.Body.Velocity = i.Body.Position.Sub(start).Mult(1 / dt)
	if common.HasDirection(dir) {
		i.Body.Rotation = common.Heading(dir)
	}
}

// slide applies step, dropping whichever axis would push into an obstacle.
func (i *Intruder) slide(from, step cp.Vector) cp.Vector {
	if i.area == nil {
		return from.Add(step)
	}
	if to := from.Add(step); !i.area.Blocked(to, i.cfg.Radius) {
		return to
	}
	if to := from.Add(cp.Vector{X: step.X}); step.X != 0 && !i.area.Blocked(to, i.cfg.Radius) {
		return to
	}
	if to := from.Add(cp.Vector{Y: step.Y}); step.Y != 0 && !i.area.Blocked(to, i.cfg.Radius) {
		return to
	}
	return from
}

// Teleport places the intruder. Leaving a hiding spot this way clears
// concealment.
func (i *Intruder) Teleport(p cp.Vector) {
	i.Body.Position = p
	if i.hidden && !i.inSpot() {
		i.hidden = false
	}
}

func (i *Intruder) inSpot() bool {
	return i.area != nil && i.area.InHidingSpot(i.Body.Position)
}
