package world

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/ai"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// maxSubSteps bounds fixed ticks per frame; any backlog beyond it is dropped.
const maxSubSteps = 8

// World owns the guards, the intruder and the level geometry, and runs the
// two tick domains: fixed physics ticks, then one decision tick per frame.
type World struct {
	Physics  *PhysicsWorld
	Session  *Session
	Intruder *Intruder

	// Exit is the zone that ends the session in victory. A zero BB means
	// the level has no exit.
	Exit cp.BB

	guards      []*ai.Agent
	fixed       *Scheduler
	frame       *Scheduler
	fixedStep   float64
	accumulator float64
	dt          float64
	elapsed     float64
	endedBy     string
	log         *logrus.Entry
}

func New(physics *PhysicsWorld, session *Session) *World {
	if physics == nil {
		physics = NewPhysicsWorld()
	}
	if session == nil {
		session = NewSession()
	}
	return &World{
		Physics:   physics,
		Session:   session,
		fixed:     NewScheduler(PhaseFixed, IntruderSystem{}, PatrolSystem{}),
		frame:     NewScheduler(PhaseFrame, FacingSystem{}, VisionSystem{}, PursuitSystem{}),
		fixedStep: common.FixedStep,
		log:       logger.For("world"),
	}
}

// SetFixedStep changes the physics tick length. Non-positive values are
// ignored.
func (w *World) SetFixedStep(step float64) {
	if step > 0 {
		w.fixedStep = step
	}
}

func (w *World) FixedStep() float64 { return w.fixedStep }

func (w *World) AddFixedSystem(s System) { w.fixed.Add(s) }

func (w *World) AddFrameSystem(s System) { w.frame.Add(s) }

func (w *World) AddGuard(a *ai.Agent) {
	if a == nil {
		return
	}
	w.guards = append(w.guards, a)
	w.log.WithField("guard", a.Name).Debug("guard added")
}

func (w *World) Guards() []*ai.Agent {
	return append([]*ai.Agent(nil), w.guards...)
}

func (w *World) Guard(name string) *ai.Agent {
	for _, g := range w.guards {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Target is the intruder as the guards see it, or nil if there is none.
func (w *World) Target() ai.Target {
	if w.Intruder == nil {
		return nil
	}
	return w.Intruder
}

// Dt is the length of the tick currently being run.
func (w *World) Dt() float64 { return w.dt }

// Elapsed is total simulated time.
func (w *World) Elapsed() float64 { return w.elapsed }

// EndedBy names the phase and system whose tick ended the session, such as
// "frame/pursuit". It is empty while playing or when the session was ended
// from outside a tick.
func (w *World) EndedBy() string { return w.endedBy }

// Systems lists each phase's systems in run order.
func (w *World) Systems() map[Phase][]string {
	return map[Phase][]string{
		PhaseFixed: w.fixed.Names(),
		PhaseFrame: w.frame.Names(),
	}
}

func (w *World) HasExit() bool { return w.Exit.R > w.Exit.L && w.Exit.T > w.Exit.B }

// Step advances the world by one frame of dt seconds. Nothing moves once
// the session has ended.
func (w *World) Step(dt float64) {
	dt *= w.Session.TimeScale()
	if dt <= 0 {
		return
	}
	w.elapsed += dt
	w.accumulator += dt

	w.dt = w.fixedStep
	steps := 0
	for common.Elapsed(w.accumulator, w.fixedStep) && w.Session.Playing() {
		if steps == maxSubSteps {
			w.log.WithFields(logrus.Fields{
				"backlog": w.accumulator,
				"systems": w.fixed.Names(),
			}).Debug("dropping fixed-step backlog")
			w.accumulator = 0
			break
		}
		w.runPhase(w.fixed)
		w.accumulator -= w.fixedStep
		steps++
	}
	if w.accumulator < 0 {
		w.accumulator = 0
	}
	if !w.Session.Playing() {
		return
	}

	w.dt = dt
	w.runPhase(w.frame)
}

func (w *World) runPhase(s *Scheduler) {
	name := s.Update(w)
	if name == "" {
		return
	}
	w.endedBy = string(s.Phase()) + "/" + name
	w.log.WithFields(logrus.Fields{
		"ended_by": w.endedBy,
		"state":    w.Session.State(),
	}).Info("session ended")
}
