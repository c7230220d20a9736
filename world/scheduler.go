package world

import (
	"fmt"

	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// Phase names the tick domain a scheduler runs in.
type Phase string

const (
	PhaseFixed Phase = "fixed"
	PhaseFrame Phase = "frame"
)

// System updates a world once per tick of its phase.
type System interface {
	Update(w *World)
}

// Named lets a system choose its label in logs. Other systems are labelled
// by their Go type.
type Named interface {
	Name() string
}

// Scheduler runs one phase's systems in order. A pass stops at the system
// that ends the session, so later systems never act on a finished game.
type Scheduler struct {
	phase   Phase
	systems []System
	names   []string
	log     *logrus.Entry
}

func NewScheduler(phase Phase, systems ...System) *Scheduler {
	s := &Scheduler{
		phase: phase,
		log:   logger.For("scheduler").WithField("phase", string(phase)),
	}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Phase() Phase { return s.phase }

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.names = append(s.names, systemName(system))
}

// Update runs one pass and returns the name of the system that ended the
// session, or "" if the session is still playing.
func (s *Scheduler) Update(w *World) string {
	for i, system := range s.systems {
		if !w.Session.Playing() {
			return ""
		}
		system.Update(w)
		if !w.Session.Playing() {
			s.log.WithFields(logrus.Fields{
				"system": s.names[i],
				"state":  w.Session.State(),
			}).Debug("session ended; skipping rest of pass")
			return s.names[i]
		}
	}
	return ""
}

// Names lists the systems in run order.
func (s *Scheduler) Names() []string {
	return append([]string(nil), s.names...)
}

func systemName(system System) string {
	if n, ok := system.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", system)
}
