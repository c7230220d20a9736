package main

import (
	"flag"
	"os"

	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/entity"
	"github.com/milk9111/sneak/levels"
	"github.com/milk9111/sneak/logger"
	"github.com/milk9111/sneak/world"
	"github.com/sirupsen/logrus"
)

type result struct {
	State       world.GameState
	CapturedBy  string
	EndedBy     string
	Elapsed     float64
	Transitions int
}

func main() {
	levelName := flag.String("level", "corridor", "level name in levels/ (basename, .json optional)")
	seconds := flag.Float64("seconds", 30, "simulated seconds before giving up")
	fps := flag.Int("fps", 60, "decision ticks per simulated second")
	flag.Parse()

	logger.Init()
	log := logger.For("sim")

	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.WithError(err).Fatal("failed to load level")
	}
	res, err := run(lvl, *seconds, *fps, log)
	if err != nil {
		log.WithError(err).Fatal("simulation failed")
	}

	log.WithFields(logrus.Fields{
		"level":       lvl.Name,
		"outcome":     res.State,
		"captured_by": res.CapturedBy,
		"ended_by":    res.EndedBy,
		"elapsed":     res.Elapsed,
		"transitions": res.Transitions,
	}).Info("simulation finished")
	if res.State == world.StateGameOver {
		os.Exit(2)
	}
}

// run walks the intruder straight at the exit until the session ends or
// the time limit passes.
func run(lvl *levels.Level, seconds float64, fps int, log *logrus.Entry) (result, error) {
	if fps <= 0 {
		fps = 60
	}
	w, err := entity.NewBuilder().BuildWorld(lvl)
	if err != nil {
		return result{}, err
	}

	res := result{}
	for _, g := range w.Guards() {
		name := g.Name
		g.OnTransition = func(from, to component.AIState) {
			res.Transitions++
			log.WithFields(logrus.Fields{
				"guard": name,
				"from":  from,
				"to":    to,
				"t":     w.Elapsed(),
			}).Info("guard state changed")
		}
	}

	dt := 1 / float64(fps)
	for w.Session.Playing() && w.Elapsed() < seconds {
		if w.Intruder != nil && w.HasExit() {
			w.Intruder.SetInput(w.Exit.Center().Sub(w.Intruder.Position()))
		}
		w.Step(dt)
	}

	res.State = w.Session.State()
	res.CapturedBy = w.Session.CapturedBy()
	res.EndedBy = w.EndedBy()
	res.Elapsed = w.Elapsed()
	return res, nil
}
