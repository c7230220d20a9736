package world

// IntruderSystem moves the intruder on the fixed tick and checks the exit.
type IntruderSystem struct{}

func (IntruderSystem) Name() string { return "intruder" }

func (IntruderSystem) Update(w *World) {
	in := w.Intruder
	if in == nil {
		return
	}
	in.Step(w.Dt())
	if w.HasExit() && w.Exit.ContainsVect(in.Position()) {
		w.Session.ReachExit()
	}
}

// PatrolSystem advances every guard's route on the fixed tick.
type PatrolSystem struct{}

func (PatrolSystem) Name() string { return "patrol" }

func (PatrolSystem) Update(w *World) {
	for _, g := range w.guards {
		g.FixedUpdate(w.Dt())
	}
}

type FacingSystem struct{}

func (FacingSystem) Name() string { return "facing" }

func (FacingSystem) Update(w *World) {
	for _, g := range w.guards {
		g.UpdateFacing(w.Dt())
	}
}

type VisionSystem struct{}

func (VisionSystem) Name() string { return "vision" }

func (VisionSystem) Update(w *World) {
	target := w.Target()
	for _, g := range w.guards {
		g.Sense(target)
	}
}

// PursuitSystem runs each guard's state machine. A capture ends the
// session, so remaining guards are skipped.
type PursuitSystem struct{}

func (PursuitSystem) Name() string { return "pursuit" }

func (PursuitSystem) Update(w *World) {
	target := w.Target()
	for _, g := range w.guards {
		if !w.Session.Playing() {
			return
		}
		g.Decide(w.Dt(), target)
	}
}
