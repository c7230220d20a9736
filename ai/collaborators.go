package ai

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/component"
)

// Target is the intruder the guards look for.
type Target interface {
	Position() cp.Vector
}

// Concealable is implemented by targets that can hide. Concealment defeats
// detection outright.
type Concealable interface {
	IsHidden() bool
}

// Occluder answers whether an obstacle in mask lies on the segment from
// one point to another.
type Occluder interface {
	Occluded(from, to cp.Vector, mask component.ObstacleMask) bool
}

// CaptureListener is told when a guard catches the target. It owns ending
// the session.
type CaptureListener interface {
	OnCapture(guard string)
}

func concealed(t Target) bool {
	c, ok := t.(Concealable)
	return ok && c.IsHidden()
}
