package component

import "github.com/jakecoffman/cp"

// Body is the kinematic state of an agent. Velocity is reported, not
// integrated: movers write Position directly and Velocity describes the
// motion they applied.
type Body struct {
	Position cp.Vector
	Velocity cp.Vector
	Rotation float64
}
