package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
)

// FacingOverride is an optional direction that replaces velocity-derived
// facing while present.
type FacingOverride struct {
	dir cp.Vector
	set bool
}

func SomeFacing(dir cp.Vector) FacingOverride {
	return FacingOverride{dir: common.Normalize(dir), set: true}
}

func NoFacing() FacingOverride {
	return FacingOverride{}
}

func (o FacingOverride) Get() (cp.Vector, bool) {
	return o.dir, o.set
}

func (o FacingOverride) IsSet() bool {
	return o.set
}

// CardinalDir is the quantized display direction.
type CardinalDir int

const (
	DirFront CardinalDir = iota
	DirLeft
	DirBack
	DirRight
)

func (d CardinalDir) String() string {
	switch d {
	case DirFront:
		return "front"
	case DirLeft:
		return "left"
	case DirBack:
		return "back"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// QuantizeDir buckets d by its dominant axis. Screen coordinates: +Y is down,
// which is the "front" of a sprite.
func QuantizeDir(d cp.Vector) CardinalDir {
	if math.Abs(d.X) > math.Abs(d.Y) {
		if d.X < 0 {
			return DirLeft
		}
		return DirRight
	}
	if d.Y < 0 {
		return DirBack
	}
	return DirFront
}
