package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// FixedStep is the default physics tick length in seconds.
const FixedStep = 1.0 / 50.0

// timeEpsilon absorbs float drift when timers are built from summed deltas.
const timeEpsilon = 1e-9

// directionEpsilon is the squared length under which a vector has no usable direction.
const directionEpsilon = 1e-4

var (
	Right = cp.Vector{X: 1, Y: 0}
	Down  = cp.Vector{X: 0, Y: 1}
	Left  = cp.Vector{X: -1, Y: 0}
	Up    = cp.Vector{X: 0, Y: -1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current toward target by at most maxDelta without overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Elapsed reports whether an accumulated timer has reached threshold.
func Elapsed(timer, threshold float64) bool {
	return timer >= threshold-timeEpsilon
}

// HasDirection reports whether v is long enough to normalize meaningfully.
func HasDirection(v cp.Vector) bool {
	return v.LengthSq() > directionEpsilon
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// no length.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l < 1e-12 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// AngleBetween returns the unsigned angle between a and b in degrees.
// Degenerate inputs yield zero.
func AngleBetween(a, b cp.Vector) float64 {
	denom := math.Sqrt(a.LengthSq() * b.LengthSq())
	if denom < 1e-15 {
		return 0
	}
	d := a.Dot(b) / denom
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d) * 180 / math.Pi
}

// SmoothDamp eases current toward target with a critically damped spring.
// velocity carries state between calls and is updated in place.
func SmoothDamp(current, target cp.Vector, velocity *cp.Vector, smoothTime, dt float64) cp.Vector {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.Mult(omega)).Mult(dt)
	*velocity = velocity.Sub(temp.Mult(omega)).Mult(exp)
	out := target.Add(change.Add(temp).Mult(exp))

	// clamp overshoot
	if target.Sub(current).Dot(out.Sub(target)) > 0 {
		out = target
		*velocity = cp.Vector{}
	}
	return out
}

// Heading returns the rotation in radians that points along dir.
func Heading(dir cp.Vector) float64 {
	return math.Atan2(dir.Y, dir.X)
}
