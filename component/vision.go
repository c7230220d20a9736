package component

import "math"

const (
	MinViewRadius = 0.01
	MinViewAngle  = 1.0
	MaxViewAngle  = 179.0
)

// ObstacleMask selects which obstacle categories block line of sight.
type ObstacleMask uint

// VisionCone stores the sensor's configured and current cone. ViewAngle is
// the full aperture in degrees; a target is inside the cone when its angle
// from the facing direction is at most half of it.
type VisionCone struct {
	BaseRadius float64
	BaseAngle  float64
	Obstacles  ObstacleMask

	radius float64
	angle  float64
}

// NewVisionCone returns a cone whose current values equal its base values.
func NewVisionCone(radius, angle float64, obstacles ObstacleMask) VisionCone {
	c := VisionCone{Obstacles: obstacles}
	c.SetRadius(radius)
	c.SetAngle(angle)
	c.BaseRadius = c.radius
	c.BaseAngle = c.angle
	return c
}

func (c *VisionCone) Radius() float64 { return c.radius }

func (c *VisionCone) Angle() float64 { return c.angle }

func (c *VisionCone) SetRadius(r float64) {
	c.radius = math.Max(MinViewRadius, r)
}

func (c *VisionCone) SetAngle(a float64) {
	c.angle = math.Min(MaxViewAngle, math.Max(MinViewAngle, a))
}

// Reset snaps the current cone back to its base values.
func (c *VisionCone) Reset() {
	c.SetRadius(c.BaseRadius)
	c.SetAngle(c.BaseAngle)
}

// Inflated reports whether either current value is above base.
func (c *VisionCone) Inflated() bool {
	return c.radius > c.BaseRadius || c.angle > c.BaseAngle
}
