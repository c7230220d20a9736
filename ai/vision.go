package ai

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// angleTolerance keeps targets sitting on the cone edge detectable despite
// rounding in the angle computation.
const angleTolerance = 1e-9

// VisionSensor decides whether a target is visible from an origin along a
// facing direction.
type VisionSensor struct {
	Cone component.VisionCone

	occluder  Occluder
	detecting bool
	log       *logrus.Entry
}

func NewVisionSensor(guard string, cfg component.VisionConfig, occluder Occluder) *VisionSensor {
	s := &VisionSensor{
		Cone:     component.NewVisionCone(cfg.Radius, cfg.Angle, cfg.Obstacles),
		occluder: occluder,
		log:      logger.For("vision").WithField("guard", guard),
	}
	if cfg.Obstacles == 0 {
		s.warnEmptyMask()
	}
	return s
}

// Configure replaces the cone's base values and obstacle mask. Current
// values are kept so an active inflation keeps decaying from where it is.
func (s *VisionSensor) Configure(cfg component.VisionConfig) {
	hadMask := s.Cone.Obstacles != 0
	fresh := component.NewVisionCone(cfg.Radius, cfg.Angle, cfg.Obstacles)
	s.Cone.BaseRadius = fresh.BaseRadius
	s.Cone.BaseAngle = fresh.BaseAngle
	s.Cone.Obstacles = fresh.Obstacles
	if hadMask && cfg.Obstacles == 0 {
		s.warnEmptyMask()
	}
}

func (s *VisionSensor) warnEmptyMask() {
	s.log.Warn("obstacle mask is empty; vision will never be blocked by walls")
}

// SetOccluder swaps the occlusion collaborator. A nil occluder leaves the
// sensor unoccluded.
func (s *VisionSensor) SetOccluder(o Occluder) {
	s.occluder = o
}

// Evaluate runs the range, angle and line of sight tests in order and stops
// at the first failure. A concealed target is never visible.
func (s *VisionSensor) Evaluate(origin, facing, target cp.Vector, concealed bool) bool {
	if concealed {
		return false
	}

	toTarget := target.Sub(origin)
	r := s.Cone.Radius()
	if toTarget.LengthSq() > r*r {
		return false
	}

	if common.AngleBetween(facing, common.Normalize(toTarget)) > s.Cone.Angle()*0.5+angleTolerance {
		return false
	}

	if s.Cone.Obstacles == 0 || s.occluder == nil {
		return true
	}
	return !s.occluder.Occluded(origin, target, s.Cone.Obstacles)
}

// Sense evaluates t and stores the result for IsDetecting. A nil target is
// never detected.
func (s *VisionSensor) Sense(origin, facing cp.Vector, t Target) bool {
	if t == nil {
		s.detecting = false
		return false
	}
	seen := s.Evaluate(origin, facing, t.Position(), concealed(t))
	if seen != s.detecting {
		s.log.WithField("detecting", seen).Debug("detection changed")
	}
	s.detecting = seen
	return seen
}

// InPlainSight is Evaluate with the concealment veto ignored.
func (s *VisionSensor) InPlainSight(origin, facing cp.Vector, t Target) bool {
	if t == nil {
		return false
	}
	return s.Evaluate(origin, facing, t.Position(), false)
}

// IsDetecting returns the result of the last Sense call.
func (s *VisionSensor) IsDetecting() bool {
	return s.detecting
}
