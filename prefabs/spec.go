package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VisionSpec struct {
	Radius       float64 `yaml:"radius"`
	Angle        float64 `yaml:"angle"`
	ObstacleMask uint    `yaml:"obstacle_mask"`
}

type FacingSpec struct {
	IdleThreshold     float64 `yaml:"idle_threshold"`
	SmoothTime        float64 `yaml:"smooth_time"`
	MinSwitchInterval float64 `yaml:"min_switch_interval"`
	PatrolAnimSpeed   float64 `yaml:"patrol_anim_speed"`
	ChaseAnimSpeed    float64 `yaml:"chase_anim_speed"`
}

type PatrolSpec struct {
	Speed           float64 `yaml:"speed"`
	ArriveThreshold float64 `yaml:"arrive_threshold"`
	WaitAtPoint     float64 `yaml:"wait_at_point"`
	PingPong        bool    `yaml:"ping_pong"`
	RotateTransform bool    `yaml:"rotate_transform"`
	LookAround      bool    `yaml:"look_around"`
	LookStep        float64 `yaml:"look_step"`
	LookOrder       string  `yaml:"look_order"`
}

type PursuitSpec struct {
	PatrolSpeed          float64 `yaml:"patrol_speed"`
	ChaseSpeed           float64 `yaml:"chase_speed"`
	ExpandMultiplier     float64 `yaml:"expand_multiplier"`
	ShrinkPerSecond      float64 `yaml:"shrink_per_second"`
	RepathInterval       float64 `yaml:"repath_interval"`
	LoseSightTime        float64 `yaml:"lose_sight_time"`
	SearchTime           float64 `yaml:"search_time"`
	CatchDistance        float64 `yaml:"catch_distance"`
	CaptureOnHideInSight bool    `yaml:"capture_on_hide_in_sight"`
}

// GuardSpec is a guard prefab. Keys missing from the YAML keep the values
// of DefaultGuardSpec.
type GuardSpec struct {
	Name    string      `yaml:"name"`
	Script  string      `yaml:"script"`
	Vision  VisionSpec  `yaml:"vision"`
	Facing  FacingSpec  `yaml:"facing"`
	Patrol  PatrolSpec  `yaml:"patrol"`
	Pursuit PursuitSpec `yaml:"pursuit"`
}

func DefaultGuardSpec() GuardSpec {
	return GuardSpec{
		Name:   "guard",
		Vision: VisionSpec{Radius: 5, Angle: 70, ObstacleMask: 1},
		Facing: FacingSpec{
			IdleThreshold:     0.05,
			SmoothTime:        0.1,
			MinSwitchInterval: 0.08,
			PatrolAnimSpeed:   1,
			ChaseAnimSpeed:    1.6,
		},
		Patrol: PatrolSpec{
			Speed:           3,
			ArriveThreshold: 0.1,
			WaitAtPoint:     0.2,
			RotateTransform: true,
			LookAround:      true,
			LookStep:        0.25,
			LookOrder:       LookOrderClockwise,
		},
		Pursuit: PursuitSpec{
			PatrolSpeed:          3,
			ChaseSpeed:           5,
			ExpandMultiplier:     1.6,
			ShrinkPerSecond:      0.25,
			RepathInterval:       0.05,
			LoseSightTime:        2,
			SearchTime:           1.5,
			CatchDistance:        0.5,
			CaptureOnHideInSight: true,
		},
	}
}

// ErrInvalidSpec marks a prefab or override whose values are out of range.
// Callers may fall back to defaults on it; load and syntax errors do not
// carry it.
var ErrInvalidSpec = errors.New("invalid guard spec")

const (
	LookOrderClockwise        = "clockwise"
	LookOrderCounterClockwise = "counterclockwise"
)

// Validate reports every out-of-range value in the spec.
func (s GuardSpec) Validate() error {
	var errs []error
	positive := func(field string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", field, v))
		}
	}
	nonNegative := func(field string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", field, v))
		}
	}

	positive("vision.radius", s.Vision.Radius)
	if s.Vision.Angle <= 0 || s.Vision.Angle >= 180 {
		errs = append(errs, fmt.Errorf("vision.angle must be in (0, 180), got %v", s.Vision.Angle))
	}

	nonNegative("facing.idle_threshold", s.Facing.IdleThreshold)
	nonNegative("facing.smooth_time", s.Facing.SmoothTime)
	nonNegative("facing.min_switch_interval", s.Facing.MinSwitchInterval)

	positive("patrol.speed", s.Patrol.Speed)
	nonNegative("patrol.arrive_threshold", s.Patrol.ArriveThreshold)
	nonNegative("patrol.wait_at_point", s.Patrol.WaitAtPoint)
	positive("patrol.look_step", s.Patrol.LookStep)
	switch s.Patrol.LookOrder {
	case "", LookOrderClockwise, LookOrderCounterClockwise:
	default:
		errs = append(errs, fmt.Errorf("patrol.look_order must be %q or %q, got %q", LookOrderClockwise, LookOrderCounterClockwise, s.Patrol.LookOrder))
	}

	nonNegative("pursuit.patrol_speed", s.Pursuit.PatrolSpeed)
	nonNegative("pursuit.chase_speed", s.Pursuit.ChaseSpeed)
	if s.Pursuit.ExpandMultiplier < 1 {
		errs = append(errs, fmt.Errorf("pursuit.expand_multiplier must be at least 1, got %v", s.Pursuit.ExpandMultiplier))
	}
	nonNegative("pursuit.shrink_per_second", s.Pursuit.ShrinkPerSecond)
	nonNegative("pursuit.repath_interval", s.Pursuit.RepathInterval)
	nonNegative("pursuit.lose_sight_time", s.Pursuit.LoseSightTime)
	nonNegative("pursuit.search_time", s.Pursuit.SearchTime)
	nonNegative("pursuit.catch_distance", s.Pursuit.CatchDistance)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("prefabs: guard %q: %w: %w", s.Name, ErrInvalidSpec, errors.Join(errs...))
}

// WithOverrides returns a copy of s with raw applied on top. raw uses the
// same keys as the YAML prefab.
func (s GuardSpec) WithOverrides(raw map[string]any) (GuardSpec, error) {
	if len(raw) == 0 {
		return s, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return s, fmt.Errorf("prefabs: marshal overrides: %w: %w", ErrInvalidSpec, err)
	}
	out := s
	if err := yaml.Unmarshal(b, &out); err != nil {
		return s, fmt.Errorf("prefabs: apply overrides: %w: %w", ErrInvalidSpec, err)
	}
	if err := out.Validate(); err != nil {
		return s, err
	}
	return out, nil
}

// LoadGuardSpec reads and validates a guard prefab.
func LoadGuardSpec(filename string) (GuardSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return GuardSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseGuardSpec(filename, data)
}

func ParseGuardSpec(filename string, data []byte) (GuardSpec, error) {
	spec := DefaultGuardSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return GuardSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if err := spec.Validate(); err != nil {
		return GuardSpec{}, err
	}
	return spec, nil
}

type IntruderSpec struct {
	Name   string  `yaml:"name"`
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
}

func LoadIntruderSpec(filename string) (IntruderSpec, error) {
	spec, err := LoadSpec[IntruderSpec](filename)
	if err != nil {
		return IntruderSpec{}, err
	}
	if spec.Speed <= 0 {
		return IntruderSpec{}, fmt.Errorf("prefabs: intruder %q: speed must be positive, got %v", spec.Name, spec.Speed)
	}
	if spec.Radius < 0 {
		return IntruderSpec{}, fmt.Errorf("prefabs: intruder %q: radius must not be negative, got %v", spec.Name, spec.Radius)
	}
	return spec, nil
}
