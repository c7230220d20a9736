package ai

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
)

// FacingModel resolves where an agent is looking. Direction is the smoothed
// continuous vector the sensor uses; DisplayDirection is its four-way
// quantization with a minimum hold between changes.
type FacingModel struct {
	cfg component.FacingConfig

	lastDir     cp.Vector
	smoothed    cp.Vector
	smoothVel   cp.Vector
	direction   cp.Vector
	dirIndex    component.CardinalDir
	sinceSwitch float64
	moving      bool
}

func NewFacingModel(cfg component.FacingConfig, initial cp.Vector) *FacingModel {
	if !common.HasDirection(initial) {
		initial = common.Right
	}
	initial = common.Normalize(initial)
	return &FacingModel{
		cfg:         cfg,
		lastDir:     initial,
		smoothed:    initial,
		direction:   initial,
		dirIndex:    component.QuantizeDir(initial),
		sinceSwitch: cfg.MinSwitchInterval,
	}
}

func (f *FacingModel) Configure(cfg component.FacingConfig) {
	f.cfg = cfg
}

// Update feeds one frame of motion into the model.
func (f *FacingModel) Update(velocity cp.Vector, override component.FacingOverride, dt float64) (bool, component.CardinalDir) {
	idle := f.cfg.IdleThreshold
	moving := velocity.LengthSq() > idle*idle

	var base cp.Vector
	if moving {
		base = common.Normalize(velocity)
	} else if dir, ok := override.Get(); ok {
		base = dir
	} else {
		base = f.lastDir
	}

	shown := base
	if f.cfg.SmoothTime > 0 {
		f.smoothed = common.SmoothDamp(f.smoothed, base, &f.smoothVel, f.cfg.SmoothTime, dt)
		if common.HasDirection(f.smoothed) {
			shown = common.Normalize(f.smoothed)
		}
	}

	if moving {
		f.lastDir = shown
	}
	f.direction = shown
	f.moving = moving

	f.sinceSwitch += dt
	idx := component.QuantizeDir(shown)
	if idx != f.dirIndex && common.Elapsed(f.sinceSwitch, f.cfg.MinSwitchInterval) {
		f.dirIndex = idx
		f.sinceSwitch = 0
	}

	return f.moving, f.dirIndex
}

func (f *FacingModel) Direction() cp.Vector { return f.direction }

func (f *FacingModel) IsMoving() bool { return f.moving }

func (f *FacingModel) DisplayDirection() component.CardinalDir { return f.dirIndex }

// AnimSpeed returns the playback speed for the current behavior.
func (f *FacingModel) AnimSpeed(chasing bool) float64 {
	if chasing {
		return f.cfg.ChaseAnimSpeed
	}
	return f.cfg.PatrolAnimSpeed
}
