package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/ai"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/levels"
	"github.com/milk9111/sneak/logger"
	"github.com/milk9111/sneak/prefabs"
	"github.com/milk9111/sneak/world"
	"github.com/sirupsen/logrus"
)

const (
	defaultGuardPrefab    = "guard.yaml"
	defaultIntruderPrefab = "intruder.yaml"
)

// Builder turns levels and prefabs into a running world. Compiled hook
// scripts are cached per path and cloned for each guard.
type Builder struct {
	hooks map[string]*ai.ScriptHooks
	log   *logrus.Entry
}

func NewBuilder() *Builder {
	return &Builder{
		hooks: make(map[string]*ai.ScriptHooks),
		log:   logger.For("entity"),
	}
}

// Invalidate drops cached scripts so the next build recompiles them.
func (b *Builder) Invalidate() {
	clear(b.hooks)
}

func (b *Builder) BuildWorld(lvl *levels.Level) (*world.World, error) {
	if lvl == nil {
		return nil, fmt.Errorf("entity: build world: level is nil")
	}

	physics := world.NewPhysicsWorld()
	for _, r := range lvl.Obstacles {
		physics.AddObstacle(r.BB(), component.ObstacleMask(r.Category))
	}
	for _, r := range lvl.HidingSpots {
		physics.AddHidingSpot(r.BB())
	}

	w := world.New(physics, world.NewSession())
	if lvl.Exit != nil {
		w.Exit = lvl.Exit.BB()
	}

	intruder, err := b.BuildIntruder(lvl.Intruder, physics)
	if err != nil {
		return nil, err
	}
	w.Intruder = intruder

	for _, g := range lvl.Guards {
		agent, err := b.BuildGuard(lvl, g, physics, w.Session)
		if err != nil {
			return nil, err
		}
		w.AddGuard(agent)
	}

	b.log.WithFields(logrus.Fields{
		"level":     lvl.Name,
		"guards":    len(lvl.Guards),
		"obstacles": len(lvl.Obstacles),
	}).Info("world built")
	return w, nil
}

func (b *Builder) BuildIntruder(spawn levels.Spawn, terrain world.Terrain) (*world.Intruder, error) {
	prefab := spawn.Prefab
	if prefab == "" {
		prefab = defaultIntruderPrefab
	}
	spec, err := prefabs.LoadIntruderSpec(prefab)
	if err != nil {
		return nil, fmt.Errorf("entity: intruder: %w", err)
	}
	cfg := world.IntruderConfig{Speed: spec.Speed, Radius: spec.Radius}
	return world.NewIntruder(cfg, spawn.Position.Vec(), terrain), nil
}

func (b *Builder) BuildGuard(lvl *levels.Level, g levels.Guard, occluder ai.Occluder, capture ai.CaptureListener) (*ai.Agent, error) {
	cfg, err := b.GuardConfig(lvl, g)
	if err != nil {
		return nil, err
	}
	return ai.NewAgent(cfg, occluder, capture), nil
}

// GuardConfig loads a placement's prefab, applies its overrides and
// resolves its route. Out-of-range values are logged and replaced: an
// invalid prefab falls back to the built-in defaults, and invalid overrides
// are dropped in favour of the prefab.
func (b *Builder) GuardConfig(lvl *levels.Level, g levels.Guard) (ai.AgentConfig, error) {
	spec, err := b.guardSpec(g)
	if err != nil {
		return ai.AgentConfig{}, fmt.Errorf("entity: guard %q: %w", g.Name, err)
	}

	cfg := AgentConfig(spec, g.Name, g.Position.Vec(), lvl.Waypoints(g))
	if spec.Script != "" {
		hooks, err := b.hooksFor(spec.Script)
		if err != nil {
			return ai.AgentConfig{}, fmt.Errorf("entity: guard %q: %w", g.Name, err)
		}
		cfg.Hooks = hooks
	}
	return cfg, nil
}

func (b *Builder) guardSpec(g levels.Guard) (prefabs.GuardSpec, error) {
	prefab := g.Prefab
	if prefab == "" {
		prefab = defaultGuardPrefab
	}
	log := b.log.WithFields(logrus.Fields{"guard": g.Name, "prefab": prefab})

	spec, err := prefabs.LoadGuardSpec(prefab)
	switch {
	case errors.Is(err, prefabs.ErrInvalidSpec):
		log.WithError(err).Warn("invalid prefab; using defaults without overrides")
		return prefabs.DefaultGuardSpec(), nil
	case err != nil:
		return prefabs.GuardSpec{}, err
	}

	merged, err := spec.WithOverrides(g.Overrides)
	switch {
	case errors.Is(err, prefabs.ErrInvalidSpec):
		log.WithError(err).Warn("invalid level overrides; using prefab values")
		return spec, nil
	case err != nil:
		return prefabs.GuardSpec{}, err
	}
	return merged, nil
}

// Reload re-reads every guard's prefab and applies it in place. Guards
// keep their state and route progress.
func (b *Builder) Reload(w *world.World, lvl *levels.Level) error {
	for _, g := range lvl.Guards {
		agent := w.Guard(g.Name)
		if agent == nil {
			continue
		}
		cfg, err := b.GuardConfig(lvl, g)
		if err != nil {
			return err
		}
		agent.Configure(cfg)
	}
	b.log.WithField("level", lvl.Name).Info("guards reconfigured")
	return nil
}

func (b *Builder) hooksFor(script string) (*ai.ScriptHooks, error) {
	if h, ok := b.hooks[script]; ok {
		return h.Clone(), nil
	}
	src, err := prefabs.LoadScript(script)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", script, err)
	}
	h, err := ai.CompileHooks(script, src)
	if err != nil {
		return nil, err
	}
	b.hooks[script] = h
	return h.Clone(), nil
}

// AgentConfig maps a validated prefab onto agent construction values.
func AgentConfig(spec prefabs.GuardSpec, name string, pos cp.Vector, waypoints []cp.Vector) ai.AgentConfig {
	order := component.LookClockwise
	if spec.Patrol.LookOrder == prefabs.LookOrderCounterClockwise {
		order = component.LookCounterClockwise
	}
	return ai.AgentConfig{
		Name:      name,
		Position:  pos,
		Waypoints: waypoints,
		Vision: component.VisionConfig{
			Radius:    spec.Vision.Radius,
			Angle:     spec.Vision.Angle,
			Obstacles: component.ObstacleMask(spec.Vision.ObstacleMask),
		},
		Facing: component.FacingConfig{
			IdleThreshold:     spec.Facing.IdleThreshold,
			SmoothTime:        spec.Facing.SmoothTime,
			MinSwitchInterval: spec.Facing.MinSwitchInterval,
			PatrolAnimSpeed:   spec.Facing.PatrolAnimSpeed,
			ChaseAnimSpeed:    spec.Facing.ChaseAnimSpeed,
		},
		Patrol: component.PatrolConfig{
			Speed:           spec.Patrol.Speed,
			ArriveThreshold: spec.Patrol.ArriveThreshold,
			WaitAtPoint:     spec.Patrol.WaitAtPoint,
			PingPong:        spec.Patrol.PingPong,
			RotateTransform: spec.Patrol.RotateTransform,
			LookAround:      spec.Patrol.LookAround,
			LookStep:        spec.Patrol.LookStep,
			LookOrder:       order,
		},
		Pursuit: component.PursuitConfig{
			PatrolSpeed:          spec.Pursuit.PatrolSpeed,
			ChaseSpeed:           spec.Pursuit.ChaseSpeed,
			ExpandMultiplier:     spec.Pursuit.ExpandMultiplier,
			ShrinkPerSecond:      spec.Pursuit.ShrinkPerSecond,
			RepathInterval:       spec.Pursuit.RepathInterval,
			LoseSightTime:        spec.Pursuit.LoseSightTime,
			SearchTime:           spec.Pursuit.SearchTime,
			CatchDistance:        spec.Pursuit.CatchDistance,
			CaptureOnHideInSight: spec.Pursuit.CaptureOnHideInSight,
		},
	}
}
