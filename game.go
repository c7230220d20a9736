package main

import (
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/sneak/entity"
	"github.com/milk9111/sneak/levels"
	"github.com/milk9111/sneak/logger"
	"github.com/milk9111/sneak/prefabs"
	"github.com/milk9111/sneak/world"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var errQuit = errors.New("quit")

type Game struct {
	frames int
	debug  bool

	input   *Input
	level   *levels.Level
	builder *entity.Builder
	world   *world.World
	watcher *prefabs.Watcher
	view    viewport
	sheet   *ebiten.Image
	anims   map[string]*Animation
	endUI   *ebitenui.UI
	choice  endAction
	log     *logrus.Entry
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	g := &Game{
		debug:   debug,
		input:   NewInput(),
		level:   lvl,
		builder: entity.NewBuilder(),
		view:    fitViewport(lvl.Width, lvl.Height, baseWidth, baseHeight),
		sheet:   buildGuardSheet(),
		log:     logger.For("viewer"),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	if watch {
		w, err := prefabs.NewWatcher(prefabs.DefaultWatchDirs...)
		if err != nil {
			g.log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) restart() error {
	w, err := g.builder.BuildWorld(g.level)
	if err != nil {
		return fmt.Errorf("viewer: build %s: %w", g.level.Name, err)
	}
	w.Session.OnEnd = func(state world.GameState) {
		g.log.WithField("state", state).Info("session over")
		g.endUI = NewEndUI(w.Session, w.Elapsed(), func(a endAction) { g.choice = a })
	}
	g.world = w
	g.endUI = nil
	g.choice = endNone
	g.anims = make(map[string]*Animation, len(w.Guards()))
	for _, guard := range w.Guards() {
		g.anims[guard.Name] = NewAnimation(g.sheet, guardFrameSize, guardFrameSize, guardFPS)
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()
	if g.input.QuitPressed {
		return errQuit
	}
	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.endUI != nil {
		g.endUI.Update()
	}
	choice := g.choice
	g.choice = endNone
	if choice == endQuit {
		return errQuit
	}
	if g.input.RestartPressed || choice == endRestart {
		if err := g.restart(); err != nil {
			g.log.WithError(err).Error("restart failed")
		}
	}
	g.pollReload()

	if in := g.world.Intruder; in != nil && g.world.Session.Playing() {
		in.SetInput(g.input.Move)
		if g.input.HidePressed {
			in.ToggleHide()
		}
	}
	dt := 1 / float64(ebiten.TPS())
	g.world.Step(dt)
	dt *= g.world.Session.TimeScale()
	for _, guard := range g.world.Guards() {
		g.anims[guard.Name].Update(dt, guard.AnimSpeed(), guard.IsMoving(), guard.DisplayDirection())
	}
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			if prefabs.IsScriptFile(name) {
				g.builder.Invalidate()
			}
			if err := g.builder.Reload(g.world, g.level); err != nil {
				g.log.WithError(err).WithField("file", name).Warn("prefab reload failed")
			}
		case err := <-g.watcher.Errors:
			g.log.WithError(err).Warn("prefab watcher error")
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawLevel(screen, g.view, g.world)
	for _, guard := range g.world.Guards() {
		drawGuard(screen, g.view, guard, g.anims[guard.Name], g.debug)
	}
	drawIntruder(screen, g.view, g.world.Intruder)

	status := fmt.Sprintf("%s    %s    t=%.1fs", g.level.Name, g.world.Session.State(), g.world.Elapsed())
	if g.debug {
		status += fmt.Sprintf("    FPS: %.2f", ebiten.ActualFPS())
	}
	ebitenutil.DebugPrint(screen, status)
	if g.debug {
		drawGuardStatus(screen, g.world)
	}
	if g.endUI != nil && !g.world.Session.Playing() {
		g.endUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
