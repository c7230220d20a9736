package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/ai"
	"github.com/milk9111/sneak/common"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/world"
	"golang.org/x/image/colornames"
)

// coneSegments is how many edges approximate a cone's arc.
const coneSegments = 24

// viewport maps world units to screen pixels.
type viewport struct {
	scale      float64
	offX, offY float64
}

func fitViewport(w, h, screenW, screenH float64) viewport {
	scale := math.Min(screenW/w, screenH/h) * 0.95
	return viewport{
		scale: scale,
		offX:  (screenW - w*scale) / 2,
		offY:  (screenH - h*scale) / 2,
	}
}

func (v viewport) point(p cp.Vector) (float32, float32) {
	return float32(v.offX + p.X*v.scale), float32(v.offY + p.Y*v.scale)
}

func (v viewport) length(l float64) float32 {
	return float32(l * v.scale)
}

func (v viewport) fillBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := v.point(cp.Vector{X: bb.L, Y: bb.B})
	vector.FillRect(screen, x, y, v.length(bb.R-bb.L), v.length(bb.T-bb.B), clr, false)
}

func (v viewport) strokeBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := v.point(cp.Vector{X: bb.L, Y: bb.B})
	vector.StrokeRect(screen, x, y, v.length(bb.R-bb.L), v.length(bb.T-bb.B), 1, clr, false)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// premultiplied
	f := float64(a) / 255
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: a}
}

func drawLevel(screen *ebiten.Image, v viewport, w *world.World) {
	screen.Fill(colornames.Black)
	for _, spot := range w.Physics.HidingSpots() {
		v.fillBB(screen, spot, withAlpha(colornames.Darkgreen, 200))
	}
	if w.HasExit() {
		v.fillBB(screen, w.Exit, withAlpha(colornames.Gold, 160))
		v.strokeBB(screen, w.Exit, colornames.Gold)
	}
	for _, o := range w.Physics.Obstacles() {
		clr := colornames.Dimgray
		if o.Category != world.ObstacleWalls {
			clr = colornames.Lightslategray
		}
		v.fillBB(screen, o.Bounds, clr)
	}
}

func stateColor(s component.AIState) color.RGBA {
	switch s {
	case component.StateChase:
		return colornames.Crimson
	case component.StateSearch:
		return colornames.Orange
	default:
		return colornames.Steelblue
	}
}

func drawGuard(screen *ebiten.Image, v viewport, g *ai.Agent, anim *Animation, debug bool) {
	drawCone(screen, v, g)

	if debug {
		wps := g.Patrol.Route.Waypoints
		for i, wp := range wps {
			x, y := v.point(wp)
			vector.FillCircle(screen, x, y, 3, colornames.Lightgrey, true)
			if len(wps) > 1 {
				nx, ny := v.point(wps[(i+1)%len(wps)])
				vector.StrokeLine(screen, x, y, nx, ny, 1, withAlpha(colornames.Lightgrey, 80), true)
			}
		}
	}

	x, y := v.point(g.Body.Position)
	if anim == nil {
		vector.FillCircle(screen, x, y, v.length(0.3), stateColor(g.State()), true)
		return
	}
	fw, fh := anim.Size()
	scale := float64(v.length(0.7)) / float64(fw)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(fw)/2, -float64(fh)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(stateColor(g.State()))
	anim.Draw(screen, op)
}

// drawCone fans lines from the guard out to the cone's arc.
func drawCone(screen *ebiten.Image, v viewport, g *ai.Agent) {
	cone := g.Sensor.Cone
	clr := withAlpha(colornames.Khaki, 70)
	if g.IsDetecting() {
		clr = withAlpha(colornames.Red, 110)
	}

	origin := g.Body.Position
	heading := common.Heading(g.Facing.Direction())
	half := cone.Angle() * 0.5 * math.Pi / 180
	ox, oy := v.point(origin)

	prev := cp.Vector{}
	for i := 0; i <= coneSegments; i++ {
		a := heading - half + 2*half*float64(i)/coneSegments
		edge := origin.Add(cp.Vector{X: math.Cos(a), Y: math.Sin(a)}.Mult(cone.Radius()))
		ex, ey := v.point(edge)
		vector.StrokeLine(screen, ox, oy, ex, ey, 1, clr, true)
		if i > 0 {
			px, py := v.point(prev)
			vector.StrokeLine(screen, px, py, ex, ey, 1.5, clr, true)
		}
		prev = edge
	}
}

func drawIntruder(screen *ebiten.Image, v viewport, in *world.Intruder) {
	if in == nil {
		return
	}
	x, y := v.point(in.Position())
	clr := colornames.Limegreen
	if in.IsHidden() {
		clr = withAlpha(colornames.Limegreen, 90)
	}
	vector.FillCircle(screen, x, y, v.length(0.25), clr, true)
}

func drawGuardStatus(screen *ebiten.Image, w *world.World) {
	for i, g := range w.Guards() {
		line := fmt.Sprintf("%-8s %-7s cone=%.2f/%.0f dir=%s moving=%v anim=%.1f captures=%d",
			g.Name, g.State(), g.Sensor.Cone.Radius(), g.Sensor.Cone.Angle(),
			g.DisplayDirection(), g.IsMoving(), g.AnimSpeed(), g.Pursuit.Captures())
		ebitenutil.DebugPrintAt(screen, line, 0, 20+16*i)
	}
}
