package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sneak/component"
)

// Animation plays a spritesheet with one row per cardinal direction, laid
// out in component.CardinalDir order. Frames advance with simulated time
// scaled by a playback speed.
type Animation struct {
	Sheet      *ebiten.Image
	FrameW     int
	FrameH     int
	FrameCount int
	FPS        float64

	row     int
	current int
	elapsed float64
	frames  [][]*ebiten.Image
}

func NewAnimation(sheet *ebiten.Image, frameW, frameH int, fps float64) *Animation {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return &Animation{}
	}
	if fps <= 0 {
		fps = 8
	}
	bounds := sheet.Bounds()
	a := &Animation{
		Sheet:      sheet,
		FrameW:     frameW,
		FrameH:     frameH,
		FrameCount: bounds.Dx() / frameW,
		FPS:        fps,
	}
	a.buildFrames(bounds.Dy() / frameH)
	return a
}

func (a *Animation) buildFrames(rows int) {
	a.frames = make([][]*ebiten.Image, rows)
	for r := 0; r < rows; r++ {
		a.frames[r] = make([]*ebiten.Image, a.FrameCount)
		for i := 0; i < a.FrameCount; i++ {
			sx, sy := i*a.FrameW, r*a.FrameH
			rect := image.Rect(sx, sy, sx+a.FrameW, sy+a.FrameH)
			a.frames[r][i] = a.Sheet.SubImage(rect).(*ebiten.Image)
		}
	}
}

// Update advances the clip. An idle agent holds the first frame of its
// direction row.
func (a *Animation) Update(dt, speed float64, moving bool, dir component.CardinalDir) {
	if a == nil || len(a.frames) == 0 {
		return
	}
	if row := int(dir); row >= 0 && row < len(a.frames) {
		a.row = row
	}
	if !moving || a.FrameCount <= 1 {
		a.Reset()
		return
	}
	a.elapsed += dt * speed
	frameTime := 1 / a.FPS
	for a.elapsed >= frameTime {
		a.elapsed -= frameTime
		a.current = (a.current + 1) % a.FrameCount
	}
}

// Reset sets the animation back to the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.elapsed = 0
}

func (a *Animation) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	if a == nil || len(a.frames) == 0 || a.FrameCount == 0 {
		return
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterLinear
	screen.DrawImage(a.frames[a.row][a.current], &dop)
}

// Size returns the frame width/height.
func (a *Animation) Size() (int, int) { return a.FrameW, a.FrameH }
