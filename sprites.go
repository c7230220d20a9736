package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/common"
	"golang.org/x/image/colornames"
)

const (
	guardFrameSize = 32
	guardFrames    = 4
	guardFPS       = 8
)

// rowFacing lists each sheet row's direction in component.CardinalDir order.
var rowFacing = []cp.Vector{common.Down, common.Left, common.Up, common.Right}

// buildGuardSheet draws a white walk cycle for every cardinal direction so
// it can be tinted with the guard's state color.
func buildGuardSheet() *ebiten.Image {
	size := float32(guardFrameSize)
	sheet := ebiten.NewImage(guardFrameSize*guardFrames, guardFrameSize*len(rowFacing))
	stride := []float32{-1, 0, 1, 0}

	for row, facing := range rowFacing {
		side := cp.Vector{X: -facing.Y, Y: facing.X}
		for frame := 0; frame < guardFrames; frame++ {
			cx := float32(frame)*size + size/2
			cy := float32(row)*size + size/2

			// feet swing along the facing direction
			for _, s := range []float32{-1, 1} {
				fx := cx + float32(side.X)*s*6 + float32(facing.X)*s*stride[frame]*4
				fy := cy + float32(side.Y)*s*6 + float32(facing.Y)*s*stride[frame]*4
				vector.FillCircle(sheet, fx, fy, 4, colornames.Gray, true)
			}
			vector.FillCircle(sheet, cx, cy, 10, colornames.White, true)
			nx := cx + float32(facing.X)*10
			ny := cy + float32(facing.Y)*10
			vector.StrokeLine(sheet, cx, cy, nx, ny, 3, colornames.Black, true)
		}
	}
	return sheet
}
