package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
)

// Input holds the viewer's per-frame keyboard and gamepad state.
type Input struct {
	// Move is the raw movement direction, not normalized.
	Move cp.Vector
	// HidePressed is true on the frame the hide key was pressed.
	HidePressed bool
	// RestartPressed is true on the frame the restart key was pressed.
	RestartPressed bool
	// DebugPressed toggles the debug overlay.
	DebugPressed bool
	QuitPressed  bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		move.Y += 1
	}

	hide := inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeySpace)

	// Gamepad: left stick moves, bottom face button hides.
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx*lx+ly*ly > 0.09 {
			move = cp.Vector{X: lx, Y: ly}
		}
		hide = hide || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	}

	i.Move = move
	i.HidePressed = hide
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
