package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/sneak/world"
	"golang.org/x/image/font/basicfont"
)

// endAction is the choice made on the end-of-session panel.
type endAction int

const (
	endNone endAction = iota
	endRestart
	endQuit
)

// NewEndUI builds the centered panel shown once a session ends: the
// outcome, the time taken, and Restart and Quit buttons. Buttons only
// record the choice; the game acts on it after the UI update.
func NewEndUI(session *world.Session, elapsed float64, choose func(endAction)) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	headline := widget.NewText(
		widget.TextOpts.Text(session.Headline(), &face, outcomeColor(session.State())),
		widget.TextOpts.WidgetOpts(centered),
	)
	timing := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("after %.1fs", elapsed), &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, action endAction) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered, widget.WidgetOpts.MinSize(160, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				choose(action)
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(headline)
	panel.AddChild(timing)
	panel.AddChild(button("Restart", endRestart))
	panel.AddChild(button("Quit", endQuit))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func outcomeColor(state world.GameState) color.Color {
	if state == world.StateVictory {
		return color.NRGBA{R: 0x7c, G: 0xfc, B: 0x00, A: 0xff}
	}
	return color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}
}
