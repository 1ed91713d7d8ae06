package main

import (
	"fmt"
	"iter"

	"toolsframework/internal/host"
	"toolsframework/internal/interactive"
	"toolsframework/internal/tools"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const toolbarHeight = 40

var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorText      = rl.NewColor(200, 200, 208, 255)
	colorTextMuted = rl.NewColor(119, 119, 119, 255)
)

func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawToolbar draws the top bar and yields the actions clicked this frame.
func drawToolbar(e *Editor) iter.Seq[Action] {
	var clicked []Action
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), toolbarHeight, colorBgDark)

	x := float32(8)
	button := func(label string, enabled bool, act Action) {
		r := rl.Rectangle{X: x, Y: 6, Width: 90, Height: 28}
		x += r.Width + 6
		if !enabled {
			gui.Disable()
			defer gui.Enable()
		}
		if gui.Button(r, label) && enabled {
			clicked = append(clicked, act)
		}
	}

	active := e.Tools.ActiveToolName()
	button(toolLabel("Transform", active == tools.TransformToolID), len(e.Host.Selection()) > 0, ActionTransformTool)
	button(toolLabel("Place", active == tools.PlaceObjectToolID), true, ActionPlaceTool)
	button("Accept", e.Tools.CanAcceptActiveTool(), ActionAccept)
	button("Cancel", e.Tools.CanCancelActiveTool(), ActionCancel)
	button("Undo", e.Host.History.CanUndo(), ActionUndo)
	button("Redo", e.Host.History.CanRedo(), ActionRedo)

	local := e.Host.CurrentCoordinateSystem() == interactive.CoordinateSystemLocal
	coordLabel := "World"
	if local {
		coordLabel = "Local"
	}
	if gui.Toggle(rl.Rectangle{X: x, Y: 6, Width: 70, Height: 28}, coordLabel, local) != local {
		clicked = append(clicked, ActionToggleCoordinates)
	}
	x += 76

	snap := e.Host.CurrentSnappingSettings().PositionEnabled
	if gui.CheckBox(rl.Rectangle{X: x, Y: 12, Width: 16, Height: 16}, "Snap", snap) != snap {
		clicked = append(clicked, ActionToggleSnapping)
	}
	x += 70

	if desc := e.Host.History.UndoDescription(); desc != "" {
		rl.DrawText(fmt.Sprintf("Undo: %s", desc), int32(x), 13, 15, colorTextMuted)
	}

	return func(yield func(Action) bool) {
		for _, a := range clicked {
			if !yield(a) {
				return
			}
		}
	}
}

func toolLabel(name string, active bool) string {
	if active {
		return "[" + name + "]"
	}
	return name
}

func messageColor(level interactive.MessageLevel) rl.Color {
	switch level {
	case interactive.MessageUserError:
		return rl.Red
	case interactive.MessageUserWarning, interactive.MessageInternal:
		return rl.Orange
	default:
		return colorText
	}
}

func drawMessages(msgs []host.Message) {
	y := int32(rl.GetScreenHeight()) - 24
	for i := len(msgs) - 1; i >= 0; i-- {
		rl.DrawText(msgs[i].Text, 10, y, 15, messageColor(msgs[i].Level))
		y -= 20
	}
}
