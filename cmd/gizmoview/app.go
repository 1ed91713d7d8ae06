package main

import (
	"fmt"

	"toolsframework/internal/camera"
	"toolsframework/internal/config"
	"toolsframework/internal/interactive"
	"toolsframework/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var selectionColor = rl.NewColor(255, 220, 60, 255)

// App owns the raylib window around an Editor.
type App struct {
	cfg    *config.Config
	editor *Editor
	cube   rl.Model
}

func NewApp(cfg *config.Config, editor *Editor) *App {
	return &App{cfg: cfg, editor: editor}
}

func (a *App) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.cfg.Window.Width, a.cfg.Window.Height, "gizmoview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(a.cfg.Window.FPS)
	rl.SetExitKey(0)

	initStyle()
	a.cube = rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
	defer rl.UnloadModel(a.cube)

	for !rl.WindowShouldClose() {
		a.update(rl.GetFrameTime())
		a.draw()
	}
	a.editor.Shutdown()
}

func (a *App) update(deltaTime float32) {
	e := a.editor
	e.Camera.Update(camera.ReadInput(), deltaTime)

	for _, act := range readKeys() {
		e.Apply(act)
	}

	overUI := rl.GetMousePosition().Y < toolbarHeight
	capturing := e.Tools.InputRouter().HasActiveMouseCapture()
	if capturing || (!overUI && !rl.IsMouseButtonDown(rl.MouseRightButton)) {
		e.HandlePointer(pointerState(e.Camera.Raylib()))
	}

	e.Tick(deltaTime)
}

func readKeys() []Action {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyLeftSuper)
	var out []Action
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		return out
	}
	switch {
	case ctrl && rl.IsKeyPressed(rl.KeyZ):
		out = append(out, ActionUndo)
	case ctrl && rl.IsKeyPressed(rl.KeyY):
		out = append(out, ActionRedo)
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		out = append(out, ActionAccept)
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		out = append(out, ActionCancel)
	}
	if rl.IsKeyPressed(rl.KeyL) {
		out = append(out, ActionToggleCoordinates)
	}
	if rl.IsKeyPressed(rl.KeyG) {
		out = append(out, ActionToggleSnapping)
	}
	if rl.IsKeyPressed(rl.KeyF) {
		out = append(out, ActionFocus)
	}
	if !ctrl && rl.IsKeyPressed(rl.KeyP) {
		out = append(out, ActionPlaceTool)
	}
	return out
}

func pointerState(cam rl.Camera3D) interactive.InputState {
	mouse := rl.GetMousePosition()
	ray := interactive.InputDeviceRay{
		WorldRay:          rl.GetScreenToWorldRay(mouse, cam),
		ScreenPosition:    mouse,
		HasScreenPosition: true,
	}
	return interactive.InputState{
		Ray:          ray,
		LeftPressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		LeftDown:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		LeftReleased: rl.IsMouseButtonReleased(rl.MouseLeftButton),
		Shift:        rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
	}
}

func (a *App) draw() {
	e := a.editor
	cam := e.Camera.Raylib()
	renderer := render.NewRaylibRenderer(cam)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 24, 30, 255))

	rl.BeginMode3D(cam)
	rl.DrawGrid(20, 1)
	for _, obj := range e.Scene.GameObjects {
		if !obj.Active {
			continue
		}
		w := obj.WorldTransform()
		var axis rl.Vector3
		var angle float32
		rl.QuaternionToAxisAngle(w.Rotation, &axis, &angle)
		scale := rl.Vector3Multiply(obj.Size, w.Scale)
		rl.DrawModelEx(a.cube, w.Position, axis, angle*rl.Rad2deg, scale, obj.Color)
	}
	renderer.Begin()
	for _, obj := range e.Host.Selection() {
		c, half, rot := obj.Bounds()
		renderer.DrawWireBox(c, rl.Vector3AddValue(half, 0.02), rot, selectionColor)
	}
	e.Tools.Render(renderer)
	renderer.End()
	rl.EndMode3D()

	for act := range drawToolbar(e) {
		e.Apply(act)
	}
	drawMessages(e.Host.Messages())
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(rl.GetScreenWidth())-80, int32(rl.GetScreenHeight())-24, 16, rl.Gray)
	rl.EndDrawing()
}
