package main

import (
	"toolsframework/internal/camera"
	"toolsframework/internal/config"
	"toolsframework/internal/engine"
	"toolsframework/internal/host"
	"toolsframework/internal/interactive"
	"toolsframework/internal/render"
	"toolsframework/internal/tools"
	"toolsframework/internal/toolsctx"
	"toolsframework/internal/undo"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const pickDistance = 1000

// Action is an editor command bound to a key or toolbar button.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionAccept
	ActionCancel
	ActionToggleCoordinates
	ActionToggleSnapping
	ActionTransformTool
	ActionPlaceTool
	ActionFocus
)

// Editor is the window-independent part of gizmoview: scene, host, tools
// context and camera.
type Editor struct {
	logger *zap.Logger
	Scene  *engine.Scene
	Host   *host.Host
	Tools  *toolsctx.Context
	Camera *camera.EditorCamera

	selectionDirty bool
}

func NewEditor(cfg *config.Config, logger *zap.Logger) *Editor {
	scene := engine.NewScene("gizmoview")
	h := host.New(scene,
		host.WithLogger(logger.Named("host")),
		host.WithHistory(undo.NewHistory(cfg.Undo.MaxDepth)),
		host.WithSnapping(cfg.SnappingSettings()),
		host.WithCoordinateSystem(cfg.CoordinateSystem()),
	)
	ctx := toolsctx.New(h, h,
		toolsctx.WithLogger(logger),
		toolsctx.WithChangeTracking(cfg.ChangeTrackingMode()),
		toolsctx.WithSelectionStore(h),
		toolsctx.WithSelectionStorePolicy(cfg.SelectionStorePolicy()),
		toolsctx.WithTools(tools.Defaults{ViewScaledGizmo: cfg.Gizmo.ViewScaled}.Register),
	)
	ctx.Initialize()

	e := &Editor{
		logger: logger,
		Scene:  scene,
		Host:   h,
		Tools:  ctx,
		Camera: camera.New(rl.Vector3{X: 9, Y: 7, Z: 9}),
	}
	h.OnSelectionChanged.AddListener(func([]*engine.GameObject) { e.selectionDirty = true })
	populate(scene)
	return e
}

func populate(scene *engine.Scene) {
	specs := []struct {
		name  string
		pos   rl.Vector3
		size  rl.Vector3
		color rl.Color
	}{
		{"Red Box", rl.Vector3{X: -3, Y: 0.5}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Red},
		{"Green Box", rl.Vector3{Y: 0.5}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Green},
		{"Blue Box", rl.Vector3{X: 3, Y: 0.5}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Blue},
		{"Pillar", rl.Vector3{Z: -4, Y: 1.5}, rl.Vector3{X: 0.6, Y: 3, Z: 0.6}, rl.Gold},
	}
	for _, s := range specs {
		obj := engine.NewGameObject(s.name)
		obj.Size = s.size
		obj.Color = s.color
		obj.SetPosition(s.pos)
		scene.AddGameObject(obj)
	}
}

// HandlePointer routes one frame of mouse input. Presses nothing in the
// tools context wants fall through to scene picking.
func (e *Editor) HandlePointer(state interactive.InputState) {
	if state.LeftPressed && !e.Tools.WantsInput(state.Ray) {
		e.pick(state.Ray, state.Shift)
		return
	}
	e.Tools.PostInputEvent(state)
}

func (e *Editor) pick(ray interactive.InputDeviceRay, additive bool) {
	hit, ok := e.Scene.Raycast(ray.WorldRay, pickDistance)
	switch {
	case !ok && !additive:
		e.Host.Select()
	case !ok:
	case additive:
		e.Host.RequestSelectionChange(interactive.SelectedObjectsChangeList{
			Modification: interactive.SelectionAdd,
			Objects:      []*engine.GameObject{hit.GameObject},
		})
	default:
		e.Host.Select(hit.GameObject)
	}
}

// Tick advances the tools and restarts the transform tool when the
// selection changed.
func (e *Editor) Tick(deltaTime float32) {
	e.Host.SetViewState(render.CameraState(e.Camera.Raylib()))
	e.Tools.Tick(deltaTime)
	e.syncTransformTool()
}

func (e *Editor) syncTransformTool() {
	if !e.selectionDirty {
		return
	}
	e.selectionDirty = false
	switch e.Tools.ActiveToolName() {
	case tools.PlaceObjectToolID:
		return
	case tools.TransformToolID:
		e.Tools.EndTool(interactive.ShutdownCompleted)
	}
	if len(e.Host.Selection()) > 0 {
		e.Tools.ActivateTool(tools.TransformToolID)
	}
}

func (e *Editor) Apply(a Action) {
	switch a {
	case ActionUndo:
		e.Host.Undo()
	case ActionRedo:
		e.Host.Redo()
	case ActionAccept:
		e.Tools.EndTool(interactive.ShutdownAccept)
	case ActionCancel:
		e.Tools.EndTool(interactive.ShutdownCancel)
	case ActionToggleCoordinates:
		e.Host.ToggleCoordinateSystem()
	case ActionToggleSnapping:
		s := e.Host.CurrentSnappingSettings()
		s.PositionEnabled = !s.PositionEnabled
		s.RotationEnabled = s.PositionEnabled
		e.Host.SetSnappingSettings(s)
	case ActionTransformTool:
		if e.Tools.ActiveToolName() != tools.TransformToolID {
			e.Tools.ActivateTool(tools.TransformToolID)
		}
	case ActionPlaceTool:
		if e.Tools.ActiveToolName() != tools.PlaceObjectToolID {
			e.Tools.ActivateTool(tools.PlaceObjectToolID)
		}
	case ActionFocus:
		e.focusSelection()
	}
}

func (e *Editor) focusSelection() {
	sel := e.Host.Selection()
	if len(sel) == 0 {
		return
	}
	var center rl.Vector3
	var radius float32
	for _, obj := range sel {
		center = rl.Vector3Add(center, obj.WorldPosition())
	}
	center = rl.Vector3Scale(center, 1/float32(len(sel)))
	for _, obj := range sel {
		c, half, _ := obj.Bounds()
		r := rl.Vector3Distance(center, c) + rl.Vector3Length(half)
		if r > radius {
			radius = r
		}
	}
	e.Camera.Focus(center, radius)
}

// Shutdown cancels any tool in progress.
func (e *Editor) Shutdown() {
	e.Tools.Shutdown(interactive.ShutdownCancel)
}

func (e *Editor) ApplyPrefs(p config.ViewPrefs) {
	e.Camera.Position = p.CameraPosition.Raylib()
	e.Camera.Yaw = p.CameraYaw
	e.Camera.Pitch = p.CameraPitch
	if p.CameraMoveSpeed > 0 {
		e.Camera.MoveSpeed = p.CameraMoveSpeed
	}
	if cs, err := interactive.ParseCoordinateSystem(p.CoordinateSystem); err == nil && p.CoordinateSystem != "" {
		e.Host.SetCoordinateSystem(cs)
	}
	if p.SnapPosition {
		s := e.Host.CurrentSnappingSettings()
		s.PositionEnabled = true
		e.Host.SetSnappingSettings(s)
	}
}

func (e *Editor) Prefs() config.ViewPrefs {
	return config.ViewPrefs{
		CameraPosition:   config.FromRaylib(e.Camera.Position),
		CameraYaw:        e.Camera.Yaw,
		CameraPitch:      e.Camera.Pitch,
		CameraMoveSpeed:  e.Camera.MoveSpeed,
		CoordinateSystem: e.Host.CurrentCoordinateSystem().String(),
		SnapPosition:     e.Host.CurrentSnappingSettings().PositionEnabled,
	}
}
