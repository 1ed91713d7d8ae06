package main

import (
	"testing"

	"toolsframework/internal/config"
	"toolsframework/internal/engine"
	"toolsframework/internal/interactive"
	"toolsframework/internal/tools"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	cfg, err := config.Load(nil, "")
	require.NoError(t, err)
	e := NewEditor(cfg, zap.NewNop())
	t.Cleanup(e.Shutdown)
	return e
}

func downRay(x, z float32) interactive.InputDeviceRay {
	return interactive.NewInputDeviceRay(rl.Ray{
		Position:  rl.Vector3{X: x, Y: 5, Z: z},
		Direction: rl.Vector3{Y: -1},
	})
}

func (e *Editor) clickAt(ray interactive.InputDeviceRay, shift bool) {
	e.HandlePointer(interactive.InputState{Ray: ray, LeftPressed: true, LeftDown: true, Shift: shift})
	e.HandlePointer(interactive.InputState{Ray: ray, LeftReleased: true, Shift: shift})
	e.Tick(1.0 / 60)
}

func TestNewEditorPopulatesScene(t *testing.T) {
	e := newTestEditor(t)

	assert.Len(t, e.Scene.GameObjects, 4)
	assert.NotNil(t, e.Scene.FindByName("Pillar"))
	assert.True(t, e.Tools.IsInitialized())
	assert.Empty(t, e.Tools.ActiveToolName())
}

func TestPickSelectsAndStartsTransformTool(t *testing.T) {
	e := newTestEditor(t)

	e.clickAt(downRay(3, 0), false)

	sel := e.Host.Selection()
	require.Len(t, sel, 1)
	assert.Equal(t, "Blue Box", sel[0].Name)
	assert.Equal(t, tools.TransformToolID, e.Tools.ActiveToolName())
}

func TestShiftPickAddsToSelection(t *testing.T) {
	e := newTestEditor(t)

	e.clickAt(downRay(3, 0), false)
	e.clickAt(downRay(-3, 0), true)

	require.Len(t, e.Host.Selection(), 2)
	assert.Equal(t, "Red Box", e.Host.Selection()[1].Name)
	assert.Equal(t, tools.TransformToolID, e.Tools.ActiveToolName())
}

func TestClickEmptySpaceClearsSelection(t *testing.T) {
	e := newTestEditor(t)
	e.clickAt(downRay(3, 0), false)
	require.Equal(t, tools.TransformToolID, e.Tools.ActiveToolName())

	e.clickAt(downRay(8, 8), false)

	assert.Empty(t, e.Host.Selection())
	assert.Empty(t, e.Tools.ActiveToolName())
	assert.Zero(t, e.Tools.GizmoManager().ActiveGizmoCount())
}

func TestPlaceToolAcceptThenUndo(t *testing.T) {
	e := newTestEditor(t)

	e.Apply(ActionPlaceTool)
	require.Equal(t, tools.PlaceObjectToolID, e.Tools.ActiveToolName())
	assert.False(t, e.Tools.CanAcceptActiveTool())

	e.clickAt(downRay(6, 6), false)
	require.Len(t, e.Scene.GameObjects, 5)
	assert.Equal(t, tools.PlaceObjectToolID, e.Tools.ActiveToolName(), "selection change keeps the place tool")
	assert.True(t, e.Tools.CanAcceptActiveTool())

	e.Apply(ActionAccept)
	e.Tick(1.0 / 60)
	assert.Empty(t, e.Tools.ActiveToolName())
	assert.Len(t, e.Scene.GameObjects, 5)

	e.Apply(ActionUndo)
	assert.Len(t, e.Scene.GameObjects, 4)
	e.Apply(ActionRedo)
	assert.Len(t, e.Scene.GameObjects, 5)
}

func TestPlaceToolCancelDiscards(t *testing.T) {
	e := newTestEditor(t)

	e.Apply(ActionPlaceTool)
	e.clickAt(downRay(6, 6), false)
	e.Apply(ActionCancel)

	assert.Len(t, e.Scene.GameObjects, 4)
	assert.Empty(t, e.Tools.ActiveToolName())
}

func TestTransformToolActionNeedsSelection(t *testing.T) {
	e := newTestEditor(t)

	e.Apply(ActionTransformTool)
	assert.Empty(t, e.Tools.ActiveToolName())

	e.Host.Select(e.Scene.FindByName("Green Box"))
	e.Apply(ActionTransformTool)
	assert.Equal(t, tools.TransformToolID, e.Tools.ActiveToolName())
}

func TestToggles(t *testing.T) {
	e := newTestEditor(t)
	require.Equal(t, interactive.CoordinateSystemWorld, e.Host.CurrentCoordinateSystem())

	e.Apply(ActionToggleCoordinates)
	assert.Equal(t, interactive.CoordinateSystemLocal, e.Host.CurrentCoordinateSystem())

	e.Apply(ActionToggleSnapping)
	s := e.Host.CurrentSnappingSettings()
	assert.True(t, s.PositionEnabled)
	assert.True(t, s.RotationEnabled)

	e.Apply(ActionToggleSnapping)
	assert.False(t, e.Host.CurrentSnappingSettings().PositionEnabled)
}

func TestFocusSelection(t *testing.T) {
	e := newTestEditor(t)

	e.Apply(ActionFocus)
	assert.False(t, e.Camera.Focusing(), "nothing selected")

	e.Host.Select(e.Scene.FindByName("Red Box"))
	e.Apply(ActionFocus)
	assert.True(t, e.Camera.Focusing())
}

func TestPrefsRoundTrip(t *testing.T) {
	e := newTestEditor(t)
	e.Camera.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	e.Camera.Yaw = 45
	e.Camera.Pitch = -10
	e.Apply(ActionToggleCoordinates)
	e.Apply(ActionToggleSnapping)

	other := newTestEditor(t)
	other.ApplyPrefs(e.Prefs())

	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, other.Camera.Position)
	assert.Equal(t, float32(45), other.Camera.Yaw)
	assert.Equal(t, float32(-10), other.Camera.Pitch)
	assert.Equal(t, interactive.CoordinateSystemLocal, other.Host.CurrentCoordinateSystem())
	assert.True(t, other.Host.CurrentSnappingSettings().PositionEnabled)
}

func TestTransformGizmoFollowsViewScaledConfig(t *testing.T) {
	e := newTestEditor(t)
	e.clickAt(downRay(3, 0), false)

	tool, ok := e.Tools.ToolManager().ActiveTool(interactive.ToolSideLeft).(*tools.TransformTool)
	require.True(t, ok)
	require.NotNil(t, tool.Gizmo())
	assert.True(t, tool.Gizmo().ViewScaled)
}

func TestMoveStaysUndoableAfterSelectionChange(t *testing.T) {
	e := newTestEditor(t)
	blue := e.Scene.FindByName("Blue Box")
	e.clickAt(downRay(3, 0), false)
	e.Tick(1.0 / 60)
	require.Equal(t, tools.TransformToolID, e.Tools.ActiveToolName())

	e.HandlePointer(interactive.InputState{Ray: downRay(3.8, 0), LeftPressed: true, LeftDown: true})
	require.True(t, e.Tools.InputRouter().HasActiveMouseCapture())
	e.HandlePointer(interactive.InputState{Ray: downRay(5.8, 0), LeftDown: true})
	e.HandlePointer(interactive.InputState{Ray: downRay(5.8, 0), LeftReleased: true})
	e.Tick(1.0 / 60)
	require.True(t, engine.VectorsNearlyEqual(blue.WorldPosition(), rl.Vector3{X: 5, Y: 0.5}, 1e-4))

	e.clickAt(downRay(-3, 0), false)
	require.Equal(t, "Red Box", e.Host.Selection()[0].Name)
	require.Equal(t, tools.TransformToolID, e.Tools.ActiveToolName())

	// the first undo backs out of the session on the new selection
	e.Apply(ActionUndo)
	e.Apply(ActionUndo)
	assert.True(t, engine.VectorsNearlyEqual(blue.WorldPosition(), rl.Vector3{X: 3, Y: 0.5}, 1e-4))
}
