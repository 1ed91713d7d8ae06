package gizmos

import (
	"math"
	"testing"

	"toolsframework/internal/engine"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gizmoFixture struct {
	router  *interactive.Router
	queries *testQueries
	tx      *historyTransactions
	manager *interactive.GizmoManager
}

func newGizmoFixture(t *testing.T) *gizmoFixture {
	t.Helper()
	f := &gizmoFixture{
		router:  interactive.NewRouter(),
		queries: &testQueries{},
		tx:      newHistoryTransactions(),
	}
	f.manager = interactive.NewGizmoManager(f.queries, f.tx, f.router)
	RegisterDefaultGizmos(f.manager)
	return f
}

func (f *gizmoFixture) proxyFor(pos rl.Vector3) (*TransformProxy, *engine.GameObject) {
	_, obj := sceneObject("box", pos)
	p := NewTransformProxy()
	p.AddObject(obj)
	return p, obj
}

func countVisible(handles []*GizmoHandle, kind HandleKind) int {
	n := 0
	for _, h := range handles {
		if h.Kind == kind && h.Visible {
			n++
		}
	}
	return n
}

func TestCreateCustomTransformGizmoBuildsRequestedElements(t *testing.T) {
	f := newGizmoFixture(t)
	owner := "tool"

	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes|RotateAxisZ, owner, "xform")
	require.NoError(t, err)
	proxy, _ := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	assert.Len(t, g.SubGizmos(), 4)
	assert.Equal(t, 5, f.manager.ActiveGizmoCount())
	assert.Len(t, f.manager.FindAllGizmosOfType(AxisPositionBuilderID), 3)
	assert.Len(t, f.manager.FindAllGizmosOfType(AxisAngleBuilderID), 1)
	assert.Equal(t, 5, f.router.SourceCount())

	b, ok := f.manager.GizmoBuilder(CustomTransformBuilderID)
	require.True(t, ok)
	assert.Equal(t, TranslateRotateUniformScale, b.(*TransformGizmoBuilder).Elements)

	f.manager.DestroyAllGizmosByOwner(owner)
	assert.Equal(t, 0, f.manager.ActiveGizmoCount())
	assert.Equal(t, 0, f.router.SourceCount())
}

func TestCreateCustomTransformGizmoLeavesBuilderDefaults(t *testing.T) {
	f := newGizmoFixture(t)
	var nested *TransformGizmo
	f.manager.OnGizmoCreated.AddListener(func(g interactive.Gizmo) {
		tg, ok := g.(*TransformGizmo)
		if !ok || nested != nil || tg.Elements != TranslateAxisX {
			return
		}
		built, err := f.manager.CreateGizmo(CustomTransformBuilderID, "", nil)
		require.NoError(t, err)
		nested = built.(*TransformGizmo)
	})

	outer, err := CreateCustomTransformGizmo(f.manager, TranslateAxisX, nil, "")
	require.NoError(t, err)
	assert.Equal(t, TranslateAxisX, outer.Elements)
	require.NotNil(t, nested)
	assert.Equal(t, TranslateRotateUniformScale, nested.Elements, "a plain build during a custom one gets the registered elements")
}

func TestCreate3AxisTransformGizmo(t *testing.T) {
	f := newGizmoFixture(t)

	g, err := Create3AxisTransformGizmo(f.manager, nil, "")
	require.NoError(t, err)
	proxy, _ := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	// three axes, three planes, three rings and the uniform scale handle
	assert.Len(t, g.SubGizmos(), 10)
	assert.Equal(t, 1, countVisible(g.Handles(), HandleCenterBox))
}

func TestCreateTransformGizmoDuplicateInstance(t *testing.T) {
	f := newGizmoFixture(t)

	_, err := Create3AxisTransformGizmo(f.manager, nil, "same")
	require.NoError(t, err)
	g, err := CreateCustomTransformGizmo(f.manager, StandardTranslateRotate, nil, "same")

	assert.Nil(t, g)
	assert.ErrorIs(t, err, interactive.ErrDuplicateInstance)
	assert.Equal(t, 1, f.manager.ActiveGizmoCount())
}

func TestTransformGizmoRetargetClearsPrevious(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)

	first, _ := f.proxyFor(rl.Vector3{X: 1})
	second, _ := f.proxyFor(rl.Vector3{X: 5})
	g.SetActiveTarget(first, nil)
	firstSubs := g.SubGizmos()
	g.SetActiveTarget(second, nil)

	assert.Len(t, g.SubGizmos(), 3)
	assert.Len(t, g.Handles(), 3)
	assert.Equal(t, 4, f.manager.ActiveGizmoCount())
	assert.Equal(t, 4, f.router.SourceCount())
	for _, sub := range firstSubs {
		assert.False(t, f.router.IsRegistered(sub))
	}
	assert.Equal(t, 0, first.OnTransformChanged.GetListenerCount())
	assert.Equal(t, 1, second.OnTransformChanged.GetListenerCount())
	assert.Equal(t, rl.Vector3{X: 5}, g.Root().WorldPosition())
}

func TestTransformGizmoWorldModeHidesNonUniformScale(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, FullTranslateRotateScale, nil, "")
	require.NoError(t, err)
	proxy, _ := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	f.queries.coord = interactive.CoordinateSystemWorld
	g.Tick(0.016)
	assert.Equal(t, 0, countVisible(g.Handles(), HandleAxisBox))
	assert.Equal(t, 3, countVisible(g.Handles(), HandlePlane))
	assert.Equal(t, 1, countVisible(g.Handles(), HandleCenterBox))
	for _, h := range g.nonUniformScaleHandles {
		_, hit := h.HitTest(rl.Ray{Position: h.Axis.Origin(), Direction: h.Axis.Direction()})
		assert.False(t, hit)
	}

	f.queries.coord = interactive.CoordinateSystemLocal
	g.Tick(0.016)
	assert.Equal(t, 3, countVisible(g.Handles(), HandleAxisBox))
	assert.Equal(t, 6, countVisible(g.Handles(), HandlePlane))
	for _, src := range g.axisSources {
		assert.True(t, src.LocalAxes)
	}
}

func TestTransformGizmoSetVisibility(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, _ := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	require.True(t, g.IsVisible())
	g.SetVisibility(false)
	g.Tick(0)
	assert.False(t, g.IsVisible())
	assert.Equal(t, 0, countVisible(g.Handles(), HandleArrow))

	f.router.PostInputEvent(press(downRay(1, 0)))
	assert.False(t, f.router.HasActiveMouseCapture())
}

func TestTransformGizmoDragIsOneUndoableTransaction(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	f.router.PostInputEvent(press(downRay(1, 0)))
	require.True(t, f.router.HasActiveMouseCapture())
	f.router.PostInputEvent(drag(downRay(2, 0)))
	f.router.PostInputEvent(drag(downRay(3, 0)))
	f.router.PostInputEvent(release(downRay(3, 0)))

	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{X: 2}, 1e-5))
	assert.True(t, engine.VectorsNearlyEqual(g.Root().WorldPosition(), rl.Vector3{X: 2}, 1e-5))
	assert.Equal(t, 1, f.tx.history.UndoCount())
	assert.Equal(t, "Transform", f.tx.history.UndoDescription())

	require.True(t, f.tx.history.Undo())
	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{}, 1e-5))
	assert.True(t, engine.VectorsNearlyEqual(g.Root().WorldPosition(), rl.Vector3{}, 1e-5))

	require.True(t, f.tx.history.Redo())
	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{X: 2}, 1e-5))
	assert.True(t, engine.VectorsNearlyEqual(g.Root().WorldPosition(), rl.Vector3{X: 2}, 1e-5))
}

func TestTransformGizmoDestroyMidDragClosesTransaction(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	f.router.PostInputEvent(press(downRay(1, 0)))
	f.router.PostInputEvent(drag(downRay(2, 0)))
	require.True(t, f.manager.DestroyGizmo(g))

	assert.False(t, f.router.HasActiveMouseCapture())
	assert.False(t, f.tx.history.InTransaction())
	assert.Equal(t, 0, f.manager.ActiveGizmoCount())
	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{X: 1}, 1e-5))
	assert.Equal(t, 1, f.tx.history.UndoCount())
}

func TestTransformGizmoScaleStaysSeparate(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, ScaleAxisX, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)
	f.queries.coord = interactive.CoordinateSystemLocal
	g.Tick(0)

	// the X scale box sits at 1.4 on the X axis
	f.router.PostInputEvent(press(downRay(1.4, 0)))
	require.True(t, f.router.HasActiveMouseCapture())
	f.router.PostInputEvent(drag(downRay(2.4, 0)))
	f.router.PostInputEvent(release(downRay(2.4, 0)))

	assert.InDelta(t, 1.5, obj.WorldTransform().Scale.X, 1e-5)
	assert.InDelta(t, 1.5, g.SeparateChildScale().X, 1e-5)
	assert.Equal(t, unitScale, g.Root().Transform().Scale)
}

func TestTransformGizmoExternalChangeReinitializes(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	obj.SetPosition(rl.Vector3{Y: 3})
	proxy.UpdateSharedTransform()

	assert.Equal(t, rl.Vector3{Y: 3}, g.Root().WorldPosition())
	assert.Equal(t, 0, f.tx.history.UndoCount())
}

func TestTransformGizmoReinitializeDoesNotMoveTarget(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	g.ReinitializeGizmoTransform(engine.TransformAt(rl.Vector3{Z: 4}))

	assert.Equal(t, rl.Vector3{Z: 4}, g.Root().WorldPosition())
	assert.Equal(t, rl.Vector3{}, obj.WorldPosition())

	// the root callback is live again afterwards
	g.Root().SetPosition(rl.Vector3{Z: 1})
	assert.Equal(t, rl.Vector3{Z: 1}, obj.WorldPosition())
}

func TestTransformGizmoSetNewGizmoTransformIsUndoable(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	g.SetNewGizmoTransform(engine.TransformAt(rl.Vector3{X: -2}))
	assert.Equal(t, rl.Vector3{X: -2}, obj.WorldPosition())
	require.Equal(t, 1, f.tx.history.UndoCount())

	f.tx.history.Undo()
	assert.Equal(t, rl.Vector3{}, obj.WorldPosition())
	assert.Equal(t, rl.Vector3{}, g.Root().WorldPosition())
}

func TestTransformGizmoPositionSnapping(t *testing.T) {
	f := newGizmoFixture(t)
	f.queries.snapping = interactive.SnappingSettings{PositionEnabled: true, PositionGrid: 1}
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	f.router.PostInputEvent(press(downRay(1, 0)))
	f.router.PostInputEvent(drag(downRay(2.3, 0)))
	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{X: 1}, 1e-5))

	g.ExplicitGridSize = 0.25
	f.router.PostInputEvent(drag(downRay(2.3, 0)))
	f.router.PostInputEvent(release(downRay(2.3, 0)))
	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{X: 1.25}, 1e-5))

	require.NotEmpty(t, f.queries.snapCalls)
	last := f.queries.snapCalls[len(f.queries.snapCalls)-1]
	assert.Equal(t, interactive.SnapPointToGrid, last.Type)
	assert.Nil(t, last.GridFrame)
}

func TestTransformGizmoLocalSnappingUsesStartFrame(t *testing.T) {
	f := newGizmoFixture(t)
	f.queries.snapping = interactive.SnappingSettings{PositionEnabled: true, PositionGrid: 1}
	f.queries.coord = interactive.CoordinateSystemLocal
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAllAxes, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{X: 0.3})
	g.SetActiveTarget(proxy, nil)
	g.Tick(0)

	f.router.PostInputEvent(press(downRay(1.3, 0)))
	f.router.PostInputEvent(drag(downRay(2.6, 0)))
	f.router.PostInputEvent(release(downRay(2.6, 0)))

	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{X: 1.3}, 1e-5))
}

func TestTransformGizmoRotationSnapping(t *testing.T) {
	f := newGizmoFixture(t)
	f.queries.snapping = interactive.SnappingSettings{RotationEnabled: true, RotationDegrees: 15}
	g, err := CreateCustomTransformGizmo(f.manager, ElementsNone, nil, "")
	require.NoError(t, err)

	snapped, ok := g.RotationSnapFunction(20 * rl.Deg2rad)
	assert.True(t, ok)
	assert.InDelta(t, 15*math.Pi/180, snapped, 1e-5)

	g.ExplicitRotationDegrees = 45
	snapped, _ = g.RotationSnapFunction(30 * rl.Deg2rad)
	assert.InDelta(t, math.Pi/4, snapped, 1e-5)

	f.queries.snapping.RotationEnabled = false
	_, ok = g.RotationSnapFunction(0.3)
	assert.False(t, ok)
}

func TestTransformGizmoRenderHighlightsHover(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAxisX, nil, "")
	require.NoError(t, err)
	proxy, _ := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	f.router.PostInputEvent(interactive.InputState{Ray: downRay(1, 0)})
	api := &recordingRenderer{}
	f.manager.Render(api)

	require.NotEmpty(t, api.lines)
	assert.Equal(t, highlightColor, api.lines[0])
}

type recordingRenderer struct {
	lines []rl.Color
	calls int
}

func (r *recordingRenderer) CameraState() interactive.ViewCameraState { return interactive.ViewCameraState{} }

func (r *recordingRenderer) DrawLine(start, end rl.Vector3, color rl.Color, thickness float32) {
	r.lines = append(r.lines, color)
	r.calls++
}

func (r *recordingRenderer) DrawCircle(center, normal rl.Vector3, radius float32, color rl.Color) {
	r.calls++
}

func (r *recordingRenderer) DrawWireBox(center, halfExtents rl.Vector3, rotation rl.Quaternion, color rl.Color) {
	r.calls++
}

func (r *recordingRenderer) DrawPoint(center rl.Vector3, size float32, color rl.Color) {
	r.calls++
}

func TestTransformGizmoArrowFollowsDragNearOrigin(t *testing.T) {
	f := newGizmoFixture(t)
	g, err := CreateCustomTransformGizmo(f.manager, TranslateAxisX, nil, "")
	require.NoError(t, err)
	proxy, obj := f.proxyFor(rl.Vector3{})
	g.SetActiveTarget(proxy, nil)

	// lands inside the arrow's pick radius but just behind the origin
	f.router.PostInputEvent(press(downRay(-0.05, 0)))
	require.True(t, f.router.HasActiveMouseCapture())
	f.router.PostInputEvent(drag(downRay(0.95, 0)))
	f.router.PostInputEvent(release(downRay(0.95, 0)))

	assert.True(t, engine.VectorsNearlyEqual(obj.WorldPosition(), rl.Vector3{X: 1}, 1e-5))
}
