package gizmos

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"
	"toolsframework/internal/undo"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fixedHitTarget struct {
	depth       float32
	miss        bool
	hovering    bool
	interacting bool
}

func (t *fixedHitTarget) IsHit(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if t.miss {
		return interactive.NoHit()
	}
	return interactive.NewHit(t.depth)
}

func (t *fixedHitTarget) UpdateHoverState(hovering bool) { t.hovering = hovering }

func (t *fixedHitTarget) UpdateInteractingState(interacting bool) { t.interacting = interacting }

type countingFloatSource struct {
	LocalFloatParameterSource
	begins, ends int
}

func (s *countingFloatSource) BeginModify() { s.begins++ }
func (s *countingFloatSource) EndModify() { s.ends++ }

type countingVec2Source struct {
	LocalVec2ParameterSource
	begins, ends int
}

func (s *countingVec2Source) BeginModify() { s.begins++ }
func (s *countingVec2Source) EndModify() { s.ends++ }

type countingStateTarget struct {
	begins, ends int
}

func (s *countingStateTarget) BeginUpdate() { s.begins++ }
func (s *countingStateTarget) EndUpdate() { s.ends++ }

type testQueries struct {
	coord     interactive.CoordinateSystem
	snapping  interactive.SnappingSettings
	view      interactive.ViewCameraState
	snapCalls []interactive.SceneSnapQueryRequest
}

func (q *testQueries) CurrentSelectionState() interactive.ToolBuilderState {
	return interactive.ToolBuilderState{}
}

func (q *testQueries) CurrentViewState() interactive.ViewCameraState { return q.view }

func (q *testQueries) CurrentCoordinateSystem() interactive.CoordinateSystem { return q.coord }

func (q *testQueries) CurrentSnappingSettings() interactive.SnappingSettings { return q.snapping }

func (q *testQueries) ExecuteSceneSnapQuery(req interactive.SceneSnapQueryRequest) []interactive.SceneSnapQueryResult {
	q.snapCalls = append(q.snapCalls, req)
	size := req.GridSize
	if size <= 0 {
		size = q.snapping.PositionGrid
	}
	p := req.Position
	if req.GridFrame != nil {
		p = req.GridFrame.TransformPoint(geom.SnapVector(req.GridFrame.InverseTransformPoint(p), size))
	} else {
		p = geom.SnapVector(p, size)
	}
	return []interactive.SceneSnapQueryResult{{Position: p}}
}

// historyTransactions records changes into an undo.History.
type historyTransactions struct {
	history       *undo.History
	messages      []string
	invalidations int
}

func newHistoryTransactions() *historyTransactions {
	return &historyTransactions{history: undo.NewHistory(0)}
}

func (t *historyTransactions) DisplayMessage(text string, level interactive.MessageLevel) {
	t.messages = append(t.messages, text)
}

func (t *historyTransactions) PostInvalidation() { t.invalidations++ }

func (t *historyTransactions) BeginUndoTransaction(description string) {
	t.history.BeginTransaction(description)
}

func (t *historyTransactions) EndUndoTransaction() { t.history.EndTransaction() }

func (t *historyTransactions) AppendChange(target any, change interactive.ToolCommandChange, description string) {
	t.history.Append(target, change, description)
}

func (t *historyTransactions) RequestSelectionChange(interactive.SelectedObjectsChangeList) bool {
	return true
}

// downRay points straight down at (x, 0, z) from five units above.
func downRay(x, z float32) interactive.InputDeviceRay {
	return interactive.NewInputDeviceRay(rl.Ray{
		Position:  rl.Vector3{X: x, Y: 5, Z: z},
		Direction: rl.Vector3{Y: -1},
	})
}

// ray aims at (x, y, 0) along -Z from five units away.
func zRay(x, y float32) interactive.InputDeviceRay {
	return interactive.NewInputDeviceRay(rl.Ray{
		Position:  rl.Vector3{X: x, Y: y, Z: 5},
		Direction: rl.Vector3{Z: -1},
	})
}

func press(ray interactive.InputDeviceRay) interactive.InputState {
	return interactive.InputState{Ray: ray, LeftPressed: true, LeftDown: true}
}

func drag(ray interactive.InputDeviceRay) interactive.InputState {
	return interactive.InputState{Ray: ray, LeftDown: true}
}

func release(ray interactive.InputDeviceRay) interactive.InputState {
	return interactive.InputState{Ray: ray, LeftReleased: true}
}

func sceneObject(name string, pos rl.Vector3) (*engine.Scene, *engine.GameObject) {
	scene := engine.NewScene("test")
	obj := engine.NewGameObject(name)
	obj.SetPosition(pos)
	scene.AddGameObject(obj)
	return scene, obj
}
