package interactive

import (
	"toolsframework/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ViewCameraState describes the active view for gizmo sizing and
// camera-facing handles.
type ViewCameraState struct {
	Position       rl.Vector3
	Forward        rl.Vector3
	Right          rl.Vector3
	Up             rl.Vector3
	FOVDegrees     float32
	IsOrthographic bool
}

// SnappingSettings is the host's current snapping configuration.
type SnappingSettings struct {
	PositionEnabled bool
	PositionGrid    float32
	RotationEnabled bool
	RotationDegrees float32
	ScaleEnabled    bool
	ScaleStep       float32
}

type SceneSnapQueryType int

const (
	SnapPointToGrid SceneSnapQueryType = iota
	SnapPointToObjects
)

// SceneSnapQueryRequest asks the host to snap a world position.
type SceneSnapQueryRequest struct {
	Type     SceneSnapQueryType
	Position rl.Vector3
	// GridSize overrides the host grid when positive.
	GridSize float32
	// GridFrame is the frame the grid is aligned to; nil means world.
	GridFrame *engine.Transform
	// MaxDistance bounds object snapping.
	MaxDistance float32
}

type SceneSnapQueryResult struct {
	Position rl.Vector3
	Object   *engine.GameObject
}

type SelectionModification int

const (
	SelectionReplace SelectionModification = iota
	SelectionAdd
	SelectionRemove
	SelectionClear
)

// SelectedObjectsChangeList is a requested edit of the host selection.
type SelectedObjectsChangeList struct {
	Modification SelectionModification
	Objects      []*engine.GameObject
}

// QueriesAPI is the read-only view of the host that tools and gizmos use.
type QueriesAPI interface {
	CurrentSelectionState() ToolBuilderState
	CurrentViewState() ViewCameraState
	CurrentCoordinateSystem() CoordinateSystem
	CurrentSnappingSettings() SnappingSettings
	ExecuteSceneSnapQuery(req SceneSnapQueryRequest) []SceneSnapQueryResult
}

// TransactionsAPI is how the framework reports messages, requests redraws
// and records undoable changes. Begin/End calls nest.
type TransactionsAPI interface {
	DisplayMessage(text string, level MessageLevel)
	PostInvalidation()
	BeginUndoTransaction(description string)
	EndUndoTransaction()
	AppendChange(target any, change ToolCommandChange, description string)
	RequestSelectionChange(change SelectedObjectsChangeList) bool
}

// SelectionStore keeps a selection a tool asked to preserve past its exit.
type SelectionStore interface {
	StoreSelection(selection any)
	ClearStoredSelection()
	StoredSelection() any
}

// TransactionProvider is the subset of TransactionsAPI a gizmo needs to
// record its edits. ToolManager and GizmoManager both satisfy it.
type TransactionProvider interface {
	BeginUndoTransaction(description string)
	EndUndoTransaction()
	AppendChange(target any, change ToolCommandChange, description string)
}

// RenderAPI draws immediate-mode 3D primitives for tools and gizmos.
type RenderAPI interface {
	CameraState() ViewCameraState
	DrawLine(start, end rl.Vector3, color rl.Color, thickness float32)
	DrawCircle(center, normal rl.Vector3, radius float32, color rl.Color)
	DrawWireBox(center, halfExtents rl.Vector3, rotation rl.Quaternion, color rl.Color)
	DrawPoint(center rl.Vector3, size float32, color rl.Color)
}
