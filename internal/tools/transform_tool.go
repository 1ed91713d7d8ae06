package tools

import (
	"toolsframework/internal/gizmos"
	"toolsframework/internal/interactive"
)

const TransformToolID = "Transform"

// DefaultTransformElements is the handle set TransformTool shows.
const DefaultTransformElements = gizmos.FullTranslateRotateScale

type TransformToolBuilder struct {
	Elements  gizmos.TransformGizmoSubElements
	PivotMode gizmos.PivotMode
	// ViewScaled keeps the handles a constant size on screen.
	ViewScaled bool
}

func (b *TransformToolBuilder) CanBuildTool(state interactive.ToolBuilderState) bool {
	return state.GizmoManager != nil && len(selectedTargets(state)) > 0
}

func (b *TransformToolBuilder) BuildTool(state interactive.ToolBuilderState) interactive.Tool {
	targets := selectedTargets(state)
	if len(targets) == 0 || state.GizmoManager == nil {
		return nil
	}
	t := &TransformTool{
		Elements:     b.Elements,
		PivotMode:    b.PivotMode,
		ViewScaled:   b.ViewScaled,
		targets:      targets,
		gizmoManager: state.GizmoManager,
	}
	t.SetToolManager(state.ToolManager)
	return t
}

// TransformTool puts a transform gizmo on the selected objects. Edits are
// applied live and recorded per drag, so there is nothing to accept, and
// they outlive the tool session.
type TransformTool struct {
	interactive.BaseTool

	Elements   gizmos.TransformGizmoSubElements
	PivotMode  gizmos.PivotMode
	ViewScaled bool

	targets      []*SceneObjectTarget
	gizmoManager *interactive.GizmoManager
	proxy        *gizmos.TransformProxy
	gizmo        *gizmos.TransformGizmo
}

func (t *TransformTool) Setup() {
	t.proxy = gizmos.NewTransformProxy()
	for _, target := range t.targets {
		t.proxy.AddObject(target.Object)
	}
	t.proxy.SetPivotMode(t.PivotMode)
	if t.proxy.IsEmpty() {
		return
	}

	g, err := gizmos.CreateCustomTransformGizmo(t.gizmoManager, t.Elements, t, "")
	if err != nil {
		t.ToolManager().DisplayMessage("Transform: "+err.Error(), interactive.MessageInternal)
		return
	}
	t.gizmo = g
	g.ViewScaled = t.ViewScaled
	// Gizmo edits go straight to the host history so they stay undoable
	// after the tool ends.
	g.SetActiveTarget(t.proxy, t.ToolManager().ContextTransactionsAPI())
}

func (t *TransformTool) Shutdown(interactive.ToolShutdownType) {
	t.gizmoManager.DestroyAllGizmosByOwner(t)
	t.gizmo = nil
}

// Tick ends the tool once any of its objects has left the scene.
func (t *TransformTool) Tick(float32) {
	for _, target := range t.targets {
		if !target.IsValid() {
			t.ToolManager().PostActiveToolShutdownRequest(t, interactive.ShutdownCompleted)
			return
		}
	}
}

func (t *TransformTool) Gizmo() *gizmos.TransformGizmo {
	return t.gizmo
}

func (t *TransformTool) Proxy() *gizmos.TransformProxy {
	return t.proxy
}
