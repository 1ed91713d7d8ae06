package interactive

import "toolsframework/internal/engine"

// ToolBuilderState is the snapshot of host state a builder decides from.
type ToolBuilderState struct {
	Scene           *engine.Scene
	SelectedObjects []*engine.GameObject
	ToolManager     *ToolManager
	GizmoManager    *GizmoManager
	TargetManager   *TargetManager
}

// Tool is an interactive editing session owned by a ToolManager.
type Tool interface {
	InputBehaviorSource
	Setup()
	Shutdown(shutdownType ToolShutdownType)
	Tick(deltaTime float32)
	Render(api RenderAPI)
	HasCancel() bool
	HasAccept() bool
	CanAccept() bool
}

// ToolBuilder creates tools of one type.
type ToolBuilder interface {
	CanBuildTool(state ToolBuilderState) bool
	// BuildTool returns nil on failure.
	BuildTool(state ToolBuilderState) Tool
}

// BaseTool supplies no-op defaults. Embed it and override what the tool
// needs; builders call SetToolManager before returning the tool.
type BaseTool struct {
	manager   *ToolManager
	behaviors BehaviorSet
}

func (t *BaseTool) SetToolManager(m *ToolManager) {
	t.manager = m
}

func (t *BaseTool) ToolManager() *ToolManager {
	return t.manager
}

func (t *BaseTool) AddInputBehavior(b InputBehavior) {
	t.behaviors.Add(b)
}

func (t *BaseTool) InputBehaviors() *BehaviorSet {
	return &t.behaviors
}

func (t *BaseTool) Setup() {}
func (t *BaseTool) Shutdown(ToolShutdownType) {}
func (t *BaseTool) Tick(float32) {}
func (t *BaseTool) Render(RenderAPI) {}
func (t *BaseTool) HasCancel() bool { return false }
func (t *BaseTool) HasAccept() bool { return false }
func (t *BaseTool) CanAccept() bool { return false }
