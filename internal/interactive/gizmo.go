package interactive

// Gizmo is a manager-owned interactive handle set. Gizmos are created only
// through GizmoManager.CreateGizmo.
type Gizmo interface {
	InputBehaviorSource
	Setup()
	Shutdown()
	Tick(deltaTime float32)
	Render(api RenderAPI)
}

// GizmoBuilderState is passed to builders at creation.
type GizmoBuilderState struct {
	GizmoManager *GizmoManager
	Queries      QueriesAPI
	// Params carries per-call build options from CreateGizmoWithParams.
	Params any
}

type GizmoBuilder interface {
	// BuildGizmo returns nil on failure.
	BuildGizmo(state GizmoBuilderState) Gizmo
}

// GizmoBuilderFunc adapts a function to GizmoBuilder.
type GizmoBuilderFunc func(state GizmoBuilderState) Gizmo

func (f GizmoBuilderFunc) BuildGizmo(state GizmoBuilderState) Gizmo {
	return f(state)
}

// BaseGizmo supplies no-op defaults and the gizmo's behavior set.
type BaseGizmo struct {
	manager   *GizmoManager
	behaviors BehaviorSet
}

func (g *BaseGizmo) SetGizmoManager(m *GizmoManager) {
	g.manager = m
}

func (g *BaseGizmo) GizmoManager() *GizmoManager {
	return g.manager
}

func (g *BaseGizmo) AddInputBehavior(b InputBehavior) {
	g.behaviors.Add(b)
}

func (g *BaseGizmo) InputBehaviors() *BehaviorSet {
	return &g.behaviors
}

func (g *BaseGizmo) Setup() {}
func (g *BaseGizmo) Shutdown() {}
func (g *BaseGizmo) Tick(float32) {}
func (g *BaseGizmo) Render(RenderAPI) {}
