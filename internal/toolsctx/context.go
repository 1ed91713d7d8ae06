// Package toolsctx ties the framework managers to one host. A Context owns
// the input router, the tool, gizmo and target managers, and forwards each
// frame's input, tick and render to them.
package toolsctx

import (
	"toolsframework/internal/gizmos"
	"toolsframework/internal/interactive"

	"go.uber.org/zap"
)

// Context is the composition root of the framework.
type Context struct {
	queries      interactive.QueriesAPI
	transactions interactive.TransactionsAPI
	logger       *zap.Logger

	trackingMode   interactive.ChangeTrackingMode
	selectionStore interactive.SelectionStore
	storePolicy    interactive.SelectionStorePolicy
	registerTools  func(*interactive.ToolManager, *interactive.TargetManager)

	router  *interactive.Router
	tools   *interactive.ToolManager
	gizmos  *interactive.GizmoManager
	targets *interactive.TargetManager

	initialized bool
}

type Option func(*Context)

func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithChangeTracking(mode interactive.ChangeTrackingMode) Option {
	return func(c *Context) { c.trackingMode = mode }
}

func WithSelectionStore(s interactive.SelectionStore) Option {
	return func(c *Context) { c.selectionStore = s }
}

func WithSelectionStorePolicy(p interactive.SelectionStorePolicy) Option {
	return func(c *Context) { c.storePolicy = p }
}

// WithTools runs register against the managers during Initialize, after the
// default gizmos are in place.
func WithTools(register func(*interactive.ToolManager, *interactive.TargetManager)) Option {
	return func(c *Context) { c.registerTools = register }
}

func New(queries interactive.QueriesAPI, transactions interactive.TransactionsAPI, opts ...Option) *Context {
	c := &Context{
		queries:      queries,
		transactions: transactions,
		logger:       zap.NewNop(),
		trackingMode: interactive.UndoToExit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize builds the router and managers. Calling it twice is a no-op.
func (c *Context) Initialize() {
	if c.initialized {
		return
	}
	c.router = interactive.NewRouter()
	c.targets = interactive.NewTargetManager()

	c.gizmos = interactive.NewGizmoManager(c.queries, c.transactions, c.router)
	c.gizmos.SetLogger(c.logger.Named("gizmos"))
	gizmos.RegisterDefaultGizmos(c.gizmos)

	c.tools = interactive.NewToolManager(c.queries, c.transactions, c.router)
	c.tools.SetLogger(c.logger.Named("tools"))
	c.tools.ConfigureChangeTrackingMode(c.trackingMode)
	c.tools.SetPairedGizmoManager(c.gizmos)
	c.tools.SetTargetManager(c.targets)
	if c.selectionStore != nil {
		c.tools.SetSelectionStore(c.selectionStore)
	}
	if c.storePolicy != nil {
		c.tools.SetSelectionStorePolicy(c.storePolicy)
	}
	if c.registerTools != nil {
		c.registerTools(c.tools, c.targets)
	}

	c.initialized = true
	c.logger.Debug("tools context initialized", zap.Stringer("change_tracking", c.trackingMode))
}

// Shutdown ends the active tools with shutdown, then destroys the gizmos
// that remain.
func (c *Context) Shutdown(shutdown interactive.ToolShutdownType) {
	if !c.initialized {
		return
	}
	c.router.ForceTerminateAll()
	c.tools.Shutdown(shutdown)
	c.gizmos.Shutdown()
	c.initialized = false
	c.logger.Debug("tools context shut down", zap.Stringer("shutdown", shutdown))
}

func (c *Context) IsInitialized() bool {
	return c.initialized
}

func (c *Context) Tick(deltaTime float32) {
	if !c.initialized {
		return
	}
	c.tools.Tick(deltaTime)
	c.gizmos.Tick(deltaTime)
}

func (c *Context) Render(api interactive.RenderAPI) {
	if !c.initialized {
		return
	}
	c.tools.Render(api)
	c.gizmos.Render(api)
}

func (c *Context) PostInputEvent(state interactive.InputState) {
	if !c.initialized {
		return
	}
	c.router.PostInputEvent(state)
}

// WantsInput reports whether a tool or gizmo would take a press at ray, so
// the host can fall back to its own picking otherwise.
func (c *Context) WantsInput(ray interactive.InputDeviceRay) bool {
	if !c.initialized {
		return false
	}
	return c.router.HasActiveMouseCapture() || c.router.WouldCapture(ray)
}

// ActivateTool selects and starts a tool on the left side.
func (c *Context) ActivateTool(identifier string) bool {
	if !c.initialized || !c.tools.SelectActiveToolType(interactive.ToolSideLeft, identifier) {
		return false
	}
	return c.tools.ActivateTool(interactive.ToolSideLeft)
}

// EndTool ends the left tool. Accept is downgraded to Cancel when the tool
// cannot accept, and Completed is used for tools with neither.
func (c *Context) EndTool(shutdown interactive.ToolShutdownType) bool {
	if !c.initialized {
		return false
	}
	tool := c.tools.ActiveTool(interactive.ToolSideLeft)
	if tool == nil {
		return false
	}
	switch {
	case !tool.HasAccept() && !tool.HasCancel():
		shutdown = interactive.ShutdownCompleted
	case shutdown == interactive.ShutdownAccept && !c.tools.CanAcceptActiveTool(interactive.ToolSideLeft):
		shutdown = interactive.ShutdownCancel
	}
	return c.tools.DeactivateTool(interactive.ToolSideLeft, shutdown)
}

func (c *Context) CanAcceptActiveTool() bool {
	return c.initialized && c.tools.CanAcceptActiveTool(interactive.ToolSideLeft)
}

func (c *Context) CanCancelActiveTool() bool {
	return c.initialized && c.tools.CanCancelActiveTool(interactive.ToolSideLeft)
}

func (c *Context) ActiveToolName() string {
	if !c.initialized {
		return ""
	}
	return c.tools.ActiveToolName(interactive.ToolSideLeft)
}

func (c *Context) ToolManager() *interactive.ToolManager { return c.tools }

func (c *Context) GizmoManager() *interactive.GizmoManager { return c.gizmos }

func (c *Context) TargetManager() *interactive.TargetManager { return c.targets }

func (c *Context) InputRouter() *interactive.Router { return c.router }
