package interactive

// ToolCommandChange is a reversible edit recorded in the undo history.
// Target is the object the change was appended against.
type ToolCommandChange interface {
	Apply(target any)
	Revert(target any)
	// HasExpired reports that the change can no longer be meaningfully
	// applied or reverted; the history skips it.
	HasExpired(target any) bool
	String() string
}

// ToolCommandChangeSource produces a change spanning a Begin/End bracket.
type ToolCommandChangeSource interface {
	BeginChange()
	// EndChange returns nil when nothing changed.
	EndChange() ToolCommandChange
	ChangeTarget() any
	ChangeDescription() string
}

// ToolChangeWrapperChange ties a change to the tool session that emitted it.
// It expires when that tool is no longer active.
type ToolChangeWrapperChange struct {
	manager *ToolManager
	tool    Tool
	change  ToolCommandChange
}

func (w *ToolChangeWrapperChange) Apply(target any) {
	w.change.Apply(target)
}

func (w *ToolChangeWrapperChange) Revert(target any) {
	w.change.Revert(target)
}

func (w *ToolChangeWrapperChange) HasExpired(target any) bool {
	if w.manager == nil || w.manager.ActiveTool(ToolSideLeft) != w.tool {
		return true
	}
	return w.change.HasExpired(target)
}

func (w *ToolChangeWrapperChange) String() string {
	return "ToolChangeWrapperChange(" + w.change.String() + ")"
}

// Unwrap returns the wrapped change.
func (w *ToolChangeWrapperChange) Unwrap() ToolCommandChange {
	return w.change
}

// BeginToolChange marks a tool activation in UndoToExit mode. Reverting it
// cancels the active tool.
type BeginToolChange struct {
	Side ToolSide
}

func (c *BeginToolChange) Apply(target any) {}

func (c *BeginToolChange) Revert(target any) {
	if m, ok := target.(*ToolManager); ok && m.HasActiveTool(c.Side) {
		m.DeactivateTool(c.Side, ShutdownCancel)
	}
}

func (c *BeginToolChange) HasExpired(target any) bool {
	m, ok := target.(*ToolManager)
	return !ok || !m.HasActiveTool(c.Side)
}

func (c *BeginToolChange) String() string {
	return "BeginToolChange"
}

// ActivateToolChange records a tool activation or deactivation in
// FullUndoRedo mode. Apply and Revert use the manager's internal
// transitions so replaying emits no further changes.
type ActivateToolChange struct {
	Side         ToolSide
	ToolType     string
	Deactivate   bool
	ShutdownType ToolShutdownType
}

func (c *ActivateToolChange) Apply(target any) {
	m, ok := target.(*ToolManager)
	if !ok {
		return
	}
	if c.Deactivate {
		m.deactivateIfActive(c.Side, c.ShutdownType)
	} else {
		m.reactivate(c.Side, c.ToolType)
	}
}

func (c *ActivateToolChange) Revert(target any) {
	m, ok := target.(*ToolManager)
	if !ok {
		return
	}
	if c.Deactivate {
		m.reactivate(c.Side, c.ToolType)
	} else {
		m.deactivateIfActive(c.Side, ShutdownCancel)
	}
}

func (c *ActivateToolChange) HasExpired(target any) bool {
	_, ok := target.(*ToolManager)
	return !ok
}

func (c *ActivateToolChange) String() string {
	if c.Deactivate {
		return "ActivateToolChange(deactivate " + c.ToolType + ", " + c.ShutdownType.String() + ")"
	}
	return "ActivateToolChange(activate " + c.ToolType + ")"
}
