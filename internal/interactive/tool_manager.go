package interactive

import (
	"fmt"

	"toolsframework/internal/engine"

	"go.uber.org/zap"
)

// ToolEvent is broadcast when a tool starts or ends. ShutdownType is only
// meaningful for OnToolEnded.
type ToolEvent struct {
	Tool         Tool
	Name         string
	Side         ToolSide
	ShutdownType ToolShutdownType
}

// SelectionStorePolicy decides whether the stored selection is cleared
// when a tool ends. requested reports whether the tool called
// RequestToolSelectionStore during its session.
type SelectionStorePolicy func(shutdown ToolShutdownType, requested bool) bool

// DefaultSelectionStorePolicy clears the store unless the tool was
// cancelled or asked for its selection to be kept.
func DefaultSelectionStorePolicy(shutdown ToolShutdownType, requested bool) bool {
	return shutdown != ShutdownCancel && !requested
}

type toolSlot struct {
	builder     ToolBuilder
	builderName string
	tool        Tool
	toolName    string
	// storeRequested is set when the active tool stored a selection.
	storeRequested bool
}

// ToolManager owns tool builders and at most one active tool per side.
type ToolManager struct {
	queries      QueriesAPI
	transactions TransactionsAPI
	router       InputRouter
	logger       *zap.Logger

	builders map[string]ToolBuilder
	slots    [2]toolSlot

	trackingMode   ChangeTrackingMode
	selectionStore SelectionStore
	storePolicy    SelectionStorePolicy

	gizmoManager  *GizmoManager
	targetManager *TargetManager

	OnToolStarted engine.EventWithArg[ToolEvent]
	OnToolEnded   engine.EventWithArg[ToolEvent]
}

func NewToolManager(queries QueriesAPI, transactions TransactionsAPI, router InputRouter) *ToolManager {
	return &ToolManager{
		queries:      queries,
		transactions: transactions,
		router:       router,
		logger:       zap.NewNop(),
		builders:     make(map[string]ToolBuilder),
		trackingMode: UndoToExit,
		storePolicy:  DefaultSelectionStorePolicy,
	}
}

func (m *ToolManager) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	m.logger = l
}

// SetPairedGizmoManager sets the GizmoManager handed to tool builders.
func (m *ToolManager) SetPairedGizmoManager(g *GizmoManager) { m.gizmoManager = g }

func (m *ToolManager) PairedGizmoManager() *GizmoManager { return m.gizmoManager }

func (m *ToolManager) SetTargetManager(t *TargetManager) { m.targetManager = t }

func (m *ToolManager) SetSelectionStore(s SelectionStore) { m.selectionStore = s }

// SetSelectionStorePolicy replaces the clear-on-exit decision. A nil policy
// restores the default.
func (m *ToolManager) SetSelectionStorePolicy(p SelectionStorePolicy) {
	if p == nil {
		p = DefaultSelectionStorePolicy
	}
	m.storePolicy = p
}

func (m *ToolManager) ChangeTrackingMode() ChangeTrackingMode { return m.trackingMode }

// ConfigureChangeTrackingMode sets the activation undo policy. It is refused
// while any tool is active.
func (m *ToolManager) ConfigureChangeTrackingMode(mode ChangeTrackingMode) bool {
	if m.HasAnyActiveTool() {
		m.DisplayMessage("ConfigureChangeTrackingMode: cannot change mode while a tool is active", MessageInternal)
		return false
	}
	m.trackingMode = mode
	return true
}

func (m *ToolManager) ContextQueriesAPI() QueriesAPI { return m.queries }

func (m *ToolManager) ContextTransactionsAPI() TransactionsAPI { return m.transactions }

// RegisterToolType adds a builder. Registering an identifier twice panics.
func (m *ToolManager) RegisterToolType(identifier string, builder ToolBuilder) {
	if builder == nil {
		panic(fmt.Sprintf("tool type %q registered with nil builder", identifier))
	}
	if _, exists := m.builders[identifier]; exists {
		m.DisplayMessage(fmt.Sprintf("RegisterToolType: type %q already registered", identifier), MessageInternal)
		panic(fmt.Sprintf("tool type %q already registered", identifier))
	}
	m.builders[identifier] = builder
}

// UnregisterToolType removes a builder, cancelling any active tool of that
// type and clearing it as the active builder.
func (m *ToolManager) UnregisterToolType(identifier string) bool {
	if _, ok := m.builders[identifier]; !ok {
		m.DisplayMessage(fmt.Sprintf("UnregisterToolType: %q: %v", identifier, ErrUnknownBuilder), MessageInternal)
		return false
	}
	for side := range m.slots {
		slot := &m.slots[side]
		if slot.tool != nil && slot.toolName == identifier {
			m.DeactivateTool(ToolSide(side), ShutdownCancel)
		}
		if slot.builderName == identifier {
			slot.builder = nil
			slot.builderName = ""
		}
	}
	delete(m.builders, identifier)
	return true
}

func (m *ToolManager) IsToolTypeRegistered(identifier string) bool {
	_, ok := m.builders[identifier]
	return ok
}

// SelectActiveToolType chooses the builder ActivateTool will use.
func (m *ToolManager) SelectActiveToolType(side ToolSide, identifier string) bool {
	if !m.checkSide(side, "SelectActiveToolType") {
		return false
	}
	b, ok := m.builders[identifier]
	if !ok {
		m.DisplayMessage(fmt.Sprintf("SelectActiveToolType: %q: %v", identifier, ErrUnknownBuilder), MessageInternal)
		return false
	}
	m.slots[side].builder = b
	m.slots[side].builderName = identifier
	return true
}

// CanActivateTool reports whether the named builder could build now.
func (m *ToolManager) CanActivateTool(side ToolSide, identifier string) bool {
	if !side.valid() {
		return false
	}
	b, ok := m.builders[identifier]
	if !ok {
		return false
	}
	return b.CanBuildTool(m.builderState())
}

// ActivateTool builds and starts a tool from the selected builder. An
// already active tool on that side is accepted first.
func (m *ToolManager) ActivateTool(side ToolSide) bool {
	if !m.checkSide(side, "ActivateTool") {
		return false
	}
	if m.slots[side].tool != nil {
		m.DeactivateTool(side, ShutdownAccept)
	}

	if m.trackingMode == FullUndoRedo {
		m.transactions.BeginUndoTransaction("Activate Tool")
		defer m.transactions.EndUndoTransaction()
	}

	if err := m.activateToolInternal(side); err != nil {
		m.DisplayMessage("ActivateTool: "+err.Error(), MessageInternal)
		return false
	}

	switch m.trackingMode {
	case FullUndoRedo:
		m.transactions.AppendChange(m, &ActivateToolChange{Side: side, ToolType: m.slots[side].toolName}, "Activate Tool")
	case UndoToExit:
		m.transactions.AppendChange(m, &BeginToolChange{Side: side}, "Activate Tool")
	}
	return true
}

// DeactivateTool shuts down the active tool. It reports false when no tool
// is active on that side.
func (m *ToolManager) DeactivateTool(side ToolSide, shutdown ToolShutdownType) bool {
	if !m.checkSide(side, "DeactivateTool") {
		return false
	}
	if m.slots[side].tool == nil {
		return false
	}

	if m.trackingMode == FullUndoRedo {
		name := m.slots[side].toolName
		m.transactions.BeginUndoTransaction("Deactivate Tool")
		m.deactivateToolInternal(side, shutdown)
		m.transactions.AppendChange(m, &ActivateToolChange{Side: side, ToolType: name, Deactivate: true, ShutdownType: shutdown}, "Deactivate Tool")
		m.transactions.EndUndoTransaction()
		return true
	}
	m.deactivateToolInternal(side, shutdown)
	return true
}

func (m *ToolManager) activateToolInternal(side ToolSide) error {
	slot := &m.slots[side]
	if slot.builder == nil {
		return ErrNoActiveBuilder
	}
	state := m.builderState()
	if !slot.builder.CanBuildTool(state) {
		return fmt.Errorf("%q: %w", slot.builderName, ErrCannotBuild)
	}
	tool := slot.builder.BuildTool(state)
	if tool == nil {
		return fmt.Errorf("%q: %w", slot.builderName, ErrBuildFailed)
	}

	slot.tool = tool
	slot.toolName = slot.builderName
	slot.storeRequested = false

	tool.Setup()
	m.router.RegisterSource(tool)
	m.transactions.PostInvalidation()

	m.logger.Debug("tool started", zap.String("tool", slot.toolName), zap.Stringer("side", side))
	m.OnToolStarted.Invoke(ToolEvent{Tool: tool, Name: slot.toolName, Side: side})
	return nil
}

func (m *ToolManager) deactivateToolInternal(side ToolSide, shutdown ToolShutdownType) {
	slot := &m.slots[side]
	tool := slot.tool
	if tool == nil {
		return
	}
	name := slot.toolName
	requested := slot.storeRequested

	m.router.ForceTerminateSource(tool)
	tool.Shutdown(shutdown)
	m.router.DeregisterSource(tool)

	slot.tool = nil
	slot.toolName = ""
	slot.storeRequested = false

	m.transactions.PostInvalidation()
	if m.selectionStore != nil && m.storePolicy(shutdown, requested) {
		m.selectionStore.ClearStoredSelection()
	}

	m.logger.Debug("tool ended", zap.String("tool", name), zap.Stringer("side", side), zap.Stringer("shutdown", shutdown))
	m.OnToolEnded.Invoke(ToolEvent{Tool: tool, Name: name, Side: side, ShutdownType: shutdown})
}

func (m *ToolManager) deactivateIfActive(side ToolSide, shutdown ToolShutdownType) {
	if side.valid() && m.slots[side].tool != nil {
		m.deactivateToolInternal(side, shutdown)
	}
}

// reactivate restarts a tool type without recording changes.
func (m *ToolManager) reactivate(side ToolSide, toolType string) {
	if !side.valid() {
		return
	}
	m.deactivateIfActive(side, ShutdownAccept)
	b, ok := m.builders[toolType]
	if !ok {
		m.DisplayMessage(fmt.Sprintf("cannot restore tool %q: %v", toolType, ErrUnknownBuilder), MessageInternal)
		return
	}
	m.slots[side].builder = b
	m.slots[side].builderName = toolType
	if err := m.activateToolInternal(side); err != nil {
		m.DisplayMessage("cannot restore tool: "+err.Error(), MessageInternal)
	}
}

// PostActiveToolShutdownRequest lets a tool end its own session.
func (m *ToolManager) PostActiveToolShutdownRequest(tool Tool, shutdown ToolShutdownType) bool {
	for side := range m.slots {
		if m.slots[side].tool != nil && m.slots[side].tool == tool {
			if shutdown == ShutdownAccept && !m.CanAcceptActiveTool(ToolSide(side)) {
				m.DisplayMessage("PostActiveToolShutdownRequest: tool cannot accept", MessageInternal)
				return false
			}
			return m.DeactivateTool(ToolSide(side), shutdown)
		}
	}
	return false
}

func (m *ToolManager) HasActiveTool(side ToolSide) bool {
	return side.valid() && m.slots[side].tool != nil
}

func (m *ToolManager) HasAnyActiveTool() bool {
	return m.slots[ToolSideLeft].tool != nil || m.slots[ToolSideRight].tool != nil
}

func (m *ToolManager) ActiveTool(side ToolSide) Tool {
	if !side.valid() {
		return nil
	}
	return m.slots[side].tool
}

func (m *ToolManager) ActiveToolName(side ToolSide) string {
	if !side.valid() {
		return ""
	}
	return m.slots[side].toolName
}

func (m *ToolManager) ActiveBuilderName(side ToolSide) string {
	if !side.valid() {
		return ""
	}
	return m.slots[side].builderName
}

func (m *ToolManager) CanAcceptActiveTool(side ToolSide) bool {
	t := m.ActiveTool(side)
	return t != nil && t.HasAccept() && t.CanAccept()
}

func (m *ToolManager) CanCancelActiveTool(side ToolSide) bool {
	t := m.ActiveTool(side)
	return t != nil && t.HasCancel()
}

func (m *ToolManager) Tick(deltaTime float32) {
	for _, slot := range m.slots {
		if slot.tool != nil {
			slot.tool.Tick(deltaTime)
		}
	}
}

func (m *ToolManager) Render(api RenderAPI) {
	for _, slot := range m.slots {
		if slot.tool != nil {
			slot.tool.Render(api)
		}
	}
}

// Shutdown ends every active tool with the given shutdown type.
func (m *ToolManager) Shutdown(shutdown ToolShutdownType) {
	for side := range m.slots {
		m.deactivateIfActive(ToolSide(side), shutdown)
	}
}

func (m *ToolManager) DisplayMessage(text string, level MessageLevel) {
	m.transactions.DisplayMessage(text, level)
}

func (m *ToolManager) PostInvalidation() {
	m.transactions.PostInvalidation()
}

func (m *ToolManager) BeginUndoTransaction(description string) {
	m.transactions.BeginUndoTransaction(description)
}

func (m *ToolManager) EndUndoTransaction() {
	m.transactions.EndUndoTransaction()
}

// EmitObjectChange records change against target. While a tool is active
// the change is wrapped so it expires with that tool's session.
func (m *ToolManager) EmitObjectChange(target any, change ToolCommandChange, description string) {
	if tool := m.slots[ToolSideLeft].tool; tool != nil {
		change = &ToolChangeWrapperChange{manager: m, tool: tool, change: change}
	}
	m.transactions.AppendChange(target, change, description)
}

// AppendChange makes ToolManager a TransactionProvider for gizmos owned by tools.
func (m *ToolManager) AppendChange(target any, change ToolCommandChange, description string) {
	m.EmitObjectChange(target, change, description)
}

func (m *ToolManager) RequestSelectionChange(change SelectedObjectsChangeList) bool {
	return m.transactions.RequestSelectionChange(change)
}

// RequestToolSelectionStore asks the host to keep selection after the active
// tool exits.
func (m *ToolManager) RequestToolSelectionStore(selection any) bool {
	if m.selectionStore == nil {
		return false
	}
	m.selectionStore.StoreSelection(selection)
	if m.slots[ToolSideLeft].tool != nil {
		m.slots[ToolSideLeft].storeRequested = true
	}
	return true
}

func (m *ToolManager) builderState() ToolBuilderState {
	var state ToolBuilderState
	if m.queries != nil {
		state = m.queries.CurrentSelectionState()
	}
	if state.ToolManager == nil {
		state.ToolManager = m
	}
	if state.GizmoManager == nil {
		state.GizmoManager = m.gizmoManager
	}
	if state.TargetManager == nil {
		state.TargetManager = m.targetManager
	}
	return state
}

func (m *ToolManager) checkSide(side ToolSide, op string) bool {
	if side.valid() {
		return true
	}
	m.DisplayMessage(fmt.Sprintf("%s: %v: %s", op, ErrInvalidSide, side), MessageInternal)
	return false
}
