package interactive

import (
	"fmt"

	"toolsframework/internal/engine"

	"go.uber.org/zap"
)

type activeGizmo struct {
	gizmo      Gizmo
	builderID  string
	instanceID string
	owner      any
}

// GizmoManager owns gizmo builders and every live gizmo instance. Owner is
// an opaque comparable key used for bulk destruction.
type GizmoManager struct {
	queries      QueriesAPI
	transactions TransactionsAPI
	router       InputRouter
	logger       *zap.Logger

	builders map[string]GizmoBuilder
	active   []activeGizmo

	OnGizmoCreated   engine.EventWithArg[Gizmo]
	OnGizmoDestroyed engine.EventWithArg[Gizmo]
}

func NewGizmoManager(queries QueriesAPI, transactions TransactionsAPI, router InputRouter) *GizmoManager {
	return &GizmoManager{
		queries:      queries,
		transactions: transactions,
		router:       router,
		logger:       zap.NewNop(),
		builders:     make(map[string]GizmoBuilder),
	}
}

func (m *GizmoManager) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	m.logger = l
}

// RegisterGizmoType adds a builder. Registering an identifier twice panics
// and leaves the registry unchanged.
func (m *GizmoManager) RegisterGizmoType(identifier string, builder GizmoBuilder) {
	if builder == nil {
		panic(fmt.Sprintf("gizmo type %q registered with nil builder", identifier))
	}
	if _, exists := m.builders[identifier]; exists {
		m.DisplayMessage(fmt.Sprintf("RegisterGizmoType: type %q already registered", identifier), MessageInternal)
		panic(fmt.Sprintf("gizmo type %q already registered", identifier))
	}
	m.builders[identifier] = builder
}

// DeregisterGizmoType removes a builder. Live gizmos built by it survive.
func (m *GizmoManager) DeregisterGizmoType(identifier string) bool {
	if _, ok := m.builders[identifier]; !ok {
		m.DisplayMessage(fmt.Sprintf("DeregisterGizmoType: %q: %v", identifier, ErrUnknownBuilder), MessageInternal)
		return false
	}
	delete(m.builders, identifier)
	return true
}

// GizmoBuilder returns the builder registered under identifier.
func (m *GizmoManager) GizmoBuilder(identifier string) (GizmoBuilder, bool) {
	b, ok := m.builders[identifier]
	return b, ok
}

// CreateGizmo builds, sets up and registers a gizmo. An empty instanceID
// means the gizmo is anonymous; non-empty identifiers must be unique.
func (m *GizmoManager) CreateGizmo(builderID, instanceID string, owner any) (Gizmo, error) {
	return m.CreateGizmoWithParams(builderID, instanceID, owner, nil)
}

// CreateGizmoWithParams is CreateGizmo with params handed to the builder
// for this call only.
func (m *GizmoManager) CreateGizmoWithParams(builderID, instanceID string, owner, params any) (Gizmo, error) {
	if instanceID != "" && m.FindGizmoByInstanceIdentifier(instanceID) != nil {
		err := fmt.Errorf("CreateGizmo: %q: %w", instanceID, ErrDuplicateInstance)
		m.DisplayMessage(err.Error(), MessageInternal)
		return nil, err
	}
	builder, ok := m.builders[builderID]
	if !ok {
		err := fmt.Errorf("CreateGizmo: %q: %w", builderID, ErrUnknownBuilder)
		m.DisplayMessage(err.Error(), MessageInternal)
		return nil, err
	}
	g := builder.BuildGizmo(GizmoBuilderState{GizmoManager: m, Queries: m.queries, Params: params})
	if g == nil {
		err := fmt.Errorf("CreateGizmo: %q: %w", builderID, ErrBuildFailed)
		m.DisplayMessage(err.Error(), MessageInternal)
		return nil, err
	}

	g.Setup()
	m.active = append(m.active, activeGizmo{gizmo: g, builderID: builderID, instanceID: instanceID, owner: owner})
	m.router.RegisterSource(g)
	m.transactions.PostInvalidation()

	m.logger.Debug("gizmo created", zap.String("builder", builderID), zap.String("instance", instanceID))
	m.OnGizmoCreated.Invoke(g)
	return g, nil
}

// DestroyGizmo terminates, shuts down and deregisters g. It reports false if
// g is not tracked by this manager.
func (m *GizmoManager) DestroyGizmo(g Gizmo) bool {
	if g == nil {
		return false
	}
	idx := m.indexOf(g)
	if idx < 0 {
		return false
	}
	rec := m.active[idx]

	m.router.ForceTerminateSource(g)
	g.Shutdown()
	m.router.DeregisterSource(g)

	// Shutdown may have destroyed child gizmos, so look the record up again.
	if i := m.indexOf(g); i >= 0 {
		m.active = append(m.active[:i], m.active[i+1:]...)
	}
	m.transactions.PostInvalidation()

	m.logger.Debug("gizmo destroyed", zap.String("builder", rec.builderID), zap.String("instance", rec.instanceID))
	m.OnGizmoDestroyed.Invoke(g)
	return true
}

func (m *GizmoManager) FindAllGizmosOfType(builderID string) []Gizmo {
	var found []Gizmo
	for _, a := range m.active {
		if a.builderID == builderID {
			found = append(found, a.gizmo)
		}
	}
	return found
}

func (m *GizmoManager) DestroyAllGizmosOfType(builderID string) {
	for _, g := range m.FindAllGizmosOfType(builderID) {
		m.DestroyGizmo(g)
	}
}

func (m *GizmoManager) DestroyAllGizmosByOwner(owner any) {
	var owned []Gizmo
	for _, a := range m.active {
		if a.owner == owner {
			owned = append(owned, a.gizmo)
		}
	}
	for _, g := range owned {
		m.DestroyGizmo(g)
	}
}

func (m *GizmoManager) FindGizmoByInstanceIdentifier(instanceID string) Gizmo {
	if instanceID == "" {
		return nil
	}
	for _, a := range m.active {
		if a.instanceID == instanceID {
			return a.gizmo
		}
	}
	return nil
}

func (m *GizmoManager) ActiveGizmoCount() int {
	return len(m.active)
}

func (m *GizmoManager) Tick(deltaTime float32) {
	for _, a := range m.snapshot() {
		a.gizmo.Tick(deltaTime)
	}
}

func (m *GizmoManager) Render(api RenderAPI) {
	for _, a := range m.snapshot() {
		a.gizmo.Render(api)
	}
}

// Shutdown destroys every live gizmo, newest first.
func (m *GizmoManager) Shutdown() {
	for len(m.active) > 0 {
		m.DestroyGizmo(m.active[len(m.active)-1].gizmo)
	}
}

func (m *GizmoManager) ContextQueriesAPI() QueriesAPI { return m.queries }

func (m *GizmoManager) ContextTransactionsAPI() TransactionsAPI { return m.transactions }

func (m *GizmoManager) DisplayMessage(text string, level MessageLevel) {
	m.transactions.DisplayMessage(text, level)
}

func (m *GizmoManager) PostInvalidation() {
	m.transactions.PostInvalidation()
}

func (m *GizmoManager) BeginUndoTransaction(description string) {
	m.transactions.BeginUndoTransaction(description)
}

func (m *GizmoManager) EndUndoTransaction() {
	m.transactions.EndUndoTransaction()
}

func (m *GizmoManager) AppendChange(target any, change ToolCommandChange, description string) {
	m.transactions.AppendChange(target, change, description)
}

// EmitObjectChange records change without tying it to a tool session.
func (m *GizmoManager) EmitObjectChange(target any, change ToolCommandChange, description string) {
	m.transactions.AppendChange(target, change, description)
}

func (m *GizmoManager) indexOf(g Gizmo) int {
	for i, a := range m.active {
		if a.gizmo == g {
			return i
		}
	}
	return -1
}

func (m *GizmoManager) snapshot() []activeGizmo {
	return append([]activeGizmo(nil), m.active...)
}
