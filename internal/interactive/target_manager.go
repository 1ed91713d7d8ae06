package interactive

// ToolTarget wraps a scene object with the capabilities a tool needs.
type ToolTarget interface {
	IsValid() bool
}

// TargetRequirements lists capability names a target must provide.
type TargetRequirements struct {
	Capabilities []string
}

func NewTargetRequirements(capabilities ...string) TargetRequirements {
	return TargetRequirements{Capabilities: capabilities}
}

// TargetFactory builds targets for source objects it understands.
type TargetFactory interface {
	Capabilities() []string
	CanBuildTarget(source any) bool
	// BuildTarget returns nil on failure.
	BuildTarget(source any) ToolTarget
}

// TargetManager selects a factory able to satisfy a tool's requirements.
type TargetManager struct {
	factories []TargetFactory
}

func NewTargetManager() *TargetManager {
	return &TargetManager{}
}

func (m *TargetManager) AddTargetFactory(f TargetFactory) {
	if f != nil {
		m.factories = append(m.factories, f)
	}
}

func (m *TargetManager) FactoryCount() int {
	return len(m.factories)
}

func (m *TargetManager) CanBuildTarget(source any, req TargetRequirements) bool {
	return m.findFactory(source, req) != nil
}

// BuildTarget returns nil when no factory can satisfy req for source.
func (m *TargetManager) BuildTarget(source any, req TargetRequirements) ToolTarget {
	f := m.findFactory(source, req)
	if f == nil {
		return nil
	}
	return f.BuildTarget(source)
}

// BuildFirstSelectedTargetable builds a target for the first selected object
// that qualifies.
func (m *TargetManager) BuildFirstSelectedTargetable(state ToolBuilderState, req TargetRequirements) ToolTarget {
	for _, obj := range state.SelectedObjects {
		if t := m.BuildTarget(obj, req); t != nil {
			return t
		}
	}
	return nil
}

// CountSelectedTargetable counts selected objects that qualify.
func (m *TargetManager) CountSelectedTargetable(state ToolBuilderState, req TargetRequirements) int {
	n := 0
	for _, obj := range state.SelectedObjects {
		if m.CanBuildTarget(obj, req) {
			n++
		}
	}
	return n
}

func (m *TargetManager) findFactory(source any, req TargetRequirements) TargetFactory {
	for _, f := range m.factories {
		if provides(f.Capabilities(), req.Capabilities) && f.CanBuildTarget(source) {
			return f
		}
	}
	return nil
}

func provides(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
