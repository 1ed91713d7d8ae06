package gizmos

import (
	"fmt"

	"toolsframework/internal/interactive"
)

// Builder identifiers registered by RegisterDefaultGizmos.
const (
	AxisPositionBuilderID       = "StandardXFormAxisTranslationGizmo"
	PlanePositionBuilderID      = "StandardXFormPlaneTranslationGizmo"
	AxisAngleBuilderID          = "StandardXFormAxisRotationGizmo"
	ThreeAxisTransformBuilderID = "DefaultThreeAxisTransformGizmo"
	CustomTransformBuilderID    = "CustomThreeAxisTransformGizmo"
)

// TransformGizmoBuilder builds TransformGizmos with Elements, unless the
// build params carry a TransformGizmoSubElements of their own.
type TransformGizmoBuilder struct {
	Elements TransformGizmoSubElements
}

func (b *TransformGizmoBuilder) BuildGizmo(state interactive.GizmoBuilderState) interactive.Gizmo {
	elements := b.Elements
	if e, ok := state.Params.(TransformGizmoSubElements); ok {
		elements = e
	}
	g := NewTransformGizmo(state.Queries, elements)
	g.SetGizmoManager(state.GizmoManager)
	return g
}

// RegisterDefaultGizmos registers the standard sub-gizmo and transform gizmo
// builders on m.
func RegisterDefaultGizmos(m *interactive.GizmoManager) {
	m.RegisterGizmoType(AxisPositionBuilderID, interactive.GizmoBuilderFunc(func(state interactive.GizmoBuilderState) interactive.Gizmo {
		g := NewAxisPositionGizmo()
		g.SetGizmoManager(state.GizmoManager)
		return g
	}))
	m.RegisterGizmoType(PlanePositionBuilderID, interactive.GizmoBuilderFunc(func(state interactive.GizmoBuilderState) interactive.Gizmo {
		g := NewPlanePositionGizmo()
		g.SetGizmoManager(state.GizmoManager)
		return g
	}))
	m.RegisterGizmoType(AxisAngleBuilderID, interactive.GizmoBuilderFunc(func(state interactive.GizmoBuilderState) interactive.Gizmo {
		g := NewAxisAngleGizmo()
		g.SetGizmoManager(state.GizmoManager)
		return g
	}))
	m.RegisterGizmoType(ThreeAxisTransformBuilderID, &TransformGizmoBuilder{Elements: TranslateRotateUniformScale})
	m.RegisterGizmoType(CustomTransformBuilderID, &TransformGizmoBuilder{Elements: TranslateRotateUniformScale})
}

// Create3AxisTransformGizmo creates the default translate/rotate/uniform
// scale gizmo.
func Create3AxisTransformGizmo(m *interactive.GizmoManager, owner any, instanceID string) (*TransformGizmo, error) {
	return createTransformGizmo(m, ThreeAxisTransformBuilderID, owner, instanceID, nil)
}

// CreateCustomTransformGizmo creates a transform gizmo with only the given
// elements.
func CreateCustomTransformGizmo(m *interactive.GizmoManager, elements TransformGizmoSubElements, owner any, instanceID string) (*TransformGizmo, error) {
	return createTransformGizmo(m, CustomTransformBuilderID, owner, instanceID, elements)
}

func createTransformGizmo(m *interactive.GizmoManager, builderID string, owner any, instanceID string, params any) (*TransformGizmo, error) {
	g, err := m.CreateGizmoWithParams(builderID, instanceID, owner, params)
	if err != nil {
		return nil, err
	}
	tg, ok := g.(*TransformGizmo)
	if !ok {
		m.DestroyGizmo(g)
		return nil, fmt.Errorf("%s: built %T: %w", builderID, g, interactive.ErrBuildFailed)
	}
	return tg, nil
}
