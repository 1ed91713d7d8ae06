// Package tools holds the concrete editor tools built on the interactive
// framework.
package tools

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/interactive"
)

// TransformableCapability is provided by targets whose world transform a
// tool may edit.
const TransformableCapability = "SceneObjectTransform"

// SceneObjectTarget exposes a scene object's world transform to tools.
type SceneObjectTarget struct {
	Object *engine.GameObject
}

// IsValid reports whether the object is still in a scene.
func (t *SceneObjectTarget) IsValid() bool {
	return t.Object != nil && t.Object.Scene != nil
}

func (t *SceneObjectTarget) WorldTransform() engine.Transform {
	return t.Object.WorldTransform()
}

func (t *SceneObjectTarget) SetWorldTransform(w engine.Transform) {
	t.Object.SetWorldTransform(w)
}

// GameObjectTargetFactory builds SceneObjectTargets for objects that belong
// to a scene.
type GameObjectTargetFactory struct{}

func (GameObjectTargetFactory) Capabilities() []string {
	return []string{TransformableCapability}
}

func (GameObjectTargetFactory) CanBuildTarget(source any) bool {
	obj, ok := source.(*engine.GameObject)
	return ok && obj != nil && obj.Scene != nil
}

func (f GameObjectTargetFactory) BuildTarget(source any) interactive.ToolTarget {
	if !f.CanBuildTarget(source) {
		return nil
	}
	return &SceneObjectTarget{Object: source.(*engine.GameObject)}
}

// transformRequirements is what TransformTool asks of its targets.
var transformRequirements = interactive.NewTargetRequirements(TransformableCapability)

// selectedTargets builds a target for every qualifying selected object. A
// nil target manager accepts any selected object in a scene.
func selectedTargets(state interactive.ToolBuilderState) []*SceneObjectTarget {
	var out []*SceneObjectTarget
	for _, obj := range state.SelectedObjects {
		var target interactive.ToolTarget
		if state.TargetManager != nil {
			target = state.TargetManager.BuildTarget(obj, transformRequirements)
		} else {
			target = GameObjectTargetFactory{}.BuildTarget(obj)
		}
		if st, ok := target.(*SceneObjectTarget); ok {
			out = append(out, st)
		}
	}
	return out
}

// Defaults configures the tools RegisterDefaultTools installs.
type Defaults struct {
	ViewScaledGizmo bool
	GroundHeight    float32
}

// Register installs the Transform and PlaceObject tools and, when targets
// is non-nil, the GameObject target factory.
func (d Defaults) Register(m *interactive.ToolManager, targets *interactive.TargetManager) {
	m.RegisterToolType(TransformToolID, &TransformToolBuilder{
		Elements:   DefaultTransformElements,
		ViewScaled: d.ViewScaledGizmo,
	})
	m.RegisterToolType(PlaceObjectToolID, &PlaceObjectToolBuilder{GroundHeight: d.GroundHeight})
	if targets != nil {
		targets.AddTargetFactory(GameObjectTargetFactory{})
	}
}

// RegisterDefaultTools registers the tools with zero Defaults.
func RegisterDefaultTools(m *interactive.ToolManager, targets *interactive.TargetManager) {
	Defaults{}.Register(m, targets)
}
