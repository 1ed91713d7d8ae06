// Package gizmos implements the standard transform gizmos and the small
// capability objects they are assembled from.
package gizmos

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AxisSource provides an origin and direction, and optionally a tangent
// basis for the plane perpendicular to the direction.
type AxisSource interface {
	Origin() rl.Vector3
	Direction() rl.Vector3
	HasTangentVectors() bool
	TangentVectors() (rl.Vector3, rl.Vector3)
}

type FloatParameterSource interface {
	Parameter() float32
	SetParameter(v float32)
	BeginModify()
	EndModify()
}

type Vec2ParameterSource interface {
	Parameter() rl.Vector2
	SetParameter(v rl.Vector2)
	BeginModify()
	EndModify()
}

type TransformSource interface {
	Transform() engine.Transform
	SetTransform(t engine.Transform)
}

// HitTarget answers hit tests for a gizmo and receives its hover and
// interaction state.
type HitTarget interface {
	IsHit(ray interactive.InputDeviceRay) interactive.InputRayHit
	UpdateHoverState(hovering bool)
	UpdateInteractingState(interacting bool)
}

// StateTarget brackets each interaction.
type StateTarget interface {
	BeginUpdate()
	EndUpdate()
}

// ConstantAxisSource is a fixed axis without tangents.
type ConstantAxisSource struct {
	AxisOrigin    rl.Vector3
	AxisDirection rl.Vector3
}

func (s *ConstantAxisSource) Origin() rl.Vector3 { return s.AxisOrigin }

func (s *ConstantAxisSource) Direction() rl.Vector3 { return s.AxisDirection }

func (s *ConstantAxisSource) HasTangentVectors() bool { return false }

func (s *ConstantAxisSource) TangentVectors() (rl.Vector3, rl.Vector3) {
	return geom.PerpendicularBasis(s.AxisDirection)
}

// ConstantFrameAxisSource is a fixed axis with an explicit tangent basis.
type ConstantFrameAxisSource struct {
	AxisOrigin    rl.Vector3
	AxisDirection rl.Vector3
	TangentX      rl.Vector3
	TangentY      rl.Vector3
}

func (s *ConstantFrameAxisSource) Origin() rl.Vector3 { return s.AxisOrigin }

func (s *ConstantFrameAxisSource) Direction() rl.Vector3 { return s.AxisDirection }

func (s *ConstantFrameAxisSource) HasTangentVectors() bool { return true }

func (s *ConstantFrameAxisSource) TangentVectors() (rl.Vector3, rl.Vector3) {
	return s.TangentX, s.TangentY
}

// ObjectAxisSource reads one axis of an object's world transform. In local
// mode the axis follows the object's rotation; otherwise it is the world
// axis with the same index. Tangents are the two following axes in cyclic
// order.
type ObjectAxisSource struct {
	Object    *engine.GameObject
	AxisIndex int
	LocalAxes bool
}

func (s *ObjectAxisSource) Origin() rl.Vector3 {
	return s.Object.WorldPosition()
}

func (s *ObjectAxisSource) Direction() rl.Vector3 {
	return s.axis(s.AxisIndex)
}

func (s *ObjectAxisSource) HasTangentVectors() bool { return true }

func (s *ObjectAxisSource) TangentVectors() (rl.Vector3, rl.Vector3) {
	return s.axis((s.AxisIndex + 1) % 3), s.axis((s.AxisIndex + 2) % 3)
}

func (s *ObjectAxisSource) axis(index int) rl.Vector3 {
	if !s.LocalAxes {
		return engine.UnitAxis(index)
	}
	return s.Object.WorldTransform().Axis(index)
}

// ObjectTransformSource reads and writes an object's world transform.
type ObjectTransformSource struct {
	Object *engine.GameObject
}

func (s *ObjectTransformSource) Transform() engine.Transform {
	return s.Object.WorldTransform()
}

func (s *ObjectTransformSource) SetTransform(t engine.Transform) {
	s.Object.SetWorldTransform(t)
}

// ScaledTransformSource splits scale away from a child source. Reads combine
// the child's position and rotation with the external scale; writes store
// the scale externally first and pass an unscaled transform to the child.
type ScaledTransformSource struct {
	Child    TransformSource
	GetScale func() rl.Vector3
	SetScale func(rl.Vector3)
}

func (s *ScaledTransformSource) Transform() engine.Transform {
	return s.Child.Transform().WithScale(s.GetScale())
}

func (s *ScaledTransformSource) SetTransform(t engine.Transform) {
	s.SetScale(t.Scale)
	s.Child.SetTransform(t.WithScale(rl.Vector3{X: 1, Y: 1, Z: 1}))
}
