package gizmos

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// DefaultScaleMultiplier maps one world unit of drag to a 50% scale change.
	DefaultScaleMultiplier = 0.5
	// MinScaleFactor bounds how far a single drag can shrink a scale.
	MinScaleFactor = 0.1
)

// LocalFloatParameterSource stores a float and reports changes.
type LocalFloatParameterSource struct {
	Value              float32
	OnParameterChanged engine.EventWithArg[float32]
}

func (s *LocalFloatParameterSource) Parameter() float32 { return s.Value }

func (s *LocalFloatParameterSource) SetParameter(v float32) {
	s.Value = v
	s.OnParameterChanged.Invoke(v)
}

func (s *LocalFloatParameterSource) BeginModify() {}
func (s *LocalFloatParameterSource) EndModify() {}

// LocalVec2ParameterSource stores a 2D value and reports changes.
type LocalVec2ParameterSource struct {
	Value              rl.Vector2
	OnParameterChanged engine.EventWithArg[rl.Vector2]
}

func (s *LocalVec2ParameterSource) Parameter() rl.Vector2 { return s.Value }

func (s *LocalVec2ParameterSource) SetParameter(v rl.Vector2) {
	s.Value = v
	s.OnParameterChanged.Invoke(v)
}

func (s *LocalVec2ParameterSource) BeginModify() {}
func (s *LocalVec2ParameterSource) EndModify() {}

// transformEdit captures the state a transform-mutating source needs for
// the current modification.
type transformEdit struct {
	modifying bool
	initial   engine.Transform
}

func (e *transformEdit) begin(src TransformSource) {
	e.modifying = true
	e.initial = src.Transform()
}

// AxisTranslationParameterSource moves a transform along an axis by the
// change in its parameter since BeginModify.
type AxisTranslationParameterSource struct {
	AxisSource      AxisSource
	TransformSource TransformSource
	// PositionConstraint optionally snaps the new world position; only its
	// component along the axis is used.
	PositionConstraint func(worldPos rl.Vector3) (rl.Vector3, bool)

	parameter        float32
	initialParameter float32
	axis             rl.Vector3
	edit             transformEdit
}

func (s *AxisTranslationParameterSource) Parameter() float32 { return s.parameter }

func (s *AxisTranslationParameterSource) BeginModify() {
	s.initialParameter = s.parameter
	s.axis = rl.Vector3Normalize(s.AxisSource.Direction())
	s.edit.begin(s.TransformSource)
}

func (s *AxisTranslationParameterSource) SetParameter(v float32) {
	if !s.edit.modifying {
		s.BeginModify()
		defer s.EndModify()
	}
	s.parameter = v
	translation := rl.Vector3Scale(s.axis, v-s.initialParameter)
	start := s.edit.initial.Position
	if s.PositionConstraint != nil {
		if snapped, ok := s.PositionConstraint(rl.Vector3Add(start, translation)); ok {
			along := rl.Vector3DotProduct(rl.Vector3Subtract(snapped, start), s.axis)
			translation = rl.Vector3Scale(s.axis, along)
		}
	}
	t := s.edit.initial
	t.Position = rl.Vector3Add(start, translation)
	s.TransformSource.SetTransform(t)
}

func (s *AxisTranslationParameterSource) EndModify() {
	s.edit.modifying = false
}

// PlaneTranslationParameterSource moves a transform within the plane of an
// axis source, using its tangent basis for the two parameter components.
type PlaneTranslationParameterSource struct {
	AxisSource         AxisSource
	TransformSource    TransformSource
	PositionConstraint func(worldPos rl.Vector3) (rl.Vector3, bool)

	parameter        rl.Vector2
	initialParameter rl.Vector2
	normal           rl.Vector3
	axisX, axisY     rl.Vector3
	edit             transformEdit
}

func (s *PlaneTranslationParameterSource) Parameter() rl.Vector2 { return s.parameter }

func (s *PlaneTranslationParameterSource) BeginModify() {
	s.initialParameter = s.parameter
	s.normal = rl.Vector3Normalize(s.AxisSource.Direction())
	if s.AxisSource.HasTangentVectors() {
		s.axisX, s.axisY = s.AxisSource.TangentVectors()
	} else {
		s.axisX, s.axisY = geom.PerpendicularBasis(s.normal)
	}
	s.edit.begin(s.TransformSource)
}

func (s *PlaneTranslationParameterSource) SetParameter(v rl.Vector2) {
	if !s.edit.modifying {
		s.BeginModify()
		defer s.EndModify()
	}
	s.parameter = v
	d := rl.Vector2Subtract(v, s.initialParameter)
	translation := rl.Vector3Add(rl.Vector3Scale(s.axisX, d.X), rl.Vector3Scale(s.axisY, d.Y))
	start := s.edit.initial.Position
	if s.PositionConstraint != nil {
		if snapped, ok := s.PositionConstraint(rl.Vector3Add(start, translation)); ok {
			translation = geom.ProjectOntoPlane(rl.Vector3Subtract(snapped, start), s.normal)
		}
	}
	t := s.edit.initial
	t.Position = rl.Vector3Add(start, translation)
	s.TransformSource.SetTransform(t)
}

func (s *PlaneTranslationParameterSource) EndModify() {
	s.edit.modifying = false
}

// AxisRotationParameterSource rotates a transform about the axis source by
// the change in angle (radians) since BeginModify.
type AxisRotationParameterSource struct {
	AxisSource      AxisSource
	TransformSource TransformSource
	// AngleConstraint optionally snaps the angle delta.
	AngleConstraint func(deltaRadians float32) (float32, bool)

	angle        float32
	initialAngle float32
	axis         rl.Vector3
	origin       rl.Vector3
	edit         transformEdit
}

func (s *AxisRotationParameterSource) Parameter() float32 { return s.angle }

func (s *AxisRotationParameterSource) BeginModify() {
	s.initialAngle = s.angle
	s.axis = rl.Vector3Normalize(s.AxisSource.Direction())
	s.origin = s.AxisSource.Origin()
	s.edit.begin(s.TransformSource)
}

func (s *AxisRotationParameterSource) SetParameter(v float32) {
	if !s.edit.modifying {
		s.BeginModify()
		defer s.EndModify()
	}
	s.angle = v
	delta := v - s.initialAngle
	if s.AngleConstraint != nil {
		if snapped, ok := s.AngleConstraint(delta); ok {
			delta = snapped
		}
	}
	q := rl.QuaternionFromAxisAngle(s.axis, delta)
	t := s.edit.initial
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(q, t.Rotation))
	offset := rl.Vector3Subtract(t.Position, s.origin)
	t.Position = rl.Vector3Add(s.origin, rl.Vector3RotateByQuaternion(offset, q))
	s.TransformSource.SetTransform(t)
}

func (s *AxisRotationParameterSource) EndModify() {
	s.edit.modifying = false
}

// scaleSettings is shared by the scale parameter sources.
type scaleSettings struct {
	ScaleMultiplier float32
	// ScaleConstraint optionally snaps the resulting scale.
	ScaleConstraint func(scale rl.Vector3) rl.Vector3
}

func (c scaleSettings) factor(delta float32) float32 {
	m := c.ScaleMultiplier
	if m == 0 {
		m = DefaultScaleMultiplier
	}
	f := 1 + delta*m
	if f < MinScaleFactor {
		f = MinScaleFactor
	}
	return f
}

func (c scaleSettings) constrain(s rl.Vector3) rl.Vector3 {
	if c.ScaleConstraint == nil {
		return s
	}
	return c.ScaleConstraint(s)
}

// UniformScaleParameterSource scales all axes by the sum of the 2D drag
// components.
type UniformScaleParameterSource struct {
	scaleSettings
	TransformSource TransformSource

	parameter        rl.Vector2
	initialParameter rl.Vector2
	edit             transformEdit
}

func (s *UniformScaleParameterSource) Parameter() rl.Vector2 { return s.parameter }

func (s *UniformScaleParameterSource) BeginModify() {
	s.initialParameter = s.parameter
	s.edit.begin(s.TransformSource)
}

func (s *UniformScaleParameterSource) SetParameter(v rl.Vector2) {
	if !s.edit.modifying {
		s.BeginModify()
		defer s.EndModify()
	}
	s.parameter = v
	d := rl.Vector2Subtract(v, s.initialParameter)
	f := s.factor(d.X + d.Y)
	t := s.edit.initial
	t.Scale = s.constrain(rl.Vector3Scale(t.Scale, f))
	s.TransformSource.SetTransform(t)
}

func (s *UniformScaleParameterSource) EndModify() {
	s.edit.modifying = false
}

// AxisScaleParameterSource scales one local axis.
type AxisScaleParameterSource struct {
	scaleSettings
	TransformSource TransformSource
	AxisIndex       int

	parameter        float32
	initialParameter float32
	edit             transformEdit
}

func (s *AxisScaleParameterSource) Parameter() float32 { return s.parameter }

func (s *AxisScaleParameterSource) BeginModify() {
	s.initialParameter = s.parameter
	s.edit.begin(s.TransformSource)
}

func (s *AxisScaleParameterSource) SetParameter(v float32) {
	if !s.edit.modifying {
		s.BeginModify()
		defer s.EndModify()
	}
	s.parameter = v
	f := s.factor(v - s.initialParameter)
	t := s.edit.initial
	t.Scale = engine.SetVectorComponent(t.Scale, s.AxisIndex, engine.VectorComponent(t.Scale, s.AxisIndex)*f)
	t.Scale = s.constrain(t.Scale)
	s.TransformSource.SetTransform(t)
}

func (s *AxisScaleParameterSource) EndModify() {
	s.edit.modifying = false
}

// PlaneScaleParameterSource scales the two local axes spanning the plane
// whose normal has index NormalIndex. With UseEqualScaling both axes use
// the sum of the drag components.
type PlaneScaleParameterSource struct {
	scaleSettings
	TransformSource TransformSource
	NormalIndex     int
	UseEqualScaling bool

	parameter        rl.Vector2
	initialParameter rl.Vector2
	edit             transformEdit
}

func (s *PlaneScaleParameterSource) Parameter() rl.Vector2 { return s.parameter }

func (s *PlaneScaleParameterSource) BeginModify() {
	s.initialParameter = s.parameter
	s.edit.begin(s.TransformSource)
}

func (s *PlaneScaleParameterSource) SetParameter(v rl.Vector2) {
	if !s.edit.modifying {
		s.BeginModify()
		defer s.EndModify()
	}
	s.parameter = v
	d := rl.Vector2Subtract(v, s.initialParameter)
	fx, fy := s.factor(d.X), s.factor(d.Y)
	if s.UseEqualScaling {
		fx = s.factor(d.X + d.Y)
		fy = fx
	}
	ix, iy := (s.NormalIndex+1)%3, (s.NormalIndex+2)%3
	t := s.edit.initial
	t.Scale = engine.SetVectorComponent(t.Scale, ix, engine.VectorComponent(t.Scale, ix)*fx)
	t.Scale = engine.SetVectorComponent(t.Scale, iy, engine.VectorComponent(t.Scale, iy)*fy)
	t.Scale = s.constrain(t.Scale)
	s.TransformSource.SetTransform(t)
}

func (s *PlaneScaleParameterSource) EndModify() {
	s.edit.modifying = false
}
