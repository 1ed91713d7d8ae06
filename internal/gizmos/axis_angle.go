package gizmos

import (
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AxisAngleGizmo measures the pick ray's angle around an axis, in the plane
// through the axis origin, and writes the accumulated change in radians to
// a FloatParameterSource.
type AxisAngleGizmo struct {
	interactive.BaseGizmo

	AxisSource  AxisSource
	AngleSource FloatParameterSource
	HitTarget   HitTarget
	StateTarget StateTarget

	InInteraction         bool
	InteractionOrigin     rl.Vector3
	InteractionNormal     rl.Vector3
	InteractionAxisX      rl.Vector3
	InteractionAxisY      rl.Vector3
	InteractionStartPoint rl.Vector3
	InteractionCurPoint   rl.Vector3
	InteractionStartAngle float32
	InteractionCurAngle   float32
	InitialTargetAngle    float32

	lastRawAngle    float32
	lastHitPosition rl.Vector3
}

func NewAxisAngleGizmo() *AxisAngleGizmo {
	g := &AxisAngleGizmo{}
	addGizmoBehaviors(&g.BaseGizmo, g, g)
	return g
}

func (g *AxisAngleGizmo) configured() bool {
	return g.AxisSource != nil && g.AngleSource != nil && g.HitTarget != nil
}

func (g *AxisAngleGizmo) CanBeginClickDragSequence(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if !g.configured() {
		return interactive.NoHit()
	}
	hit := g.HitTarget.IsHit(ray)
	if hit.Hit {
		g.lastHitPosition = ray.PointAt(hit.HitDepth)
	}
	return hit
}

func (g *AxisAngleGizmo) OnClickPress(ray interactive.InputDeviceRay) {
	g.InteractionOrigin = g.AxisSource.Origin()
	g.InteractionNormal = rl.Vector3Normalize(g.AxisSource.Direction())
	if g.AxisSource.HasTangentVectors() {
		g.InteractionAxisX, g.InteractionAxisY = g.AxisSource.TangentVectors()
	} else {
		g.InteractionAxisX, g.InteractionAxisY = geom.PerpendicularBasis(g.InteractionNormal)
	}

	start, _, ok := geom.RayPlaneIntersection(ray.WorldRay, g.InteractionOrigin, g.InteractionNormal)
	if !ok {
		start = rl.Vector3Add(g.InteractionOrigin,
			geom.ProjectOntoPlane(rl.Vector3Subtract(g.lastHitPosition, g.InteractionOrigin), g.InteractionNormal))
	}
	g.InteractionStartPoint = start
	g.InteractionCurPoint = start
	g.InteractionStartAngle = geom.AngleInPlane(start, g.InteractionOrigin, g.InteractionAxisX, g.InteractionAxisY)
	g.InteractionCurAngle = g.InteractionStartAngle
	g.lastRawAngle = g.InteractionStartAngle

	g.InitialTargetAngle = g.AngleSource.Parameter()
	g.AngleSource.BeginModify()
	g.InInteraction = true
	g.HitTarget.UpdateInteractingState(true)
	if g.StateTarget != nil {
		g.StateTarget.BeginUpdate()
	}
}

func (g *AxisAngleGizmo) OnClickDrag(ray interactive.InputDeviceRay) {
	if !g.InInteraction {
		return
	}
	hit, _, ok := geom.RayPlaneIntersection(ray.WorldRay, g.InteractionOrigin, g.InteractionNormal)
	if !ok {
		return
	}
	if rl.Vector3Distance(hit, g.InteractionOrigin) < geom.Epsilon {
		return
	}
	raw := geom.AngleInPlane(hit, g.InteractionOrigin, g.InteractionAxisX, g.InteractionAxisY)
	// Accumulate the wrapped step so crossing +-pi stays continuous.
	g.InteractionCurAngle += geom.WrapAngle(raw - g.lastRawAngle)
	g.lastRawAngle = raw
	g.InteractionCurPoint = hit

	g.AngleSource.SetParameter(g.InitialTargetAngle + (g.InteractionCurAngle - g.InteractionStartAngle))
}

func (g *AxisAngleGizmo) OnClickRelease(ray interactive.InputDeviceRay) {
	g.endInteraction()
}

func (g *AxisAngleGizmo) OnTerminateDragSequence() {
	g.endInteraction()
}

func (g *AxisAngleGizmo) endInteraction() {
	if !g.InInteraction {
		return
	}
	g.InInteraction = false
	g.AngleSource.EndModify()
	if g.StateTarget != nil {
		g.StateTarget.EndUpdate()
	}
	g.HitTarget.UpdateInteractingState(false)
}

func (g *AxisAngleGizmo) BeginHoverSequenceHitTest(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if !g.configured() {
		return interactive.NoHit()
	}
	return g.HitTarget.IsHit(ray)
}

func (g *AxisAngleGizmo) OnBeginHover(ray interactive.InputDeviceRay) {
	g.HitTarget.UpdateHoverState(true)
}

func (g *AxisAngleGizmo) OnUpdateHover(ray interactive.InputDeviceRay) bool {
	return true
}

func (g *AxisAngleGizmo) OnEndHover() {
	if g.HitTarget != nil {
		g.HitTarget.UpdateHoverState(false)
	}
}

func (g *AxisAngleGizmo) Shutdown() {
	g.endInteraction()
}
