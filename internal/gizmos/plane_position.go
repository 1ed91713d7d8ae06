package gizmos

import (
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlanePositionGizmo maps the pick ray onto a plane and writes the change in
// 2D plane coordinates to a Vec2ParameterSource. The plane passes through
// the axis source origin with the axis direction as its normal.
type PlanePositionGizmo struct {
	interactive.BaseGizmo

	AxisSource      AxisSource
	ParameterSource Vec2ParameterSource
	HitTarget       HitTarget
	StateTarget     StateTarget

	EnableSignedAxis bool
	// FlipX and FlipY negate a plane axis. Composed gizmos use them to fix
	// the handedness of a reused plane orientation.
	FlipX bool
	FlipY bool

	ShouldUseCustomDestination func() bool
	CustomDestinationFunc      func(ray interactive.InputDeviceRay) (rl.Vector3, bool)

	InInteraction             bool
	InteractionOrigin         rl.Vector3
	InteractionNormal         rl.Vector3
	InteractionAxisX          rl.Vector3
	InteractionAxisY          rl.Vector3
	InteractionStartPoint     rl.Vector3
	InteractionCurPoint       rl.Vector3
	InteractionStartParameter rl.Vector2
	InteractionCurParameter   rl.Vector2
	InitialTargetParameter    rl.Vector2
	ParameterSigns            rl.Vector2

	lastHitPosition rl.Vector3
}

func NewPlanePositionGizmo() *PlanePositionGizmo {
	g := &PlanePositionGizmo{ParameterSigns: rl.Vector2{X: 1, Y: 1}}
	addGizmoBehaviors(&g.BaseGizmo, g, g)
	return g
}

func (g *PlanePositionGizmo) configured() bool {
	return g.AxisSource != nil && g.ParameterSource != nil && g.HitTarget != nil
}

func (g *PlanePositionGizmo) CanBeginClickDragSequence(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if !g.configured() {
		return interactive.NoHit()
	}
	hit := g.HitTarget.IsHit(ray)
	if hit.Hit {
		g.lastHitPosition = ray.PointAt(hit.HitDepth)
	}
	return hit
}

func (g *PlanePositionGizmo) OnClickPress(ray interactive.InputDeviceRay) {
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
	g.InteractionStartParameter = g.planeParameter(start)

	g.ParameterSigns = rl.Vector2{X: 1, Y: 1}
	if g.EnableSignedAxis {
		if g.InteractionStartParameter.X < 0 {
			g.ParameterSigns.X = -1
		}
		if g.InteractionStartParameter.Y < 0 {
			g.ParameterSigns.Y = -1
		}
	}
	g.InteractionStartParameter = g.signed(g.InteractionStartParameter)
	g.InteractionCurParameter = g.InteractionStartParameter

	g.InitialTargetParameter = g.ParameterSource.Parameter()
	g.ParameterSource.BeginModify()
	g.InInteraction = true
	g.HitTarget.UpdateInteractingState(true)
	if g.StateTarget != nil {
		g.StateTarget.BeginUpdate()
	}
}

// planeParameter returns the flipped plane coordinates of p.
func (g *PlanePositionGizmo) planeParameter(p rl.Vector3) rl.Vector2 {
	c := geom.PlaneCoordinates(p, g.InteractionOrigin, g.InteractionAxisX, g.InteractionAxisY)
	if g.FlipX {
		c.X = -c.X
	}
	if g.FlipY {
		c.Y = -c.Y
	}
	return c
}

func (g *PlanePositionGizmo) signed(c rl.Vector2) rl.Vector2 {
	return rl.Vector2{X: c.X * g.ParameterSigns.X, Y: c.Y * g.ParameterSigns.Y}
}

func (g *PlanePositionGizmo) OnClickDrag(ray interactive.InputDeviceRay) {
	if !g.InInteraction {
		return
	}
	var point rl.Vector3
	if g.CustomDestinationFunc != nil && (g.ShouldUseCustomDestination == nil || g.ShouldUseCustomDestination()) {
		dest, ok := g.CustomDestinationFunc(ray)
		if !ok {
			return
		}
		point = rl.Vector3Add(g.InteractionOrigin,
			geom.ProjectOntoPlane(rl.Vector3Subtract(dest, g.InteractionOrigin), g.InteractionNormal))
	} else {
		hit, _, ok := geom.RayPlaneIntersection(ray.WorldRay, g.InteractionOrigin, g.InteractionNormal)
		if !ok {
			return
		}
		point = hit
	}

	g.InteractionCurPoint = point
	g.InteractionCurParameter = g.signed(g.planeParameter(point))
	delta := rl.Vector2Subtract(g.InteractionCurParameter, g.InteractionStartParameter)
	g.ParameterSource.SetParameter(rl.Vector2Add(g.InitialTargetParameter, delta))
}

func (g *PlanePositionGizmo) OnClickRelease(ray interactive.InputDeviceRay) {
	g.endInteraction()
}

func (g *PlanePositionGizmo) OnTerminateDragSequence() {
	g.endInteraction()
}

func (g *PlanePositionGizmo) endInteraction() {
	if !g.InInteraction {
		return
	}
	g.InInteraction = false
	g.ParameterSource.EndModify()
	if g.StateTarget != nil {
		g.StateTarget.EndUpdate()
	}
	g.HitTarget.UpdateInteractingState(false)
}

func (g *PlanePositionGizmo) BeginHoverSequenceHitTest(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if !g.configured() {
		return interactive.NoHit()
	}
	return g.HitTarget.IsHit(ray)
}

func (g *PlanePositionGizmo) OnBeginHover(ray interactive.InputDeviceRay) {
	g.HitTarget.UpdateHoverState(true)
}

func (g *PlanePositionGizmo) OnUpdateHover(ray interactive.InputDeviceRay) bool {
	return true
}

func (g *PlanePositionGizmo) OnEndHover() {
	if g.HitTarget != nil {
		g.HitTarget.UpdateHoverState(false)
	}
}

func (g *PlanePositionGizmo) Shutdown() {
	g.endInteraction()
}
