package gizmos

import (
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AxisPositionGizmo maps the pick ray onto a line and writes the change in
// line parameter to a FloatParameterSource.
type AxisPositionGizmo struct {
	interactive.BaseGizmo

	AxisSource      AxisSource
	ParameterSource FloatParameterSource
	HitTarget       HitTarget
	StateTarget     StateTarget

	// EnableSignedAxis flips the parameter when the press lands on the
	// negative side of the axis origin.
	EnableSignedAxis bool

	// ShouldUseCustomDestination and CustomDestinationFunc let the owner
	// replace the ray projection, e.g. with a scene snap. The returned
	// point is projected onto the axis.
	ShouldUseCustomDestination func() bool
	CustomDestinationFunc      func(ray interactive.InputDeviceRay) (rl.Vector3, bool)

	InInteraction             bool
	InteractionOrigin         rl.Vector3
	InteractionAxis           rl.Vector3
	InteractionStartPoint     rl.Vector3
	InteractionCurPoint       rl.Vector3
	InteractionStartParameter float32
	InteractionCurParameter   float32
	InitialTargetParameter    float32
	ParameterSign             float32

	lastHitPosition rl.Vector3
}

// NewAxisPositionGizmo creates the gizmo with its click-drag and hover
// behaviors at gizmo priority.
func NewAxisPositionGizmo() *AxisPositionGizmo {
	g := &AxisPositionGizmo{ParameterSign: 1}
	addGizmoBehaviors(&g.BaseGizmo, g, g)
	return g
}

func addGizmoBehaviors(b *interactive.BaseGizmo, click interactive.ClickDragTarget, hover interactive.HoverTarget) {
	cd := interactive.NewClickDragBehavior(click)
	cd.SetPriority(interactive.DefaultGizmoPriority)
	b.AddInputBehavior(cd)
	hb := interactive.NewHoverBehavior(hover)
	hb.SetPriority(interactive.DefaultGizmoPriority)
	b.AddInputBehavior(hb)
}

func (g *AxisPositionGizmo) configured() bool {
	return g.AxisSource != nil && g.ParameterSource != nil && g.HitTarget != nil
}

func (g *AxisPositionGizmo) CanBeginClickDragSequence(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if !g.configured() {
		return interactive.NoHit()
	}
	hit := g.HitTarget.IsHit(ray)
	if hit.Hit {
		g.lastHitPosition = ray.PointAt(hit.HitDepth)
	}
	return hit
}

func (g *AxisPositionGizmo) OnClickPress(ray interactive.InputDeviceRay) {
	g.InteractionOrigin = g.lastHitPosition
	g.InteractionAxis = rl.Vector3Normalize(g.AxisSource.Direction())

	start, ok := geom.NearestPointOnLineToRay(g.InteractionOrigin, g.InteractionAxis, ray.WorldRay)
	if !ok {
		start = geom.LineRayNearest{LinePoint: g.InteractionOrigin}
	}
	g.InteractionStartPoint = start.LinePoint
	g.InteractionStartParameter = start.LineParam
	g.InteractionCurPoint = g.InteractionStartPoint

	g.ParameterSign = 1
	if g.EnableSignedAxis {
		if rl.Vector3DotProduct(rl.Vector3Subtract(g.InteractionStartPoint, g.AxisSource.Origin()), g.InteractionAxis) < 0 {
			g.ParameterSign = -1
		}
	}
	g.InteractionStartParameter *= g.ParameterSign
	g.InteractionCurParameter = g.InteractionStartParameter

	g.InitialTargetParameter = g.ParameterSource.Parameter()
	g.ParameterSource.BeginModify()
	g.InInteraction = true
	g.HitTarget.UpdateInteractingState(true)
	if g.StateTarget != nil {
		g.StateTarget.BeginUpdate()
	}
}

func (g *AxisPositionGizmo) OnClickDrag(ray interactive.InputDeviceRay) {
	if !g.InInteraction {
		return
	}
	var point rl.Vector3
	var param float32
	if g.useCustomDestination() {
		dest, ok := g.CustomDestinationFunc(ray)
		if !ok {
			return
		}
		param = rl.Vector3DotProduct(rl.Vector3Subtract(dest, g.InteractionOrigin), g.InteractionAxis)
		point = rl.Vector3Add(g.InteractionOrigin, rl.Vector3Scale(g.InteractionAxis, param))
	} else {
		nearest, ok := geom.NearestPointOnLineToRay(g.InteractionOrigin, g.InteractionAxis, ray.WorldRay)
		if !ok {
			return
		}
		point, param = nearest.LinePoint, nearest.LineParam
	}

	g.InteractionCurPoint = point
	g.InteractionCurParameter = g.ParameterSign * param
	delta := g.InteractionCurParameter - g.InteractionStartParameter
	g.ParameterSource.SetParameter(g.InitialTargetParameter + delta)
}

func (g *AxisPositionGizmo) useCustomDestination() bool {
	return g.CustomDestinationFunc != nil && (g.ShouldUseCustomDestination == nil || g.ShouldUseCustomDestination())
}

func (g *AxisPositionGizmo) OnClickRelease(ray interactive.InputDeviceRay) {
	g.endInteraction()
}

func (g *AxisPositionGizmo) OnTerminateDragSequence() {
	g.endInteraction()
}

func (g *AxisPositionGizmo) endInteraction() {
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

func (g *AxisPositionGizmo) BeginHoverSequenceHitTest(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if !g.configured() {
		return interactive.NoHit()
	}
	return g.HitTarget.IsHit(ray)
}

func (g *AxisPositionGizmo) OnBeginHover(ray interactive.InputDeviceRay) {
	g.HitTarget.UpdateHoverState(true)
}

func (g *AxisPositionGizmo) OnUpdateHover(ray interactive.InputDeviceRay) bool {
	return true
}

func (g *AxisPositionGizmo) OnEndHover() {
	if g.HitTarget != nil {
		g.HitTarget.UpdateHoverState(false)
	}
}

// Shutdown closes any open interaction.
func (g *AxisPositionGizmo) Shutdown() {
	g.endInteraction()
}
