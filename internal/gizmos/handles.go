package gizmos

import (
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HandleKind selects a handle's shape.
type HandleKind int

const (
	HandleArrow HandleKind = iota
	HandlePlane
	HandleRing
	HandleAxisBox
	HandleCenterBox
)

// Handle geometry in gizmo units; the gizmo's scale multiplies all of them.
const (
	handleAxisLength  = 2.0
	handleAxisStart   = 0.2
	handleHitRadius   = 0.3
	handlePlaneMin    = 0.5
	handlePlaneMax    = 0.8
	handleRingRadius  = 1.6
	handleRingHitBand = 0.25
	handleBoxOffset   = 1.4
	handleBoxHalf     = 0.12
	handleCenterHalf  = 0.18
)

var (
	axisColors     = [3]rl.Color{rl.Red, rl.Green, rl.Blue}
	highlightColor = rl.Yellow
)

// GizmoHandle is the visual and pickable part of one sub-gizmo. Its frame
// comes from an AxisSource: arrows, rings and axis boxes use the direction,
// planes use the tangent basis.
type GizmoHandle struct {
	Kind        HandleKind
	Axis        AxisSource
	Color       rl.Color
	Scale       func() float32
	Visible     bool
	Hovering    bool
	Interacting bool
}

func (h *GizmoHandle) size() float32 {
	if h.Scale == nil {
		return 1
	}
	return h.Scale()
}

func (h *GizmoHandle) tangents() (rl.Vector3, rl.Vector3) {
	if h.Axis.HasTangentVectors() {
		return h.Axis.TangentVectors()
	}
	return geom.PerpendicularBasis(h.Axis.Direction())
}

// HitTest returns the ray depth of the nearest hit on the handle.
func (h *GizmoHandle) HitTest(ray rl.Ray) (float32, bool) {
	if !h.Visible {
		return 0, false
	}
	s := h.size()
	origin := h.Axis.Origin()
	dir := rl.Vector3Normalize(h.Axis.Direction())
	ray.Direction = rl.Vector3Normalize(ray.Direction)

	switch h.Kind {
	case HandleArrow:
		a := rl.Vector3Add(origin, rl.Vector3Scale(dir, handleAxisStart*s))
		b := rl.Vector3Add(origin, rl.Vector3Scale(dir, handleAxisLength*s))
		dist, depth := geom.RaySegmentDistance(ray, a, b)
		return depth, dist <= handleHitRadius*s

	case HandlePlane:
		x, y := h.tangents()
		p, depth, ok := geom.RayPlaneIntersection(ray, origin, dir)
		if !ok {
			return 0, false
		}
		c := geom.PlaneCoordinates(p, origin, x, y)
		lo, hi := handlePlaneMin*s, handlePlaneMax*s
		return depth, c.X >= lo && c.X <= hi && c.Y >= lo && c.Y <= hi

	case HandleRing:
		p, depth, ok := geom.RayPlaneIntersection(ray, origin, dir)
		if !ok {
			return 0, false
		}
		r := rl.Vector3Distance(p, origin)
		return depth, absF(r-handleRingRadius*s) <= handleRingHitBand*s

	case HandleAxisBox:
		center := rl.Vector3Add(origin, rl.Vector3Scale(dir, handleBoxOffset*s))
		dist, depth := geom.RayPointDistance(ray, center)
		return depth, dist <= handleBoxHalf*s*1.5

	case HandleCenterBox:
		dist, depth := geom.RayPointDistance(ray, origin)
		return depth, dist <= handleCenterHalf*s*1.5
	}
	return 0, false
}

// Render draws the handle, highlighted while hovered or dragged.
func (h *GizmoHandle) Render(api interactive.RenderAPI) {
	if !h.Visible {
		return
	}
	color := h.Color
	if h.Hovering || h.Interacting {
		color = highlightColor
	}
	s := h.size()
	origin := h.Axis.Origin()
	dir := rl.Vector3Normalize(h.Axis.Direction())

	switch h.Kind {
	case HandleArrow:
		a := rl.Vector3Add(origin, rl.Vector3Scale(dir, handleAxisStart*s))
		b := rl.Vector3Add(origin, rl.Vector3Scale(dir, handleAxisLength*s))
		api.DrawLine(a, b, color, 0.03*s)
		api.DrawPoint(b, 0.1*s, color)

	case HandlePlane:
		x, y := h.tangents()
		corner := func(u, v float32) rl.Vector3 {
			return rl.Vector3Add(origin, rl.Vector3Add(rl.Vector3Scale(x, u*s), rl.Vector3Scale(y, v*s)))
		}
		c00 := corner(handlePlaneMin, handlePlaneMin)
		c10 := corner(handlePlaneMax, handlePlaneMin)
		c11 := corner(handlePlaneMax, handlePlaneMax)
		c01 := corner(handlePlaneMin, handlePlaneMax)
		api.DrawLine(c00, c10, color, 0)
		api.DrawLine(c10, c11, color, 0)
		api.DrawLine(c11, c01, color, 0)
		api.DrawLine(c01, c00, color, 0)

	case HandleRing:
		api.DrawCircle(origin, dir, handleRingRadius*s, color)

	case HandleAxisBox:
		center := rl.Vector3Add(origin, rl.Vector3Scale(dir, handleBoxOffset*s))
		half := handleBoxHalf * s
		api.DrawWireBox(center, rl.Vector3{X: half, Y: half, Z: half}, rl.QuaternionIdentity(), color)

	case HandleCenterBox:
		half := handleCenterHalf * s
		api.DrawWireBox(origin, rl.Vector3{X: half, Y: half, Z: half}, rl.QuaternionIdentity(), color)
	}
}

// HandleHitTarget adapts a GizmoHandle to HitTarget. Condition, when set,
// can veto hits.
type HandleHitTarget struct {
	Handle    *GizmoHandle
	Condition func(ray interactive.InputDeviceRay) bool
}

func (t *HandleHitTarget) IsHit(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if t.Condition != nil && !t.Condition(ray) {
		return interactive.NoHit()
	}
	depth, ok := t.Handle.HitTest(ray.WorldRay)
	if !ok {
		return interactive.NoHit()
	}
	return interactive.NewHit(depth)
}

func (t *HandleHitTarget) UpdateHoverState(hovering bool) {
	t.Handle.Hovering = hovering
}

func (t *HandleHitTarget) UpdateInteractingState(interacting bool) {
	t.Handle.Interacting = interacting
}

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
