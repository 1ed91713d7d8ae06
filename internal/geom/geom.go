// Package geom holds the ray, line and plane math shared by gizmos and tools.
// Inputs are raylib vectors; direction arguments need not be normalized
// unless stated.
package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Epsilon is the degeneracy threshold for dot products and determinants.
const Epsilon = 1e-6

// LineRayNearest describes the closest approach between an infinite line and
// a ray. LineParam and RayParam are distances along the normalized directions.
type LineRayNearest struct {
	LinePoint rl.Vector3
	LineParam float32
	RayPoint  rl.Vector3
	RayParam  float32
}

// NearestPointOnLineToRay finds the point on the line through lineOrigin
// along lineDir closest to the ray. The ray parameter is clamped to be
// non-negative. It reports false when the line is degenerate or parallel to
// the ray.
func NearestPointOnLineToRay(lineOrigin, lineDir rl.Vector3, ray rl.Ray) (LineRayNearest, bool) {
	u, ok := normalize(lineDir)
	if !ok {
		return LineRayNearest{}, false
	}
	v, ok := normalize(ray.Direction)
	if !ok {
		return LineRayNearest{}, false
	}

	diff := rl.Vector3Subtract(lineOrigin, ray.Position)
	a01 := -rl.Vector3DotProduct(u, v)
	b0 := rl.Vector3DotProduct(diff, u)
	det := float32(math.Abs(float64(1 - a01*a01)))
	if det < Epsilon {
		return LineRayNearest{}, false
	}

	b1 := -rl.Vector3DotProduct(diff, v)
	s1 := a01*b0 - b1
	var s0 float32
	if s1 >= 0 {
		invDet := 1 / det
		s0 = (a01*b1 - b0) * invDet
		s1 *= invDet
	} else {
		s0 = -b0
		s1 = 0
	}

	return LineRayNearest{
		LinePoint: rl.Vector3Add(lineOrigin, rl.Vector3Scale(u, s0)),
		LineParam: s0,
		RayPoint:  rl.Vector3Add(ray.Position, rl.Vector3Scale(v, s1)),
		RayParam:  s1,
	}, true
}

// ClosestPointBetweenLines returns the parameters along a+t1*u and b+t2*v
// of the closest approach and the distance between those points. Parallel
// lines report ok=false.
func ClosestPointBetweenLines(a, u, b, v rl.Vector3) (t1, t2, dist float32, ok bool) {
	w := rl.Vector3Subtract(a, b)
	uu := rl.Vector3DotProduct(u, u)
	uv := rl.Vector3DotProduct(u, v)
	vv := rl.Vector3DotProduct(v, v)
	uw := rl.Vector3DotProduct(u, w)
	vw := rl.Vector3DotProduct(v, w)

	denom := uu*vv - uv*uv
	if denom < Epsilon {
		return 0, 0, 0, false
	}

	t1 = (uv*vw - vv*uw) / denom
	t2 = (uu*vw - uv*uw) / denom

	p1 := rl.Vector3Add(a, rl.Vector3Scale(u, t1))
	p2 := rl.Vector3Add(b, rl.Vector3Scale(v, t2))
	dist = rl.Vector3Length(rl.Vector3Subtract(p1, p2))
	return t1, t2, dist, true
}

// RayPlaneIntersection intersects a ray with the plane through planePoint.
// Rays parallel to the plane, or hitting it behind their origin, miss.
func RayPlaneIntersection(ray rl.Ray, planePoint, planeNormal rl.Vector3) (rl.Vector3, float32, bool) {
	denom := rl.Vector3DotProduct(ray.Direction, planeNormal)
	if math.Abs(float64(denom)) < Epsilon {
		return rl.Vector3{}, 0, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(planePoint, ray.Position), planeNormal) / denom
	if t < 0 {
		return rl.Vector3{}, 0, false
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t)), t, true
}

// RaySegmentDistance returns the distance between a ray and the segment
// [a, b] and the ray parameter of the closest point on the ray.
func RaySegmentDistance(ray rl.Ray, a, b rl.Vector3) (dist, rayParam float32) {
	seg := rl.Vector3Subtract(b, a)
	segLen := rl.Vector3Length(seg)
	dir, ok := normalize(ray.Direction)
	if !ok {
		return float32(math.Inf(1)), 0
	}
	if segLen < Epsilon {
		return RayPointDistance(rl.Ray{Position: ray.Position, Direction: dir}, a)
	}
	segDir := rl.Vector3Scale(seg, 1/segLen)

	near, ok := NearestPointOnLineToRay(a, segDir, rl.Ray{Position: ray.Position, Direction: dir})
	if !ok {
		// Parallel: any point of the segment is equally close in direction.
		return RayPointDistance(rl.Ray{Position: ray.Position, Direction: dir}, a)
	}
	s := clamp(near.LineParam, 0, segLen)
	segPoint := rl.Vector3Add(a, rl.Vector3Scale(segDir, s))
	return RayPointDistance(rl.Ray{Position: ray.Position, Direction: dir}, segPoint)
}

// RayPointDistance returns the distance from p to the ray and the ray
// parameter of the closest point. The ray direction must be normalized.
func RayPointDistance(ray rl.Ray, p rl.Vector3) (dist, rayParam float32) {
	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, ray.Position), ray.Direction)
	if t < 0 {
		t = 0
	}
	closest := rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t))
	return rl.Vector3Distance(closest, p), t
}

// PlaneCoordinates returns the 2D coordinates of point in the plane basis
// (axisX, axisY) centered at origin.
func PlaneCoordinates(point, origin, axisX, axisY rl.Vector3) rl.Vector2 {
	d := rl.Vector3Subtract(point, origin)
	return rl.Vector2{X: rl.Vector3DotProduct(d, axisX), Y: rl.Vector3DotProduct(d, axisY)}
}

// AngleInPlane measures the angle of point around origin in the plane basis
// (axisX, axisY), in radians within [-pi, pi].
func AngleInPlane(point, origin, axisX, axisY rl.Vector3) float32 {
	c := PlaneCoordinates(point, origin, axisX, axisY)
	return float32(math.Atan2(float64(c.Y), float64(c.X)))
}

// WrapAngle maps an angle in radians into [-pi, pi].
func WrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// PerpendicularBasis returns two unit vectors that with normal form a
// right-handed orthonormal frame.
func PerpendicularBasis(normal rl.Vector3) (rl.Vector3, rl.Vector3) {
	n, ok := normalize(normal)
	if !ok {
		return rl.Vector3{X: 1}, rl.Vector3{Y: 1}
	}
	ref := rl.Vector3{Y: 1}
	if math.Abs(float64(n.Y)) > 0.9 {
		ref = rl.Vector3{X: 1}
	}
	x := rl.Vector3Normalize(rl.Vector3CrossProduct(ref, n))
	y := rl.Vector3CrossProduct(n, x)
	return x, y
}

// ProjectOntoPlane removes the normal component of v.
func ProjectOntoPlane(v, normal rl.Vector3) rl.Vector3 {
	n, ok := normalize(normal)
	if !ok {
		return v
	}
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, rl.Vector3DotProduct(v, n)))
}

// SnapValue rounds v to the nearest multiple of step. A non-positive step
// leaves v unchanged.
func SnapValue(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return float32(math.Round(float64(v/step))) * step
}

// SnapVector snaps each component of v to the grid.
func SnapVector(v rl.Vector3, step float32) rl.Vector3 {
	return rl.Vector3{X: SnapValue(v.X, step), Y: SnapValue(v.Y, step), Z: SnapValue(v.Z, step)}
}

func normalize(v rl.Vector3) (rl.Vector3, bool) {
	l := rl.Vector3Length(v)
	if l < Epsilon {
		return rl.Vector3{}, false
	}
	return rl.Vector3Scale(v, 1/l), true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
