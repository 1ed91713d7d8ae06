// Package render draws tool and gizmo primitives with raylib.
package render

import (
	"math"

	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const circleSegments = 48

// RaylibRenderer implements interactive.RenderAPI inside a BeginMode3D
// block. Gizmos draw on top of the scene, so depth testing is switched off
// between Begin and End.
type RaylibRenderer struct {
	Camera rl.Camera3D
}

func NewRaylibRenderer(cam rl.Camera3D) *RaylibRenderer {
	return &RaylibRenderer{Camera: cam}
}

// Begin flushes the scene batch and disables depth testing for overlays.
func (r *RaylibRenderer) Begin() {
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
}

func (r *RaylibRenderer) End() {
	rl.DrawRenderBatchActive()
	rl.EnableDepthTest()
}

func (r *RaylibRenderer) CameraState() interactive.ViewCameraState {
	return CameraState(r.Camera)
}

func (r *RaylibRenderer) DrawLine(start, end rl.Vector3, color rl.Color, thickness float32) {
	if thickness <= 0 {
		rl.DrawLine3D(start, end, color)
		return
	}
	rl.DrawCylinderEx(start, end, thickness, thickness, 8, color)
}

func (r *RaylibRenderer) DrawCircle(center, normal rl.Vector3, radius float32, color rl.Color) {
	pts := CirclePoints(center, normal, radius, circleSegments)
	for i := range pts {
		rl.DrawLine3D(pts[i], pts[(i+1)%len(pts)], color)
	}
}

func (r *RaylibRenderer) DrawWireBox(center, halfExtents rl.Vector3, rotation rl.Quaternion, color rl.Color) {
	c := BoxCorners(center, halfExtents, rotation)
	for _, e := range boxEdges {
		rl.DrawLine3D(c[e[0]], c[e[1]], color)
	}
}

func (r *RaylibRenderer) DrawPoint(center rl.Vector3, size float32, color rl.Color) {
	rl.DrawCubeV(center, rl.Vector3{X: size, Y: size, Z: size}, color)
}

// CameraState derives the view basis of a raylib camera.
func CameraState(cam rl.Camera3D) interactive.ViewCameraState {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, cam.Up))
	up := rl.Vector3CrossProduct(right, forward)
	return interactive.ViewCameraState{
		Position:       cam.Position,
		Forward:        forward,
		Right:          right,
		Up:             up,
		FOVDegrees:     cam.Fovy,
		IsOrthographic: cam.Projection == rl.CameraOrthographic,
	}
}

// boxEdges indexes BoxCorners: bottom face, top face, then verticals.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxCorners returns the eight corners of an oriented box.
func BoxCorners(center, half rl.Vector3, rotation rl.Quaternion) [8]rl.Vector3 {
	corners := [8]rl.Vector3{
		{X: -half.X, Y: -half.Y, Z: -half.Z},
		{X: half.X, Y: -half.Y, Z: -half.Z},
		{X: half.X, Y: half.Y, Z: -half.Z},
		{X: -half.X, Y: half.Y, Z: -half.Z},
		{X: -half.X, Y: -half.Y, Z: half.Z},
		{X: half.X, Y: -half.Y, Z: half.Z},
		{X: half.X, Y: half.Y, Z: half.Z},
		{X: -half.X, Y: half.Y, Z: half.Z},
	}
	for i := range corners {
		corners[i] = rl.Vector3Add(rl.Vector3RotateByQuaternion(corners[i], rotation), center)
	}
	return corners
}

// CirclePoints samples a circle of radius around center in the plane with
// the given normal.
func CirclePoints(center, normal rl.Vector3, radius float32, segments int) []rl.Vector3 {
	n := rl.Vector3Normalize(normal)
	ref := rl.Vector3{X: 1}
	if math.Abs(float64(n.X)) > 0.9 {
		ref = rl.Vector3{Y: 1}
	}
	u := rl.Vector3Normalize(rl.Vector3CrossProduct(n, ref))
	v := rl.Vector3CrossProduct(n, u)

	pts := make([]rl.Vector3, segments)
	for i := range pts {
		a := float64(i) / float64(segments) * 2 * math.Pi
		offset := rl.Vector3Add(
			rl.Vector3Scale(u, radius*float32(math.Cos(a))),
			rl.Vector3Scale(v, radius*float32(math.Sin(a))),
		)
		pts[i] = rl.Vector3Add(center, offset)
	}
	return pts
}

var _ interactive.RenderAPI = (*RaylibRenderer)(nil)
