package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is position, rotation and per-axis scale. Points are scaled,
// then rotated, then translated.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

func IdentityTransform() Transform {
	return Transform{
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// TransformAt is an unrotated, unscaled transform placed at p.
func TransformAt(p rl.Vector3) Transform {
	t := IdentityTransform()
	t.Position = p
	return t
}

func (t Transform) TransformPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(t.Position, t.TransformVector(p))
}

// TransformVector applies scale and rotation but not translation.
func (t Transform) TransformVector(v rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3{X: v.X * t.Scale.X, Y: v.Y * t.Scale.Y, Z: v.Z * t.Scale.Z}
	return rl.Vector3RotateByQuaternion(scaled, t.Rotation)
}

func (t Transform) InverseTransformPoint(p rl.Vector3) rl.Vector3 {
	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(p, t.Position), rl.QuaternionInvert(t.Rotation))
	return rl.Vector3{X: safeDiv(local.X, t.Scale.X), Y: safeDiv(local.Y, t.Scale.Y), Z: safeDiv(local.Z, t.Scale.Z)}
}

// Axis returns the rotated unit axis for index 0 (X), 1 (Y) or 2 (Z).
func (t Transform) Axis(index int) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(UnitAxis(index), t.Rotation)
}

// Compose expresses t (given relative to parent) in parent's space.
// Non-uniform parent scale under rotation is approximated per axis.
func (t Transform) Compose(parent Transform) Transform {
	return Transform{
		Position: parent.TransformPoint(t.Position),
		Rotation: rl.QuaternionNormalize(rl.QuaternionMultiply(parent.Rotation, t.Rotation)),
		Scale:    rl.Vector3{X: t.Scale.X * parent.Scale.X, Y: t.Scale.Y * parent.Scale.Y, Z: t.Scale.Z * parent.Scale.Z},
	}
}

// RelativeTo is the inverse of Compose: t.RelativeTo(p).Compose(p) == t.
func (t Transform) RelativeTo(parent Transform) Transform {
	return Transform{
		Position: parent.InverseTransformPoint(t.Position),
		Rotation: rl.QuaternionNormalize(rl.QuaternionMultiply(rl.QuaternionInvert(parent.Rotation), t.Rotation)),
		Scale: rl.Vector3{
			X: safeDiv(t.Scale.X, parent.Scale.X),
			Y: safeDiv(t.Scale.Y, parent.Scale.Y),
			Z: safeDiv(t.Scale.Z, parent.Scale.Z),
		},
	}
}

// WithScale returns a copy of t with its scale replaced.
func (t Transform) WithScale(s rl.Vector3) Transform {
	t.Scale = s
	return t
}

// NearlyEqual compares component-wise. Rotations q and -q are equal.
func (t Transform) NearlyEqual(o Transform, tol float32) bool {
	if !VectorsNearlyEqual(t.Position, o.Position, tol) || !VectorsNearlyEqual(t.Scale, o.Scale, tol) {
		return false
	}
	dot := t.Rotation.X*o.Rotation.X + t.Rotation.Y*o.Rotation.Y + t.Rotation.Z*o.Rotation.Z + t.Rotation.W*o.Rotation.W
	return float32(math.Abs(float64(dot))) >= 1-tol
}

// EulerDegrees returns pitch/yaw/roll (X, Y, Z) in degrees, for display.
func (t Transform) EulerDegrees() rl.Vector3 {
	e := rl.QuaternionToEuler(t.Rotation)
	return rl.Vector3Scale(e, rl.Rad2deg)
}

func UnitAxis(index int) rl.Vector3 {
	switch index {
	case 0:
		return rl.Vector3{X: 1}
	case 1:
		return rl.Vector3{Y: 1}
	default:
		return rl.Vector3{Z: 1}
	}
}

// VectorComponent reads the X, Y or Z component by index.
func VectorComponent(v rl.Vector3, index int) float32 {
	switch index {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetVectorComponent returns v with the indexed component replaced.
func SetVectorComponent(v rl.Vector3, index int, value float32) rl.Vector3 {
	switch index {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

func VectorsNearlyEqual(a, b rl.Vector3, tol float32) bool {
	return absF(a.X-b.X) <= tol && absF(a.Y-b.Y) <= tol && absF(a.Z-b.Z) <= tol
}

func safeDiv(a, b float32) float32 {
	if absF(b) < 1e-8 {
		return 0
	}
	return a / b
}

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
