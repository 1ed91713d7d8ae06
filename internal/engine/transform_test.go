package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestTransformPointRoundTrip(t *testing.T) {
	tr := Transform{
		Position: rl.Vector3{X: 1, Y: 2, Z: 3},
		Rotation: rl.QuaternionFromAxisAngle(rl.Vector3Normalize(rl.Vector3{X: 1, Y: 1}), 0.7),
		Scale:    rl.Vector3{X: 2, Y: 0.5, Z: 3},
	}
	p := rl.Vector3{X: -4, Y: 0.25, Z: 9}

	back := tr.InverseTransformPoint(tr.TransformPoint(p))
	if !VectorsNearlyEqual(back, p, 1e-3) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestTransformComposeRelative(t *testing.T) {
	parent := Transform{
		Position: rl.Vector3{X: 5},
		Rotation: rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, 1.1),
		Scale:    rl.Vector3{X: 2, Y: 2, Z: 2},
	}
	world := Transform{
		Position: rl.Vector3{X: 1, Y: 1, Z: 1},
		Rotation: rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 0.3),
		Scale:    rl.Vector3{X: 4, Y: 4, Z: 4},
	}

	got := world.RelativeTo(parent).Compose(parent)
	if !got.NearlyEqual(world, 1e-3) {
		t.Errorf("compose(relative) = %+v, want %+v", got, world)
	}
}

func TestTransformAxis(t *testing.T) {
	tr := IdentityTransform()
	tr.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, rl.Pi/2)

	if got := tr.Axis(0); !VectorsNearlyEqual(got, rl.Vector3{Y: 1}, 1e-5) {
		t.Errorf("X axis = %v, want +Y", got)
	}
	if got := tr.Axis(2); !VectorsNearlyEqual(got, rl.Vector3{Z: 1}, 1e-5) {
		t.Errorf("Z axis = %v, want +Z", got)
	}
}

func TestTransformNearlyEqualQuaternionSign(t *testing.T) {
	a := IdentityTransform()
	b := IdentityTransform()
	b.Rotation = rl.Quaternion{W: -1}
	if !a.NearlyEqual(b, 1e-6) {
		t.Error("q and -q describe the same rotation")
	}
}
