package interactive

import rl "github.com/gen2brain/raylib-go/raylib"

// InputDeviceRay is a world-space pick ray with an optional screen position.
type InputDeviceRay struct {
	WorldRay          rl.Ray
	ScreenPosition    rl.Vector2
	HasScreenPosition bool
}

func NewInputDeviceRay(ray rl.Ray) InputDeviceRay {
	return InputDeviceRay{WorldRay: ray}
}

// PointAt returns the point at distance d along the ray.
func (r InputDeviceRay) PointAt(d float32) rl.Vector3 {
	return rl.Vector3Add(r.WorldRay.Position, rl.Vector3Scale(r.WorldRay.Direction, d))
}

// InputRayHit is the result of a hit test. HitDepth is the distance along
// the ray; smaller is nearer.
type InputRayHit struct {
	Hit           bool
	HitDepth      float32
	HitNormal     rl.Vector3
	HasNormal     bool
	HitIdentifier int
	HitOwner      any
}

// NoHit is the zero hit result.
func NoHit() InputRayHit {
	return InputRayHit{}
}

func NewHit(depth float32) InputRayHit {
	return InputRayHit{Hit: true, HitDepth: depth}
}

// InputState is one frame of device input as seen by the router.
type InputState struct {
	Ray          InputDeviceRay
	LeftPressed  bool
	LeftDown     bool
	LeftReleased bool
	Shift        bool
	Ctrl         bool
}
