package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FlyInput is one frame of camera controls.
type FlyInput struct {
	Look       bool
	MouseDelta rl.Vector2
	Forward    float32
	Right      float32
	Up         float32
	Scroll     float32
	SpeedMod   bool
}

// EditorCamera is a free-fly camera: hold right mouse to look and fly with
// WASD/QE; shift-scroll changes the fly speed.
type EditorCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
	Fovy      float32

	focusing  bool
	focusFrom rl.Vector3
	focusTo   rl.Vector3
	focusT    float32
}

func New(pos rl.Vector3) *EditorCamera {
	return &EditorCamera{
		Position:  pos,
		Yaw:       -135.0,
		Pitch:     -30.0,
		MoveSpeed: 8.0,
		LookSpeed: 0.1,
		Fovy:      45,
	}
}

// ReadInput samples raylib's mouse and keyboard.
func ReadInput() FlyInput {
	in := FlyInput{
		Look:     rl.IsMouseButtonDown(rl.MouseRightButton),
		Scroll:   rl.GetMouseWheelMove(),
		SpeedMod: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
	}
	if !in.Look {
		return in
	}
	in.MouseDelta = rl.GetMouseDelta()
	in.Forward = axis(rl.KeyW, rl.KeyS)
	in.Right = axis(rl.KeyD, rl.KeyA)
	in.Up = axis(rl.KeyE, rl.KeyQ)
	return in
}

func axis(pos, neg int32) float32 {
	var v float32
	if rl.IsKeyDown(pos) {
		v++
	}
	if rl.IsKeyDown(neg) {
		v--
	}
	return v
}

func (c *EditorCamera) Update(in FlyInput, deltaTime float32) {
	c.updateFocus(deltaTime)

	if in.Look {
		c.focusing = false
		c.Yaw += in.MouseDelta.X * c.LookSpeed
		c.Pitch -= in.MouseDelta.Y * c.LookSpeed
		c.Pitch = clamp(c.Pitch, -89, 89)

		forward, right := c.Directions()
		speed := c.MoveSpeed * deltaTime
		c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(forward, in.Forward*speed))
		c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(right, in.Right*speed))
		c.Position.Y += in.Up * speed
	}

	if in.Scroll != 0 && in.SpeedMod {
		c.MoveSpeed = clamp(c.MoveSpeed+in.Scroll*2, 1, 100)
	}
}

// Directions returns the view direction and the horizontal right vector.
func (c *EditorCamera) Directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	forward = rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Y: 0,
		Z: float32(math.Cos(yawRad)),
	}
	return
}

func (c *EditorCamera) Raylib() rl.Camera3D {
	forward, _ := c.Directions()
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, forward),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Focus starts a short ease-out move that frames a sphere of radius around
// target, keeping the current view direction.
func (c *EditorCamera) Focus(target rl.Vector3, radius float32) {
	forward, _ := c.Directions()
	dist := radius*2.5 + 2
	c.focusFrom = c.Position
	c.focusTo = rl.Vector3Subtract(target, rl.Vector3Scale(forward, dist))
	c.focusT = 0
	c.focusing = true
}

func (c *EditorCamera) Focusing() bool {
	return c.focusing
}

func (c *EditorCamera) updateFocus(deltaTime float32) {
	if !c.focusing {
		return
	}
	c.focusT += deltaTime * 4
	if c.focusT >= 1 {
		c.focusing = false
		c.Position = c.focusTo
		return
	}
	t := c.focusT
	ease := 1 - (1-t)*(1-t)*(1-t)
	c.Position = rl.Vector3Lerp(c.focusFrom, c.focusTo, ease)
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
