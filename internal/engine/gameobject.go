package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

// GameObject is a named node in the scene with a local transform relative
// to its parent. Size is the unscaled box extent used for picking and drawing.
type GameObject struct {
	UID      uint64
	Name     string
	Tags     []string
	Active   bool
	Scene    *Scene
	Parent   *GameObject
	Children []*GameObject
	Size     rl.Vector3
	Color    rl.Color

	transform Transform

	// OnTransformChanged fires after every transform write, including
	// writes that leave the value unchanged.
	OnTransformChanged EventWithArg[*GameObject]
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:       nextUID.Add(1),
		Name:      name,
		Active:    true,
		Size:      rl.Vector3{X: 1, Y: 1, Z: 1},
		Color:     rl.LightGray,
		transform: IdentityTransform(),
		Children:  make([]*GameObject, 0),
	}
}

// Transform returns the local transform.
func (g *GameObject) Transform() Transform {
	return g.transform
}

func (g *GameObject) SetTransform(t Transform) {
	g.transform = t
	g.notifyTransformChanged()
}

func (g *GameObject) SetPosition(p rl.Vector3) {
	g.transform.Position = p
	g.notifyTransformChanged()
}

func (g *GameObject) WorldTransform() Transform {
	if g.Parent == nil {
		return g.transform
	}
	return g.transform.Compose(g.Parent.WorldTransform())
}

// SetWorldTransform writes the local transform that yields w under the
// current parent chain.
func (g *GameObject) SetWorldTransform(w Transform) {
	if g.Parent == nil {
		g.SetTransform(w)
		return
	}
	g.SetTransform(w.RelativeTo(g.Parent.WorldTransform()))
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	return g.WorldTransform().Position
}

func (g *GameObject) notifyTransformChanged() {
	g.OnTransformChanged.Invoke(g)
	for _, c := range g.Children {
		c.notifyTransformChanged()
	}
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Bounds returns the world-space oriented box: center, half extents along
// the object's own axes, and its rotation.
func (g *GameObject) Bounds() (center, halfExtents rl.Vector3, rotation rl.Quaternion) {
	w := g.WorldTransform()
	half := rl.Vector3{
		X: absF(g.Size.X*w.Scale.X) / 2,
		Y: absF(g.Size.Y*w.Scale.Y) / 2,
		Z: absF(g.Size.Z*w.Scale.Z) / 2,
	}
	return w.Position, half, w.Rotation
}
