package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject

	OnObjectAdded   EventWithArg[*GameObject]
	OnObjectRemoved EventWithArg[*GameObject]
}

// RaycastResult holds information about a raycast hit.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	if _, exists := s.uidMap[g.UID]; exists {
		return
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
	s.OnObjectAdded.Invoke(g)
}

// RemoveGameObject removes g and, recursively, its children.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, c := range append([]*GameObject(nil), g.Children...) {
		s.RemoveGameObject(c)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.uidMap, g.UID)
			g.Scene = nil
			s.OnObjectRemoved.Invoke(g)
			return
		}
	}
}

func (s *Scene) Contains(g *GameObject) bool {
	_, ok := s.uidMap[g.UID]
	return ok
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// Raycast returns the nearest active object whose oriented bounds the ray
// enters within maxDistance. The ray direction need not be normalized.
func (s *Scene) Raycast(ray rl.Ray, maxDistance float32) (RaycastResult, bool) {
	dir := rl.Vector3Normalize(ray.Direction)
	var best RaycastResult
	found := false
	for _, g := range s.GameObjects {
		if !g.Active {
			continue
		}
		dist, normal, ok := rayOrientedBox(ray.Position, dir, g)
		if !ok || dist > maxDistance {
			continue
		}
		if !found || dist < best.Distance {
			best = RaycastResult{
				GameObject: g,
				Point:      rl.Vector3Add(ray.Position, rl.Vector3Scale(dir, dist)),
				Normal:     normal,
				Distance:   dist,
			}
			found = true
		}
	}
	return best, found
}

// rayOrientedBox is a slab test in the box's local frame. Rays starting
// inside the box report distance 0.
func rayOrientedBox(origin, dir rl.Vector3, g *GameObject) (float32, rl.Vector3, bool) {
	center, half, rot := g.Bounds()
	inv := rl.QuaternionInvert(rot)
	o := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(origin, center), inv)
	d := rl.Vector3RotateByQuaternion(dir, inv)

	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))
	hitAxis := -1
	var hitSign float32
	for axis := 0; axis < 3; axis++ {
		oa := VectorComponent(o, axis)
		da := VectorComponent(d, axis)
		ha := VectorComponent(half, axis)
		if absF(da) < 1e-8 {
			if oa < -ha || oa > ha {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (-ha - oa) / da
		t2 := (ha - oa) / da
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tMin {
			tMin = t1
			hitAxis = axis
			hitSign = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, rl.Vector3{}, false
		}
	}
	if tMax < 0 {
		return 0, rl.Vector3{}, false
	}
	if tMin < 0 || hitAxis < 0 {
		return 0, rl.Vector3Negate(dir), true
	}
	normal := rl.Vector3Scale(UnitAxis(hitAxis), hitSign)
	return tMin, rl.Vector3RotateByQuaternion(normal, rot), true
}
