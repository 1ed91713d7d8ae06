package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Cube")

	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject, got %d", len(scene.GameObjects))
	}

	if scene.GameObjects[0] != obj {
		t.Error("GameObject not added to scene")
	}

	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}

	scene.AddGameObject(obj)
	if len(scene.GameObjects) != 1 {
		t.Error("adding the same object twice should be a no-op")
	}
}

func TestSceneUIDLookup(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Cube")

	scene.AddGameObject(obj)

	if found := scene.FindByUID(obj.UID); found != obj {
		t.Errorf("FindByUID failed: expected %v, got %v", obj, found)
	}

	if notFound := scene.FindByUID(99999); notFound != nil {
		t.Error("FindByUID should return nil for non-existent UID")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Cube")
	obj2 := NewGameObject("Sphere")

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	removed := 0
	scene.OnObjectRemoved.AddListener(func(*GameObject) { removed++ })

	scene.RemoveGameObject(obj1)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != obj2 {
		t.Error("Wrong GameObject removed")
	}

	if scene.FindByUID(obj1.UID) != nil {
		t.Error("Removed GameObject still in UID map")
	}

	if obj1.Scene != nil {
		t.Error("Removed GameObject should not point at the scene")
	}

	if removed != 1 {
		t.Errorf("OnObjectRemoved fired %d times, want 1", removed)
	}
}

func TestSceneFindByName(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("UniqueCube")

	scene.AddGameObject(obj)

	if scene.FindByName("UniqueCube") != obj {
		t.Error("FindByName failed")
	}

	if scene.FindByName("DoesNotExist") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Crate1")
	obj2 := NewGameObject("Crate2")
	obj3 := NewGameObject("Light")

	obj1.Tags = []string{"crate", "static"}
	obj2.Tags = []string{"crate"}
	obj3.Tags = []string{"light"}

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)
	scene.AddGameObject(obj3)

	if crates := scene.FindByTag("crate"); len(crates) != 2 {
		t.Errorf("Expected 2 crates, got %d", len(crates))
	}

	if notFound := scene.FindByTag("nonexistent"); len(notFound) != 0 {
		t.Error("FindByTag should return empty slice for non-existent tag")
	}
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	parent.AddChild(child)

	scene.RemoveGameObject(parent)

	if len(scene.GameObjects) != 0 {
		t.Errorf("Expected 0 GameObjects, got %d", len(scene.GameObjects))
	}

	if scene.FindByUID(parent.UID) != nil || scene.FindByUID(child.UID) != nil {
		t.Error("UID map not cleaned up after removal")
	}
}

func TestSceneUIDMapInitialization(t *testing.T) {
	scene := NewScene("Test")

	if scene.uidMap == nil {
		t.Error("uidMap should be initialized in NewScene")
	}

	scene.uidMap = nil
	obj := NewGameObject("Test")
	scene.AddGameObject(obj)

	if scene.uidMap == nil {
		t.Error("uidMap should be initialized on first AddGameObject")
	}
}

func TestSceneRaycastNearest(t *testing.T) {
	scene := NewScene("Test")
	near := NewGameObject("Near")
	far := NewGameObject("Far")
	near.SetPosition(rl.Vector3{Z: -5})
	far.SetPosition(rl.Vector3{Z: -10})
	scene.AddGameObject(far)
	scene.AddGameObject(near)

	ray := rl.Ray{Position: rl.Vector3{}, Direction: rl.Vector3{Z: -1}}
	hit, ok := scene.Raycast(ray, 100)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.GameObject != near {
		t.Errorf("expected nearest object, got %s", hit.GameObject.Name)
	}
	if absF(hit.Distance-4.5) > 1e-4 {
		t.Errorf("distance = %f, want 4.5", hit.Distance)
	}
	if !VectorsNearlyEqual(hit.Normal, rl.Vector3{Z: 1}, 1e-4) {
		t.Errorf("normal = %v, want +Z", hit.Normal)
	}

	if _, ok := scene.Raycast(ray, 3); ok {
		t.Error("hits beyond maxDistance should be ignored")
	}
}

func TestSceneRaycastRotatedBox(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Plank")
	obj.Size = rl.Vector3{X: 4, Y: 0.2, Z: 0.2}
	tr := IdentityTransform()
	tr.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, rl.Pi/2)
	obj.SetTransform(tr)
	scene.AddGameObject(obj)

	// The long axis now lies along Z, so a ray at x=0, z=1.5 hits it.
	ray := rl.Ray{Position: rl.Vector3{Y: 5, Z: 1.5}, Direction: rl.Vector3{Y: -1}}
	if _, ok := scene.Raycast(ray, 100); !ok {
		t.Error("expected the rotated box to be hit")
	}

	miss := rl.Ray{Position: rl.Vector3{X: 1.5, Y: 5}, Direction: rl.Vector3{Y: -1}}
	if _, ok := scene.Raycast(miss, 100); ok {
		t.Error("ray along the old long axis should miss")
	}
}
