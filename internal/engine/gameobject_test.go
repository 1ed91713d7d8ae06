package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if !obj.Transform().NearlyEqual(IdentityTransform(), 1e-6) {
		t.Error("new objects should start at the identity transform")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"selectable", "static"}

	if !obj.HasTag("selectable") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("gizmo") {
		t.Error("HasTag should return false for non-existent tag")
	}

	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Error("Child not added to parent's Children slice")
	}
}

func TestGameObjectReparent(t *testing.T) {
	a := NewGameObject("A")
	b := NewGameObject("B")
	child := NewGameObject("Child")

	a.AddChild(child)
	b.AddChild(child)

	if len(a.Children) != 0 {
		t.Errorf("old parent should lose the child, has %d children", len(a.Children))
	}
	if child.Parent != b {
		t.Error("child should belong to the new parent")
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)

	parent.RemoveChild(child1)

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child after removal, got %d", len(parent.Children))
	}

	if parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}

	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestGameObjectWorldTransform(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	parent.AddChild(child)

	pt := IdentityTransform()
	pt.Position = rl.Vector3{X: 10}
	pt.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, rl.Pi/2)
	pt.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	parent.SetTransform(pt)
	child.SetPosition(rl.Vector3{X: 1})

	// +X rotated a quarter turn about Y points to -Z, then scaled by 2.
	got := child.WorldPosition()
	want := rl.Vector3{X: 10, Z: -2}
	if !VectorsNearlyEqual(got, want, 1e-4) {
		t.Errorf("world position = %v, want %v", got, want)
	}

	w := IdentityTransform()
	w.Position = rl.Vector3{X: 4, Y: 1, Z: 3}
	child.SetWorldTransform(w)
	if !child.WorldTransform().NearlyEqual(w, 1e-4) {
		t.Errorf("SetWorldTransform round trip: got %+v, want %+v", child.WorldTransform(), w)
	}
}

func TestGameObjectTransformChangedPropagates(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	parent.AddChild(child)

	var fired []string
	parent.OnTransformChanged.AddListener(func(g *GameObject) { fired = append(fired, g.Name) })
	child.OnTransformChanged.AddListener(func(g *GameObject) { fired = append(fired, g.Name) })

	parent.SetPosition(rl.Vector3{Y: 3})

	if len(fired) != 2 || fired[0] != "Parent" || fired[1] != "Child" {
		t.Errorf("expected parent then child notifications, got %v", fired)
	}
}
