package tools

import (
	"fmt"

	"toolsframework/internal/engine"
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const PlaceObjectToolID = "PlaceObject"

// PlaceObjectToolBuilder builds PlaceObjectTools for the current scene.
// NewObject creates the n-th object of a session; nil uses a unit box.
type PlaceObjectToolBuilder struct {
	GroundHeight float32
	NewObject    func(n int) *engine.GameObject
}

func (b *PlaceObjectToolBuilder) CanBuildTool(state interactive.ToolBuilderState) bool {
	return state.Scene != nil
}

func (b *PlaceObjectToolBuilder) BuildTool(state interactive.ToolBuilderState) interactive.Tool {
	if state.Scene == nil {
		return nil
	}
	t := &PlaceObjectTool{
		GroundHeight: b.GroundHeight,
		NewObject:    b.NewObject,
		scene:        state.Scene,
	}
	t.SetToolManager(state.ToolManager)
	return t
}

// PlaceObjectTool drops a new object wherever the ground plane is clicked.
// Accept keeps the placed objects as one undoable step; cancel removes them.
type PlaceObjectTool struct {
	interactive.BaseTool

	GroundHeight float32
	NewObject    func(n int) *engine.GameObject

	scene  *engine.Scene
	placed []*engine.GameObject
	count  int
}

func (t *PlaceObjectTool) Setup() {
	t.AddInputBehavior(interactive.NewSingleClickBehavior(t))
}

func (t *PlaceObjectTool) HasAccept() bool { return true }

func (t *PlaceObjectTool) HasCancel() bool { return true }

func (t *PlaceObjectTool) CanAccept() bool {
	return len(t.Placed()) > 0
}

// Placed returns the objects placed this session that are still in the scene.
func (t *PlaceObjectTool) Placed() []*engine.GameObject {
	var out []*engine.GameObject
	for _, obj := range t.placed {
		if obj.Scene == t.scene {
			out = append(out, obj)
		}
	}
	return out
}

func (t *PlaceObjectTool) IsHitByClick(ray interactive.InputDeviceRay) interactive.InputRayHit {
	if _, depth, ok := t.groundHit(ray); ok {
		return interactive.NewHit(depth)
	}
	return interactive.NoHit()
}

func (t *PlaceObjectTool) OnClicked(ray interactive.InputDeviceRay) {
	point, _, ok := t.groundHit(ray)
	if !ok {
		return
	}
	tm := t.ToolManager()
	point = t.snap(tm.ContextQueriesAPI(), point)

	t.count++
	obj := t.newObject()
	point.Y += obj.Size.Y * 0.5
	obj.SetPosition(point)

	tm.BeginUndoTransaction("Place Object")
	t.scene.AddGameObject(obj)
	tm.EmitObjectChange(t.scene, &ObjectAddChange{Objects: []*engine.GameObject{obj}}, "Place Object")
	tm.EndUndoTransaction()
	t.placed = append(t.placed, obj)

	tm.RequestSelectionChange(interactive.SelectedObjectsChangeList{
		Modification: interactive.SelectionReplace,
		Objects:      []*engine.GameObject{obj},
	})
	tm.RequestToolSelectionStore(t.Placed())
	tm.PostInvalidation()
}

// Shutdown removes the placed objects on cancel. On accept the session's
// per-click changes expire with the tool, so the result is recorded again
// as a single change straight to the host.
func (t *PlaceObjectTool) Shutdown(shutdown interactive.ToolShutdownType) {
	placed := t.Placed()
	switch shutdown {
	case interactive.ShutdownCancel:
		for _, obj := range placed {
			t.scene.RemoveGameObject(obj)
		}
		t.placed = nil
	case interactive.ShutdownAccept:
		if len(placed) == 0 {
			return
		}
		tx := t.ToolManager().ContextTransactionsAPI()
		desc := fmt.Sprintf("Place %d Objects", len(placed))
		if len(placed) == 1 {
			desc = "Place Object"
		}
		tx.AppendChange(t.scene, &ObjectAddChange{Objects: placed}, desc)
	}
}

func (t *PlaceObjectTool) groundHit(ray interactive.InputDeviceRay) (rl.Vector3, float32, bool) {
	origin := rl.Vector3{Y: t.GroundHeight}
	return geom.RayPlaneIntersection(ray.WorldRay, origin, rl.Vector3{Y: 1})
}

func (t *PlaceObjectTool) snap(queries interactive.QueriesAPI, p rl.Vector3) rl.Vector3 {
	if queries == nil || !queries.CurrentSnappingSettings().PositionEnabled {
		return p
	}
	results := queries.ExecuteSceneSnapQuery(interactive.SceneSnapQueryRequest{
		Type:     interactive.SnapPointToGrid,
		Position: p,
	})
	if len(results) == 0 {
		return p
	}
	snapped := results[0].Position
	snapped.Y = t.GroundHeight
	return snapped
}

func (t *PlaceObjectTool) newObject() *engine.GameObject {
	if t.NewObject != nil {
		if obj := t.NewObject(t.count); obj != nil {
			return obj
		}
	}
	obj := engine.NewGameObject(fmt.Sprintf("Box %d", t.count))
	obj.Color = rl.SkyBlue
	return obj
}

// ObjectAddChange records objects added to a scene. Revert removes them.
type ObjectAddChange struct {
	Objects []*engine.GameObject
}

func (c *ObjectAddChange) Apply(target any) {
	scene := target.(*engine.Scene)
	for _, obj := range c.Objects {
		scene.AddGameObject(obj)
	}
}

func (c *ObjectAddChange) Revert(target any) {
	scene := target.(*engine.Scene)
	for i := len(c.Objects) - 1; i >= 0; i-- {
		scene.RemoveGameObject(c.Objects[i])
	}
}

func (c *ObjectAddChange) HasExpired(target any) bool {
	_, ok := target.(*engine.Scene)
	return !ok
}

func (c *ObjectAddChange) String() string {
	return fmt.Sprintf("ObjectAddChange(%d)", len(c.Objects))
}
