package tools

import (
	"testing"

	"toolsframework/internal/engine"
	"toolsframework/internal/gizmos"
	"toolsframework/internal/host"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const translateOnlyToolID = "TranslateOnly"

type toolEnv struct {
	scene   *engine.Scene
	host    *host.Host
	router  *interactive.Router
	tools   *interactive.ToolManager
	gizmos  *interactive.GizmoManager
	targets *interactive.TargetManager
}

func newToolEnv(t *testing.T, opts ...host.Option) *toolEnv {
	t.Helper()
	e := &toolEnv{scene: engine.NewScene("test"), router: interactive.NewRouter()}
	e.host = host.New(e.scene, opts...)
	e.tools = interactive.NewToolManager(e.host, e.host, e.router)
	e.gizmos = interactive.NewGizmoManager(e.host, e.host, e.router)
	e.targets = interactive.NewTargetManager()
	e.tools.SetPairedGizmoManager(e.gizmos)
	e.tools.SetTargetManager(e.targets)
	e.tools.SetSelectionStore(e.host)

	gizmos.RegisterDefaultGizmos(e.gizmos)
	RegisterDefaultTools(e.tools, e.targets)
	e.tools.RegisterToolType(translateOnlyToolID, &TransformToolBuilder{Elements: gizmos.TranslateAllAxes})
	return e
}

func (e *toolEnv) addObject(name string, pos rl.Vector3) *engine.GameObject {
	obj := engine.NewGameObject(name)
	obj.SetPosition(pos)
	e.scene.AddGameObject(obj)
	return obj
}

func (e *toolEnv) activate(t *testing.T, id string) bool {
	t.Helper()
	if !e.tools.SelectActiveToolType(interactive.ToolSideLeft, id) {
		return false
	}
	return e.tools.ActivateTool(interactive.ToolSideLeft)
}

// downRay points straight down at (x, 0, z) from five units above.
func downRay(x, z float32) interactive.InputDeviceRay {
	return interactive.NewInputDeviceRay(rl.Ray{
		Position:  rl.Vector3{X: x, Y: 5, Z: z},
		Direction: rl.Vector3{Y: -1},
	})
}

func press(ray interactive.InputDeviceRay) interactive.InputState {
	return interactive.InputState{Ray: ray, LeftPressed: true, LeftDown: true}
}

func drag(ray interactive.InputDeviceRay) interactive.InputState {
	return interactive.InputState{Ray: ray, LeftDown: true}
}

func release(ray interactive.InputDeviceRay) interactive.InputState {
	return interactive.InputState{Ray: ray, LeftReleased: true}
}

// click presses and releases at ray.
func (e *toolEnv) click(ray interactive.InputDeviceRay) {
	e.router.PostInputEvent(press(ray))
	e.router.PostInputEvent(release(ray))
}
