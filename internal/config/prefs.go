package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// PrefsFile is where view preferences persist between sessions.
const PrefsFile = ".gizmoview_prefs.yaml"

type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

func (v Vec3) Raylib() rl.Vector3 { return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z} }

func FromRaylib(v rl.Vector3) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// ViewPrefs is the editor view restored on the next launch.
type ViewPrefs struct {
	CameraPosition   Vec3    `yaml:"camera_position"`
	CameraYaw        float32 `yaml:"camera_yaw"`
	CameraPitch      float32 `yaml:"camera_pitch"`
	CameraMoveSpeed  float32 `yaml:"camera_move_speed,omitempty"`
	CoordinateSystem string  `yaml:"coordinate_system,omitempty"`
	SnapPosition     bool    `yaml:"snap_position,omitempty"`
}

// LoadPrefs reads prefs from path. A missing file returns ok false and no
// error.
func LoadPrefs(path string) (ViewPrefs, bool, error) {
	var p ViewPrefs
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, false, nil
	}
	if err != nil {
		return p, false, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, true, nil
}

func SavePrefs(path string, p ViewPrefs) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
