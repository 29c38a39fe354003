package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the viewer config file, relative to the process working directory.
const EngineConfigPath = "config/viewer.json"

// Environment variables that override the asset paths from the config file.
const (
	EnvModelPath   = "VIEWER_MODEL"
	EnvSpheresPath = "VIEWER_SPHERES"
)

// EnginePrefs holds viewer preferences (debug overlays, grid, collision overlay, asset paths, reload on change).
// Persisted across runs.
// Overlay contents (which spheres are shown) are not persisted.
type EnginePrefs struct {
	ShowFPS          bool    `json:"show_fps"`
	ShowMemAlloc     bool    `json:"show_memalloc"`
	GridVisible      bool    `json:"grid_visible"`
	ShowCollision    bool    `json:"show_collision"`
	Fullscreen       bool    `json:"fullscreen"`
	WatchFiles       bool    `json:"watch_files"`
	CollisionOpacity float32 `json:"collision_opacity"`
	ModelPath        string  `json:"model_path,omitempty"`
	SpheresPath      string  `json:"spheres_path,omitempty"`
}

// Default returns default preferences (debug overlays off, grid and collision spheres on).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:          false,
		ShowMemAlloc:     false,
		GridVisible:      true,
		ShowCollision:    true,
		WatchFiles:       true,
		CollisionOpacity: 0.45,
		ModelPath:        "assets/models/rover.yaml",
		SpheresPath:      "assets/spheres/rover.json",
	}
}

// Load reads preferences from path. If the file is missing or invalid, returns Default() and does not create a file.
// Fields missing from the file keep their default values.
func Load(path string) (EnginePrefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	if p.CollisionOpacity <= 0 || p.CollisionOpacity > 1 {
		p.CollisionOpacity = Default().CollisionOpacity
	}
	return p, nil
}

// ApplyEnv overrides asset paths from VIEWER_MODEL and VIEWER_SPHERES when they are set.
func (p *EnginePrefs) ApplyEnv() {
	if v := os.Getenv(EnvModelPath); v != "" {
		p.ModelPath = v
	}
	if v := os.Getenv(EnvSpheresPath); v != "" {
		p.SpheresPath = v
	}
}

// Save writes preferences to path, creating the config directory if needed.
func Save(path string, p EnginePrefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
