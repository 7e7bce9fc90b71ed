package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ControllerFile is the tunables file name inside the config directory
const ControllerFile = "controller.yaml"

// GameConfig holds all loaded configurations
type GameConfig struct {
	Controller *ControllerConfig
	Stage      *StageConfig
}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadController loads controller.yaml on top of Default and validates it
func (l *Loader) LoadController() (*ControllerConfig, error) {
	data, err := fs.ReadFile(l.fsys, ControllerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ControllerFile, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ControllerFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", ControllerFile, err)
	}

	return cfg, nil
}

// LoadStage loads a stage JSON file and validates it
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads the controller tunables and the named stage
func (l *Loader) LoadAll(stage string) (*GameConfig, error) {
	controller, err := l.LoadController()
	if err != nil {
		return nil, err
	}

	stageCfg, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Controller: controller,
		Stage:      stageCfg,
	}, nil
}
