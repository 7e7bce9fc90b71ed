package config

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ControllerConfig is the root config for controller.yaml
type ControllerConfig struct {
	Display  DisplayConfig  `yaml:"display"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Pet      PetConfig      `yaml:"pet"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

// MovementConfig tunes the player's locomotion
type MovementConfig struct {
	WalkSpeed       float64 `yaml:"walkSpeed"`       // units/sec
	RunSpeed        float64 `yaml:"runSpeed"`        // units/sec
	RunOnClick      bool    `yaml:"runOnClick"`      // click-to-move runs by default
	TargetThreshold float64 `yaml:"targetThreshold"` // stop this close to a click target
	RotationRate    float64 `yaml:"rotationRate"`    // slerp factor per second
	GroundBias      float64 `yaml:"groundBias"`      // downward bias added per tick while airborne
}

// CameraConfig tunes the follow camera
type CameraConfig struct {
	SmoothTime  float64    `yaml:"smoothTime"`
	Offset      Vec3Config `yaml:"offset"`
	LookAt      bool       `yaml:"lookAt"`
	Pitch       float64    `yaml:"pitch"` // degrees, positive looks down
	Yaw         float64    `yaml:"yaw"`   // degrees
	ScrollSpeed float64    `yaml:"scrollSpeed"`
	ZoomMin     float64    `yaml:"zoomMin"`
	ZoomMax     float64    `yaml:"zoomMax"`
	OrthoSize   float64    `yaml:"orthoSize"`
}

// PetConfig tunes the companion
type PetConfig struct {
	ComfortZone         float64    `yaml:"comfortZone"`
	Tether              float64    `yaml:"tether"`
	TetherTolerance     float64    `yaml:"tetherTolerance"`
	ToleranceTimerLimit float64    `yaml:"toleranceTimerLimit"`
	SpawnOffset         Vec3Config `yaml:"spawnOffset"`
}

type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec returns the value as a math vector
func (v Vec3Config) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Default returns the authoring defaults
func Default() *ControllerConfig {
	return &ControllerConfig{
		Display: DisplayConfig{
			ScreenWidth:  480,
			ScreenHeight: 320,
			Scale:        2,
			Framerate:    60,
		},
		Movement: MovementConfig{
			WalkSpeed:       1,
			RunSpeed:        3,
			RunOnClick:      false,
			TargetThreshold: 0.1,
			RotationRate:    1,
			GroundBias:      1,
		},
		Camera: CameraConfig{
			SmoothTime:  0.125,
			Offset:      Vec3Config{X: -12.25, Y: 10, Z: -12.25},
			Pitch:       30,
			Yaw:         45,
			ScrollSpeed: 10,
			ZoomMin:     5,
			ZoomMax:     15,
			OrthoSize:   5,
		},
		Pet: PetConfig{
			ComfortZone:         2,
			Tether:              5,
			TetherTolerance:     25,
			ToleranceTimerLimit: 5,
			SpawnOffset:         Vec3Config{X: -1, Z: -1},
		},
	}
}

// Authoring ranges
const (
	minSpeed    = 0.5
	maxSpeed    = 25
	minRotation = 0.5
	maxRotation = 100
	minZoom     = 2
	maxZoom     = 45
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the tunables against their authoring ranges
func (c *ControllerConfig) Validate() error {
	m := c.Movement
	if m.WalkSpeed < minSpeed || m.WalkSpeed > maxSpeed {
		return fmt.Errorf("%w: walkSpeed %v out of [%v, %v]", ErrInvalidConfig, m.WalkSpeed, minSpeed, maxSpeed)
	}
	if m.RunSpeed < minSpeed || m.RunSpeed > maxSpeed {
		return fmt.Errorf("%w: runSpeed %v out of [%v, %v]", ErrInvalidConfig, m.RunSpeed, minSpeed, maxSpeed)
	}
	if m.RotationRate < minRotation || m.RotationRate > maxRotation {
		return fmt.Errorf("%w: rotationRate %v out of [%v, %v]", ErrInvalidConfig, m.RotationRate, minRotation, maxRotation)
	}
	if m.TargetThreshold < 0 {
		return fmt.Errorf("%w: targetThreshold must not be negative", ErrInvalidConfig)
	}

	cam := c.Camera
	if cam.ZoomMin < minZoom || cam.ZoomMax > maxZoom || cam.ZoomMin > cam.ZoomMax {
		return fmt.Errorf("%w: zoom range [%v, %v] not within [%v, %v]", ErrInvalidConfig, cam.ZoomMin, cam.ZoomMax, minZoom, maxZoom)
	}
	if cam.SmoothTime < 0 {
		return fmt.Errorf("%w: smoothTime must not be negative", ErrInvalidConfig)
	}

	p := c.Pet
	if p.ComfortZone < 0 || p.Tether < p.ComfortZone || p.TetherTolerance < p.Tether {
		return fmt.Errorf("%w: pet distances must satisfy 0 <= comfortZone <= tether <= tetherTolerance", ErrInvalidConfig)
	}
	if p.ToleranceTimerLimit <= 0 {
		return fmt.Errorf("%w: toleranceTimerLimit must be positive", ErrInvalidConfig)
	}

	if c.Display.Framerate <= 0 {
		return fmt.Errorf("%w: framerate must be positive", ErrInvalidConfig)
	}
	return nil
}
