package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
)

// NewCameraRig builds a rig from config, already in place behind target
func NewCameraRig(cfg *config.CameraConfig, target mgl64.Vec3) *entity.CameraRig {
	rig := &entity.CameraRig{
		Rotation:    entity.CameraRotation(cfg.Pitch, cfg.Yaw),
		Offset:      cfg.Offset.Vec(),
		SmoothTime:  cfg.SmoothTime,
		LookAt:      cfg.LookAt,
		OrthoSize:   mgl64.Clamp(cfg.OrthoSize, cfg.ZoomMin, cfg.ZoomMax),
		ZoomMin:     cfg.ZoomMin,
		ZoomMax:     cfg.ZoomMax,
		ScrollSpeed: cfg.ScrollSpeed,
	}
	rig.Position = target.Add(rig.Offset)
	if rig.LookAt {
		rig.Rotation = entity.LookRotation(target.Sub(rig.Position))
	}
	return rig
}

// CameraSystem trails a target with a smoothed orthographic camera
type CameraSystem struct {
	rig     *entity.CameraRig
	screenW int
	screenH int
}

// NewCameraSystem creates a camera system for a screenW x screenH viewport
func NewCameraSystem(rig *entity.CameraRig, screenW, screenH int) *CameraSystem {
	return &CameraSystem{
		rig:     rig,
		screenW: screenW,
		screenH: screenH,
	}
}

// Rig returns the driven camera rig
func (s *CameraSystem) Rig() *entity.CameraRig {
	return s.rig
}

// Apply handles every intent of a tick in order
func (s *CameraSystem) Apply(intents InputIntent) {
	for _, in := range intents {
		s.Handle(in)
	}
}

// Handle reacts to zoom intents and ignores everything else
func (s *CameraSystem) Handle(in Intent) {
	if z, ok := in.(ZoomIntent); ok {
		s.Zoom(z.Delta)
	}
}

// Zoom steps the orthographic size by ScrollSpeed against the scroll direction.
// Scrolling up (or a zero delta) zooms in.
func (s *CameraSystem) Zoom(delta mgl64.Vec2) {
	step := 1.0
	if delta.Y() < 0 {
		step = -1.0
	}
	r := s.rig
	r.OrthoSize = mgl64.Clamp(r.OrthoSize-step*r.ScrollSpeed, r.ZoomMin, r.ZoomMax)
}

// Update moves the camera toward target + offset
func (s *CameraSystem) Update(target mgl64.Vec3, dt float64) {
	r := s.rig
	desired := target.Add(r.Offset)
	r.Position = entity.SmoothDamp(r.Position, desired, &r.Velocity, r.SmoothTime, dt)
	if r.LookAt {
		r.Rotation = entity.LookRotation(target.Sub(r.Position))
	}
}

// ScreenPointToRay implements Picker for the system's viewport
func (s *CameraSystem) ScreenPointToRay(sx, sy float64) entity.Ray {
	return s.rig.ScreenPointToRay(sx, sy, s.screenW, s.screenH)
}

// WorldToScreen projects p onto the system's viewport
func (s *CameraSystem) WorldToScreen(p mgl64.Vec3) (sx, sy, depth float64) {
	return s.rig.WorldToScreen(p, s.screenW, s.screenH)
}

// ScreenLength converts a world length to pixels
func (s *CameraSystem) ScreenLength(worldLen float64) float64 {
	return s.rig.ScreenLength(worldLen, s.screenH)
}
