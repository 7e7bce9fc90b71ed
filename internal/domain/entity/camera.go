package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraRig is an orthographic camera trailing a target with a fixed offset
type CameraRig struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Velocity mgl64.Vec3 // SmoothDamp state

	Offset     mgl64.Vec3
	SmoothTime float64
	LookAt     bool

	OrthoSize   float64 // half of the visible height in world units
	ZoomMin     float64
	ZoomMax     float64
	ScrollSpeed float64
}

// CameraRotation builds a camera rotation from pitch (down is positive) and yaw, in degrees
func CameraRotation(pitchDeg, yawDeg float64) mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(yawDeg), Up)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(pitchDeg), Right)
	return yaw.Mul(pitch).Normalize()
}

// Forward returns the viewing direction
func (c *CameraRig) Forward() mgl64.Vec3 { return c.Rotation.Rotate(Forward) }

// RightAxis returns the camera's screen-right axis in world space
func (c *CameraRig) RightAxis() mgl64.Vec3 { return c.Rotation.Rotate(Right) }

// UpAxis returns the camera's screen-up axis in world space
func (c *CameraRig) UpAxis() mgl64.Vec3 { return c.Rotation.Rotate(Up) }

// pixelsPerUnit returns the projection scale for a viewport of height h
func (c *CameraRig) pixelsPerUnit(h int) float64 {
	if c.OrthoSize <= 0 {
		return 0
	}
	return float64(h) / 2 / c.OrthoSize
}

// ScreenPointToRay returns the picking ray through screen point (sx, sy)
// of a w x h viewport. Screen Y grows downward.
func (c *CameraRig) ScreenPointToRay(sx, sy float64, w, h int) Ray {
	half := float64(h) / 2
	nx := (sx - float64(w)/2) / half
	ny := (half - sy) / half

	origin := c.Position.
		Add(c.RightAxis().Mul(nx * c.OrthoSize)).
		Add(c.UpAxis().Mul(ny * c.OrthoSize))
	return Ray{Origin: origin, Direction: c.Forward()}
}

// WorldToScreen projects p onto a w x h viewport.
// depth is the distance along the viewing direction, used for draw ordering.
func (c *CameraRig) WorldToScreen(p mgl64.Vec3, w, h int) (sx, sy, depth float64) {
	d := p.Sub(c.Position)
	scale := c.pixelsPerUnit(h)
	sx = float64(w)/2 + d.Dot(c.RightAxis())*scale
	sy = float64(h)/2 - d.Dot(c.UpAxis())*scale
	return sx, sy, d.Dot(c.Forward())
}

// ScreenLength converts a world length to pixels for a viewport of height h
func (c *CameraRig) ScreenLength(worldLen float64, h int) float64 {
	return math.Abs(worldLen) * c.pixelsPerUnit(h)
}
