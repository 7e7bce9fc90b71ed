package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World axes. Y is up, +Z is the actor's forward when Facing is identity.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
)

// IsometricYaw is the yaw offset between screen axes and the world grid
const IsometricYaw = 45.0

// Ray is a half-line used for pointer picking
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IsometricConversion maps screen-relative directional input (x, y) onto the
// diagonally viewed world grid: (x, 0, y) rotated IsometricYaw about Up.
func IsometricConversion(input mgl64.Vec2) mgl64.Vec3 {
	rot := mgl64.QuatRotate(mgl64.DegToRad(IsometricYaw), Up)
	return rot.Rotate(mgl64.Vec3{input.X(), 0, input.Y()})
}

// LookRotation returns the rotation that turns Forward onto dir with Up kept upright.
// A zero dir yields the identity rotation.
func LookRotation(dir mgl64.Vec3) mgl64.Quat {
	horizontal := math.Hypot(dir.X(), dir.Z())
	if horizontal == 0 && dir.Y() == 0 {
		return mgl64.QuatIdent()
	}
	yaw := mgl64.QuatRotate(math.Atan2(dir.X(), dir.Z()), Up)
	pitch := mgl64.QuatRotate(-math.Atan2(dir.Y(), horizontal), Right)
	return yaw.Mul(pitch).Normalize()
}

// Slerp interpolates from a toward b along the shortest arc.
// t is clamped to [0, 1].
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = mgl64.Clamp(t, 0, 1)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// Horizontal drops the vertical component of v
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries the spring state between calls. The result never
// overshoots target.
func SmoothDamp(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, dt float64) mgl64.Vec3 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(exp)
	output := target.Add(change.Add(temp).Mul(exp))

	// Clamp overshoot
	if target.Sub(current).Dot(output.Sub(target)) > 0 {
		output = target
		*velocity = mgl64.Vec3{}
	}
	return output
}
