package entity

import "github.com/go-gl/mathgl/mgl64"

// ClickTarget is the world point chosen by a pointer click
type ClickTarget struct {
	Point  mgl64.Vec3
	Active bool
}

// Actor is the motion state of the player-controlled actor.
// It is mutated once per tick by the motion system and read by everything else.
type Actor struct {
	ID EntityID

	Position mgl64.Vec3
	Facing   mgl64.Quat

	// CurrentMovement is the unscaled movement direction, including the
	// vertical bias applied while airborne.
	CurrentMovement mgl64.Vec3

	IsMoving  bool
	IsRunning bool
	IsDancing bool
	Speed     float64
	Grounded  bool

	// Input latches
	MovementInput   mgl64.Vec2
	MovementPressed bool
	RunPressed      bool
	PointerPressed  bool
	Pointer         mgl64.Vec2

	Target ClickTarget
}

// NewActor creates an idle actor at pos facing Forward
func NewActor(id EntityID, pos mgl64.Vec3) *Actor {
	return &Actor{
		ID:       id,
		Position: pos,
		Facing:   mgl64.QuatIdent(),
		Grounded: true,
	}
}

// Heading returns the horizontal direction the actor faces
func (a *Actor) Heading() mgl64.Vec3 {
	return Horizontal(a.Facing.Rotate(Forward))
}

// DistanceToTarget returns the distance to the click target point
func (a *Actor) DistanceToTarget() float64 {
	return a.Target.Point.Sub(a.Position).Len()
}
