package system

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
)

// ErrMissingCollaborator is returned when a system is built without a required dependency
var ErrMissingCollaborator = errors.New("missing collaborator")

// Raycaster resolves picking rays against world geometry
type Raycaster interface {
	// Raycast returns the first hit point, or false if the ray hits nothing
	Raycast(ray entity.Ray) (mgl64.Vec3, bool)
}

// CharacterMover is a collision-resolving body
type CharacterMover interface {
	// Move clips delta against world geometry and reports the displacement
	// actually applied and whether the body rests on the ground afterwards
	Move(delta mgl64.Vec3) (displacement mgl64.Vec3, grounded bool)
	Position() mgl64.Vec3
}

// ParamStore is an animation-parameter store
type ParamStore interface {
	GetBool(name string) bool
	SetBool(name string, value bool)
}

// NavAgent is a pathfinding agent that walks itself toward a destination
type NavAgent interface {
	SetSpeed(speed float64)
	SetDestination(dest mgl64.Vec3)
	SetStoppingDistance(d float64)
	// Warp relocates the agent instantly, bypassing pathfinding
	Warp(pos mgl64.Vec3)
	Position() mgl64.Vec3
}

// Picker turns screen positions into picking rays
type Picker interface {
	ScreenPointToRay(sx, sy float64) entity.Ray
}
