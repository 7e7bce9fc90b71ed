package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
)

// DefaultRadius is the footprint half-extent of a character
const DefaultRadius = 0.3

// skin keeps a resolved body just off the face it collided with
const skin = 1e-6

// CharacterBody is a kinematic capsule on the stage floor plan.
// Walls stop it, and it will not walk off walkable floor while grounded.
type CharacterBody struct {
	stage    *entity.Stage
	pos      mgl64.Vec3
	radius   float64
	grounded bool
}

// NewCharacterBody places a body at pos
func NewCharacterBody(stage *entity.Stage, pos mgl64.Vec3, radius float64) *CharacterBody {
	b := &CharacterBody{
		stage:  stage,
		pos:    pos,
		radius: radius,
	}
	b.grounded = stage.HasFloorAt(pos.X(), pos.Z()) && pos.Y() <= stage.FloorY
	return b
}

// Position returns the body's feet position
func (b *CharacterBody) Position() mgl64.Vec3 {
	return b.pos
}

// Grounded reports whether the last move ended on the floor
func (b *CharacterBody) Grounded() bool {
	return b.grounded
}

// Radius returns the footprint half-extent
func (b *CharacterBody) Radius() float64 {
	return b.radius
}

// Move displaces the body by delta, resolving Y, then X, then Z.
// It returns the displacement actually applied and whether the body is grounded.
func (b *CharacterBody) Move(delta mgl64.Vec3) (mgl64.Vec3, bool) {
	start := b.pos

	b.moveVertical(delta.Y())
	b.moveAxis(0, delta.X())
	b.moveAxis(2, delta.Z())

	return b.pos.Sub(start), b.grounded
}

func (b *CharacterBody) moveVertical(dy float64) {
	y := b.pos.Y() + dy
	floorY := b.stage.FloorY
	if b.stage.HasFloorAt(b.pos.X(), b.pos.Z()) && y <= floorY && b.pos.Y() >= floorY-skin {
		b.pos[1] = floorY
		b.grounded = true
		return
	}
	b.pos[1] = y
	b.grounded = false
}

// moveAxis moves along x (0) or z (2), stopping at the first blocking tile edge
func (b *CharacterBody) moveAxis(axis int, d float64) {
	if d == 0 {
		return
	}

	next := b.pos
	next[axis] += d
	if !b.blocked(next) {
		b.pos = next
		return
	}

	// Slide up to the edge of the tile we ran into
	ts := b.stage.TileSize
	edge := b.pos[axis]
	if d > 0 {
		edge = math.Floor((b.pos[axis]+b.radius+d)/ts)*ts - b.radius - skin
		if edge <= b.pos[axis] {
			return
		}
	} else {
		edge = math.Ceil((b.pos[axis]-b.radius+d)/ts)*ts + b.radius + skin
		if edge >= b.pos[axis] {
			return
		}
	}

	next = b.pos
	next[axis] = edge
	if !b.blocked(next) {
		b.pos = next
	}
}

func (b *CharacterBody) blocked(p mgl64.Vec3) bool {
	r := b.radius
	corners := [4][2]float64{
		{p.X() - r, p.Z() - r},
		{p.X() + r, p.Z() - r},
		{p.X() - r, p.Z() + r},
		{p.X() + r, p.Z() + r},
	}
	for _, c := range corners {
		if b.stage.IsSolidAt(c[0], c[1]) {
			return true
		}
	}
	return b.grounded && !b.stage.HasFloorAt(p.X(), p.Z())
}
