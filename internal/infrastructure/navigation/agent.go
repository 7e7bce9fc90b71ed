package navigation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
)

// maxWaypoints bounds how many tiles an agent may cross in one step
const maxWaypoints = 4

// GridAgent steers a point across the stage's walkable tiles along a flow field.
// It stops once within its stopping distance of the destination.
type GridAgent struct {
	stage *entity.Stage
	field *FlowField

	pos              mgl64.Vec3
	dest             mgl64.Vec3
	hasDest          bool
	speed            float64
	stoppingDistance float64
	velocity         mgl64.Vec3
}

// NewGridAgent places an agent at pos
func NewGridAgent(stage *entity.Stage, pos mgl64.Vec3) *GridAgent {
	return &GridAgent{
		stage: stage,
		field: NewFlowField(stage.Width, stage.Depth),
		pos:   mgl64.Vec3{pos.X(), stage.FloorY, pos.Z()},
	}
}

func (a *GridAgent) blocked(x, z int) bool {
	return !a.stage.GetTile(x, z).Walkable()
}

// SetSpeed sets the travel speed in units per second
func (a *GridAgent) SetSpeed(speed float64) {
	a.speed = speed
}

// SetStoppingDistance sets how close to the destination the agent stops
func (a *GridAgent) SetStoppingDistance(d float64) {
	a.stoppingDistance = d
}

// SetDestination steers the agent toward dest. The flow field is only
// recomputed when dest moves to another tile.
func (a *GridAgent) SetDestination(dest mgl64.Vec3) {
	a.dest = mgl64.Vec3{dest.X(), a.stage.FloorY, dest.Z()}
	a.hasDest = true

	tx, tz := a.stage.TileCoords(dest.X(), dest.Z())
	if a.field.Valid && a.field.TargetX == tx && a.field.TargetZ == tz {
		return
	}
	a.field.Compute(tx, tz, a.blocked)
}

// Warp moves the agent instantly and clears its destination
func (a *GridAgent) Warp(pos mgl64.Vec3) {
	a.pos = mgl64.Vec3{pos.X(), a.stage.FloorY, pos.Z()}
	a.hasDest = false
	a.velocity = mgl64.Vec3{}
}

// Position returns the agent's position on the floor
func (a *GridAgent) Position() mgl64.Vec3 {
	return a.pos
}

// Velocity returns the displacement per second of the last step
func (a *GridAgent) Velocity() mgl64.Vec3 {
	return a.velocity
}

// RemainingDistance returns the straight-line distance to the destination
func (a *GridAgent) RemainingDistance() float64 {
	if !a.hasDest {
		return 0
	}
	return a.dest.Sub(a.pos).Len()
}

// Step advances the agent by dt seconds
func (a *GridAgent) Step(dt float64) {
	a.velocity = mgl64.Vec3{}
	if !a.hasDest || dt <= 0 || a.speed <= 0 {
		return
	}

	start := a.pos
	budget := a.speed * dt
	for i := 0; i < maxWaypoints && budget > 0; i++ {
		remaining := a.dest.Sub(a.pos).Len() - a.stoppingDistance
		if remaining <= 0 {
			break
		}

		waypoint, ok := a.nextWaypoint()
		if !ok {
			break
		}
		to := waypoint.Sub(a.pos)
		dist := to.Len()
		if dist == 0 {
			break
		}

		// Never step inside the stopping distance
		step := math.Min(math.Min(budget, dist), remaining)
		a.pos = a.pos.Add(to.Mul(step / dist))
		budget -= step
	}

	a.velocity = a.pos.Sub(start).Mul(1 / dt)
}

// nextWaypoint returns the point to head for: the centre of the next tile on
// the flow field, or the destination itself once in its tile.
func (a *GridAgent) nextWaypoint() (mgl64.Vec3, bool) {
	tx, tz := a.stage.TileCoords(a.pos.X(), a.pos.Z())
	switch d := a.field.Direction(tx, tz); d {
	case DirTarget:
		return a.dest, true
	case DirNone:
		return mgl64.Vec3{}, false
	default:
		nx, nz := tx+DirVectors[d][0], tz+DirVectors[d][1]
		// Cut straight to the destination once it is one tile away
		if nx == a.field.TargetX && nz == a.field.TargetZ {
			return a.dest, true
		}
		return a.stage.TileCenter(nx, nz), true
	}
}
