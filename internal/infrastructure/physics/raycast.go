package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
)

const (
	// DefaultMaxDistance bounds how far a pick ray is marched
	DefaultMaxDistance = 500.0

	samplesPerTile = 8
	refineSteps    = 16
)

// StageRaycaster intersects rays with the stage floor and its wall columns
type StageRaycaster struct {
	stage       *entity.Stage
	maxDistance float64
}

// NewStageRaycaster creates a raycaster over stage
func NewStageRaycaster(stage *entity.Stage) *StageRaycaster {
	return &StageRaycaster{stage: stage, maxDistance: DefaultMaxDistance}
}

// Raycast returns the first point where ray meets a wall or walkable floor.
// Rays that pass over holes or leave the map miss.
// A stage without a positive tile size has nothing to hit.
func (r *StageRaycaster) Raycast(ray entity.Ray) (mgl64.Vec3, bool) {
	if ray.Direction.LenSqr() == 0 || !(r.stage.TileSize > 0) {
		return mgl64.Vec3{}, false
	}
	ray.Direction = ray.Direction.Normalize()

	floorY := r.stage.FloorY
	top := floorY + r.stage.WallHeight
	dy := ray.Direction.Y()

	// Nothing to hit above the wall tops
	t := 0.0
	if ray.Origin.Y() > top {
		if dy >= 0 {
			return mgl64.Vec3{}, false
		}
		t = (top - ray.Origin.Y()) / dy
	}

	step := r.stage.TileSize / samplesPerTile
	prev := t
	for ; t <= r.maxDistance; t += step {
		p := ray.At(t)

		if p.Y() < floorY {
			hit := ray.At((floorY - ray.Origin.Y()) / dy)
			if r.stage.HasFloorAt(hit.X(), hit.Z()) {
				return hit, true
			}
			return mgl64.Vec3{}, false
		}

		if r.stage.IsSolidAt(p.X(), p.Z()) {
			return r.refine(ray, prev, t), true
		}

		if dy >= 0 && p.Y() > top {
			return mgl64.Vec3{}, false
		}
		prev = t
	}
	return mgl64.Vec3{}, false
}

// refine bisects [lo, hi] for the wall surface, where lo is outside and hi inside
func (r *StageRaycaster) refine(ray entity.Ray, lo, hi float64) mgl64.Vec3 {
	for i := 0; i < refineSteps; i++ {
		mid := (lo + hi) / 2
		p := ray.At(mid)
		if r.stage.IsSolidAt(p.X(), p.Z()) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return ray.At(hi)
}
