package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

// mockBody moves freely above a floor at y=0
type mockBody struct {
	pos      mgl64.Vec3
	noGround bool // never report grounded
	moves    []mgl64.Vec3
}

func (b *mockBody) Move(delta mgl64.Vec3) (mgl64.Vec3, bool) {
	b.moves = append(b.moves, delta)
	b.pos = b.pos.Add(delta)
	if b.noGround {
		return delta, false
	}
	if b.pos.Y() <= 0 {
		b.pos[1] = 0
		return delta, true
	}
	return delta, false
}

func (b *mockBody) Position() mgl64.Vec3 { return b.pos }

// mockRaycaster intersects rays with the y=0 plane
type mockRaycaster struct {
	miss  bool
	calls int
}

func (r *mockRaycaster) Raycast(ray entity.Ray) (mgl64.Vec3, bool) {
	r.calls++
	if r.miss || ray.Direction.Y() >= 0 {
		return mgl64.Vec3{}, false
	}
	t := -ray.Origin.Y() / ray.Direction.Y()
	return ray.At(t), true
}

// mockPicker looks straight down: screen (sx, sy) is world (sx, _, sy)
type mockPicker struct{}

func (mockPicker) ScreenPointToRay(sx, sy float64) entity.Ray {
	return entity.Ray{Origin: mgl64.Vec3{sx, 10, sy}, Direction: mgl64.Vec3{0, -1, 0}}
}

// mockStore is an in-memory ParamStore counting writes
type mockStore struct {
	values map[string]bool
	writes []FlagChange
}

func newMockStore() *mockStore {
	return &mockStore{values: make(map[string]bool)}
}

func (s *mockStore) GetBool(name string) bool { return s.values[name] }

func (s *mockStore) SetBool(name string, v bool) {
	s.values[name] = v
	s.writes = append(s.writes, FlagChange{Name: name, Value: v})
}

// mockAgent records what the companion asks of it and never moves on its own
type mockAgent struct {
	pos          mgl64.Vec3
	speed        float64
	dest         mgl64.Vec3
	destSet      int
	stoppingDist float64
	warps        int
}

func (a *mockAgent) SetSpeed(speed float64)        { a.speed = speed }
func (a *mockAgent) SetDestination(d mgl64.Vec3)   { a.dest = d; a.destSet++ }
func (a *mockAgent) SetStoppingDistance(d float64) { a.stoppingDist = d }
func (a *mockAgent) Warp(pos mgl64.Vec3)           { a.pos = pos; a.warps++ }
func (a *mockAgent) Position() mgl64.Vec3          { return a.pos }

func createTestMovementConfig() *config.MovementConfig {
	return &config.MovementConfig{
		WalkSpeed:       1,
		RunSpeed:        3,
		RunOnClick:      false,
		TargetThreshold: 0.1,
		RotationRate:    1,
		GroundBias:      1,
	}
}
