package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/ecs"
)

// ErrOwnerNotFound is returned when a pet's owner handle does not resolve
var ErrOwnerNotFound = errors.New("pet owner not found")

// CompanionSystem makes a pet follow its owner.
//
// A pet is Idle until the owner gets further than Tether away, then Seeking
// until it is back within ComfortZone. While Seeking and out of bounds (beyond
// TetherTolerance, or the owner standing still) a timer accumulates; when it
// reaches ToleranceTimerLimit the pet is warped onto the owner.
type CompanionSystem struct {
	pet   *entity.Pet
	body  *entity.Actor // the pet's own actor
	owner *entity.Actor // read only
	agent NavAgent
	anim  *AnimationSync

	// OnTeleport is called after the pet is warped
	OnTeleport func(from, to mgl64.Vec3)
}

// NewCompanionSystem resolves the pet and its owner in world and binds them to agent
func NewCompanionSystem(world *ecs.World, petID entity.EntityID, agent NavAgent, store ParamStore) (*CompanionSystem, error) {
	if agent == nil {
		return nil, fmt.Errorf("companion system: %w: nav agent", ErrMissingCollaborator)
	}
	if store == nil {
		return nil, fmt.Errorf("companion system: %w: animation store", ErrMissingCollaborator)
	}

	pet, ok := world.Pets[petID]
	if !ok {
		return nil, fmt.Errorf("companion system: no pet with id %d", petID)
	}
	body, ok := world.Actor(petID)
	if !ok {
		return nil, fmt.Errorf("companion system: pet %d has no actor", petID)
	}
	owner, ok := world.Actor(pet.Owner)
	if !ok {
		return nil, fmt.Errorf("companion system: %w: id %d", ErrOwnerNotFound, pet.Owner)
	}

	agent.SetStoppingDistance(pet.Tuning.ComfortZone)
	body.Position = agent.Position()

	return &CompanionSystem{
		pet:   pet,
		body:  body,
		owner: owner,
		agent: agent,
		anim:  NewAnimationSync(store),
	}, nil
}

// Pet returns the pet state
func (s *CompanionSystem) Pet() *entity.Pet {
	return s.pet
}

// Update advances the pet by one tick
func (s *CompanionSystem) Update(dt float64) {
	s.body.Position = s.agent.Position()
	s.checkMovement(dt)
	s.body.IsMoving = s.pet.IsMoving
	s.anim.Sync(s.flags())
}

func (s *CompanionSystem) checkMovement(dt float64) {
	p := s.pet
	distance := s.body.Position.Sub(s.owner.Position).Len()

	if p.IsMoving {
		if distance <= p.Tuning.ComfortZone {
			p.IsMoving = false
			return
		}
		s.checkTetherTolerance(distance, dt)
		s.follow()
		return
	}

	if distance > p.Tuning.Tether {
		p.IsMoving = true
		s.follow()
	}
}

// checkTetherTolerance accumulates out-of-bounds time and teleports when it runs out.
// The timer is only reset by a teleport.
func (s *CompanionSystem) checkTetherTolerance(distance, dt float64) {
	p := s.pet
	if distance < p.Tuning.TetherTolerance && s.owner.IsMoving {
		return
	}

	p.ToleranceTimer += dt
	if p.ToleranceTimer < p.Tuning.ToleranceTimerLimit {
		return
	}

	from := s.body.Position
	s.agent.Warp(s.owner.Position)
	s.body.Position = s.agent.Position()
	p.ToleranceTimer = 0
	if s.OnTeleport != nil {
		s.OnTeleport(from, s.body.Position)
	}
}

func (s *CompanionSystem) follow() {
	s.agent.SetSpeed(s.owner.Speed)
	s.agent.SetDestination(s.owner.Position)
}

// flags mirrors the owner's running and dancing, gated by the pet's own movement
func (s *CompanionSystem) flags() Flags {
	return MotionFlags(s.pet.IsMoving, s.owner.IsRunning, s.owner.IsDancing)
}
