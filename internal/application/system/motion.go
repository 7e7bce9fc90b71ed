package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
)

// MotionSystem drives the player actor: it applies intents, then each tick
// rotates the actor, syncs its animation flags and moves it.
type MotionSystem struct {
	config    *config.MovementConfig
	actor     *entity.Actor
	body      CharacterMover
	raycaster Raycaster
	picker    Picker
	anim      *AnimationSync
}

// NewMotionSystem creates a motion system for actor
func NewMotionSystem(
	cfg *config.MovementConfig,
	actor *entity.Actor,
	body CharacterMover,
	raycaster Raycaster,
	picker Picker,
	store ParamStore,
) (*MotionSystem, error) {
	switch {
	case cfg == nil:
		return nil, fmt.Errorf("motion system: %w: config", ErrMissingCollaborator)
	case actor == nil:
		return nil, fmt.Errorf("motion system: %w: actor", ErrMissingCollaborator)
	case body == nil:
		return nil, fmt.Errorf("motion system: %w: character body", ErrMissingCollaborator)
	case raycaster == nil:
		return nil, fmt.Errorf("motion system: %w: raycaster", ErrMissingCollaborator)
	case picker == nil:
		return nil, fmt.Errorf("motion system: %w: picker", ErrMissingCollaborator)
	case store == nil:
		return nil, fmt.Errorf("motion system: %w: animation store", ErrMissingCollaborator)
	}

	actor.Position = body.Position()
	return &MotionSystem{
		config:    cfg,
		actor:     actor,
		body:      body,
		raycaster: raycaster,
		picker:    picker,
		anim:      NewAnimationSync(store),
	}, nil
}

// Actor returns the driven actor
func (s *MotionSystem) Actor() *entity.Actor {
	return s.actor
}

// Apply handles every intent of a tick in order
func (s *MotionSystem) Apply(intents InputIntent) {
	for _, in := range intents {
		s.Handle(in)
	}
}

// Handle applies a single intent. Intents the actor does not react to are ignored.
func (s *MotionSystem) Handle(in Intent) {
	a := s.actor
	switch in := in.(type) {
	case MoveIntent:
		a.Target.Active = false
		a.IsDancing = false
		a.MovementInput = in.Direction
		a.CurrentMovement = entity.IsometricConversion(in.Direction)
		a.MovementPressed = in.Direction.X() != 0 || in.Direction.Y() != 0
	case RunIntent:
		a.RunPressed = in.Held
	case ClickIntent:
		a.PointerPressed = true
		a.Pointer = in.Pointer
		s.clickToMove(in.Pointer)
	case ClickReleaseIntent:
		a.PointerPressed = false
	case PointIntent:
		a.Pointer = in.Pointer
	case DanceIntent:
		a.IsDancing = true
	}
}

// Update advances the actor by one tick
func (s *MotionSystem) Update(dt float64) {
	s.rotate(dt)
	s.anim.Sync(MotionFlags(s.actor.IsMoving, s.actor.IsRunning, s.actor.IsDancing))
	s.resolve(dt)
}

// clickToMove picks the world point under the pointer.
// A miss leaves the current target untouched.
func (s *MotionSystem) clickToMove(pointer mgl64.Vec2) {
	ray := s.picker.ScreenPointToRay(pointer.X(), pointer.Y())
	hit, ok := s.raycaster.Raycast(ray)
	if !ok {
		return
	}

	a := s.actor
	a.Target = entity.ClickTarget{
		Point:  mgl64.Vec3{hit.X(), a.Position.Y(), hit.Z()},
		Active: true,
	}
	a.IsDancing = false
}

// rotate turns the actor toward its horizontal movement direction
func (s *MotionSystem) rotate(dt float64) {
	a := s.actor
	look := entity.Horizontal(a.CurrentMovement)
	if !a.IsMoving || look.LenSqr() == 0 {
		return
	}
	a.Facing = entity.Slerp(a.Facing, entity.LookRotation(look), s.config.RotationRate*dt)
}

// resolve computes the movement mode and moves the body.
// The mode is taken before arrival is checked, so the arrival tick still
// reports moving and steps once more.
func (s *MotionSystem) resolve(dt float64) {
	a := s.actor

	a.IsMoving = a.MovementPressed || a.Target.Active
	a.IsRunning = a.RunPressed || (a.Target.Active && s.config.RunOnClick)
	a.Speed = s.config.WalkSpeed
	if a.IsRunning {
		a.Speed = s.config.RunSpeed
	}

	if a.PointerPressed {
		s.clickToMove(a.Pointer)
	}

	if !a.IsMoving {
		return
	}

	if a.Target.Active && a.DistanceToTarget() <= s.config.TargetThreshold {
		a.Target.Active = false
		// Directional input held underneath the click resumes control
		if a.MovementPressed {
			a.CurrentMovement = entity.IsometricConversion(a.MovementInput)
		}
	}
	if a.Target.Active {
		a.CurrentMovement = a.Target.Point.Sub(a.Position).Normalize()
	}

	// Keep the body glued to slopes and ledges
	if a.Grounded {
		a.CurrentMovement[1] = 0
	} else {
		a.CurrentMovement[1] -= s.config.GroundBias
	}

	_, grounded := s.body.Move(a.CurrentMovement.Mul(a.Speed * dt))
	a.Grounded = grounded
	a.Position = s.body.Position()
}
