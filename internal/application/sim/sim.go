// Package sim wires the motion, camera and companion systems into one
// deterministic tick, independent of rendering.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/application/system"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/ecs"
	"github.com/younwookim/isowalk/internal/infrastructure/animator"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
	"github.com/younwookim/isowalk/internal/infrastructure/navigation"
	"github.com/younwookim/isowalk/internal/infrastructure/physics"
)

// Feed is an event source that is pumped once per tick
type Feed interface {
	system.EventSource
	// Poll delivers the tick's events. It returns false when the feed is exhausted.
	Poll() bool
}

// Simulation owns the world and runs the systems in tick order
type Simulation struct {
	cfg   *config.ControllerConfig
	stage *entity.Stage
	world *ecs.World
	log   *slog.Logger

	input     *system.InputAdapter
	motion    *system.MotionSystem
	camera    *system.CameraSystem
	companion *system.CompanionSystem
	agent     *navigation.GridAgent
	petActor  *entity.Actor

	playerAnim *animator.Animator
	petAnim    *animator.Animator

	frame     int
	teleports int
}

// New builds a simulation on stage listening to source
func New(cfg *config.ControllerConfig, stage *entity.Stage, source system.EventSource, log *slog.Logger) (*Simulation, error) {
	world := ecs.NewWorld()

	player := world.CreatePlayer(stage.Spawn)
	rig := system.NewCameraRig(&cfg.Camera, player.Position)
	world.CreateCamera(rig)
	camera := system.NewCameraSystem(rig, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)

	playerAnim := animator.New()
	motion, err := system.NewMotionSystem(
		&cfg.Movement,
		player,
		physics.NewCharacterBody(stage, stage.Spawn, physics.DefaultRadius),
		physics.NewStageRaycaster(stage),
		camera,
		playerAnim,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	pet := world.CreatePet(player.ID, stage.PetSpawn, entity.PetTuning{
		ComfortZone:         cfg.Pet.ComfortZone,
		Tether:              cfg.Pet.Tether,
		TetherTolerance:     cfg.Pet.TetherTolerance,
		ToleranceTimerLimit: cfg.Pet.ToleranceTimerLimit,
	})
	agent := navigation.NewGridAgent(stage, stage.PetSpawn)
	petAnim := animator.New()
	companion, err := system.NewCompanionSystem(world, pet.ID, agent, petAnim)
	if err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	petActor, _ := world.Actor(pet.ID)

	s := &Simulation{
		cfg:        cfg,
		stage:      stage,
		world:      world,
		log:        log,
		input:      system.NewInputAdapter(source),
		motion:     motion,
		camera:     camera,
		companion:  companion,
		agent:      agent,
		petActor:   petActor,
		playerAnim: playerAnim,
		petAnim:    petAnim,
	}
	companion.OnTeleport = s.onTeleport
	return s, nil
}

// Start begins listening for input
func (s *Simulation) Start() {
	s.input.Start()
}

// Stop stops listening for input and drops anything not yet applied
func (s *Simulation) Stop() {
	s.input.Stop()
}

// Step advances the world by one tick:
// intents, player motion, camera follow, pet decision, pet navigation.
func (s *Simulation) Step(dt float64) {
	for _, in := range s.input.Drain() {
		s.camera.Handle(in)
		s.motion.Handle(in)
	}

	s.motion.Update(dt)
	s.camera.Update(s.motion.Actor().Position, dt)

	s.companion.Update(dt)
	s.agent.Step(dt)
	s.petActor.Position = s.agent.Position()
	if v := entity.Horizontal(s.agent.Velocity()); v.LenSqr() > 0 {
		s.petActor.Facing = entity.Slerp(s.petActor.Facing, entity.LookRotation(v), s.cfg.Movement.RotationRate*dt)
	}

	s.playerAnim.Advance(dt)
	s.petAnim.Advance(dt)
	s.frame++
}

// Run pumps feed and steps until the feed is exhausted or maxFrames ticks
// have run (maxFrames <= 0 means no limit). It returns the ticks stepped.
func Run(s *Simulation, feed Feed, dt float64, maxFrames int) int {
	n := 0
	for maxFrames <= 0 || n < maxFrames {
		if !feed.Poll() {
			break
		}
		s.Step(dt)
		n++
	}
	return n
}

func (s *Simulation) onTeleport(from, to mgl64.Vec3) {
	s.teleports++
	s.log.Info("pet teleported",
		"frame", s.frame,
		"from", from,
		"to", to,
	)
}

// Frame returns the number of ticks stepped
func (s *Simulation) Frame() int { return s.frame }

// Stage returns the floor plan
func (s *Simulation) Stage() *entity.Stage { return s.stage }

// World returns the entity registry
func (s *Simulation) World() *ecs.World { return s.world }

// Player returns the player actor
func (s *Simulation) Player() *entity.Actor { return s.motion.Actor() }

// Pet returns the companion state and its actor
func (s *Simulation) Pet() (*entity.Pet, *entity.Actor) {
	return s.companion.Pet(), s.petActor
}

// Camera returns the camera system
func (s *Simulation) Camera() *system.CameraSystem { return s.camera }

// PlayerAnimator returns the player's animation parameters
func (s *Simulation) PlayerAnimator() *animator.Animator { return s.playerAnim }

// PetAnimator returns the pet's animation parameters
func (s *Simulation) PetAnimator() *animator.Animator { return s.petAnim }

// Snapshot is the observable state after a tick
type Snapshot struct {
	Frame          int
	Player         mgl64.Vec3
	Heading        mgl64.Vec3
	Moving         bool
	Running        bool
	Dancing        bool
	Target         entity.ClickTarget
	Pet            mgl64.Vec3
	PetMoving      bool
	PetRemaining   float64
	ToleranceTimer float64
	Teleports      int
	Camera         mgl64.Vec3
	OrthoSize      float64
	PlayerClip     animator.Clip
	PetClip        animator.Clip
	PlayerWrites   int
}

// Snapshot captures the current state
func (s *Simulation) Snapshot() Snapshot {
	p := s.motion.Actor()
	pet := s.companion.Pet()
	rig := s.camera.Rig()
	return Snapshot{
		Frame:          s.frame,
		Player:         p.Position,
		Heading:        p.Heading(),
		Moving:         p.IsMoving,
		Running:        p.IsRunning,
		Dancing:        p.IsDancing,
		Target:         p.Target,
		Pet:            s.petActor.Position,
		PetMoving:      pet.IsMoving,
		PetRemaining:   s.agent.RemainingDistance(),
		ToleranceTimer: pet.ToleranceTimer,
		Teleports:      s.teleports,
		Camera:         rig.Position,
		OrthoSize:      rig.OrthoSize,
		PlayerClip:     s.playerAnim.Clip(),
		PetClip:        s.petAnim.Clip(),
		PlayerWrites:   s.playerAnim.Writes(),
	}
}

// LogValue implements slog.LogValuer
func (ss Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frame", ss.Frame),
		slog.String("player", fmt.Sprintf("%.3f,%.3f,%.3f", ss.Player.X(), ss.Player.Y(), ss.Player.Z())),
		slog.String("playerClip", ss.PlayerClip.String()),
		slog.String("pet", fmt.Sprintf("%.3f,%.3f,%.3f", ss.Pet.X(), ss.Pet.Y(), ss.Pet.Z())),
		slog.String("petClip", ss.PetClip.String()),
		slog.Float64("petRemaining", ss.PetRemaining),
		slog.Int("playerWrites", ss.PlayerWrites),
		slog.Int("teleports", ss.Teleports),
		slog.Float64("orthoSize", ss.OrthoSize),
	)
}
