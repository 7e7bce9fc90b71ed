package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID = entity.EntityID

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Actors  map[EntityID]*entity.Actor
	Pets    map[EntityID]*entity.Pet
	Cameras map[EntityID]*entity.CameraRig

	// Singleton references
	PlayerID EntityID
	CameraID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:  1, // 0 is "nil"
		Actors:  make(map[EntityID]*entity.Actor),
		Pets:    make(map[EntityID]*entity.Pet),
		Cameras: make(map[EntityID]*entity.CameraRig),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// CreatePlayer creates the player-controlled actor
func (w *World) CreatePlayer(pos mgl64.Vec3) *entity.Actor {
	id := w.NewEntity()
	a := entity.NewActor(id, pos)
	w.Actors[id] = a
	w.PlayerID = id
	return a
}

// CreatePet creates a companion following owner.
// The pet gets its own actor so it has a position of its own.
func (w *World) CreatePet(owner EntityID, pos mgl64.Vec3, tuning entity.PetTuning) *entity.Pet {
	id := w.NewEntity()
	w.Actors[id] = entity.NewActor(id, pos)
	p := entity.NewPet(id, owner, tuning)
	w.Pets[id] = p
	return p
}

// CreateCamera registers the main camera rig
func (w *World) CreateCamera(rig *entity.CameraRig) EntityID {
	id := w.NewEntity()
	w.Cameras[id] = rig
	w.CameraID = id
	return id
}

// Actor looks up an actor by handle
func (w *World) Actor(id EntityID) (*entity.Actor, bool) {
	a, ok := w.Actors[id]
	return a, ok
}

// Player returns the player actor, or nil if none was created
func (w *World) Player() *entity.Actor {
	return w.Actors[w.PlayerID]
}

// Camera returns the main camera rig, or nil if none was created
func (w *World) Camera() *entity.CameraRig {
	return w.Cameras[w.CameraID]
}
