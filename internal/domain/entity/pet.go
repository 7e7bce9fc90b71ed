package entity

// PetTuning holds the companion's follow distances
type PetTuning struct {
	ComfortZone         float64 // distance at which a seeking pet stops
	Tether              float64 // distance the owner may move away before the pet follows
	TetherTolerance     float64 // distance beyond which the pet counts as out of bounds
	ToleranceTimerLimit float64 // seconds out of bounds before teleporting
}

// Pet is the companion's follow state.
// Owner is a non-owning handle to the actor being followed.
type Pet struct {
	ID             EntityID
	Owner          EntityID
	IsMoving       bool
	ToleranceTimer float64
	Tuning         PetTuning
}

// NewPet creates an idle pet following owner
func NewPet(id, owner EntityID, tuning PetTuning) *Pet {
	return &Pet{
		ID:     id,
		Owner:  owner,
		Tuning: tuning,
	}
}
