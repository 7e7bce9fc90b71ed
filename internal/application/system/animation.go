package system

import "github.com/younwookim/isowalk/internal/domain/entity"

// Animation parameter names
const (
	ParamWalking = entity.ParamWalking
	ParamRunning = entity.ParamRunning
	ParamDancing = entity.ParamDancing
)

// Flags is the three-state animation flag set
type Flags struct {
	Walking bool
	Running bool
	Dancing bool
}

// FlagChange is a single parameter write
type FlagChange struct {
	Name  string
	Value bool
}

// DiffFlags returns the writes needed to move from prev to next,
// in walking, running, dancing order.
func DiffFlags(prev, next Flags) []FlagChange {
	var changes []FlagChange
	if prev.Walking != next.Walking {
		changes = append(changes, FlagChange{Name: ParamWalking, Value: next.Walking})
	}
	if prev.Running != next.Running {
		changes = append(changes, FlagChange{Name: ParamRunning, Value: next.Running})
	}
	if prev.Dancing != next.Dancing {
		changes = append(changes, FlagChange{Name: ParamDancing, Value: next.Dancing})
	}
	return changes
}

// MotionFlags derives animation flags from movement state.
// Moving always suppresses dancing.
func MotionFlags(moving, running, dancing bool) Flags {
	return Flags{
		Walking: moving,
		Running: moving && running,
		Dancing: dancing && !moving,
	}
}

// AnimationSync mirrors flags into a ParamStore, writing only on change
type AnimationSync struct {
	store ParamStore
}

// NewAnimationSync creates a sync for store
func NewAnimationSync(store ParamStore) *AnimationSync {
	return &AnimationSync{store: store}
}

// Current reads the flags last written to the store
func (s *AnimationSync) Current() Flags {
	return Flags{
		Walking: s.store.GetBool(ParamWalking),
		Running: s.store.GetBool(ParamRunning),
		Dancing: s.store.GetBool(ParamDancing),
	}
}

// Sync writes the parameters that differ from next and returns them
func (s *AnimationSync) Sync(next Flags) []FlagChange {
	changes := DiffFlags(s.Current(), next)
	for _, c := range changes {
		s.store.SetBool(c.Name, c.Value)
	}
	return changes
}
