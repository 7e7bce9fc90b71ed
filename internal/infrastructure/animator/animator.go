package animator

import "github.com/younwookim/isowalk/internal/domain/entity"

// Clip is the animation state chosen from the boolean parameters
type Clip int

const (
	ClipIdle Clip = iota
	ClipWalk
	ClipRun
	ClipDance
)

func (c Clip) String() string {
	switch c {
	case ClipWalk:
		return "walk"
	case ClipRun:
		return "run"
	case ClipDance:
		return "dance"
	default:
		return "idle"
	}
}

// Animator is a named-boolean parameter store driving a tiny state machine.
// It satisfies the animation parameter interface used by the motion systems.
type Animator struct {
	params map[string]bool
	clip   Clip
	time   float64 // seconds spent in the current clip
	writes int
}

// New creates an animator with every parameter false
func New() *Animator {
	return &Animator{params: make(map[string]bool)}
}

// GetBool returns a parameter, false if it was never set
func (a *Animator) GetBool(name string) bool {
	return a.params[name]
}

// SetBool sets a parameter and re-evaluates the clip
func (a *Animator) SetBool(name string, v bool) {
	a.params[name] = v
	a.writes++

	next := a.evaluate()
	if next != a.clip {
		a.clip = next
		a.time = 0
	}
}

// Writes returns how many times SetBool was called
func (a *Animator) Writes() int {
	return a.writes
}

// Advance moves the current clip forward by dt
func (a *Animator) Advance(dt float64) {
	a.time += dt
}

// Clip returns the active clip
func (a *Animator) Clip() Clip {
	return a.clip
}

// Frame returns the frame index of the active clip at fps, looping over n frames
func (a *Animator) Frame(fps float64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(a.time*fps) % n
}

func (a *Animator) evaluate() Clip {
	switch {
	case a.params[entity.ParamRunning]:
		return ClipRun
	case a.params[entity.ParamWalking]:
		return ClipWalk
	case a.params[entity.ParamDancing]:
		return ClipDance
	default:
		return ClipIdle
	}
}
