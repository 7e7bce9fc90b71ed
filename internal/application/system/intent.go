package system

import "github.com/go-gl/mathgl/mgl64"

// Intent represents an action the player wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent carries the latest directional axis value.
// A zero Direction means the directional input was released.
type MoveIntent struct {
	Direction mgl64.Vec2
}

func (MoveIntent) isIntent() {}

// RunIntent toggles the run modifier
type RunIntent struct {
	Held bool
}

func (RunIntent) isIntent() {}

// ClickIntent is a click-to-move press at a screen position
type ClickIntent struct {
	Pointer mgl64.Vec2
}

func (ClickIntent) isIntent() {}

// ClickReleaseIntent ends a click-to-move press
type ClickReleaseIntent struct{}

func (ClickReleaseIntent) isIntent() {}

// PointIntent reports the pointer's screen position
type PointIntent struct {
	Pointer mgl64.Vec2
}

func (PointIntent) isIntent() {}

// ZoomIntent is one scroll step
type ZoomIntent struct {
	Delta mgl64.Vec2
}

func (ZoomIntent) isIntent() {}

// DanceIntent is the dance trigger pulse
type DanceIntent struct{}

func (DanceIntent) isIntent() {}

// InputIntent is the ordered set of intents gathered during one tick.
// It is consumed once and discarded.
type InputIntent []Intent

// Empty reports whether nothing happened this tick
func (in InputIntent) Empty() bool {
	return len(in) == 0
}
