// Package input turns keyboard and mouse state into bound action events.
package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/isowalk/internal/application/system"
)

// State is the device state sampled once per tick
type State struct {
	Axis   mgl64.Vec2 // WASD / arrows, normalized
	Run    bool
	Click  bool
	Cursor mgl64.Vec2
	Wheel  mgl64.Vec2
	Dance  bool
}

// ReadState samples the keyboard and mouse through ebiten
func ReadState() State {
	var axis mgl64.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		axis[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		axis[1]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		axis[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		axis[0]--
	}
	if axis.LenSqr() > 0 {
		axis = axis.Normalize()
	}

	mx, my := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()

	return State{
		Axis:   axis,
		Run:    ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		Click:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Cursor: mgl64.Vec2{float64(mx), float64(my)},
		Wheel:  mgl64.Vec2{wx, wy},
		Dance:  ebiten.IsKeyPressed(ebiten.KeyF),
	}
}

// Source emits action events for changes between successive device states
type Source struct {
	*system.Dispatcher
	prev State
}

// NewSource creates a source with nothing held
func NewSource() *Source {
	return &Source{Dispatcher: system.NewDispatcher()}
}

// Poll samples the devices and emits the resulting events.
// Live devices never run out, so it always returns true.
func (s *Source) Poll() bool {
	s.Feed(ReadState())
	return true
}

// Feed emits the events for moving from the previous state to cur
func (s *Source) Feed(cur State) {
	prev := s.prev
	s.prev = cur

	if cur.Axis != prev.Axis {
		switch {
		case prev.Axis == (mgl64.Vec2{}):
			s.emit(system.ActionMove, system.PhaseStarted, cur.Axis)
		case cur.Axis == (mgl64.Vec2{}):
			s.emit(system.ActionMove, system.PhaseCanceled, cur.Axis)
		default:
			s.emit(system.ActionMove, system.PhasePerformed, cur.Axis)
		}
	}

	if cur.Run != prev.Run {
		if cur.Run {
			s.emit(system.ActionRun, system.PhaseStarted, mgl64.Vec2{})
		} else {
			s.emit(system.ActionRun, system.PhaseCanceled, mgl64.Vec2{})
		}
	}

	if cur.Cursor != prev.Cursor {
		s.emit(system.ActionPoint, system.PhasePerformed, cur.Cursor)
	}

	if cur.Click != prev.Click {
		if cur.Click {
			s.emit(system.ActionClickToMove, system.PhasePerformed, cur.Cursor)
		} else {
			s.emit(system.ActionClickToMove, system.PhaseCanceled, cur.Cursor)
		}
	}

	if cur.Wheel != (mgl64.Vec2{}) {
		s.emit(system.ActionCamera, system.PhaseStarted, cur.Wheel)
	}

	if cur.Dance && !prev.Dance {
		s.emit(system.ActionDance, system.PhasePerformed, mgl64.Vec2{})
	}
}

func (s *Source) emit(a system.Action, p system.Phase, v mgl64.Vec2) {
	s.Emit(system.Event{Action: a, Phase: p, Value: v})
}
