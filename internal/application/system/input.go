package system

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Action names a bound input action
type Action int

const (
	ActionMove Action = iota
	ActionRun
	ActionClickToMove
	ActionPoint
	ActionCamera
	ActionDance
)

// String returns the action name used in recordings
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionRun:
		return "run"
	case ActionClickToMove:
		return "click"
	case ActionPoint:
		return "point"
	case ActionCamera:
		return "camera"
	case ActionDance:
		return "dance"
	default:
		return "unknown"
	}
}

// ParseAction is the inverse of Action.String
func ParseAction(s string) (Action, bool) {
	for a := ActionMove; a <= ActionDance; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}

// Phase is the stage of an action's interaction
type Phase int

const (
	PhaseStarted Phase = iota
	PhasePerformed
	PhaseCanceled
)

// Event is a raw device event for a bound action
type Event struct {
	Action Action
	Phase  Phase
	Value  mgl64.Vec2 // axis, pointer position or scroll delta
}

// EventHandler receives device events
type EventHandler func(Event)

// EventSource delivers device events to subscribers
type EventSource interface {
	// Subscribe registers h and returns a function that removes it
	Subscribe(h EventHandler) (unsubscribe func())
}

// Dispatcher is a synchronous EventSource.
// Handlers run on the caller's goroutine in subscription order.
type Dispatcher struct {
	handlers map[int]EventHandler
	next     int
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[int]EventHandler)}
}

// Subscribe implements EventSource
func (d *Dispatcher) Subscribe(h EventHandler) func() {
	id := d.next
	d.next++
	d.handlers[id] = h
	return func() { delete(d.handlers, id) }
}

// Emit delivers ev to every subscriber
func (d *Dispatcher) Emit(ev Event) {
	ids := make([]int, 0, len(d.handlers))
	for id := range d.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if h, ok := d.handlers[id]; ok {
			h(ev)
		}
	}
}

// Subscribers returns the number of registered handlers
func (d *Dispatcher) Subscribers() int {
	return len(d.handlers)
}

// InputAdapter translates device events into intents.
// It only listens between Start and Stop.
type InputAdapter struct {
	source      EventSource
	unsubscribe func()
	pending     InputIntent
}

// NewInputAdapter creates a stopped adapter for source
func NewInputAdapter(source EventSource) *InputAdapter {
	return &InputAdapter{source: source}
}

// Start subscribes to the event source. Calling Start twice is a no-op.
func (a *InputAdapter) Start() {
	if a.unsubscribe != nil {
		return
	}
	a.unsubscribe = a.source.Subscribe(a.handle)
}

// Stop unsubscribes from the event source and drops pending intents
func (a *InputAdapter) Stop() {
	if a.unsubscribe == nil {
		return
	}
	a.unsubscribe()
	a.unsubscribe = nil
	a.pending = nil
}

// Running reports whether the adapter is subscribed
func (a *InputAdapter) Running() bool {
	return a.unsubscribe != nil
}

// Drain returns the intents gathered since the last call
func (a *InputAdapter) Drain() InputIntent {
	out := a.pending
	a.pending = nil
	return out
}

func (a *InputAdapter) handle(ev Event) {
	if intent := translate(ev); intent != nil {
		a.pending = append(a.pending, intent)
	}
}

// translate maps a device event to an intent, or nil if the event is not bound
func translate(ev Event) Intent {
	switch ev.Action {
	case ActionMove:
		if ev.Phase == PhaseCanceled {
			return MoveIntent{}
		}
		return MoveIntent{Direction: ev.Value}
	case ActionRun:
		switch ev.Phase {
		case PhaseStarted:
			return RunIntent{Held: true}
		case PhaseCanceled:
			return RunIntent{Held: false}
		}
	case ActionClickToMove:
		switch ev.Phase {
		case PhasePerformed:
			return ClickIntent{Pointer: ev.Value}
		case PhaseCanceled:
			return ClickReleaseIntent{}
		}
	case ActionPoint:
		return PointIntent{Pointer: ev.Value}
	case ActionCamera:
		if ev.Phase == PhaseStarted {
			return ZoomIntent{Delta: ev.Value}
		}
	case ActionDance:
		if ev.Phase == PhasePerformed {
			return DanceIntent{}
		}
	}
	return nil
}
