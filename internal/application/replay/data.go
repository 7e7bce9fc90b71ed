package replay

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/application/system"
)

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// ErrUnknownAction is returned when a recording names an action this build does not bind
var ErrUnknownAction = errors.New("unknown action")

// EventRecord is one recorded device event
type EventRecord struct {
	A string  `json:"a"`           // Action name
	P int     `json:"p"`           // Phase
	X float64 `json:"x,omitempty"` // Value X
	Y float64 `json:"y,omitempty"` // Value Y
}

// NewEventRecord captures ev
func NewEventRecord(ev system.Event) EventRecord {
	return EventRecord{
		A: ev.Action.String(),
		P: int(ev.Phase),
		X: ev.Value.X(),
		Y: ev.Value.Y(),
	}
}

// Event restores the recorded device event
func (r EventRecord) Event() (system.Event, error) {
	action, ok := system.ParseAction(r.A)
	if !ok {
		return system.Event{}, fmt.Errorf("%w: %q", ErrUnknownAction, r.A)
	}
	return system.Event{
		Action: action,
		Phase:  system.Phase(r.P),
		Value:  mgl64.Vec2{r.X, r.Y},
	}, nil
}

// FrameInput holds the events delivered during one tick.
// Ticks without events are not stored.
type FrameInput struct {
	F int           `json:"f"` // Frame number
	E []EventRecord `json:"e"`
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version     string       `json:"version"`
	Session     string       `json:"session"`
	Stage       string       `json:"stage"`
	StartTime   string       `json:"startTime"`
	TotalFrames int          `json:"totalFrames"`
	Frames      []FrameInput `json:"frames"`
}
