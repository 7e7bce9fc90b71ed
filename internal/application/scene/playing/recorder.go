package playing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/younwookim/isowalk/internal/application/replay"
	"github.com/younwookim/isowalk/internal/application/system"
)

// ErrNothingRecorded is returned when saving a recording that holds no ticks
var ErrNothingRecorded = errors.New("no frames to save")

// Recorder captures the device events of every tick for replay.
// Only ticks that received events are stored.
type Recorder struct {
	data        replay.ReplayData
	recording   bool
	frame       int
	pending     []replay.EventRecord
	unsubscribe func()
}

// NewRecorder creates a recorder for stage with a fresh session id
func NewRecorder(stage string) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   replay.FormatVersion,
			Session:   uuid.NewString(),
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameInput, 0, 256),
		},
		recording: true,
	}
}

// Attach starts listening to source. A recorder listens to one source at a time.
func (r *Recorder) Attach(source system.EventSource) {
	r.Detach()
	r.unsubscribe = source.Subscribe(r.handle)
}

// Detach stops listening
func (r *Recorder) Detach() {
	if r.unsubscribe == nil {
		return
	}
	r.unsubscribe()
	r.unsubscribe = nil
}

func (r *Recorder) handle(ev system.Event) {
	if !r.recording {
		return
	}
	r.pending = append(r.pending, replay.NewEventRecord(ev))
}

// EndFrame closes the current tick, storing its events if there were any
func (r *Recorder) EndFrame() {
	if !r.recording {
		return
	}
	if len(r.pending) > 0 {
		r.data.Frames = append(r.data.Frames, replay.FrameInput{F: r.frame, E: r.pending})
		r.pending = nil
	}
	r.frame++
	r.data.TotalFrames = r.frame
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if r.data.TotalFrames == 0 {
		return ErrNothingRecorded
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording. Events of the unfinished tick are dropped.
func (r *Recorder) Stop() {
	r.recording = false
	r.pending = nil
	r.Detach()
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of ticks recorded
func (r *Recorder) FrameCount() int {
	return r.data.TotalFrames
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() replay.ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
