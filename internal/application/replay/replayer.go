package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/younwookim/isowalk/internal/application/system"
)

// Replayer plays recorded device events back, one tick per Poll.
// It is an event source, so it can stand in for the live devices.
type Replayer struct {
	*system.Dispatcher
	data  ReplayData
	frame int
	next  int // index of the next FrameInput to deliver
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	sort.SliceStable(data.Frames, func(i, j int) bool {
		return data.Frames[i].F < data.Frames[j].F
	})
	return &Replayer{
		Dispatcher: system.NewDispatcher(),
		data:       data,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	for _, fi := range data.Frames {
		for _, rec := range fi.E {
			if _, err := rec.Event(); err != nil {
				return nil, fmt.Errorf("frame %d: %w", fi.F, err)
			}
		}
	}

	return &data, nil
}

// Poll emits the current frame's events and advances.
// It returns false once every frame has been played.
func (r *Replayer) Poll() bool {
	if r.frame >= r.data.TotalFrames {
		return false
	}

	for r.next < len(r.data.Frames) && r.data.Frames[r.next].F <= r.frame {
		fi := r.data.Frames[r.next]
		r.next++
		if fi.F < r.frame {
			continue
		}
		for _, rec := range fi.E {
			ev, err := rec.Event()
			if err != nil {
				continue
			}
			r.Emit(ev)
		}
	}

	r.frame++
	return true
}

// Done reports whether every frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= r.data.TotalFrames
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return r.data.TotalFrames
}

// Session returns the recorded session id
func (r *Replayer) Session() string {
	return r.data.Session
}

// Stage returns the recorded stage name
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}

// CreateTestReplayData builds replay data lasting frames ticks,
// delivering script[f] on tick f.
func CreateTestReplayData(frames int, script map[int][]system.Event) ReplayData {
	data := ReplayData{
		Version:     FormatVersion,
		Session:     uuid.NewString(),
		Stage:       "test",
		StartTime:   time.Now().Format(time.RFC3339),
		TotalFrames: frames,
	}

	for f := 0; f < frames; f++ {
		events, ok := script[f]
		if !ok {
			continue
		}
		fi := FrameInput{F: f}
		for _, ev := range events {
			fi.E = append(fi.E, NewEventRecord(ev))
		}
		data.Frames = append(data.Frames, fi)
	}

	return data
}
