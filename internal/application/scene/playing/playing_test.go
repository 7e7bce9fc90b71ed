package playing

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/isowalk/internal/application/replay"
	"github.com/younwookim/isowalk/internal/application/scene"
	"github.com/younwookim/isowalk/internal/application/state"
	"github.com/younwookim/isowalk/internal/application/system"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/infrastructure/animator"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

// createTestConfig loads the shipped controller settings and demo stage
func createTestConfig(t *testing.T) (*config.GameConfig, *entity.Stage) {
	t.Helper()
	cfg, err := config.NewLoader("../../../../cmd/game/configs").LoadAll("demo")
	require.NoError(t, err)
	return cfg, system.LoadStage(cfg.Stage, cfg.Controller.Pet.SpawnOffset.Vec())
}

func walkScript() map[int][]system.Event {
	return map[int][]system.Event{
		0:  {{Action: system.ActionMove, Phase: system.PhaseStarted, Value: mgl64.Vec2{1, 0}}},
		10: {{Action: system.ActionMove, Phase: system.PhaseCanceled}},
	}
}

func createTestPlaying(t *testing.T, frames int, opts Options) *Playing {
	t.Helper()
	cfg, stage := createTestConfig(t)
	if opts.Feed == nil {
		opts.Feed = replay.NewReplayer(replay.CreateTestReplayData(frames, walkScript()))
	}
	p, err := New(cfg, stage, opts)
	require.NoError(t, err)
	p.OnEnter()
	return p
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p := createTestPlaying(t, 10, Options{})

	assert.NotNil(t, p.Sim())
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Nil(t, p.recorder, "no recorder without a path")
	assert.Equal(t, p.Sim().Stage().Spawn, p.Sim().Player().Position)

	w, h := p.Layout(0, 0)
	assert.Equal(t, 480, w)
	assert.Equal(t, 320, h)
}

func TestNewPlaying_RequiresFeed(t *testing.T) {
	cfg, stage := createTestConfig(t)
	_, err := New(cfg, stage, Options{})
	assert.Error(t, err)
}

func TestPlaying_Update_StepsSimulation(t *testing.T) {
	p := createTestPlaying(t, 30, Options{})

	for i := 0; i < 10; i++ {
		next, err := p.Update(testDT)
		require.NoError(t, err)
		assert.Nil(t, next, "Should return nil when continuing to play")
	}

	assert.Equal(t, 10, p.Sim().Frame())
	assert.True(t, p.Sim().Player().IsMoving)
	assert.NotEqual(t, p.Sim().Stage().Spawn, p.Sim().Player().Position)
}

func TestPlaying_FeedExhausted(t *testing.T) {
	p := createTestPlaying(t, 5, Options{Replaying: true})
	assert.Equal(t, state.StateReplaying, p.State())

	for i := 0; i < 8; i++ {
		_, err := p.Update(testDT)
		require.NoError(t, err)
	}

	assert.Equal(t, state.StateReplayDone, p.State())
	assert.Equal(t, 5, p.Sim().Frame(), "no ticks after the recording ends")
	assert.Contains(t, p.hudText(), "ReplayDone")
}

func TestPlaying_EntersReplayDoneOnLastFrame(t *testing.T) {
	p := createTestPlaying(t, 5, Options{Replaying: true})

	for i := 0; i < 4; i++ {
		_, err := p.Update(testDT)
		require.NoError(t, err)
	}
	assert.Equal(t, state.StateReplaying, p.State())

	_, err := p.Update(testDT)
	require.NoError(t, err)
	assert.Equal(t, state.StateReplayDone, p.State(), "done as soon as the last frame is stepped")
	assert.Equal(t, 5, p.Sim().Frame())
}

func TestPlaying_RestartReplay(t *testing.T) {
	feed := replay.NewReplayer(replay.CreateTestReplayData(20, walkScript()))
	p := createTestPlaying(t, 0, Options{Feed: feed, Replaying: true})

	for p.State() != state.StateReplayDone {
		_, err := p.Update(testDT)
		require.NoError(t, err)
	}
	first := p.Sim().Snapshot()
	old := p.Sim()

	require.NoError(t, p.restart())
	assert.Equal(t, state.StateReplaying, p.State())
	assert.NotSame(t, old, p.Sim())
	assert.Equal(t, 0, p.Sim().Frame())
	assert.Equal(t, p.Sim().Stage().Spawn, p.Sim().Player().Position)
	assert.Equal(t, 0, feed.CurrentFrame())
	assert.Equal(t, 1, feed.Subscribers(), "the old simulation stops listening")

	for p.State() != state.StateReplayDone {
		_, err := p.Update(testDT)
		require.NoError(t, err)
	}
	assert.Equal(t, first, p.Sim().Snapshot(), "second run matches the first")
}

// liveFeed never runs out and cannot be rewound
type liveFeed struct {
	*system.Dispatcher
}

func (liveFeed) Poll() bool { return true }

func TestPlaying_RestartLiveFeed(t *testing.T) {
	p := createTestPlaying(t, 0, Options{Feed: liveFeed{system.NewDispatcher()}})
	before := p.Sim()

	_, err := p.Update(testDT)
	require.NoError(t, err)
	assert.Equal(t, state.StatePlaying, p.State(), "a live feed is never done")

	assert.ErrorIs(t, p.restart(), ErrNotRewindable)
	assert.Same(t, before, p.Sim())
}

func TestPoseLift(t *testing.T) {
	idle := animator.New()
	idle.Advance(0.125)
	assert.Zero(t, poseLift(idle, 1), "idle bodies rest on the floor")

	walk := animator.New()
	walk.SetBool(system.ParamWalking, true)
	assert.Zero(t, poseLift(walk, 1))
	walk.Advance(0.125)
	assert.InDelta(t, 0.15*0.3, poseLift(walk, 0.3), 1e-12)
	walk.Advance(0.125)
	assert.InDelta(t, 0.25, poseLift(walk, 1), 1e-12)

	run := animator.New()
	run.SetBool(system.ParamRunning, true)
	run.Advance(0.0625)
	assert.InDelta(t, 0.15, poseLift(run, 1), 1e-12, "running strides twice as fast")
	run.Advance(0.0625 * 3)
	assert.Zero(t, poseLift(run, 1), "poses loop")
}

func TestPlaying_ReplayDoesNotRecord(t *testing.T) {
	p := createTestPlaying(t, 5, Options{Replaying: true, RecordPath: filepath.Join(t.TempDir(), "r.json")})
	assert.Nil(t, p.recorder)
}

func TestPlaying_WithRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_replay.json")
	p := createTestPlaying(t, 30, Options{RecordPath: path})
	require.NotNil(t, p.recorder)
	assert.Contains(t, p.hudText(), "[REC]")

	for i := 0; i < 30; i++ {
		_, err := p.Update(testDT)
		require.NoError(t, err)
	}

	assert.Equal(t, 30, p.recorder.FrameCount())
	data := p.recorder.GetData()
	require.Len(t, data.Frames, 2, "only ticks with events are stored")
	assert.Equal(t, 0, data.Frames[0].F)
	assert.Equal(t, 10, data.Frames[1].F)

	p.OnExit()
	assert.False(t, p.recorder.IsRecording(), "leaving the scene stops recording")

	loaded, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.TotalFrames)
	assert.Equal(t, "demo", loaded.Stage)
}

func TestPlaying_RecordingReplaysIdentically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.json")
	live := createTestPlaying(t, 40, Options{RecordPath: path})
	for i := 0; i < 40; i++ {
		_, err := live.Update(testDT)
		require.NoError(t, err)
	}
	live.OnExit()

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	replayed := createTestPlaying(t, 0, Options{Feed: replay.NewReplayer(*data), Replaying: true})
	for i := 0; i < 40; i++ {
		_, err := replayed.Update(testDT)
		require.NoError(t, err)
	}

	assert.Equal(t, live.Sim().Snapshot(), replayed.Sim().Snapshot())
}

func TestPlaying_OnExit(t *testing.T) {
	p := createTestPlaying(t, 10, Options{})

	assert.NotPanics(t, func() {
		p.OnExit()
	})
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder("test")

	assert.True(t, r.IsRecording())
	assert.NotEmpty(t, r.GetData().Session)
	assert.Equal(t, replay.FormatVersion, r.GetData().Version)

	r.Stop()

	assert.False(t, r.IsRecording())
}

func TestRecorder_CapturesAttachedSource(t *testing.T) {
	d := system.NewDispatcher()
	r := NewRecorder("test")
	r.Attach(d)
	assert.Equal(t, 1, d.Subscribers())

	r.EndFrame()
	d.Emit(system.Event{Action: system.ActionDance, Phase: system.PhasePerformed})
	d.Emit(system.Event{Action: system.ActionPoint, Phase: system.PhasePerformed, Value: mgl64.Vec2{3, 4}})
	r.EndFrame()
	r.EndFrame()

	data := r.GetData()
	assert.Equal(t, 3, data.TotalFrames)
	require.Len(t, data.Frames, 1)
	assert.Equal(t, 1, data.Frames[0].F)
	assert.Equal(t, []replay.EventRecord{
		{A: "dance", P: int(system.PhasePerformed)},
		{A: "point", P: int(system.PhasePerformed), X: 3, Y: 4},
	}, data.Frames[0].E)

	r.Detach()
	assert.Equal(t, 0, d.Subscribers())
}

func TestRecorder_DoesNotRecordWhenStopped(t *testing.T) {
	d := system.NewDispatcher()
	r := NewRecorder("test")
	r.Attach(d)
	r.Stop()

	d.Emit(system.Event{Action: system.ActionDance, Phase: system.PhasePerformed})
	r.EndFrame()

	assert.Equal(t, 0, r.FrameCount())
	assert.Equal(t, 0, d.Subscribers(), "stopping detaches")
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("test")
	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrNothingRecorded)
}

func TestGenerateFilename(t *testing.T) {
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, GenerateFilename())
}
