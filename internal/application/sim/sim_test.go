package sim

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/isowalk/internal/application/replay"
	"github.com/younwookim/isowalk/internal/application/system"
	"github.com/younwookim/isowalk/internal/infrastructure/animator"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

type simFixture struct {
	sim    *Simulation
	feed   *replay.Replayer
	logBuf *bytes.Buffer
}

// createTestSim builds a simulation on the demo courtyard driven by script
func createTestSim(t *testing.T, frames int, script map[int][]system.Event) *simFixture {
	t.Helper()
	loader := config.NewLoader("../../../cmd/game/configs")
	cfg, err := loader.LoadAll("demo")
	require.NoError(t, err)

	stage := system.LoadStage(cfg.Stage, cfg.Controller.Pet.SpawnOffset.Vec())
	feed := replay.NewReplayer(replay.CreateTestReplayData(frames, script))

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	s, err := New(cfg.Controller, stage, feed, log)
	require.NoError(t, err)
	s.Start()
	t.Cleanup(s.Stop)

	return &simFixture{sim: s, feed: feed, logBuf: &buf}
}

func (f *simFixture) run() int {
	return Run(f.sim, f.feed, testDT, 0)
}

func TestNew_PlacesEntities(t *testing.T) {
	f := createTestSim(t, 0, nil)

	stage := f.sim.Stage()
	assert.Equal(t, stage.Spawn, f.sim.Player().Position)
	pet, petActor := f.sim.Pet()
	assert.Equal(t, stage.PetSpawn, petActor.Position)
	assert.False(t, pet.IsMoving)
	assert.Len(t, f.sim.World().Pets, 1)
	assert.Same(t, f.sim.Camera().Rig(), f.sim.World().Camera())

	// the camera starts centred on the player
	ray := f.sim.Camera().ScreenPointToRay(240, 160)
	hit := ray.At((0 - ray.Origin.Y()) / ray.Direction.Y())
	assert.InDelta(t, stage.Spawn.X(), hit.X(), 0.01)
	assert.InDelta(t, stage.Spawn.Z(), hit.Z(), 0.01)
}

func TestSimulation_IdleIsStable(t *testing.T) {
	f := createTestSim(t, 120, nil)
	before := f.sim.Snapshot()

	assert.Equal(t, 120, f.run())

	after := f.sim.Snapshot()
	assert.Equal(t, before.Player, after.Player)
	assert.Equal(t, before.Pet, after.Pet)
	assert.Equal(t, animator.ClipIdle, after.PlayerClip)
	assert.Equal(t, animator.ClipIdle, after.PetClip)
	assert.Equal(t, 120, after.Frame)
	assert.Zero(t, after.PlayerWrites, "no flag writes while idle")
	assert.Zero(t, after.PetRemaining, "idle pet has no destination")
}

func TestSimulation_DirectionalWalk(t *testing.T) {
	f := createTestSim(t, 60, map[int][]system.Event{
		0:  {{Action: system.ActionMove, Phase: system.PhaseStarted, Value: mgl64.Vec2{0, 1}}},
		30: {{Action: system.ActionMove, Phase: system.PhaseCanceled}},
	})
	start := f.sim.Player().Position

	f.run()

	moved := f.sim.Player().Position.Sub(start)
	assert.InDelta(t, 0.5, moved.Len(), 1e-6, "30 ticks at walk speed")
	assert.InDelta(t, moved.X(), moved.Z(), 1e-9, "forward is diagonal on the floor")
	assert.False(t, f.sim.Player().IsMoving)
	assert.Equal(t, animator.ClipIdle, f.sim.PlayerAnimator().Clip())
	assert.Equal(t, 2, f.sim.Snapshot().PlayerWrites, "walking set once and cleared once")
}

func TestSimulation_ClickToMoveAndPetFollows(t *testing.T) {
	target := mgl64.Vec3{3.5, 0, 9.5}

	// aim at the target through the starting camera
	aim := createTestSim(t, 0, nil)
	sx, sy, _ := aim.sim.Camera().WorldToScreen(target)
	pointer := mgl64.Vec2{sx, sy}

	f := createTestSim(t, 600, map[int][]system.Event{
		0: {
			{Action: system.ActionRun, Phase: system.PhaseStarted},
			{Action: system.ActionPoint, Phase: system.PhasePerformed, Value: pointer},
			{Action: system.ActionClickToMove, Phase: system.PhasePerformed, Value: pointer},
		},
		1: {{Action: system.ActionClickToMove, Phase: system.PhaseCanceled, Value: pointer}},
	})

	f.run()

	snap := f.sim.Snapshot()
	assert.LessOrEqual(t, snap.Player.Sub(target).Len(), 0.1, "arrived at the clicked point")
	assert.False(t, snap.Moving)
	assert.False(t, snap.Target.Active)

	assert.False(t, snap.PetMoving, "pet settled")
	assert.LessOrEqual(t, snap.PetRemaining, f.sim.cfg.Pet.ComfortZone+1e-6, "agent stopped short of its last destination")
	assert.LessOrEqual(t, snap.Pet.Sub(snap.Player).Len(), 5.0, "pet within tether")
	assert.Zero(t, snap.Teleports)

	desired := snap.Player.Add(f.sim.Camera().Rig().Offset)
	assert.InDelta(t, 0, desired.Sub(snap.Camera).Len(), 1e-3, "camera caught up")
}

func TestSimulation_ZoomAndDance(t *testing.T) {
	f := createTestSim(t, 10, map[int][]system.Event{
		0: {{Action: system.ActionCamera, Phase: system.PhaseStarted, Value: mgl64.Vec2{0, -1}}},
		1: {{Action: system.ActionDance, Phase: system.PhasePerformed}},
	})

	f.run()

	snap := f.sim.Snapshot()
	assert.Equal(t, 15.0, snap.OrthoSize)
	assert.True(t, snap.Dancing)
	assert.Equal(t, animator.ClipDance, snap.PlayerClip)
	assert.Equal(t, animator.ClipDance, snap.PetClip, "idle pet dances along")
}

func TestSimulation_StuckPetTeleports(t *testing.T) {
	f := createTestSim(t, 400, nil)
	pet, petActor := f.sim.Pet()

	// strand the pet in a hole where it cannot path
	f.sim.agent.Warp(mgl64.Vec3{11.5, 0, 8.5})
	petActor.Position = f.sim.agent.Position()
	require.Greater(t, petActor.Position.Sub(f.sim.Player().Position).Len(), pet.Tuning.Tether)

	f.run()

	snap := f.sim.Snapshot()
	assert.Equal(t, 1, snap.Teleports)
	assert.Contains(t, f.logBuf.String(), "pet teleported")
	assert.False(t, snap.PetMoving)
	assert.Zero(t, snap.PetRemaining, "warp clears the destination")
}

func TestSimulation_Deterministic(t *testing.T) {
	script := map[int][]system.Event{
		0:   {{Action: system.ActionMove, Phase: system.PhaseStarted, Value: mgl64.Vec2{1, 0}}},
		20:  {{Action: system.ActionRun, Phase: system.PhaseStarted}},
		50:  {{Action: system.ActionMove, Phase: system.PhasePerformed, Value: mgl64.Vec2{0, 1}}},
		90:  {{Action: system.ActionMove, Phase: system.PhaseCanceled}},
		100: {{Action: system.ActionDance, Phase: system.PhasePerformed}},
	}

	a := createTestSim(t, 200, script)
	b := createTestSim(t, 200, script)
	a.run()
	b.run()

	assert.Equal(t, a.sim.Snapshot(), b.sim.Snapshot())
}

func TestSnapshot_LogValue(t *testing.T) {
	f := createTestSim(t, 1, nil)
	f.run()

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("done", "state", f.sim.Snapshot())

	assert.Contains(t, buf.String(), "state.frame=1")
	assert.Contains(t, buf.String(), "state.playerClip=idle")
	assert.Contains(t, buf.String(), "state.playerWrites=0")
	assert.Contains(t, buf.String(), "state.petRemaining=0")
}

func TestSimulation_SharedParamNamesDriveClips(t *testing.T) {
	tests := []struct {
		param string
		want  animator.Clip
	}{
		{system.ParamWalking, animator.ClipWalk},
		{system.ParamRunning, animator.ClipRun},
		{system.ParamDancing, animator.ClipDance},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			a := animator.New()
			a.SetBool(tt.param, true)
			assert.Equal(t, tt.want, a.Clip())
		})
	}
}
