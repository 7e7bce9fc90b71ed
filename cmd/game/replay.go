package main

import (
	"fmt"
	"log/slog"

	"github.com/younwookim/isowalk/internal/application/replay"
	"github.com/younwookim/isowalk/internal/application/sim"
	"github.com/younwookim/isowalk/internal/application/system"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
)

// runHeadless plays data through a simulation without a window and
// returns the state after the last recorded tick
func runHeadless(cfg *config.GameConfig, data replay.ReplayData, log *slog.Logger) (sim.Snapshot, error) {
	if data.Stage != cfg.Stage.ID {
		return sim.Snapshot{}, fmt.Errorf("recording is for stage %q, loaded %q", data.Stage, cfg.Stage.ID)
	}

	stage := system.LoadStage(cfg.Stage, cfg.Controller.Pet.SpawnOffset.Vec())
	feed := replay.NewReplayer(data)

	s, err := sim.New(cfg.Controller, stage, feed, log)
	if err != nil {
		return sim.Snapshot{}, fmt.Errorf("failed to create simulation: %w", err)
	}
	s.Start()
	defer s.Stop()

	dt := 1.0 / float64(cfg.Controller.Display.Framerate)
	n := sim.Run(s, feed, dt, 0)
	log.Debug("replay stepped", "ticks", n, "recorded", feed.TotalFrames())

	return s.Snapshot(), nil
}
