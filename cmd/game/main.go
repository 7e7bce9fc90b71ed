package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/isowalk/internal/application/game"
	"github.com/younwookim/isowalk/internal/application/replay"
	"github.com/younwookim/isowalk/internal/application/scene/playing"
	"github.com/younwookim/isowalk/internal/application/sim"
	"github.com/younwookim/isowalk/internal/application/system"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
	"github.com/younwookim/isowalk/internal/infrastructure/input"
	"github.com/younwookim/isowalk/internal/infrastructure/logger"
)

func main() {
	stageFlag := flag.String("stage", "demo", "Stage to load from configs/stages")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recording")
	headlessFlag := flag.Bool("headless", false, "With -replay: run without a window and log the final state")
	levelFlag := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	formatFlag := flag.String("log-format", "console", "Log format: console, text, json")
	flag.Parse()

	log := logger.Init(logger.Config{Level: *levelFlag, Format: *formatFlag})

	if err := run(log, *stageFlag, *recordFlag, *replayFlag, *headlessFlag); err != nil {
		log.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, stageName, recordPath, replayPath string, headless bool) error {
	var data *replay.ReplayData
	if replayPath != "" {
		var err error
		data, err = replay.LoadReplay(replayPath)
		if err != nil {
			return err
		}
		// a recording always plays on the stage it was made on
		stageName = data.Stage
	}

	cfg, err := loadConfig(stageName)
	if err != nil {
		return err
	}

	if headless {
		if data == nil {
			return fmt.Errorf("-headless needs -replay")
		}
		snap, err := runHeadless(cfg, *data, log)
		if err != nil {
			return err
		}
		log.Info("replay finished", "session", data.Session, "state", snap)
		return nil
	}

	return runWindowed(cfg, data, recordPath)
}

// loadConfig reads the embedded controller tunables and the named stage
func loadConfig(stageName string) (*config.GameConfig, error) {
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadAll(stageName)
}

func runWindowed(cfg *config.GameConfig, data *replay.ReplayData, recordPath string) error {
	var feed sim.Feed = input.NewSource()
	if data != nil {
		feed = replay.NewReplayer(*data)
	}

	stage := system.LoadStage(cfg.Stage, cfg.Controller.Pet.SpawnOffset.Vec())
	scene, err := playing.New(cfg, stage, playing.Options{
		Feed:       feed,
		Replaying:  data != nil,
		RecordPath: recordPath,
	})
	if err != nil {
		return err
	}

	display := cfg.Controller.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Isowalk: " + cfg.Stage.Name)
	ebiten.SetTPS(display.Framerate)

	return ebiten.RunGame(g)
}
