// Package playing provides the main gameplay scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/younwookim/isowalk/internal/application/scene"
	"github.com/younwookim/isowalk/internal/application/sim"
	"github.com/younwookim/isowalk/internal/application/state"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/infrastructure/animator"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
	"github.com/younwookim/isowalk/internal/infrastructure/logger"
)

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorFloor   = color.RGBA{70, 90, 80, 255}
	colorWall    = color.RGBA{120, 120, 150, 255}
	colorPlayer  = color.RGBA{100, 200, 100, 255}
	colorPet     = color.RGBA{230, 180, 90, 255}
	colorFacing  = color.RGBA{255, 255, 255, 255}
	colorTarget  = color.RGBA{255, 215, 0, 255}
	colorOverlay = color.RGBA{0, 0, 0, 128}
)

// ErrNotRewindable is returned when restarting a scene whose feed cannot be replayed
var ErrNotRewindable = errors.New("input feed cannot be rewound")

// rewinder is a feed that knows its end and can be played again
type rewinder interface {
	Done() bool
	Reset()
}

// Options selects where input comes from and whether it is recorded
type Options struct {
	// Feed supplies device events. Required.
	Feed sim.Feed
	// Replaying marks Feed as a recording being played back
	Replaying bool
	// RecordPath enables recording of live input to this file
	RecordPath string
}

// Playing is the main gameplay scene
type Playing struct {
	config  *config.GameConfig
	sim     *sim.Simulation
	feed    sim.Feed
	state   state.GameState
	resume  state.GameState
	screenW int
	screenH int
	log     *slog.Logger

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene on stage.
func New(cfg *config.GameConfig, stage *entity.Stage, opts Options) (*Playing, error) {
	if opts.Feed == nil {
		return nil, fmt.Errorf("playing scene: no input feed")
	}

	log := logger.L().With("stage", cfg.Stage.ID)
	s, err := sim.New(cfg.Controller, stage, opts.Feed, log)
	if err != nil {
		return nil, fmt.Errorf("playing scene: %w", err)
	}

	p := &Playing{
		config:         cfg,
		sim:            s,
		feed:           opts.Feed,
		state:          state.StatePlaying,
		screenW:        cfg.Controller.Display.ScreenWidth,
		screenH:        cfg.Controller.Display.ScreenHeight,
		log:            log,
		recordFilename: opts.RecordPath,
	}
	if opts.Replaying {
		p.state = state.StateReplaying
	}

	if opts.RecordPath != "" && !opts.Replaying {
		p.recorder = NewRecorder(cfg.Stage.ID)
		p.recorder.Attach(opts.Feed)
		log.Info("recording enabled", "path", opts.RecordPath, "session", p.recorder.GetData().Session)
	}

	return p, nil
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Sim returns the running simulation
func (p *Playing) Sim() *sim.Simulation {
	return p.sim
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	switch p.state {
	case state.StatePlaying, state.StateReplaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.resume = p.state
			p.state = state.StatePaused
			return nil, nil
		}
		// F5: Save recording manually
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		p.tick(dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = p.resume
		}
	case state.StateReplayDone:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return nil, scene.ErrQuit
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := p.restart(); err != nil {
				p.log.Warn("cannot restart", "error", err)
			}
		}
	}

	return nil, nil
}

func (p *Playing) tick(dt float64) {
	if !p.feed.Poll() {
		p.finish()
		return
	}

	p.sim.Step(dt)

	if p.recorder != nil {
		p.recorder.EndFrame()
	}
	if rw, ok := p.feed.(rewinder); ok && rw.Done() {
		p.finish()
	}
}

func (p *Playing) finish() {
	p.state = state.StateReplayDone
	p.log.Info("input exhausted", "state", p.sim.Snapshot())
}

// restart rewinds the feed and plays it again on a fresh simulation
func (p *Playing) restart() error {
	rw, ok := p.feed.(rewinder)
	if !ok {
		return ErrNotRewindable
	}

	s, err := sim.New(p.config.Controller, p.sim.Stage(), p.feed, p.log)
	if err != nil {
		return fmt.Errorf("failed to restart: %w", err)
	}
	p.sim.Stop()
	rw.Reset()

	p.sim = s
	p.sim.Start()
	p.state = state.StateReplaying
	p.log.Info("replay restarted")
	return nil
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.log.Error("failed to save recording", "path", filename, "error", err)
		return
	}
	p.log.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawTiles(screen)
	p.drawTarget(screen)
	p.drawCharacters(screen)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateReplayDone:
		p.drawOverlay(screen, "REPLAY FINISHED\n\nR: Replay | ESC: Quit")
	}
}

func (p *Playing) project(v mgl64.Vec3) (float32, float32) {
	x, y, _ := p.sim.Camera().WorldToScreen(v)
	return float32(x), float32(y)
}

func (p *Playing) line(screen *ebiten.Image, a, b mgl64.Vec3, c color.Color) {
	x0, y0 := p.project(a)
	x1, y1 := p.project(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, false)
}

// drawTiles outlines every floor tile and draws walls as raised boxes
func (p *Playing) drawTiles(screen *ebiten.Image) {
	st := p.sim.Stage()
	ts := st.TileSize
	for tz := 0; tz < st.Depth; tz++ {
		for tx := 0; tx < st.Width; tx++ {
			tile := st.GetTile(tx, tz)
			x0, z0 := float64(tx)*ts, float64(tz)*ts
			corners := [4]mgl64.Vec3{
				{x0, st.FloorY, z0},
				{x0 + ts, st.FloorY, z0},
				{x0 + ts, st.FloorY, z0 + ts},
				{x0, st.FloorY, z0 + ts},
			}

			switch tile.Type {
			case entity.TileFloor:
				for i := range corners {
					p.line(screen, corners[i], corners[(i+1)%4], colorFloor)
				}
			case entity.TileWall:
				up := mgl64.Vec3{0, st.WallHeight, 0}
				for i := range corners {
					p.line(screen, corners[i].Add(up), corners[(i+1)%4].Add(up), colorWall)
					p.line(screen, corners[i], corners[i].Add(up), colorWall)
				}
			}
		}
	}
}

func (p *Playing) drawTarget(screen *ebiten.Image) {
	target := p.sim.Player().Target
	if !target.Active {
		return
	}
	x, y := p.project(target.Point)
	r := float32(p.sim.Camera().ScreenLength(0.2))
	vector.StrokeLine(screen, x-r, y, x+r, y, 1, colorTarget, false)
	vector.StrokeLine(screen, x, y-r, x, y+r, 1, colorTarget, false)

	// arrival ring
	ring := float32(p.sim.Camera().ScreenLength(p.config.Controller.Movement.TargetThreshold))
	vector.StrokeCircle(screen, x, y, ring, 1, colorTarget, true)
}

// drawCharacters draws the player and pet far to near
func (p *Playing) drawCharacters(screen *ebiten.Image) {
	player := p.sim.Player()
	_, pet := p.sim.Pet()

	type figure struct {
		actor  *entity.Actor
		anim   *animator.Animator
		radius float64
		c      color.Color
	}
	figs := []figure{
		{player, p.sim.PlayerAnimator(), 0.3, colorPlayer},
		{pet, p.sim.PetAnimator(), 0.2, colorPet},
	}

	_, _, dPlayer := p.sim.Camera().WorldToScreen(player.Position)
	_, _, dPet := p.sim.Camera().WorldToScreen(pet.Position)
	if dPlayer > dPet {
		figs[0], figs[1] = figs[1], figs[0]
	}

	for _, f := range figs {
		center := f.actor.Position.Add(mgl64.Vec3{0, f.radius + poseLift(f.anim, f.radius), 0})
		x, y := p.project(center)
		r := float32(p.sim.Camera().ScreenLength(f.radius))
		vector.DrawFilledCircle(screen, x, y, r, f.c, true)
		p.line(screen, center, center.Add(f.actor.Heading().Mul(f.radius*1.5)), colorFacing)
	}
}

// stridePoses is the body lift of each pose, in radii
var stridePoses = [...]float64{0, 0.15, 0.25, 0.15}

const poseFPS = 8

// poseLift returns how far the active clip's current pose raises a body of radius
func poseLift(a *animator.Animator, radius float64) float64 {
	fps := float64(poseFPS)
	switch a.Clip() {
	case animator.ClipIdle:
		return 0
	case animator.ClipRun:
		fps *= 2
	}
	return stridePoses[a.Frame(fps, len(stridePoses))] * radius
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, p.hudText())
}

// hudText is the status line shown in the top left corner
func (p *Playing) hudText() string {
	snap := p.sim.Snapshot()
	text := fmt.Sprintf("%s  frame %d  zoom %.0f\nplayer %s  pet %s",
		p.state, snap.Frame, snap.OrthoSize, snap.PlayerClip, snap.PetClip)
	if p.recorder != nil && p.recorder.IsRecording() {
		text += "  [REC]"
	}
	if p.state == state.StatePlaying {
		text += "\nWASD: Move | Shift: Run | Click: Go | Wheel: Zoom | F: Dance | ESC: Pause"
	}
	return text
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.sim.Start()
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.sim.Stop()
	if p.recorder != nil {
		p.recorder.Stop()
	}
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
