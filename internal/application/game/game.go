// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/isowalk/internal/application/scene"
	"github.com/younwookim/isowalk/internal/infrastructure/logger"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	ticks   int
}

// New creates a new Game with the given initial scene, ticking framerate
// times per second. The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH, framerate int) *Game {
	if framerate <= 0 {
		framerate = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// A scene returning scene.ErrQuit is exited and ebiten.Termination is
// returned so the run loop ends without error.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	g.ticks++
	next, err := g.current.Update(g.dt)
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		logger.L().Info("game closed", "ticks", g.ticks)
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
		logger.L().Debug("scene changed", "tick", g.ticks)
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// DT returns the fixed tick length in seconds
func (g *Game) DT() float64 {
	return g.dt
}
