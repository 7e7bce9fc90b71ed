// Package scene defines the Scene interface for game screens.
//
// Each screen implements Scene to handle its own update logic and
// rendering. The game loop owns the current scene and swaps it when
// Update returns a successor.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update to end the game normally
var ErrQuit = errors.New("quit")

// Scene represents a game screen
type Scene interface {
	// Update advances the scene by one fixed tick of dt seconds.
	// Returns the next scene if a transition is needed, nil to stay on the current scene.
	// Returns ErrQuit to close the game, any other error to abort it.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, including on quit.
	// Use this for saving state or resource release.
	OnExit()
}
