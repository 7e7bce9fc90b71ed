package config

import (
	"fmt"
	"math"
)

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	WallHeight  float64                      `json:"wallHeight"`
	FloorY      float64                      `json:"floorY"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	PetSpawn    *PositionConfig              `json:"petSpawn,omitempty"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

type StageSizeConfig struct {
	Width    int     `json:"width"` // tiles along X
	Depth    int     `json:"depth"` // tiles along Z
	TileSize float64 `json:"tileSize"`
}

// PositionConfig is a point on the floor plan in world units
type PositionConfig struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type LayersConfig struct {
	Floor []string `json:"floor"` // one row per Z, one character per X
}

type TileMappingConfig struct {
	Type  string `json:"type"`
	Solid bool   `json:"solid"`
}

// Tile type names used in TileMapping
const (
	TileTypeFloor = "floor"
	TileTypeWall  = "wall"
)

// TileAt returns the mapping of the glyph at column tx of row tz.
// Columns count glyphs, not bytes. ok is false off the layer or for unmapped glyphs.
func (c *StageConfig) TileAt(tx, tz int) (TileMappingConfig, bool) {
	if tz < 0 || tz >= len(c.Layers.Floor) || tx < 0 {
		return TileMappingConfig{}, false
	}
	row := []rune(c.Layers.Floor[tz])
	if tx >= len(row) {
		return TileMappingConfig{}, false
	}
	m, ok := c.TileMapping[string(row[tx])]
	return m, ok
}

// walkableAt reports whether world point (x, z) lies on unblocked floor
func (c *StageConfig) walkableAt(x, z float64) bool {
	ts := c.Size.TileSize
	tx, tz := int(math.Floor(x/ts)), int(math.Floor(z/ts))
	if tx >= c.Size.Width || tz >= c.Size.Depth {
		return false
	}
	m, ok := c.TileAt(tx, tz)
	return ok && m.Type == TileTypeFloor && !m.Solid
}

// Validate checks the stage dimensions and that the spawn points stand on floor
func (c *StageConfig) Validate() error {
	s := c.Size
	if s.TileSize <= 0 || math.IsInf(s.TileSize, 0) || math.IsNaN(s.TileSize) {
		return fmt.Errorf("%w: stage tileSize must be positive", ErrInvalidConfig)
	}
	if s.Width <= 0 || s.Depth <= 0 {
		return fmt.Errorf("%w: stage size %dx%d must be positive", ErrInvalidConfig, s.Width, s.Depth)
	}
	if c.WallHeight < 0 {
		return fmt.Errorf("%w: wallHeight must not be negative", ErrInvalidConfig)
	}
	if !c.walkableAt(c.PlayerSpawn.X, c.PlayerSpawn.Z) {
		return fmt.Errorf("%w: playerSpawn (%v, %v) is not on walkable floor", ErrInvalidConfig, c.PlayerSpawn.X, c.PlayerSpawn.Z)
	}
	if p := c.PetSpawn; p != nil && !c.walkableAt(p.X, p.Z) {
		return fmt.Errorf("%w: petSpawn (%v, %v) is not on walkable floor", ErrInvalidConfig, p.X, p.Z)
	}
	return nil
}
