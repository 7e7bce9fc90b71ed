package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileFloor
	TileWall
)

// Tile represents a single cell of the stage floor plan
type Tile struct {
	Type  TileType
	Solid bool
}

// Walkable reports whether actors can stand on the tile
func (t Tile) Walkable() bool {
	return t.Type == TileFloor && !t.Solid
}

// Stage is the floor plan of the world on the XZ plane.
// Tile (tx, tz) covers x in [tx*TileSize, (tx+1)*TileSize) and likewise for z.
// The floor surface sits at FloorY; solid tiles are wall columns of WallHeight.
type Stage struct {
	Width      int
	Depth      int
	TileSize   float64
	FloorY     float64
	WallHeight float64
	Tiles      [][]Tile // indexed [tz][tx]
	Spawn      mgl64.Vec3
	PetSpawn   mgl64.Vec3
}

// GetTile returns the tile at the given tile coordinates
func (s *Stage) GetTile(tx, tz int) Tile {
	if tx < 0 || tx >= s.Width || tz < 0 || tz >= s.Depth {
		return Tile{Type: TileEmpty}
	}
	return s.Tiles[tz][tx]
}

// TileCoords converts world x/z into tile coordinates
func (s *Stage) TileCoords(x, z float64) (int, int) {
	if !(s.TileSize > 0) {
		return -1, -1
	}
	return int(math.Floor(x / s.TileSize)), int(math.Floor(z / s.TileSize))
}

// TileCenter returns the world position at the center of a tile, on the floor
func (s *Stage) TileCenter(tx, tz int) mgl64.Vec3 {
	return mgl64.Vec3{
		(float64(tx) + 0.5) * s.TileSize,
		s.FloorY,
		(float64(tz) + 0.5) * s.TileSize,
	}
}

// GetTileAt returns the tile under world x/z
func (s *Stage) GetTileAt(x, z float64) Tile {
	tx, tz := s.TileCoords(x, z)
	return s.GetTile(tx, tz)
}

// IsSolidAt checks if the tile under world x/z is a wall
func (s *Stage) IsSolidAt(x, z float64) bool {
	return s.GetTileAt(x, z).Solid
}

// HasFloorAt checks if there is walkable floor under world x/z
func (s *Stage) HasFloorAt(x, z float64) bool {
	return s.GetTileAt(x, z).Walkable()
}
