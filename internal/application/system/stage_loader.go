package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/isowalk/internal/domain/entity"
	"github.com/younwookim/isowalk/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity. cfg is expected to
// have passed Validate; negative sizes yield an empty floor plan.
// Without an explicit pet spawn the pet starts at the player spawn plus petOffset.
func LoadStage(cfg *config.StageConfig, petOffset mgl64.Vec3) *entity.Stage {
	width := cfg.Size.Width
	depth := cfg.Size.Depth

	tiles := make([][]entity.Tile, max(depth, 0))
	for z := range tiles {
		tiles[z] = make([]entity.Tile, max(width, 0))
		for x := range tiles[z] {
			mapping, ok := cfg.TileAt(x, z)
			if !ok {
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case config.TileTypeFloor:
				tileType = entity.TileFloor
			case config.TileTypeWall:
				tileType = entity.TileWall
			default:
				tileType = entity.TileEmpty
			}

			tiles[z][x] = entity.Tile{
				Type:  tileType,
				Solid: mapping.Solid,
			}
		}
	}

	spawn := mgl64.Vec3{cfg.PlayerSpawn.X, cfg.FloorY, cfg.PlayerSpawn.Z}
	petSpawn := spawn.Add(petOffset)
	if cfg.PetSpawn != nil {
		petSpawn = mgl64.Vec3{cfg.PetSpawn.X, cfg.FloorY, cfg.PetSpawn.Z}
	}

	return &entity.Stage{
		Width:      width,
		Depth:      depth,
		TileSize:   cfg.Size.TileSize,
		FloorY:     cfg.FloorY,
		WallHeight: cfg.WallHeight,
		Tiles:      tiles,
		Spawn:      spawn,
		PetSpawn:   petSpawn,
	}
}
