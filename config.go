package glade

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the tunable knobs of a world. The zero value is not usable;
// start from DefaultConfig or LoadConfig.
type Config struct {
	// TileWidth and TileHeight are the screen size of one grid cell at zoom 1.
	TileWidth  float64 `toml:"tile_width"`
	TileHeight float64 `toml:"tile_height"`

	// CacheCapacity is the maximum number of cached entity bitmaps.
	CacheCapacity int `toml:"cache_capacity"`

	// BlockSize is the number of interior cells per city block edge and
	// RoadWidth the cells of road between blocks.
	BlockSize int `toml:"block_size"`
	RoadWidth int `toml:"road_width"`

	// NPCCellsPer spawns one walker per this many drivable road cells.
	// NPCMaxCount caps the population and NPCMinCells suppresses spawning
	// entirely while the road network is below the threshold.
	NPCCellsPer int     `toml:"npc_cells_per"`
	NPCMaxCount int     `toml:"npc_max_count"`
	NPCMinCells int     `toml:"npc_min_cells"`
	NPCSpeed    float64 `toml:"npc_speed"`

	// Theme is the renderer bundle selected at construction.
	Theme string `toml:"theme"`

	// Debug enables per-second frame statistics logging.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the documented defaults: 64x32 tiles, 128 cached
// bitmaps, 3-cell blocks with 1-cell roads, and the city theme.
func DefaultConfig() Config {
	return Config{
		TileWidth:     64,
		TileHeight:    32,
		CacheCapacity: 128,
		BlockSize:     3,
		RoadWidth:     1,
		NPCCellsPer:   6,
		NPCMaxCount:   24,
		NPCMinCells:   10,
		NPCSpeed:      1.5,
		Theme:         "city",
	}
}

// LoadConfig decodes a TOML file over the defaults, so a partial file only
// overrides the keys it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("glade: failed to load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects configurations the renderer cannot run with.
func (c *Config) validate() error {
	switch {
	case c.TileWidth <= 0 || c.TileHeight <= 0:
		return fmt.Errorf("glade: tile size must be positive, got %gx%g", c.TileWidth, c.TileHeight)
	case c.CacheCapacity < 1:
		return fmt.Errorf("glade: cache capacity must be at least 1, got %d", c.CacheCapacity)
	case c.BlockSize < 1:
		return fmt.Errorf("glade: block size must be at least 1, got %d", c.BlockSize)
	case c.RoadWidth < 1:
		return fmt.Errorf("glade: road width must be at least 1, got %d", c.RoadWidth)
	case c.NPCCellsPer < 1:
		return fmt.Errorf("glade: npc_cells_per must be at least 1, got %d", c.NPCCellsPer)
	case c.NPCSpeed < 0:
		return fmt.Errorf("glade: npc_speed must not be negative, got %g", c.NPCSpeed)
	case c.Theme == "":
		return fmt.Errorf("glade: theme must not be empty")
	}
	return nil
}
