// Package mapgen generates the overworld room graph and per-room
// terrain: a diamond-square noise pass thresholded into Wall/Plain, bridge
// painting, and a flood-fill connectivity repair (spec §4.6), grounded on
// the original engine's simulation/src/map_generation/room/{diamond_square,params}.rs.
package mapgen

import "fmt"

// Config mirrors the original RoomGenerationParams / bridge parameters.
type Config struct {
	MinBridgeLen  int32
	MaxBridgeLen  int32
	BridgeChance  float64
	ChancePlain   float64
	ChanceWall    float64
	PlainDilation int
}

// DefaultConfig matches the original RoomGenerationParamsBuilder defaults
// (chance_plain = chance_wall = 1/3, plain_dilation = 1), plus bridge
// sizing left to the overworld generator's own judgement.
func DefaultConfig() Config {
	return Config{
		MinBridgeLen:  3,
		MaxBridgeLen:  8,
		BridgeChance:  0.5,
		ChancePlain:   1.0 / 3.0,
		ChanceWall:    1.0 / 3.0,
		PlainDilation: 1,
	}
}

// Validate reports the parameter errors the original params.rs rejects at
// build time (spec §7 "Map generation" error kinds).
func (c Config) Validate() error {
	if c.ChanceWall < 0 || c.ChanceWall >= 1 || c.ChancePlain < 0 || c.ChanceWall+c.ChancePlain > 1 {
		return fmt.Errorf("mapgen: bad probabilities chance_plain=%v chance_wall=%v", c.ChancePlain, c.ChanceWall)
	}
	if c.MinBridgeLen <= 0 || c.MaxBridgeLen < c.MinBridgeLen {
		return fmt.Errorf("mapgen: bad bridge length bounds [%d,%d]", c.MinBridgeLen, c.MaxBridgeLen)
	}
	return nil
}
