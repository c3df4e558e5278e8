package mapgen

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/caolo-sim/engine/internal/geometry"
)

// RoomSeed deterministically derives a per-room RNG seed from the
// overworld seed and the room's axial id (spec §4.6).
func RoomSeed(overworldSeed uint64, room geometry.Axial) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], overworldSeed)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(room.Q))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(room.R))
	return xxhash.Sum64(buf[:])
}
