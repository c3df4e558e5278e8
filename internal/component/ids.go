// Package component defines the row types stored in the world's tables:
// the semantic catalogue of spec §3.2.
package component

import (
	"github.com/google/uuid"

	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
)

// UserId is an externally supplied 128-bit opaque identifier.
type UserId uuid.UUID

// ScriptId is an externally supplied 128-bit opaque identifier.
type ScriptId uuid.UUID

// WorldPosition is a room id plus an in-room axial position.
type WorldPosition struct {
	Room geometry.Axial
	Pos  geometry.Axial
}

// LogKey is the compound key for LogEntry rows: (entity, tick).
type LogKey struct {
	Entity ecs.EntityId
	Tick   int64
}

// LessLogKey orders LogKey rows by entity, then tick — the ordering
// BTreeTable needs for LogEntry.
func LessLogKey(a, b LogKey) bool {
	if a.Entity != b.Entity {
		return a.Entity < b.Entity
	}
	return a.Tick < b.Tick
}
