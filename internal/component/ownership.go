package component

import "github.com/caolo-sim/engine/internal/geometry"

// OwnedEntity records which user owns an entity. OwnedEntity(e).OwnerId =
// u implies UserProperties(u) exists (spec §3.3).
type OwnedEntity struct {
	OwnerId UserId
}

// EntityScript points an entity at the compiled script program bound to
// it.
type EntityScript struct {
	ScriptId ScriptId
}

// Rooms lists the room ids a user owns, keyed by UserId.
type Rooms struct {
	RoomIds []geometry.Axial
}

// UserProperties is the per-user account row: Level caps how many rooms a
// user may take (spec §3.2).
type UserProperties struct {
	Level uint16
}
