// Package rpc defines the external command and world-stream contracts
// spec §6.1/§6.2 call for: plain Go types plus a CommandProcessor
// interface the simulation core satisfies. Per SPEC_FULL.md §13's
// Non-goals, no transport (gRPC/HTTP/websocket) lives here — a caller
// wires these types to whatever wire protocol it wants, the same way
// the original engine/src/api/*.rs leaves gRPC framing to its own
// server crate and keeps these types transport-agnostic.
package rpc

import (
	"github.com/google/uuid"

	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
	"github.com/caolo-sim/engine/internal/geometry"
)

// StructureKind identifies what PlaceStructure is placing. Spawn is the
// only kind the base spec names; kept as its own type so a future kind
// is a data addition.
type StructureKind int

const (
	StructureSpawn StructureKind = iota
)

// CommandResult is every command's reply: empty on success, or an error
// string naming why it was rejected. A command is atomic — it either
// fully applies at the tick boundary it was observed at, or not at all.
type CommandResult struct {
	MessageId uuid.UUID
	Error     string // empty on success
}

func Ok(messageId uuid.UUID) CommandResult       { return CommandResult{MessageId: messageId} }
func Err(messageId uuid.UUID, msg string) CommandResult {
	return CommandResult{MessageId: messageId, Error: msg}
}

// PlaceStructure requests a new structure at Position, owned by OwnerId.
// Fails if the position is not walkable, is already occupied, or the
// owner already has a spawn (spec §6.1).
type PlaceStructure struct {
	MessageId uuid.UUID
	OwnerId   component.UserId
	Position  component.WorldPosition
	Type      StructureKind
}

// TakeRoom requests room ownership for UserId. Fails if the room is
// already owned, the user is not registered, or the user is at their
// room cap (UserProperties.Level, spec §6.1).
type TakeRoom struct {
	MessageId uuid.UUID
	UserId    component.UserId
	RoomId    geometry.Axial
}

// RegisterUser creates a UserProperties row. Fails if the user is
// already registered or Level overflows 16 bits.
type RegisterUser struct {
	MessageId uuid.UUID
	UserId    component.UserId
	Level     uint32
}

// UpdateScript submits source for ScriptId. On success it is stored
// under ScriptId and every entity UserId owns that has an EntityScript is
// rebound to ScriptId, so it runs the new source on its next run.
type UpdateScript struct {
	MessageId       uuid.UUID
	UserId          component.UserId
	ScriptId        component.ScriptId
	CompilationUnit string
}

// UpdateEntityScript rebinds EntityId's EntityScript to ScriptId.
// Requires UserId to own EntityId.
type UpdateEntityScript struct {
	MessageId uuid.UUID
	UserId    component.UserId
	EntityId  ecs.EntityId
	ScriptId  component.ScriptId
}

// SetDefaultScript records ScriptId as the script store's single default
// script id. UserId is not used: one default is shared by all users.
// Newly spawned bots are not given it; SpawnTick attaches no EntityScript.
type SetDefaultScript struct {
	MessageId uuid.UUID
	UserId    component.UserId
	ScriptId  component.ScriptId
}

// CommandProcessor is satisfied by the simulation core: one method per
// command kind, each returning that command's CommandResult. A caller's
// RPC server decodes wire messages into these command types, calls the
// matching method while holding the between-tick lock (spec §5 "acquires
// a coarse mutex on the world between ticks"), and encodes the result
// back onto the wire.
type CommandProcessor interface {
	PlaceStructure(cmd PlaceStructure) CommandResult
	TakeRoom(cmd TakeRoom) CommandResult
	RegisterUser(cmd RegisterUser) CommandResult
	UpdateScript(cmd UpdateScript) CommandResult
	UpdateEntityScript(cmd UpdateEntityScript) CommandResult
	SetDefaultScript(cmd SetDefaultScript) CommandResult
}
