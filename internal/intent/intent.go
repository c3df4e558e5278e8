// Package intent defines the closed set of mutations agents may propose
// (spec §4.4): the intent catalogue and the OperationResult values
// returned by pre-check functions before a script enqueues an intent.
package intent

import (
	"github.com/caolo-sim/engine/internal/component"
	"github.com/caolo-sim/engine/internal/ecs"
)

// OperationResult is returned to a script by a pre-check function.
type OperationResult int

const (
	Ok OperationResult = iota
	NotOwner
	InvalidInput
	OperationFailed
	NotInRange
	InvalidTarget
	Empty
	Full
)

func (r OperationResult) String() string {
	switch r {
	case Ok:
		return "Ok"
	case NotOwner:
		return "NotOwner"
	case InvalidInput:
		return "InvalidInput"
	case OperationFailed:
		return "OperationFailed"
	case NotInRange:
		return "NotInRange"
	case InvalidTarget:
		return "InvalidTarget"
	case Empty:
		return "Empty"
	case Full:
		return "Full"
	default:
		return "Unknown"
	}
}

// MoveIntent requests moving bot onto an adjacent target tile.
type MoveIntent struct {
	Bot    ecs.EntityId
	Target component.WorldPosition
}

// MineIntent requests transferring energy from a resource to the bot's
// carry.
type MineIntent struct {
	Bot      ecs.EntityId
	Resource ecs.EntityId
}

// DropoffIntent requests transferring carried resources from a bot into
// an adjacent structure.
type DropoffIntent struct {
	Bot       ecs.EntityId
	Structure ecs.EntityId
	Amount    int32
	Kind      component.ResourceKind
}

// MeleeIntent requests a melee swing against an adjacent defender.
type MeleeIntent struct {
	Attacker ecs.EntityId
	Defender ecs.EntityId
}

// SpawnIntent requests enqueueing a new bot onto a spawn structure's
// queue.
type SpawnIntent struct {
	SpawnId ecs.EntityId
	Owner   component.UserId
	HasOwner bool
}

// LogIntent appends a line of text to an entity's log.
type LogIntent struct {
	Entity ecs.EntityId
	Text   string
	Time   int64
}

// CachePathIntent overwrites a bot's path cache outright (e.g. a fresh
// A* result).
type CachePathIntent struct {
	Bot   ecs.EntityId
	Cache component.PathCacheComponent
}

// PathCacheAction distinguishes the two MutPathCacheIntent variants.
type PathCacheAction int

const (
	PathCachePop PathCacheAction = iota
	PathCacheDel
)

// MutPathCacheIntent pops one consumed step or clears a bot's path
// cache.
type MutPathCacheIntent struct {
	Bot    ecs.EntityId
	Action PathCacheAction
}

// ScriptHistoryIntent records one step of a script's execution trace.
type ScriptHistoryIntent struct {
	Entity  ecs.EntityId
	Time    int64
	Payload string
}

// DeleteEntityIntent enqueues an entity for deferred deletion.
type DeleteEntityIntent struct {
	Id ecs.EntityId
}
