package scripting

import (
	"sync"

	"github.com/caolo-sim/engine/internal/component"
)

// Store is the compiled-program table spec §6.1's UpdateScript command
// writes into and the tick executor reads from: ScriptId -> source text.
// "Compiled" here just means "parsed once by gopher-lua at Run time" —
// the VM's own compilation step is outside this spec (spec §9), so the
// store holds the submitted source verbatim rather than bytecode.
type Store struct {
	mu         sync.RWMutex
	byID       map[component.ScriptId]string
	defaultID  component.ScriptId
	hasDefault bool
}

func NewStore() *Store {
	return &Store{byID: make(map[component.ScriptId]string)}
}

// Put installs or replaces the source for id (UpdateScript's effect).
func (s *Store) Put(id component.ScriptId, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = source
}

// Get returns id's source, or ok=false if no script is stored under it.
func (s *Store) Get(id component.ScriptId) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.byID[id]
	return src, ok
}

// SetDefault records id as the default script id returned by Default
// (SetDefaultScript's effect, spec §6.1). It is one id for all users, and
// the spawn path does not read it.
func (s *Store) SetDefault(id component.ScriptId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultID = id
	s.hasDefault = true
}

// Default returns the current default script id, if one has been set.
func (s *Store) Default() (component.ScriptId, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultID, s.hasDefault
}
