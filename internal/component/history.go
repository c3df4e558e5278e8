package component

// ScriptHistoryMaxEntries bounds the per-entity trace ring buffer (spec
// §4.4's ScriptHistoryEntry intent, detailed by
// sim/simulation/src/components/script_components.rs in the original
// source).
const ScriptHistoryMaxEntries = 16

// ScriptHistoryEntry is one recorded step of a script's execution trace.
type ScriptHistoryEntry struct {
	Time    int64
	Payload string
}

// ScriptHistoryComponent is the bounded trace ring buffer attached to a
// scripted entity.
type ScriptHistoryComponent struct {
	Entries []ScriptHistoryEntry
}

// Push appends an entry, dropping the oldest once the ring buffer is
// full.
func (c *ScriptHistoryComponent) Push(e ScriptHistoryEntry) {
	c.Entries = append(c.Entries, e)
	if len(c.Entries) > ScriptHistoryMaxEntries {
		c.Entries = c.Entries[len(c.Entries)-ScriptHistoryMaxEntries:]
	}
}
