package ir

import "sort"

// LvarTable is the insert-if-absent, monotonic mapping from lvar name to
// its default value (spec §3.7, §5). A zero-value LvarTable is not usable;
// construct one with NewLvarTable.
//
// Discipline: once name -> default is recorded, a second occurrence of the
// same name is a no-op (spec §3.7). Callers thread a *LvarTable explicitly
// through the builder and the magic pre-parser rather than relying on
// process-wide mutable state (design note §9).
type LvarTable struct {
	defaults map[string]LvarDefault
	order    []string
}

// NewLvarTable returns an empty lvar table.
func NewLvarTable() *LvarTable {
	return &LvarTable{defaults: make(map[string]LvarDefault)}
}

// Seed inserts every entry of seed that is not already present. Used to
// prime a freshly created table from a parsed magic file before the main
// parse begins (spec §3.8).
func (t *LvarTable) Seed(seed map[string]LvarDefault) {
	for _, name := range sortedKeys(seed) {
		t.InsertIfAbsent(name, seed[name])
	}
}

// InsertIfAbsent records name -> def iff name is not already present.
// Returns true iff this call actually inserted the value.
func (t *LvarTable) InsertIfAbsent(name string, def LvarDefault) bool {
	if _, ok := t.defaults[name]; ok {
		return false
	}
	t.defaults[name] = def
	t.order = append(t.order, name)
	return true
}

// Lookup returns the recorded default for name, if any.
func (t *LvarTable) Lookup(name string) (LvarDefault, bool) {
	d, ok := t.defaults[name]
	return d, ok
}

// Len reports how many distinct lvars have been recorded.
func (t *LvarTable) Len() int {
	return len(t.defaults)
}

// Snapshot returns the table contents as a plain map, suitable for emitting
// as the pamela/lvars IR entry or for writing a magic file.
func (t *LvarTable) Snapshot() map[string]LvarDefault {
	out := make(map[string]LvarDefault, len(t.defaults))
	for k, v := range t.defaults {
		out[k] = v
	}
	return out
}

// OrderedNames returns the lvar names in first-insertion order, which is
// the order magic files are written in (spec §6).
func (t *LvarTable) OrderedNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func sortedKeys(m map[string]LvarDefault) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
