package search

import (
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/brensch/pokesim/game"
)

// ScoredSelection is a selection with its expected score for the AI.
type ScoredSelection struct {
	Selection game.Selection `json:"selection"`
	Score     float64        `json:"score"`
}

type entry struct {
	key    Key
	depth  Depth
	scored []ScoredSelection
}

// Table is a fixed-size transposition table shared by concurrent searches.
// Each slot publishes an immutable entry through an atomic pointer, so a
// reader never sees a torn entry; it still checks the full key and depth
// before trusting what it loaded.
type Table struct {
	slots []atomic.Pointer[entry]
	mask  uint64

	hits   atomic.Uint64
	misses atomic.Uint64
	stores atomic.Uint64
}

// TableStats counts table traffic since creation.
type TableStats struct {
	Slots  int
	Hits   uint64
	Misses uint64
	Stores uint64
}

// NewTable makes a table of 1<<bits slots.
func NewTable(bits int) *Table {
	bits = max(1, min(bits, 30))
	size := 1 << bits
	return &Table{
		slots: make([]atomic.Pointer[entry], size),
		mask:  uint64(size - 1),
	}
}

func (t *Table) slot(k Key) *atomic.Pointer[entry] {
	return &t.slots[xxh3.Hash(k.Bytes())&t.mask]
}

// Lookup returns the stored selections for k if they were computed at a depth
// covering d.
func (t *Table) Lookup(k Key, d Depth) ([]ScoredSelection, bool) {
	e := t.slot(k).Load()
	if e == nil || e.key != k || !e.depth.Covers(d) {
		t.misses.Add(1)
		return nil, false
	}
	t.hits.Add(1)
	return e.scored, true
}

// Store records the selections computed for k at depth d. An entry for the
// same key is only replaced by one at a covering depth; an entry for a
// different key is always replaced.
func (t *Table) Store(k Key, d Depth, scored []ScoredSelection) {
	slot := t.slot(k)
	if old := slot.Load(); old != nil && old.key == k && !d.Covers(old.depth) {
		return
	}
	slot.Store(&entry{key: k, depth: d, scored: scored})
	t.stores.Add(1)
}

func (t *Table) Stats() TableStats {
	return TableStats{
		Slots:  len(t.slots),
		Hits:   t.hits.Load(),
		Misses: t.misses.Load(),
		Stores: t.stores.Load(),
	}
}
