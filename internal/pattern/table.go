package pattern

import "github.com/danielpatrickdp/mindreader/internal/choice"

// #region history
// History holds the two most recent transitions seen in one bucket.
// The zero value is (Shrug, Shrug).
type History struct {
	Older choice.Transition
	Newer choice.Transition
}

// Unset is the pair reported for empty or unseeded buckets.
var Unset = History{Older: choice.Shrug, Newer: choice.Shrug}

// #endregion history

// #region table
// Table maps each seeded key to its History. Storage is a fixed array indexed
// by Key.Slot, so the bucket count never changes and seeded keys cannot collide.
type Table struct {
	slots [choice.KeyCount]History
}

// NewTable returns a table with every bucket set to Unset.
func NewTable() *Table {
	t := &Table{}
	for i := range t.slots {
		t.slots[i] = Unset
	}
	return t
}

// Lookup returns the stored pair, or Unset for keys outside the seeded space.
func (t *Table) Lookup(key choice.Key) History {
	slot, ok := key.Slot()
	if !ok {
		return Unset
	}
	return t.slots[slot]
}

// Update shifts newest into the bucket for key. Unseeded keys are ignored.
func (t *Table) Update(key choice.Key, newest choice.Transition) {
	slot, ok := key.Slot()
	if !ok {
		return
	}
	old := t.slots[slot]
	t.slots[slot] = History{Older: old.Newer, Newer: newest}
}

// #endregion table

// #region entries
// Entry pairs a seeded key with its current history.
type Entry struct {
	Key     choice.Key
	History History
}

// Entries lists all buckets in slot order.
func (t *Table) Entries() []Entry {
	keys := choice.Keys()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Key: k, History: t.Lookup(k)}
	}
	return out
}

// #endregion entries
