package pattern

import (
	"testing"

	"github.com/danielpatrickdp/mindreader/internal/choice"
)

func TestNewTableSeedsAllKeys(t *testing.T) {
	tbl := NewTable()
	for _, k := range choice.Keys() {
		if got := tbl.Lookup(k); got != Unset {
			t.Errorf("key %s: expected %v, got %v", k, Unset, got)
		}
	}
	if n := len(tbl.Entries()); n != choice.KeyCount {
		t.Fatalf("expected %d entries, got %d", choice.KeyCount, n)
	}
}

func TestZeroTableMatchesNewTable(t *testing.T) {
	var zero Table
	if zero != *NewTable() {
		t.Fatal("zero Table should equal NewTable()")
	}
}

func TestLookupMissDoesNotMutate(t *testing.T) {
	tbl := NewTable()
	tbl.Update(choice.Key{Prev2: choice.Loss, Transition: choice.Same, Prev1: choice.Win}, choice.Change)
	before := *tbl

	miss := choice.Key{Prev2: choice.Unset, Transition: choice.Shrug, Prev1: choice.Unset}
	for i := 0; i < 3; i++ {
		if got := tbl.Lookup(miss); got != Unset {
			t.Fatalf("lookup %d: expected Unset, got %v", i, got)
		}
	}
	if *tbl != before {
		t.Fatal("lookup on unseeded key mutated the table")
	}
}

func TestUpdateShiftsHistory(t *testing.T) {
	tbl := NewTable()
	k := choice.Key{Prev2: choice.Win, Transition: choice.Change, Prev1: choice.Loss}

	tbl.Update(k, choice.Same)
	if got := tbl.Lookup(k); got != (History{choice.Shrug, choice.Same}) {
		t.Fatalf("after first update: got %v", got)
	}
	tbl.Update(k, choice.Change)
	if got := tbl.Lookup(k); got != (History{choice.Same, choice.Change}) {
		t.Fatalf("after second update: got %v", got)
	}
	tbl.Update(k, choice.Change)
	if got := tbl.Lookup(k); got != (History{choice.Change, choice.Change}) {
		t.Fatalf("after third update: got %v", got)
	}

	// Other buckets untouched
	for _, other := range choice.Keys() {
		if other == k {
			continue
		}
		if got := tbl.Lookup(other); got != Unset {
			t.Errorf("key %s changed: %v", other, got)
		}
	}
}

func TestUpdateUnseededIsNoOp(t *testing.T) {
	tbl := NewTable()
	before := *tbl
	tbl.Update(choice.Key{Prev2: choice.Unset, Transition: choice.Change, Prev1: choice.Loss}, choice.Same)
	tbl.Update(choice.Key{Prev2: choice.Loss, Transition: choice.Shrug, Prev1: choice.Loss}, choice.Same)
	if *tbl != before {
		t.Fatal("update on unseeded key mutated the table")
	}
	if n := len(tbl.Entries()); n != choice.KeyCount {
		t.Fatalf("table size changed to %d", n)
	}
}
