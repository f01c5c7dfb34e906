package choice

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		prev, cur int
		want      Transition
	}{
		{NoChoice, 0, Change},
		{NoChoice, 1, Change},
		{0, 0, Same},
		{1, 1, Same},
		{0, 1, Change},
		{1, 0, Change},
	}
	for _, tt := range tests {
		if got := Classify(tt.prev, tt.cur); got != tt.want {
			t.Errorf("Classify(%d, %d) = %s, want %s", tt.prev, tt.cur, got, tt.want)
		}
	}
}

func TestOutcomeOfPolarity(t *testing.T) {
	if OutcomeOf(0, 0) != Loss {
		t.Error("matching prediction should record Loss")
	}
	if OutcomeOf(1, 1) != Loss {
		t.Error("matching prediction should record Loss")
	}
	if OutcomeOf(0, 1) != Win {
		t.Error("missed prediction should record Win")
	}
	if OutcomeOf(1, 0) != Win {
		t.Error("missed prediction should record Win")
	}
}

func TestKeysHaveDistinctSlots(t *testing.T) {
	keys := Keys()
	if len(keys) != KeyCount {
		t.Fatalf("expected %d keys, got %d", KeyCount, len(keys))
	}
	seen := make(map[int]Key)
	for i, k := range keys {
		slot, ok := k.Slot()
		if !ok {
			t.Fatalf("key %s should be seeded", k)
		}
		if slot != i {
			t.Errorf("key %s: expected slot %d, got %d", k, i, slot)
		}
		if prev, dup := seen[slot]; dup {
			t.Fatalf("keys %s and %s collide in slot %d", prev, k, slot)
		}
		seen[slot] = k
	}
}

func TestUnseededKeys(t *testing.T) {
	keys := []Key{
		{Unset, Shrug, Unset},
		{Loss, Same, Unset},
		{Win, Change, Unset},
		{Unset, Change, Loss},
		{Loss, Shrug, Win},
	}
	for _, k := range keys {
		if _, ok := k.Slot(); ok {
			t.Errorf("key %s should not be seeded", k)
		}
	}
}

func TestSlotPanicsOnOutOfRange(t *testing.T) {
	bad := []Key{
		{Outcome(2), Same, Loss},
		{Loss, Same, Outcome(-2)},
		{Loss, Transition(7), Loss},
	}
	for _, k := range bad {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for key %v", k)
				}
			}()
			k.Slot()
		}()
	}
}

func TestTransitionString(t *testing.T) {
	want := map[Transition]string{Shrug: "shrug", Same: "same", Change: "change", Transition(7): "transition(7)"}
	for tr, name := range want {
		if got := tr.String(); got != name {
			t.Errorf("expected %q, got %q", name, got)
		}
	}
}
