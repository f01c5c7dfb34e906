package policy

import (
	"testing"

	"github.com/danielpatrickdp/mindreader/internal/choice"
	"github.com/danielpatrickdp/mindreader/internal/pattern"
)

func TestDecideAllPairs(t *testing.T) {
	all := []choice.Transition{choice.Shrug, choice.Same, choice.Change}
	for _, older := range all {
		for _, newer := range all {
			h := pattern.History{Older: older, Newer: newer}
			want := choice.Shrug
			if older == newer && older != choice.Shrug {
				want = older
			}
			if got := Decide(h); got != want {
				t.Errorf("Decide(%s, %s) = %s, want %s", older, newer, got, want)
			}
		}
	}
}

func TestDecideConfirmedPatterns(t *testing.T) {
	if got := Decide(pattern.History{Older: choice.Same, Newer: choice.Same}); got != choice.Same {
		t.Errorf("expected same, got %s", got)
	}
	if got := Decide(pattern.History{Older: choice.Change, Newer: choice.Change}); got != choice.Change {
		t.Errorf("expected change, got %s", got)
	}
	if got := Decide(pattern.Unset); got != choice.Shrug {
		t.Errorf("expected shrug for unset history, got %s", got)
	}
}
