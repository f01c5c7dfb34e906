package policy

import (
	"github.com/danielpatrickdp/mindreader/internal/choice"
	"github.com/danielpatrickdp/mindreader/internal/pattern"
)

// #region decide
// Decide returns the transition to bet on for a bucket's history.
// A transition must have been seen twice in a row to count; anything else,
// including a Shrug in either position, yields Shrug.
func Decide(h pattern.History) choice.Transition {
	if h.Older == h.Newer && h.Older != choice.Shrug {
		return h.Older
	}
	return choice.Shrug
}

// #endregion decide
