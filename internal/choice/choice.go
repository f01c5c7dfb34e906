package choice

import "fmt"

// #region transition
// Transition classifies how the opponent's choice relates to their previous one.
type Transition int

const (
	// Shrug means no information yet. It is the zero value and is never
	// produced by Classify.
	Shrug Transition = iota
	Same
	Change
)

func (t Transition) String() string {
	switch t {
	case Shrug:
		return "shrug"
	case Same:
		return "same"
	case Change:
		return "change"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

// #endregion transition

// #region outcome
// Outcome is a single round's result as recorded in the predictor's history.
type Outcome int

const (
	Unset Outcome = -1
	Loss  Outcome = 0
	Win   Outcome = 1
)

// NoChoice is the previous-choice sentinel before the first turn.
// It never equals a real choice, so the first turn always classifies as Change.
const NoChoice = -1

// OutcomeOf returns Win when the opponent's choice differs from the prediction.
// The polarity is what the pattern table is keyed on; do not invert it.
func OutcomeOf(opponentChoice, prediction int) Outcome {
	if opponentChoice != prediction {
		return Win
	}
	return Loss
}

// #endregion outcome

// #region classify
// Classify reports whether current repeats previous.
func Classify(previous, current int) Transition {
	if previous == current {
		return Same
	}
	return Change
}

// #endregion classify

// #region key
// KeyCount is the number of seeded history buckets.
const KeyCount = 8

// Key is the history fingerprint used to index the pattern table.
type Key struct {
	Prev2      Outcome
	Transition Transition
	Prev1      Outcome
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,%s,%d)", k.Prev2, k.Transition, k.Prev1)
}

// Slot maps a seeded key to its storage index in [0, KeyCount).
// Keys carrying Unset or Shrug are valid but unseeded and report false.
// Values outside their enums panic.
func (k Key) Slot() (int, bool) {
	mustOutcome(k.Prev2)
	mustOutcome(k.Prev1)
	if k.Transition < Shrug || k.Transition > Change {
		panic(fmt.Sprintf("choice: transition out of range: %d", int(k.Transition)))
	}
	if k.Prev2 == Unset || k.Prev1 == Unset || k.Transition == Shrug {
		return 0, false
	}
	return int(k.Prev2)*4 + int(k.Transition-Same)*2 + int(k.Prev1), true
}

// Keys lists the seeded keys in slot order.
func Keys() []Key {
	keys := make([]Key, 0, KeyCount)
	for _, p2 := range []Outcome{Loss, Win} {
		for _, t := range []Transition{Same, Change} {
			for _, p1 := range []Outcome{Loss, Win} {
				keys = append(keys, Key{Prev2: p2, Transition: t, Prev1: p1})
			}
		}
	}
	return keys
}

func mustOutcome(o Outcome) {
	if o < Unset || o > Win {
		panic(fmt.Sprintf("choice: outcome out of range: %d", int(o)))
	}
}

// #endregion key
