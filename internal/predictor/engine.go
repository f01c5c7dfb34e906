package predictor

import (
	"fmt"

	"github.com/danielpatrickdp/mindreader/internal/choice"
	"github.com/danielpatrickdp/mindreader/internal/pattern"
	"github.com/danielpatrickdp/mindreader/internal/policy"
	"github.com/danielpatrickdp/mindreader/internal/rng"
)

// #region engine
// Engine predicts an opponent's next binary choice from first-order history.
// It owns its pattern table and is not safe for concurrent use.
type Engine struct {
	table *pattern.Table
	rand  rng.Source

	prediction int
	guessing   bool

	prevWinLoss2   choice.Outcome
	prevTransition choice.Transition
	prevWinLoss1   choice.Outcome
	previousChoice int
}

// New seeds the first prediction from src.
func New(src rng.Source) *Engine {
	return &Engine{
		table:          pattern.NewTable(),
		rand:           src,
		prediction:     src.Bit(),
		guessing:       true,
		prevWinLoss2:   choice.Unset,
		prevTransition: choice.Shrug,
		prevWinLoss1:   choice.Unset,
		previousChoice: choice.NoChoice,
	}
}

// Prediction is the engine's guess for the opponent's next choice.
func (e *Engine) Prediction() int { return e.prediction }

// Guessing reports whether the current prediction came from the random source.
func (e *Engine) Guessing() bool { return e.guessing }

// Table returns a copy of the learned pattern table.
func (e *Engine) Table() pattern.Table { return *e.table }

// #endregion engine

// #region update
// Update feeds the opponent's latest choice, learns from it, and makes the
// next prediction. opponentChoice must be 0 or 1.
func (e *Engine) Update(opponentChoice int) Result {
	if opponentChoice != 0 && opponentChoice != 1 {
		panic(fmt.Sprintf("predictor: choice out of range: %d", opponentChoice))
	}

	// 1. Classify against the previous choice
	transition := choice.Classify(e.previousChoice, opponentChoice)
	e.previousChoice = opponentChoice

	// 2. Record the transition under the history that preceded it
	e.table.Update(e.key(), transition)

	// 3-4. Score the round and shift history
	outcome := choice.OutcomeOf(opponentChoice, e.prediction)
	e.prevWinLoss2 = e.prevWinLoss1
	e.prevTransition = transition
	e.prevWinLoss1 = outcome

	// 5. Consult the bucket for the new history
	key := e.key()
	decision := policy.Decide(e.table.Lookup(key))

	// 6. Apply
	switch decision {
	case choice.Same:
		e.prediction = opponentChoice
		e.guessing = false
	case choice.Change:
		e.prediction = 1 - opponentChoice
		e.guessing = false
	default:
		e.prediction = e.rand.Bit()
		e.guessing = true
	}

	return Result{
		Transition: transition,
		Outcome:    outcome,
		Key:        key,
		Decision:   decision,
		Prediction: e.prediction,
		Guessing:   e.guessing,
	}
}

func (e *Engine) key() choice.Key {
	return choice.Key{Prev2: e.prevWinLoss2, Transition: e.prevTransition, Prev1: e.prevWinLoss1}
}

// #endregion update
