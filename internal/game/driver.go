package game

import (
	"fmt"

	"github.com/danielpatrickdp/mindreader/internal/predictor"
	"github.com/danielpatrickdp/mindreader/internal/rng"
)

// #region turn
// Turn is one exchange: the opponent's choice and the prediction that was
// committed before it was seen.
type Turn struct {
	Number     int
	Choice     int
	Prediction int
	Guessed    bool // Prediction came from the random source
}

// PredictorWon reports whether the prediction matched the choice.
func (t Turn) PredictorWon() bool { return t.Choice == t.Prediction }

// #endregion turn

// #region driver
// Driver steps through a game one turn at a time.
//
//	for !d.Done() {
//		turn := d.Current()
//		...
//		d.Advance()
//	}
type Driver interface {
	// Current returns the pending turn. Only meaningful while !Done().
	Current() Turn
	// Advance moves to the next turn.
	Advance()
	// Done reports that the opponent's input is exhausted.
	Done() bool
}

// #endregion driver

// #region tally
// Tally aggregates turns from the caller's side.
type Tally struct {
	Turns      int
	PlayerWins int
	Guesses    int
}

// Add folds one turn into the tally.
func (t *Tally) Add(turn Turn) {
	t.Turns++
	if !turn.PredictorWon() {
		t.PlayerWins++
	}
	if turn.Guessed {
		t.Guesses++
	}
}

// MachineWins is the number of turns the predictor called correctly.
func (t Tally) MachineWins() int { return t.Turns - t.PlayerWins }

// #endregion tally

// #region play
// Play drives d to completion, handing each turn to fn before advancing.
// A non-nil error from fn stops the game and is returned with the tally so far.
func Play(d Driver, fn func(Turn) error) (Tally, error) {
	var tally Tally
	for !d.Done() {
		turn := d.Current()
		tally.Add(turn)
		if fn != nil {
			if err := fn(turn); err != nil {
				return tally, err
			}
		}
		d.Advance()
	}
	return tally, nil
}

// Collect drains d into a slice.
func Collect(d Driver) []Turn {
	var turns []Turn
	Play(d, func(t Turn) error {
		turns = append(turns, t)
		return nil
	})
	return turns
}

// #endregion play

// #region factory
// Driver kinds.
const (
	KindPull      = "pull"
	KindCoroutine = "coroutine"
	KindPennies   = "pennies"
)

// NewDriver builds a driver of the given kind over a fresh engine seeded from src.
func NewDriver(kind string, src rng.Source, source Source) (Driver, error) {
	switch kind {
	case KindPull:
		return NewPull(predictor.New(src), source), nil
	case KindCoroutine:
		return NewCoroutine(predictor.New(src), source), nil
	case KindPennies:
		return NewPennies(src, source), nil
	}
	return nil, fmt.Errorf("unknown driver %q", kind)
}

// #endregion factory
