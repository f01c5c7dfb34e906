package replay

import (
	"github.com/danielpatrickdp/mindreader/internal/game"
	"github.com/danielpatrickdp/mindreader/internal/rng"
)

// #region types

// ReplayResult compares one replayed turn with its reference.
type ReplayResult struct {
	Turn     int
	Expected ExpectedTurn
	Got      game.Turn
	Match    bool
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalTurns int
	Matches    int
	Diverged   int
	Tally      game.Tally
}

// #endregion types

// #region replay

// Replay runs choices through a fresh driver of the given kind and returns
// every turn in order. It operates entirely in memory.
func Replay(choices []int, src rng.Source, driver string) ([]game.Turn, error) {
	d, err := game.NewDriver(driver, src, game.NewSliceSource(choices...))
	if err != nil {
		return nil, err
	}
	return game.Collect(d), nil
}

// Run replays a fixture and compares against its expected turns.
func Run(f *Fixture) ([]ReplayResult, error) {
	turns, err := Replay(f.Choices, f.RandomSource(), f.Driver)
	if err != nil {
		return nil, err
	}
	return Compare(f.Expected, turns), nil
}

// Compare pairs expected and replayed turns. Turns without a counterpart are
// reported as mismatches.
func Compare(expected []ExpectedTurn, got []game.Turn) []ReplayResult {
	n := len(expected)
	if len(got) > n {
		n = len(got)
	}
	results := make([]ReplayResult, n)
	for i := 0; i < n; i++ {
		r := ReplayResult{Turn: i + 1}
		haveExp, haveGot := i < len(expected), i < len(got)
		if haveExp {
			r.Expected = expected[i]
		}
		if haveGot {
			r.Got = got[i]
		}
		r.Match = haveExp && haveGot &&
			r.Expected.Choice == r.Got.Choice &&
			r.Expected.Prediction == r.Got.Prediction &&
			r.Expected.Guessed == r.Got.Guessed
		results[i] = r
	}
	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{TotalTurns: len(results)}
	for _, r := range results {
		if r.Match {
			s.Matches++
		} else {
			s.Diverged++
		}
		if r.Got.Number > 0 {
			s.Tally.Add(r.Got)
		}
	}
	return s
}

// #endregion replay
