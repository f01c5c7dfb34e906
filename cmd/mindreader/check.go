package main

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/danielpatrickdp/mindreader/internal/choice"
	"github.com/danielpatrickdp/mindreader/internal/game"
	"github.com/danielpatrickdp/mindreader/internal/pattern"
	"github.com/danielpatrickdp/mindreader/internal/policy"
	"github.com/danielpatrickdp/mindreader/internal/predictor"
	"github.com/danielpatrickdp/mindreader/internal/rng"
	"github.com/spf13/cobra"
)

// #region command
func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the built-in self test",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, c := range selfChecks {
				if err := c.run(); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %-22s %v\n", c.name, err)
					continue
				}
				fmt.Fprintf(out, "ok    %s\n", c.name)
			}
			if failed > 0 {
				a.logger.Error("self test failed", "failed", failed)
				return &exitError{code: 1, msg: fmt.Sprintf("%d checks failed", failed)}
			}
			return nil
		},
	}
}

// #endregion command

// #region checks
type selfCheck struct {
	name string
	run  func() error
}

var selfChecks = []selfCheck{
	{"distinct-slots", checkDistinctSlots},
	{"policy", checkPolicy},
	{"empty-lookup", checkEmptyLookup},
	{"locks-onto-zeros", checkLocksOntoZeros},
	{"drivers-agree", checkDriversAgree},
}

// checkDistinctSlots verifies every seeded key owns its own bucket.
func checkDistinctSlots() error {
	seen := make(map[int]choice.Key, choice.KeyCount)
	for _, k := range choice.Keys() {
		slot, ok := k.Slot()
		if !ok {
			return fmt.Errorf("seeded key %s reports no slot", k)
		}
		if other, dup := seen[slot]; dup {
			return fmt.Errorf("keys %s and %s share slot %d", other, k, slot)
		}
		seen[slot] = k
	}
	if len(seen) != choice.KeyCount {
		return fmt.Errorf("expected %d slots, got %d", choice.KeyCount, len(seen))
	}
	return nil
}

func checkPolicy() error {
	sh, sa, ch := choice.Shrug, choice.Same, choice.Change
	cases := []struct {
		h    pattern.History
		want choice.Transition
	}{
		{pattern.History{Older: sh, Newer: sh}, sh},
		{pattern.History{Older: sh, Newer: ch}, sh},
		{pattern.History{Older: sh, Newer: sa}, sh},
		{pattern.History{Older: ch, Newer: sh}, sh},
		{pattern.History{Older: sa, Newer: sh}, sh},
		{pattern.History{Older: ch, Newer: ch}, ch},
		{pattern.History{Older: sa, Newer: sa}, sa},
		{pattern.History{Older: ch, Newer: sa}, sh},
		{pattern.History{Older: sa, Newer: ch}, sh},
	}
	for _, c := range cases {
		if got := policy.Decide(c.h); got != c.want {
			return fmt.Errorf("Decide(%s, %s) = %s, want %s", c.h.Older, c.h.Newer, got, c.want)
		}
	}
	return nil
}

// checkEmptyLookup verifies unseeded keys read as (shrug, shrug).
func checkEmptyLookup() error {
	tbl := pattern.NewTable()
	for _, k := range []choice.Key{
		{Prev2: choice.Unset, Transition: choice.Shrug, Prev1: choice.Unset},
		{Prev2: choice.Unset, Transition: choice.Change, Prev1: choice.Win},
		{Prev2: choice.Loss, Transition: choice.Shrug, Prev1: choice.Loss},
	} {
		if got := tbl.Lookup(k); got != pattern.Unset {
			return fmt.Errorf("lookup %s = (%s, %s)", k, got.Older, got.Newer)
		}
	}
	return nil
}

// checkLocksOntoZeros plays six zeros against a zero random stream.
func checkLocksOntoZeros() error {
	e := predictor.New(rng.Constant(0))
	want := []bool{true, true, true, false, false, false}
	for i, w := range want {
		r := e.Update(0)
		if r.Guessing != w {
			return fmt.Errorf("update %d: guessing=%t, want %t", i+1, r.Guessing, w)
		}
		if r.Prediction != 0 {
			return fmt.Errorf("update %d: prediction %d, want 0", i+1, r.Prediction)
		}
	}
	return nil
}

// checkDriversAgree runs pull and coroutine over the same random game.
func checkDriversAgree() error {
	const seed, turns = 42, 500
	r := rand.New(rand.NewPCG(seed, seed))
	choices := make([]int, turns)
	for i := range choices {
		choices[i] = r.IntN(2)
	}

	pull := game.Collect(game.NewPull(predictor.New(rng.New(seed)), game.NewSliceSource(choices...)))
	co := game.Collect(game.NewCoroutine(predictor.New(rng.New(seed)), game.NewSliceSource(choices...)))
	if len(pull) != turns || len(co) != turns {
		return fmt.Errorf("turn counts pull=%d coroutine=%d, want %d", len(pull), len(co), turns)
	}
	if !slices.Equal(pull, co) {
		for i := range pull {
			if pull[i] != co[i] {
				return fmt.Errorf("turn %d: pull %+v, coroutine %+v", i+1, pull[i], co[i])
			}
		}
	}
	return nil
}

// #endregion checks
