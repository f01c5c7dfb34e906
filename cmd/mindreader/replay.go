package main

import (
	"fmt"
	"io"

	"github.com/danielpatrickdp/mindreader/internal/replay"
	"github.com/spf13/cobra"
)

// #region command
func newReplayCmd(a *app) *cobra.Command {
	var fixturePath, sessionID string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run a fixture or stored session and compare",
		Long: `replay re-runs recorded choices through a fresh engine and compares every
prediction with the reference. Exit status is 1 when any turn diverges.

  replay --fixture path/to/fixture.json
  replay --db path/to/mindreader.db --session id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (fixturePath == "") == (sessionID == "") {
				return a.usage(cmd, "exactly one of --fixture or --session is required")
			}
			var f *replay.Fixture
			var err error
			if fixturePath != "" {
				f, err = replay.LoadFixture(fixturePath)
			} else {
				f, err = a.sessionFixture(sessionID)
			}
			if err != nil {
				return a.fail(cmd, err)
			}

			results, err := replay.Run(f)
			if err != nil {
				return a.fail(cmd, err)
			}
			summary := printComparison(cmd.OutOrStdout(), results)
			a.logger.Debug("replay done", "driver", f.Driver, "turns", summary.TotalTurns, "diverged", summary.Diverged)
			if summary.Diverged > 0 {
				return &exitError{code: 1, msg: fmt.Sprintf("%d turns diverged", summary.Diverged)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to fixture JSON (fixture mode)")
	cmd.Flags().StringVar(&sessionID, "session", "", "stored session id (DB mode)")
	return cmd
}

// sessionFixture loads a stored session as a fixture.
func (a *app) sessionFixture(id string) (*replay.Fixture, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	sess, err := store.GetSession(id)
	if err != nil {
		return nil, err
	}
	turns, err := store.ListTurns(id)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, fmt.Errorf("session %s has no turns", id)
	}
	return replay.FromSession(sess, turns), nil
}

// usage reports a flag misuse with exit status 2.
func (a *app) usage(cmd *cobra.Command, msg string) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "usage: %s\n", msg)
	return &exitError{code: 2, msg: msg}
}

// #endregion command

// #region output

// printComparison writes a comparison table and returns the summary.
func printComparison(w io.Writer, results []replay.ReplayResult) replay.ReplaySummary {
	fmt.Fprintf(w, "%-6s| %-15s| %-15s| %s\n", "Turn", "Expected", "Replayed", "Match")
	fmt.Fprintf(w, "%-6s+%-16s+%-16s+%s\n", "------", "----------------", "----------------", "------")

	for _, r := range results {
		match := "DIFF"
		if r.Match {
			match = "OK"
		}
		exp := formatPair(r.Expected.Choice, r.Expected.Prediction, r.Expected.Guessed, r.Expected.Turn > 0)
		got := formatPair(r.Got.Choice, r.Got.Prediction, r.Got.Guessed, r.Got.Number > 0)
		fmt.Fprintf(w, "%-6d| %-15s| %-15s| %s\n", r.Turn, exp, got, match)
	}

	s := replay.Summarize(results)
	fmt.Fprintf(w, "\nSummary: %d total, %d match, %d diverge\n", s.TotalTurns, s.Matches, s.Diverged)
	fmt.Fprintf(w, "Tally: player %d, machine %d, guesses %d\n", s.Tally.PlayerWins, s.Tally.MachineWins(), s.Tally.Guesses)
	return s
}

// formatPair renders "choice/prediction" with a * for a random guess.
func formatPair(choice, prediction int, guessed, ok bool) string {
	if !ok {
		return "-"
	}
	s := fmt.Sprintf("%d/%d", choice, prediction)
	if guessed {
		s += "*"
	}
	return s
}

// #endregion output
