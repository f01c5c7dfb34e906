package main

import (
	"fmt"
	"io"

	"github.com/danielpatrickdp/mindreader/internal/game"
	"github.com/danielpatrickdp/mindreader/internal/logging"
	"github.com/danielpatrickdp/mindreader/internal/rng"
	"github.com/danielpatrickdp/mindreader/internal/state"
	"github.com/spf13/cobra"
)

// #region commands
func newPlayCmd(a *app) *cobra.Command {
	var memory bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the mind reader on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := a.cfg.Driver
			if kind == game.KindPennies {
				return a.fail(cmd, fmt.Errorf("use the pennies command for the coin-flip game"))
			}
			return a.runGame(cmd, kind, !memory)
		},
	}
	cmd.Flags().BoolVar(&memory, "memory", false, "do not persist the session")
	return cmd
}

func newPenniesCmd(a *app) *cobra.Command {
	var memory bool
	cmd := &cobra.Command{
		Use:   "pennies",
		Short: "Play against a plain coin flip",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGame(cmd, game.KindPennies, !memory)
		},
	}
	cmd.Flags().BoolVar(&memory, "memory", false, "do not persist the session")
	return cmd
}

// #endregion commands

// #region run-game
func (a *app) runGame(cmd *cobra.Command, kind string, persist bool) error {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()

	seed := a.cfg.Seed
	if seed == 0 {
		seed = rng.NewSeed()
	}

	var store *state.Store
	var sess state.Session
	if persist {
		var err error
		if store, err = a.openStore(); err != nil {
			return a.fail(cmd, err)
		}
		defer store.Close()
		if sess, err = store.CreateSession(kind, seed); err != nil {
			return a.fail(cmd, err)
		}
		a.logger.Info("session opened", "session_id", sess.SessionID, "driver", kind, "seed", seed)
	}

	printIntro(out, kind)

	source := game.NewReaderSource(in)
	d, err := game.NewDriver(kind, rng.New(seed), source)
	if err != nil {
		return a.fail(cmd, err)
	}

	tally, err := game.Play(d, func(t game.Turn) error {
		fmt.Fprintf(out, "You pressed %d, I guessed %d\n", t.Choice, t.Prediction)
		if store == nil {
			return nil
		}
		return logging.LogTurn(store.DB(), logging.TurnEntry{
			SessionID:  sess.SessionID,
			Turn:       t.Number,
			Choice:     t.Choice,
			Prediction: t.Prediction,
			Guessed:    t.Guessed,
			Driver:     kind,
		})
	})
	if err != nil {
		return a.fail(cmd, err)
	}
	if err := source.Err(); err != nil {
		a.logger.Warn("input ended with error", "error", err)
	}

	if store != nil {
		err := store.FinishSession(sess.SessionID, state.Totals{
			Turns:      tally.Turns,
			PlayerWins: tally.PlayerWins,
			Guesses:    tally.Guesses,
		})
		if err != nil {
			return a.fail(cmd, err)
		}
		a.logger.Info("session finished", "session_id", sess.SessionID, "turns", tally.Turns)
	}

	printTally(out, kind, tally)
	return nil
}

// #endregion run-game

// #region output
func printIntro(w io.Writer, kind string) {
	fmt.Fprintln(w, "Select 0 or 1 at random and press enter.")
	fmt.Fprintln(w, "If the computer predicts your guess it wins.")
	if kind != game.KindPennies {
		fmt.Fprintln(w, "And it can now read your mind.")
	}
}

func printTally(w io.Writer, kind string, t game.Tally) {
	fmt.Fprintf(w, "you win %d\n", t.PlayerWins)
	if kind != game.KindPennies {
		fmt.Fprintf(w, "machine guessed %d times\n", t.Guesses)
	}
	fmt.Fprintf(w, "machine won %d\n", t.MachineWins())
}

// #endregion output
