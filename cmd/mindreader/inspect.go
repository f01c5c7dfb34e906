package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/danielpatrickdp/mindreader/internal/game"
	"github.com/danielpatrickdp/mindreader/internal/pattern"
	"github.com/danielpatrickdp/mindreader/internal/policy"
	"github.com/danielpatrickdp/mindreader/internal/predictor"
	"github.com/danielpatrickdp/mindreader/internal/rng"
	"github.com/danielpatrickdp/mindreader/internal/state"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// #region command
func newInspectCmd(a *app) *cobra.Command {
	var sessionID string
	var last int
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List sessions or show one session's turns and pattern table",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return a.fail(cmd, err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if sessionID != "" {
				err = runDetailMode(out, store, sessionID, jsonOut)
			} else {
				err = runListMode(out, store, last, jsonOut)
			}
			if err != nil {
				return a.fail(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "show single session detail")
	cmd.Flags().IntVar(&last, "last", 20, "show N most recent sessions")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON instead of table")
	return cmd
}

// #endregion command

// #region list-mode

type listRow struct {
	SessionID   string `json:"session_id"`
	Driver      string `json:"driver"`
	Turns       int    `json:"turns"`
	PlayerWins  int    `json:"player_wins"`
	MachineWins int    `json:"machine_wins"`
	Guesses     int    `json:"guesses"`
	CreatedAt   string `json:"created_at"`
	Finished    bool   `json:"finished"`
}

func runListMode(w io.Writer, store *state.Store, last int, jsonOut bool) error {
	sessions, err := store.ListSessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, "no sessions found")
		return nil
	}

	rows := make([]listRow, len(sessions))
	for i, s := range sessions {
		rows[i] = listRow{
			SessionID:   s.SessionID,
			Driver:      s.Driver,
			Turns:       s.Turns,
			PlayerWins:  s.PlayerWins,
			MachineWins: s.Turns - s.PlayerWins,
			Guesses:     s.Guesses,
			CreatedAt:   s.CreatedAt.Format(time.RFC3339),
			Finished:    s.Finished(),
		}
	}
	if jsonOut {
		return writeJSON(w, rows)
	}

	fmt.Fprintf(w, "%-36s  %-9s  %6s  %6s  %7s  %7s  %s\n",
		"Session", "Driver", "Turns", "Player", "Machine", "Guesses", "Started")
	for i, r := range rows {
		turns := humanize.Comma(int64(r.Turns))
		if !r.Finished {
			turns = "open"
		}
		fmt.Fprintf(w, "%-36s  %-9s  %6s  %6d  %7d  %7d  %s\n",
			r.SessionID, r.Driver, turns, r.PlayerWins, r.MachineWins, r.Guesses,
			humanize.Time(sessions[i].CreatedAt))
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type turnRow struct {
	Turn       int  `json:"turn"`
	Choice     int  `json:"choice"`
	Prediction int  `json:"prediction"`
	Guessed    bool `json:"guessed"`
	Machine    bool `json:"machine_won"`
}

type bucketRow struct {
	Key      string `json:"key"`
	Older    string `json:"older"`
	Newer    string `json:"newer"`
	Decision string `json:"decision"`
}

type detailView struct {
	SessionID string      `json:"session_id"`
	Driver    string      `json:"driver"`
	Seed      uint64      `json:"seed,string"`
	CreatedAt string      `json:"created_at"`
	Turns     []turnRow   `json:"turns"`
	Table     []bucketRow `json:"table,omitempty"`
}

func runDetailMode(w io.Writer, store *state.Store, id string, jsonOut bool) error {
	sess, err := store.GetSession(id)
	if err != nil {
		return err
	}
	turns, err := store.ListTurns(id)
	if err != nil {
		return err
	}

	view := detailView{
		SessionID: sess.SessionID,
		Driver:    sess.Driver,
		Seed:      sess.Seed,
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
		Turns:     make([]turnRow, len(turns)),
	}
	choices := make([]int, len(turns))
	for i, t := range turns {
		view.Turns[i] = turnRow{
			Turn:       t.Turn,
			Choice:     t.Choice,
			Prediction: t.Prediction,
			Guessed:    t.Guessed,
			Machine:    t.Choice == t.Prediction,
		}
		choices[i] = t.Choice
	}
	if sess.Driver != game.KindPennies {
		view.Table = bucketRows(rebuildTable(sess.Seed, choices))
	}

	if jsonOut {
		return writeJSON(w, view)
	}

	fmt.Fprintf(w, "Session:  %s\n", view.SessionID)
	fmt.Fprintf(w, "Driver:   %s\n", view.Driver)
	fmt.Fprintf(w, "Seed:     %d\n", view.Seed)
	fmt.Fprintf(w, "Started:  %s (%s)\n", view.CreatedAt, humanize.Time(sess.CreatedAt))
	if sess.Finished() {
		fmt.Fprintf(w, "Result:   player %d, machine %d, guesses %d\n",
			sess.PlayerWins, sess.Turns-sess.PlayerWins, sess.Guesses)
	}

	fmt.Fprintf(w, "\n%-6s %-7s %-10s %-8s %s\n", "Turn", "Choice", "Predicted", "Guessed", "Winner")
	for _, t := range view.Turns {
		winner := "player"
		if t.Machine {
			winner = "machine"
		}
		fmt.Fprintf(w, "%-6d %-7d %-10d %-8t %s\n", t.Turn, t.Choice, t.Prediction, t.Guessed, winner)
	}

	if len(view.Table) > 0 {
		fmt.Fprintf(w, "\n%-22s %-7s %-7s %s\n", "Bucket", "Older", "Newer", "Decision")
		for _, b := range view.Table {
			fmt.Fprintf(w, "%-22s %-7s %-7s %s\n", b.Key, b.Older, b.Newer, b.Decision)
		}
	}
	return nil
}

// rebuildTable replays choices from the session seed. The engine is
// deterministic, so this is the table the session ended with.
func rebuildTable(seed uint64, choices []int) pattern.Table {
	e := predictor.New(rng.New(seed))
	for _, c := range choices {
		e.Update(c)
	}
	return e.Table()
}

func bucketRows(tbl pattern.Table) []bucketRow {
	entries := tbl.Entries()
	rows := make([]bucketRow, len(entries))
	for i, en := range entries {
		rows[i] = bucketRow{
			Key:      en.Key.String(),
			Older:    en.History.Older.String(),
			Newer:    en.History.Newer.String(),
			Decision: policy.Decide(en.History).String(),
		}
	}
	return rows
}

// #endregion detail-mode

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
