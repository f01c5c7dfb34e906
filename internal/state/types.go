package state

import "time"

// #region session
// Session is one stored game. The random stream is reproducible from Seed,
// so a session can be replayed from its recorded choices.
type Session struct {
	SessionID  string
	Driver     string
	Seed       uint64
	CreatedAt  time.Time
	FinishedAt time.Time // zero while the game is open
	Turns      int
	PlayerWins int
	Guesses    int
}

// Finished reports whether FinishSession has been called.
func (s Session) Finished() bool { return !s.FinishedAt.IsZero() }

// #endregion session

// #region totals
// Totals are the caller-side counters written when a session ends.
type Totals struct {
	Turns      int
	PlayerWins int
	Guesses    int
}

// #endregion totals

// #region turn-record
// TurnRecord is a row of turn_log.
type TurnRecord struct {
	SessionID  string
	Turn       int
	Choice     int
	Prediction int
	Guessed    bool
	Driver     string
	CreatedAt  time.Time
}

// #endregion turn-record
