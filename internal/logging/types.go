package logging

import "time"

// #region turn-entry
// TurnEntry is a single row in the turn_log table.
type TurnEntry struct {
	SessionID  string
	Turn       int
	Choice     int
	Prediction int
	Guessed    bool
	Driver     string // "pull" | "coroutine" | "pennies"
	CreatedAt  time.Time
}

// #endregion turn-entry
