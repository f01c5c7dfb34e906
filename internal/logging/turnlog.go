package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-turn
// LogTurn writes a turn entry to the turn_log table.
func LogTurn(db *sql.DB, entry TurnEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	guessed := 0
	if entry.Guessed {
		guessed = 1
	}

	_, err := db.Exec(
		`INSERT INTO turn_log (session_id, turn, choice, prediction, guessed, driver, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Turn,
		entry.Choice,
		entry.Prediction,
		guessed,
		nullIfEmpty(entry.Driver),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log turn: %w", err)
	}
	return nil
}

// #endregion log-turn

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
