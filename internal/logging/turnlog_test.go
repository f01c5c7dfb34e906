package logging

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE turn_log (
		session_id TEXT NOT NULL,
		turn       INTEGER NOT NULL,
		choice     INTEGER NOT NULL,
		prediction INTEGER NOT NULL,
		guessed    INTEGER NOT NULL,
		driver     TEXT,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// #endregion helpers

// #region log-turn-tests
func TestLogTurn_Success(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	entry := TurnEntry{
		SessionID:  "s1",
		Turn:       3,
		Choice:     1,
		Prediction: 0,
		Guessed:    true,
		Driver:     "coroutine",
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := LogTurn(db, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM turn_log").Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	var sessionID, driver string
	var turn, choice, prediction, guessed int
	db.QueryRow("SELECT session_id, turn, choice, prediction, guessed, driver FROM turn_log").Scan(
		&sessionID, &turn, &choice, &prediction, &guessed, &driver,
	)
	if sessionID != "s1" || turn != 3 || choice != 1 || prediction != 0 {
		t.Errorf("unexpected row: %s %d %d %d", sessionID, turn, choice, prediction)
	}
	if guessed != 1 {
		t.Errorf("expected guessed=1, got %d", guessed)
	}
	if driver != "coroutine" {
		t.Errorf("expected driver 'coroutine', got %q", driver)
	}
}

func TestLogTurn_ZeroCreatedAt(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	before := time.Now().UTC()
	if err := LogTurn(db, TurnEntry{SessionID: "s2", Turn: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var createdAtStr string
	db.QueryRow("SELECT created_at FROM turn_log").Scan(&createdAtStr)
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		t.Fatalf("parse created_at: %v", err)
	}
	if createdAt.Before(before) {
		t.Error("expected auto-filled created_at to be >= test start time")
	}
}

func TestLogTurn_EmptyDriverIsNull(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	if err := LogTurn(db, TurnEntry{SessionID: "s3", Turn: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var driver sql.NullString
	var guessed int
	db.QueryRow("SELECT driver, guessed FROM turn_log").Scan(&driver, &guessed)
	if driver.Valid {
		t.Error("expected NULL driver for empty string")
	}
	if guessed != 0 {
		t.Errorf("expected guessed=0, got %d", guessed)
	}
}

func TestLogTurn_Error(t *testing.T) {
	db := setupDB(t)
	db.Close() // close to force error

	if err := LogTurn(db, TurnEntry{SessionID: "s4", Turn: 1}); err == nil {
		t.Fatal("expected error on closed db")
	}
}

// #endregion log-turn-tests

// #region null-if-empty-tests
func TestNullIfEmpty_Empty(t *testing.T) {
	if result := nullIfEmpty(""); result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
}

func TestNullIfEmpty_NonEmpty(t *testing.T) {
	if result := nullIfEmpty("pull"); result != "pull" {
		t.Errorf("expected 'pull', got %v", result)
	}
}

// #endregion null-if-empty-tests
