package state

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id    TEXT PRIMARY KEY,
	driver        TEXT NOT NULL,
	seed          TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	finished_at   TEXT,
	turns         INTEGER NOT NULL DEFAULT 0,
	player_wins   INTEGER NOT NULL DEFAULT 0,
	guesses       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS turn_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	turn          INTEGER NOT NULL,
	choice        INTEGER NOT NULL CHECK (choice IN (0, 1)),
	prediction    INTEGER NOT NULL CHECK (prediction IN (0, 1)),
	guessed       INTEGER NOT NULL,
	driver        TEXT,
	created_at    TEXT NOT NULL,
	UNIQUE (session_id, turn),
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);
`

// #endregion schema

// timeLayout is RFC3339 with fixed-width nanoseconds so that created_at
// sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #region store-struct
// Store persists sessions and their turns in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region create-session
// CreateSession opens a new session for driver with the given seed.
func (s *Store) CreateSession(driver string, seed uint64) (Session, error) {
	sess := Session{
		SessionID: uuid.New().String(),
		Driver:    driver,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, driver, seed, created_at) VALUES (?, ?, ?, ?)`,
		sess.SessionID, driver, strconv.FormatUint(seed, 10), sess.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// #endregion create-session

// #region finish-session
// FinishSession stamps the end time and stores the final totals.
func (s *Store) FinishSession(id string, totals Totals) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET finished_at = ?, turns = ?, player_wins = ?, guesses = ?
		 WHERE session_id = ?`,
		time.Now().UTC().Format(timeLayout), totals.Turns, totals.PlayerWins, totals.Guesses, id,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// #endregion finish-session

// #region get-session
// GetSession retrieves a session by ID.
func (s *Store) GetSession(id string) (Session, error) {
	row := s.db.QueryRow(
		`SELECT session_id, driver, seed, created_at, finished_at, turns, player_wins, guesses
		 FROM sessions WHERE session_id = ?`, id,
	)
	sess, err := scanSession(row)
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return sess, nil
}

// #endregion get-session

// #region list-sessions
// ListSessions returns the most recent sessions, newest first.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT session_id, driver, seed, created_at, finished_at, turns, player_wins, guesses
		 FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// #endregion list-sessions

// #region list-turns
// ListTurns returns a session's turns in play order.
func (s *Store) ListTurns(sessionID string) ([]TurnRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, turn, choice, prediction, guessed, driver, created_at
		 FROM turn_log WHERE session_id = ? ORDER BY turn ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var rec TurnRecord
		var guessed int
		var driver sql.NullString
		var createdStr string
		if err := rows.Scan(&rec.SessionID, &rec.Turn, &rec.Choice, &rec.Prediction, &guessed, &driver, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Guessed = guessed != 0
		if driver.Valid {
			rec.Driver = driver.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		turns = append(turns, rec)
	}
	return turns, rows.Err()
}

// Choices returns just the opponent's choices for a session, in order.
func (s *Store) Choices(sessionID string) ([]int, error) {
	turns, err := s.ListTurns(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(turns))
	for i, t := range turns {
		out[i] = t.Choice
	}
	return out, nil
}

// #endregion list-turns

// #region scan
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (Session, error) {
	var sess Session
	var seedStr, createdStr string
	var finished sql.NullString
	if err := r.Scan(&sess.SessionID, &sess.Driver, &seedStr, &createdStr, &finished,
		&sess.Turns, &sess.PlayerWins, &sess.Guesses); err != nil {
		return Session{}, err
	}
	seed, err := strconv.ParseUint(seedStr, 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("parse seed: %w", err)
	}
	sess.Seed = seed
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	if finished.Valid {
		sess.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished.String)
	}
	return sess, nil
}

// #endregion scan
