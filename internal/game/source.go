package game

import (
	"bufio"
	"io"
	"strings"
)

// #region source
// Source supplies the opponent's choices. ok is false once input is exhausted.
type Source interface {
	Next() (choice int, ok bool)
}

// SliceSource replays a fixed list of choices.
type SliceSource struct {
	choices []int
	pos     int
}

// NewSliceSource returns a Source over choices.
func NewSliceSource(choices ...int) *SliceSource {
	return &SliceSource{choices: choices}
}

// Next returns the next recorded choice.
func (s *SliceSource) Next() (int, bool) {
	if s.pos >= len(s.choices) {
		return 0, false
	}
	c := s.choices[s.pos]
	s.pos++
	return c, true
}

// #endregion source

// #region reader-source
// ReaderSource reads one choice per line. The first line that is not "0" or
// "1" ends the game, as does EOF.
type ReaderSource struct {
	scanner *bufio.Scanner
	done    bool
	err     error
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(r)}
}

// Next reads and parses the next line.
func (s *ReaderSource) Next() (int, bool) {
	if s.done {
		return 0, false
	}
	if !s.scanner.Scan() {
		s.done = true
		s.err = s.scanner.Err()
		return 0, false
	}
	c, ok := ParseChoice(s.scanner.Text())
	if !ok {
		s.done = true
		return 0, false
	}
	return c, true
}

// Err returns the read error that ended input, if any.
func (s *ReaderSource) Err() error { return s.err }

// ParseChoice accepts exactly "0" or "1", ignoring surrounding whitespace.
func ParseChoice(line string) (int, bool) {
	switch strings.TrimSpace(line) {
	case "0":
		return 0, true
	case "1":
		return 1, true
	}
	return 0, false
}

// #endregion reader-source
