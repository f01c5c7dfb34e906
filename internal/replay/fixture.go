package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/mindreader/internal/game"
	"github.com/danielpatrickdp/mindreader/internal/rng"
	"github.com/danielpatrickdp/mindreader/internal/state"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string         `json:"description"`
	Driver      string         `json:"driver"`
	RandomBits  []int          `json:"random_bits,omitempty"` // cycled; takes precedence over Seed
	Seed        uint64         `json:"seed,omitempty"`
	Choices     []int          `json:"choices"`
	Expected    []ExpectedTurn `json:"expected"`
}

// ExpectedTurn is the reference pair for one turn.
type ExpectedTurn struct {
	Turn       int  `json:"turn"`
	Choice     int  `json:"choice"`
	Prediction int  `json:"prediction"`
	Guessed    bool `json:"guessed"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// Validate checks choices and the expected list before a replay.
func (f *Fixture) Validate() error {
	if f.Driver == "" {
		f.Driver = game.KindPull
	}
	for i, c := range f.Choices {
		if c != 0 && c != 1 {
			return fmt.Errorf("choice %d out of range: %d", i+1, c)
		}
	}
	for i, b := range f.RandomBits {
		if b != 0 && b != 1 {
			return fmt.Errorf("random bit %d out of range: %d", i+1, b)
		}
	}
	if len(f.Expected) != 0 && len(f.Expected) != len(f.Choices) {
		return fmt.Errorf("expected %d turns, fixture has %d choices", len(f.Expected), len(f.Choices))
	}
	return nil
}

// RandomSource builds the fixture's random stream.
func (f *Fixture) RandomSource() rng.Source {
	if len(f.RandomBits) > 0 {
		return rng.Sequence(f.RandomBits...)
	}
	return rng.New(f.Seed)
}

// #endregion fixture-loader

// #region from-session

// FromSession builds a fixture from a stored session. Expected turns are what
// was recorded during play, so replaying it checks that the engine still
// reproduces the session from its seed.
func FromSession(sess state.Session, turns []state.TurnRecord) *Fixture {
	f := &Fixture{
		Description: fmt.Sprintf("session %s (%s)", sess.SessionID, sess.Driver),
		Driver:      sess.Driver,
		Seed:        sess.Seed,
		Choices:     make([]int, len(turns)),
		Expected:    make([]ExpectedTurn, len(turns)),
	}
	for i, t := range turns {
		f.Choices[i] = t.Choice
		f.Expected[i] = ExpectedTurn{
			Turn:       t.Turn,
			Choice:     t.Choice,
			Prediction: t.Prediction,
			Guessed:    t.Guessed,
		}
	}
	return f
}

// #endregion from-session
