package game

import (
	"errors"
	"testing"

	"github.com/danielpatrickdp/mindreader/internal/choice"
	"github.com/danielpatrickdp/mindreader/internal/predictor"
	"github.com/danielpatrickdp/mindreader/internal/rng"
)

// #region helpers
func pairs(turns []Turn) [][3]int {
	out := make([][3]int, len(turns))
	for i, t := range turns {
		g := 0
		if t.Guessed {
			g = 1
		}
		out[i] = [3]int{t.Choice, t.Prediction, g}
	}
	return out
}

func samePairs(t *testing.T, a, b []Turn) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	pa, pb := pairs(a), pairs(b)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Errorf("turn %d: %v vs %v", i+1, pa[i], pb[i])
		}
		if a[i].Number != i+1 || b[i].Number != i+1 {
			t.Errorf("turn %d: numbering %d / %d", i+1, a[i].Number, b[i].Number)
		}
	}
}

// #endregion helpers

// #region driver-tests
func TestPullAllZeros(t *testing.T) {
	d := NewPull(predictor.New(rng.Constant(0)), NewSliceSource(0, 0, 0, 0, 0, 0))
	var guessing []bool
	var shown []int
	for !d.Done() {
		shown = append(shown, d.Current().Prediction)
		d.Advance()
		if !d.Done() {
			guessing = append(guessing, d.Current().Guessed)
		}
	}
	for i, p := range shown {
		if p != 0 {
			t.Errorf("turn %d: expected prediction 0, got %d", i+1, p)
		}
	}
	// Shown predictions for turns 2..6 were made by updates 1..5.
	want := []bool{true, true, true, false, false}
	for i, w := range want {
		if guessing[i] != w {
			t.Errorf("turn %d: expected guessed=%v, got %v", i+2, w, guessing[i])
		}
	}
}

func TestPullLastResult(t *testing.T) {
	d := NewPull(predictor.New(rng.Constant(0)), NewSliceSource(0, 0, 0, 0))
	want := []bool{true, true, true, false}
	for i := 0; !d.Done(); i++ {
		if d.Last().Guessing != want[i] {
			t.Errorf("update %d: expected guessing=%v, got %v", i+1, want[i], d.Last().Guessing)
		}
		d.Advance()
	}
}

func TestDriversEquivalent(t *testing.T) {
	sequences := [][]int{
		{0, 0, 0, 0, 0, 0},
		{0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
		{1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0},
		{1, 0, 1, 1, 0, 0, 1, 0, 0, 0, 1, 1, 1, 0},
		{},
	}
	for _, seq := range sequences {
		pull := Collect(NewPull(predictor.New(rng.New(7)), NewSliceSource(seq...)))
		co := Collect(NewCoroutine(predictor.New(rng.New(7)), NewSliceSource(seq...)))
		if len(pull) != len(seq) {
			t.Fatalf("expected %d turns, got %d", len(seq), len(pull))
		}
		samePairs(t, pull, co)
	}
}

func TestDriversEquivalentLongRandom(t *testing.T) {
	opponent := rng.New(99)
	seq := make([]int, 500)
	for i := range seq {
		seq[i] = opponent.Bit()
	}
	pull := Collect(NewPull(predictor.New(rng.New(3)), NewSliceSource(seq...)))
	co := Collect(NewCoroutine(predictor.New(rng.New(3)), NewSliceSource(seq...)))
	samePairs(t, pull, co)
}

func TestCoroutineDoneAfterExhaustingResume(t *testing.T) {
	c := NewCoroutine(predictor.New(rng.Constant(0)), NewSliceSource(1, 0, 1))
	for i := 0; i < 3; i++ {
		if c.Done() {
			t.Fatalf("done too early after %d resumes", i)
		}
		if c.Current().Number != i+1 {
			t.Fatalf("expected turn %d, got %d", i+1, c.Current().Number)
		}
		c.Advance()
	}
	if !c.Done() {
		t.Fatal("expected done after the resume that exhausted the source")
	}
	// Further resumes are harmless
	c.Advance()
	if !c.Done() {
		t.Fatal("expected done to stay true")
	}
}

func TestCoroutineEmptySource(t *testing.T) {
	c := NewCoroutine(predictor.New(rng.Constant(0)), NewSliceSource())
	if !c.Done() {
		t.Fatal("expected empty source to finish at construction")
	}
}

func TestCoroutineDefersUpdate(t *testing.T) {
	e := predictor.New(rng.Constant(0))
	c := NewCoroutine(e, NewSliceSource(0, 0))
	if c.Current().Choice != 0 || c.Current().Prediction != 0 {
		t.Fatalf("unexpected first turn %+v", c.Current())
	}
	// The engine has not seen the first choice until resume.
	if c.Last().Transition != choice.Shrug {
		t.Fatalf("expected no update before resume, got %+v", c.Last())
	}
	c.Advance()
	if c.Last().Transition != choice.Change {
		t.Fatalf("expected first update to classify as change, got %s", c.Last().Transition)
	}
	if c.Current().Prediction != e.Prediction() {
		t.Fatal("second turn should expose the updated prediction")
	}
}

func TestPennies(t *testing.T) {
	d := NewPennies(rng.Sequence(1, 0), NewSliceSource(1, 1, 1, 1))
	turns := Collect(d)
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	want := []int{1, 0, 1, 0}
	for i, turn := range turns {
		if turn.Prediction != want[i] {
			t.Errorf("turn %d: expected prediction %d, got %d", i+1, want[i], turn.Prediction)
		}
		if !turn.Guessed {
			t.Errorf("turn %d: pennies always guesses", i+1)
		}
	}
}

func TestNewDriver(t *testing.T) {
	for _, kind := range []string{KindPull, KindCoroutine, KindPennies} {
		d, err := NewDriver(kind, rng.Constant(0), NewSliceSource(0))
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if d.Done() {
			t.Fatalf("%s: should have one turn", kind)
		}
	}
	if _, err := NewDriver("async", rng.Constant(0), NewSliceSource()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

// #endregion driver-tests

// #region play-tests
func TestPlayTally(t *testing.T) {
	d := NewCoroutine(predictor.New(rng.Constant(0)), NewSliceSource(0, 0, 0, 0, 0, 0))
	var seen int
	tally, err := Play(d, func(turn Turn) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if seen != 6 || tally.Turns != 6 {
		t.Fatalf("expected 6 turns, got seen=%d tally=%d", seen, tally.Turns)
	}
	if tally.PlayerWins != 0 || tally.MachineWins() != 6 {
		t.Errorf("expected machine to win all, got %+v", tally)
	}
	// Shown predictions on turns 1-4 were random.
	if tally.Guesses != 4 {
		t.Errorf("expected 4 guesses, got %d", tally.Guesses)
	}
}

func TestPlayStopsOnError(t *testing.T) {
	d := NewPull(predictor.New(rng.Constant(1)), NewSliceSource(0, 1, 0, 1))
	stop := errors.New("stop")
	tally, err := Play(d, func(turn Turn) error {
		if turn.Number == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop error, got %v", err)
	}
	if tally.Turns != 2 {
		t.Fatalf("expected 2 turns tallied, got %d", tally.Turns)
	}
}

func TestTallyAdd(t *testing.T) {
	var tl Tally
	tl.Add(Turn{Choice: 0, Prediction: 0, Guessed: true})
	tl.Add(Turn{Choice: 1, Prediction: 0})
	tl.Add(Turn{Choice: 1, Prediction: 1})
	if tl.Turns != 3 || tl.PlayerWins != 1 || tl.Guesses != 1 || tl.MachineWins() != 2 {
		t.Fatalf("unexpected tally %+v", tl)
	}
}

// #endregion play-tests
