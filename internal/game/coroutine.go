package game

import "github.com/danielpatrickdp/mindreader/internal/predictor"

// Coroutine exposes each turn before the engine sees it. The engine update for
// the current turn runs when the caller resumes with Advance, and only then is
// the next choice read. A Coroutine is single use; build a new one to replay.
type Coroutine struct {
	engine  *predictor.Engine
	source  Source
	current Turn
	last    predictor.Result
	done    bool
}

// NewCoroutine runs up to the first suspension point: one choice is read and
// exposed. An empty source leaves the coroutine done.
func NewCoroutine(engine *predictor.Engine, source Source) *Coroutine {
	c := &Coroutine{engine: engine, source: source}
	c.read()
	return c
}

func (c *Coroutine) read() {
	ch, ok := c.source.Next()
	if !ok {
		c.done = true
		return
	}
	c.current = Turn{
		Number:     c.current.Number + 1,
		Choice:     ch,
		Prediction: c.engine.Prediction(),
		Guessed:    c.engine.Guessing(),
	}
}

func (c *Coroutine) Current() Turn { return c.current }

// Advance resumes: update the engine with the exposed choice, then read the
// next one. Done turns true on the Advance that finds the source exhausted.
func (c *Coroutine) Advance() {
	if c.done {
		return
	}
	c.last = c.engine.Update(c.current.Choice)
	c.read()
}

func (c *Coroutine) Done() bool { return c.done }

// Last returns the result of the most recent engine update.
func (c *Coroutine) Last() predictor.Result { return c.last }
