package game

import "github.com/danielpatrickdp/mindreader/internal/predictor"

// Pull reads a choice, reports it together with the standing prediction, and
// updates the engine straight away.
type Pull struct {
	engine  *predictor.Engine
	source  Source
	current Turn
	last    predictor.Result
	done    bool
}

// NewPull reads the first turn immediately.
func NewPull(engine *predictor.Engine, source Source) *Pull {
	p := &Pull{engine: engine, source: source}
	p.pull()
	return p
}

func (p *Pull) pull() {
	c, ok := p.source.Next()
	if !ok {
		p.done = true
		return
	}
	p.current = Turn{
		Number:     p.current.Number + 1,
		Choice:     c,
		Prediction: p.engine.Prediction(),
		Guessed:    p.engine.Guessing(),
	}
	p.last = p.engine.Update(c)
}

func (p *Pull) Current() Turn { return p.current }

func (p *Pull) Advance() {
	if p.done {
		return
	}
	p.pull()
}

func (p *Pull) Done() bool { return p.done }

// Last returns the engine result for the current turn's choice.
func (p *Pull) Last() predictor.Result { return p.last }
