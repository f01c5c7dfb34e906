package game

import "github.com/danielpatrickdp/mindreader/internal/rng"

// Pennies is the baseline game: a fresh random prediction every turn and no
// learning.
type Pennies struct {
	rand    rng.Source
	source  Source
	current Turn
	done    bool
}

// NewPennies reads the first turn immediately.
func NewPennies(src rng.Source, source Source) *Pennies {
	p := &Pennies{rand: src, source: source}
	p.read()
	return p
}

func (p *Pennies) read() {
	prediction := p.rand.Bit()
	c, ok := p.source.Next()
	if !ok {
		p.done = true
		return
	}
	p.current = Turn{
		Number:     p.current.Number + 1,
		Choice:     c,
		Prediction: prediction,
		Guessed:    true,
	}
}

func (p *Pennies) Current() Turn { return p.current }

func (p *Pennies) Advance() {
	if !p.done {
		p.read()
	}
}

func (p *Pennies) Done() bool { return p.done }
