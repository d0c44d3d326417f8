package game

import "math/rand"

// Deck is one draw pile plus its discard pile. A lobby owns two of these,
// one for white cards and one for black cards; neither is safe for
// concurrent use on its own, callers hold the lobby lock.
type Deck[C any] struct {
	draw    []C
	discard []C
	rng     *rand.Rand
}

// NewDeck builds a deck from the given cards and shuffles the draw pile.
func NewDeck[C any](cards []C, rng *rand.Rand) *Deck[C] {
	d := &Deck[C]{
		draw: append([]C(nil), cards...),
		rng:  rng,
	}
	d.shuffleDraw()
	return d
}

// Draw removes up to n cards from the front of the draw pile. When the
// draw pile runs out the discard pile is reshuffled in; if both are empty
// the result is short and the caller must tolerate it.
func (d *Deck[C]) Draw(n int) []C {
	out := make([]C, 0, n)
	for len(out) < n {
		if len(d.draw) == 0 {
			if len(d.discard) == 0 {
				break
			}
			d.draw = d.discard
			d.discard = nil
			d.shuffleDraw()
		}
		out = append(out, d.draw[0])
		d.draw = d.draw[1:]
	}
	return out
}

// DrawOne draws a single card. The second result is false when the deck
// is fully exhausted.
func (d *Deck[C]) DrawOne() (C, bool) {
	cards := d.Draw(1)
	if len(cards) == 0 {
		var zero C
		return zero, false
	}
	return cards[0], true
}

// Discard appends cards to the discard pile.
func (d *Deck[C]) Discard(cards ...C) {
	d.discard = append(d.discard, cards...)
}

// Remaining returns the pile sizes as (draw, discard).
func (d *Deck[C]) Remaining() (int, int) {
	return len(d.draw), len(d.discard)
}

func (d *Deck[C]) shuffleDraw() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}
