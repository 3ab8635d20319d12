// Package engine implements the Gang of Four combination rules.
//
// Every function here is pure: inputs are never mutated and no state is
// shared between calls, so the package is safe for concurrent use without
// coordination.
package engine

import "fmt"

// NewDeck returns the 64-card deck in a fixed order: two copies of each
// number card 1..10 in green, yellow and red, then the Multi 1, both
// Phoenixes and the Dragon.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for rank := RankMin; rank <= RankMax; rank++ {
		for color := ColorGreen; color <= ColorRed; color++ {
			c := NewNumber(color, rank)
			deck = append(deck, c, c)
		}
	}
	return append(deck, MultiOne, PhoenixGreen, PhoenixYellow, Dragon)
}

// Deal shuffles a fresh deck with the given seed and splits it into
// NumPlayers hands of MaxHandSize cards. The same seed always deals the same
// hands.
func Deal(seed uint64) [NumPlayers][]Card {
	deck := NewDeck()
	rng := seed
	if rng == 0 {
		rng = 1 // xorshift can't start at 0
	}

	// Fisher-Yates shuffle.
	for i := len(deck) - 1; i > 0; i-- {
		rng = xorshift64(rng)
		j := int(rng % uint64(i+1))
		deck[i], deck[j] = deck[j], deck[i]
	}

	var hands [NumPlayers][]Card
	for p := range hands {
		hands[p] = deck[p*MaxHandSize : (p+1)*MaxHandSize : (p+1)*MaxHandSize]
	}
	return hands
}

func xorshift64(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

// Copies returns how many physical copies of c exist in the deck:
// 2 for number cards 1..10 in G/Y/R, 1 for each special card, 0 otherwise.
func Copies(c Card) int {
	switch c {
	case MultiOne, PhoenixGreen, PhoenixYellow, Dragon:
		return 1
	}
	if c.IsNumber() && c.Color != ColorMulti && c.Rank >= RankMin && c.Rank <= RankMax {
		return 2
	}
	return 0
}

// CopyError reports more copies of a card than the deck holds.
type CopyError struct {
	Card  Card
	Count int
	Max   int
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("card %s appears %d times, deck holds %d", e.Card, e.Count, e.Max)
}

// CheckCopies verifies that the card sets taken together fit in one deck.
func CheckCopies(sets ...[]Card) error {
	counts := make(map[Card]int)
	for _, set := range sets {
		for _, c := range set {
			counts[c]++
			if limit := Copies(c); counts[c] > limit {
				return &CopyError{Card: c, Count: counts[c], Max: limit}
			}
		}
	}
	return nil
}
