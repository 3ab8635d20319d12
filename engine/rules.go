package engine

// Beats reports whether c legally beats other.
//
// Rules, in order:
//   - identical card multisets never beat each other
//   - a gang beats any non-gang; a non-gang never beats a gang
//   - gang vs gang: more cards wins, then rank, then color
//   - otherwise size and type must match; rank, then color, strictly greater
//
// Equal rank and color keys are a tie: neither side beats the other.
func (c Combination) Beats(other Combination) bool {
	if sameCards(c.Cards, other.Cards) {
		return false
	}

	switch {
	case c.Type.IsGang() && other.Type.IsGang():
		if a, b := c.Type.GangSize(), other.Type.GangSize(); a != b {
			return a > b
		}
		return outranks(c, other)
	case c.Type.IsGang():
		return true
	case other.Type.IsGang():
		return false
	}

	if len(c.Cards) != len(other.Cards) || c.Type != other.Type {
		return false
	}
	return outranks(c, other)
}

func outranks(a, b Combination) bool {
	if a.Rank != b.Rank {
		return a.Rank > b.Rank
	}
	return a.Color > b.Color
}

// sameCards compares two sorted card slices as multisets.
func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CanBeat classifies both card sets and reports whether play beats trick.
// It returns false when either side is not a legal combination.
func CanBeat(play, trick []Card) bool {
	p, ok := Classify(play)
	if !ok {
		return false
	}
	t, ok := Classify(trick)
	if !ok {
		return false
	}
	return p.Beats(t)
}
