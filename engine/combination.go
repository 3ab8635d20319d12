package engine

// Combination is a classified set of cards. Values are only produced by
// Classify, so the keys always follow from the cards.
type Combination struct {
	Cards []Card // sorted by rank, then color
	Type  ComboType
	Rank  uint8 // primary ranking key
	Color Color // tie-break key
}

// Size returns the number of cards in the combination.
func (c Combination) Size() int { return len(c.Cards) }

// Classify decides whether cards form a legal combination.
// Dispatch is by cardinality; anything outside 1..7 is invalid.
// The input slice is not modified.
func Classify(cards []Card) (Combination, bool) {
	if len(cards) == 0 || len(cards) > MaxComboSize {
		return Combination{}, false
	}
	sorted := sortedCopy(cards)

	switch len(sorted) {
	case 1:
		c := sorted[0]
		return Combination{Cards: sorted, Type: ComboSingle, Rank: c.Rank, Color: c.Color}, true
	case 2:
		return classifyPair(sorted)
	case 3:
		return classifySameRank(sorted, ComboThreeOfAKind)
	case 4:
		return classifySameRank(sorted, ComboGang4)
	case 5:
		if combo, ok := classifySameRank(sorted, ComboGang5); ok {
			return combo, true
		}
		return classifyFive(sorted)
	case 6:
		return classifySameRank(sorted, ComboGang6)
	case 7:
		if sorted[0].Rank != 1 {
			return Combination{}, false
		}
		return classifySameRank(sorted, ComboGang7)
	}
	return Combination{}, false
}

func classifyPair(cards []Card) (Combination, bool) {
	a, b := cards[0], cards[1]
	if a.IsDragon() || b.IsDragon() {
		return Combination{}, false
	}
	// Two Phoenix cards pair up; keys come from the second card.
	if a.IsPhoenix() && b.IsPhoenix() {
		return Combination{Cards: cards, Type: ComboPair, Rank: b.Rank, Color: b.Color}, true
	}
	if a.IsNumber() && b.IsNumber() && a.Rank == b.Rank {
		return Combination{Cards: cards, Type: ComboPair, Rank: a.Rank, Color: max(a.Color, b.Color)}, true
	}
	return Combination{}, false
}

// classifySameRank accepts n number cards of one rank as the given type.
func classifySameRank(cards []Card, t ComboType) (Combination, bool) {
	rank := cards[0].Rank
	for _, c := range cards {
		if !c.IsNumber() || c.Rank != rank {
			return Combination{}, false
		}
	}
	return Combination{Cards: cards, Type: t, Rank: rank, Color: maxColor(cards)}, true
}

// classifyFive handles full house, straight, flush and straight flush.
func classifyFive(cards []Card) (Combination, bool) {
	hasPhoenix := false
	for _, c := range cards {
		if c.IsDragon() {
			return Combination{}, false
		}
		if c.IsPhoenix() {
			hasPhoenix = true
		}
	}

	if combo, ok := classifyFullHouse(cards); ok {
		return combo, true
	}
	// Phoenix never substitutes in straights or flushes.
	if hasPhoenix {
		return Combination{}, false
	}

	straight := isStraight(cards)
	flush, flushColor := isFlush(cards)
	high := cards[len(cards)-1] // sorted by rank, then color

	switch {
	case straight && flush:
		return Combination{Cards: cards, Type: ComboStraightFlush, Rank: high.Rank, Color: flushColor}, true
	case flush:
		return Combination{Cards: cards, Type: ComboFlush, Rank: high.Rank, Color: flushColor}, true
	case straight:
		return Combination{Cards: cards, Type: ComboStraight, Rank: high.Rank, Color: high.Color}, true
	}
	return Combination{}, false
}

func classifyFullHouse(cards []Card) (Combination, bool) {
	var numbers []Card
	phoenixes := 0
	counts := make(map[uint8]int, 2)
	for _, c := range cards {
		switch c.Kind {
		case KindPhoenix:
			phoenixes++
		case KindNumber:
			numbers = append(numbers, c)
			counts[c.Rank]++
		}
	}

	tripleRank, hasTriple, hasPair := uint8(0), false, false
	for r, n := range counts {
		switch n {
		case 3:
			tripleRank, hasTriple = r, true
		case 2:
			hasPair = true
		}
	}
	if !hasTriple {
		return Combination{}, false
	}

	switch {
	case phoenixes == 0 && hasPair && len(counts) == 2:
		var triple []Card
		for _, c := range numbers {
			if c.Rank == tripleRank {
				triple = append(triple, c)
			}
		}
		return Combination{Cards: cards, Type: ComboFullHouse, Rank: tripleRank, Color: maxColor(triple)}, true
	case phoenixes == 2 && len(numbers) == 3:
		return Combination{Cards: cards, Type: ComboFullHouse, Rank: tripleRank, Color: maxColor(numbers)}, true
	}
	return Combination{}, false
}

// isStraight reports five strictly consecutive ranks. cards must be sorted.
func isStraight(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank != cards[i-1].Rank+1 {
			return false
		}
	}
	return true
}

// isFlush reports whether every non-Multi card shares one color, and returns
// that color (Red when only Multi cards are present).
func isFlush(cards []Card) (bool, Color) {
	color := ColorMulti
	for _, c := range cards {
		if c.Color == ColorMulti {
			continue
		}
		if color == ColorMulti {
			color = c.Color
		} else if c.Color != color {
			return false, ColorMulti
		}
	}
	if color == ColorMulti {
		return true, ColorRed
	}
	return true, color
}

func maxColor(cards []Card) Color {
	m := ColorMulti
	for _, c := range cards {
		m = max(m, c.Color)
	}
	return m
}
