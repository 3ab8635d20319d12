package engine

import "iter"

// Subsets yields every k-card subset of cards in lexicographic index order.
// Each yielded slice is freshly allocated and may be retained by the caller.
// The sequence is finite and can be ranged over any number of times.
func Subsets(cards []Card, k int) iter.Seq[[]Card] {
	return func(yield func([]Card) bool) {
		n := len(cards)
		if k <= 0 || k > n {
			return
		}

		// idx holds the current combination of indices; advance it like an odometer.
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			subset := make([]Card, k)
			for i, j := range idx {
				subset[i] = cards[j]
			}
			if !yield(subset) {
				return
			}

			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// AllCombinations returns every legal combination contained in hand:
// each card as a single (in hand order), then every classified subset of
// two to seven cards.
func AllCombinations(hand []Card) []Play {
	plays := make([]Play, 0, len(hand))
	for _, c := range hand {
		plays = append(plays, Play{c})
	}
	for size := 2; size <= min(MaxComboSize, len(hand)); size++ {
		for subset := range Subsets(hand, size) {
			if _, ok := Classify(subset); ok {
				plays = append(plays, subset)
			}
		}
	}
	return plays
}

// LegalPlays returns the legal responses for hand.
//
// With no trick to beat (leading) every combination in the hand is legal and
// passing is not. When following, the result holds every same-size
// combination that beats the trick, then every gang of another size that beats
// it, and always ends with the pass (an empty Play). A trick that does not
// classify leaves pass as the only response.
func LegalPlays(hand, trick []Card) []Play {
	if len(trick) == 0 {
		return AllCombinations(hand)
	}

	target, ok := Classify(trick)
	if !ok {
		return []Play{{}}
	}

	var plays []Play
	for subset := range Subsets(hand, len(trick)) {
		if combo, ok := Classify(subset); ok && combo.Beats(target) {
			plays = append(plays, subset)
		}
	}

	// Gangs answer any trick regardless of size.
	for size := 4; size <= min(MaxComboSize, len(hand)); size++ {
		if size == len(trick) {
			continue
		}
		for subset := range Subsets(hand, size) {
			if combo, ok := Classify(subset); ok && combo.Beats(target) {
				plays = append(plays, subset)
			}
		}
	}

	return append(plays, Play{})
}
