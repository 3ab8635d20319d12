package agent

import (
	"math"
	"slices"

	engine "github.com/jason-s-yu/gangoffour/engine"
)

// OrderPlays returns the canonical action list: slot 0 is always the pass,
// followed by the non-pass plays ordered by size, then rank sum, then color
// sum, truncated to MaxActions entries. Remaining ties are broken by the
// sorted card sequence, so the result does not depend on input order.
// Plays are returned with their cards in canonical order.
func OrderPlays(plays []engine.Play) []engine.Play {
	nonPass := make([]engine.Play, 0, len(plays))
	for _, p := range plays {
		if p.IsPass() {
			continue
		}
		c := slices.Clone(p)
		engine.SortCards(c)
		nonPass = append(nonPass, c)
	}

	slices.SortStableFunc(nonPass, comparePlays)

	ordered := make([]engine.Play, 0, min(len(nonPass)+1, MaxActions))
	ordered = append(ordered, nil)
	for _, p := range nonPass {
		if len(ordered) == MaxActions {
			break
		}
		ordered = append(ordered, p)
	}
	return ordered
}

// comparePlays expects both plays' cards in canonical order.
func comparePlays(a, b engine.Play) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	if ra, rb := a.RankSum(), b.RankSum(); ra != rb {
		return ra - rb
	}
	if ca, cb := a.ColorSum(), b.ColorSum(); ca != cb {
		return ca - cb
	}
	for i := range a {
		if a[i].Rank != b[i].Rank {
			return int(a[i].Rank) - int(b[i].Rank)
		}
		if a[i].Color != b[i].Color {
			return int(a[i].Color) - int(b[i].Color)
		}
		if a[i].Kind != b[i].Kind {
			return int(a[i].Kind) - int(b[i].Kind)
		}
	}
	return 0
}

// DecodeAction maps a model action index back to a play. Index 0 and any
// index outside ordered yield nil (pass).
func DecodeAction(index int, ordered []engine.Play) engine.Play {
	if index <= 0 || index >= len(ordered) {
		return nil
	}
	return ordered[index]
}

// Softmax returns max-subtracted exponential normalization of logits.
func Softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		maxLogit = max(maxLogit, l)
	}

	probs := make([]float32, len(logits))
	var sum float64
	exps := make([]float64, len(logits))
	for i, l := range logits {
		exps[i] = math.Exp(float64(l - maxLogit))
		sum += exps[i]
	}
	for i := range exps {
		probs[i] = float32(exps[i] / sum)
	}
	return probs
}

// ActionProbabilities normalizes only the logits that line up with a
// populated action slot; the padding of the fixed-width output is ignored.
func ActionProbabilities(logits []float32, ordered []engine.Play) []float32 {
	n := min(len(logits), len(ordered))
	return Softmax(logits[:n])
}

// BestAction returns the index of the highest logit among populated slots.
// Ties keep the lower index; 0 (pass) is returned when nothing is populated.
func BestAction(logits []float32, ordered []engine.Play) int {
	n := min(len(logits), len(ordered))
	best := 0
	for i := 1; i < n; i++ {
		if logits[i] > logits[best] {
			best = i
		}
	}
	return best
}
