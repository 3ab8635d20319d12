// Package agent encodes hands, tricks and legal plays into the fixed-width
// input of the external decision model, and maps its outputs back to plays.
package agent

import engine "github.com/jason-s-yu/gangoffour/engine"

// cardSlots assigns each card in cards its slot, giving repeated copies of
// the same card successive copy indices.
func cardSlots(cards []engine.Card, visit func(slot int)) {
	seen := make(map[engine.Card]int, len(cards))
	for _, c := range cards {
		visit(CardIndex(c, seen[c]))
		seen[c]++
	}
}

// EncodeCards writes the additive encoding of cards into out: every
// occurrence adds 0.5 to its slot and slots are clamped to [0, 1].
// out is zeroed internally before writing.
func EncodeCards(cards []engine.Card, out *[CardSlots]float32) {
	*out = [CardSlots]float32{}
	cardSlots(cards, func(slot int) { out[slot] += 0.5 })
	for i := range out {
		out[i] = clamp01(out[i])
	}
}

// EncodeCardsBinary writes the presence encoding of cards into out.
// out is zeroed internally before writing.
func EncodeCardsBinary(cards []engine.Card, out *[CardSlots]float32) {
	*out = [CardSlots]float32{}
	cardSlots(cards, func(slot int) { out[slot] = 1.0 })
}

// StateInput is everything Encode needs for one decision.
type StateInput struct {
	Hand       []engine.Card
	ValidPlays []engine.Play
	Leading    bool
	Trick      []engine.Card

	// Played lists cards already out of play. nil means unknown: the
	// opponent region is then left empty. A non-nil empty slice is known
	// to be empty and still fills the opponent region.
	Played []engine.Card

	// OpponentHandSizes holds up to three counts; missing entries count as
	// a full hand.
	OpponentHandSizes []int
}

// Encode writes the 328-dim feature vector into out and returns the ordered
// action list whose indices the action mask and the model outputs refer to.
// out is zeroed internally before writing.
//
// Layout:
//
//	[0-63]    hand (additive)
//	[64-127]  played cards (binary)
//	[128-191] trick to beat (binary)
//	[192-255] opponent inference, clamp(1 - hand - played), only when Played != nil
//	[256-295] action mask, 1.0 per ordered action slot
//	[296-327] context: hand size/16, 3 opponent sizes/16, leading flag at +12,
//	          hand size/16 again at +20
func Encode(in StateInput, out *[InputDim]float32) []engine.Play {
	*out = [InputDim]float32{}

	var region [CardSlots]float32
	EncodeCards(in.Hand, &region)
	copy(out[HandOffset:], region[:])

	if len(in.Played) > 0 {
		EncodeCardsBinary(in.Played, &region)
		copy(out[PlayedOffset:], region[:])
	}

	if len(in.Trick) > 0 {
		EncodeCardsBinary(in.Trick, &region)
		copy(out[TrickOffset:], region[:])
	}

	if in.Played != nil {
		var hand, played [CardSlots]float32
		EncodeCardsBinary(in.Hand, &hand)
		EncodeCardsBinary(in.Played, &played)
		for i := 0; i < CardSlots; i++ {
			out[OpponentOffset+i] = clamp01(1 - hand[i] - played[i])
		}
	}

	ordered := OrderPlays(in.ValidPlays)
	for i := range ordered {
		out[ActionMaskOffset+i] = 1.0
	}

	handSize := float32(len(in.Hand)) / HandSizeScale
	out[ContextOffset+CtxHandSize] = handSize
	for i := 0; i < NumOpponents; i++ {
		size := engine.MaxHandSize
		if i < len(in.OpponentHandSizes) {
			size = in.OpponentHandSizes[i]
		}
		out[ContextOffset+CtxOpponentSizes+i] = float32(size) / HandSizeScale
	}
	if in.Leading {
		out[ContextOffset+CtxLeading] = 1.0
	}
	out[ContextOffset+CtxHandSizeRepeat] = handSize

	return ordered
}

// ActionMask copies the action mask region out of an encoded state.
func ActionMask(state *[InputDim]float32) [MaxActions]float32 {
	var mask [MaxActions]float32
	copy(mask[:], state[ActionMaskOffset:ActionMaskOffset+MaxActions])
	return mask
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
