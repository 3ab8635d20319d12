//go:build encodingfuzz

package agent

import (
	"testing"

	engine "github.com/jason-s-yu/gangoffour/engine"
)

// nextRand advances an xorshift64 state.
func nextRand(state *uint64) uint64 {
	x := *state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*state = x
	return x
}

// TestEncodeFuzzInvariants encodes random follow-up positions from dealt
// hands and checks the structural invariants of every vector.
func TestEncodeFuzzInvariants(t *testing.T) {
	const rounds = 300
	for seed := uint64(1); seed <= rounds; seed++ {
		hands := engine.Deal(seed)
		rng := seed * 2654435761

		// Trim the hand so the enumeration stays small.
		hand := hands[0][:8+nextRand(&rng)%5]

		var trick []engine.Card
		if nextRand(&rng)%4 != 0 {
			leads := engine.LegalPlays(hands[1][:8], nil)
			trick = leads[nextRand(&rng)%uint64(len(leads))]
		}
		played := hands[2][:nextRand(&rng)%10]

		valid := engine.LegalPlays(hand, trick)
		var out [InputDim]float32
		ordered := Encode(StateInput{
			Hand:       hand,
			ValidPlays: valid,
			Leading:    len(trick) == 0,
			Trick:      trick,
			Played:     played,
		}, &out)

		for i, v := range out {
			if v < 0 || v > 1 {
				t.Fatalf("seed %d: out[%d] = %v out of [0,1]", seed, i, v)
			}
		}

		var handSum float32
		for i := 0; i < CardSlots; i++ {
			handSum += out[HandOffset+i]
		}
		if want := float32(len(hand)) * 0.5; handSum != want {
			t.Fatalf("seed %d: hand region sums to %v, want %v", seed, handSum, want)
		}

		mask := ActionMask(&out)
		for i, v := range mask {
			if (i < len(ordered)) != (v == 1) {
				t.Fatalf("seed %d: mask[%d] = %v with %d ordered plays", seed, i, v, len(ordered))
			}
		}

		if len(trick) > 0 {
			for i, p := range ordered[1:] {
				if !engine.CanBeat(p, trick) {
					t.Fatalf("seed %d: slot %d %v does not beat %v", seed, i+1, p, engine.Play(trick))
				}
			}
		}
	}
}
