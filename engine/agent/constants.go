package agent

import engine "github.com/jason-s-yu/gangoffour/engine"

// Layout of the 328-dim model input. Offsets are part of the contract the
// decision model was trained against and must not move.
const (
	InputDim   = 328
	MaxActions = 40
	CardSlots  = 64

	HandOffset       = 0   // hand, additive encoding
	PlayedOffset     = 64  // cards already played, binary
	TrickOffset      = 128 // trick to beat, binary
	OpponentOffset   = 192 // cards plausibly held by opponents
	ActionMaskOffset = 256 // one flag per ordered action slot
	ContextOffset    = 296 // scalar context features
)

// Positions inside the context region, relative to ContextOffset.
const (
	CtxHandSize       = 0
	CtxOpponentSizes  = 1 // three consecutive slots
	CtxLeading        = 12
	CtxHandSizeRepeat = 20
)

// HandSizeScale normalizes hand sizes in the context region.
const HandSizeScale = float32(engine.MaxHandSize)

// NumOpponents is the number of other players at the table.
const NumOpponents = engine.NumPlayers - 1

// Fixed slots for the unique cards.
const (
	SlotMultiOne      = 60
	SlotPhoenixGreen  = 61
	SlotPhoenixYellow = 62
	SlotDragon        = 63
)

// DeclareThreshold is the declare probability above which a declaration is advised.
const DeclareThreshold = 0.5

// CardIndex maps a physical card copy to its slot in a 64-wide card region.
// Number cards use (rank-1)*6 + (color-1)*2 + copy, copy saturating at 1.
func CardIndex(c engine.Card, copyIdx int) int {
	switch {
	case c.IsDragon():
		return SlotDragon
	case c.IsPhoenix():
		if c.Color == engine.ColorGreen {
			return SlotPhoenixGreen
		}
		return SlotPhoenixYellow
	case c.Color == engine.ColorMulti:
		return SlotMultiOne
	}
	copyIdx = min(max(copyIdx, 0), 1)
	return (int(c.Rank)-1)*6 + (int(c.Color)-1)*2 + copyIdx
}
