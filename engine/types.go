package engine

import (
	"slices"
	"strings"
)

// Kind distinguishes ordinary number cards from the two special card kinds.
type Kind uint8

const (
	KindNumber  Kind = 0
	KindPhoenix Kind = 1
	KindDragon  Kind = 2
)

// Color is the card color. Multi is only carried by the wild 1.
type Color uint8

const (
	ColorMulti  Color = 0
	ColorGreen  Color = 1
	ColorYellow Color = 2
	ColorRed    Color = 3
)

// Rank constants for the special cards and the number range.
const (
	RankMin     uint8 = 1
	RankMax     uint8 = 10 // highest number card
	RankPhoenix uint8 = 11
	RankDragon  uint8 = 12
)

const (
	NumPlayers   = 4
	MaxHandSize  = 16 // starting hand
	MaxComboSize = 7
	DeckSize     = 64
)

// Card is a single card. Two physical copies of a number card are equal values.
type Card struct {
	Kind  Kind
	Color Color
	Rank  uint8
}

// The unique special cards.
var (
	MultiOne      = Card{Kind: KindNumber, Color: ColorMulti, Rank: 1}
	PhoenixGreen  = Card{Kind: KindPhoenix, Color: ColorGreen, Rank: RankPhoenix}
	PhoenixYellow = Card{Kind: KindPhoenix, Color: ColorYellow, Rank: RankPhoenix}
	Dragon        = Card{Kind: KindDragon, Color: ColorGreen, Rank: RankDragon}
)

// NewNumber constructs a number card of the given color and rank.
func NewNumber(color Color, rank uint8) Card {
	return Card{Kind: KindNumber, Color: color, Rank: rank}
}

func (c Card) IsNumber() bool  { return c.Kind == KindNumber }
func (c Card) IsPhoenix() bool { return c.Kind == KindPhoenix }
func (c Card) IsDragon() bool  { return c.Kind == KindDragon }

// compareCards orders by rank, then color, then kind.
func compareCards(a, b Card) int {
	if a.Rank != b.Rank {
		return int(a.Rank) - int(b.Rank)
	}
	if a.Color != b.Color {
		return int(a.Color) - int(b.Color)
	}
	return int(a.Kind) - int(b.Kind)
}

// SortCards sorts cards in place by rank, then color.
func SortCards(cards []Card) {
	slices.SortStableFunc(cards, compareCards)
}

// sortedCopy returns a sorted copy and leaves the input untouched.
func sortedCopy(cards []Card) []Card {
	out := slices.Clone(cards)
	SortCards(out)
	return out
}

// Play is a set of cards played together. The empty play is a pass.
type Play []Card

// IsPass reports whether the play holds no cards.
func (p Play) IsPass() bool { return len(p) == 0 }

// String renders the play in card notation, or PASS.
func (p Play) String() string {
	if p.IsPass() {
		return "PASS"
	}
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// RankSum returns the sum of member ranks.
func (p Play) RankSum() int {
	s := 0
	for _, c := range p {
		s += int(c.Rank)
	}
	return s
}

// ColorSum returns the sum of member color codes.
func (p Play) ColorSum() int {
	s := 0
	for _, c := range p {
		s += int(c.Color)
	}
	return s
}

// ---------------------------------------------------------------------------
// Combination types
// ---------------------------------------------------------------------------

// ComboType is the classified shape of a combination.
type ComboType uint8

const (
	ComboInvalid       ComboType = iota // 0
	ComboSingle                         // 1
	ComboPair                           // 2
	ComboThreeOfAKind                   // 3
	ComboStraight                       // 4
	ComboFlush                          // 5
	ComboFullHouse                      // 6
	ComboStraightFlush                  // 7
	ComboGang4                          // 8
	ComboGang5                          // 9
	ComboGang6                          // 10
	ComboGang7                          // 11
)

// IsGang returns true for the 4..7 of a kind bombs.
func (t ComboType) IsGang() bool {
	return t >= ComboGang4 && t <= ComboGang7
}

// GangSize returns the number of cards in a gang, or 0 for other types.
func (t ComboType) GangSize() int {
	if !t.IsGang() {
		return 0
	}
	return int(t-ComboGang4) + 4
}

func (t ComboType) String() string {
	switch t {
	case ComboSingle:
		return "single"
	case ComboPair:
		return "pair"
	case ComboThreeOfAKind:
		return "three_of_a_kind"
	case ComboStraight:
		return "straight"
	case ComboFlush:
		return "flush"
	case ComboFullHouse:
		return "full_house"
	case ComboStraightFlush:
		return "straight_flush"
	case ComboGang4:
		return "gang_of_four"
	case ComboGang5:
		return "gang_of_five"
	case ComboGang6:
		return "gang_of_six"
	case ComboGang7:
		return "gang_of_seven"
	}
	return "invalid"
}

// gangType maps a gang size to its ComboType.
func gangType(size int) ComboType {
	return ComboGang4 + ComboType(size-4)
}
