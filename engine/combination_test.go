package engine

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		typ   ComboType
		rank  uint8
		color Color
	}{
		{"single", "7R", ComboSingle, 7, ColorRed},
		{"single dragon", "Dragon", ComboSingle, 12, ColorGreen},
		{"single multi", "1M", ComboSingle, 1, ColorMulti},
		{"pair max color", "7R 7G", ComboPair, 7, ColorRed},
		{"pair of phoenixes", "PY PG", ComboPair, 11, ColorYellow},
		{"pair with multi", "1M 1G", ComboPair, 1, ColorGreen},
		{"three of a kind", "7G 7Y 7R", ComboThreeOfAKind, 7, ColorRed},
		{"gang of four", "3G 3G 3Y 3R", ComboGang4, 3, ColorRed},
		{"gang of five ones", "1G 1Y 1R 1M 1G", ComboGang5, 1, ColorRed},
		{"straight", "2G 3Y 4R 5G 6Y", ComboStraight, 6, ColorYellow},
		{"straight unordered", "6Y 4R 2G 5G 3Y", ComboStraight, 6, ColorYellow},
		{"straight flush with multi", "1M 2G 3G 4G 5G", ComboStraightFlush, 5, ColorGreen},
		{"straight flush", "4R 5R 6R 7R 8R", ComboStraightFlush, 8, ColorRed},
		{"flush", "2G 5G 7G 9G 10G", ComboFlush, 10, ColorGreen},
		{"flush with pair inside", "5Y 5Y 7Y 8Y 9Y", ComboFlush, 9, ColorYellow},
		{"full house", "6G 6Y 6R 9G 9Y", ComboFullHouse, 6, ColorRed},
		{"full house low triple", "9G 9Y 2G 2Y 2G", ComboFullHouse, 2, ColorYellow},
		{"full house two phoenixes", "6G 6Y 6G PG PY", ComboFullHouse, 6, ColorYellow},
		{"gang of six", "6G 6G 6Y 6Y 6R 6R", ComboGang6, 6, ColorRed},
		{"gang of seven", "1G 1G 1Y 1Y 1R 1R 1M", ComboGang7, 1, ColorRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, ok := Classify(mustHand(t, tt.cards))
			if !ok {
				t.Fatalf("Classify(%q) invalid, want %v", tt.cards, tt.typ)
			}
			if combo.Type != tt.typ || combo.Rank != tt.rank || combo.Color != tt.color {
				t.Errorf("Classify(%q) = %v rank %d color %d, want %v rank %d color %d",
					tt.cards, combo.Type, combo.Rank, combo.Color, tt.typ, tt.rank, tt.color)
			}
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	tests := []struct {
		name  string
		cards string
	}{
		{"empty", ""},
		{"pair mixed ranks", "7R 8R"},
		{"pair with dragon", "Dragon 7R"},
		{"pair phoenix and number", "PG 7R"},
		{"pair phoenix and multi", "PG 1M"},
		{"three with phoenix", "PG PY 7R"},
		{"three mixed", "7G 7Y 8R"},
		{"four mixed", "3G 3G 3Y 4R"},
		{"four with phoenix", "3G 3Y 3R PG"},
		{"five nothing", "2G 3Y 4R 5G 7Y"},
		{"straight with phoenix", "7G 8G 9G 10G PG"},
		{"flush with phoenix", "PG 2G 3G 4G 5G"},
		{"straight with dragon", "8G 9G 10G PG Dragon"},
		{"full house one phoenix", "6G 6Y 6R 9G PG"},
		{"phoenix pair plus number pair", "6G 6Y PG PY 9R"},
		{"four plus one", "6G 6G 6Y 6Y 9R"},
		{"six mixed", "6G 6G 6Y 6Y 6R 7R"},
		{"seven not ones", "5G 5G 5Y 5Y 5R 5R 5R"},
		{"eight cards", "1G 1G 1Y 1Y 1R 1R 1M 2G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if combo, ok := Classify(mustHand(t, tt.cards)); ok {
				t.Errorf("Classify(%q) = %v, want invalid", tt.cards, combo.Type)
			}
		})
	}
}

// TestClassifyDoesNotMutate verifies the input order survives classification.
func TestClassifyDoesNotMutate(t *testing.T) {
	cards := mustHand(t, "6Y 4R 2G 5G 3Y")
	before := Play(cards).String()
	combo, ok := Classify(cards)
	if !ok {
		t.Fatal("expected straight")
	}
	if after := Play(cards).String(); after != before {
		t.Errorf("input reordered: %q -> %q", before, after)
	}
	if got := Play(combo.Cards).String(); got != "2G 3Y 4R 5G 6Y" {
		t.Errorf("combo cards = %q, want sorted", got)
	}
	if combo.Size() != 5 {
		t.Errorf("Size() = %d, want 5", combo.Size())
	}
}

// TestDragonOnlySingle verifies the dragon never joins a multi-card combination.
func TestDragonOnlySingle(t *testing.T) {
	deck := NewDeck()
	for size := 2; size <= 3; size++ {
		for subset := range Subsets(deck, size) {
			hasDragon := false
			for _, c := range subset {
				hasDragon = hasDragon || c.IsDragon()
			}
			if !hasDragon {
				continue
			}
			if combo, ok := Classify(subset); ok {
				t.Fatalf("Classify(%v) = %v, dragon must stay single", Play(subset), combo.Type)
			}
		}
	}
}
