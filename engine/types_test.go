package engine

import (
	"errors"
	"testing"
)

// mustHand parses notation or fails the test.
func mustHand(t *testing.T, s string) []Card {
	t.Helper()
	cards, err := ParseHand(s)
	if err != nil {
		t.Fatalf("ParseHand(%q): %v", s, err)
	}
	return cards
}

// TestCardStringRoundTrip verifies ParseCard(c.String()) == c for every card in the deck.
func TestCardStringRoundTrip(t *testing.T) {
	for _, c := range NewDeck() {
		got, err := ParseCard(c.String())
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseCard(%q) = %+v, want %+v", c.String(), got, c)
		}
	}
}

// TestParseCardAliases verifies every accepted notation normalizes to its canonical form.
func TestParseCardAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dragon", "Dragon"},
		{"D", "Dragon"},
		{"dragon", "Dragon"},
		{"PhoenixG", "PhoenixG"},
		{"PG", "PhoenixG"},
		{"PhoenixY", "PhoenixY"},
		{"py", "PhoenixY"},
		{"1M", "1M"},
		{"M1", "1M"},
		{"m1", "1M"},
		{"7R", "7R"},
		{"7r", "7R"},
		{"10G", "10G"},
		{" 1Y ", "1Y"},
	}
	for _, tt := range tests {
		c, err := ParseCard(tt.in)
		if err != nil {
			t.Errorf("ParseCard(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got := c.String(); got != tt.want {
			t.Errorf("ParseCard(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestParseCardInvalid verifies rejected notations return a *ParseError.
func TestParseCardInvalid(t *testing.T) {
	for _, in := range []string{"", "G", "0R", "11G", "7B", "7", "X", "+7R", "7RR", "Phoenix", "1MM"} {
		_, err := ParseCard(in)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseCard(%q) error = %v, want *ParseError", in, err)
			continue
		}
		if pe.Text != in {
			t.Errorf("ParseError.Text = %q, want %q", pe.Text, in)
		}
	}
}

// TestParseHand verifies whitespace splitting and first-failure propagation.
func TestParseHand(t *testing.T) {
	cards, err := ParseHand("  7R\t7G\n PG  Dragon ")
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	want := []Card{NewNumber(ColorRed, 7), NewNumber(ColorGreen, 7), PhoenixGreen, Dragon}
	if len(cards) != len(want) {
		t.Fatalf("len = %d, want %d", len(cards), len(want))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("cards[%d] = %v, want %v", i, cards[i], want[i])
		}
	}

	cards, err = ParseHand("7R 12G 3Y")
	if err == nil {
		t.Fatal("expected error for 12G")
	}
	if cards != nil {
		t.Errorf("expected no partial hand, got %v", cards)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Text != "12G" {
		t.Errorf("error = %v, want ParseError for 12G", err)
	}

	cards, err = ParseHand("")
	if err != nil || len(cards) != 0 {
		t.Errorf("ParseHand(\"\") = %v, %v; want empty, nil", cards, err)
	}
}

// TestPlayString verifies pass and card rendering.
func TestPlayString(t *testing.T) {
	if got := Play(nil).String(); got != "PASS" {
		t.Errorf("nil play = %q, want PASS", got)
	}
	p := Play(mustHand(t, "1M PY 10R"))
	if got := p.String(); got != "1M PhoenixY 10R" {
		t.Errorf("play = %q", got)
	}
	if got := FormatCards(nil); got != "" {
		t.Errorf("FormatCards(nil) = %q, want empty", got)
	}
	if p.RankSum() != 1+11+10 {
		t.Errorf("RankSum = %d", p.RankSum())
	}
	if p.ColorSum() != 0+2+3 {
		t.Errorf("ColorSum = %d", p.ColorSum())
	}
}

// TestComboTypeGang verifies gang predicates and sizes.
func TestComboTypeGang(t *testing.T) {
	tests := []struct {
		t    ComboType
		gang bool
		size int
	}{
		{ComboSingle, false, 0},
		{ComboStraightFlush, false, 0},
		{ComboGang4, true, 4},
		{ComboGang5, true, 5},
		{ComboGang6, true, 6},
		{ComboGang7, true, 7},
	}
	for _, tt := range tests {
		if tt.t.IsGang() != tt.gang {
			t.Errorf("%v.IsGang() = %v, want %v", tt.t, tt.t.IsGang(), tt.gang)
		}
		if tt.t.GangSize() != tt.size {
			t.Errorf("%v.GangSize() = %d, want %d", tt.t, tt.t.GangSize(), tt.size)
		}
	}
	if ComboInvalid.String() != "invalid" || ComboFullHouse.String() != "full_house" {
		t.Errorf("unexpected names %q %q", ComboInvalid, ComboFullHouse)
	}
}
