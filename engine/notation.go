package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports card text that matches no known notation.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse card: %q", e.Text)
}

// String returns the canonical notation: Dragon, PhoenixG, PhoenixY, 1M or <rank><G|Y|R>.
func (c Card) String() string {
	switch c.Kind {
	case KindDragon:
		return "Dragon"
	case KindPhoenix:
		if c.Color == ColorGreen {
			return "PhoenixG"
		}
		return "PhoenixY"
	}
	if c.Color == ColorMulti {
		return "1M"
	}
	return strconv.Itoa(int(c.Rank)) + colorLetter(c.Color)
}

func colorLetter(c Color) string {
	switch c {
	case ColorGreen:
		return "G"
	case ColorYellow:
		return "Y"
	case ColorRed:
		return "R"
	}
	return "?"
}

// ParseCard parses a single card. Matching is case-insensitive.
func ParseCard(text string) (Card, error) {
	s := strings.TrimSpace(text)
	switch strings.ToUpper(s) {
	case "DRAGON", "D":
		return Dragon, nil
	case "PHOENIXG", "PG":
		return PhoenixGreen, nil
	case "PHOENIXY", "PY":
		return PhoenixYellow, nil
	case "1M", "M1":
		return MultiOne, nil
	}

	if len(s) >= 2 {
		var color Color
		switch s[len(s)-1] {
		case 'G', 'g':
			color = ColorGreen
		case 'Y', 'y':
			color = ColorYellow
		case 'R', 'r':
			color = ColorRed
		default:
			return Card{}, &ParseError{Text: text}
		}
		digits := s[:len(s)-1]
		if isDigits(digits) {
			if rank, err := strconv.Atoi(digits); err == nil && rank >= int(RankMin) && rank <= int(RankMax) {
				return NewNumber(color, uint8(rank)), nil
			}
		}
	}
	return Card{}, &ParseError{Text: text}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseHand splits text on whitespace and parses every token.
// The first failure is returned and no partial hand.
func ParseHand(text string) ([]Card, error) {
	fields := strings.Fields(text)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// FormatCards renders cards as space separated notation; empty input yields "".
func FormatCards(cards []Card) string {
	if len(cards) == 0 {
		return ""
	}
	return Play(cards).String()
}
