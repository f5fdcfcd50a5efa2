package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// CardType represents a card category
type CardType int

const (
	Number CardType = iota
	Modifier
)

// MaxNumber is the highest number card value.
const MaxNumber = 12

// NumberValues is the count of distinct number card values (0..12).
const NumberValues = MaxNumber + 1

// ModifierKind represents a modifier card kind
type ModifierKind int

const (
	PlusTwo ModifierKind = iota
	PlusFour
	PlusTen
	TimesTwo

	// NumModifierKinds is the number of distinct modifier kinds; each kind
	// appears exactly once in the full card set.
	NumModifierKinds
)

// String returns the string representation of a modifier kind
func (k ModifierKind) String() string {
	switch k {
	case PlusTwo:
		return "+2"
	case PlusFour:
		return "+4"
	case PlusTen:
		return "+10"
	case TimesTwo:
		return "x2"
	default:
		return "?"
	}
}

// IsMultiplier returns true if the modifier multiplies the banked score
// rather than adding to it.
func (k ModifierKind) IsMultiplier() bool {
	return k == TimesTwo
}

// Amount returns the additive delta or multiplicative factor of the kind.
// Unrecognized kinds return 0 and score as a no-op.
func (k ModifierKind) Amount() int {
	switch k {
	case PlusTwo:
		return 2
	case PlusFour:
		return 4
	case PlusTen:
		return 10
	case TimesTwo:
		return 2
	default:
		return 0
	}
}

// Card represents a single Flip-7 card: either a number card with a value in
// 0..12 or a modifier card with a kind. Only the value/kind matters for
// scoring; cards of the same value/kind are interchangeable.
type Card struct {
	Type  CardType
	Value int          // number cards only
	Kind  ModifierKind // modifier cards only
}

// NumberCard creates a number card with the given value
func NumberCard(value int) Card {
	return Card{Type: Number, Value: value}
}

// ModifierCard creates a modifier card of the given kind
func ModifierCard(kind ModifierKind) Card {
	return Card{Type: Modifier, Kind: kind}
}

// String returns the string representation of a card (e.g. "7", "+4", "x2")
func (c Card) String() string {
	if c.Type == Modifier {
		return c.Kind.String()
	}
	return strconv.Itoa(c.Value)
}

// ParseCard parses a single card token such as "7", "+10" or "x2".
func ParseCard(s string) (Card, error) {
	switch strings.ToLower(s) {
	case "+2":
		return ModifierCard(PlusTwo), nil
	case "+4":
		return ModifierCard(PlusFour), nil
	case "+10":
		return ModifierCard(PlusTen), nil
	case "x2":
		return ModifierCard(TimesTwo), nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	if v < 0 || v > MaxNumber {
		return Card{}, fmt.Errorf("number card %d out of range 0..%d", v, MaxNumber)
	}
	return NumberCard(v), nil
}

// ParseCards parses a whitespace or comma separated list of card tokens,
// e.g. "3 7 +4 x2". An empty string yields an empty hand.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
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

// FormatCards renders cards space-separated in hand order.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
