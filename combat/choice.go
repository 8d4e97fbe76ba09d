package combat

import (
	"strconv"
	"strings"
)

// Choice identifies the active combatant variant.
type Choice string

const (
	ChoiceNinja   Choice = "ninja"
	ChoiceSamurai Choice = "samurai"
)

// Choices lists the accepted identifiers.
func Choices() []Choice { return []Choice{ChoiceNinja, ChoiceSamurai} }

// Valid reports whether c is one of the accepted identifiers.
func (c Choice) Valid() bool {
	return c == ChoiceNinja || c == ChoiceSamurai
}

func (c Choice) String() string { return string(c) }

// InvalidSelectionError is returned for an identifier that names no variant.
type InvalidSelectionError struct{ Value string }

func (e InvalidSelectionError) Error() string {
	// combat: invalid selection "ronin" (want ninja or samurai)
	return "combat: invalid selection " + strconv.Quote(e.Value) + " (want ninja or samurai)"
}

// ParseChoice normalizes s (trimmed, lower-cased) and validates it.
func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", InvalidSelectionError{Value: s}
	}
	return c, nil
}
