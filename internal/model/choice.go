package model

import "strings"

// Choice is an evaluator's verdict for one candidate slot.
// Stored as a single-letter token, presented as a symbol.
type Choice string

const (
	ChoiceOK     Choice = "O"
	ChoiceMaybe  Choice = "M"
	ChoiceReject Choice = "X"
)

var choiceSymbols = map[Choice]string{
	ChoiceOK:     "○",
	ChoiceMaybe:  "△",
	ChoiceReject: "×",
}

var symbolChoices = map[string]Choice{
	"○": ChoiceOK,
	"△": ChoiceMaybe,
	"×": ChoiceReject,
	"x": ChoiceReject,
}

func (c Choice) Valid() bool {
	_, ok := choiceSymbols[c]
	return ok
}

// Symbol returns the display form of the choice, "" for unknown values.
func (c Choice) Symbol() string {
	return choiceSymbols[c]
}

// ParseChoice maps incoming input to a Choice. Both storage tokens
// ("O", "M", "X", any case) and display symbols are accepted.
func ParseChoice(s string) (Choice, bool) {
	s = strings.TrimSpace(s)

	if s == "" {
		return "", false
	}

	if c, ok := symbolChoices[s]; ok {
		return c, true
	}

	c := Choice(strings.ToUpper(s))
	if c.Valid() {
		return c, true
	}

	return "", false
}
