package validation

import (
	"fmt"
	"strings"

	"railledger-service/pkg/stations"
)

// Suggestion is an advisory fix for a low-confidence field. Suggestions are
// surfaced to the caller and never applied automatically.
type Suggestion struct {
	Field     string `json:"field"`
	Current   string `json:"current"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
}

// OCR confusion pairs observed in scanned tickets. Keys are the characters
// the OCR tends to produce when the value is the expected one.
var letterToDigit = map[rune]rune{'O': '0', 'I': '1', 'S': '5', 'B': '8'}
var digitToLetter = map[rune]rune{'0': 'O', '1': 'I', '5': 'S', '8': 'B'}

func swapRunes(value string, table map[rune]rune) string {
	return strings.Map(func(r rune) rune {
		if repl, ok := table[r]; ok {
			return repl
		}
		return r
	}, value)
}

// SuggestNumericFix proposes an OCR-confusion correction for a field that
// should be all digits (transaction id, numeric PNR, train number).
func SuggestNumericFix(field, value string, schema *FieldSchema) *Suggestion {
	if value == "" {
		return nil
	}
	fixed := swapRunes(strings.ToUpper(value), letterToDigit)
	if fixed == value {
		return nil
	}
	if res := ValidateField(field, fixed, schema); !res.IsValid {
		return nil
	}
	return &Suggestion{
		Field:     field,
		Current:   value,
		Suggested: fixed,
		Reason:    "letters replaced with commonly confused digits",
	}
}

// SuggestStationFix proposes a correction for an unknown station code: first
// the digit-to-letter confusion swap, then a canonical-code lookup on the
// accompanying station name.
func SuggestStationFix(field, code, name string) *Suggestion {
	if code != "" {
		if _, ok := stations.Lookup(code); ok {
			return nil
		}
		fixed := swapRunes(strings.ToUpper(code), digitToLetter)
		if fixed != code {
			if _, ok := stations.Lookup(fixed); ok {
				return &Suggestion{
					Field:     field,
					Current:   code,
					Suggested: fixed,
					Reason:    "digits replaced with commonly confused letters",
				}
			}
		}
	}
	if name != "" {
		if canonical, ok := stations.Canonical(name); ok && canonical != code {
			return &Suggestion{
				Field:     field,
				Current:   code,
				Suggested: canonical,
				Reason:    fmt.Sprintf("canonical code for station %q", name),
			}
		}
	}
	return nil
}

// Name fragments used for advisory gender inference.
var femaleNameHints = []string{"DEVI", "KUMARI", "BEN", "BAI", "RANI", "MATA"}
var maleNameHints = []string{"KUMAR", "SINGH", "SHARMA", "DAS", "RAJ"}

// SuggestGender infers a likely gender from common Indian name fragments
// when the extracted gender is missing. Advisory only.
func SuggestGender(field, name string) *Suggestion {
	upper := strings.ToUpper(name)
	for _, hint := range femaleNameHints {
		if strings.Contains(upper, hint) {
			return &Suggestion{Field: field, Suggested: "Female", Reason: fmt.Sprintf("name contains %q", hint)}
		}
	}
	for _, hint := range maleNameHints {
		if strings.Contains(upper, hint) {
			return &Suggestion{Field: field, Suggested: "Male", Reason: fmt.Sprintf("name contains %q", hint)}
		}
	}
	return nil
}
