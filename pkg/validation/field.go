package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field value types checked by the rule engine.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
)

// Confidence penalties per failed rule. Failures compound by subtraction and
// the result is floored at zero.
const (
	penaltyType    = 0.3
	penaltyPattern = 0.4
	penaltyEnum    = 0.5
	penaltyRange   = 0.3
	penaltyLength  = 0.3

	// optionalMissingConfidence is reported for absent optional fields.
	optionalMissingConfidence = 0.8
)

// FieldSchema is a declarative rule set for a single scalar field. Zero-value
// members mean the corresponding rule is not applied.
type FieldSchema struct {
	Required  bool
	Type      string
	Pattern   string
	Enum      []string
	Min       float64
	Max       float64
	HasRange  bool
	MinLen    int
	MaxLen    int
	HasLength bool

	pattern *regexp.Regexp
}

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	Field      string
	Value      string
	IsValid    bool
	Confidence float64
	Errors     []string
}

// ValidateField checks value against schema and yields a confidence score.
// A field can fail validation and still carry a non-zero confidence; the
// correction suggester uses that to rank candidates.
func ValidateField(field, value string, schema *FieldSchema) FieldResult {
	res := FieldResult{Field: field, Value: value}
	value = strings.TrimSpace(value)

	if value == "" {
		if schema.Required {
			res.IsValid = false
			res.Confidence = 0
			res.Errors = append(res.Errors, fmt.Sprintf("%s is required", field))
			return res
		}
		res.IsValid = true
		res.Confidence = optionalMissingConfidence
		return res
	}

	res.IsValid = true
	res.Confidence = 1.0

	penalize := func(p float64, msg string) {
		res.IsValid = false
		res.Confidence -= p
		res.Errors = append(res.Errors, msg)
	}

	var numeric float64
	numericOK := false
	switch schema.Type {
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			penalize(penaltyType, fmt.Sprintf("%s must be an integer, got %q", field, value))
		} else {
			numeric = float64(n)
			numericOK = true
		}
	case TypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			penalize(penaltyType, fmt.Sprintf("%s must be a number, got %q", field, value))
		} else {
			numeric = f
			numericOK = true
		}
	}

	if schema.Pattern != "" {
		re := schema.pattern
		if re == nil {
			re = regexp.MustCompile(schema.Pattern)
		}
		if !re.MatchString(value) {
			penalize(penaltyPattern, fmt.Sprintf("%s does not match expected format", field))
		}
	}

	if len(schema.Enum) > 0 {
		found := false
		for _, allowed := range schema.Enum {
			if value == allowed {
				found = true
				break
			}
		}
		if !found {
			penalize(penaltyEnum, fmt.Sprintf("%s must be one of %s", field, strings.Join(schema.Enum, ", ")))
		}
	}

	if schema.HasRange && numericOK {
		if numeric < schema.Min || numeric > schema.Max {
			penalize(penaltyRange, fmt.Sprintf("%s out of range [%g, %g]: %g", field, schema.Min, schema.Max, numeric))
		}
	}

	if schema.HasLength {
		if len(value) < schema.MinLen || len(value) > schema.MaxLen {
			penalize(penaltyLength, fmt.Sprintf("%s length must be between %d and %d", field, schema.MinLen, schema.MaxLen))
		}
	}

	if res.Confidence < 0 {
		res.Confidence = 0
	}
	return res
}
