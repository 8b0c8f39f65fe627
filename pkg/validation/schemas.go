package validation

import "regexp"

// Declarative schemas for every ticket field. Patterns and ranges follow
// what IRCTC tickets actually print; ages and fares keep wide OCR-tolerant
// bounds.
var (
	SchemaPNR = &FieldSchema{
		Required: true,
		Pattern:  `^[A-Z0-9]{10}$`,
	}
	SchemaTransactionID = &FieldSchema{
		Required: true,
		Pattern:  `^\d{8,15}$`,
	}
	SchemaTrainNumber = &FieldSchema{
		Pattern: `^\d{4,5}$`,
	}
	SchemaTrainName = &FieldSchema{
		HasLength: true,
		MinLen:    2,
		MaxLen:    60,
	}
	SchemaClass = &FieldSchema{
		Enum: []string{"1A", "2A", "3A", "3E", "SL", "CC", "EC", "2S", "GN", "FC", "EA"},
	}
	SchemaQuota = &FieldSchema{
		Enum: []string{"GN", "TQ", "PT", "LD", "HP", "DF", "FT", "SS"},
	}
	SchemaStationCode = &FieldSchema{
		Pattern: `^[A-Z]{2,5}$`,
	}
	SchemaPassengerName = &FieldSchema{
		Required: true,
		Pattern:  `^[A-Z][A-Z\s]{1,49}$`,
	}
	SchemaAge = &FieldSchema{
		Type:     TypeInt,
		HasRange: true,
		Min:      0,
		Max:      120,
	}
	SchemaGender = &FieldSchema{
		Enum: []string{"Male", "Female", "Transgender"},
	}
	SchemaBookingStatus = &FieldSchema{
		Pattern: `^(CNF|RAC|RLWL|PQWL|WL)`,
	}
	SchemaFoodChoice = &FieldSchema{
		Enum: []string{"Veg", "Non-Veg", "JAIN"},
	}
	SchemaDatetime = &FieldSchema{
		Pattern: `^\d{2}-\d{2}-\d{4}\s+\d{2}:\d{2}(:\d{2})?$`,
	}
	SchemaFare = &FieldSchema{
		Type:     TypeFloat,
		HasRange: true,
		Min:      0,
		Max:      50000,
	}
	SchemaDistance = &FieldSchema{
		Type:     TypeInt,
		HasRange: true,
		Min:      1,
		Max:      5000,
	}
)

func init() {
	for _, s := range []*FieldSchema{
		SchemaPNR, SchemaTransactionID, SchemaTrainNumber, SchemaTrainName,
		SchemaClass, SchemaQuota, SchemaStationCode, SchemaPassengerName,
		SchemaAge, SchemaGender, SchemaBookingStatus, SchemaFoodChoice,
		SchemaDatetime, SchemaFare, SchemaDistance,
	} {
		if s.Pattern != "" {
			s.pattern = regexp.MustCompile(s.Pattern)
		}
	}
}
