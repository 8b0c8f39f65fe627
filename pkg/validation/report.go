package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"railledger-service/internal/domain/entity"
)

// minImportConfidence is the overall score a report must clear to be valid.
const minImportConfidence = 70.0

// Report is the per-ticket validation outcome. It is consumed immediately by
// the caller and never persisted in the relational store.
type Report struct {
	PNR               string             `json:"pnr"`
	FieldScores       map[string]float64 `json:"field_scores"` // 0-100 per field
	OverallConfidence float64            `json:"overall_confidence"`
	IsValid           bool               `json:"is_valid"`
	Errors            []string           `json:"errors,omitempty"`
	Warnings          []string           `json:"warnings,omitempty"`
	Suggestions       []Suggestion       `json:"suggestions,omitempty"`
	PassengerExtras   []PassengerExtra   `json:"passenger_extras,omitempty"`
}

// PassengerExtra carries derived per-passenger attributes: the profile key,
// the age category and the equal fare share of the ticket total.
type PassengerExtra struct {
	PassengerKey string  `json:"passenger_key"`
	AgeCategory  string  `json:"age_category"`
	IsSenior     bool    `json:"is_senior"`
	IsChild      bool    `json:"is_child"`
	FareShare    float64 `json:"fare_share"`
}

// AgeCategory buckets an age the way the booking rules do.
func AgeCategory(age int) string {
	switch {
	case age <= 12:
		return "child"
	case age <= 17:
		return "minor"
	case age <= 59:
		return "adult"
	default:
		return "senior"
	}
}

// pnrChecksumWeights are applied to the first nine digits of an all-numeric
// PNR; the tenth digit is the mod-10 check digit.
var pnrChecksumWeights = []int{2, 3, 4, 5, 6, 7, 2, 3, 4}

// pnrChecksum reports whether an all-digit PNR passes the weighted mod-10
// check. ok=false when the PNR is not ten digits.
func pnrChecksum(pnr string) (passed, ok bool) {
	if len(pnr) != 10 {
		return false, false
	}
	sum := 0
	for i, r := range pnr[:9] {
		if r < '0' || r > '9' {
			return false, false
		}
		sum += int(r-'0') * pnrChecksumWeights[i]
	}
	last := pnr[9]
	if last < '0' || last > '9' {
		return false, false
	}
	check := (10 - sum%10) % 10
	return check == int(last-'0'), true
}

// BuildReport aggregates field validation, business rules and correction
// suggestions into one scored report for a ticket extraction.
func BuildReport(t *entity.TicketExtraction) *Report {
	r := &Report{
		PNR:         t.PNR,
		FieldScores: make(map[string]float64),
	}
	criticalError := false

	eval := func(field, value string, schema *FieldSchema, critical bool) FieldResult {
		res := ValidateField(field, value, schema)
		r.FieldScores[field] = math.Round(res.Confidence * 100)
		r.Errors = append(r.Errors, res.Errors...)
		if critical && len(res.Errors) > 0 {
			criticalError = true
		}
		return res
	}

	// Ticket-level fields.
	pnrRes := eval("pnr", t.PNR, SchemaPNR, true)
	if pnrRes.IsValid {
		if passed, ok := pnrChecksum(t.PNR); ok && !passed {
			// Checksum failure demotes confidence, not validity; OCR noise on
			// a single digit is far more likely than a forged PNR.
			score := 70.0
			if strings.IndexByte("123489", t.PNR[0]) >= 0 {
				score = 85.0
			}
			r.FieldScores["pnr"] = score
			r.Warnings = append(r.Warnings, fmt.Sprintf("PNR %s fails checksum", t.PNR))
		}
	}
	eval("transaction_id", t.TransactionID, SchemaTransactionID, true)
	eval("ticket_print_time", t.PrintTime, SchemaDatetime, false)
	if s := SuggestNumericFix("transaction_id", t.TransactionID, SchemaTransactionID); s != nil {
		r.Suggestions = append(r.Suggestions, *s)
	}

	// Journey fields.
	for i := range t.Journeys {
		j := &t.Journeys[i]
		prefix := fmt.Sprintf("journey_%d_", i)
		eval(prefix+"train_number", j.TrainNumber, SchemaTrainNumber, false)
		eval(prefix+"train_name", j.TrainName, SchemaTrainName, false)
		eval(prefix+"class", j.Class, SchemaClass, false)
		eval(prefix+"quota", j.Quota, SchemaQuota, false)
		eval(prefix+"distance", intValue(j.DistanceKm), SchemaDistance, false)
		eval(prefix+"boarding_station", j.Boarding.Station, SchemaStationCode, false)
		eval(prefix+"boarding_datetime", j.Boarding.Datetime, SchemaDatetime, false)
		eval(prefix+"destination_station", j.Destination.Station, SchemaStationCode, false)
		eval(prefix+"destination_datetime", j.Destination.Datetime, SchemaDatetime, false)

		if s := SuggestStationFix(prefix+"boarding_station", j.Boarding.Station, j.Boarding.StationName); s != nil {
			r.Suggestions = append(r.Suggestions, *s)
		}
		if s := SuggestStationFix(prefix+"destination_station", j.Destination.Station, j.Destination.StationName); s != nil {
			r.Suggestions = append(r.Suggestions, *s)
		}
		if ok, detail := CheckJourneyTiming(j); !ok {
			r.Warnings = append(r.Warnings, detail)
		}
	}

	// Passenger fields and derived extras.
	fareShare := 0.0
	if t.Payment.Total > 0 && len(t.Passengers) > 0 {
		fareShare = math.Round(t.Payment.Total/float64(len(t.Passengers))*100) / 100
	}
	for i := range t.Passengers {
		p := &t.Passengers[i]
		prefix := fmt.Sprintf("passenger_%d_", i)
		eval(prefix+"name", p.Name, SchemaPassengerName, true)
		eval(prefix+"age", intValue(p.Age), SchemaAge, false)
		eval(prefix+"gender", p.Gender, SchemaGender, false)
		eval(prefix+"booking_status", p.BookingStatus, SchemaBookingStatus, false)
		eval(prefix+"food_choice", p.FoodChoice, SchemaFoodChoice, false)

		if p.Gender == "" {
			if s := SuggestGender(prefix+"gender", p.Name); s != nil {
				r.Suggestions = append(r.Suggestions, *s)
			}
		}
		r.PassengerExtras = append(r.PassengerExtras, PassengerExtra{
			PassengerKey: entity.ProfileKey(p.Name, p.Age),
			AgeCategory:  AgeCategory(p.Age),
			IsSenior:     p.Age >= 60,
			IsChild:      p.Age > 0 && p.Age <= 12,
			FareShare:    fareShare,
		})
	}

	// Payment fields.
	eval("payment_ticket_fare", floatValue(t.Payment.TicketFare), SchemaFare, false)
	eval("payment_total", floatValue(t.Payment.Total), SchemaFare, false)

	// Business rules feed warnings only; OCR noise on amounts and timings
	// must not block an otherwise clean import.
	if ok, detail := CheckFareConsistency(&t.Payment); !ok {
		r.Warnings = append(r.Warnings, detail)
	}
	if ok, detail := CheckPassengerCount(len(t.Passengers)); !ok {
		r.Warnings = append(r.Warnings, detail)
	}

	// Unweighted mean over every evaluated field.
	if len(r.FieldScores) > 0 {
		sum := 0.0
		for _, score := range r.FieldScores {
			sum += score
		}
		r.OverallConfidence = math.Round(sum/float64(len(r.FieldScores))*100) / 100
	}
	r.IsValid = !criticalError && r.OverallConfidence >= minImportConfidence
	return r
}

// AsMap renders the report for document archiving.
func (r *Report) AsMap() map[string]interface{} {
	m := map[string]interface{}{
		"pnr":                r.PNR,
		"field_scores":       r.FieldScores,
		"overall_confidence": r.OverallConfidence,
		"is_valid":           r.IsValid,
	}
	if len(r.Errors) > 0 {
		m["errors"] = r.Errors
	}
	if len(r.Warnings) > 0 {
		m["warnings"] = r.Warnings
	}
	if len(r.Suggestions) > 0 {
		m["suggestions"] = r.Suggestions
	}
	return m
}

func intValue(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func floatValue(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
