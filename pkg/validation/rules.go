package validation

import (
	"fmt"
	"math"
	"time"

	"railledger-service/internal/domain/entity"
)

// Ticket datetime layouts, with and without seconds.
const (
	DatetimeLayout      = "02-01-2006 15:04:05"
	DatetimeLayoutShort = "02-01-2006 15:04"
)

// fareTolerance is the absolute currency tolerance when comparing the fare
// component sum against the printed total.
const fareTolerance = 0.1

// ParseTicketTime parses a ticket datetime string. Returns ok=false for
// missing or unparseable values so callers can skip timing checks.
func ParseTicketTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DatetimeLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(DatetimeLayoutShort, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CheckJourneyTiming verifies that a leg arrives strictly after it departs.
// Missing or unparseable datetimes skip the check.
func CheckJourneyTiming(j *entity.JourneyExtraction) (bool, string) {
	depart, okD := ParseTicketTime(j.Boarding.Datetime)
	arrive, okA := ParseTicketTime(j.Destination.Datetime)
	if !okD || !okA {
		return true, ""
	}
	if !arrive.After(depart) {
		return false, fmt.Sprintf("journey %s arrives at %s before departing at %s",
			j.TrainNumber, j.Destination.Datetime, j.Boarding.Datetime)
	}
	return true, ""
}

// CheckFareConsistency verifies that the fare components sum to the printed
// total within tolerance.
func CheckFareConsistency(p *entity.Payment) (bool, string) {
	sum := p.TicketFare + p.IRCTCFee + p.Insurance + p.AgentFee + p.PGCharges
	if math.Abs(sum-p.Total) > fareTolerance {
		return false, fmt.Sprintf("fare components sum to %.2f but total is %.2f", sum, p.Total)
	}
	return true, ""
}

// CheckPassengerCount verifies the per-ticket passenger bounds.
func CheckPassengerCount(count int) (bool, string) {
	if count < 1 || count > 10 {
		return false, fmt.Sprintf("ticket has %d passengers, expected between 1 and 10", count)
	}
	return true, ""
}
