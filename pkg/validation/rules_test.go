package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"railledger-service/internal/domain/entity"
)

func TestCheckFareConsistency(t *testing.T) {
	ok, _ := CheckFareConsistency(&entity.Payment{TicketFare: 100, IRCTCFee: 10, Total: 110})
	assert.True(t, ok)

	ok, detail := CheckFareConsistency(&entity.Payment{TicketFare: 100, IRCTCFee: 10, Total: 115})
	assert.False(t, ok)
	assert.Contains(t, detail, "115")

	// Sub-tolerance rounding noise passes.
	ok, _ = CheckFareConsistency(&entity.Payment{TicketFare: 100.05, IRCTCFee: 10, Total: 110})
	assert.True(t, ok)
}

func TestCheckJourneyTiming(t *testing.T) {
	j := &entity.JourneyExtraction{
		TrainNumber: "12956",
		Boarding:    entity.StationStop{Station: "JP", Datetime: "01-06-2024 06:10:00"},
		Destination: entity.StationStop{Station: "BCT", Datetime: "01-06-2024 19:05:00"},
	}
	ok, _ := CheckJourneyTiming(j)
	assert.True(t, ok)

	j.Destination.Datetime = "01-06-2024 05:00:00"
	ok, detail := CheckJourneyTiming(j)
	assert.False(t, ok)
	assert.Contains(t, detail, "12956")

	// Unparseable datetimes skip the check.
	j.Destination.Datetime = "garbled"
	ok, _ = CheckJourneyTiming(j)
	assert.True(t, ok)
}

func TestCheckPassengerCount(t *testing.T) {
	ok, _ := CheckPassengerCount(1)
	assert.True(t, ok)
	ok, _ = CheckPassengerCount(10)
	assert.True(t, ok)
	ok, _ = CheckPassengerCount(0)
	assert.False(t, ok)
	ok, _ = CheckPassengerCount(11)
	assert.False(t, ok)
}

func TestParseTicketTime(t *testing.T) {
	got, ok := ParseTicketTime("15-08-2024 22:30:00")
	assert.True(t, ok)
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 22, got.Hour())

	_, ok = ParseTicketTime("15-08-2024 22:30")
	assert.True(t, ok)

	_, ok = ParseTicketTime("")
	assert.False(t, ok)
	_, ok = ParseTicketTime("2024-08-15T22:30:00Z")
	assert.False(t, ok)
}
