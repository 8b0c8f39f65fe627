package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railledger-service/internal/domain/entity"
)

func cleanTicket() *entity.TicketExtraction {
	return &entity.TicketExtraction{
		PNR:           "AB12CD34EF",
		TransactionID: "1234567890",
		PrintTime:     "01-06-2024 20:15:00",
		Payment:       entity.Payment{TicketFare: 1500, IRCTCFee: 17.70, Total: 1517.70},
		Passengers: []entity.PassengerExtraction{
			{SNo: 1, Name: "RAM KUMAR", Age: 30, Gender: "Male", BookingStatus: "CNF/B2/12", FoodChoice: "Veg"},
		},
		Journeys: []entity.JourneyExtraction{
			{
				TrainNumber: "12956",
				TrainName:   "JP BCT SUPERFAST",
				Class:       "3A",
				Quota:       "GN",
				DistanceKm:  1160,
				Boarding:    entity.StationStop{Station: "JP", Datetime: "01-06-2024 06:10:00"},
				Destination: entity.StationStop{Station: "BCT", Datetime: "01-06-2024 19:05:00"},
				Sequence:    1,
			},
		},
	}
}

func TestBuildReportCleanTicket(t *testing.T) {
	r := BuildReport(cleanTicket())

	assert.True(t, r.IsValid)
	assert.InDelta(t, 100.0, r.OverallConfidence, 0.001)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.InDelta(t, 100, r.FieldScores["pnr"], 0.001)
	assert.InDelta(t, 100, r.FieldScores["journey_0_train_number"], 0.001)

	require.Len(t, r.PassengerExtras, 1)
	extra := r.PassengerExtras[0]
	assert.Equal(t, "RAM KUMAR_30", extra.PassengerKey)
	assert.Equal(t, "adult", extra.AgeCategory)
	assert.False(t, extra.IsSenior)
	assert.False(t, extra.IsChild)
	assert.InDelta(t, 1517.70, extra.FareShare, 0.001)
}

func TestBuildReportChecksum(t *testing.T) {
	// Valid check digit: no demotion.
	ticket := cleanTicket()
	ticket.PNR = "1234567894"
	r := BuildReport(ticket)
	assert.InDelta(t, 100, r.FieldScores["pnr"], 0.001)
	assert.Empty(t, r.Warnings)

	// Failing check digit on a PNR with a plausible leading digit: soft demotion.
	ticket = cleanTicket()
	ticket.PNR = "1234567890"
	r = BuildReport(ticket)
	assert.True(t, r.IsValid)
	assert.InDelta(t, 85, r.FieldScores["pnr"], 0.001)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "checksum")

	// Failing check digit with an implausible leading digit: harder demotion.
	ticket = cleanTicket()
	ticket.PNR = "7234567890"
	r = BuildReport(ticket)
	assert.InDelta(t, 70, r.FieldScores["pnr"], 0.001)
}

func TestBuildReportCriticalFieldInvalidates(t *testing.T) {
	ticket := cleanTicket()
	ticket.TransactionID = ""
	r := BuildReport(ticket)
	assert.False(t, r.IsValid)
	assert.NotEmpty(t, r.Errors)

	ticket = cleanTicket()
	ticket.Passengers[0].Name = "ram kumar"
	r = BuildReport(ticket)
	assert.False(t, r.IsValid)
}

func TestBuildReportFareMismatchWarnsOnly(t *testing.T) {
	ticket := cleanTicket()
	ticket.Payment.Total = 2000
	r := BuildReport(ticket)
	assert.True(t, r.IsValid)
	require.NotEmpty(t, r.Warnings)
}

func TestBuildReportSuggestsGenderWhenMissing(t *testing.T) {
	ticket := cleanTicket()
	ticket.Passengers[0].Name = "SUNITA DEVI"
	ticket.Passengers[0].Gender = ""
	r := BuildReport(ticket)

	found := false
	for _, s := range r.Suggestions {
		if s.Field == "passenger_0_gender" && s.Suggested == "Female" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildReportSuggestsStationFix(t *testing.T) {
	ticket := cleanTicket()
	ticket.Journeys[0].Boarding.Station = "NDL5"
	r := BuildReport(ticket)

	found := false
	for _, s := range r.Suggestions {
		if s.Field == "journey_0_boarding_station" && s.Suggested == "NDLS" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAgeCategory(t *testing.T) {
	assert.Equal(t, "child", AgeCategory(5))
	assert.Equal(t, "minor", AgeCategory(15))
	assert.Equal(t, "adult", AgeCategory(40))
	assert.Equal(t, "senior", AgeCategory(65))
}

func TestReportAsMap(t *testing.T) {
	r := BuildReport(cleanTicket())
	m := r.AsMap()
	assert.Equal(t, "AB12CD34EF", m["pnr"])
	assert.Equal(t, true, m["is_valid"])
	_, hasErrors := m["errors"]
	assert.False(t, hasErrors)
}
