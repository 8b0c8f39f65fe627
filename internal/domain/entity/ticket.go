package entity

import (
	"time"
)

// StationStop is one endpoint of a journey leg as it appears on the ticket.
type StationStop struct {
	Station     string `json:"station" bson:"station"`
	StationName string `json:"station_name,omitempty" bson:"stationName,omitempty"`
	Datetime    string `json:"datetime" bson:"datetime"` // 02-01-2006 15:04:05
}

// JourneyExtraction is one train leg as extracted from a ticket PDF.
type JourneyExtraction struct {
	TrainNumber string      `json:"train_number" bson:"trainNumber"`
	TrainName   string      `json:"train_name" bson:"trainName"`
	Class       string      `json:"class" bson:"class"`
	Quota       string      `json:"quota" bson:"quota"`
	DistanceKm  int         `json:"distance_km" bson:"distanceKm"`
	Boarding    StationStop `json:"boarding" bson:"boarding"`
	Destination StationStop `json:"destination" bson:"destination"`
	Sequence    int         `json:"sequence" bson:"sequence"` // 1-based; assigned by position if absent
}

// PassengerExtraction is one passenger row as extracted from a ticket PDF.
type PassengerExtraction struct {
	SNo           int    `json:"sno" bson:"sno"`
	Name          string `json:"name" bson:"name"`
	Age           int    `json:"age" bson:"age"`
	Gender        string `json:"gender" bson:"gender"`
	FoodChoice    string `json:"food_choice,omitempty" bson:"foodChoice,omitempty"`
	BookingStatus string `json:"booking_status" bson:"bookingStatus"`
	CurrentStatus string `json:"current_status" bson:"currentStatus"`
}

// Payment holds the fare breakdown printed on the ticket.
type Payment struct {
	TicketFare float64 `json:"ticket_fare" bson:"ticketFare"`
	IRCTCFee   float64 `json:"irctc_fee" bson:"irctcFee"`
	Insurance  float64 `json:"insurance" bson:"insurance"`
	AgentFee   float64 `json:"agent_fee" bson:"agentFee"`
	PGCharges  float64 `json:"pg_charges" bson:"pgCharges"`
	Total      float64 `json:"total" bson:"total"`
}

// ProcessingInfo carries optional metadata from the extraction pipeline.
type ProcessingInfo struct {
	SourceFile       string `json:"source_file,omitempty" bson:"sourceFile,omitempty"`
	ExtractionMethod string `json:"extraction_method,omitempty" bson:"extractionMethod,omitempty"`
	ExtractedAt      string `json:"extracted_at,omitempty" bson:"extractedAt,omitempty"`
	PageNumber       int    `json:"page_number,omitempty" bson:"pageNumber,omitempty"`
}

// TicketExtraction is the transient OCR output delivered by the extraction
// pipeline. It is consumed once by the reconciler and never stored as-is in
// the relational store.
type TicketExtraction struct {
	PNR            string                `json:"pnr" bson:"pnr"`
	TransactionID  string                `json:"transaction_id" bson:"transactionId"`
	PrintTime      string                `json:"ticket_print_time,omitempty" bson:"ticketPrintTime,omitempty"`
	Payment        Payment               `json:"payment" bson:"payment"`
	Passengers     []PassengerExtraction `json:"passengers" bson:"passengers"`
	Journeys       []JourneyExtraction   `json:"journeys" bson:"journeys"`
	ProcessingInfo *ProcessingInfo       `json:"processing_info,omitempty" bson:"processingInfo,omitempty"`
}

// StoredTicket is the persisted PNR-keyed ticket record.
type StoredTicket struct {
	ID            uint
	PNR           string // globally unique natural key
	TransactionID string
	PrintTime     string
	Payment       Payment
	SourceFile    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Passenger is a persisted passenger row belonging to one stored ticket and
// referencing a shared passenger profile.
type Passenger struct {
	ID            uint
	TicketID      uint
	ProfileID     uint
	Name          string
	Age           int
	Gender        string
	BookingStatus string
	CurrentStatus string
	FareShare     float64
}

// Journey is a persisted journey leg row belonging to one stored ticket.
type Journey struct {
	ID          uint
	TicketID    uint
	TrainNumber string
	TrainName   string
	Class       string
	Quota       string
	DistanceKm  int
	FromStation string
	ToStation   string
	DepartTime  string
	ArriveTime  string
	Sequence    int
}
