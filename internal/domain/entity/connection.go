package entity

// Connection types between adjacent journey legs.
const (
	ConnectionDirect = "direct"
	ConnectionNearby = "nearby"
)

// Connection is an inferred continuity between the destination of one leg
// and the boarding point of the next.
type Connection struct {
	FromTrain       string `json:"from_train" bson:"fromTrain"`
	ToTrain         string `json:"to_train" bson:"toTrain"`
	Station         string `json:"station" bson:"station"`
	ConnectionType  string `json:"connection_type" bson:"connectionType"`
	WaitTimeMinutes int    `json:"wait_time_minutes" bson:"waitTimeMinutes"`
	IsValid         bool   `json:"is_valid" bson:"isValid"`
}

// ConnectionAnalysis is per-ticket journey continuity metadata. It is stored
// alongside the archived extraction, not as first-class relational rows.
type ConnectionAnalysis struct {
	Connections           []Connection `json:"connections" bson:"connections"`
	HasConnections        bool         `json:"has_connections" bson:"hasConnections"`
	IsMultiSegmentJourney bool         `json:"is_multi_segment_journey" bson:"isMultiSegmentJourney"`
	TotalDistanceKm       int          `json:"total_distance_km" bson:"totalDistanceKm"`
	HasOvernight          bool         `json:"has_overnight" bson:"hasOvernight"`
}

// SequenceValidation is the result of checking a multi-leg journey for
// numbering gaps, chronological inversions and implausible layovers.
type SequenceValidation struct {
	IsValid  bool     `json:"is_valid" bson:"isValid"`
	Errors   []string `json:"errors,omitempty" bson:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" bson:"warnings,omitempty"`
}
