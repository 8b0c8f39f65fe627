package usecase

import (
	"sort"
	"strings"

	"railledger-service/internal/domain/entity"
	"railledger-service/pkg/logger"
	"railledger-service/pkg/stations"
	"railledger-service/pkg/validation"
)

// maxPlausibleWaitMinutes marks a connection implausible at or beyond 24h.
const maxPlausibleWaitMinutes = 1440

// ConnectionAnalyzer detects continuity between adjacent journey legs of a
// multi-leg ticket.
type ConnectionAnalyzer struct {
	logger logger.Logger
}

// NewConnectionAnalyzer creates a new connection analyzer
func NewConnectionAnalyzer(log logger.Logger) *ConnectionAnalyzer {
	return &ConnectionAnalyzer{logger: log}
}

// Analyze inspects the journeys of one ticket, ordered by sequence, and
// records a connection for every adjacent pair whose stations match directly
// or through the alias table. Unmatched pairs are simply unrelated legs.
func (a *ConnectionAnalyzer) Analyze(journeys []entity.JourneyExtraction) *entity.ConnectionAnalysis {
	analysis := &entity.ConnectionAnalysis{
		IsMultiSegmentJourney: len(journeys) > 1,
	}
	for i := range journeys {
		analysis.TotalDistanceKm += journeys[i].DistanceKm
		if isOvernight(&journeys[i]) {
			analysis.HasOvernight = true
		}
	}
	if len(journeys) < 2 {
		return analysis
	}

	ordered := orderBySequence(journeys)
	for i := 0; i < len(ordered)-1; i++ {
		current, next := &ordered[i], &ordered[i+1]

		from := strings.ToUpper(strings.TrimSpace(current.Destination.Station))
		to := strings.ToUpper(strings.TrimSpace(next.Boarding.Station))
		connType, ok := stations.SameStation(from, to)
		if !ok {
			continue
		}

		conn := entity.Connection{
			FromTrain:      current.TrainNumber,
			ToTrain:        next.TrainNumber,
			Station:        from,
			ConnectionType: connType,
		}
		conn.WaitTimeMinutes = waitMinutes(current.Destination.Datetime, next.Boarding.Datetime)
		conn.IsValid = conn.WaitTimeMinutes > 0 && conn.WaitTimeMinutes < maxPlausibleWaitMinutes
		if !conn.IsValid {
			a.logger.Warn("Implausible connection wait time",
				"station", conn.Station, "waitMinutes", conn.WaitTimeMinutes,
				"fromTrain", conn.FromTrain, "toTrain", conn.ToTrain)
		}
		analysis.Connections = append(analysis.Connections, conn)
	}
	analysis.HasConnections = len(analysis.Connections) > 0
	return analysis
}

// orderBySequence returns the legs sorted by their 1-based sequence,
// assigning sequence by position where it is absent.
func orderBySequence(journeys []entity.JourneyExtraction) []entity.JourneyExtraction {
	ordered := make([]entity.JourneyExtraction, len(journeys))
	copy(ordered, journeys)
	for i := range ordered {
		if ordered[i].Sequence == 0 {
			ordered[i].Sequence = i + 1
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})
	return ordered
}

// waitMinutes is the wall-clock gap between arrival and the next departure.
// Unparseable datetimes yield zero.
func waitMinutes(arrive, depart string) int {
	arriveAt, okA := validation.ParseTicketTime(arrive)
	departAt, okD := validation.ParseTicketTime(depart)
	if !okA || !okD {
		return 0
	}
	return int(departAt.Sub(arriveAt).Minutes())
}

// isOvernight reports whether a leg departs on one calendar day and arrives
// on a later one.
func isOvernight(j *entity.JourneyExtraction) bool {
	depart, okD := validation.ParseTicketTime(j.Boarding.Datetime)
	arrive, okA := validation.ParseTicketTime(j.Destination.Datetime)
	if !okD || !okA {
		return false
	}
	y1, m1, d1 := depart.Date()
	y2, m2, d2 := arrive.Date()
	return arrive.After(depart) && (y1 != y2 || m1 != m2 || d1 != d2)
}
