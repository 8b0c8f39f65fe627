package usecase

import (
	"fmt"

	"railledger-service/internal/domain/entity"
	"railledger-service/pkg/validation"
)

// Layover plausibility window surfaced as warnings.
const (
	minLayoverMinutes = 30
	maxLayoverMinutes = 12 * 60
)

// SequenceValidator checks a multi-leg ticket for numbering gaps,
// chronological inversions and implausible layovers. Runs after connection
// analysis; single-leg tickets pass trivially.
type SequenceValidator struct{}

// NewSequenceValidator creates a new sequence validator
func NewSequenceValidator() *SequenceValidator {
	return &SequenceValidator{}
}

// Validate checks the ordered legs and the connections derived from them.
// Inversions are errors; gaps and tight or long layovers are warnings.
func (v *SequenceValidator) Validate(journeys []entity.JourneyExtraction, analysis *entity.ConnectionAnalysis) *entity.SequenceValidation {
	result := &entity.SequenceValidation{IsValid: true}
	if len(journeys) < 2 {
		return result
	}

	ordered := orderBySequence(journeys)

	for i := 0; i < len(ordered)-1; i++ {
		if gap := ordered[i+1].Sequence - ordered[i].Sequence; gap > 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("sequence gap between leg %d and leg %d", ordered[i].Sequence, ordered[i+1].Sequence))
		}

		arrive, okA := validation.ParseTicketTime(ordered[i].Destination.Datetime)
		depart, okD := validation.ParseTicketTime(ordered[i+1].Boarding.Datetime)
		if okA && okD && !arrive.Before(depart) {
			result.IsValid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("leg %d arrives at %s on or after leg %d departs at %s",
					ordered[i].Sequence, ordered[i].Destination.Datetime,
					ordered[i+1].Sequence, ordered[i+1].Boarding.Datetime))
		}
	}

	if analysis != nil {
		for _, conn := range analysis.Connections {
			switch {
			case !conn.IsValid:
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("implausible connection at %s: wait of %d minutes", conn.Station, conn.WaitTimeMinutes))
			case conn.WaitTimeMinutes < minLayoverMinutes:
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("tight connection at %s: only %d minutes", conn.Station, conn.WaitTimeMinutes))
			case conn.WaitTimeMinutes > maxLayoverMinutes:
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("long layover at %s: %d minutes", conn.Station, conn.WaitTimeMinutes))
			}
		}
	}
	return result
}
