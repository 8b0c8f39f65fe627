package entity

// Import actions reported by the reconciler.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionSkipped    = "skipped"
	ActionDuplicates = "duplicates"
	ActionFailed     = "failed"
)

// Skip reasons for the skipped action.
const (
	SkipUnchanged       = "unchanged"
	SkipCleanupRequired = "cleanup_required"
)

// ImportResult is the per-call outcome of one ticket import.
type ImportResult struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"`
	TicketID uint   `json:"ticket_id,omitempty"`
	PNR      string `json:"pnr"`
	Reason   string `json:"reason,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchStats aggregates import results across a batch run. Callers own the
// aggregation; there is no shared global counter state.
type BatchStats struct {
	Imported   int `json:"imported"`
	Updated    int `json:"updated"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	Duplicates int `json:"duplicates"`
}

// Add folds one import result into the batch totals.
func (s *BatchStats) Add(res *ImportResult) {
	switch res.Action {
	case ActionCreated:
		s.Imported++
	case ActionUpdated:
		s.Updated++
	case ActionSkipped:
		s.Skipped++
	case ActionDuplicates:
		s.Duplicates++
	default:
		s.Failed++
	}
}
