package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/domain/repository"
	"railledger-service/pkg/logger"
	"railledger-service/pkg/metrics"
	"railledger-service/pkg/validation"
)

// ErrInvalidStructure is returned when an extraction is missing the shape an
// import needs: a well-formed PNR and non-empty passenger and journey lists.
var ErrInvalidStructure = errors.New("extraction missing PNR, passengers or journeys")

var pnrPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// Reconciler turns validated ticket extractions into idempotent store
// writes: create on first sight, update on changed re-import, skip on
// duplicates and on ambiguous existing state.
type Reconciler struct {
	ticketRepo     repository.TicketRepository
	extractionRepo repository.ExtractionRepository
	resolver       *ProfileResolver
	analyzer       *ConnectionAnalyzer
	seqValidator   *SequenceValidator
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewReconciler creates a new ticket reconciler
func NewReconciler(
	ticketRepo repository.TicketRepository,
	extractionRepo repository.ExtractionRepository,
	resolver *ProfileResolver,
	analyzer *ConnectionAnalyzer,
	seqValidator *SequenceValidator,
	m *metrics.Metrics,
	log logger.Logger,
) *Reconciler {
	return &Reconciler{
		ticketRepo:     ticketRepo,
		extractionRepo: extractionRepo,
		resolver:       resolver,
		analyzer:       analyzer,
		seqValidator:   seqValidator,
		metrics:        m,
		logger:         log,
	}
}

// Process validates one extraction, archives it, and reconciles it against
// the store. The report is returned alongside the result so callers can
// surface scores and suggestions. A non-nil error means the import did not
// reach a decision (bad structure or store failure); validation failures are
// reported through the result instead.
func (rc *Reconciler) Process(ctx context.Context, ext *entity.TicketExtraction, sourceFile string) (*entity.ImportResult, *validation.Report, error) {
	start := time.Now()
	rc.metrics.ExtractionsReceived.Inc()

	ext.PNR = strings.ToUpper(strings.TrimSpace(ext.PNR))
	if !pnrPattern.MatchString(ext.PNR) || len(ext.Passengers) == 0 || len(ext.Journeys) == 0 {
		rc.metrics.TicketsImported.WithLabelValues(entity.ActionFailed).Inc()
		rc.logger.Warn("Rejecting malformed extraction",
			"pnr", ext.PNR, "passengers", len(ext.Passengers), "journeys", len(ext.Journeys))
		res := &entity.ImportResult{
			Action: entity.ActionFailed,
			PNR:    ext.PNR,
			Error:  ErrInvalidStructure.Error(),
		}
		return res, nil, ErrInvalidStructure
	}

	report := validation.BuildReport(ext)
	rc.metrics.ValidationScore.Observe(report.OverallConfidence)

	analysis := rc.analyzer.Analyze(ext.Journeys)
	sequence := rc.seqValidator.Validate(ext.Journeys, analysis)
	if !sequence.IsValid {
		rc.logger.Warn("Journey sequence failed validation", "pnr", ext.PNR, "errors", sequence.Errors)
	}

	logID, err := rc.extractionRepo.Save(ctx, &entity.ExtractionLog{
		PNR:           ext.PNR,
		SourceFile:    sourceFile,
		Extraction:    ext,
		Report:        report.AsMap(),
		Connections:   analysis,
		Sequence:      sequence,
		ProcessStatus: entity.StatusPending,
		ReceivedAt:    time.Now(),
	})
	if err != nil {
		// Archiving is auxiliary; the import itself still proceeds.
		rc.metrics.ErrorsCount.WithLabelValues("archive_extraction").Inc()
		rc.logger.Error("Failed to archive extraction", "pnr", ext.PNR, "error", err)
	}

	var res *entity.ImportResult
	var importErr error
	if !report.IsValid {
		res = &entity.ImportResult{
			Action: entity.ActionFailed,
			PNR:    ext.PNR,
			Reason: "validation_failed",
			Error:  fmt.Sprintf("confidence %.2f with %d errors", report.OverallConfidence, len(report.Errors)),
		}
	} else {
		res, importErr = rc.reconcile(ctx, ext, sourceFile)
	}

	rc.metrics.TicketsImported.WithLabelValues(res.Action).Inc()
	rc.metrics.ImportDuration.Observe(time.Since(start).Seconds())
	if logID != "" {
		status := archiveStatus(res)
		if err := rc.extractionRepo.MarkProcessed(ctx, logID, status, res.Action, res.Reason, res.Error); err != nil {
			rc.logger.Error("Failed to mark extraction processed", "pnr", ext.PNR, "error", err)
		}
	}
	rc.logger.Info("Ticket import finished",
		"pnr", ext.PNR, "action", res.Action, "reason", res.Reason, "confidence", report.OverallConfidence)
	return res, report, importErr
}

func archiveStatus(res *entity.ImportResult) string {
	switch res.Action {
	case entity.ActionCreated, entity.ActionUpdated:
		return entity.StatusCompleted
	case entity.ActionSkipped, entity.ActionDuplicates:
		return entity.StatusSkipped
	default:
		return entity.StatusFailed
	}
}

// reconcile applies the import algorithm against the stored ticket with the
// same PNR, if any.
func (rc *Reconciler) reconcile(ctx context.Context, ext *entity.TicketExtraction, sourceFile string) (*entity.ImportResult, error) {
	existing, err := rc.ticketRepo.FindByPNR(ctx, ext.PNR)
	switch {
	case err == nil:
		return rc.reconcileExisting(ctx, ext, existing)
	case errors.Is(err, repository.ErrNotFound):
		return rc.createTicket(ctx, ext, sourceFile)
	default:
		rc.metrics.ErrorsCount.WithLabelValues("find_ticket").Inc()
		return failedResult(ext.PNR, err), fmt.Errorf("find ticket %s: %w", ext.PNR, err)
	}
}

// createTicket inserts the ticket with its passenger and journey rows. A
// duplicate-key failure on the ticket insert means a concurrent import of
// the same new PNR won the race; the loss is graceful, not an error.
func (rc *Reconciler) createTicket(ctx context.Context, ext *entity.TicketExtraction, sourceFile string) (*entity.ImportResult, error) {
	ticket := &entity.StoredTicket{
		PNR:           ext.PNR,
		TransactionID: ext.TransactionID,
		PrintTime:     ext.PrintTime,
		Payment:       ext.Payment,
		SourceFile:    sourceFile,
	}
	id, err := rc.ticketRepo.Insert(ctx, ticket)
	if errors.Is(err, repository.ErrDuplicateKey) {
		rc.logger.Info("Lost PNR insert race to a concurrent import", "pnr", ext.PNR)
		return &entity.ImportResult{Success: true, Action: entity.ActionDuplicates, PNR: ext.PNR}, nil
	}
	if err != nil {
		rc.metrics.ErrorsCount.WithLabelValues("insert_ticket").Inc()
		return failedResult(ext.PNR, err), fmt.Errorf("insert ticket %s: %w", ext.PNR, err)
	}

	fareShare := perPassengerFare(&ext.Payment, len(ext.Passengers))
	passengers := make([]entity.Passenger, 0, len(ext.Passengers))
	for _, p := range ext.Passengers {
		row := entity.Passenger{
			TicketID:      id,
			Name:          strings.ToUpper(strings.TrimSpace(p.Name)),
			Age:           p.Age,
			Gender:        p.Gender,
			BookingStatus: p.BookingStatus,
			CurrentStatus: p.CurrentStatus,
			FareShare:     fareShare,
		}
		profile, err := rc.resolver.Resolve(ctx, p.Name, p.Age, p.Gender, fareShare)
		if err != nil {
			// A passenger without a resolvable identity still gets a row;
			// the profile link is the only thing lost.
			rc.logger.Warn("Passenger profile unresolved", "pnr", ext.PNR, "name", p.Name, "error", err)
		} else {
			row.ProfileID = profile.ID
		}
		passengers = append(passengers, row)
	}
	if err := rc.ticketRepo.InsertPassengers(ctx, passengers); err != nil {
		rc.metrics.ErrorsCount.WithLabelValues("insert_passengers").Inc()
		return failedResult(ext.PNR, err), fmt.Errorf("insert passengers %s: %w", ext.PNR, err)
	}

	journeys := make([]entity.Journey, 0, len(ext.Journeys))
	for i, j := range ext.Journeys {
		journeys = append(journeys, entity.Journey{
			TicketID:    id,
			TrainNumber: j.TrainNumber,
			TrainName:   j.TrainName,
			Class:       j.Class,
			Quota:       j.Quota,
			DistanceKm:  j.DistanceKm,
			FromStation: j.Boarding.Station,
			ToStation:   j.Destination.Station,
			DepartTime:  j.Boarding.Datetime,
			ArriveTime:  j.Destination.Datetime,
			Sequence:    i + 1,
		})
	}
	if err := rc.ticketRepo.InsertJourneys(ctx, journeys); err != nil {
		rc.metrics.ErrorsCount.WithLabelValues("insert_journeys").Inc()
		return failedResult(ext.PNR, err), fmt.Errorf("insert journeys %s: %w", ext.PNR, err)
	}

	return &entity.ImportResult{Success: true, Action: entity.ActionCreated, TicketID: id, PNR: ext.PNR}, nil
}

// reconcileExisting handles a re-import of a PNR the store already holds.
// Identical passenger and journey sets make the re-import a no-op skip; any
// discrepancy in the sets or in row counts means an earlier import left the
// rows in a state this engine refuses to guess about, so it skips rather
// than stacking more rows on top.
func (rc *Reconciler) reconcileExisting(ctx context.Context, ext *entity.TicketExtraction, existing *entity.StoredTicket) (*entity.ImportResult, error) {
	storedPassengers, err := rc.ticketRepo.ListPassengers(ctx, existing.ID)
	if err != nil {
		rc.metrics.ErrorsCount.WithLabelValues("list_passengers").Inc()
		return failedResult(ext.PNR, err), fmt.Errorf("list passengers %s: %w", ext.PNR, err)
	}
	storedJourneys, err := rc.ticketRepo.ListJourneys(ctx, existing.ID)
	if err != nil {
		rc.metrics.ErrorsCount.WithLabelValues("list_journeys").Inc()
		return failedResult(ext.PNR, err), fmt.Errorf("list journeys %s: %w", ext.PNR, err)
	}

	incomingPassengerSigs := make([]string, 0, len(ext.Passengers))
	for _, p := range ext.Passengers {
		incomingPassengerSigs = append(incomingPassengerSigs, passengerSignature(p.Name, p.Age, p.Gender))
	}
	storedPassengerSigs := make([]string, 0, len(storedPassengers))
	for _, p := range storedPassengers {
		storedPassengerSigs = append(storedPassengerSigs, passengerSignature(p.Name, p.Age, p.Gender))
	}
	incomingJourneySigs := make([]string, 0, len(ext.Journeys))
	for i, j := range ext.Journeys {
		seq := j.Sequence
		if seq == 0 {
			seq = i + 1
		}
		incomingJourneySigs = append(incomingJourneySigs, journeySignature(j.TrainNumber, seq))
	}
	storedJourneySigs := make([]string, 0, len(storedJourneys))
	for _, j := range storedJourneys {
		storedJourneySigs = append(storedJourneySigs, journeySignature(j.TrainNumber, j.Sequence))
	}

	setsMatch := sameSignatureSet(incomingPassengerSigs, storedPassengerSigs) &&
		sameSignatureSet(incomingJourneySigs, storedJourneySigs)
	countsMatch := len(storedPassengers) == len(ext.Passengers) && len(storedJourneys) == len(ext.Journeys)

	if !setsMatch || !countsMatch {
		rc.logger.Warn("Existing rows inconsistent with re-import, refusing to touch them",
			"pnr", ext.PNR,
			"storedPassengers", len(storedPassengers), "incomingPassengers", len(ext.Passengers),
			"storedJourneys", len(storedJourneys), "incomingJourneys", len(ext.Journeys))
		if err := rc.updateTicketFields(ctx, ext, existing); err != nil {
			return failedResult(ext.PNR, err), err
		}
		return &entity.ImportResult{
			Success:  true,
			Action:   entity.ActionSkipped,
			TicketID: existing.ID,
			PNR:      ext.PNR,
			Reason:   entity.SkipCleanupRequired,
		}, nil
	}

	if ticketFieldsChanged(ext, existing) {
		if err := rc.updateTicketFields(ctx, ext, existing); err != nil {
			return failedResult(ext.PNR, err), err
		}
		return &entity.ImportResult{Success: true, Action: entity.ActionUpdated, TicketID: existing.ID, PNR: ext.PNR}, nil
	}

	return &entity.ImportResult{
		Success:  true,
		Action:   entity.ActionSkipped,
		TicketID: existing.ID,
		PNR:      ext.PNR,
		Reason:   entity.SkipUnchanged,
	}, nil
}

func (rc *Reconciler) updateTicketFields(ctx context.Context, ext *entity.TicketExtraction, existing *entity.StoredTicket) error {
	existing.TransactionID = ext.TransactionID
	existing.PrintTime = ext.PrintTime
	existing.Payment = ext.Payment
	if err := rc.ticketRepo.Update(ctx, existing); err != nil {
		rc.metrics.ErrorsCount.WithLabelValues("update_ticket").Inc()
		return fmt.Errorf("update ticket %s: %w", ext.PNR, err)
	}
	return nil
}

func ticketFieldsChanged(ext *entity.TicketExtraction, existing *entity.StoredTicket) bool {
	return ext.TransactionID != existing.TransactionID ||
		ext.PrintTime != existing.PrintTime ||
		ext.Payment != existing.Payment
}

func passengerSignature(name string, age int, gender string) string {
	return fmt.Sprintf("%s_%d_%s", strings.ToUpper(strings.TrimSpace(name)), age, gender)
}

func journeySignature(trainNumber string, sequence int) string {
	return fmt.Sprintf("%s_%d", trainNumber, sequence)
}

// sameSignatureSet compares two signature lists order-independently.
func sameSignatureSet(a, b []string) bool {
	seen := make(map[string]struct{}, len(a))
	for _, sig := range a {
		seen[sig] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, sig := range b {
		other[sig] = struct{}{}
	}
	if len(seen) != len(other) {
		return false
	}
	for sig := range seen {
		if _, ok := other[sig]; !ok {
			return false
		}
	}
	return true
}

func perPassengerFare(p *entity.Payment, count int) float64 {
	if p.Total <= 0 || count == 0 {
		return 0
	}
	return math.Round(p.Total/float64(count)*100) / 100
}

func failedResult(pnr string, err error) *entity.ImportResult {
	return &entity.ImportResult{Action: entity.ActionFailed, PNR: pnr, Error: err.Error()}
}
