package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/domain/repository"
	"railledger-service/pkg/logger"
	"railledger-service/pkg/metrics"
)

// Metrics register against the default prometheus registry, so the test
// package shares a single instance.
var testMetrics = metrics.NewMetrics("railledger_test")

type fakeProfileRepo struct {
	mu           sync.Mutex
	nextID       uint
	profiles     map[uint]entity.PassengerProfile
	reassigns    [][]uint
	beforeInsert func()
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uint]entity.PassengerProfile)}
}

func (f *fakeProfileRepo) seed(p entity.PassengerProfile) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.profiles[p.ID] = p
	return p.ID
}

func (f *fakeProfileRepo) FindByKey(_ context.Context, key string) (*entity.PassengerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.PassengerKey == key {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepo) Insert(_ context.Context, profile *entity.PassengerProfile) (uint, error) {
	if f.beforeInsert != nil {
		hook := f.beforeInsert
		f.beforeInsert = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.PassengerKey == profile.PassengerKey {
			return 0, repository.ErrDuplicateKey
		}
	}
	f.nextID++
	cp := *profile
	cp.ID = f.nextID
	f.profiles[cp.ID] = cp
	return cp.ID, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *entity.PassengerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	f.profiles[profile.ID] = *profile
	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, ids []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.profiles, id)
	}
	return nil
}

func (f *fakeProfileRepo) ReassignPassengers(_ context.Context, fromIDs []uint, toID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reassigns = append(f.reassigns, append(append([]uint{}, fromIDs...), toID))
	return nil
}

func (f *fakeProfileRepo) FindByIDs(_ context.Context, ids []uint) ([]entity.PassengerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.PassengerProfile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) FindDuplicateGroups(_ context.Context) ([][]entity.PassengerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byIdentity := make(map[string][]entity.PassengerProfile)
	for _, p := range f.profiles {
		key := entity.ProfileKey(p.Name, p.Age)
		byIdentity[key] = append(byIdentity[key], p)
	}
	var groups [][]entity.PassengerProfile
	for _, group := range byIdentity {
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

type fakeTicketRepo struct {
	mu           sync.Mutex
	nextID       uint
	tickets      map[string]entity.StoredTicket
	passengers   map[uint][]entity.Passenger
	journeys     map[uint][]entity.Journey
	updateCount  int
	beforeInsert func()
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:    make(map[string]entity.StoredTicket),
		passengers: make(map[uint][]entity.Passenger),
		journeys:   make(map[uint][]entity.Journey),
	}
}

func (f *fakeTicketRepo) seed(t entity.StoredTicket) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	f.tickets[t.PNR] = t
	return t.ID
}

func (f *fakeTicketRepo) FindByPNR(_ context.Context, pnr string) (*entity.StoredTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tickets[pnr]; ok {
		cp := t
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTicketRepo) Insert(_ context.Context, ticket *entity.StoredTicket) (uint, error) {
	if f.beforeInsert != nil {
		hook := f.beforeInsert
		f.beforeInsert = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[ticket.PNR]; ok {
		return 0, repository.ErrDuplicateKey
	}
	f.nextID++
	cp := *ticket
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.tickets[cp.PNR] = cp
	return cp.ID, nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *entity.StoredTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[ticket.PNR]; !ok {
		return repository.ErrNotFound
	}
	cp := *ticket
	cp.UpdatedAt = time.Now()
	f.tickets[cp.PNR] = cp
	f.updateCount++
	return nil
}

func (f *fakeTicketRepo) ListPassengers(_ context.Context, ticketID uint) ([]entity.Passenger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Passenger{}, f.passengers[ticketID]...), nil
}

func (f *fakeTicketRepo) InsertPassengers(_ context.Context, passengers []entity.Passenger) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range passengers {
		f.passengers[p.TicketID] = append(f.passengers[p.TicketID], p)
	}
	return nil
}

func (f *fakeTicketRepo) ListJourneys(_ context.Context, ticketID uint) ([]entity.Journey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Journey{}, f.journeys[ticketID]...), nil
}

func (f *fakeTicketRepo) InsertJourneys(_ context.Context, journeys []entity.Journey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range journeys {
		f.journeys[j.TicketID] = append(f.journeys[j.TicketID], j)
	}
	return nil
}

type fakeExtractionRepo struct {
	mu      sync.Mutex
	logs    []*entity.ExtractionLog
	saveErr error
}

func newFakeExtractionRepo() *fakeExtractionRepo {
	return &fakeExtractionRepo{}
}

func (f *fakeExtractionRepo) Save(_ context.Context, log *entity.ExtractionLog) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	cp := *log
	cp.ID = fmt.Sprintf("log-%d", len(f.logs)+1)
	f.logs = append(f.logs, &cp)
	return cp.ID, nil
}

func (f *fakeExtractionRepo) MarkProcessed(_ context.Context, id, status, action, reason, errorDetail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, log := range f.logs {
		if log.ID == id {
			log.ProcessStatus = status
			log.ImportAction = action
			log.ImportReason = reason
			log.ErrorDetail = errorDetail
			log.ProcessedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeExtractionRepo) FindByPNR(_ context.Context, pnr string) ([]*entity.ExtractionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ExtractionLog
	for _, log := range f.logs {
		if log.PNR == pnr {
			out = append(out, log)
		}
	}
	return out, nil
}

func newTestReconciler(tickets *fakeTicketRepo, profiles *fakeProfileRepo, extractions *fakeExtractionRepo) *Reconciler {
	log := logger.NewNop()
	return NewReconciler(
		tickets,
		extractions,
		NewProfileResolver(profiles, log),
		NewConnectionAnalyzer(log),
		NewSequenceValidator(),
		testMetrics,
		log,
	)
}

// validExtraction builds an extraction that passes structural and field
// validation cleanly.
func validExtraction(pnr string) *entity.TicketExtraction {
	return &entity.TicketExtraction{
		PNR:           pnr,
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
