package repository

import (
	"context"
	"time"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormTicketRepository implements the TicketRepository interface
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GORM ticket repository
func NewGormTicketRepository(db *gorm.DB) repository.TicketRepository {
	return &GormTicketRepository{
		db: db,
	}
}

// TicketModel GORM model for database mapping
type TicketModel struct {
	ID            uint    `gorm:"primaryKey"`
	PNR           string  `gorm:"column:pnr;size:10;uniqueIndex;not null"`
	TransactionID string  `gorm:"column:transaction_id;size:20"`
	PrintTime     string  `gorm:"column:print_time;size:32"`
	TicketFare    float64 `gorm:"column:ticket_fare"`
	IRCTCFee      float64 `gorm:"column:irctc_fee"`
	Insurance     float64 `gorm:"column:insurance"`
	AgentFee      float64 `gorm:"column:agent_fee"`
	PGCharges     float64 `gorm:"column:pg_charges"`
	Total         float64 `gorm:"column:total"`
	SourceFile    string  `gorm:"column:source_file;size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (TicketModel) TableName() string {
	return "tickets"
}

// PassengerModel GORM model for database mapping
type PassengerModel struct {
	ID            uint    `gorm:"primaryKey"`
	TicketID      uint    `gorm:"column:ticket_id;index;not null"`
	ProfileID     uint    `gorm:"column:profile_id;index"`
	Name          string  `gorm:"column:name;size:60;not null"`
	Age           int     `gorm:"column:age"`
	Gender        string  `gorm:"column:gender;size:16"`
	BookingStatus string  `gorm:"column:booking_status;size:24"`
	CurrentStatus string  `gorm:"column:current_status;size:24"`
	FareShare     float64 `gorm:"column:fare_share"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (PassengerModel) TableName() string {
	return "passengers"
}

// JourneyModel GORM model for database mapping
type JourneyModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"column:ticket_id;index;not null"`
	TrainNumber string `gorm:"column:train_number;size:8"`
	TrainName   string `gorm:"column:train_name;size:60"`
	Class       string `gorm:"column:class;size:4"`
	Quota       string `gorm:"column:quota;size:4"`
	DistanceKm  int    `gorm:"column:distance_km"`
	FromStation string `gorm:"column:from_station;size:60"`
	ToStation   string `gorm:"column:to_station;size:60"`
	DepartTime  string `gorm:"column:depart_time;size:32"`
	ArriveTime  string `gorm:"column:arrive_time;size:32"`
	Sequence    int    `gorm:"column:sequence;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (JourneyModel) TableName() string {
	return "journeys"
}

// FindByPNR finds a stored ticket by its PNR
func (r *GormTicketRepository) FindByPNR(ctx context.Context, pnr string) (*entity.StoredTicket, error) {
	var model TicketModel
	result := r.db.WithContext(ctx).Where("pnr = ?", pnr).First(&model)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	return ticketToEntity(&model), nil
}

// Insert inserts a new ticket row and returns its id
func (r *GormTicketRepository) Insert(ctx context.Context, ticket *entity.StoredTicket) (uint, error) {
	model := ticketToModel(ticket)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return 0, translateGormError(result.Error)
	}
	return model.ID, nil
}

// Update updates the mutable fields of a stored ticket
func (r *GormTicketRepository) Update(ctx context.Context, ticket *entity.StoredTicket) error {
	updates := map[string]interface{}{
		"transaction_id": ticket.TransactionID,
		"print_time":     ticket.PrintTime,
		"ticket_fare":    ticket.Payment.TicketFare,
		"irctc_fee":      ticket.Payment.IRCTCFee,
		"insurance":      ticket.Payment.Insurance,
		"agent_fee":      ticket.Payment.AgentFee,
		"pg_charges":     ticket.Payment.PGCharges,
		"total":          ticket.Payment.Total,
	}
	result := r.db.WithContext(ctx).Model(&TicketModel{}).Where("id = ?", ticket.ID).Updates(updates)
	return translateGormError(result.Error)
}

// ListPassengers lists the passenger rows of a ticket
func (r *GormTicketRepository) ListPassengers(ctx context.Context, ticketID uint) ([]entity.Passenger, error) {
	var models []PassengerModel
	result := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	passengers := make([]entity.Passenger, 0, len(models))
	for _, m := range models {
		passengers = append(passengers, entity.Passenger{
			ID:            m.ID,
			TicketID:      m.TicketID,
			ProfileID:     m.ProfileID,
			Name:          m.Name,
			Age:           m.Age,
			Gender:        m.Gender,
			BookingStatus: m.BookingStatus,
			CurrentStatus: m.CurrentStatus,
			FareShare:     m.FareShare,
		})
	}
	return passengers, nil
}

// InsertPassengers inserts passenger rows
func (r *GormTicketRepository) InsertPassengers(ctx context.Context, passengers []entity.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}
	models := make([]PassengerModel, 0, len(passengers))
	for _, p := range passengers {
		models = append(models, PassengerModel{
			TicketID:      p.TicketID,
			ProfileID:     p.ProfileID,
			Name:          p.Name,
			Age:           p.Age,
			Gender:        p.Gender,
			BookingStatus: p.BookingStatus,
			CurrentStatus: p.CurrentStatus,
			FareShare:     p.FareShare,
		})
	}
	result := r.db.WithContext(ctx).Create(&models)
	return translateGormError(result.Error)
}

// ListJourneys lists the journey rows of a ticket ordered by sequence
func (r *GormTicketRepository) ListJourneys(ctx context.Context, ticketID uint) ([]entity.Journey, error) {
	var models []JourneyModel
	result := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).Order("sequence").Find(&models)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	journeys := make([]entity.Journey, 0, len(models))
	for _, m := range models {
		journeys = append(journeys, entity.Journey{
			ID:          m.ID,
			TicketID:    m.TicketID,
			TrainNumber: m.TrainNumber,
			TrainName:   m.TrainName,
			Class:       m.Class,
			Quota:       m.Quota,
			DistanceKm:  m.DistanceKm,
			FromStation: m.FromStation,
			ToStation:   m.ToStation,
			DepartTime:  m.DepartTime,
			ArriveTime:  m.ArriveTime,
			Sequence:    m.Sequence,
		})
	}
	return journeys, nil
}

// InsertJourneys inserts journey rows
func (r *GormTicketRepository) InsertJourneys(ctx context.Context, journeys []entity.Journey) error {
	if len(journeys) == 0 {
		return nil
	}
	models := make([]JourneyModel, 0, len(journeys))
	for _, j := range journeys {
		models = append(models, JourneyModel{
			TicketID:    j.TicketID,
			TrainNumber: j.TrainNumber,
			TrainName:   j.TrainName,
			Class:       j.Class,
			Quota:       j.Quota,
			DistanceKm:  j.DistanceKm,
			FromStation: j.FromStation,
			ToStation:   j.ToStation,
			DepartTime:  j.DepartTime,
			ArriveTime:  j.ArriveTime,
			Sequence:    j.Sequence,
		})
	}
	result := r.db.WithContext(ctx).Create(&models)
	return translateGormError(result.Error)
}

func ticketToEntity(m *TicketModel) *entity.StoredTicket {
	return &entity.StoredTicket{
		ID:            m.ID,
		PNR:           m.PNR,
		TransactionID: m.TransactionID,
		PrintTime:     m.PrintTime,
		Payment: entity.Payment{
			TicketFare: m.TicketFare,
			IRCTCFee:   m.IRCTCFee,
			Insurance:  m.Insurance,
			AgentFee:   m.AgentFee,
			PGCharges:  m.PGCharges,
			Total:      m.Total,
		},
		SourceFile: m.SourceFile,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ticketToModel(t *entity.StoredTicket) *TicketModel {
	return &TicketModel{
		ID:            t.ID,
		PNR:           t.PNR,
		TransactionID: t.TransactionID,
		PrintTime:     t.PrintTime,
		TicketFare:    t.Payment.TicketFare,
		IRCTCFee:      t.Payment.IRCTCFee,
		Insurance:     t.Payment.Insurance,
		AgentFee:      t.Payment.AgentFee,
		PGCharges:     t.Payment.PGCharges,
		Total:         t.Payment.Total,
		SourceFile:    t.SourceFile,
	}
}
