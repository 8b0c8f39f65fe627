package repository

import (
	"context"

	"railledger-service/internal/domain/entity"
)

// TicketRepository defines the persistence operations for stored tickets and
// their passenger/journey rows.
type TicketRepository interface {
	FindByPNR(ctx context.Context, pnr string) (*entity.StoredTicket, error)
	Insert(ctx context.Context, ticket *entity.StoredTicket) (uint, error)
	Update(ctx context.Context, ticket *entity.StoredTicket) error
	ListPassengers(ctx context.Context, ticketID uint) ([]entity.Passenger, error)
	InsertPassengers(ctx context.Context, passengers []entity.Passenger) error
	ListJourneys(ctx context.Context, ticketID uint) ([]entity.Journey, error)
	InsertJourneys(ctx context.Context, journeys []entity.Journey) error
}
