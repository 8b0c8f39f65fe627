package repository

import (
	"context"

	"railledger-service/internal/domain/entity"
)

// ProfileRepository defines the persistence operations for passenger
// profiles. The unique constraint on passengerKey is the arbiter for racing
// first-sighting inserts; Insert must surface it as ErrDuplicateKey.
type ProfileRepository interface {
	FindByKey(ctx context.Context, key string) (*entity.PassengerProfile, error)
	Insert(ctx context.Context, profile *entity.PassengerProfile) (uint, error)
	Update(ctx context.Context, profile *entity.PassengerProfile) error
	Delete(ctx context.Context, ids []uint) error
	// ReassignPassengers repoints passenger rows referencing any of the from
	// profiles to the to profile. Used by merge.
	ReassignPassengers(ctx context.Context, fromIDs []uint, toID uint) error
	FindByIDs(ctx context.Context, ids []uint) ([]entity.PassengerProfile, error)
	// FindDuplicateGroups returns profiles grouped by exact (name, age) where
	// more than one profile shares the identity. Fuzzy grouping is out of scope.
	FindDuplicateGroups(ctx context.Context) ([][]entity.PassengerProfile, error)
}
