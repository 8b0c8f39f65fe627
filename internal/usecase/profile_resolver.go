package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/domain/repository"
	"railledger-service/pkg/logger"
)

// ErrMissingIdentityFields is returned when a passenger lacks the name or
// age needed to form a profile key.
var ErrMissingIdentityFields = errors.New("passenger name and age are required for profile resolution")

// ProfileResolver maps passenger identities to stable profiles and keeps
// their travel history counters current.
type ProfileResolver struct {
	profileRepo repository.ProfileRepository
	logger      logger.Logger
}

// NewProfileResolver creates a new profile resolver
func NewProfileResolver(profileRepo repository.ProfileRepository, log logger.Logger) *ProfileResolver {
	return &ProfileResolver{
		profileRepo: profileRepo,
		logger:      log,
	}
}

// Resolve finds or creates the profile for a (name, age) identity and
// records the sighting. Racing first-sighting inserts are arbitrated by the
// store's unique key constraint: the loser re-reads and records its sighting
// on the winner's row.
func (r *ProfileResolver) Resolve(ctx context.Context, name string, age int, gender string, fareShare float64) (*entity.PassengerProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" || age <= 0 {
		return nil, ErrMissingIdentityFields
	}
	key := entity.ProfileKey(name, age)

	profile, err := r.profileRepo.FindByKey(ctx, key)
	switch {
	case err == nil:
		return r.recordSighting(ctx, profile, fareShare)
	case errors.Is(err, repository.ErrNotFound):
		// fall through to insert
	default:
		return nil, fmt.Errorf("profile lookup %s: %w", key, err)
	}

	now := time.Now()
	fresh := &entity.PassengerProfile{
		PassengerKey: key,
		Name:         strings.ToUpper(name),
		Age:          age,
		Gender:       gender,
		TravelCount:  1,
		TotalSpent:   fareShare,
		FirstSeen:    now,
		LastSeen:     now,
	}
	id, err := r.profileRepo.Insert(ctx, fresh)
	if err == nil {
		fresh.ID = id
		return fresh, nil
	}
	if !errors.Is(err, repository.ErrDuplicateKey) {
		return nil, fmt.Errorf("profile insert %s: %w", key, err)
	}

	// A concurrent resolver created the key first. One re-read settles it.
	r.logger.Debug("Profile insert lost first-sighting race", "key", key)
	profile, err = r.profileRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("profile re-read after race %s: %w", key, err)
	}
	return r.recordSighting(ctx, profile, fareShare)
}

// recordSighting bumps the travel counters on an existing profile.
func (r *ProfileResolver) recordSighting(ctx context.Context, profile *entity.PassengerProfile, fareShare float64) (*entity.PassengerProfile, error) {
	profile.TravelCount++
	profile.TotalSpent += fareShare
	profile.LastSeen = time.Now()
	if err := r.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile update %s: %w", profile.PassengerKey, err)
	}
	return profile, nil
}

// Merge folds duplicate profiles into a primary one: passenger rows are
// repointed, travel counters summed, duplicate rows deleted. Re-running with
// an empty duplicate set is a no-op.
func (r *ProfileResolver) Merge(ctx context.Context, primaryID uint, duplicateIDs []uint) error {
	if len(duplicateIDs) == 0 {
		return nil
	}

	ids := append([]uint{primaryID}, duplicateIDs...)
	profiles, err := r.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("merge lookup: %w", err)
	}
	var primary *entity.PassengerProfile
	travelCount, totalSpent := 0, 0.0
	for i := range profiles {
		travelCount += profiles[i].TravelCount
		totalSpent += profiles[i].TotalSpent
		if profiles[i].ID == primaryID {
			primary = &profiles[i]
		}
	}
	if primary == nil {
		return fmt.Errorf("merge: primary profile %d: %w", primaryID, repository.ErrNotFound)
	}

	if err := r.profileRepo.ReassignPassengers(ctx, duplicateIDs, primaryID); err != nil {
		return fmt.Errorf("merge reassign: %w", err)
	}
	primary.TravelCount = travelCount
	primary.TotalSpent = totalSpent
	if err := r.profileRepo.Update(ctx, primary); err != nil {
		return fmt.Errorf("merge update: %w", err)
	}
	if err := r.profileRepo.Delete(ctx, duplicateIDs); err != nil {
		return fmt.Errorf("merge delete: %w", err)
	}
	r.logger.Info("Merged passenger profiles",
		"primary", primary.PassengerKey, "duplicates", len(duplicateIDs), "travelCount", travelCount)
	return nil
}

// FindMergeCandidates groups profiles that share an exact (name, age)
// identity. Fuzzy name matching is deliberately not attempted.
func (r *ProfileResolver) FindMergeCandidates(ctx context.Context) ([][]entity.PassengerProfile, error) {
	return r.profileRepo.FindDuplicateGroups(ctx)
}
