package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railledger-service/internal/domain/entity"
	"railledger-service/pkg/logger"
)

func TestResolveFirstSighting(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileResolver(repo, logger.NewNop())

	profile, err := r.Resolve(context.Background(), "Ram Kumar", 30, "Male", 750.50)
	require.NoError(t, err)

	assert.Equal(t, "RAM KUMAR_30", profile.PassengerKey)
	assert.Equal(t, "RAM KUMAR", profile.Name)
	assert.Equal(t, 1, profile.TravelCount)
	assert.InDelta(t, 750.50, profile.TotalSpent, 0.001)
	assert.NotZero(t, profile.ID)
}

func TestResolveRepeatTravellerAccumulates(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileResolver(repo, logger.NewNop())
	ctx := context.Background()

	first, err := r.Resolve(ctx, "RAM KUMAR", 30, "Male", 500)
	require.NoError(t, err)
	second, err := r.Resolve(ctx, "RAM KUMAR", 30, "Male", 300)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.TravelCount)
	assert.InDelta(t, 800, second.TotalSpent, 0.001)
}

func TestResolveDistinctAgeIsNewProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileResolver(repo, logger.NewNop())
	ctx := context.Background()

	a, err := r.Resolve(ctx, "RAM KUMAR", 30, "Male", 500)
	require.NoError(t, err)
	b, err := r.Resolve(ctx, "RAM KUMAR", 31, "Male", 500)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 1, b.TravelCount)
}

func TestResolveMissingIdentity(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileResolver(repo, logger.NewNop())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "", 30, "Male", 100)
	assert.ErrorIs(t, err, ErrMissingIdentityFields)
	_, err = r.Resolve(ctx, "RAM KUMAR", 0, "Male", 100)
	assert.ErrorIs(t, err, ErrMissingIdentityFields)
}

func TestResolveLostInsertRaceRecordsSighting(t *testing.T) {
	repo := newFakeProfileRepo()
	// A concurrent resolver wins the first-sighting insert between our
	// not-found lookup and our insert attempt.
	repo.beforeInsert = func() {
		repo.seed(entity.PassengerProfile{
			PassengerKey: "RAM KUMAR_30",
			Name:         "RAM KUMAR",
			Age:          30,
			Gender:       "Male",
			TravelCount:  1,
			TotalSpent:   400,
			FirstSeen:    time.Now(),
			LastSeen:     time.Now(),
		})
	}
	r := NewProfileResolver(repo, logger.NewNop())

	profile, err := r.Resolve(context.Background(), "RAM KUMAR", 30, "Male", 600)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.TravelCount)
	assert.InDelta(t, 1000, profile.TotalSpent, 0.001)
}

func TestMergeFoldsDuplicates(t *testing.T) {
	repo := newFakeProfileRepo()
	primaryID := repo.seed(entity.PassengerProfile{
		PassengerKey: "RAM KUMAR_30", Name: "RAM KUMAR", Age: 30, TravelCount: 3, TotalSpent: 300,
	})
	dupID := repo.seed(entity.PassengerProfile{
		PassengerKey: "RAM KUMAR _30", Name: "RAM KUMAR", Age: 30, TravelCount: 2, TotalSpent: 200,
	})
	r := NewProfileResolver(repo, logger.NewNop())

	err := r.Merge(context.Background(), primaryID, []uint{dupID})
	require.NoError(t, err)

	merged, err := repo.FindByKey(context.Background(), "RAM KUMAR_30")
	require.NoError(t, err)
	assert.Equal(t, 5, merged.TravelCount)
	assert.InDelta(t, 500, merged.TotalSpent, 0.001)

	// Duplicate row is gone and its passenger rows were repointed.
	profiles, err := repo.FindByIDs(context.Background(), []uint{dupID})
	require.NoError(t, err)
	assert.Empty(t, profiles)
	require.Len(t, repo.reassigns, 1)
	assert.Equal(t, []uint{dupID, primaryID}, repo.reassigns[0])
}

func TestMergeEmptyDuplicatesIsNoop(t *testing.T) {
	repo := newFakeProfileRepo()
	primaryID := repo.seed(entity.PassengerProfile{
		PassengerKey: "RAM KUMAR_30", Name: "RAM KUMAR", Age: 30, TravelCount: 3, TotalSpent: 300,
	})
	r := NewProfileResolver(repo, logger.NewNop())

	require.NoError(t, r.Merge(context.Background(), primaryID, nil))

	unchanged, err := repo.FindByKey(context.Background(), "RAM KUMAR_30")
	require.NoError(t, err)
	assert.Equal(t, 3, unchanged.TravelCount)
	assert.Empty(t, repo.reassigns)
}

func TestMergeUnknownPrimaryFails(t *testing.T) {
	repo := newFakeProfileRepo()
	dupID := repo.seed(entity.PassengerProfile{
		PassengerKey: "RAM KUMAR_30", Name: "RAM KUMAR", Age: 30, TravelCount: 1,
	})
	r := NewProfileResolver(repo, logger.NewNop())

	err := r.Merge(context.Background(), 999, []uint{dupID})
	assert.Error(t, err)
}

func TestFindMergeCandidates(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.seed(entity.PassengerProfile{PassengerKey: "RAM KUMAR_30", Name: "RAM KUMAR", Age: 30})
	repo.seed(entity.PassengerProfile{PassengerKey: "RAM KUMAR _30", Name: "RAM KUMAR", Age: 30})
	repo.seed(entity.PassengerProfile{PassengerKey: "SUNITA DEVI_28", Name: "SUNITA DEVI", Age: 28})
	r := NewProfileResolver(repo, logger.NewNop())

	groups, err := r.FindMergeCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
}
