package repository

import (
	"context"
	"time"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormProfileRepository implements the ProfileRepository interface
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository
func NewGormProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &GormProfileRepository{
		db: db,
	}
}

// ProfileModel GORM model for database mapping
type ProfileModel struct {
	ID           uint    `gorm:"primaryKey"`
	PassengerKey string  `gorm:"column:passenger_key;size:70;uniqueIndex;not null"`
	Name         string  `gorm:"column:name;size:60;not null"`
	Age          int     `gorm:"column:age;not null"`
	Gender       string  `gorm:"column:gender;size:16"`
	TravelCount  int     `gorm:"column:travel_count;not null;default:0"`
	TotalSpent   float64 `gorm:"column:total_spent"`
	FirstSeen    time.Time
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (ProfileModel) TableName() string {
	return "passenger_profiles"
}

// FindByKey finds a profile by its passenger key
func (r *GormProfileRepository) FindByKey(ctx context.Context, key string) (*entity.PassengerProfile, error) {
	var model ProfileModel
	result := r.db.WithContext(ctx).Where("passenger_key = ?", key).First(&model)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	return profileToEntity(&model), nil
}

// Insert inserts a new profile and returns its id. A unique violation on
// passenger_key surfaces as ErrDuplicateKey for race arbitration.
func (r *GormProfileRepository) Insert(ctx context.Context, profile *entity.PassengerProfile) (uint, error) {
	model := profileToModel(profile)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return 0, translateGormError(result.Error)
	}
	return model.ID, nil
}

// Update updates a profile's counters and identity fields
func (r *GormProfileRepository) Update(ctx context.Context, profile *entity.PassengerProfile) error {
	updates := map[string]interface{}{
		"gender":       profile.Gender,
		"travel_count": profile.TravelCount,
		"total_spent":  profile.TotalSpent,
		"last_seen":    profile.LastSeen,
	}
	result := r.db.WithContext(ctx).Model(&ProfileModel{}).Where("id = ?", profile.ID).Updates(updates)
	return translateGormError(result.Error)
}

// Delete removes profile rows by id
func (r *GormProfileRepository) Delete(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&ProfileModel{})
	return translateGormError(result.Error)
}

// ReassignPassengers repoints passenger rows from duplicate profiles to the
// primary profile
func (r *GormProfileRepository) ReassignPassengers(ctx context.Context, fromIDs []uint, toID uint) error {
	if len(fromIDs) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&PassengerModel{}).
		Where("profile_id IN ?", fromIDs).
		Update("profile_id", toID)
	return translateGormError(result.Error)
}

// FindByIDs fetches profiles by id
func (r *GormProfileRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.PassengerProfile, error) {
	var models []ProfileModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	profiles := make([]entity.PassengerProfile, 0, len(models))
	for i := range models {
		profiles = append(profiles, *profileToEntity(&models[i]))
	}
	return profiles, nil
}

// FindDuplicateGroups returns profiles grouped by exact (name, age) where
// the identity occurs more than once
func (r *GormProfileRepository) FindDuplicateGroups(ctx context.Context) ([][]entity.PassengerProfile, error) {
	type identity struct {
		Name string
		Age  int
	}
	var dupes []identity
	result := r.db.WithContext(ctx).Model(&ProfileModel{}).
		Select("name, age").
		Group("name, age").
		Having("COUNT(*) > 1").
		Scan(&dupes)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}

	groups := make([][]entity.PassengerProfile, 0, len(dupes))
	for _, d := range dupes {
		var models []ProfileModel
		result := r.db.WithContext(ctx).
			Where("name = ? AND age = ?", d.Name, d.Age).
			Order("id").
			Find(&models)
		if result.Error != nil {
			return nil, translateGormError(result.Error)
		}
		group := make([]entity.PassengerProfile, 0, len(models))
		for i := range models {
			group = append(group, *profileToEntity(&models[i]))
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func profileToEntity(m *ProfileModel) *entity.PassengerProfile {
	return &entity.PassengerProfile{
		ID:           m.ID,
		PassengerKey: m.PassengerKey,
		Name:         m.Name,
		Age:          m.Age,
		Gender:       m.Gender,
		TravelCount:  m.TravelCount,
		TotalSpent:   m.TotalSpent,
		FirstSeen:    m.FirstSeen,
		LastSeen:     m.LastSeen,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func profileToModel(p *entity.PassengerProfile) *ProfileModel {
	return &ProfileModel{
		ID:           p.ID,
		PassengerKey: p.PassengerKey,
		Name:         p.Name,
		Age:          p.Age,
		Gender:       p.Gender,
		TravelCount:  p.TravelCount,
		TotalSpent:   p.TotalSpent,
		FirstSeen:    p.FirstSeen,
		LastSeen:     p.LastSeen,
	}
}
