package repository

import "gorm.io/gorm"

// Migrate creates or updates the relational tables the GORM repositories
// depend on, including the unique indexes on tickets.pnr and
// passenger_profiles.passenger_key that arbitrate concurrent imports.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&TicketModel{},
		&PassengerModel{},
		&JourneyModel{},
		&ProfileModel{},
	)
}
