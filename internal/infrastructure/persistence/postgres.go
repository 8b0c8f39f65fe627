package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresDB opens a GORM connection to PostgreSQL. TranslateError maps
// driver unique-violation errors onto gorm.ErrDuplicatedKey so the
// repositories can arbitrate racing inserts.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}
