package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"railledger-service/internal/domain/repository"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// translateGormError maps driver errors onto the repository sentinels so the
// usecase layer can arbitrate races without knowing the store.
func translateGormError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicateKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateKey
	}
	return err
}
