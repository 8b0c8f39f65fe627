package repository

import "errors"

// Sentinel errors shared by all repository implementations. Store-specific
// failures (gorm record-not-found, SQLSTATE 23505, mongo no-documents) are
// mapped onto these before crossing the repository boundary.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
