package repository

import (
	"context"

	"railledger-service/internal/domain/entity"
)

// ExtractionRepository archives received extractions and their outcomes.
type ExtractionRepository interface {
	Save(ctx context.Context, log *entity.ExtractionLog) (string, error)
	MarkProcessed(ctx context.Context, id, status, action, reason, errorDetail string) error
	FindByPNR(ctx context.Context, pnr string) ([]*entity.ExtractionLog, error)
}
