package usecase

import (
	"context"
	"sync"
	"time"

	"railledger-service/internal/domain/entity"
	"railledger-service/pkg/logger"
)

// BatchItem is one extraction queued for batch import.
type BatchItem struct {
	Extraction *entity.TicketExtraction
	SourceFile string
}

// BatchImporter runs imports through the reconciler in bounded waves so a
// bulk load never opens unbounded concurrent store connections.
type BatchImporter struct {
	reconciler *Reconciler
	batchSize  int
	pause      time.Duration
	logger     logger.Logger
}

// NewBatchImporter creates a new batch importer
func NewBatchImporter(reconciler *Reconciler, batchSize int, pause time.Duration, log logger.Logger) *BatchImporter {
	if batchSize < 1 {
		batchSize = 1
	}
	return &BatchImporter{
		reconciler: reconciler,
		batchSize:  batchSize,
		pause:      pause,
		logger:     log,
	}
}

// ImportAll processes the items in waves of batchSize concurrent imports
// with a short pause between waves, and aggregates the per-call results.
// Cancelling the context abandons the remaining waves.
func (b *BatchImporter) ImportAll(ctx context.Context, items []BatchItem) (*entity.BatchStats, []*entity.ImportResult) {
	stats := &entity.BatchStats{}
	results := make([]*entity.ImportResult, len(items))

	for offset := 0; offset < len(items); offset += b.batchSize {
		if ctx.Err() != nil {
			b.logger.Warn("Batch import abandoned", "processed", offset, "total", len(items))
			break
		}
		end := offset + b.batchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := offset; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				res, _, err := b.reconciler.Process(ctx, items[i].Extraction, items[i].SourceFile)
				if err != nil {
					b.logger.Error("Batch item failed", "sourceFile", items[i].SourceFile, "error", err)
				}
				results[i] = res
			}(i)
		}
		wg.Wait()

		if end < len(items) && b.pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(b.pause):
			}
		}
	}

	for _, res := range results {
		if res != nil {
			stats.Add(res)
		}
	}
	b.logger.Info("Batch import finished",
		"total", len(items), "imported", stats.Imported, "updated", stats.Updated,
		"skipped", stats.Skipped, "duplicates", stats.Duplicates, "failed", stats.Failed)
	return stats, results
}
