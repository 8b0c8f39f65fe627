package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/infrastructure/config"
	"railledger-service/internal/infrastructure/persistence"
	storeRepo "railledger-service/internal/interface/repository"
	"railledger-service/internal/usecase"
	"railledger-service/pkg/logger"
	"railledger-service/pkg/metrics"
)

// extractionFile is the shape the PDF extractor writes: either a single
// booking or a multi-booking document.
type extractionFile struct {
	entity.TicketExtraction
	MultiBooking bool                      `json:"multi_booking"`
	Bookings     []entity.TicketExtraction `json:"bookings"`
}

func main() {
	dir := flag.String("dir", "", "directory of extraction JSON files to import")
	flag.Parse()
	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: batchimport -dir <extraction-json-dir>")
		os.Exit(2)
	}

	log := logger.NewLogger()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx := context.Background()

	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := storeRepo.Migrate(gormDB); err != nil {
		log.Fatal("Failed to migrate database schema", "error", err)
	}
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	m := metrics.NewMetrics("railledger_batch")
	resolver := usecase.NewProfileResolver(storeRepo.NewGormProfileRepository(gormDB), log)
	reconciler := usecase.NewReconciler(
		storeRepo.NewGormTicketRepository(gormDB),
		storeRepo.NewMongoExtractionRepository(mongoDB),
		resolver,
		usecase.NewConnectionAnalyzer(log),
		usecase.NewSequenceValidator(),
		m,
		log,
	)
	importer := usecase.NewBatchImporter(reconciler, cfg.BatchSize, cfg.BatchPause, log)

	items, err := loadExtractions(*dir)
	if err != nil {
		log.Fatal("Failed to load extraction files", "dir", *dir, "error", err)
	}
	log.Info("Loaded extraction files", "dir", *dir, "tickets", len(items))

	stats, results := importer.ImportAll(ctx, items)

	fmt.Printf("imported=%d updated=%d skipped=%d duplicates=%d failed=%d\n",
		stats.Imported, stats.Updated, stats.Skipped, stats.Duplicates, stats.Failed)
	for _, res := range results {
		if res != nil && res.Action == entity.ActionSkipped && res.Reason == entity.SkipCleanupRequired {
			fmt.Printf("cleanup required for PNR %s (ticket %d)\n", res.PNR, res.TicketID)
		}
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

// loadExtractions reads every .json file in dir, unwrapping multi-booking
// documents into individual ticket extractions.
func loadExtractions(dir string) ([]usecase.BatchItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var items []usecase.BatchItem
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var file extractionFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		if file.MultiBooking {
			for i := range file.Bookings {
				booking := file.Bookings[i]
				items = append(items, usecase.BatchItem{Extraction: &booking, SourceFile: entry.Name()})
			}
			continue
		}
		ext := file.TicketExtraction
		items = append(items, usecase.BatchItem{Extraction: &ext, SourceFile: entry.Name()})
	}
	return items, nil
}
