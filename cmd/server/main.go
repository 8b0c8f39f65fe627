package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railledger-service/internal/infrastructure/config"
	"railledger-service/internal/infrastructure/persistence"
	"railledger-service/internal/interface/httpapi"
	storeRepo "railledger-service/internal/interface/repository"
	"railledger-service/internal/usecase"
	"railledger-service/pkg/logger"
	"railledger-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Railledger Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection for tickets and profiles
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := storeRepo.Migrate(gormDB); err != nil {
		log.Fatal("Failed to migrate database schema", "error", err)
	}

	// Set up MongoDB connection for the extraction archive
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	ticketRepository := storeRepo.NewGormTicketRepository(gormDB)
	profileRepository := storeRepo.NewGormProfileRepository(gormDB)
	extractionRepository := storeRepo.NewMongoExtractionRepository(mongoDB)

	// Set up the reconciliation engine
	m := metrics.NewMetrics("railledger")
	resolver := usecase.NewProfileResolver(profileRepository, log)
	analyzer := usecase.NewConnectionAnalyzer(log)
	seqValidator := usecase.NewSequenceValidator()
	reconciler := usecase.NewReconciler(ticketRepository, extractionRepository, resolver, analyzer, seqValidator, m, log)

	// Set up HTTP server
	mux := http.NewServeMux()
	apiHandler := httpapi.NewHandler(reconciler, resolver, ticketRepository, log)
	apiHandler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Railledger Service stopped")
}
