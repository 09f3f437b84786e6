package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketsync-service/internal/domain/entity"
	domainrepo "ticketsync-service/internal/domain/repository"
	"ticketsync-service/internal/infrastructure/config"
	"ticketsync-service/internal/infrastructure/oauth"
	"ticketsync-service/internal/infrastructure/persistence"
	"ticketsync-service/internal/interface/amadeus"
	"ticketsync-service/internal/interface/repository"
	"ticketsync-service/internal/usecase"
	"ticketsync-service/pkg/logger"
	"ticketsync-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Ticketsync Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the offer inbox and run reports
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	offerRepo := repository.NewMongoOfferRepository(db)
	reportRepo := repository.NewMongoRunReportRepository(db)

	// Open every configured sink; unreachable sinks stay registered with a
	// nil repository and contribute zero counts.
	registry := domainrepo.NewSinkRegistry()
	for _, conn := range persistence.OpenSinks(cfg.SinkTargets, log) {
		if conn.DB == nil {
			registry.Register(conn.Name, nil)
			continue
		}
		registry.Register(conn.Name, repository.NewGormTicketRepository(conn.DB, conn.Name, log))
	}
	if registry.Len() == 0 {
		log.Fatal("No sink targets configured")
	}

	appMetrics := metrics.NewMetrics("ticketsync")

	// Set up the transform + replicate pipeline
	validator := usecase.NewOfferValidator()
	transformer := usecase.NewOfferTransformer(cfg.DefaultUserID, validator, log)
	writer := usecase.NewSinkWriter(cfg.SinkBatchSize, log)
	coordinator := usecase.NewMultiSinkCoordinator(registry, writer, cfg.SinkOpTimeout, appMetrics, log)

	// Set up Amadeus OAuth and the offers client
	amadeusOAuth := oauth.NewAmadeusOAuth(
		cfg.AmadeusClientID,
		cfg.AmadeusClientSecret,
		cfg.AmadeusTokenURL,
		log,
	)
	offerSource := amadeus.NewClient(amadeusOAuth.HTTPClient(ctx), cfg.AmadeusOffersURL, log)

	pipeline := usecase.NewIngestionPipeline(
		offerSource,
		offerRepo,
		reportRepo,
		transformer,
		coordinator,
		entity.OfferSearchQuery{
			Origin:      cfg.SearchOrigin,
			Destination: cfg.SearchDestination,
			DaysAhead:   cfg.SearchDaysAhead,
			Adults:      cfg.SearchAdults,
			Max:         cfg.SearchMax,
		},
		appMetrics,
		log,
	)

	// Start offer fetching in a goroutine
	go func() {
		fetchTicker := time.NewTicker(cfg.FetchInterval)
		defer fetchTicker.Stop()

		// One fetch up front rather than waiting a full interval
		if err := pipeline.FetchOffers(ctx); err != nil {
			log.Error("Error fetching offers", "error", err)
		}

		for {
			select {
			case <-ctx.Done():
				log.Info("Offer fetcher stopped")
				return
			case <-fetchTicker.C:
				if err := pipeline.FetchOffers(ctx); err != nil {
					log.Error("Error fetching offers", "error", err)
				}
			}
		}
	}()

	// Start offer processor in a goroutine
	go func() {
		processTicker := time.NewTicker(cfg.ProcessInterval)
		defer processTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Offer processor stopped")
				return
			case <-processTicker.C:
				log.Info("Processing pending offers")
				if err := pipeline.ProcessPendingOffers(ctx); err != nil {
					log.Error("Error processing offers", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
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
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Ticketsync Service stopped")
}
