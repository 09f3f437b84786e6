package usecase

import (
	"context"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"
	"ticketsync-service/pkg/logger"
	"ticketsync-service/pkg/metrics"

	"github.com/google/uuid"
)

// inboxBatchLimit caps how many pending offers one processing pass picks up
const inboxBatchLimit = 100

// IngestionPipeline drives fetch -> transform -> replicate. Fetching parks
// raw offers in the inbox; processing drains the inbox into the sinks and
// leaves a run report behind.
type IngestionPipeline struct {
	source      repository.OfferSource
	offerRepo   repository.OfferRepository
	reportRepo  repository.RunReportRepository
	transformer *OfferTransformer
	coordinator *MultiSinkCoordinator
	query       entity.OfferSearchQuery
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewIngestionPipeline creates a new ingestion pipeline
func NewIngestionPipeline(
	source repository.OfferSource,
	offerRepo repository.OfferRepository,
	reportRepo repository.RunReportRepository,
	transformer *OfferTransformer,
	coordinator *MultiSinkCoordinator,
	query entity.OfferSearchQuery,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *IngestionPipeline {
	return &IngestionPipeline{
		source:      source,
		offerRepo:   offerRepo,
		reportRepo:  reportRepo,
		transformer: transformer,
		coordinator: coordinator,
		query:       query,
		metrics:     metrics,
		logger:      logger,
	}
}

// FetchOffers pulls one round of offers upstream and parks them in the
// inbox. Upstream or inbox failure is a run-level fault: it propagates so
// the poll loop can log it and retry on the next tick.
func (p *IngestionPipeline) FetchOffers(ctx context.Context) error {
	offers, err := p.source.FetchOffers(ctx, p.query)
	if err != nil {
		p.metrics.ErrorsCount.WithLabelValues("fetch_offers").Inc()
		return err
	}

	p.metrics.OffersFetched.Add(float64(len(offers)))

	if len(offers) == 0 {
		p.logger.Warn("No offers returned upstream")
		return nil
	}

	stored, err := p.offerRepo.SaveFetched(ctx, offers)
	if err != nil {
		p.metrics.ErrorsCount.WithLabelValues("store_offers").Inc()
		return err
	}

	p.metrics.OffersStored.Add(float64(stored))
	p.logger.Info("Stored fetched offers", "fetched", len(offers), "new", stored)

	return nil
}

// ProcessPendingOffers drains one batch of pending offers: transform each,
// replicate the surviving records into every sink, mark the offers, and save
// a run report. Bad offers and failed sinks never fail the run.
func (p *IngestionPipeline) ProcessPendingOffers(ctx context.Context) error {
	pending, err := p.offerRepo.FindUnprocessed(ctx, inboxBatchLimit)
	if err != nil {
		p.logger.Error("Failed to get unprocessed offers", "error", err)
		return err
	}

	if len(pending) == 0 {
		p.logger.Debug("No pending offers to process")
		return nil
	}

	p.logger.Info("Found unprocessed offers", "count", len(pending))

	startedAt := time.Now()
	records := make([]*entity.TicketRecord, 0, len(pending))
	transformedIDs := make([]string, 0, len(pending))

	for _, stored := range pending {
		offer := stored.Offer
		record, err := p.transformer.TransformOne(&offer)
		if err != nil {
			if markErr := p.offerRepo.MarkProcessed(ctx, stored.OfferID, entity.OfferStatusFailed, err.Error()); markErr != nil {
				p.logger.Error("Failed to mark offer as failed", "offerId", stored.OfferID, "error", markErr)
			}
			continue
		}

		records = append(records, record)
		transformedIDs = append(transformedIDs, stored.OfferID)
	}

	p.metrics.RecordsTransformed.Add(float64(len(records)))

	results := p.coordinator.WriteAll(ctx, records)

	for _, offerID := range transformedIDs {
		if err := p.offerRepo.MarkProcessed(ctx, offerID, entity.OfferStatusProcessed, ""); err != nil {
			p.logger.Error("Failed to mark offer as processed", "offerId", offerID, "error", err)
		}
	}

	stats := p.transformer.Stats(len(pending), len(records))
	report := p.buildReport(startedAt, stats, results)

	if err := p.reportRepo.Save(ctx, report); err != nil {
		p.logger.Error("Failed to save run report", "runId", report.ID, "error", err)
	}

	p.logger.Info("Ingestion run finished",
		"runId", report.ID,
		"submitted", stats.Submitted,
		"transformed", stats.Written,
		"failed", stats.Failed,
		"successRate", stats.SuccessRate,
		"sinkResults", results)

	return nil
}

func (p *IngestionPipeline) buildReport(startedAt time.Time, stats TransformStats, results map[string]int) *entity.RunReport {
	finishedAt := time.Now()

	sinkResults := make([]entity.SinkResult, 0, len(results))
	for _, sink := range p.coordinator.registry.Sinks() {
		written, ok := results[sink.Name]
		if !ok {
			continue
		}
		sinkResults = append(sinkResults, entity.SinkResult{
			Sink:      sink.Name,
			Submitted: stats.Written,
			Written:   written,
		})
	}

	return &entity.RunReport{
		ID:              uuid.NewString(),
		StartedAt:       startedAt,
		FinishedAt:      finishedAt,
		OffersSubmitted: stats.Submitted,
		RecordsWritten:  stats.Written,
		RecordsFailed:   stats.Failed,
		SuccessRate:     stats.SuccessRate,
		SinkResults:     sinkResults,
		DurationSeconds: finishedAt.Sub(startedAt).Seconds(),
	}
}
