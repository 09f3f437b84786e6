package usecase

import (
	"context"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"
	"ticketsync-service/pkg/logger"
)

// DefaultBatchSize is the chunk size used when none is configured
const DefaultBatchSize = 100

// SinkWriter writes canonical records to one sink. The fast path is a single
// bulk insert per chunk, assuming fresh chunks rarely collide; the slow path
// degrades to per-record upserts, which also makes re-ingestion of
// previously seen records idempotent.
type SinkWriter struct {
	batchSize int
	logger    logger.Logger
}

// NewSinkWriter creates a new sink writer with the given chunk size
func NewSinkWriter(batchSize int, logger logger.Logger) *SinkWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &SinkWriter{
		batchSize: batchSize,
		logger:    logger,
	}
}

// WriteBatch writes records to one sink in chunks, in input order. A chunk
// that fails its bulk insert falls back to per-record upserts; a record that
// fails its upsert is logged and skipped without aborting the rest of the
// chunk or subsequent chunks. Returns the count of records actually
// persisted.
func (w *SinkWriter) WriteBatch(ctx context.Context, sinkName string, repo repository.TicketRepository, records []*entity.TicketRecord) int {
	if len(records) == 0 {
		return 0
	}

	written := 0

	for start := 0; start < len(records); start += w.batchSize {
		end := start + w.batchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		err := repo.InsertBatch(ctx, chunk)
		if err == nil {
			written += len(chunk)
			w.logger.Info("Inserted batch of records", "sink", sinkName, "count", len(chunk))
			continue
		}

		w.logger.Warn("Batch insert failed, falling back to individual upserts",
			"sink", sinkName, "count", len(chunk), "error", err)

		for _, record := range chunk {
			if err := w.WriteOne(ctx, sinkName, repo, record); err != nil {
				continue
			}
			written++
		}
	}

	return written
}

// WriteOne upserts a single record, logging and returning any failure
func (w *SinkWriter) WriteOne(ctx context.Context, sinkName string, repo repository.TicketRepository, record *entity.TicketRecord) error {
	if err := repo.UpsertOne(ctx, record); err != nil {
		w.logger.Error("Failed to upsert record",
			"sink", sinkName,
			"origin", record.Origin,
			"destination", record.Destination,
			"departureTime", record.DepartureTime,
			"error", err)
		return err
	}

	return nil
}
