package usecase

import (
	"context"
	"fmt"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"
	"ticketsync-service/pkg/logger"
	"ticketsync-service/pkg/metrics"
)

// estimatedRecordBytes is the fixed per-record size estimate used for the
// informational data-rate metric.
const estimatedRecordBytes = 200

// MultiSinkCoordinator replicates canonical records into every configured
// sink. Sinks are fully isolated from each other: a sink whose connection
// never initialized, whose schema setup failed or whose transaction timed
// out contributes a zero count while the remaining sinks proceed.
type MultiSinkCoordinator struct {
	registry  *repository.SinkRegistry
	writer    *SinkWriter
	opTimeout time.Duration
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewMultiSinkCoordinator creates a new coordinator over the given registry.
// opTimeout bounds one sink's schema+write transaction; expiry is treated as
// that sink's failure, never the run's.
func NewMultiSinkCoordinator(
	registry *repository.SinkRegistry,
	writer *SinkWriter,
	opTimeout time.Duration,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *MultiSinkCoordinator {
	return &MultiSinkCoordinator{
		registry:  registry,
		writer:    writer,
		opTimeout: opTimeout,
		metrics:   metrics,
		logger:    logger,
	}
}

// WriteAll writes every record to every sink and returns the per-sink count
// of records actually persisted. Sinks are processed sequentially in
// registration order; records are attempted in input order within each sink.
// Per-sink failures are absorbed here — only a fault in the coordinator
// itself may escape to the caller.
func (c *MultiSinkCoordinator) WriteAll(ctx context.Context, records []*entity.TicketRecord) map[string]int {
	results := make(map[string]int, c.registry.Len())

	for _, sink := range c.registry.Sinks() {
		results[sink.Name] = 0

		if sink.Repo == nil {
			c.logger.Warn("Skipping sink - connection not initialized", "sink", sink.Name)
			continue
		}

		written, err := c.writeSink(ctx, sink, records)
		if err != nil {
			c.logger.Error("Failed to replicate records into sink", "sink", sink.Name, "error", err)
			c.metrics.ErrorsCount.WithLabelValues("sink_write").Inc()
			continue
		}

		results[sink.Name] = written
	}

	return results
}

// writeSink runs one sink's full write: a single transaction wrapping schema
// setup and the batch write, bounded by the per-sink timeout. Any error
// rolls the whole sink transaction back.
func (c *MultiSinkCoordinator) writeSink(ctx context.Context, sink repository.NamedSink, records []*entity.TicketRecord) (int, error) {
	sinkCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	written := 0
	start := time.Now()

	err := sink.Repo.WithinTransaction(sinkCtx, func(txRepo repository.TicketRepository) error {
		warnings, err := txRepo.EnsureSchema(sinkCtx)
		if err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
		for _, warning := range warnings {
			// Indexes are best-effort; a failed index never blocks the write.
			c.logger.Warn("Schema warning", "sink", sink.Name, "warning", warning)
		}

		written = c.writer.WriteBatch(sinkCtx, sink.Name, txRepo, records)
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.recordThroughput(sink.Name, len(records), written, time.Since(start))

	return written, nil
}

// recordThroughput publishes informational throughput metrics for one sink.
// Not used for any control decision.
func (c *MultiSinkCoordinator) recordThroughput(sinkName string, submitted, written int, duration time.Duration) {
	seconds := duration.Seconds()
	recordsPerSec := 0.0
	bytesPerSec := 0.0
	if seconds > 0 {
		recordsPerSec = float64(written) / seconds
		bytesPerSec = float64(written*estimatedRecordBytes) / seconds
	}

	c.metrics.RecordsWritten.WithLabelValues(sinkName).Add(float64(written))
	c.metrics.SinkWriteDuration.WithLabelValues(sinkName).Observe(seconds)
	c.metrics.SinkRecordsPerSec.WithLabelValues(sinkName).Set(recordsPerSec)
	c.metrics.SinkBytesPerSec.WithLabelValues(sinkName).Set(bytesPerSec)

	c.logger.Info("Sink replication finished",
		"sink", sinkName,
		"submitted", submitted,
		"written", written,
		"dropped", submitted-written,
		"durationSeconds", seconds,
		"recordsPerSecond", recordsPerSec,
		"bytesPerSecond", bytesPerSec)
}
