package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"
	"ticketsync-service/pkg/logger"
	"ticketsync-service/pkg/metrics"
)

// Shared across the package; prometheus collectors register globally and
// must only be created once per test binary.
var testMetrics = metrics.NewMetrics("ticketsync_test")

var testLogger = logger.NewLogger()

func naturalKey(record *entity.TicketRecord) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		record.UserID, record.Origin, record.Destination,
		record.DepartureTime.Format(time.RFC3339))
}

// fakeSinkRepo emulates one Postgres sink: a unique natural key, an
// all-or-nothing bulk insert, per-record upserts and transaction rollback.
type fakeSinkRepo struct {
	rows           map[string]*entity.TicketRecord
	failBulk       bool
	failSchema     bool
	failUpsertKeys map[string]bool
	schemaWarnings []string

	bulkCalls   int
	upsertCalls int
}

func newFakeSinkRepo() *fakeSinkRepo {
	return &fakeSinkRepo{
		rows:           make(map[string]*entity.TicketRecord),
		failUpsertKeys: make(map[string]bool),
	}
}

func (f *fakeSinkRepo) EnsureSchema(ctx context.Context) ([]string, error) {
	if f.failSchema {
		return nil, errors.New("permission denied for schema public")
	}
	return f.schemaWarnings, nil
}

func (f *fakeSinkRepo) InsertBatch(ctx context.Context, records []*entity.TicketRecord) error {
	f.bulkCalls++
	if f.failBulk {
		return errors.New("connection reset during bulk insert")
	}

	// Statement-atomic: a natural-key collision fails the whole chunk with
	// no partial effect.
	seen := make(map[string]bool, len(records))
	for _, record := range records {
		key := naturalKey(record)
		if _, exists := f.rows[key]; exists || seen[key] {
			return errors.New("duplicate key value violates unique constraint")
		}
		seen[key] = true
	}

	for _, record := range records {
		f.rows[naturalKey(record)] = record
	}
	return nil
}

func (f *fakeSinkRepo) UpsertOne(ctx context.Context, record *entity.TicketRecord) error {
	f.upsertCalls++
	key := naturalKey(record)
	if f.failUpsertKeys[key] {
		return errors.New("value too long for type character varying(10)")
	}
	f.rows[key] = record
	return nil
}

func (f *fakeSinkRepo) CountRecords(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeSinkRepo) WithinTransaction(ctx context.Context, fn func(repository.TicketRepository) error) error {
	snapshot := make(map[string]*entity.TicketRecord, len(f.rows))
	for k, v := range f.rows {
		snapshot[k] = v
	}

	if err := fn(f); err != nil {
		f.rows = snapshot
		return err
	}
	return nil
}
