package repository

import (
	"context"

	"ticketsync-service/internal/domain/entity"
)

// TicketRepository defines the storage operations one sink must support.
// InsertBatch and UpsertOne must be safe to call inside WithinTransaction;
// a failed statement may not poison the enclosing transaction.
type TicketRepository interface {
	// EnsureSchema creates the ticket table, the natural-key uniqueness
	// constraint and the secondary indexes if absent. Index failures are
	// returned as warnings, never as an error.
	EnsureSchema(ctx context.Context) ([]string, error)
	// InsertBatch inserts all records with a single statement and no
	// conflict handling; any collision fails the whole batch.
	InsertBatch(ctx context.Context, records []*entity.TicketRecord) error
	// UpsertOne inserts a single record, updating arrival_time, seat_number,
	// notes and updated_at on natural-key conflict.
	UpsertOne(ctx context.Context, record *entity.TicketRecord) error
	CountRecords(ctx context.Context) (int64, error)
	WithinTransaction(ctx context.Context, fn func(TicketRepository) error) error
}
