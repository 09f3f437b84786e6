// internal/interface/repository/ticket_repo.go
package repository

import (
	"context"
	"fmt"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"
	"ticketsync-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTicketRepository implements the TicketRepository interface for one
// Postgres sink
type GormTicketRepository struct {
	db       *gorm.DB
	sinkName string
	logger   logger.Logger
}

// NewGormTicketRepository creates a new GORM ticket repository bound to one sink
func NewGormTicketRepository(db *gorm.DB, sinkName string, logger logger.Logger) repository.TicketRepository {
	return &GormTicketRepository{
		db:       db,
		sinkName: sinkName,
		logger:   logger,
	}
}

// TicketRecords GORM model for database mapping
type TicketRecords struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        string    `gorm:"column:user_id"`
	Origin        string    `gorm:"column:origin"`
	Destination   string    `gorm:"column:destination"`
	DepartureTime time.Time `gorm:"column:departure_time"`
	ArrivalTime   time.Time `gorm:"column:arrival_time"`
	SeatNumber    *string   `gorm:"column:seat_number"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (TicketRecords) TableName() string {
	return "ticket_records"
}

const createTableQuery = `
CREATE TABLE IF NOT EXISTS ticket_records (
    id SERIAL PRIMARY KEY,
    user_id VARCHAR(36) NOT NULL,
    origin VARCHAR(5) NOT NULL,
    destination VARCHAR(5) NOT NULL,
    departure_time TIMESTAMP NOT NULL,
    arrival_time TIMESTAMP NOT NULL,
    seat_number VARCHAR(10),
    notes TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Guarded by an existence check so repeated calls stay idempotent; a blind
// ADD CONSTRAINT would fail on the second run.
const addConstraintQuery = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'ticket_records_user_origin_dest_departure_key'
    ) THEN
        ALTER TABLE ticket_records
        ADD CONSTRAINT ticket_records_user_origin_dest_departure_key
        UNIQUE(user_id, origin, destination, departure_time);
    END IF;
END $$;`

var indexQueries = []struct {
	name  string
	query string
}{
	{"idx_ticket_records_user_id", "CREATE INDEX IF NOT EXISTS idx_ticket_records_user_id ON ticket_records(user_id)"},
	{"idx_ticket_records_origin", "CREATE INDEX IF NOT EXISTS idx_ticket_records_origin ON ticket_records(origin)"},
	{"idx_ticket_records_destination", "CREATE INDEX IF NOT EXISTS idx_ticket_records_destination ON ticket_records(destination)"},
	{"idx_ticket_records_departure_time", "CREATE INDEX IF NOT EXISTS idx_ticket_records_departure_time ON ticket_records(departure_time)"},
	{"idx_ticket_records_created_at", "CREATE INDEX IF NOT EXISTS idx_ticket_records_created_at ON ticket_records(created_at)"},
}

// EnsureSchema creates the ticket table, natural-key constraint and secondary
// indexes if absent. Table or constraint failure is fatal for this sink's
// write attempt; index failures are collected as warnings only.
func (r *GormTicketRepository) EnsureSchema(ctx context.Context) ([]string, error) {
	db := r.db.WithContext(ctx)

	if err := db.Exec(createTableQuery).Error; err != nil {
		return nil, fmt.Errorf("failed to create ticket_records table in %s: %w", r.sinkName, err)
	}

	if err := db.Exec(addConstraintQuery).Error; err != nil {
		return nil, fmt.Errorf("failed to add natural-key constraint in %s: %w", r.sinkName, err)
	}

	var warnings []string
	for _, idx := range indexQueries {
		// Each index in its own savepoint so a failure cannot poison the
		// enclosing transaction.
		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Exec(idx.query).Error
		})
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to create index %s: %v", idx.name, err))
		}
	}

	return warnings, nil
}

// InsertBatch inserts all records with a single multi-row statement and no
// conflict clause. Runs in a savepoint when called inside a transaction.
func (r *GormTicketRepository) InsertBatch(ctx context.Context, records []*entity.TicketRecord) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]TicketRecords, 0, len(records))
	for _, record := range records {
		models = append(models, toModel(record))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
}

// UpsertOne inserts a single record, resolving natural-key conflicts by
// updating arrival_time, seat_number, notes and updated_at.
func (r *GormTicketRepository) UpsertOne(ctx context.Context, record *entity.TicketRecord) error {
	model := toModel(record)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "origin"},
				{Name: "destination"},
				{Name: "departure_time"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"arrival_time": model.ArrivalTime,
				"seat_number":  model.SeatNumber,
				"notes":        model.Notes,
				"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).Create(&model).Error
	})
}

// CountRecords returns the number of ticket rows in this sink
func (r *GormTicketRepository) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TicketRecords{}).Count(&count).Error
	return count, err
}

// WithinTransaction runs fn against a repository bound to one transaction.
// Rolls back on error, commits on nil.
func (r *GormTicketRepository) WithinTransaction(ctx context.Context, fn func(repository.TicketRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormTicketRepository{
			db:       tx,
			sinkName: r.sinkName,
			logger:   r.logger,
		})
	})
}

func toModel(record *entity.TicketRecord) TicketRecords {
	return TicketRecords{
		UserID:        record.UserID,
		Origin:        record.Origin,
		Destination:   record.Destination,
		DepartureTime: record.DepartureTime,
		ArrivalTime:   record.ArrivalTime,
		SeatNumber:    record.SeatNumber,
		Notes:         record.Notes,
	}
}
