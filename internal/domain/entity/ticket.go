// internal/domain/entity/ticket.go
package entity

import (
	"time"
)

// TicketRecord is the canonical, sink-agnostic representation of a flight
// ticket. It is built once by the transformer and never mutated afterwards.
// The natural key (UserID, Origin, Destination, DepartureTime) is the
// de-duplication identity within every sink; the surrogate row id is
// sink-assigned and never leaves the repository layer.
type TicketRecord struct {
	UserID        string
	Origin        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	SeatNumber    *string
	Notes         *string
}
