// internal/domain/entity/run_report.go
package entity

import (
	"time"
)

// SinkResult is the per-sink outcome of one replication run
type SinkResult struct {
	Sink      string `bson:"sink"`
	Submitted int    `bson:"submitted"`
	Written   int    `bson:"written"`
}

// Dropped is the count of records that did not make it into the sink
func (r SinkResult) Dropped() int {
	return r.Submitted - r.Written
}

// RunReport is the durable record of one ingestion run
type RunReport struct {
	ID              string       `bson:"_id"`
	StartedAt       time.Time    `bson:"startedAt"`
	FinishedAt      time.Time    `bson:"finishedAt"`
	OffersSubmitted int          `bson:"offersSubmitted"`
	RecordsWritten  int          `bson:"recordsWritten"`
	RecordsFailed   int          `bson:"recordsFailed"`
	SuccessRate     float64      `bson:"successRate"`
	SinkResults     []SinkResult `bson:"sinkResults"`
	DurationSeconds float64      `bson:"durationSeconds"`
}
