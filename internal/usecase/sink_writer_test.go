package usecase_test

import (
	"context"
	"testing"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/usecase"

	"github.com/stretchr/testify/require"
)

func makeRecords(n int) []*entity.TicketRecord {
	records := make([]*entity.TicketRecord, 0, n)
	base := time.Date(2026, 11, 21, 10, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		notes := "offer"
		records = append(records, &entity.TicketRecord{
			UserID:        testUserID,
			Origin:        "SYD",
			Destination:   "BKK",
			DepartureTime: base.Add(time.Duration(i) * time.Hour),
			ArrivalTime:   base.Add(time.Duration(i)*time.Hour + 9*time.Hour),
			Notes:         &notes,
		})
	}

	return records
}

func TestWriteBatch_BulkFastPath(t *testing.T) {
	repo := newFakeSinkRepo()
	writer := usecase.NewSinkWriter(2, testLogger)

	written := writer.WriteBatch(context.Background(), "main_app", repo, makeRecords(5))

	require.Equal(t, 5, written)
	require.Len(t, repo.rows, 5)
	// 5 records at chunk size 2 -> 3 bulk statements, no fallback
	require.Equal(t, 3, repo.bulkCalls)
	require.Zero(t, repo.upsertCalls)
}

func TestWriteBatch_FallbackMatchesBulkOutcome(t *testing.T) {
	records := makeRecords(5)

	bulkRepo := newFakeSinkRepo()
	usecase.NewSinkWriter(2, testLogger).WriteBatch(context.Background(), "a", bulkRepo, records)

	fallbackRepo := newFakeSinkRepo()
	fallbackRepo.failBulk = true
	written := usecase.NewSinkWriter(2, testLogger).WriteBatch(context.Background(), "b", fallbackRepo, records)

	require.Equal(t, 5, written)
	require.Equal(t, bulkRepo.rows, fallbackRepo.rows)
	require.Equal(t, 5, fallbackRepo.upsertCalls)
}

func TestWriteBatch_RecordFailureSkippedNotFatal(t *testing.T) {
	records := makeRecords(4)

	repo := newFakeSinkRepo()
	repo.failBulk = true
	repo.failUpsertKeys[naturalKey(records[1])] = true

	written := usecase.NewSinkWriter(10, testLogger).WriteBatch(context.Background(), "main_app", repo, records)

	require.Equal(t, 3, written)
	require.Len(t, repo.rows, 3)
	_, dropped := repo.rows[naturalKey(records[1])]
	require.False(t, dropped)
}

func TestWriteBatch_ConflictTriggersFallbackUpsert(t *testing.T) {
	records := makeRecords(3)
	ctx := context.Background()
	writer := usecase.NewSinkWriter(10, testLogger)

	repo := newFakeSinkRepo()
	require.Equal(t, 3, writer.WriteBatch(ctx, "main_app", repo, records))

	// Re-ingesting the same records: the bulk insert now collides on the
	// natural key and the chunk degrades to upserts, ending with the same
	// single row per key and the second write's values.
	updated := makeRecords(3)
	laterArrival := updated[0].ArrivalTime.Add(2 * time.Hour)
	updated[0].ArrivalTime = laterArrival

	require.Equal(t, 3, writer.WriteBatch(ctx, "main_app", repo, updated))
	require.Len(t, repo.rows, 3)
	require.Equal(t, laterArrival, repo.rows[naturalKey(updated[0])].ArrivalTime)
}

func TestWriteBatch_Empty(t *testing.T) {
	repo := newFakeSinkRepo()
	written := usecase.NewSinkWriter(10, testLogger).WriteBatch(context.Background(), "main_app", repo, nil)
	require.Zero(t, written)
	require.Zero(t, repo.bulkCalls)
}

func TestWriteOne_Upserts(t *testing.T) {
	repo := newFakeSinkRepo()
	writer := usecase.NewSinkWriter(10, testLogger)
	record := makeRecords(1)[0]

	require.NoError(t, writer.WriteOne(context.Background(), "main_app", repo, record))
	require.NoError(t, writer.WriteOne(context.Background(), "main_app", repo, record))
	require.Len(t, repo.rows, 1)
}
