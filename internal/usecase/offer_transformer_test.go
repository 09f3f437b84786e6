package usecase_test

import (
	"testing"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/usecase"

	"github.com/stretchr/testify/require"
)

const testUserID = "00000000-0000-0000-0000-000000000000"

func newTransformer() *usecase.OfferTransformer {
	return usecase.NewOfferTransformer(testUserID, usecase.NewOfferValidator(), testLogger)
}

// multiLegOffer builds an offer with itineraries [[A->B], [C->D]]
func multiLegOffer(id string) *entity.FlightOffer {
	return &entity.FlightOffer{
		ID: id,
		Itineraries: []entity.Itinerary{
			{
				Segments: []entity.FlightSegment{
					{
						Departure: entity.FlightEndpoint{IataCode: "SYD", At: "2026-11-21T10:15:00"},
						Arrival:   entity.FlightEndpoint{IataCode: "SIN", At: "2026-11-21T16:30:00"},
					},
				},
			},
			{
				Segments: []entity.FlightSegment{
					{
						Departure: entity.FlightEndpoint{IataCode: "SIN", At: "2026-11-28T18:45:00"},
						Arrival:   entity.FlightEndpoint{IataCode: "BKK", At: "2026-11-28T20:10:00"},
					},
				},
			},
		},
		Price: entity.Price{Currency: "EUR", Total: "846.20"},
	}
}

func TestExtractLegs_OutermostLegsOnly(t *testing.T) {
	tr := newTransformer()

	first, last := tr.ExtractLegs(multiLegOffer("1"))
	require.NotNil(t, first)
	require.NotNil(t, last)
	require.Equal(t, "SYD", first.Departure.IataCode)
	require.Equal(t, "BKK", last.Arrival.IataCode)
}

func TestExtractLegs_EmptyEndsReturnNilPair(t *testing.T) {
	tr := newTransformer()

	offer := multiLegOffer("1")
	offer.Itineraries = nil
	first, last := tr.ExtractLegs(offer)
	require.Nil(t, first)
	require.Nil(t, last)

	offer = multiLegOffer("2")
	offer.Itineraries[0].Segments = nil
	first, last = tr.ExtractLegs(offer)
	require.Nil(t, first)
	require.Nil(t, last)

	offer = multiLegOffer("3")
	offer.Itineraries[1].Segments = nil
	first, last = tr.ExtractLegs(offer)
	require.Nil(t, first)
	require.Nil(t, last)
}

func TestTransformOne_BuildsCanonicalRecord(t *testing.T) {
	tr := newTransformer()

	record, err := tr.TransformOne(multiLegOffer("offer-42"))
	require.NoError(t, err)
	require.NotNil(t, record)

	require.Equal(t, testUserID, record.UserID)
	require.Equal(t, "SYD", record.Origin)
	require.Equal(t, "BKK", record.Destination)
	require.Equal(t, time.Date(2026, 11, 21, 10, 15, 0, 0, time.UTC), record.DepartureTime)
	require.Equal(t, time.Date(2026, 11, 28, 20, 10, 0, 0, time.UTC), record.ArrivalTime)
	require.Nil(t, record.SeatNumber)
	require.NotNil(t, record.Notes)
	require.Equal(t, "offer-42", *record.Notes)
}

func TestTransformOne_InvalidOfferIsDropped(t *testing.T) {
	tr := newTransformer()

	offer := multiLegOffer("1")
	offer.Price.Total = ""

	record, err := tr.TransformOne(offer)
	require.Error(t, err)
	require.Nil(t, record)
}

func TestTransformOne_UnparseableTimeIsDropped(t *testing.T) {
	tr := newTransformer()

	offer := multiLegOffer("1")
	offer.Itineraries[0].Segments[0].Departure.At = "next tuesday"

	record, err := tr.TransformOne(offer)
	require.Error(t, err)
	require.Nil(t, record)
}

func TestTransformBatch_SkipsBadOffersKeepsOrder(t *testing.T) {
	tr := newTransformer()

	bad := multiLegOffer("bad")
	bad.Itineraries = nil

	offers := []*entity.FlightOffer{
		multiLegOffer("first"),
		bad,
		multiLegOffer("third"),
	}

	records := tr.TransformBatch(offers)
	require.Len(t, records, 2)
	require.Equal(t, "first", *records[0].Notes)
	require.Equal(t, "third", *records[1].Notes)
}

func TestTransformBatch_Empty(t *testing.T) {
	require.Empty(t, newTransformer().TransformBatch(nil))
}

func TestStats_Arithmetic(t *testing.T) {
	tr := newTransformer()

	stats := tr.Stats(10, 7)
	require.Equal(t, 10, stats.Submitted)
	require.Equal(t, 7, stats.Written)
	require.Equal(t, 3, stats.Failed)
	require.Equal(t, 70.0, stats.SuccessRate)
}

func TestStats_ZeroSubmitted(t *testing.T) {
	stats := newTransformer().Stats(0, 0)
	require.Equal(t, 0, stats.Submitted)
	require.Equal(t, 0, stats.Failed)
	require.Equal(t, 0.0, stats.SuccessRate)
}

func TestStats_RoundsToTwoDecimals(t *testing.T) {
	stats := newTransformer().Stats(3, 1)
	require.Equal(t, 33.33, stats.SuccessRate)
}
