package usecase_test

import (
	"testing"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/usecase"

	"github.com/stretchr/testify/require"
)

func validOffer(id string) *entity.FlightOffer {
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
		},
		Price: entity.Price{Currency: "EUR", Total: "546.70"},
	}
}

func TestOfferValidator_WellFormedOfferPasses(t *testing.T) {
	v := usecase.NewOfferValidator()
	require.Nil(t, v.Validate(validOffer("1")))
}

func TestOfferValidator_PresenceChecksOnly(t *testing.T) {
	v := usecase.NewOfferValidator()

	// Arrival before departure still passes
	offer := validOffer("1")
	offer.Itineraries[0].Segments[0].Departure.At = "2026-11-21T16:30:00"
	offer.Itineraries[0].Segments[0].Arrival.At = "2026-11-21T10:15:00"
	require.Nil(t, v.Validate(offer))

	// Neither is strict 3-letter IATA format
	offer = validOffer("2")
	offer.Itineraries[0].Segments[0].Departure.IataCode = "SYDNEY"
	require.Nil(t, v.Validate(offer))
}

func TestOfferValidator_RejectsBrokenOffers(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*entity.FlightOffer)
		wantField string
	}{
		{
			name:      "missing id",
			mutate:    func(o *entity.FlightOffer) { o.ID = "" },
			wantField: "id",
		},
		{
			name:      "missing itineraries",
			mutate:    func(o *entity.FlightOffer) { o.Itineraries = nil },
			wantField: "itineraries",
		},
		{
			name:      "empty itineraries",
			mutate:    func(o *entity.FlightOffer) { o.Itineraries = []entity.Itinerary{} },
			wantField: "itineraries",
		},
		{
			name: "itinerary without segments",
			mutate: func(o *entity.FlightOffer) {
				o.Itineraries = append(o.Itineraries, entity.Itinerary{})
			},
			wantField: "segments",
		},
		{
			name: "missing departure iata code",
			mutate: func(o *entity.FlightOffer) {
				o.Itineraries[0].Segments[0].Departure.IataCode = ""
			},
			wantField: "iataCode",
		},
		{
			name: "missing arrival iata code",
			mutate: func(o *entity.FlightOffer) {
				o.Itineraries[0].Segments[0].Arrival.IataCode = ""
			},
			wantField: "iataCode",
		},
		{
			name: "missing departure time",
			mutate: func(o *entity.FlightOffer) {
				o.Itineraries[0].Segments[0].Departure.At = ""
			},
			wantField: "at",
		},
		{
			name: "missing arrival time",
			mutate: func(o *entity.FlightOffer) {
				o.Itineraries[0].Segments[0].Arrival.At = ""
			},
			wantField: "at",
		},
		{
			name:      "missing price total",
			mutate:    func(o *entity.FlightOffer) { o.Price.Total = "" },
			wantField: "price.total",
		},
	}

	v := usecase.NewOfferValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := validOffer("1")
			tt.mutate(offer)

			verr := v.Validate(offer)
			require.NotNil(t, verr)
			require.Equal(t, tt.wantField, verr.Field)
			require.NotEmpty(t, verr.Reason)
		})
	}
}

func TestOfferValidator_ChecksEverySegment(t *testing.T) {
	offer := validOffer("1")
	offer.Itineraries = append(offer.Itineraries, entity.Itinerary{
		Segments: []entity.FlightSegment{
			{
				Departure: entity.FlightEndpoint{IataCode: "SIN", At: "2026-11-22T08:00:00"},
				Arrival:   entity.FlightEndpoint{IataCode: "BKK"}, // no time
			},
		},
	})

	verr := usecase.NewOfferValidator().Validate(offer)
	require.NotNil(t, verr)
	require.Equal(t, "at", verr.Field)
}

func TestOfferValidator_NilOffer(t *testing.T) {
	verr := usecase.NewOfferValidator().Validate(nil)
	require.NotNil(t, verr)
}
