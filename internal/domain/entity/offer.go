// internal/domain/entity/offer.go
package entity

import (
	"time"
)

// Process status values for stored offers
const (
	OfferStatusPending   = "pending"
	OfferStatusProcessed = "processed"
	OfferStatusFailed    = "failed"
)

// FlightOffer is one upstream flight-price quotation as returned by the
// Amadeus flight-offers search API. Consumed read-only.
type FlightOffer struct {
	ID          string      `json:"id" bson:"id"`
	Itineraries []Itinerary `json:"itineraries" bson:"itineraries"`
	Price       Price       `json:"price" bson:"price"`
}

// Itinerary is an ordered sequence of flight segments forming one directional trip
type Itinerary struct {
	Duration string          `json:"duration,omitempty" bson:"duration,omitempty"`
	Segments []FlightSegment `json:"segments" bson:"segments"`
}

// FlightSegment is one flight hop
type FlightSegment struct {
	Departure   FlightEndpoint `json:"departure" bson:"departure"`
	Arrival     FlightEndpoint `json:"arrival" bson:"arrival"`
	CarrierCode string         `json:"carrierCode,omitempty" bson:"carrierCode,omitempty"`
	Number      string         `json:"number,omitempty" bson:"number,omitempty"`
}

// FlightEndpoint is the airport-side of a segment. At is kept as the raw
// upstream string; parsing happens during transformation.
type FlightEndpoint struct {
	IataCode string `json:"iataCode" bson:"iataCode"`
	Terminal string `json:"terminal,omitempty" bson:"terminal,omitempty"`
	At       string `json:"at" bson:"at"`
}

// Price carries the offer total as the upstream decimal string
type Price struct {
	Currency string `json:"currency,omitempty" bson:"currency,omitempty"`
	Total    string `json:"total" bson:"total"`
}

// StoredOffer is a fetched offer parked in the offer inbox until processed
type StoredOffer struct {
	ID            string      `bson:"_id,omitempty"`
	OfferID       string      `bson:"offerId"`
	Offer         FlightOffer `bson:"offer"`
	FetchedAt     time.Time   `bson:"fetchedAt"`
	ProcessStatus string      `bson:"processStatus"`
	ProcessedAt   *time.Time  `bson:"processedAt,omitempty"`
	ErrorDetail   string      `bson:"errorDetail,omitempty"`
}

// OfferSearchQuery holds the flight-offers search parameters
type OfferSearchQuery struct {
	Origin      string
	Destination string
	DaysAhead   int
	Adults      int
	Max         int
}
