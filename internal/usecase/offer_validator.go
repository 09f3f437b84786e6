package usecase

import (
	"fmt"

	"ticketsync-service/internal/domain/entity"
)

// ValidationError names the first invariant an offer broke. Callers treat
// any validation failure as "drop this offer"; the field/reason pair exists
// for diagnostics, not for control flow.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("offer validation failed on %s: %s", e.Field, e.Reason)
}

// OfferValidator checks raw offer structural integrity before transformation.
// It enforces presence only: timestamps are not checked for chronological
// sanity and location codes are not forced into a 3-letter format.
type OfferValidator struct{}

// NewOfferValidator creates a new offer validator
func NewOfferValidator() *OfferValidator {
	return &OfferValidator{}
}

// Validate runs the structural checks in order, stopping at the first
// failure. Returns nil when the offer is well-formed. Pure, no side effects.
func (v *OfferValidator) Validate(offer *entity.FlightOffer) *ValidationError {
	if offer == nil {
		return &ValidationError{Field: "offer", Reason: "offer is missing"}
	}

	if offer.ID == "" {
		return &ValidationError{Field: "id", Reason: "missing required field: id"}
	}

	if len(offer.Itineraries) == 0 {
		return &ValidationError{Field: "itineraries", Reason: "no itineraries found in offer"}
	}

	for _, itinerary := range offer.Itineraries {
		if len(itinerary.Segments) == 0 {
			return &ValidationError{Field: "segments", Reason: "no segments found in itinerary"}
		}

		for _, segment := range itinerary.Segments {
			if segment.Departure.IataCode == "" || segment.Arrival.IataCode == "" {
				return &ValidationError{Field: "iataCode", Reason: "invalid airport codes in segment"}
			}

			if segment.Departure.At == "" || segment.Arrival.At == "" {
				return &ValidationError{Field: "at", Reason: "missing departure/arrival times"}
			}
		}
	}

	if offer.Price.Total == "" {
		return &ValidationError{Field: "price.total", Reason: "missing price information"}
	}

	return nil
}
