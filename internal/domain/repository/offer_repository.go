package repository

import (
	"context"

	"ticketsync-service/internal/domain/entity"
)

// OfferSource defines the interface for fetching raw offers upstream
type OfferSource interface {
	FetchOffers(ctx context.Context, query entity.OfferSearchQuery) ([]*entity.FlightOffer, error)
}

// OfferRepository defines the interface for the offer inbox
type OfferRepository interface {
	// SaveFetched parks fetched offers with pending status; re-fetching an
	// already stored offer refreshes its payload without resetting its status.
	SaveFetched(ctx context.Context, offers []*entity.FlightOffer) (int, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.StoredOffer, error)
	MarkProcessed(ctx context.Context, offerID, status, errorDetail string) error
}
