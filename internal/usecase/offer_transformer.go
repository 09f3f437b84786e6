package usecase

import (
	"fmt"
	"math"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/pkg/logger"
	"ticketsync-service/pkg/utils"
)

// TransformStats summarizes one batch transformation
type TransformStats struct {
	Submitted   int     `json:"submitted"`
	Written     int     `json:"written"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}

// OfferTransformer maps validated flight offers to canonical ticket records
type OfferTransformer struct {
	defaultUserID string
	validator     *OfferValidator
	logger        logger.Logger
}

// NewOfferTransformer creates a new offer transformer. defaultUserID is the
// identity attributed to records when the source has no end-user.
func NewOfferTransformer(defaultUserID string, validator *OfferValidator, logger logger.Logger) *OfferTransformer {
	return &OfferTransformer{
		defaultUserID: defaultUserID,
		validator:     validator,
		logger:        logger,
	}
}

// ExtractLegs returns the first segment of the first itinerary and the last
// segment of the last itinerary, or a nil pair when either end is empty.
// A multi-stop itinerary deliberately collapses to its outermost legs;
// intermediate segments are discarded.
func (t *OfferTransformer) ExtractLegs(offer *entity.FlightOffer) (*entity.FlightSegment, *entity.FlightSegment) {
	if len(offer.Itineraries) == 0 {
		return nil, nil
	}

	firstSegments := offer.Itineraries[0].Segments
	if len(firstSegments) == 0 {
		return nil, nil
	}

	lastSegments := offer.Itineraries[len(offer.Itineraries)-1].Segments
	if len(lastSegments) == 0 {
		return nil, nil
	}

	return &firstSegments[0], &lastSegments[len(lastSegments)-1]
}

// TransformOne validates an offer and maps it to a canonical ticket record.
// A failure is logged and returned, never escalated: the caller's contract
// is "nil record means drop and continue".
func (t *OfferTransformer) TransformOne(offer *entity.FlightOffer) (*entity.TicketRecord, error) {
	if verr := t.validator.Validate(offer); verr != nil {
		t.logger.Warn("Data validation failed for offer", "offerId", offerID(offer), "reason", verr.Reason)
		return nil, verr
	}

	firstLeg, lastLeg := t.ExtractLegs(offer)
	if firstLeg == nil || lastLeg == nil {
		t.logger.Warn("Failed to extract flight legs from offer", "offerId", offer.ID)
		return nil, fmt.Errorf("failed to extract flight legs from offer %s", offer.ID)
	}

	departureTime, err := utils.ParseFlightTime(firstLeg.Departure.At)
	if err != nil {
		t.logger.Warn("Invalid departure time in offer", "offerId", offer.ID, "error", err)
		return nil, fmt.Errorf("invalid departure time in offer %s: %w", offer.ID, err)
	}

	arrivalTime, err := utils.ParseFlightTime(lastLeg.Arrival.At)
	if err != nil {
		t.logger.Warn("Invalid arrival time in offer", "offerId", offer.ID, "error", err)
		return nil, fmt.Errorf("invalid arrival time in offer %s: %w", offer.ID, err)
	}

	// Offers carry no seat assignment; the offer id rides along in notes
	// for traceability.
	notes := offer.ID
	record := &entity.TicketRecord{
		UserID:        t.defaultUserID,
		Origin:        firstLeg.Departure.IataCode,
		Destination:   lastLeg.Arrival.IataCode,
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		SeatNumber:    nil,
		Notes:         &notes,
	}

	t.logger.Debug("Transformed offer to ticket record", "offerId", offer.ID)

	return record, nil
}

// TransformBatch applies TransformOne to each offer independently; one
// offer's failure never aborts the batch. Returns the successfully
// transformed records in input order.
func (t *OfferTransformer) TransformBatch(offers []*entity.FlightOffer) []*entity.TicketRecord {
	if len(offers) == 0 {
		t.logger.Warn("No offers to transform")
		return nil
	}

	records := make([]*entity.TicketRecord, 0, len(offers))
	for _, offer := range offers {
		record, err := t.TransformOne(offer)
		if err != nil {
			continue
		}
		records = append(records, record)
	}

	t.logger.Info("Transformed offers", "submitted", len(offers), "transformed", len(records))

	return records
}

// Stats computes the submitted/written arithmetic for one run. Pure
// reporting helper.
func (t *OfferTransformer) Stats(submitted, written int) TransformStats {
	successRate := 0.0
	if submitted > 0 {
		successRate = math.Round(float64(written)/float64(submitted)*100*100) / 100
	}

	return TransformStats{
		Submitted:   submitted,
		Written:     written,
		Failed:      submitted - written,
		SuccessRate: successRate,
	}
}

func offerID(offer *entity.FlightOffer) string {
	if offer == nil {
		return "unknown"
	}
	if offer.ID == "" {
		return "unknown"
	}
	return offer.ID
}
