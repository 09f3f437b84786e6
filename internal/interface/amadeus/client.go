// internal/interface/amadeus/client.go
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ticketsync-service/internal/domain/entity"
	"ticketsync-service/internal/domain/repository"
	"ticketsync-service/pkg/logger"
)

// Client fetches flight offers from the Amadeus flight-offers search API.
// Authentication is handled by the injected HTTP client, which attaches and
// refreshes the bearer token.
type Client struct {
	httpClient *http.Client
	offersURL  string
	logger     logger.Logger
}

// NewClient creates a new Amadeus offers client
func NewClient(httpClient *http.Client, offersURL string, logger logger.Logger) repository.OfferSource {
	if httpClient.Timeout == 0 {
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		offersURL:  offersURL,
		logger:     logger,
	}
}

// FetchOffers runs one flight-offers search and returns the raw offers
func (c *Client) FetchOffers(ctx context.Context, query entity.OfferSearchQuery) ([]*entity.FlightOffer, error) {
	departureDate := time.Now().AddDate(0, 0, query.DaysAhead).Format("2006-01-02")

	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", departureDate)
	params.Set("adults", strconv.Itoa(query.Adults))
	params.Set("max", strconv.Itoa(query.Max))

	requestURL := fmt.Sprintf("%s?%s", c.offersURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create offers request: %w", err)
	}

	c.logger.Info("Fetching flight offers",
		"origin", query.Origin,
		"destination", query.Destination,
		"departureDate", departureDate,
		"max", query.Max)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flight offers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("flight offers search returned status %d: %s", resp.StatusCode, body)
	}

	var response struct {
		Data []*entity.FlightOffer `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode offers response: %w", err)
	}

	c.logger.Info("Fetched flight offers", "count", len(response.Data))

	return response.Data, nil
}
