package oauth

import (
	"context"
	"net/http"

	"ticketsync-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AmadeusOAuth handles the client-credentials token exchange with the
// Amadeus authorization server.
type AmadeusOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewAmadeusOAuth creates a new Amadeus OAuth handler
func NewAmadeusOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *AmadeusOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &AmadeusOAuth{
		config: config,
		logger: logger,
	}
}

// HTTPClient returns an HTTP client that attaches a bearer token to every
// request, refreshing it transparently when it expires.
func (o *AmadeusOAuth) HTTPClient(ctx context.Context) *http.Client {
	return o.config.Client(ctx)
}

// Token fetches a token directly, bypassing the reuse cache
func (o *AmadeusOAuth) Token(ctx context.Context) (*oauth2.Token, error) {
	return o.config.Token(ctx)
}
