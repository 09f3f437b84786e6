package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// One-shot Amadeus token fetch for checking credentials outside the service
func main() {
	tokenURL := os.Getenv("AMADEUS_TOKEN_URL")
	if tokenURL == "" {
		tokenURL = "https://test.api.amadeus.com/v1/security/oauth2/token"
	}

	config := &clientcredentials.Config{
		ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	token, err := config.Token(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\nExpires: %s\n\n", token.AccessToken, token.Expiry)
}
