// Package ebay provides the eBay OAuth token cache and a passthrough client
// for the Browse and Taxonomy APIs, abstracted behind interfaces for
// testability.
package ebay

import (
	"context"
	"encoding/json"
)

// Credentials are the application keys used for the client-credentials grant.
// They are immutable for the lifetime of the process.
type Credentials struct {
	AppID        string
	ClientSecret string
}

// SearchRequest defines the parameters for an eBay item search.
type SearchRequest struct {
	Query string
	Limit int // <= 0 means DefaultSearchLimit
}

// Marketplace defines the read operations proxied to eBay. Every method
// returns the upstream JSON body unchanged.
type Marketplace interface {
	Search(ctx context.Context, req SearchRequest) (json.RawMessage, error)
	GetItem(ctx context.Context, itemID string) (json.RawMessage, error)
	SuggestCategory(ctx context.Context, query string) (json.RawMessage, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
