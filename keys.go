package gatewayops

import (
	"context"
	"net/http"
	"time"
)

// APIKey describes a gateway API key. The secret itself is only returned
// once, at creation.
type APIKey struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	KeyPrefix    string     `json:"keyPrefix"`
	Environment  string     `json:"environment"`
	Permissions  string     `json:"permissions"`
	RateLimitRPM int        `json:"rateLimitRpm"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastUsedAt   *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// CreateKeyRequest holds the parameters for creating an API key.
// RateLimitRPM is omitted when zero, leaving the gateway default in place.
type CreateKeyRequest struct {
	Name         string `json:"name"`
	Environment  string `json:"environment,omitempty"`
	Permissions  string `json:"permissions,omitempty"`
	RateLimitRPM int    `json:"rateLimitRpm,omitempty"`
}

// CreatedKey pairs a newly created key with its secret token. The token is
// not retrievable again.
type CreatedKey struct {
	Key   APIKey `json:"key"`
	Token string `json:"token"`
}

// KeysClient manages gateway API keys.
type KeysClient struct {
	c *Client
}

// List returns the organization's API keys.
func (k KeysClient) List(ctx context.Context) ([]APIKey, error) {
	var resp struct {
		Keys []APIKey `json:"keys"`
	}
	if err := k.c.do(ctx, http.MethodGet, "/v1/api-keys", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Keys == nil {
		resp.Keys = []APIKey{}
	}
	return resp.Keys, nil
}

// Create provisions a new API key and returns it with its secret token.
func (k KeysClient) Create(ctx context.Context, req CreateKeyRequest) (*CreatedKey, error) {
	var created CreatedKey
	if err := k.c.do(ctx, http.MethodPost, "/v1/api-keys", req, nil, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Revoke disables an API key without deleting its record.
func (k KeysClient) Revoke(ctx context.Context, keyID string) error {
	return k.c.do(ctx, http.MethodPost, "/v1/api-keys/"+keyID+"/revoke", nil, nil, nil)
}

// Delete removes an API key.
func (k KeysClient) Delete(ctx context.Context, keyID string) error {
	return k.c.do(ctx, http.MethodDelete, "/v1/api-keys/"+keyID, nil, nil, nil)
}
