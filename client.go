package gatewayops

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// Version is the SDK version reported in the User-Agent header.
	Version = "0.1.0"

	// DefaultBaseURL is the production GatewayOps API endpoint.
	DefaultBaseURL = "https://api.gatewayops.com"

	// DefaultTimeout is the per-request timeout applied to the default
	// HTTP client.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the retry budget recorded on new clients. The
	// SDK itself never retries; the value is carried for wrapper layers
	// that do.
	DefaultMaxRetries = 3
)

// Client is the root GatewayOps API client. It owns the credentials, the
// HTTP transport, and the current trace context. Capability sub-clients
// obtained from it (Server, Traces, Costs, Keys) all dispatch through the
// same client.
//
// The trace context is a single mutable slot, so trace-scoped sections are
// not safe for concurrent use from multiple goroutines. Callers that need
// concurrent traced operations should use independent clients or serialize
// the traced sections; everything else on the client is read-only after New.
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	maxRetries int
	http       Doer
	log        *slog.Logger

	traceID string // current trace context, "" when unset
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. A trailing slash is trimmed.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the request timeout on the default HTTP client. It has
// no effect when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.http.(*http.Client); ok {
			hc.Timeout = d
		}
	}
}

// WithHTTPClient overrides the underlying HTTP transport. Anything that can
// execute an *http.Request works, including *http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithMaxRetries sets the retry budget recorded on the client. The SDK
// performs no retries itself.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithLogger enables debug logging of request dispatch.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a GatewayOps client authenticating with the given API key
// (for example "gwo_prd_...").
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		userAgent:  "gatewayops-go/" + Version,
		maxRetries: DefaultMaxRetries,
		http:       newHTTPClient(DefaultTimeout),
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// MaxRetries returns the retry budget recorded on the client.
func (c *Client) MaxRetries() int { return c.maxRetries }

// Server returns a sub-client scoped to the named MCP server.
func (c *Client) Server(name string) ServerClient {
	return ServerClient{c: c, server: name, retries: c.maxRetries}
}

// Traces returns the sub-client for reading traces.
func (c *Client) Traces() TracesClient { return TracesClient{c: c} }

// Costs returns the sub-client for reading cost summaries.
func (c *Client) Costs() CostsClient { return CostsClient{c: c} }

// Keys returns the sub-client for managing API keys.
func (c *Client) Keys() KeysClient { return KeysClient{c: c} }

// do dispatches one request: it attaches the auth and trace headers, invokes
// the transport exactly once, and routes the result. Success bodies decode
// into out (an undecodable body leaves out zero-valued rather than failing),
// and every >= 400 response is classified into a typed error.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{APIError: APIError{
				Message: "encode request body: " + err.Error(),
				Code:    "invalid_request_body",
				Details: map[string]any{},
			}}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &NetworkError{Message: "create request: " + err.Error(), Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.traceID != "" {
		req.Header.Set("X-Trace-ID", c.traceID)
	}

	c.log.Debug("gatewayops request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	c.log.Debug("gatewayops response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return classify(resp.StatusCode, decodeBody(data))
	}

	if out != nil && len(data) > 0 {
		// A body the server sent but we cannot decode is treated the
		// same as an empty one: the caller's model keeps its defaults.
		if err := json.Unmarshal(data, out); err != nil {
			c.log.Debug("gatewayops undecodable response body", "path", path, "error", err)
		}
	}
	return nil
}

// decodeBody decodes a JSON object body, falling back to an empty mapping
// for empty or undecodable payloads.
func decodeBody(data []byte) map[string]any {
	body := map[string]any{}
	if len(data) == 0 {
		return body
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return map[string]any{}
	}
	return body
}
