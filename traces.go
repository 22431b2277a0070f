package gatewayops

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultTraceLimit is the page size used when a TraceFilter leaves Limit
// unset.
const DefaultTraceLimit = 50

// TraceFilter narrows a trace listing. Zero-valued fields are omitted from
// the request entirely; limit and offset are always sent.
type TraceFilter struct {
	MCPServer string
	Operation string
	Status    string
	Limit     int
	Offset    int
}

// TracesClient reads traces recorded by the gateway.
type TracesClient struct {
	c *Client
}

// List returns one page of traces matching the filter.
func (t TracesClient) List(ctx context.Context, filter TraceFilter) (*TracePage, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultTraceLimit
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(filter.Offset))
	if filter.MCPServer != "" {
		query.Set("mcp_server", filter.MCPServer)
	}
	if filter.Operation != "" {
		query.Set("operation", filter.Operation)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var page TracePage
	if err := t.c.do(ctx, http.MethodGet, "/v1/traces", nil, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single trace with its spans.
func (t TracesClient) Get(ctx context.Context, traceID string) (*Trace, error) {
	var trace Trace
	if err := t.c.do(ctx, http.MethodGet, "/v1/traces/"+traceID, nil, nil, &trace); err != nil {
		return nil, err
	}
	return &trace, nil
}
