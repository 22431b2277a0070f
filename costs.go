package gatewayops

import (
	"context"
	"net/http"
	"net/url"
)

// CostsClient reads cost summaries recorded by the gateway.
type CostsClient struct {
	c *Client
}

// Summary returns aggregate costs for the period ("day", "week", or
// "month"; empty defaults to "month"). groupBy optionally breaks the totals
// down by "server", "team", or "tool" and is omitted from the request when
// empty.
func (c CostsClient) Summary(ctx context.Context, period, groupBy string) (*CostSummary, error) {
	if period == "" {
		period = "month"
	}
	query := url.Values{}
	query.Set("period", period)
	if groupBy != "" {
		query.Set("group_by", groupBy)
	}

	var summary CostSummary
	if err := c.c.do(ctx, http.MethodGet, "/v1/costs/summary", nil, query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ByServer returns costs grouped by MCP server.
func (c CostsClient) ByServer(ctx context.Context, period string) (*CostSummary, error) {
	return c.Summary(ctx, period, "server")
}

// ByTeam returns costs grouped by team.
func (c CostsClient) ByTeam(ctx context.Context, period string) (*CostSummary, error) {
	return c.Summary(ctx, period, "team")
}

// ByTool returns costs grouped by tool.
func (c CostsClient) ByTool(ctx context.Context, period string) (*CostSummary, error) {
	return c.Summary(ctx, period, "tool")
}
