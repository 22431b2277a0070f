// Package gatewayops is the Go client for the GatewayOps MCP gateway.
//
// The client exposes capability-scoped sub-clients for MCP servers proxied
// through the gateway (tools, resources, prompts) along with read access to
// traces, cost summaries, and API key management:
//
//	gw := gatewayops.New("gwo_prd_...")
//	result, err := gw.Server("filesystem").Tools().Call(ctx, "read_file",
//		map[string]any{"path": "/data.csv"})
//
// Failed calls return one of a fixed set of typed errors carrying the
// gateway's machine-readable error code and structured details, so callers
// can branch with errors.As:
//
//	var denied *gatewayops.ToolAccessDeniedError
//	if errors.As(err, &denied) && denied.RequiresApproval {
//		// route through the approval flow
//	}
package gatewayops
