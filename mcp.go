package gatewayops

import (
	"context"
	"fmt"
	"net/http"
)

// ServerClient scopes gateway calls to one named MCP server. It is a small
// value object created per call chain; it shares the root client's transport
// and trace context by reference and carries no state of its own beyond the
// retry budget.
type ServerClient struct {
	c       *Client
	server  string
	retries int
}

// Name returns the MCP server name this client is scoped to.
func (s ServerClient) Name() string { return s.server }

// Retries returns the retry budget recorded for this server client.
func (s ServerClient) Retries() int { return s.retries }

// WithRetries returns a copy of the client with its retry budget replaced.
// The receiver is never mutated.
func (s ServerClient) WithRetries(n int) ServerClient {
	s.retries = n
	return s
}

// Tools returns the tool operations for this server.
func (s ServerClient) Tools() ToolsClient {
	return ToolsClient{c: s.c, server: s.server}
}

// Resources returns the resource operations for this server.
func (s ServerClient) Resources() ResourcesClient {
	return ResourcesClient{c: s.c, server: s.server}
}

// Prompts returns the prompt operations for this server.
func (s ServerClient) Prompts() PromptsClient {
	return PromptsClient{c: s.c, server: s.server}
}

// ToolsClient performs tool operations on one MCP server.
type ToolsClient struct {
	c      *Client
	server string
}

// List returns the tools the server exposes. A response without a tools
// field yields an empty slice.
func (t ToolsClient) List(ctx context.Context) ([]ToolDefinition, error) {
	var resp struct {
		Tools []ToolDefinition `json:"tools"`
	}
	path := fmt.Sprintf("/v1/mcp/%s/tools/list", t.server)
	if err := t.c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Tools == nil {
		resp.Tools = []ToolDefinition{}
	}
	return resp.Tools, nil
}

// Call invokes a tool with the given arguments.
func (t ToolsClient) Call(ctx context.Context, tool string, arguments map[string]any) (*ToolCallResult, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}
	body := map[string]any{
		"tool":      tool,
		"arguments": arguments,
	}
	var result ToolCallResult
	path := fmt.Sprintf("/v1/mcp/%s/tools/call", t.server)
	if err := t.c.do(ctx, http.MethodPost, path, body, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResourcesClient performs resource operations on one MCP server.
type ResourcesClient struct {
	c      *Client
	server string
}

// List returns the resources the server exposes.
func (r ResourcesClient) List(ctx context.Context) ([]Resource, error) {
	var resp struct {
		Resources []Resource `json:"resources"`
	}
	path := fmt.Sprintf("/v1/mcp/%s/resources/list", r.server)
	if err := r.c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Resources == nil {
		resp.Resources = []Resource{}
	}
	return resp.Resources, nil
}

// Read fetches the content of the resource at uri.
func (r ResourcesClient) Read(ctx context.Context, uri string) (*ResourceContent, error) {
	body := map[string]any{"uri": uri}
	var content ResourceContent
	path := fmt.Sprintf("/v1/mcp/%s/resources/read", r.server)
	if err := r.c.do(ctx, http.MethodPost, path, body, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// PromptsClient performs prompt operations on one MCP server.
type PromptsClient struct {
	c      *Client
	server string
}

// List returns the prompts the server exposes.
func (p PromptsClient) List(ctx context.Context) ([]Prompt, error) {
	var resp struct {
		Prompts []Prompt `json:"prompts"`
	}
	path := fmt.Sprintf("/v1/mcp/%s/prompts/list", p.server)
	if err := p.c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Prompts == nil {
		resp.Prompts = []Prompt{}
	}
	return resp.Prompts, nil
}

// Get expands the named prompt. A nil arguments map is sent as an empty one.
func (p PromptsClient) Get(ctx context.Context, name string, arguments map[string]any) ([]PromptMessage, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}
	body := map[string]any{
		"name":      name,
		"arguments": arguments,
	}
	var resp struct {
		Messages []PromptMessage `json:"messages"`
	}
	path := fmt.Sprintf("/v1/mcp/%s/prompts/get", p.server)
	if err := p.c.do(ctx, http.MethodPost, path, body, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Messages == nil {
		resp.Messages = []PromptMessage{}
	}
	return resp.Messages, nil
}
