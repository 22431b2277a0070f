package gatewayops

import (
	"encoding/json"
	"time"
)

// The gateway's v0 API emitted camelCase field names while the current API
// uses snake_case. Models that appear in both decode either spelling and
// always marshal the canonical (snake_case, default-tolerant) shape.

// ToolDefinition describes a tool exposed by an MCP server.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

func (t *ToolDefinition) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		InputSchema map[string]any `json:"input_schema"`
		InputCamel  map[string]any `json:"inputSchema"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Name = aux.Name
	t.Description = aux.Description
	t.InputSchema = aux.InputSchema
	if t.InputSchema == nil {
		t.InputSchema = aux.InputCamel
	}
	return nil
}

// ToolCallResult is the outcome of a tool invocation through the gateway,
// including the telemetry the gateway attaches to it.
type ToolCallResult struct {
	Content    any            `json:"content"`
	IsError    bool           `json:"is_error"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	TraceID    string         `json:"trace_id,omitempty"`
	SpanID     string         `json:"span_id,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Cost       float64        `json:"cost,omitempty"`
}

func (r *ToolCallResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Content      any            `json:"content"`
		IsError      bool           `json:"is_error"`
		IsErrorCamel bool           `json:"isError"`
		Metadata     map[string]any `json:"metadata"`
		TraceID      string         `json:"trace_id"`
		TraceCamel   string         `json:"traceId"`
		SpanID       string         `json:"span_id"`
		SpanCamel    string         `json:"spanId"`
		DurationMs   int64          `json:"duration_ms"`
		DurCamel     int64          `json:"durationMs"`
		Cost         float64        `json:"cost"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Content = aux.Content
	r.IsError = aux.IsError || aux.IsErrorCamel
	r.Metadata = aux.Metadata
	r.TraceID = firstString(aux.TraceID, aux.TraceCamel)
	r.SpanID = firstString(aux.SpanID, aux.SpanCamel)
	r.DurationMs = firstInt64(aux.DurationMs, aux.DurCamel)
	r.Cost = aux.Cost
	return nil
}

// Resource describes a resource exposed by an MCP server.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	var aux struct {
		URI         string `json:"uri"`
		Name        string `json:"name"`
		Description string `json:"description"`
		MimeType    string `json:"mime_type"`
		MimeCamel   string `json:"mimeType"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.URI = aux.URI
	r.Name = aux.Name
	r.Description = aux.Description
	r.MimeType = firstString(aux.MimeType, aux.MimeCamel)
	return nil
}

// ResourceContent is the content of a read resource. Blob holds base64
// encoded data for binary resources.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mime_type,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

func (r *ResourceContent) UnmarshalJSON(data []byte) error {
	var aux struct {
		URI       string `json:"uri"`
		MimeType  string `json:"mime_type"`
		MimeCamel string `json:"mimeType"`
		Text      string `json:"text"`
		Blob      string `json:"blob"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.URI = aux.URI
	r.MimeType = firstString(aux.MimeType, aux.MimeCamel)
	r.Text = aux.Text
	r.Blob = aux.Blob
	return nil
}

// Prompt describes a prompt template exposed by an MCP server.
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []map[string]any `json:"arguments,omitempty"`
}

// PromptMessage is one message of an expanded prompt.
type PromptMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// Span is a single recorded unit of work within a trace. ParentSpanID is
// empty for root spans; parent references form a tree.
type Span struct {
	ID           string           `json:"id"`
	TraceID      string           `json:"trace_id"`
	ParentSpanID string           `json:"parent_span_id,omitempty"`
	Name         string           `json:"name"`
	Kind         string           `json:"kind"`
	Status       string           `json:"status"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      *time.Time       `json:"end_time,omitempty"`
	DurationMs   int64            `json:"duration_ms,omitempty"`
	Attributes   map[string]any   `json:"attributes,omitempty"`
	Events       []map[string]any `json:"events,omitempty"`
}

func (s *Span) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          string           `json:"id"`
		TraceID     string           `json:"trace_id"`
		TraceCamel  string           `json:"traceId"`
		ParentID    string           `json:"parent_span_id"`
		ParentCamel string           `json:"parentSpanId"`
		Name        string           `json:"name"`
		Kind        string           `json:"kind"`
		Status      string           `json:"status"`
		Start       time.Time        `json:"start_time"`
		StartCamel  time.Time        `json:"startTime"`
		End         *time.Time       `json:"end_time"`
		EndCamel    *time.Time       `json:"endTime"`
		DurationMs  int64            `json:"duration_ms"`
		DurCamel    int64            `json:"durationMs"`
		Attributes  map[string]any   `json:"attributes"`
		Events      []map[string]any `json:"events"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.ID = aux.ID
	s.TraceID = firstString(aux.TraceID, aux.TraceCamel)
	s.ParentSpanID = firstString(aux.ParentID, aux.ParentCamel)
	s.Name = aux.Name
	s.Kind = aux.Kind
	s.Status = aux.Status
	s.StartTime = firstTime(aux.Start, aux.StartCamel)
	s.EndTime = aux.End
	if s.EndTime == nil {
		s.EndTime = aux.EndCamel
	}
	s.DurationMs = firstInt64(aux.DurationMs, aux.DurCamel)
	s.Attributes = aux.Attributes
	s.Events = aux.Events
	return nil
}

// Trace is a server-recorded record of one logical gateway operation,
// composed of spans.
type Trace struct {
	ID           string     `json:"id"`
	OrgID        string     `json:"org_id"`
	APIKeyID     string     `json:"api_key_id,omitempty"`
	MCPServer    string     `json:"mcp_server"`
	Operation    string     `json:"operation"`
	Status       string     `json:"status"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	DurationMs   int64      `json:"duration_ms,omitempty"`
	Spans        []Span     `json:"spans"`
	ErrorMessage string     `json:"error_message,omitempty"`
	Cost         float64    `json:"cost,omitempty"`
}

func (t *Trace) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          string     `json:"id"`
		OrgID       string     `json:"org_id"`
		OrgCamel    string     `json:"orgId"`
		APIKeyID    string     `json:"api_key_id"`
		APIKeyCamel string     `json:"apiKeyId"`
		MCPServer   string     `json:"mcp_server"`
		ServerCamel string     `json:"mcpServer"`
		Operation   string     `json:"operation"`
		Status      string     `json:"status"`
		Start       time.Time  `json:"start_time"`
		StartCamel  time.Time  `json:"startTime"`
		End         *time.Time `json:"end_time"`
		EndCamel    *time.Time `json:"endTime"`
		DurationMs  int64      `json:"duration_ms"`
		DurCamel    int64      `json:"durationMs"`
		Spans       []Span     `json:"spans"`
		ErrorMsg    string     `json:"error_message"`
		ErrCamel    string     `json:"errorMessage"`
		Cost        float64    `json:"cost"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = aux.ID
	t.OrgID = firstString(aux.OrgID, aux.OrgCamel)
	t.APIKeyID = firstString(aux.APIKeyID, aux.APIKeyCamel)
	t.MCPServer = firstString(aux.MCPServer, aux.ServerCamel)
	t.Operation = aux.Operation
	t.Status = aux.Status
	t.StartTime = firstTime(aux.Start, aux.StartCamel)
	t.EndTime = aux.End
	if t.EndTime == nil {
		t.EndTime = aux.EndCamel
	}
	t.DurationMs = firstInt64(aux.DurationMs, aux.DurCamel)
	t.Spans = aux.Spans
	if t.Spans == nil {
		t.Spans = []Span{}
	}
	t.ErrorMessage = firstString(aux.ErrorMsg, aux.ErrCamel)
	t.Cost = aux.Cost
	return nil
}

// SpanChildren returns the spans whose parent is parentID, in listing
// order. Pass "" for the root spans.
func (t *Trace) SpanChildren(parentID string) []Span {
	var out []Span
	for _, s := range t.Spans {
		if s.ParentSpanID == parentID {
			out = append(out, s)
		}
	}
	return out
}

// TracePage is one page of a trace listing.
type TracePage struct {
	Traces []Trace `json:"traces"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// HasMore reports whether more traces exist beyond this page. It is always
// derived from the pagination fields, never taken from the wire, so it stays
// consistent even when the server synthesizes a page.
func (p *TracePage) HasMore() bool {
	return p.Offset+p.Limit < p.Total
}

func (p *TracePage) UnmarshalJSON(data []byte) error {
	var aux struct {
		Traces []Trace `json:"traces"`
		Total  int     `json:"total"`
		Limit  int     `json:"limit"`
		Offset int     `json:"offset"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Traces == nil {
		aux.Traces = []Trace{}
	}
	p.Traces = aux.Traces
	p.Total = aux.Total
	p.Limit = aux.Limit
	p.Offset = aux.Offset
	return nil
}

func (p TracePage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Traces  []Trace `json:"traces"`
		Total   int     `json:"total"`
		Limit   int     `json:"limit"`
		Offset  int     `json:"offset"`
		HasMore bool    `json:"has_more"`
	}{p.Traces, p.Total, p.Limit, p.Offset, p.HasMore()})
}

// CostBreakdown is one row of a cost summary breakdown.
type CostBreakdown struct {
	Dimension    string  `json:"dimension"`
	Value        string  `json:"value"`
	Cost         float64 `json:"cost"`
	RequestCount int64   `json:"request_count"`
}

func (b *CostBreakdown) UnmarshalJSON(data []byte) error {
	var aux struct {
		Dimension  string  `json:"dimension"`
		Value      string  `json:"value"`
		Cost       float64 `json:"cost"`
		Requests   int64   `json:"request_count"`
		ReqCamel   int64   `json:"requestCount"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Dimension = aux.Dimension
	b.Value = aux.Value
	b.Cost = aux.Cost
	b.RequestCount = firstInt64(aux.Requests, aux.ReqCamel)
	return nil
}

// CostSummary aggregates spend over a period, optionally broken down by
// server, team, or tool. Every field has a usable zero default so callers
// can read it without presence checks.
type CostSummary struct {
	TotalCost         float64         `json:"total_cost"`
	TotalRequests     int64           `json:"total_requests"`
	AvgCostPerRequest float64         `json:"avg_cost_per_request"`
	Period            string          `json:"period"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	ByServer          []CostBreakdown `json:"by_server,omitempty"`
	ByTeam            []CostBreakdown `json:"by_team,omitempty"`
	ByTool            []CostBreakdown `json:"by_tool,omitempty"`
}

// PeriodStart is a legacy-compatible view of StartDate.
func (s CostSummary) PeriodStart() time.Time { return s.StartDate }

// PeriodEnd is a legacy-compatible view of EndDate.
func (s CostSummary) PeriodEnd() time.Time { return s.EndDate }

// RequestCount is a legacy-compatible view of TotalRequests.
func (s CostSummary) RequestCount() int64 { return s.TotalRequests }

func (s *CostSummary) UnmarshalJSON(data []byte) error {
	var aux struct {
		TotalCost     float64         `json:"total_cost"`
		CostCamel     float64         `json:"totalCost"`
		TotalRequests int64           `json:"total_requests"`
		ReqCamel      int64           `json:"requestCount"`
		AvgCost       float64         `json:"avg_cost_per_request"`
		Period        string          `json:"period"`
		Start         time.Time       `json:"start_date"`
		StartCamel    time.Time       `json:"periodStart"`
		End           time.Time       `json:"end_date"`
		EndCamel      time.Time       `json:"periodEnd"`
		ByServer      []CostBreakdown `json:"by_server"`
		ByServerCamel []CostBreakdown `json:"byServer"`
		ByTeam        []CostBreakdown `json:"by_team"`
		ByTeamCamel   []CostBreakdown `json:"byTeam"`
		ByTool        []CostBreakdown `json:"by_tool"`
		ByToolCamel   []CostBreakdown `json:"byTool"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.TotalCost = firstFloat64(aux.TotalCost, aux.CostCamel)
	s.TotalRequests = firstInt64(aux.TotalRequests, aux.ReqCamel)
	s.AvgCostPerRequest = aux.AvgCost
	s.Period = aux.Period
	if s.Period == "" {
		s.Period = "month"
	}
	s.StartDate = firstTime(aux.Start, aux.StartCamel)
	s.EndDate = firstTime(aux.End, aux.EndCamel)
	s.ByServer = firstBreakdown(aux.ByServer, aux.ByServerCamel)
	s.ByTeam = firstBreakdown(aux.ByTeam, aux.ByTeamCamel)
	s.ByTool = firstBreakdown(aux.ByTool, aux.ByToolCamel)
	return nil
}

func firstString(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstInt64(a, b int64) int64 {
	if a != 0 {
		return a
	}
	return b
}

func firstFloat64(a, b float64) float64 {
	if a != 0 {
		return a
	}
	return b
}

func firstTime(a, b time.Time) time.Time {
	if !a.IsZero() {
		return a
	}
	return b
}

func firstBreakdown(a, b []CostBreakdown) []CostBreakdown {
	if a != nil {
		return a
	}
	return b
}
