package gatewayops

import "github.com/google/uuid"

// TraceScope is an active trace context. Calls dispatched while a scope is
// open carry its TraceID in the X-Trace-ID header, correlating them into one
// logical trace on the gateway.
type TraceScope struct {
	// TraceID is the generated identifier for this scope.
	TraceID string
	// Name is the caller-supplied label for the traced operation.
	Name string

	c    *Client
	prev string
}

// StartTrace opens a trace scope with a fresh random identifier and installs
// it as the client's current trace context. The caller must End the scope;
// scopes nest, and End restores whatever context was current at Start:
//
//	scope := gw.StartTrace("nightly-sync")
//	defer scope.End()
func (c *Client) StartTrace(name string) *TraceScope {
	s := &TraceScope{
		TraceID: uuid.NewString(),
		Name:    name,
		c:       c,
		prev:    c.traceID,
	}
	c.traceID = s.TraceID
	return s
}

// End closes the scope, restoring the trace context that was current when
// the scope was started (possibly none).
func (s *TraceScope) End() {
	s.c.traceID = s.prev
}

// WithTrace runs fn inside a trace scope. The previous trace context is
// restored on every exit path, including when fn fails or panics, so nested
// scopes can't clobber an outer scope's identifier.
func (c *Client) WithTrace(name string, fn func(TraceScope) error) error {
	s := c.StartTrace(name)
	defer s.End()
	return fn(*s)
}

// CurrentTraceID returns the active trace identifier, or "" when no scope is
// open.
func (c *Client) CurrentTraceID() string { return c.traceID }
