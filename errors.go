package gatewayops

import (
	"encoding/json"
	"strconv"
)

// APIError is the base error for responses the gateway rejected. It doubles
// as the generic variant for status/code pairs without a dedicated type.
type APIError struct {
	Message    string
	Code       string
	StatusCode int
	Details    map[string]any
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return "[" + e.Code + "] " + e.Message
	}
	return e.Message
}

// AuthenticationError is returned for 401 responses.
type AuthenticationError struct {
	APIError
}

// RateLimitError is returned for 429 responses. RetryAfter is the suggested
// wait in seconds, 0 when the gateway didn't provide one.
type RateLimitError struct {
	APIError
	RetryAfter int
}

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	APIError
}

// ValidationError is returned for 400 responses that are not injection
// detections. Field names the offending request field when known.
type ValidationError struct {
	APIError
	Field string
}

// InjectionDetectedError is returned when the gateway's safety layer blocks
// a request as a potential prompt injection.
type InjectionDetectedError struct {
	APIError
	Pattern  string
	Severity string
}

// ToolAccessDeniedError is returned when policy denies a tool invocation.
// RequiresApproval indicates the call can proceed through the approval flow.
type ToolAccessDeniedError struct {
	APIError
	MCPServer        string
	ToolName         string
	RequiresApproval bool
}

// ServerError is returned for 5xx responses.
type ServerError struct {
	APIError
}

// NetworkError is returned when the transport fails before a response is
// received. It carries no HTTP status.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string { return "[network_error] " + e.Message }

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError is returned when the transport failure is specifically a
// deadline expiry.
type TimeoutError struct {
	Message string
	Err     error
}

func (e *TimeoutError) Error() string { return "[timeout] " + e.Message }

func (e *TimeoutError) Unwrap() error { return e.Err }

// classify maps a >= 400 response to a typed error. Selection is a pure
// function of the status code, the envelope error code, and the details
// mapping: status picks the bucket, and the code is only consulted inside
// it, so an unrecognized code still yields the bucket's variant. Missing
// envelope fields fall back to "unknown" / a generic message / empty
// details.
func classify(status int, body map[string]any) error {
	code, message, details := errorEnvelope(body)

	base := APIError{
		Message:    message,
		Code:       code,
		StatusCode: status,
		Details:    details,
	}

	switch {
	case status == 401:
		return &AuthenticationError{APIError: base}
	case status == 403:
		if code == "tool_access_denied" {
			return &ToolAccessDeniedError{
				APIError:         base,
				MCPServer:        stringDetail(details, "mcp_server"),
				ToolName:         stringDetail(details, "tool_name"),
				RequiresApproval: boolDetail(details, "requires_approval"),
			}
		}
		return &base
	case status == 404:
		return &NotFoundError{APIError: base}
	case status == 429:
		return &RateLimitError{
			APIError:   base,
			RetryAfter: intDetail(details, "Retry-After"),
		}
	case status == 400:
		if code == "injection_detected" {
			return &InjectionDetectedError{
				APIError: base,
				Pattern:  stringDetail(details, "pattern"),
				Severity: stringDetail(details, "severity"),
			}
		}
		return &ValidationError{
			APIError: base,
			Field:    stringDetail(details, "field"),
		}
	case status >= 500:
		return &ServerError{APIError: base}
	default:
		return &base
	}
}

// errorEnvelope extracts the {error: {code, message, details}} envelope with
// safe fallbacks for every missing piece.
func errorEnvelope(body map[string]any) (code, message string, details map[string]any) {
	code = "unknown"
	message = "Unknown error"
	details = map[string]any{}

	inner, ok := body["error"].(map[string]any)
	if !ok {
		return code, message, details
	}
	if c, ok := inner["code"].(string); ok && c != "" {
		code = c
	}
	if m, ok := inner["message"].(string); ok && m != "" {
		message = m
	}
	if d, ok := inner["details"].(map[string]any); ok {
		details = d
	}
	return code, message, details
}

func stringDetail(details map[string]any, key string) string {
	s, _ := details[key].(string)
	return s
}

func boolDetail(details map[string]any, key string) bool {
	b, _ := details[key].(bool)
	return b
}

// intDetail parses an integer detail that may arrive as a JSON number or a
// string (the gateway forwards Retry-After header values verbatim). An
// unparsable value is treated as absent.
func intDetail(details map[string]any, key string) int {
	switch v := details[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}
