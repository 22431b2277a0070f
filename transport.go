package gatewayops

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Doer executes a single HTTP round trip. *http.Client satisfies it; tests
// and callers with custom pooling or instrumentation can substitute their
// own implementation.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// newHTTPClient builds the default transport: Go's defaults plus a header
// timeout so requests that never respond don't hang indefinitely, and a
// keep-alive dialer with a bounded connect timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	var transport *http.Transport
	if dt, ok := http.DefaultTransport.(*http.Transport); ok {
		transport = dt.Clone()
	} else {
		transport = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
	}
	transport.ResponseHeaderTimeout = timeout
	if transport.TLSHandshakeTimeout == 0 {
		transport.TLSHandshakeTimeout = timeout
	}
	if transport.DialContext == nil {
		transport.DialContext = (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// transportError maps a transport-level failure to the SDK taxonomy: a
// deadline expiry becomes *TimeoutError, everything else *NetworkError. The
// transport's native error stays reachable through errors.Unwrap.
func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Message: "request timed out: " + err.Error(), Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{Message: "request timed out: " + err.Error(), Err: err}
	}
	return &NetworkError{Message: "network error: " + err.Error(), Err: err}
}
