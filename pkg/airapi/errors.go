package airapi

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a 2xx response whose body does not match the
// documented contract. Distinct from "zero offers found".
var ErrMalformedResponse = errors.New("air api: malformed response")

// ErrQueryTooShort is returned by SearchAirports for queries under two characters.
var ErrQueryTooShort = errors.New("air api: airport query must be at least 2 characters")

// TransportError wraps a network-level failure (dial, timeout, reset). The
// request may or may not have reached the upstream.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("air api: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx response. The structured body is parsed when
// possible; Raw always preserves the original bytes for support diagnostics.
type UpstreamError struct {
	StatusCode      int
	Code            string
	Title           string
	Message         string
	Raw             string
	PaymentIntentID string
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("air api: upstream %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("air api: upstream %d: %s", e.StatusCode, e.Raw)
}
