package qtickets

import "fmt"

// ProviderError is a non-2xx HTTP response from Qtickets or the proxy in
// front of it. Transport-level failures are plain wrapped errors instead.
type ProviderError struct {
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("qtickets responded with status %d", e.StatusCode)
}

// ParseError is a body that was not the JSON we asked for. Preview carries
// the first bytes of the offending payload for logs.
type ParseError struct {
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding qtickets response: %v (body starts %q)", e.Err, e.Preview)
}

func (e *ParseError) Unwrap() error { return e.Err }
