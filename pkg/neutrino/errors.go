package neutrino

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidBaseAddress is wrapped by New when the base address has no usable scheme or authority.
	ErrInvalidBaseAddress = errors.New("neutrino: invalid base address")
	// ErrMalformedRequest is wrapped when a request URI cannot be composed.
	ErrMalformedRequest = errors.New("neutrino: malformed request")
)

// TransportError reports a failure before any status code was received:
// connection, TLS, insecure scheme refusal, timeout or cancellation.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("neutrino: transport: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is a non-200 answer from the service. Body is kept verbatim;
// the service sends plain diagnostic text, not a fixed error schema.
type RemoteError struct {
	StatusCode int
	Body       []byte
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("neutrino: remote failure: status %d: %s", e.StatusCode, bodySnippet(e.Body))
}

// Text returns the raw response body as a string.
func (e *RemoteError) Text() string { return string(e.Body) }

// Snippet returns at most max bytes of the trimmed body, cut on a rune boundary.
func (e *RemoteError) Snippet(max int) string {
	return truncateText(strings.TrimSpace(string(e.Body)), max)
}

// DecodeError is a 200 answer whose body does not fit the expected response shape.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("neutrino: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if cut := truncateText(s, maxLen); len(cut) < len(s) {
		return cut + "..."
	}
	return s
}

// truncateText keeps at most max bytes of s without splitting a multi-byte rune.
func truncateText(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
