package neutrino

import (
	"context"
	"fmt"
	"net/url"
)

// Endpoint is one feature of the service: a path and its already-built query.
type Endpoint struct {
	Path  string
	Query url.Values
}

// PathAndQuery renders the endpoint as an escaped request target.
func (e Endpoint) PathAndQuery() string {
	if len(e.Query) == 0 {
		return e.Path
	}
	return e.Path + "?" + e.Query.Encode()
}

// Lookup runs one GET round trip against e and decodes a 200 body into T.
//
// Errors are *TransportError, *RemoteError, *DecodeError, or wrap
// ErrMalformedRequest. Nothing is retried.
func Lookup[T any](ctx context.Context, c *Client, e Endpoint) (*T, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil client", ErrMalformedRequest)
	}
	req, err := c.compose(e.PathAndQuery())
	if err != nil {
		return nil, err
	}
	out, err := c.dispatch(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := out.err(); err != nil {
		return nil, err
	}
	return decode[T](out.body)
}

// snakeCase returns the query every endpoint starts from.
func snakeCase() url.Values {
	return url.Values{"output-case": {"snake"}}
}
