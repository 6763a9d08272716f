package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Header names are sent exactly as given.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
