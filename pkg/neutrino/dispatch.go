package neutrino

import (
	"context"
	"errors"
	"net/http"
)

// outcome is the classified answer of one round trip.
type outcome struct {
	status int
	body   []byte
}

func (o outcome) success() bool { return o.status == http.StatusOK }

func (o outcome) err() error {
	if o.success() {
		return nil
	}
	return &RemoteError{StatusCode: o.status, Body: o.body}
}

var errNoResponse = errors.New("transport returned no response")

// dispatch sends req as a GET and reads the whole body. Only transport
// failures are returned as errors; every status code yields an outcome.
func (c *Client) dispatch(ctx context.Context, req request) (outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := c.http.Get(ctx, req.url, req.header)
	if err != nil {
		return outcome{}, &TransportError{URL: req.url, Err: err}
	}
	if resp == nil {
		return outcome{}, &TransportError{URL: req.url, Err: errNoResponse}
	}
	return outcome{status: resp.StatusCode(), body: resp.Body()}, nil
}
