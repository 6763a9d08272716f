// Package neutrino is a typed client for the neutrinoapi.com lookup endpoints.
package neutrino

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/neutrino-client/pkg/httpclient"
	"golang.org/x/net/http/httpguts"
)

const (
	// DefaultBaseAddress is the public service endpoint.
	DefaultBaseAddress = "https://neutrinoapi.net"
	// DefaultTimeout bounds one round trip when no transport is injected.
	DefaultTimeout = 30 * time.Second
)

// Client sends authenticated lookups to one service base address.
// It is read-only after New and safe for concurrent use.
type Client struct {
	scheme    string
	authority string
	creds     Credentials
	http      httpclient.Client
}

type options struct {
	httpClient httpclient.Client
	timeout    time.Duration
}

// Option customizes a Client.
type Option func(*options)

// WithHTTPClient injects the transport used for every call.
// The HTTPS-only policy for https base addresses is then up to the injected transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithTimeout sets the transport timeout of the default resty transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// New validates baseAddress and builds a Client. Only the scheme and authority
// of baseAddress are kept. No network I/O happens here.
func New(baseAddress string, creds Credentials, opts ...Option) (*Client, error) {
	scheme, authority, err := parseBaseAddress(baseAddress)
	if err != nil {
		return nil, err
	}

	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	transport := o.httpClient
	if transport == nil {
		transport = httpclient.NewRestyClientWithOptions(httpclient.Options{
			Timeout:   o.timeout,
			HTTPSOnly: scheme == "https",
		})
	}

	return &Client{
		scheme:    scheme,
		authority: authority,
		creds:     creds,
		http:      transport,
	}, nil
}

// Scheme returns the scheme of the base address.
func (c *Client) Scheme() string { return c.scheme }

// Authority returns the host[:port] of the base address.
func (c *Client) Authority() string { return c.authority }

func parseBaseAddress(raw string) (string, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", fmt.Errorf("%w: empty", ErrInvalidBaseAddress)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrInvalidBaseAddress, raw, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", "", fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidBaseAddress, raw)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: %q: missing authority", ErrInvalidBaseAddress, raw)
	}
	return scheme, u.Host, nil
}

// request is one composed call: full URL plus the authentication headers.
type request struct {
	url    string
	header map[string]string
}

// compose resolves pathAndQuery against the base address and attaches the credentials.
func (c *Client) compose(pathAndQuery string) (request, error) {
	if c == nil || c.scheme == "" || c.authority == "" {
		return request{}, fmt.Errorf("%w: client has no base address", ErrMalformedRequest)
	}
	if !strings.HasPrefix(pathAndQuery, "/") {
		return request{}, fmt.Errorf("%w: path %q must start with /", ErrMalformedRequest, pathAndQuery)
	}
	ref, err := url.Parse(pathAndQuery)
	if err != nil {
		return request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if ref.Scheme != "" || ref.Host != "" {
		return request{}, fmt.Errorf("%w: %q is not a path and query", ErrMalformedRequest, pathAndQuery)
	}

	header := c.creds.headers()
	for name, value := range header {
		if !httpguts.ValidHeaderFieldValue(value) {
			return request{}, fmt.Errorf("%w: invalid %s header value", ErrMalformedRequest, name)
		}
	}

	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.authority,
		Path:     ref.Path,
		RawPath:  ref.RawPath,
		RawQuery: ref.RawQuery,
	}
	return request{url: u.String(), header: header}, nil
}
