package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/neutrino-client/pkg/httpclient"
)

// Lookup metadata headers sent with every webhook delivery.
const (
	HeaderEventID    = "X-Neutrino-Event-Id"
	HeaderJobID      = "X-Neutrino-Job-Id"
	HeaderLookupKind = "X-Neutrino-Lookup-Kind"

	responseSnippetBytes = 512
)

// httpPublisher delivers events as JSON to a webhook.
type httpPublisher struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	return &httpPublisher{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyHTTPClient(timeout),
		log:     ensureLogger(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

// Publish sends the event; the lookup metadata headers override configured ones.
func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeaders(h.headers).
		SetHeader("Content-Type", "application/json").
		SetHeaders(eventHeaders(evt)).
		SetBody(evt)

	resp, err := req.Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("deliver event %s to %s: %w", evt.EventID, h.url, err)
	}
	if resp.IsError() {
		h.log.WarnObj("http publisher rejected event", "publisher_http_error", map[string]any{
			"publisher_id": h.id,
			"job_id":       evt.JobID,
			"event_id":     evt.EventID,
			"status":       resp.StatusCode(),
		})
		return fmt.Errorf("webhook answered %d: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	h.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": h.id,
		"job_id":       evt.JobID,
		"status":       resp.StatusCode(),
	})
	return nil
}

func eventHeaders(evt Event) map[string]string {
	out := make(map[string]string, 3)
	for name, v := range map[string]string{
		HeaderEventID:    evt.EventID,
		HeaderJobID:      evt.JobID,
		HeaderLookupKind: evt.Kind,
	} {
		if v != "" {
			out[name] = v
		}
	}
	return out
}

// responseSnippet trims body to a bounded prefix without splitting a rune.
func responseSnippet(body []byte) string {
	if len(body) > responseSnippetBytes {
		cut := responseSnippetBytes
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return strings.TrimSpace(string(body))
}
