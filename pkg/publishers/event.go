package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/neutrino-client/internal/domain"
)

// Event represents the payload published downstream.
type Event struct {
	EventID     string    `json:"event_id"`
	JobID       string    `json:"job_id"`
	Kind        string    `json:"kind"`
	Target      string    `json:"target"`
	Result      any       `json:"result"`
	CollectedAt time.Time `json:"collected_at"`
}

// NewEvent constructs an Event for a completed lookup.
func NewEvent(res domain.Result) Event {
	collected := res.CollectedAt
	if collected.IsZero() {
		collected = time.Now()
	}
	return Event{
		EventID:     uuid.NewString(),
		JobID:       res.JobID,
		Kind:        res.Kind,
		Target:      res.Target,
		Result:      res.Payload,
		CollectedAt: collected.UTC(),
	}
}

// attributes returns the non-empty message attributes attached by queue publishers.
func (e Event) attributes() map[string]string {
	attrs := make(map[string]string, 3)
	for k, v := range map[string]string{
		"event_id":    e.EventID,
		"job_id":      e.JobID,
		"lookup_kind": e.Kind,
	} {
		if v != "" {
			attrs[k] = v
		}
	}
	return attrs
}
