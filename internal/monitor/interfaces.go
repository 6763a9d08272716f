package monitor

import (
	"context"

	"github.com/samvad-hq/neutrino-client/pkg/jobs"
	"github.com/samvad-hq/neutrino-client/pkg/publishers"
)

// RunnerResolver picks the runner for a job.
type RunnerResolver interface {
	RunnerFor(job jobs.Job) (jobs.Runner, error)
}

// EventPublisher publishes lookup results downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// ChangeTracker remembers the digest of the last published result per job.
type ChangeTracker interface {
	Changed(jobID string, digest []byte) (bool, error)
	Record(jobID string, digest []byte) error
}
