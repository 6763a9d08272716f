package monitor

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/neutrino-client/internal/domain"
	"github.com/samvad-hq/neutrino-client/internal/logger"
	"github.com/samvad-hq/neutrino-client/pkg/jobs"
	"github.com/samvad-hq/neutrino-client/pkg/neutrino"
	"github.com/samvad-hq/neutrino-client/pkg/publishers"
)

const remoteBodySnippet = 256

// JobProcessor runs a single job and publishes its result when it changed.
type JobProcessor struct {
	runners   RunnerResolver
	publisher EventPublisher
	tracker   ChangeTracker
	log       logger.Logger
	now       func() time.Time
}

// NewJobProcessor wires a processor. A nil tracker publishes every result.
func NewJobProcessor(runners RunnerResolver, pub EventPublisher, tracker ChangeTracker, log logger.Logger) *JobProcessor {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &JobProcessor{
		runners:   runners,
		publisher: pub,
		tracker:   tracker,
		log:       log,
		now:       time.Now,
	}
}

// Process executes the job and publishes a changed result.
func (p *JobProcessor) Process(ctx context.Context, job jobs.Job) error {
	if p.runners == nil {
		return fmt.Errorf("job %s: runner registry is nil", job.ID)
	}

	runner, err := p.runners.RunnerFor(job)
	if err != nil {
		return fmt.Errorf("resolve runner for job %s: %w", job.ID, err)
	}

	payload, err := runner.Run(ctx, job)
	if err != nil {
		p.logLookupFailure(job, err)
		return fmt.Errorf("run job %s: %w", job.ID, err)
	}

	digest, err := digestOf(payload)
	if err != nil {
		return fmt.Errorf("digest result of job %s: %w", job.ID, err)
	}

	if !p.changed(job, digest) {
		p.log.DebugObj("lookup result unchanged", "job_unchanged", map[string]any{
			"job_id": job.ID,
			"kind":   job.Kind,
		})
		return nil
	}

	if p.publisher == nil {
		return nil
	}

	evt := publishers.NewEvent(domain.Result{
		JobID:       job.ID,
		Kind:        job.Kind,
		Target:      job.Target,
		Payload:     payload,
		CollectedAt: p.now(),
	})

	successes, pubErr := p.publisher.Publish(ctx, evt)
	if successes > 0 && p.tracker != nil {
		if err := p.tracker.Record(job.ID, digest); err != nil {
			p.log.WarnObj("record result digest failed", "job_record_error", map[string]any{
				"job_id": job.ID,
				"error":  err.Error(),
			})
		}
	}
	if pubErr != nil {
		return fmt.Errorf("publish job %s: %w", job.ID, pubErr)
	}

	p.log.InfoObj("lookup result published", "job_published", map[string]any{
		"job_id":     job.ID,
		"kind":       job.Kind,
		"publishers": successes,
	})
	return nil
}

// changed treats tracker failures as a change so results are not lost.
func (p *JobProcessor) changed(job jobs.Job, digest []byte) bool {
	if p.tracker == nil {
		return true
	}
	changed, err := p.tracker.Changed(job.ID, digest)
	if err != nil {
		p.log.WarnObj("change lookup failed", "job_change_error", map[string]any{
			"job_id": job.ID,
			"error":  err.Error(),
		})
		return true
	}
	return changed
}

func (p *JobProcessor) logLookupFailure(job jobs.Job, err error) {
	fields := map[string]any{
		"job_id": job.ID,
		"kind":   job.Kind,
		"error":  err.Error(),
	}

	var remote *neutrino.RemoteError
	if errors.As(err, &remote) {
		fields["status"] = remote.StatusCode
		fields["body"] = remote.Snippet(remoteBodySnippet)
	}

	p.log.ErrorObj("lookup failed", "job_error", fields)
}

// digestOf fingerprints the stable part of a lookup result.
func digestOf(payload any) ([]byte, error) {
	raw, err := json.Marshal(stableView(payload))
	if err != nil {
		return nil, err
	}
	sum := sha1.Sum(raw)
	return sum[:], nil
}

// stableView clears values the service derives from the wall clock, so that
// they alone never count as a change. payload itself is left untouched.
func stableView(payload any) any {
	info, ok := payload.(*neutrino.IPInfoResponse)
	if !ok || info == nil || info.Timezone == nil {
		return payload
	}
	cp := *info
	tz := *info.Timezone
	tz.Date, tz.Time = "", ""
	cp.Timezone = &tz
	return &cp
}
