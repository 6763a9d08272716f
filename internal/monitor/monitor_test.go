package monitor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/samvad-hq/neutrino-client/internal/logger"
	"github.com/samvad-hq/neutrino-client/pkg/jobs"
	"github.com/samvad-hq/neutrino-client/pkg/neutrino"
	"github.com/samvad-hq/neutrino-client/pkg/publishers"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeRunners returns a preset result per job id.
type fakeRunners struct {
	mu      sync.Mutex
	results map[string]any
	errs    map[string]error
	calls   int
}

func (f *fakeRunners) RunnerFor(job jobs.Job) (jobs.Runner, error) {
	if job.Kind == "unknown" {
		return nil, errors.New("no runner")
	}
	return jobs.RunnerFunc{K: job.Kind, Fn: func(context.Context, jobs.Job) (any, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls++
		if err := f.errs[job.ID]; err != nil {
			return nil, err
		}
		return f.results[job.ID], nil
	}}, nil
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	mu      sync.Mutex
	events  []publishers.Event
	errOnID string
	partial bool
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if evt.JobID == f.errOnID {
		if f.partial {
			return 1, errors.New("one sink down")
		}
		return 0, errors.New("boom")
	}
	return 1, nil
}

// fakeTracker keeps digests in memory.
type fakeTracker struct {
	mu      sync.Mutex
	digests map[string]string
	failErr error
}

func (f *fakeTracker) Changed(id string, digest []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return false, f.failErr
	}
	return f.digests[id] != string(digest), nil
}

func (f *fakeTracker) Record(id string, digest []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.digests == nil {
		f.digests = make(map[string]string)
	}
	f.digests[id] = string(digest)
	return nil
}

func TestProcessorPublishesChangedResultsOnly(t *testing.T) {
	runners := &fakeRunners{results: map[string]any{"j1": map[string]any{"valid": true}}}
	pub := &fakePublisher{}
	tracker := &fakeTracker{}
	proc := NewJobProcessor(runners, pub, tracker, nil)
	job := jobs.Job{ID: "j1", Kind: "phone-validate", Target: "4420"}

	for i := 0; i < 2; i++ {
		if err := proc.Process(context.Background(), job); err != nil {
			t.Fatalf("Process #%d: %v", i, err)
		}
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	evt := pub.events[0]
	if evt.JobID != "j1" || evt.Kind != "phone-validate" || evt.Target != "4420" {
		t.Fatalf("unexpected event %+v", evt)
	}

	runners.results["j1"] = map[string]any{"valid": false}
	if err := proc.Process(context.Background(), job); err != nil {
		t.Fatalf("Process after change: %v", err)
	}
	if len(pub.events) != 2 {
		t.Fatalf("expected changed result to be published, got %d events", len(pub.events))
	}
}

func TestProcessorDoesNotRecordWhenNoPublisherSucceeded(t *testing.T) {
	runners := &fakeRunners{results: map[string]any{"bad": 1}}
	tracker := &fakeTracker{}
	proc := NewJobProcessor(runners, &fakePublisher{errOnID: "bad"}, tracker, nil)

	err := proc.Process(context.Background(), jobs.Job{ID: "bad", Kind: "ip-info"})
	if err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected error mentioning bad job, got %v", err)
	}
	if _, ok := tracker.digests["bad"]; ok {
		t.Fatalf("digest should not be recorded after total publish failure")
	}
}

func TestProcessorRecordsOnPartialSuccess(t *testing.T) {
	runners := &fakeRunners{results: map[string]any{"j": 1}}
	tracker := &fakeTracker{}
	proc := NewJobProcessor(runners, &fakePublisher{errOnID: "j", partial: true}, tracker, nil)

	if err := proc.Process(context.Background(), jobs.Job{ID: "j", Kind: "ip-info"}); err == nil {
		t.Fatalf("expected partial publish error")
	}
	if _, ok := tracker.digests["j"]; !ok {
		t.Fatalf("digest should be recorded when one publisher succeeded")
	}
}

func TestProcessorTreatsTrackerErrorsAsChanged(t *testing.T) {
	runners := &fakeRunners{results: map[string]any{"j": 1}}
	pub := &fakePublisher{}
	proc := NewJobProcessor(runners, pub, &fakeTracker{failErr: errors.New("db locked")}, nil)

	if err := proc.Process(context.Background(), jobs.Job{ID: "j", Kind: "ip-info"}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected publish despite tracker error, got %d", len(pub.events))
	}
}

func TestProcessorLogsRemoteFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	remote := &neutrino.RemoteError{StatusCode: 403, Body: []byte("invalid api-key")}
	runners := &fakeRunners{errs: map[string]error{"j": remote}}
	pub := &fakePublisher{}
	proc := NewJobProcessor(runners, pub, &fakeTracker{}, logger.New(zap.New(core)))

	err := proc.Process(context.Background(), jobs.Job{ID: "j", Kind: "hlr-lookup"})
	var got *neutrino.RemoteError
	if !errors.As(err, &got) || got.StatusCode != 403 {
		t.Fatalf("expected wrapped RemoteError, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("failed lookups must not be published")
	}

	entries := logs.FilterMessage("lookup failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one lookup failure log, got %d", len(entries))
	}
	fields, ok := entries[0].ContextMap()["job_error"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected log context %#v", entries[0].ContextMap())
	}
	if fields["status"] != 403 || fields["body"] != "invalid api-key" {
		t.Fatalf("unexpected logged fields %#v", fields)
	}
}

func TestServiceRunAggregatesErrors(t *testing.T) {
	runners := &fakeRunners{
		results: map[string]any{"ok": 1},
		errs:    map[string]error{"fail": errors.New("lookup down")},
	}
	pub := &fakePublisher{}
	svc := NewService(runners, pub, nil, nil, WithMaxConcurrency(2))

	err := svc.Run(context.Background(), []jobs.Job{
		{ID: "ok", Kind: "ip-info"},
		{ID: "fail", Kind: "ip-info"},
		{ID: "missing", Kind: "unknown"},
	})
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	for _, want := range []string{"lookup down", "missing"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %v", want, err)
		}
	}
	if len(pub.events) != 1 || pub.events[0].JobID != "ok" {
		t.Fatalf("expected only ok job published, got %+v", pub.events)
	}
}

func TestServiceRunAllCancelsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runners := &fakeRunners{}
	svc := NewService(runners, &fakePublisher{}, nil, nil)
	errs := svc.runAll(ctx, []jobs.Job{{ID: "p", Kind: "ip-info"}})
	if len(errs) != 0 {
		t.Fatalf("expected no errors on cancelled context, got %v", errs)
	}
	if runners.calls != 0 {
		t.Fatalf("expected no lookups after cancel, got %d", runners.calls)
	}
}

func TestServiceRunRejectsEmptyJobs(t *testing.T) {
	svc := NewService(&fakeRunners{}, nil, nil, nil)
	if err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error when jobs list empty")
	}
}

func TestDigestIgnoresLocalClockOfTimezone(t *testing.T) {
	first := &neutrino.IPInfoResponse{
		City: "Wellington",
		Timezone: &neutrino.Timezone{
			ID: "Pacific/Auckland", Name: "New Zealand Daylight Time", Abbr: "NZDT",
			Date: "2026-10-20", Time: "09:15:02.114", Offset: "+13:00",
		},
	}
	later := *first
	tz := *first.Timezone
	tz.Date, tz.Time = "2026-10-20", "10:15:07.930"
	later.Timezone = &tz

	a, err := digestOf(first)
	if err != nil {
		t.Fatalf("digestOf: %v", err)
	}
	b, err := digestOf(&later)
	if err != nil {
		t.Fatalf("digestOf: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("clock-only change should keep the digest")
	}
	if first.Timezone.Time != "09:15:02.114" {
		t.Fatalf("digest must not mutate the published payload")
	}

	moved := later
	moved.City = "Auckland"
	c, err := digestOf(&moved)
	if err != nil {
		t.Fatalf("digestOf: %v", err)
	}
	if string(a) == string(c) {
		t.Fatalf("city change should alter the digest")
	}

	offset := later
	tzOffset := tz
	tzOffset.Offset = "+12:00"
	offset.Timezone = &tzOffset
	d, err := digestOf(&offset)
	if err != nil {
		t.Fatalf("digestOf: %v", err)
	}
	if string(a) == string(d) {
		t.Fatalf("offset change should alter the digest")
	}
}

func TestProcessorSkipsIPInfoWhenOnlyClockMoved(t *testing.T) {
	result := &neutrino.IPInfoResponse{City: "Wellington", Timezone: &neutrino.Timezone{Date: "2026-10-20", Time: "09:00:00"}}
	runners := &fakeRunners{results: map[string]any{"geo": result}}
	pub := &fakePublisher{}
	proc := NewJobProcessor(runners, pub, &fakeTracker{}, nil)
	job := jobs.Job{ID: "geo", Kind: "ip-info", Target: "203.0.113.7"}

	if err := proc.Process(context.Background(), job); err != nil {
		t.Fatalf("Process: %v", err)
	}
	runners.results["geo"] = &neutrino.IPInfoResponse{City: "Wellington", Timezone: &neutrino.Timezone{Date: "2026-10-20", Time: "09:05:00"}}
	if err := proc.Process(context.Background(), job); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected one publication, got %d", len(pub.events))
	}
}
