package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samvad-hq/neutrino-client/internal/logger"
	"github.com/samvad-hq/neutrino-client/pkg/jobs"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 4

// Service coordinates lookup passes across the configured jobs.
type Service struct {
	processor      *JobProcessor
	log            logger.Logger
	maxConcurrency int
}

// Option customizes a Service.
type Option func(*Service)

// WithMaxConcurrency bounds how many jobs run at once.
func WithMaxConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

// NewService wires a monitor with runners, publishers and change tracking.
func NewService(runners RunnerResolver, pub EventPublisher, tracker ChangeTracker, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	s := &Service{
		processor:      NewJobProcessor(runners, pub, tracker, log),
		log:            log,
		maxConcurrency: defaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a lookup pass for all given jobs.
func (s *Service) Run(ctx context.Context, list []jobs.Job) error {
	if s == nil || s.processor == nil {
		return fmt.Errorf("monitor service is not initialized")
	}
	if len(list) == 0 {
		return fmt.Errorf("no jobs configured for monitoring")
	}

	errs := s.runAll(ctx, list)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// runAll skips jobs not yet started once ctx is done.
func (s *Service) runAll(ctx context.Context, list []jobs.Job) []error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(s.maxConcurrency)

	for _, job := range list {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := s.processor.Process(ctx, job); err != nil {
				s.log.ErrorObj("job failed", "job_failure", map[string]any{
					"job_id": job.ID,
					"error":  err.Error(),
				})
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs
}
