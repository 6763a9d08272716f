package jobs

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"sync"

	"github.com/samvad-hq/neutrino-client/internal/domain"
	"github.com/samvad-hq/neutrino-client/pkg/neutrino"
)

// Lookups is the subset of *neutrino.Client the runners call.
type Lookups interface {
	PhoneValidate(ctx context.Context, number string) (*neutrino.PhoneValidateResponse, error)
	HLRLookup(ctx context.Context, number string) (*neutrino.HLRLookupResponse, error)
	IPInfo(ctx context.Context, addr netip.Addr) (*neutrino.IPInfoResponse, error)
	IPBlocklist(ctx context.Context, addr netip.Addr) (*neutrino.IPBlocklistResponse, error)
	IPProbe(ctx context.Context, addr netip.Addr) (*neutrino.IPProbeResponse, error)
}

// Runner executes a single job and returns its typed result.
type Runner interface {
	Kind() string
	Run(ctx context.Context, job Job) (any, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc struct {
	K  string
	Fn func(ctx context.Context, job Job) (any, error)
}

func (r RunnerFunc) Kind() string { return r.K }

func (r RunnerFunc) Run(ctx context.Context, job Job) (any, error) { return r.Fn(ctx, job) }

// RunnerRegistry resolves the runner for a job by its kind.
type RunnerRegistry struct {
	mu     sync.RWMutex
	byKind map[string]Runner
}

// NewRunnerRegistry builds a registry keyed by runner kind.
func NewRunnerRegistry(runners ...Runner) *RunnerRegistry {
	reg := &RunnerRegistry{byKind: make(map[string]Runner, len(runners))}
	for _, r := range runners {
		reg.Register(r)
	}
	return reg
}

// Register adds or replaces the runner for its kind.
func (r *RunnerRegistry) Register(runner Runner) {
	if runner == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(runner.Kind()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.byKind[key] = runner
	r.mu.Unlock()
}

// RunnerFor selects the runner for the given job.
func (r *RunnerRegistry) RunnerFor(job Job) (Runner, error) {
	if r == nil {
		return nil, fmt.Errorf("runner registry is nil")
	}
	if strings.TrimSpace(job.ID) == "" {
		return nil, fmt.Errorf("job id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if runner, ok := r.byKind[strings.ToLower(strings.TrimSpace(job.Kind))]; ok {
		return runner, nil
	}
	return nil, fmt.Errorf("no runner registered for job %q (kind %q)", job.ID, job.Kind)
}

// DefaultRunnerRegistry wires one runner per lookup kind to the client.
func DefaultRunnerRegistry(client Lookups) *RunnerRegistry {
	return NewRunnerRegistry(
		phoneRunner(domain.KindPhoneValidate, func(ctx context.Context, n string) (any, error) {
			return client.PhoneValidate(ctx, n)
		}),
		phoneRunner(domain.KindHLRLookup, func(ctx context.Context, n string) (any, error) {
			return client.HLRLookup(ctx, n)
		}),
		ipRunner(domain.KindIPInfo, func(ctx context.Context, a netip.Addr) (any, error) {
			return client.IPInfo(ctx, a)
		}),
		ipRunner(domain.KindIPBlocklist, func(ctx context.Context, a netip.Addr) (any, error) {
			return client.IPBlocklist(ctx, a)
		}),
		ipRunner(domain.KindIPProbe, func(ctx context.Context, a netip.Addr) (any, error) {
			return client.IPProbe(ctx, a)
		}),
	)
}

func phoneRunner(kind string, call func(context.Context, string) (any, error)) Runner {
	return RunnerFunc{K: kind, Fn: func(ctx context.Context, job Job) (any, error) {
		return call(ctx, job.Target)
	}}
}

func ipRunner(kind string, call func(context.Context, netip.Addr) (any, error)) Runner {
	return RunnerFunc{K: kind, Fn: func(ctx context.Context, job Job) (any, error) {
		addr, err := netip.ParseAddr(job.Target)
		if err != nil {
			return nil, fmt.Errorf("parse target of job %q: %w", job.ID, err)
		}
		return call(ctx, addr)
	}}
}
