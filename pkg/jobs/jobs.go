package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/samvad-hq/neutrino-client/internal/domain"
	"gopkg.in/yaml.v3"
)

// Package jobs contains the watched lookups file (YAML/JSON) helpers and the
// runners that execute them against the neutrino client.

// Job is one lookup the monitor repeats on every pass.
type Job struct {
	ID      string `json:"id" yaml:"id"`
	Kind    string `json:"kind" yaml:"kind"`
	Target  string `json:"target" yaml:"target"`
	Enabled *bool  `json:"enabled" yaml:"enabled"`
}

type jobsFile struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// Registry holds the jobs loaded from a file.
type Registry struct {
	mu   sync.RWMutex
	jobs []Job
	idx  map[string]Job
}

// LoadRegistry loads jobs from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("jobs file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jobs file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}

	parsed, err := parseJobsFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Jobs)
}

// NewRegistry sanitizes and validates jobs and indexes them by id.
func NewRegistry(jobs []Job) (*Registry, error) {
	if len(jobs) == 0 {
		return nil, errors.New("jobs file contains no jobs entries")
	}

	reg := &Registry{
		jobs: make([]Job, len(jobs)),
		idx:  make(map[string]Job, len(jobs)),
	}
	for i := range jobs {
		j := sanitizeJob(jobs[i])
		if err := validateJob(j); err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if _, exists := reg.idx[j.ID]; exists {
			return nil, fmt.Errorf("duplicate job id %q", j.ID)
		}
		reg.jobs[i] = j
		reg.idx[j.ID] = j
	}
	return reg, nil
}

func parseJobsFile(data []byte, ext string) (jobsFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if f, err := unmarshalJobsFile(d.name, data, d.fn); err == nil {
			return f, nil
		}
	}

	return jobsFile{}, errors.New("jobs file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalJobsFile(name string, data []byte, fn unmarshalFn) (jobsFile, error) {
	var f jobsFile
	if err := fn(data, &f); err != nil {
		return jobsFile{}, fmt.Errorf("decode %s jobs: %w", name, err)
	}
	return f, nil
}

func sanitizeJob(j Job) Job {
	j.ID = strings.TrimSpace(j.ID)
	j.Kind = strings.ToLower(strings.TrimSpace(j.Kind))
	j.Target = strings.TrimSpace(j.Target)
	if j.Enabled == nil {
		def := true
		j.Enabled = &def
	}
	return j
}

func validateJob(j Job) error {
	if j.ID == "" {
		return errors.New("id is required")
	}
	if j.Kind == "" {
		return fmt.Errorf("kind is required for job %q", j.ID)
	}
	if !slices.Contains(domain.Kinds(), j.Kind) {
		return fmt.Errorf("job %q: unsupported kind %q (known: %s)", j.ID, j.Kind, strings.Join(domain.Kinds(), ", "))
	}
	if j.Target == "" {
		return fmt.Errorf("target is required for job %q", j.ID)
	}
	switch j.Kind {
	case domain.KindIPInfo, domain.KindIPBlocklist, domain.KindIPProbe:
		if _, err := netip.ParseAddr(j.Target); err != nil {
			return fmt.Errorf("job %q: target is not an IP address: %w", j.ID, err)
		}
	}
	return nil
}

// ByID returns the job with the given id.
func (r *Registry) ByID(id string) (Job, bool) {
	if r == nil {
		return Job{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Job{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.idx[id]
	return j, ok
}

// All returns every configured job.
func (r *Registry) All() []Job {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Enabled returns jobs that are enabled.
func (r *Registry) Enabled() []Job {
	all := r.All()
	out := make([]Job, 0, len(all))
	for _, j := range all {
		if j.EnabledValue() {
			out = append(out, j)
		}
	}
	return out
}

// EnabledValue returns enabled flag defaulting to true.
func (j Job) EnabledValue() bool {
	if j.Enabled == nil {
		return true
	}
	return *j.Enabled
}
