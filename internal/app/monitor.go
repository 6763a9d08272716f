package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/neutrino-client/internal/config"
	"github.com/samvad-hq/neutrino-client/internal/logger"
	"github.com/samvad-hq/neutrino-client/internal/monitor"
	"github.com/samvad-hq/neutrino-client/internal/storage"
	"github.com/samvad-hq/neutrino-client/pkg/jobs"
	"github.com/samvad-hq/neutrino-client/pkg/neutrino"
	"github.com/samvad-hq/neutrino-client/pkg/publishers"
)

// Monitor represents the lookup monitor runtime. It owns the lookup loop and
// the lifetime of the publishers and the change store.
type Monitor struct {
	cfg            *config.Config
	jobReg         *jobs.Registry
	fanout         *publishers.Fanout
	service        *monitor.Service
	lookupInterval time.Duration
	log            logger.Logger
	store          storage.Store
}

// NewMonitor builds a monitor runtime from config files.
func NewMonitor(ctx context.Context, cfg *config.Config, log logger.Logger) (*Monitor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	creds := neutrino.NewCredentials(cfg.UserID, cfg.APIKey)
	client, err := neutrino.New(cfg.BaseURL, creds, neutrino.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("build neutrino client: %w", err)
	}
	log.InfoObj("neutrino client ready", "neutrino_client", map[string]any{
		"scheme":      client.Scheme(),
		"authority":   client.Authority(),
		"credentials": creds.String(),
	})

	jobReg, err := jobs.LoadRegistry(cfg.JobsFile)
	if err != nil {
		return nil, fmt.Errorf("load jobs registry: %w", err)
	}
	jobList := jobReg.All()
	jobIDs := make([]string, 0, len(jobList))
	for _, j := range jobList {
		jobIDs = append(jobIDs, j.ID)
	}
	log.InfoObj("jobs registry loaded", "jobs_meta", map[string]any{
		"count": len(jobIDs),
		"ids":   jobIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		ResultTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"result_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	service := monitor.NewService(
		jobs.DefaultRunnerRegistry(client),
		fanout,
		store,
		log,
		monitor.WithMaxConcurrency(cfg.MaxConcurrency),
	)

	return &Monitor{
		cfg:            cfg,
		jobReg:         jobReg,
		fanout:         fanout,
		service:        service,
		lookupInterval: cfg.LookupInterval,
		log:            log,
		store:          store,
	}, nil
}

// Run starts the lookup loop until the context is cancelled, or performs a
// single pass when run_once is set.
func (m *Monitor) Run(ctx context.Context) error {
	if m == nil || m.service == nil {
		return fmt.Errorf("monitor is not initialized")
	}
	defer m.close()

	enabled := m.jobReg.Enabled()
	if len(enabled) == 0 {
		m.log.WarnObj("no enabled jobs; monitor idle", "jobs_file", m.cfg.JobsFile)
		if m.cfg.RunOnce {
			return nil
		}
		<-ctx.Done()
		return nil
	}

	m.log.InfoObj("monitor loop starting", "monitor_state", map[string]any{
		"jobs_count":       len(enabled),
		"publishers_count": m.fanout.Size(),
		"lookup_interval":  m.lookupInterval.String(),
		"run_once":         m.cfg.RunOnce,
	})

	if err := m.runOnce(ctx, enabled); err != nil {
		if m.cfg.RunOnce {
			return fmt.Errorf("lookup pass: %w", err)
		}
		m.log.ErrorObj("initial lookup pass failed", "error", err)
	}
	if m.cfg.RunOnce {
		return nil
	}

	ticker := time.NewTicker(m.lookupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.InfoObj("monitor loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := m.runOnce(ctx, enabled); err != nil {
				m.log.ErrorObj("scheduled lookup pass failed", "error", err)
			}
		}
	}
}

// runOnce performs a single lookup pass across the given jobs.
func (m *Monitor) runOnce(ctx context.Context, list []jobs.Job) error {
	start := time.Now()
	m.log.InfoObj("lookup pass started", "pass_meta", map[string]any{
		"jobs_count": len(list),
		"started_at": start.UTC(),
	})
	if err := m.service.Run(ctx, list); err != nil {
		return err
	}
	m.log.InfoObj("lookup pass completed", "pass_meta", map[string]any{
		"jobs_count": len(list),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases publishers and the storage backend, logging any errors encountered.
func (m *Monitor) close() {
	if err := m.fanout.Close(); err != nil {
		m.log.ErrorObj("publishers close failed", "error", err)
	}
	if m.store == nil {
		return
	}
	if err := m.store.Close(); err != nil {
		m.log.ErrorObj("storage close failed", "error", err)
	}
}
