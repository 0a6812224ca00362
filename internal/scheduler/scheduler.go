// Package scheduler wraps robfig/cron/v3 around the probe framework,
// turning a parsed TopConfig into a running set of cron jobs (spec
// §4.11) plus the fixed DB Cleanup job (spec §4.12).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/config"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/probe"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
)

// cleanupSchedule fires every five minutes, matching original_source's
// dbcleanupjob.rs fixed interval.
const cleanupSchedule = "0 */5 * * * *"

// Scheduler owns the cron runtime and the set of probes it drives.
type Scheduler struct {
	cron     *cron.Cron
	registry *status.Registry
	gateway  persistence.Gateway
	probes   []probe.Probe
}

// New builds a Scheduler, constructing every configured monitor's Probe
// and registering it as a cron job, plus the DB Cleanup job. Building and
// validating jobs always happens, independent of whether the scheduler is
// ever started — mirroring original_source's SchedulingService::start,
// which validates every job before deciding whether to actually run.
func New(cfg *config.TopConfig, registry *status.Registry, gateway persistence.Gateway) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		registry: registry,
		gateway:  gateway,
	}

	for _, m := range cfg.Monitors {
		p, err := buildProbe(m, registry, gateway)
		if err != nil {
			return nil, fmt.Errorf("failed to build monitor %s: %w", m.Name, err)
		}
		if _, err := s.cron.AddFunc(m.Schedule, s.runner(p)); err != nil {
			return nil, fmt.Errorf("monitor %s: invalid schedule %q: %w", m.Name, m.Schedule, err)
		}
		s.probes = append(s.probes, p)
	}

	horizon := time.Duration(cfg.RetentionHours) * time.Hour
	if horizon > 0 {
		if _, err := s.cron.AddFunc(cleanupSchedule, s.cleanupRunner(horizon)); err != nil {
			return nil, fmt.Errorf("failed to schedule DB cleanup: %w", err)
		}
	}

	return s, nil
}

// runner closes over p (clone-on-capture, per the probe framework's
// contract that each job owns its own Probe instance) and runs one Check
// per tick with a bounded context.
func (s *Scheduler) runner(p probe.Probe) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := p.Check(ctx); err != nil {
			logrus.WithError(err).WithField("monitor", p.Name()).Debug("monitor check reported a non-Ok status")
		}
	}
}

func (s *Scheduler) cleanupRunner(horizon time.Duration) func() {
	return func() {
		if err := s.gateway.DeleteOlderThan(horizon); err != nil {
			logrus.WithError(err).Error("DB cleanup job failed")
		}
	}
}

// Start, in testMode, returns immediately after New's construction and
// validation pass without running a single check, matching the `-t` CLI
// flag's "construct and validate everything, then exit" contract: no check
// runs, so no probe touches the network or spawns a command. (A Database
// probe with its own database config has already opened that connection
// during New.) Otherwise it runs every probe's check once immediately (so
// the registry and API have values before the first tick; the DB Cleanup job
// waits for its schedule), then starts the cron scheduler and blocks until
// ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context, testMode bool) {
	if testMode {
		return
	}

	for _, p := range s.probes {
		s.runner(p)()
	}

	s.cron.Start()
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}

// Probes exposes the constructed probes, e.g. for the HTTP API layer to
// read current statuses without re-running checks.
func (s *Scheduler) Probes() []probe.Probe {
	return s.probes
}
