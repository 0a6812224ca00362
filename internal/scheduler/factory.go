package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/config"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/probe"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
)

// buildProbe dispatches a MonitorConfig to its per-variant factory
// (spec §4.11): registers the Unknown registry entry and constructs the
// concrete Probe.
func buildProbe(m config.MonitorConfig, registry *status.Registry, defaultGateway persistence.Gateway) (probe.Probe, error) {
	kind, err := m.DetailsType()
	if err != nil {
		return nil, err
	}

	switch kind {
	case config.DetailsTCP:
		var d config.TCPDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewTCPProbe(m.Name, m.Description, d.Host, d.Port, registry, defaultGateway, m.Store), nil

	case config.DetailsHTTP:
		var d config.HTTPDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewHTTPProbe(m.Name, m.Description, d, registry, defaultGateway, m.Store)

	case config.DetailsCommand:
		var d config.CommandDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewCommandProbe(m.Name, m.Description, d.Command, d.Args, d.Expected, registry, defaultGateway, m.Store), nil

	case config.DetailsLoadAvg:
		var d config.LoadAvgDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewLoadAvgProbe(m.Name, m.Description, d.Threshold1Min, d.Threshold5Min, d.Threshold15Min,
			d.Threshold1MinLevel, d.Threshold5MinLevel, d.Threshold15MinLevel, d.StoreValues,
			registry, defaultGateway, m.Store), nil

	case config.DetailsMem:
		var d config.MemDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewMemProbe(m.Name, m.Description, d.MaxPctMem, d.MaxPctSwap, d.StoreValues, registry, defaultGateway, m.Store), nil

	case config.DetailsSystemctl:
		var d config.SystemctlDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewSystemctlProbe(m.Name, m.Description, d.Active, registry, defaultGateway, m.Store), nil

	case config.DetailsProcess:
		var d config.ProcessDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewProcessProbe(m.Name, m.Description, d.ApplicationNames, d.Pids, d.RegexName, d.MaxRSS, d.StoreValues, registry, defaultGateway, m.Store)

	case config.DetailsCertificate:
		var d config.CertificateDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		return probe.NewCertificateProbe(m.Name, m.Description, d.Paths, d.ThresholdDaysWarn, d.ThresholdDaysError, registry, defaultGateway, m.Store), nil

	case config.DetailsDatabase:
		var d config.DatabaseDetails
		if err := json.Unmarshal(m.Details, &d); err != nil {
			return nil, fmt.Errorf("monitor %s: %w", m.Name, err)
		}
		target := defaultGateway
		if d.Database != nil {
			db, err := persistence.Open(d.Database)
			if err != nil {
				return nil, fmt.Errorf("monitor %s: failed to open per-probe database: %w", m.Name, err)
			}
			target = persistence.NewOptionalGateway(db)
		}
		return probe.NewDatabaseProbe(m.Name, m.Description, target, d.MaxQueryTimeSecs, registry, defaultGateway, m.Store), nil

	default:
		return nil, fmt.Errorf("monitor %s: unknown probe type %q", m.Name, kind)
	}
}
