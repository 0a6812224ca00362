package probe

import (
	"context"
	"fmt"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/procfs"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// LoadAvgProbe checks /proc/loadavg against up to three ceilings, each with
// its own threshold level, and aggregates by max severity (spec §4.5).
type LoadAvgProbe struct {
	base
	Max1Min, Max5Min, Max15Min       *float64
	Level1Min, Level5Min, Level15Min storelevel.ThresholdLevel
	StoreValues                      bool
}

func NewLoadAvgProbe(name, description string, max1, max5, max15 *float64, level1, level5, level15 storelevel.ThresholdLevel, storeValues bool, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) *LoadAvgProbe {
	return &LoadAvgProbe{
		base:        newBase(name, description, registry, persist, storeLevel),
		Max1Min:     max1,
		Max5Min:     max5,
		Max15Min:    max15,
		Level1Min:   level1,
		Level5Min:   level5,
		Level15Min:  level15,
		StoreValues: storeValues,
	}
}

func (p *LoadAvgProbe) Check(ctx context.Context) error {
	loadavg, err := procfs.ReadLoadAvg()
	if err != nil {
		p.SetStatus(status.NewError(err.Error()))
		return err
	}

	if p.StoreValues {
		if err := p.Persistence().InsertLoadAvgSample(persistence.LoadAvgRow{
			LoadAvg1:     loadavg.Load1,
			LoadAvg5:     loadavg.Load5,
			LoadAvg15:    loadavg.Load15,
			NumProcesses: loadavg.TotalProcs,
			NumRunning:   loadavg.RunningProcs,
		}); err != nil {
			// persistence errors never alter the in-memory status outcome (spec §7)
		}
	}

	s1 := checkLoadAvgWindow(p.Max1Min, loadavg.Load1, p.Level1Min)
	s5 := checkLoadAvgWindow(p.Max5Min, loadavg.Load5, p.Level5Min)
	s15 := checkLoadAvgWindow(p.Max15Min, loadavg.Load15, p.Level15Min)

	aggregate := status.MaxSeverity(s1, s5, s15)
	message := fmt.Sprintf("1min: %s, 5min: %s, 15min: %s", s1, s5, s15)

	switch aggregate.Kind {
	case status.Error:
		p.SetStatus(status.NewError(fmt.Sprintf("Load average check failed: %s", message)))
	case status.Warn:
		p.SetStatus(status.NewWarn(fmt.Sprintf("Load average check failed: %s", message)))
	default:
		p.SetStatus(status.NewOk())
	}
	return nil
}

// checkLoadAvgWindow implements the per-window rule of spec §4.5: Ok unless
// both the ceiling and current value are present and current exceeds the
// ceiling.
func checkLoadAvgWindow(max *float64, current float64, level storelevel.ThresholdLevel) status.Status {
	if max == nil {
		return status.NewOk()
	}
	if current <= *max {
		return status.NewOk()
	}
	message := fmt.Sprintf("Load average %v is greater than max load average %v", current, *max)
	if level == storelevel.ThresholdError {
		return status.NewError(message)
	}
	return status.NewWarn(message)
}
