package probe

import (
	"context"
	"fmt"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/procfs"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// MemProbe checks /proc/meminfo memory and swap usage percentages against
// optional ceilings (spec §4.6). Each class (mem, swap) uses its own totals
// — the spec's open question flags an upstream bug mixing them; this
// implementation preserves the intended, non-buggy behavior.
type MemProbe struct {
	base
	MaxPctMem, MaxPctSwap *float64
	StoreValues           bool
}

func NewMemProbe(name, description string, maxPctMem, maxPctSwap *float64, storeValues bool, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) *MemProbe {
	return &MemProbe{
		base:        newBase(name, description, registry, persist, storeLevel),
		MaxPctMem:   maxPctMem,
		MaxPctSwap:  maxPctSwap,
		StoreValues: storeValues,
	}
}

func (p *MemProbe) Check(ctx context.Context) error {
	meminfo, err := procfs.ReadMeminfo()
	if err != nil {
		p.SetStatus(status.NewError(err.Error()))
		return err
	}

	pctMem := procfs.PercentUsed(meminfo.MemFree, meminfo.MemTotal)
	pctSwap := procfs.PercentUsed(meminfo.SwapFree, meminfo.SwapTotal)

	if p.StoreValues {
		if err := p.Persistence().InsertMeminfoSample(persistence.MeminfoRow{
			FreeMem:     meminfo.MemFree,
			PctMemUsed:  pctMem,
			FreeSwap:    meminfo.SwapFree,
			PctSwapUsed: pctSwap,
		}); err != nil {
			// persistence errors never alter the in-memory status outcome (spec §7)
		}
	}

	memStatus := checkMemValue(p.MaxPctMem, pctMem)
	swapStatus := checkMemValue(p.MaxPctSwap, pctSwap)

	if memStatus.Kind != status.Ok || swapStatus.Kind != status.Ok {
		p.SetStatus(status.NewError(fmt.Sprintf("Meminfo check failed: mem: %s, swap: %s", memStatus, swapStatus)))
	} else {
		p.SetStatus(status.NewOk())
	}
	return nil
}

func checkMemValue(max *float64, current float64) status.Status {
	if max == nil {
		return status.NewOk()
	}
	if current <= *max {
		return status.NewOk()
	}
	return status.NewError(fmt.Sprintf("Memory use %.3f%% is more than %.3f%%", current, *max))
}
