package probe

import (
	"context"
	"fmt"
	"regexp"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/procfs"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// ProcessProbe matches running processes by name, pid, or regex and checks
// their resident memory against an optional ceiling (spec §4.8).
type ProcessProbe struct {
	base
	Names       map[string]struct{}
	Pids        map[int]struct{}
	Regex       *regexp.Regexp
	MaxRSS      int64
	StoreValues bool
}

func NewProcessProbe(name, description string, names []string, pids []int, regex string, maxRSS int64, storeValues bool, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) (*ProcessProbe, error) {
	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}
	pidSet := make(map[int]struct{}, len(pids))
	for _, pid := range pids {
		pidSet[pid] = struct{}{}
	}

	var re *regexp.Regexp
	if regex != "" {
		compiled, err := regexp.Compile(regex)
		if err != nil {
			return nil, fmt.Errorf("monitor %s: invalid process regex: %w", name, err)
		}
		re = compiled
	}

	return &ProcessProbe{
		base:        newBase(name, description, registry, persist, storeLevel),
		Names:       nameSet,
		Pids:        pidSet,
		Regex:       re,
		MaxRSS:      maxRSS,
		StoreValues: storeValues,
	}, nil
}

func (p *ProcessProbe) matches(proc procfs.Process) bool {
	if _, ok := p.Pids[proc.Pid]; ok {
		return true
	}
	if _, ok := p.Names[proc.Name]; ok {
		return true
	}
	if p.Regex != nil && p.Regex.MatchString(proc.Name) {
		return true
	}
	return false
}

func (p *ProcessProbe) Check(ctx context.Context) error {
	procs, err := procfs.ListProcesses()
	if err != nil {
		p.SetStatus(status.NewError(err.Error()))
		return err
	}

	var matched []status.Status
	for _, proc := range procs {
		if !p.matches(proc) {
			continue
		}

		statm, err := procfs.ReadStatm(proc.Pid)
		if err != nil {
			// process exited between enumeration and read; not an error for this check
			continue
		}

		if p.StoreValues {
			if err := p.Persistence().InsertStatmSample(persistence.StatmRow{
				AppName:  proc.Name,
				Pid:      proc.Pid,
				Size:     statm.Size,
				Resident: statm.Resident,
				Shared:   statm.Shared,
				Text:     statm.Text,
				Data:     statm.Data,
			}); err != nil {
				// persistence errors never alter the in-memory status outcome (spec §7)
			}
		}

		rss := statm.ResidentBytes()
		if p.MaxRSS > 0 && rss > p.MaxRSS {
			matched = append(matched, status.NewError(fmt.Sprintf("Process %s (pid %d) uses %d bytes, more than max %d bytes", proc.Name, proc.Pid, rss, p.MaxRSS)))
		} else {
			matched = append(matched, status.NewOk())
		}
	}

	if len(matched) == 0 {
		p.SetStatus(status.NewOk())
		return nil
	}

	aggregate := status.MaxSeverity(matched...)
	if aggregate.Kind == status.Error {
		var messages []string
		for _, s := range matched {
			if s.Kind == status.Error {
				messages = append(messages, s.Message)
			}
		}
		p.SetStatus(status.NewError(fmt.Sprintf("%v", messages)))
	} else {
		p.SetStatus(status.NewOk())
	}
	return nil
}
