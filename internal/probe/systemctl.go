package probe

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// SystemctlProbe checks that a configured set of systemd units is active
// (spec §4.7).
type SystemctlProbe struct {
	base
	Expected map[string]struct{}
	runner   func() ([]byte, error)
}

func NewSystemctlProbe(name, description string, active []string, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) *SystemctlProbe {
	expected := make(map[string]struct{}, len(active))
	for _, name := range active {
		expected[name] = struct{}{}
	}
	return &SystemctlProbe{
		base:     newBase(name, description, registry, persist, storeLevel),
		Expected: expected,
		runner:   runSystemctlAll,
	}
}

func runSystemctlAll() ([]byte, error) {
	return exec.Command("systemctl", "--all").Output()
}

func (p *SystemctlProbe) Check(ctx context.Context) error {
	output, err := p.runner()
	if err != nil {
		e := fmt.Errorf("Error running systemctl: %s", err)
		p.SetStatus(status.NewError(e.Error()))
		return e
	}

	var nonActive []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		unitName := strings.TrimSuffix(fields[0], ".service")
		if _, expected := p.Expected[unitName]; !expected {
			continue
		}
		if fields[2] != "active" {
			nonActive = append(nonActive, unitName)
		}
	}

	if len(nonActive) > 0 {
		e := fmt.Errorf("Non-active services: [%s]", strings.Join(nonActive, ","))
		p.SetStatus(status.NewError(e.Error()))
		return e
	}

	p.SetStatus(status.NewOk())
	return nil
}
