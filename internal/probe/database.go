package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// DatabaseProbe watches the backing store for queries running longer than
// a configured threshold (spec §4.10). It queries the same Gateway the
// framework persists through — or a dedicated one built from a per-probe
// database config, when the caller constructs it that way.
type DatabaseProbe struct {
	base
	Target           persistence.Gateway
	MaxQueryTimeSecs int
}

func NewDatabaseProbe(name, description string, target persistence.Gateway, maxQueryTimeSecs int, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) *DatabaseProbe {
	return &DatabaseProbe{
		base:             newBase(name, description, registry, persist, storeLevel),
		Target:           target,
		MaxQueryTimeSecs: maxQueryTimeSecs,
	}
}

func (p *DatabaseProbe) Check(ctx context.Context) error {
	if p.Target == nil {
		p.SetStatus(status.NewOk())
		return nil
	}

	queries, err := p.Target.FindLongRunningQueries(time.Duration(p.MaxQueryTimeSecs) * time.Second)
	if err != nil {
		p.SetStatus(status.NewError(err.Error()))
		return err
	}

	if len(queries) > 0 {
		err := fmt.Errorf("Long queries found: %s", strings.Join(queries, "; "))
		p.SetStatus(status.NewError(err.Error()))
		return err
	}

	p.SetStatus(status.NewOk())
	return nil
}
