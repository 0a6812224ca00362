package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// TCPProbe checks TCP reachability (spec §4.2). No retry, no payload
// exchange: a successful connect is closed immediately.
type TCPProbe struct {
	base
	Host string
	Port uint16
}

// NewTCPProbe constructs a TCP probe and registers its Unknown entry.
func NewTCPProbe(name, description string, host string, port uint16, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) *TCPProbe {
	return &TCPProbe{
		base: newBase(name, description, registry, persist, storeLevel),
		Host: host,
		Port: port,
	}
}

func (p *TCPProbe) Check(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", p.Host, p.Port)
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		p.SetStatus(status.NewError(fmt.Sprintf("Error connecting to %s with error: %s", addr, err)))
		return err
	}
	conn.Close()
	p.SetStatus(status.NewOk())
	return nil
}
