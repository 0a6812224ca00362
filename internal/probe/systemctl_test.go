package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

func TestSystemctlProbeCheckAllActive(t *testing.T) {
	registry := status.NewRegistry()
	p := NewSystemctlProbe("svc-ok", "", []string{"nginx", "sshd"}, registry, nil, storelevel.None)
	p.runner = func() ([]byte, error) {
		return []byte(
			"nginx.service loaded active running nginx\n" +
				"sshd.service loaded active running sshd\n" +
				"cron.service loaded active running cron\n",
		), nil
	}

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("svc-ok")
	require.NotNil(t, entry)
	assert.Equal(t, status.Ok, entry.Status.Kind)
}

func TestSystemctlProbeCheckNonActiveUnit(t *testing.T) {
	registry := status.NewRegistry()
	p := NewSystemctlProbe("svc-down", "", []string{"nginx"}, registry, nil, storelevel.None)
	p.runner = func() ([]byte, error) {
		return []byte("nginx.service loaded failed failed nginx\n"), nil
	}

	assert.Error(t, p.Check(context.Background()))
	entry := registry.Get("svc-down")
	require.NotNil(t, entry)
	assert.Equal(t, status.Error, entry.Status.Kind)
}

func TestSystemctlProbeCheckRunnerError(t *testing.T) {
	registry := status.NewRegistry()
	p := NewSystemctlProbe("svc-err", "", []string{"nginx"}, registry, nil, storelevel.None)
	p.runner = func() ([]byte, error) {
		return nil, errors.New("systemctl: command not found")
	}

	assert.Error(t, p.Check(context.Background()))
	entry := registry.Get("svc-err")
	require.NotNil(t, entry)
	assert.Equal(t, status.Error, entry.Status.Kind)
}
