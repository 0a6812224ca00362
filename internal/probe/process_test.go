package probe

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

func TestProcessProbeMatchesByPid(t *testing.T) {
	registry := status.NewRegistry()
	p, err := NewProcessProbe("proc-self", "", nil, []int{os.Getpid()}, "", 0, false, registry, nil, storelevel.None)
	require.NoError(t, err)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("proc-self")
	require.NotNil(t, entry)
	assert.Equal(t, status.Ok, entry.Status.Kind)
}

func TestProcessProbeNoMatchIsOk(t *testing.T) {
	registry := status.NewRegistry()
	p, err := NewProcessProbe("proc-none", "", []string{"definitely-not-a-real-process-name"}, nil, "", 0, false, registry, nil, storelevel.None)
	require.NoError(t, err)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("proc-none")
	require.NotNil(t, entry)
	assert.Equal(t, status.Ok, entry.Status.Kind)
}

func TestProcessProbeInvalidRegex(t *testing.T) {
	registry := status.NewRegistry()
	_, err := NewProcessProbe("proc-badregex", "", nil, nil, "[", 0, false, registry, nil, storelevel.None)
	assert.Error(t, err)
}

func TestProcessProbeRSSCeilingTrips(t *testing.T) {
	registry := status.NewRegistry()
	p, err := NewProcessProbe("proc-rss", "", nil, []int{os.Getpid()}, "", 1, false, registry, nil, storelevel.None)
	require.NoError(t, err)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("proc-rss")
	require.NotNil(t, entry)
	assert.Equal(t, status.Error, entry.Status.Kind)
}
