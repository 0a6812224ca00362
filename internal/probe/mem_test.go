package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

func TestMemProbeCheckNoCeilings(t *testing.T) {
	registry := status.NewRegistry()
	p := NewMemProbe("mem-unbounded", "", nil, nil, false, registry, nil, storelevel.None)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("mem-unbounded")
	require.NotNil(t, entry)
	assert.Equal(t, status.Ok, entry.Status.Kind)
}

func TestMemProbeCheckImpossibleCeilingErrors(t *testing.T) {
	zero := 0.0
	registry := status.NewRegistry()
	p := NewMemProbe("mem-tripped", "", &zero, nil, false, registry, nil, storelevel.None)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("mem-tripped")
	require.NotNil(t, entry)
	assert.Equal(t, status.Error, entry.Status.Kind)
}

func TestCheckMemValue(t *testing.T) {
	max := 50.0
	assert.Equal(t, status.Ok, checkMemValue(nil, 90.0).Kind)
	assert.Equal(t, status.Ok, checkMemValue(&max, 40.0).Kind)
	assert.Equal(t, status.Error, checkMemValue(&max, 60.0).Kind)
}
