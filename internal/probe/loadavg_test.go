package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

func TestLoadAvgProbeCheckNoCeilings(t *testing.T) {
	registry := status.NewRegistry()
	p := NewLoadAvgProbe("loadavg-unbounded", "", nil, nil, nil,
		storelevel.ThresholdWarn, storelevel.ThresholdWarn, storelevel.ThresholdWarn,
		false, registry, nil, storelevel.None)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("loadavg-unbounded")
	require.NotNil(t, entry)
	assert.Equal(t, status.Ok, entry.Status.Kind)
}

func TestLoadAvgProbeCheckImpossibleCeilingWarns(t *testing.T) {
	zero := 0.0
	registry := status.NewRegistry()
	p := NewLoadAvgProbe("loadavg-tripped", "", &zero, nil, nil,
		storelevel.ThresholdWarn, storelevel.ThresholdWarn, storelevel.ThresholdWarn,
		false, registry, nil, storelevel.None)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("loadavg-tripped")
	require.NotNil(t, entry)
	assert.NotEqual(t, status.Ok, entry.Status.Kind)
}

func TestCheckLoadAvgWindow(t *testing.T) {
	max := 1.0
	assert.Equal(t, status.Ok, checkLoadAvgWindow(nil, 5.0, storelevel.ThresholdWarn).Kind)
	assert.Equal(t, status.Ok, checkLoadAvgWindow(&max, 0.5, storelevel.ThresholdWarn).Kind)
	assert.Equal(t, status.Warn, checkLoadAvgWindow(&max, 2.0, storelevel.ThresholdWarn).Kind)
	assert.Equal(t, status.Error, checkLoadAvgWindow(&max, 2.0, storelevel.ThresholdError).Kind)
}
