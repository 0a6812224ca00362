package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/config"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
)

func baseConfig() *config.TopConfig {
	return &config.TopConfig{
		Server: config.ServerConfig{IP: "127.0.0.1", Port: 65000},
		Monitors: []config.MonitorConfig{
			{
				Name:     "tcp-check",
				Schedule: "* * * * * *",
				Details:  []byte(`{"type":"tcp","host":"127.0.0.1","port":1}`),
			},
		},
	}
}

func TestNewBuildsOneProbePerMonitor(t *testing.T) {
	registry := status.NewRegistry()
	gateway := persistence.NewOptionalGateway(nil)

	s, err := New(baseConfig(), registry, gateway)
	require.NoError(t, err)
	assert.Len(t, s.Probes(), 1)
	assert.Equal(t, "tcp-check", s.Probes()[0].Name())
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	cfg := baseConfig()
	cfg.Monitors[0].Schedule = "not a cron expression"

	registry := status.NewRegistry()
	gateway := persistence.NewOptionalGateway(nil)

	_, err := New(cfg, registry, gateway)
	assert.Error(t, err)
}

func TestNewRejectsUnknownDetailsType(t *testing.T) {
	cfg := baseConfig()
	cfg.Monitors[0].Details = []byte(`{"type":"bogus"}`)

	registry := status.NewRegistry()
	gateway := persistence.NewOptionalGateway(nil)

	_, err := New(cfg, registry, gateway)
	assert.Error(t, err)
}

func TestNewSchedulesCleanupWhenRetentionSet(t *testing.T) {
	cfg := baseConfig()
	cfg.RetentionHours = 24

	registry := status.NewRegistry()
	gateway := persistence.NewOptionalGateway(nil)

	s, err := New(cfg, registry, gateway)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestStartTestModeReturnsWithoutRunningProbes(t *testing.T) {
	registry := status.NewRegistry()
	gateway := persistence.NewOptionalGateway(nil)

	s, err := New(baseConfig(), registry, gateway)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Start(context.Background(), true)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start(testMode=true) did not return promptly")
	}

	entry := registry.Get("tcp-check")
	require.NotNil(t, entry)
	assert.Equal(t, status.Unknown, entry.Status.Kind)
}
