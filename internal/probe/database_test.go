package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

type fakeGateway struct {
	queries []string
	err     error
}

func (f *fakeGateway) InsertMonitorStatus(string, string, *string) error { return nil }
func (f *fakeGateway) InsertLoadAvgSample(persistence.LoadAvgRow) error  { return nil }
func (f *fakeGateway) InsertMeminfoSample(persistence.MeminfoRow) error { return nil }
func (f *fakeGateway) InsertStatmSample(persistence.StatmRow) error     { return nil }
func (f *fakeGateway) DeleteOlderThan(time.Duration) error              { return nil }
func (f *fakeGateway) Close() error                                     { return nil }
func (f *fakeGateway) FindLongRunningQueries(time.Duration) ([]string, error) {
	return f.queries, f.err
}

var _ persistence.Gateway = (*fakeGateway)(nil)

func TestDatabaseProbeCheckNoTarget(t *testing.T) {
	registry := status.NewRegistry()
	p := NewDatabaseProbe("db-none", "", nil, 30, registry, nil, storelevel.None)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("db-none")
	require.NotNil(t, entry)
	assert.Equal(t, status.Ok, entry.Status.Kind)
}

func TestDatabaseProbeCheckNoLongQueries(t *testing.T) {
	registry := status.NewRegistry()
	target := &fakeGateway{}
	p := NewDatabaseProbe("db-ok", "", target, 30, registry, nil, storelevel.None)

	require.NoError(t, p.Check(context.Background()))
	entry := registry.Get("db-ok")
	require.NotNil(t, entry)
	assert.Equal(t, status.Ok, entry.Status.Kind)
}

func TestDatabaseProbeCheckLongQueriesFound(t *testing.T) {
	registry := status.NewRegistry()
	target := &fakeGateway{queries: []string{"SELECT * FROM big_table"}}
	p := NewDatabaseProbe("db-slow", "", target, 30, registry, nil, storelevel.None)

	assert.Error(t, p.Check(context.Background()))
	entry := registry.Get("db-slow")
	require.NotNil(t, entry)
	assert.Equal(t, status.Error, entry.Status.Kind)
}

func TestDatabaseProbeCheckQueryError(t *testing.T) {
	registry := status.NewRegistry()
	target := &fakeGateway{err: errors.New("connection reset")}
	p := NewDatabaseProbe("db-err", "", target, 30, registry, nil, storelevel.None)

	assert.Error(t, p.Check(context.Background()))
	entry := registry.Get("db-err")
	require.NotNil(t, entry)
	assert.Equal(t, status.Error, entry.Status.Kind)
}
