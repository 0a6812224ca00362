package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusSeverity(t *testing.T) {
	assert.Equal(t, 0, NewOk().Severity())
	assert.Equal(t, 0, NewUnknown().Severity())
	assert.Equal(t, 1, NewWarn("warn").Severity())
	assert.Equal(t, 2, NewError("error").Severity())
}

func TestStatusMarshalJSON(t *testing.T) {
	okJSON, err := json.Marshal(NewOk())
	require.NoError(t, err)
	assert.JSONEq(t, `"Ok"`, string(okJSON))

	errJSON, err := json.Marshal(NewError("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Error":{"message":"boom"}}`, string(errJSON))
}

func TestMaxSeverity(t *testing.T) {
	best := MaxSeverity(NewOk(), NewWarn("w"), NewError("e"))
	assert.Equal(t, Error, best.Kind)

	best = MaxSeverity(NewOk(), NewWarn("w"))
	assert.Equal(t, Warn, best.Kind)

	best = MaxSeverity()
	assert.Equal(t, Ok, best.Kind)
}

func TestMonitorStatusApply(t *testing.T) {
	m := &MonitorStatus{Name: "probe1", Status: NewUnknown()}

	m.Apply(NewOk())
	require.NotNil(t, m.LastSuccessfulTime)
	assert.Nil(t, m.LastErrorTime)
	assert.Equal(t, Ok, m.Status.Kind)

	m.Apply(NewError("connection refused"))
	require.NotNil(t, m.LastErrorTime)
	assert.Equal(t, "connection refused", m.LastError)
	assert.Equal(t, Error, m.Status.Kind)
}

func TestMonitorStatusClone(t *testing.T) {
	m := &MonitorStatus{Name: "probe1", Status: NewOk()}
	clone := m.Clone()
	clone.Name = "changed"
	assert.Equal(t, "probe1", m.Name)
	assert.Equal(t, "changed", clone.Name)
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	r.Register("probe1", "description")

	entry := r.Get("probe1")
	require.NotNil(t, entry)
	assert.Equal(t, Unknown, entry.Status.Kind)

	ok := r.Apply("probe1", NewError("failure"))
	assert.True(t, ok)

	entry = r.Get("probe1")
	assert.Equal(t, Error, entry.Status.Kind)
	assert.Equal(t, "failure", entry.LastError)

	assert.False(t, r.Apply("missing", NewOk()))
	assert.Nil(t, r.Get("missing"))
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Register("a", "")
	r.Register("b", "")

	snapshot := r.Snapshot()
	assert.Len(t, snapshot, 2)
}
