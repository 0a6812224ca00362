// Package probe implements the polymorphic probe contract of spec §4.1 and
// the nine probe variants of spec §4.2-§4.10, grounded on the teacher's
// pkg/probe/probe.go shape (identity + status/persistence accessors) and on
// original_source/monitoring-agent-daemon/src/services/monitors/common.rs
// for the exact set_status protocol.
package probe

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// Probe is the contract every probe variant implements (spec §4.1).
type Probe interface {
	Name() string
	Registry() *status.Registry
	Persistence() persistence.Gateway
	StoreLevel() storelevel.DatabaseStoreLevel
	Check(ctx context.Context) error
}

// base implements the accessors and the centralized SetStatus protocol so
// each variant only has to embed it and implement Check (spec §9: "the
// set_status common protocol belongs on the framework, not on each
// variant").
type base struct {
	name       string
	registry   *status.Registry
	persist    persistence.Gateway
	storeLevel storelevel.DatabaseStoreLevel
}

func newBase(name, description string, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) base {
	registry.Register(name, description)
	return base{name: name, registry: registry, persist: persist, storeLevel: storeLevel}
}

func (b *base) Name() string                               { return b.name }
func (b *base) Registry() *status.Registry                 { return b.registry }
func (b *base) Persistence() persistence.Gateway            { return b.persist }
func (b *base) StoreLevel() storelevel.DatabaseStoreLevel   { return b.storeLevel }

// SetStatus is the centralized protocol of spec §4.1:
//  1. consult StoreLevel to decide whether to persist
//  2. persist (failure logged, never propagated, never blocks step 3)
//  3. update the registry entry
func (b *base) SetStatus(s status.Status) {
	b.insertStatus(s)

	if !b.registry.Apply(b.name, s) {
		logrus.WithField("monitor", b.name).Error("monitor status not found in registry")
	}
}

func (b *base) insertStatus(s status.Status) {
	switch b.storeLevel {
	case storelevel.None:
		return
	case storelevel.Errors:
		if s.Kind == status.Ok || s.Kind == status.Unknown {
			return
		}
	case storelevel.All:
		// fall through and persist
	}

	if b.persist == nil {
		return
	}

	var message *string
	if s.Kind == status.Warn || s.Kind == status.Error {
		m := s.Message
		message = &m
	}

	if err := b.persist.InsertMonitorStatus(b.name, s.Kind.String(), message); err != nil {
		logrus.WithError(err).WithField("monitor", b.name).Error("error inserting monitor status")
	}
}
