package persistence

import "time"

// OptionalGateway adapts a possibly-nil *DB into a Gateway that is a no-op
// when persistence is absent, so every call site can call through it
// unconditionally (spec §9 "optional persistence" design note).
type OptionalGateway struct {
	db *DB
}

// NewOptionalGateway wraps db, which may be nil.
func NewOptionalGateway(db *DB) *OptionalGateway {
	return &OptionalGateway{db: db}
}

// Present reports whether a real backing store is configured.
func (g *OptionalGateway) Present() bool {
	return g.db != nil
}

func (g *OptionalGateway) InsertMonitorStatus(monitorName, statusName string, message *string) error {
	if g.db == nil {
		return nil
	}
	return g.db.InsertMonitorStatus(monitorName, statusName, message)
}

func (g *OptionalGateway) InsertLoadAvgSample(row LoadAvgRow) error {
	if g.db == nil {
		return nil
	}
	return g.db.InsertLoadAvgSample(row)
}

func (g *OptionalGateway) InsertMeminfoSample(row MeminfoRow) error {
	if g.db == nil {
		return nil
	}
	return g.db.InsertMeminfoSample(row)
}

func (g *OptionalGateway) InsertStatmSample(row StatmRow) error {
	if g.db == nil {
		return nil
	}
	return g.db.InsertStatmSample(row)
}

func (g *OptionalGateway) FindLongRunningQueries(maxQueryTime time.Duration) ([]string, error) {
	if g.db == nil {
		return nil, nil
	}
	return g.db.FindLongRunningQueries(maxQueryTime)
}

// DeleteOlderThan is a no-op when persistence is absent; used by the DB
// Cleanup job (spec §4.12).
func (g *OptionalGateway) DeleteOlderThan(horizon time.Duration) error {
	if g.db == nil {
		return nil
	}
	return g.db.DeleteOlderThan(horizon)
}

func (g *OptionalGateway) Close() error {
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}

var _ Gateway = (*OptionalGateway)(nil)
