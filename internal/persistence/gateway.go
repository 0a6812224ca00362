// Package persistence wraps a pooled connection to the optional backing
// store described in spec §2 and §6: insertion of status transitions and
// time-series samples (one new row per call), plus a retention sweep.
package persistence

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/config"
)

// Gateway is the capability every probe's persistence accessor returns
// (spec §2, §4.1). cmd/agentd hands every probe an OptionalGateway, which is
// a no-op when no backing store is configured. Only the probe framework's
// status write checks for a nil Gateway; the sample-row inserts of the
// LoadAvg, Mem and Process probes and the DB Cleanup job call it directly.
type Gateway interface {
	InsertMonitorStatus(monitorName string, statusName string, message *string) error
	InsertLoadAvgSample(row LoadAvgRow) error
	InsertMeminfoSample(row MeminfoRow) error
	InsertStatmSample(row StatmRow) error
	FindLongRunningQueries(maxQueryTime time.Duration) ([]string, error)
	DeleteOlderThan(horizon time.Duration) error
	Close() error
}

// DB wraps a pooled sqlx connection, matching the teacher's pkg/database.DB
// shape but generalized to the three backing stores spec §3 names.
type DB struct {
	*sqlx.DB
	driver string
}

// Open opens a connection pool to the database named by cfg and initializes
// the schema. A nil cfg yields (nil, nil): persistence is simply absent.
func Open(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, nil
	}

	driver, dsn, err := dsnFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(int(cfg.MinConns))
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapper := &DB{DB: db, driver: driver}
	if err := wrapper.initSchema(driver); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return wrapper, nil
}

// dsnFor builds the driver name and connection string for each supported
// backing store (spec §3 TopConfig.database.type).
func dsnFor(cfg *config.DatabaseConfig) (driver, dsn string, err error) {
	switch cfg.Type {
	case config.DatabasePostgres:
		dsn = fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.DBName, cfg.User, cfg.Password)
		return "postgres", dsn, nil
	case config.DatabaseMysql, config.DatabaseMaria:
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		return "mysql", dsn, nil
	case "", "sqlite":
		return "sqlite", cfg.DBName, nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

func (db *DB) Close() error {
	return db.DB.Close()
}

var _ Gateway = (*DB)(nil)
