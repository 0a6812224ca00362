package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsertMonitorStatus is the status-transition insert invoked by the probe
// framework's set_status protocol (spec §4.1 step 2). Every call inserts a
// new row; a repeated call for the same transition stores a second row.
// Each row gets its own check_id, the way the teacher's repositories stamp
// every persisted row with a uuid for external correlation.
func (db *DB) InsertMonitorStatus(monitorName string, statusName string, message *string) error {
	query := `INSERT INTO monitor_status (check_id, monitor_name, status, log_time, message) VALUES (?, ?, ?, ?, ?)`
	_, err := db.Exec(db.Rebind(query), uuid.NewString(), monitorName, statusName, time.Now(), message)
	if err != nil {
		return fmt.Errorf("failed to insert monitor status: %w", err)
	}
	return nil
}

// InsertLoadAvgSample stores a raw loadavg row regardless of threshold
// outcome (spec §4.5, store_values).
func (db *DB) InsertLoadAvgSample(row LoadAvgRow) error {
	query := `INSERT INTO loadavg (loadavg1, loadavg5, loadavg15, num_processes, num_running, log_time)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(db.Rebind(query), row.LoadAvg1, row.LoadAvg5, row.LoadAvg15, row.NumProcesses, row.NumRunning, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert loadavg sample: %w", err)
	}
	return nil
}

// InsertMeminfoSample stores a raw meminfo row regardless of threshold
// outcome (spec §4.6, store_values).
func (db *DB) InsertMeminfoSample(row MeminfoRow) error {
	query := `INSERT INTO meminfo (freemem, pct_mem_used, freeswap, pct_swap_used, log_time)
		VALUES (?, ?, ?, ?, ?)`
	_, err := db.Exec(db.Rebind(query), row.FreeMem, row.PctMemUsed, row.FreeSwap, row.PctSwapUsed, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert meminfo sample: %w", err)
	}
	return nil
}

// InsertStatmSample stores a matched process's statm row independently of
// threshold outcome (spec §4.8, store_current_statm).
func (db *DB) InsertStatmSample(row StatmRow) error {
	query := `INSERT INTO statm (app_name, pid, size, resident, shared, text, data, log_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(db.Rebind(query), row.AppName, row.Pid, row.Size, row.Resident, row.Shared, row.Text, row.Data, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert statm sample: %w", err)
	}
	return nil
}

// FindLongRunningQueries returns a diagnostic line per running query that
// exceeds maxQueryTime, for the Database probe (spec §4.10).
func (db *DB) FindLongRunningQueries(maxQueryTime time.Duration) ([]string, error) {
	var query string
	switch db.driver {
	case "postgres":
		query = `SELECT pid || ': ' || query || ' (' || EXTRACT(EPOCH FROM (now() - query_start)) || 's)'
			FROM pg_stat_activity
			WHERE state = 'active' AND now() - query_start > ($1 || ' seconds')::interval`
	case "mysql":
		query = `SELECT CONCAT(id, ': ', info, ' (', time, 's)')
			FROM information_schema.processlist
			WHERE command = 'Query' AND time > ?`
	default:
		// sqlite has no concept of a long-running concurrent query; the
		// Database probe is a no-op on this driver.
		return nil, nil
	}

	var rows []string
	if err := db.Select(&rows, db.Rebind(query), maxQueryTime.Seconds()); err != nil {
		return nil, fmt.Errorf("failed to query long-running queries: %w", err)
	}
	return rows, nil
}

// DeleteOlderThan deletes rows older than now - horizon from every
// persisted table, one DELETE per table, matching original_source's
// dbcleanupjob.rs sweep.
func (db *DB) DeleteOlderThan(horizon time.Duration) error {
	cutoff := time.Now().Add(-horizon)
	tables := []string{"monitor_status", "loadavg", "meminfo", "statm"}
	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s WHERE log_time < ?", table)
		if _, err := db.Exec(db.Rebind(query), cutoff); err != nil {
			return fmt.Errorf("failed to delete old rows from %s: %w", table, err)
		}
	}
	return nil
}
