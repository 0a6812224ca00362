package persistence

import "fmt"

// initSchema creates the four persisted tables from spec §6. The sqlite
// dialect is used verbatim; Postgres/MySQL get a near-identical DDL with
// AUTOINCREMENT swapped for each dialect's serial-key syntax, mirroring
// how the teacher's InitSchema embeds one literal schema string.
func (db *DB) initSchema(driver string) error {
	var schema string
	switch driver {
	case "postgres":
		schema = postgresSchema
	case "mysql":
		schema = mysqlSchema
	default:
		schema = sqliteSchema
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS monitor_status (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	check_id TEXT NOT NULL,
	monitor_name TEXT NOT NULL,
	status TEXT NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	message TEXT
);

CREATE TABLE IF NOT EXISTS loadavg (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	loadavg1 REAL NOT NULL,
	loadavg5 REAL NOT NULL,
	loadavg15 REAL NOT NULL,
	num_processes INTEGER NOT NULL,
	num_running INTEGER NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meminfo (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	freemem INTEGER NOT NULL,
	pct_mem_used REAL NOT NULL,
	freeswap INTEGER NOT NULL,
	pct_swap_used REAL NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS statm (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	app_name TEXT NOT NULL,
	pid INTEGER NOT NULL,
	size INTEGER NOT NULL,
	resident INTEGER NOT NULL,
	shared INTEGER NOT NULL,
	text INTEGER NOT NULL,
	data INTEGER NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_monitor_status_log_time ON monitor_status(log_time);
CREATE INDEX IF NOT EXISTS idx_loadavg_log_time ON loadavg(log_time);
CREATE INDEX IF NOT EXISTS idx_meminfo_log_time ON meminfo(log_time);
CREATE INDEX IF NOT EXISTS idx_statm_log_time ON statm(log_time);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS monitor_status (
	id SERIAL PRIMARY KEY,
	check_id TEXT NOT NULL,
	monitor_name TEXT NOT NULL,
	status TEXT NOT NULL,
	log_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	message TEXT
);

CREATE TABLE IF NOT EXISTS loadavg (
	id SERIAL PRIMARY KEY,
	loadavg1 DOUBLE PRECISION NOT NULL,
	loadavg5 DOUBLE PRECISION NOT NULL,
	loadavg15 DOUBLE PRECISION NOT NULL,
	num_processes INTEGER NOT NULL,
	num_running INTEGER NOT NULL,
	log_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS meminfo (
	id SERIAL PRIMARY KEY,
	freemem BIGINT NOT NULL,
	pct_mem_used DOUBLE PRECISION NOT NULL,
	freeswap BIGINT NOT NULL,
	pct_swap_used DOUBLE PRECISION NOT NULL,
	log_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS statm (
	id SERIAL PRIMARY KEY,
	app_name TEXT NOT NULL,
	pid INTEGER NOT NULL,
	size BIGINT NOT NULL,
	resident BIGINT NOT NULL,
	shared BIGINT NOT NULL,
	text BIGINT NOT NULL,
	data BIGINT NOT NULL,
	log_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_monitor_status_log_time ON monitor_status(log_time);
CREATE INDEX IF NOT EXISTS idx_loadavg_log_time ON loadavg(log_time);
CREATE INDEX IF NOT EXISTS idx_meminfo_log_time ON meminfo(log_time);
CREATE INDEX IF NOT EXISTS idx_statm_log_time ON statm(log_time);
`

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS monitor_status (
	id INTEGER PRIMARY KEY AUTO_INCREMENT,
	check_id VARCHAR(36) NOT NULL,
	monitor_name VARCHAR(255) NOT NULL,
	status VARCHAR(32) NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	message TEXT
);

CREATE TABLE IF NOT EXISTS loadavg (
	id INTEGER PRIMARY KEY AUTO_INCREMENT,
	loadavg1 DOUBLE NOT NULL,
	loadavg5 DOUBLE NOT NULL,
	loadavg15 DOUBLE NOT NULL,
	num_processes INTEGER NOT NULL,
	num_running INTEGER NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meminfo (
	id INTEGER PRIMARY KEY AUTO_INCREMENT,
	freemem BIGINT NOT NULL,
	pct_mem_used DOUBLE NOT NULL,
	freeswap BIGINT NOT NULL,
	pct_swap_used DOUBLE NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS statm (
	id INTEGER PRIMARY KEY AUTO_INCREMENT,
	app_name VARCHAR(255) NOT NULL,
	pid INTEGER NOT NULL,
	size BIGINT NOT NULL,
	resident BIGINT NOT NULL,
	shared BIGINT NOT NULL,
	text BIGINT NOT NULL,
	data BIGINT NOT NULL,
	log_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
