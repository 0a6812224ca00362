package persistence

import "time"

// MonitorStatusRow is one row of the monitor_status table (spec §6).
type MonitorStatusRow struct {
	ID          int64     `db:"id" json:"id"`
	CheckID     string    `db:"check_id" json:"checkId"`
	MonitorName string    `db:"monitor_name" json:"monitorName"`
	Status      string    `db:"status" json:"status"`
	LogTime     time.Time `db:"log_time" json:"logTime"`
	Message     *string   `db:"message" json:"message,omitempty"`
}

// LoadAvgRow is one row of the loadavg table (spec §4.5, §6).
type LoadAvgRow struct {
	ID            int64     `db:"id" json:"id"`
	LoadAvg1      float64   `db:"loadavg1" json:"loadavg1"`
	LoadAvg5      float64   `db:"loadavg5" json:"loadavg5"`
	LoadAvg15     float64   `db:"loadavg15" json:"loadavg15"`
	NumProcesses  int       `db:"num_processes" json:"numProcesses"`
	NumRunning    int       `db:"num_running" json:"numRunning"`
	LogTime       time.Time `db:"log_time" json:"logTime"`
}

// MeminfoRow is one row of the meminfo table (spec §4.6, §6).
type MeminfoRow struct {
	ID           int64     `db:"id" json:"id"`
	FreeMem      int64     `db:"freemem" json:"freeMem"`
	PctMemUsed   float64   `db:"pct_mem_used" json:"pctMemUsed"`
	FreeSwap     int64     `db:"freeswap" json:"freeSwap"`
	PctSwapUsed  float64   `db:"pct_swap_used" json:"pctSwapUsed"`
	LogTime      time.Time `db:"log_time" json:"logTime"`
}

// StatmRow is one row of the statm table (spec §4.8, §6).
type StatmRow struct {
	ID        int64     `db:"id" json:"id"`
	AppName   string    `db:"app_name" json:"appName"`
	Pid       int       `db:"pid" json:"pid"`
	Size      int64     `db:"size" json:"size"`
	Resident  int64     `db:"resident" json:"resident"`
	Shared    int64     `db:"shared" json:"shared"`
	Text      int64     `db:"text" json:"text"`
	Data      int64     `db:"data" json:"data"`
	LogTime   time.Time `db:"log_time" json:"logTime"`
}
